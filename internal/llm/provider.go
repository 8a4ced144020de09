package llm

import (
	"context"
	"encoding/json"
)

// Provider generates structured JSON from a prompt.
type Provider interface {
	// Generate sends the request and returns the model output. When
	// req.Schema is set the output has been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)
	ModelID() string
}

// Request is a single-turn generation request.
type Request struct {
	System      string
	Prompt      string
	Schema      *Schema
	MaxTokens   int
	Temperature float64
}

// Schema is the JSON Schema the model output must satisfy.
type Schema struct {
	// Name is a kebab-case identifier, e.g. "stage-meaning".
	Name        string
	Description string
	Definition  map[string]any
}

// Response is the model output and its token accounting.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string // "end", "max_tokens"
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
