package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"ux-career-assessment/internal/domain"
)

const maxResponseBytes = 1 << 20

// HTTPGenerator POSTs requests to <baseURL>/api/<section>. Any transport
// error, non-2xx status or non-JSON body is a failure.
type HTTPGenerator struct {
	baseURL string
	client  *http.Client
}

func NewHTTPGenerator(baseURL string, client *http.Client) *HTTPGenerator {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPGenerator{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (g *HTTPGenerator) Generate(ctx context.Context, section domain.Section, req Request) (json.RawMessage, error) {
	if !section.Valid() {
		return nil, fmt.Errorf("unknown section %q", section)
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal %s request: %w", section, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/api/"+string(section), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", section, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", section, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", section, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s request: unexpected status %d", section, resp.StatusCode)
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("%s response is not valid JSON", section)
	}
	return json.RawMessage(raw), nil
}
