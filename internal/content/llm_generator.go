package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ux-career-assessment/internal/domain"
	"ux-career-assessment/internal/llm"
)

const systemPrompt = `You are a senior UX design career coach. You write concise, encouraging and concrete guidance for designers based on a self-assessment. Respond only with JSON matching the requested schema.`

var sectionInstructions = map[domain.Section]string{
	domain.SectionMeaning:         "Explain in 3-4 sentences what this career stage means for the designer and what typically unlocks the next stage.",
	domain.SectionSkillAnalysis:   "Write one insight and one recommendation for each of the five categories, using the given band.",
	domain.SectionResources:       "Write a short read-up paragraph and recommend 3-6 real, well-known learning resources focused on the weak categories.",
	domain.SectionDeepInsights:    "Write 3-4 insights connecting strengths and weaknesses across categories.",
	domain.SectionImprovementPlan: "Write a 4-week improvement plan. Each week has a theme, a focus category and 2-4 tasks.",
}

// LLMGenerator produces section content with an LLM provider using
// schema-constrained output.
type LLMGenerator struct {
	provider  llm.Provider
	maxTokens int
}

func NewLLMGenerator(provider llm.Provider, maxTokens int) *LLMGenerator {
	if maxTokens <= 0 {
		maxTokens = 1500
	}
	return &LLMGenerator{provider: provider, maxTokens: maxTokens}
}

func (g *LLMGenerator) Generate(ctx context.Context, section domain.Section, req Request) (json.RawMessage, error) {
	schema, err := SchemaFor(section)
	if err != nil {
		return nil, err
	}
	resp, err := g.provider.Generate(llm.WithPurpose(ctx, string(section)), llm.Request{
		System:      systemPrompt,
		Prompt:      buildPrompt(section, req),
		Schema:      schema,
		MaxTokens:   g.maxTokens,
		Temperature: 0.4,
	})
	if err != nil {
		return nil, err
	}
	return resp.Content, nil
}

func buildPrompt(section domain.Section, req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Career stage: %s\n", req.Stage)
	if req.TotalScore > 0 {
		fmt.Fprintf(&b, "Overall score: %d%%\n", req.TotalScore)
	}
	if len(req.Categories) > 0 {
		b.WriteString("Category scores:\n")
		for _, cs := range req.Categories {
			fmt.Fprintf(&b, "- %s: %d%% (%s)\n", cs.Name, cs.Score, cs.Band)
		}
	}
	if len(req.StrongCategories) > 0 {
		fmt.Fprintf(&b, "Strongest: %s\n", joinCategories(req.StrongCategories))
	}
	if len(req.WeakCategories) > 0 {
		fmt.Fprintf(&b, "Weakest: %s\n", joinCategories(req.WeakCategories))
	}
	b.WriteString("\n")
	b.WriteString(sectionInstructions[section])
	return b.String()
}
