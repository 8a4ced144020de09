package content

import (
	"context"
	"encoding/json"

	"ux-career-assessment/internal/domain"
)

// Request is the body sent to every remote section generator.
type Request struct {
	Stage            domain.Stage           `json:"stage"`
	TotalScore       int                    `json:"totalScore,omitempty"`
	Categories       []domain.CategoryScore `json:"categories,omitempty"`
	StrongCategories []domain.Category      `json:"strongCategories,omitempty"`
	WeakCategories   []domain.Category      `json:"weakCategories,omitempty"`
}

// RequestFor builds the request for section from scored results. Each
// section only receives the fields it uses.
func RequestFor(section domain.Section, res domain.QuizResults) Request {
	req := Request{Stage: res.Stage}
	switch section {
	case domain.SectionMeaning:
		req.TotalScore = res.TotalScore
	case domain.SectionSkillAnalysis:
		req.TotalScore = res.TotalScore
		req.Categories = res.Categories
	case domain.SectionResources:
		req.WeakCategories = res.WeakestCategories
	case domain.SectionDeepInsights, domain.SectionImprovementPlan:
		req.TotalScore = res.TotalScore
		req.Categories = res.Categories
		req.StrongCategories = res.StrongestCategories
		req.WeakCategories = res.WeakestCategories
	}
	return req
}

// Generator produces remote content for a section. The returned JSON is
// unvalidated; callers run it through Decode.
type Generator interface {
	Generate(ctx context.Context, section domain.Section, req Request) (json.RawMessage, error)
}

// Unavailable is the Generator used when no remote backend is configured.
// Every call fails, so all content comes from fallbacks.
type Unavailable struct{}

func (Unavailable) Generate(context.Context, domain.Section, Request) (json.RawMessage, error) {
	return nil, domain.ErrRemoteUnavailable
}
