package content

import (
	"encoding/json"
	"fmt"

	"ux-career-assessment/internal/domain"
	"ux-career-assessment/internal/llm"
)

func str() map[string]any { return map[string]any{"type": "string", "minLength": 1} }

func object(props map[string]any) map[string]any {
	required := make([]any, 0, len(props))
	for k := range props {
		required = append(required, k)
	}
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             required,
		"additionalProperties": false,
	}
}

func list(item map[string]any) map[string]any {
	return map[string]any{"type": "array", "items": item, "minItems": 1}
}

// schemas describes the response body of each section endpoint.
var schemas = map[domain.Section]*llm.Schema{
	domain.SectionMeaning: {
		Name:        "stage-meaning",
		Description: "What the career stage means for the person",
		Definition:  object(map[string]any{"meaning": str()}),
	},
	domain.SectionSkillAnalysis: {
		Name:        "skill-analysis",
		Description: "One insight per skill category",
		Definition: object(map[string]any{"insights": list(object(map[string]any{
			"category":       str(),
			"band":           str(),
			"insight":        str(),
			"recommendation": str(),
		}))}),
	},
	domain.SectionResources: {
		Name:        "learning-resources",
		Description: "A short read-up and a list of learning resources",
		Definition: object(map[string]any{
			"readup": str(),
			"resources": list(object(map[string]any{
				"title":       str(),
				"url":         str(),
				"type":        str(),
				"category":    str(),
				"description": str(),
			})),
		}),
	},
	domain.SectionDeepInsights: {
		Name:        "deep-insights",
		Description: "Cross-category observations about the skill profile",
		Definition: object(map[string]any{"insights": list(object(map[string]any{
			"title":       str(),
			"description": str(),
		}))}),
	},
	domain.SectionImprovementPlan: {
		Name:        "improvement-plan",
		Description: "A week-by-week improvement plan",
		Definition: object(map[string]any{"weeks": list(object(map[string]any{
			"week":  map[string]any{"type": "integer", "minimum": 1},
			"theme": str(),
			"focus": str(),
			"tasks": list(str()),
		}))}),
	},
}

// SchemaFor returns the response schema of a section.
func SchemaFor(section domain.Section) (*llm.Schema, error) {
	s, ok := schemas[section]
	if !ok {
		return nil, fmt.Errorf("unknown section %q", section)
	}
	return s, nil
}

// Decode validates a remote payload against its section schema and decodes
// it into the section's content type.
func Decode(section domain.Section, raw json.RawMessage) (any, error) {
	schema, err := SchemaFor(section)
	if err != nil {
		return nil, err
	}
	if err := llm.ValidateJSON(schema, raw); err != nil {
		return nil, fmt.Errorf("%s response: %w", section, err)
	}

	var target any
	switch section {
	case domain.SectionMeaning:
		target = &domain.MeaningContent{}
	case domain.SectionSkillAnalysis:
		target = &domain.SkillAnalysisContent{}
	case domain.SectionResources:
		target = &domain.ResourcesContent{}
	case domain.SectionDeepInsights:
		target = &domain.DeepInsightsContent{}
	case domain.SectionImprovementPlan:
		target = &domain.ImprovementPlanContent{}
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", section, err)
	}
	return deref(target), nil
}

func deref(v any) any {
	switch t := v.(type) {
	case *domain.MeaningContent:
		return *t
	case *domain.SkillAnalysisContent:
		return *t
	case *domain.ResourcesContent:
		return *t
	case *domain.DeepInsightsContent:
		return *t
	case *domain.ImprovementPlanContent:
		return *t
	}
	return v
}
