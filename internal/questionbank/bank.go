package questionbank

import (
	"context"
	"fmt"

	"ux-career-assessment/internal/domain"
)

// Loader fetches the question bank from a backing store.
type Loader interface {
	LoadBank(ctx context.Context) ([]domain.Question, error)
}

// scale builds the five options shared by every question. Values rise with
// competence.
func scale(labels ...string) []domain.Option {
	opts := make([]domain.Option, len(labels))
	for i, label := range labels {
		opts[i] = domain.Option{Value: i + 1, Label: label}
	}
	return opts
}

var frequency = []string{
	"Never",
	"Rarely",
	"Sometimes",
	"Usually",
	"Always, and I coach others on it",
}

var confidence = []string{
	"I haven't done this yet",
	"Only with close guidance",
	"On my own for simple cases",
	"Confidently on complex work",
	"I set the standard for my team",
}

// Default returns the canonical 15-question bank, three questions per
// category in the fixed category order.
func Default() []domain.Question {
	return []domain.Question{
		{ID: "Q1", Category: domain.CategoryUXFundamentals, Text: "How often do you map user flows before designing screens?", Options: scale(frequency...)},
		{ID: "Q2", Category: domain.CategoryUXFundamentals, Text: "How comfortable are you applying usability heuristics to critique a design?", Options: scale(confidence...)},
		{ID: "Q3", Category: domain.CategoryUXFundamentals, Text: "How well can you structure information architecture for a multi-level product?", Options: scale(confidence...)},

		{ID: "Q4", Category: domain.CategoryUICraft, Text: "How consistently do you apply a type scale, spacing system and grid?", Options: scale(frequency...)},
		{ID: "Q5", Category: domain.CategoryUICraft, Text: "How confident are you building and maintaining design-system components?", Options: scale(confidence...)},
		{ID: "Q6", Category: domain.CategoryUICraft, Text: "How often do you check colour contrast and accessible states in your UI?", Options: scale(frequency...)},

		{ID: "Q7", Category: domain.CategoryUserResearch, Text: "How comfortable are you planning and running user interviews?", Options: scale(confidence...)},
		{ID: "Q8", Category: domain.CategoryUserResearch, Text: "How often do you validate designs with usability tests before shipping?", Options: scale(frequency...)},
		{ID: "Q9", Category: domain.CategoryUserResearch, Text: "How well can you synthesize research into actionable insights?", Options: scale(confidence...)},

		{ID: "Q10", Category: domain.CategoryProductThinking, Text: "How often do you tie design decisions to business and product metrics?", Options: scale(frequency...)},
		{ID: "Q11", Category: domain.CategoryProductThinking, Text: "How confident are you prioritizing problems with product managers?", Options: scale(confidence...)},
		{ID: "Q12", Category: domain.CategoryProductThinking, Text: "How well can you define success criteria for a feature before it is built?", Options: scale(confidence...)},

		{ID: "Q13", Category: domain.CategoryCollaboration, Text: "How confident are you presenting design rationale to stakeholders?", Options: scale(confidence...)},
		{ID: "Q14", Category: domain.CategoryCollaboration, Text: "How often do you pair with engineers during implementation?", Options: scale(frequency...)},
		{ID: "Q15", Category: domain.CategoryCollaboration, Text: "How well do you handle and give critique in design reviews?", Options: scale(confidence...)},
	}
}

// Validate checks a bank loaded from an external store: known categories,
// unique IDs and exactly five options valued 1..5.
func Validate(questions []domain.Question) error {
	if len(questions) == 0 {
		return domain.ErrQuestionBankNotFound
	}
	seen := make(map[string]struct{}, len(questions))
	for _, q := range questions {
		if q.ID == "" {
			return fmt.Errorf("question bank: empty question id")
		}
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("question bank: duplicate question id %q", q.ID)
		}
		seen[q.ID] = struct{}{}
		if !q.Category.Valid() {
			return fmt.Errorf("question bank: question %q has unknown category %q", q.ID, q.Category)
		}
		if len(q.Options) != 5 {
			return fmt.Errorf("question bank: question %q has %d options, want 5", q.ID, len(q.Options))
		}
		for i, opt := range q.Options {
			if opt.Value != i+1 {
				return fmt.Errorf("question bank: question %q option %d has value %d", q.ID, i, opt.Value)
			}
		}
	}
	return nil
}
