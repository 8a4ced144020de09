package memory

import (
	"context"

	"ux-career-assessment/internal/domain"
)

// StaticBankLoader serves a question bank held in memory (the built-in bank,
// tests, demos).
type StaticBankLoader struct {
	questions []domain.Question
}

func NewStaticBankLoader(questions []domain.Question) *StaticBankLoader {
	return &StaticBankLoader{questions: questions}
}

func (l *StaticBankLoader) LoadBank(_ context.Context) ([]domain.Question, error) {
	if len(l.questions) == 0 {
		return nil, domain.ErrQuestionBankNotFound
	}
	out := make([]domain.Question, len(l.questions))
	copy(out, l.questions)
	return out, nil
}
