package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"ux-career-assessment/internal/domain"
	"ux-career-assessment/internal/logger"
	"ux-career-assessment/internal/questionbank"
	"ux-career-assessment/internal/results"
	"ux-career-assessment/internal/scoring"
)

// maxIDAttempts bounds ID regeneration on collision.
const maxIDAttempts = 5

// ResultStore persists completed assessments.
type ResultStore interface {
	Exists(ctx context.Context, id string) (bool, error)
	Save(ctx context.Context, id string, answers domain.Answers, res domain.QuizResults) (domain.StoredResult, error)
	Load(ctx context.Context, id string) (domain.StoredResult, bool)
	Delete(ctx context.Context, id string) error
	MostRecent(ctx context.Context) (domain.StoredResult, bool)
	List(ctx context.Context) []string
}

// Warmer pre-fetches a section so a later load hits the cache.
type Warmer interface {
	Warm(ctx context.Context, res domain.QuizResults, section domain.Section)
}

// AssessmentService contains the assessment use cases: scoring, persistence
// and restoring past results.
type AssessmentService struct {
	bank    questionbank.Loader
	results ResultStore
	warmer  Warmer
	now     func() time.Time
	newID   func() (string, error)
	logger  *zap.Logger

	// warming tracks background precompute fetches.
	warming sync.WaitGroup
}

type ServiceOption func(*AssessmentService)

// WithClock allows deterministic timestamps in tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *AssessmentService) { s.now = now }
}

// WithIDGenerator replaces results.NewID.
func WithIDGenerator(gen func() (string, error)) ServiceOption {
	return func(s *AssessmentService) { s.newID = gen }
}

func WithLogger(l *zap.Logger) ServiceOption {
	return func(s *AssessmentService) { s.logger = logger.OrNop(l) }
}

// WithWarmer enables section warming on Precompute.
func WithWarmer(w Warmer) ServiceOption {
	return func(s *AssessmentService) { s.warmer = w }
}

func NewAssessmentService(bank questionbank.Loader, store ResultStore, opts ...ServiceOption) *AssessmentService {
	s := &AssessmentService{
		bank:    bank,
		results: store,
		now:     time.Now,
		newID:   results.NewID,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Questions returns the question bank in display order.
func (s *AssessmentService) Questions(ctx context.Context) ([]domain.Question, error) {
	return s.bank.LoadBank(ctx)
}

// Score validates answers and computes results. Validation failures are
// returned as *scoring.ValidationError; anything else that goes wrong,
// panics included, surfaces as domain.ErrCalculationFailed.
func (s *AssessmentService) Score(ctx context.Context, answers domain.Answers) (res domain.QuizResults, err error) {
	if err := scoring.ValidateAnswers(answers); err != nil {
		return domain.QuizResults{}, err
	}
	bank, err := s.bank.LoadBank(ctx)
	if err != nil {
		s.logger.Error("load question bank", zap.Error(err))
		return domain.QuizResults{}, domain.ErrCalculationFailed
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("scoring panicked", zap.Any("panic", r))
			res, err = domain.QuizResults{}, domain.ErrCalculationFailed
		}
	}()
	res, err = scoring.Score(answers, bank, s.now())
	if err != nil {
		s.logger.Error("scoring failed", zap.Error(err))
		return domain.QuizResults{}, domain.ErrCalculationFailed
	}
	return res, nil
}

// Complete scores answers and persists the outcome. Persistence is best
// effort: on failure the results are still returned, with an empty ID.
func (s *AssessmentService) Complete(ctx context.Context, answers domain.Answers) (domain.StoredResult, error) {
	res, err := s.Score(ctx, answers)
	if err != nil {
		return domain.StoredResult{}, err
	}

	unsaved := domain.StoredResult{Answers: answers, Results: res, CreatedAt: s.now()}
	id, err := s.freshID(ctx)
	if err != nil {
		s.logger.Warn("result not persisted", zap.Error(err))
		return unsaved, nil
	}
	stored, err := s.results.Save(ctx, id, answers, res)
	if err != nil {
		s.logger.Warn("result not persisted", zap.String("id", id), zap.Error(err))
		return unsaved, nil
	}
	return stored, nil
}

func (s *AssessmentService) freshID(ctx context.Context) (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id, err := s.newID()
		if err != nil {
			return "", err
		}
		taken, err := s.results.Exists(ctx, id)
		if err != nil {
			return "", err
		}
		if !taken {
			return id, nil
		}
		s.logger.Debug("result id collision", zap.String("id", id))
	}
	return "", fmt.Errorf("no free result id after %d attempts", maxIDAttempts)
}

// Restore loads a stored result by ID.
func (s *AssessmentService) Restore(ctx context.Context, id string) (domain.StoredResult, error) {
	if !results.ValidID(id) {
		return domain.StoredResult{}, domain.ErrResultNotFound
	}
	stored, ok := s.results.Load(ctx, id)
	if !ok {
		return domain.StoredResult{}, domain.ErrResultNotFound
	}
	return stored, nil
}

// Latest returns the most recently saved result.
func (s *AssessmentService) Latest(ctx context.Context) (domain.StoredResult, error) {
	stored, ok := s.results.MostRecent(ctx)
	if !ok {
		return domain.StoredResult{}, domain.ErrResultNotFound
	}
	return stored, nil
}

// Forget deletes a stored result. Unknown IDs are not an error.
func (s *AssessmentService) Forget(ctx context.Context, id string) error {
	if !results.ValidID(id) {
		return nil
	}
	return s.results.Delete(ctx, id)
}

// History returns stored results, newest first. Records that can no longer
// be read are skipped.
func (s *AssessmentService) History(ctx context.Context) []domain.StoredResult {
	ids := s.results.List(ctx)
	out := make([]domain.StoredResult, 0, len(ids))
	for _, id := range ids {
		if stored, ok := s.results.Load(ctx, id); ok {
			out = append(out, stored)
		}
	}
	return out
}

// Precompute scores a partially completed assessment once at least half of
// the bank is answered, and warms the meaning section for the provisional
// stage in the background. It reports false when the threshold is not met
// or the answers so far are out of range.
func (s *AssessmentService) Precompute(ctx context.Context, answers domain.Answers) (domain.QuizResults, bool, error) {
	bank, err := s.bank.LoadBank(ctx)
	if err != nil {
		return domain.QuizResults{}, false, err
	}
	if !ReachedHalfway(answers, bank) || !scoring.IsValid(answers) {
		return domain.QuizResults{}, false, nil
	}

	res, err := s.Score(ctx, answers)
	if err != nil {
		return domain.QuizResults{}, false, err
	}

	if s.warmer != nil {
		s.warming.Add(1)
		go func() {
			defer s.warming.Done()
			s.warmer.Warm(context.WithoutCancel(ctx), res, domain.SectionMeaning)
		}()
	}
	return res, true, nil
}

// Wait blocks until background warming started by Precompute has finished.
func (s *AssessmentService) Wait() {
	s.warming.Wait()
}

// ReachedHalfway reports whether at least half of the bank's questions
// have an answer.
func ReachedHalfway(answers domain.Answers, bank []domain.Question) bool {
	if len(bank) == 0 {
		return false
	}
	answered := 0
	for _, q := range bank {
		if _, ok := answers[q.ID]; ok {
			answered++
		}
	}
	return answered*2 >= len(bank)
}
