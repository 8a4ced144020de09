package scoring

import (
	"fmt"
	"math"
	"time"

	"ux-career-assessment/internal/domain"
)

const pointsPerQuestion = 5

// Score computes per-category and overall results. Answers are assumed to
// have passed ValidateAnswers; IDs not present in the bank are ignored.
// A bank question with a category outside the fixed set is reported as
// domain.ErrCalculationFailed.
func Score(answers domain.Answers, bank []domain.Question, answeredAt time.Time) (domain.QuizResults, error) {
	byCategory := make(map[domain.Category][]domain.Question, len(domain.Categories))
	for _, q := range bank {
		if !q.Category.Valid() {
			return domain.QuizResults{}, fmt.Errorf("%w: question %q has unknown category %q", domain.ErrCalculationFailed, q.ID, q.Category)
		}
		byCategory[q.Category] = append(byCategory[q.Category], q)
	}

	categories := make([]domain.CategoryScore, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		categories = append(categories, scoreCategory(c, byCategory[c], answers))
	}

	total := totalScore(categories)
	strongest, weakest := SelectStrengths(categories)

	return domain.QuizResults{
		TotalScore:          total,
		Stage:               DeriveStage(total),
		Categories:          categories,
		StrongestCategories: strongest,
		WeakestCategories:   weakest,
		AnsweredAt:          answeredAt,
	}, nil
}

func scoreCategory(c domain.Category, questions []domain.Question, answers domain.Answers) domain.CategoryScore {
	cs := domain.CategoryScore{
		ID:   domain.CategoryID(c),
		Name: c,
	}
	for _, q := range questions {
		v, ok := answers[q.ID]
		if !ok {
			continue
		}
		cs.RawScore += v
		cs.QuestionCount++
	}
	if cs.QuestionCount == 0 {
		cs.Score = MinDisplayScore
		cs.Band = domain.BandLearnTheBasics
		return cs
	}
	cs.MaxPossible = cs.QuestionCount * pointsPerQuestion
	percentage := roundInt(float64(cs.RawScore) / float64(cs.MaxPossible) * 100)
	cs.Score = max(percentage, MinDisplayScore)
	cs.Band = DeriveBand(cs.Score)
	return cs
}

// totalScore averages the displayed (already floored) scores of answered
// categories and floors the result again.
func totalScore(categories []domain.CategoryScore) int {
	sum, n := 0, 0
	for _, cs := range categories {
		if cs.QuestionCount == 0 {
			continue
		}
		sum += cs.Score
		n++
	}
	if n == 0 {
		return MinDisplayScore
	}
	return max(roundInt(float64(sum)/float64(n)), MinDisplayScore)
}

func roundInt(f float64) int {
	return int(math.Round(f))
}
