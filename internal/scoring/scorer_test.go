package scoring_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ux-career-assessment/internal/domain"
	"ux-career-assessment/internal/questionbank"
	"ux-career-assessment/internal/scoring"
)

var answeredAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// uniformAnswers answers every bank question with the same value.
func uniformAnswers(v int) domain.Answers {
	answers := domain.Answers{}
	for _, q := range questionbank.Default() {
		answers[q.ID] = v
	}
	return answers
}

// perCategory answers each category's questions with the given value, in
// the fixed category order.
func perCategory(values ...int) domain.Answers {
	answers := domain.Answers{}
	for _, q := range questionbank.Default() {
		for i, c := range domain.Categories {
			if q.Category == c {
				answers[q.ID] = values[i]
			}
		}
	}
	return answers
}

func TestScoreAllMaximumAnswers(t *testing.T) {
	answers := uniformAnswers(5)
	require.True(t, scoring.IsValid(answers))

	res, err := scoring.Score(answers, questionbank.Default(), answeredAt)
	require.NoError(t, err)

	require.Len(t, res.Categories, 5)
	for _, cs := range res.Categories {
		assert.Equal(t, 100, cs.Score, cs.Name)
		assert.Equal(t, domain.BandStrong, cs.Band, cs.Name)
		assert.Equal(t, 15, cs.RawScore)
		assert.Equal(t, 15, cs.MaxPossible)
		assert.Equal(t, 3, cs.QuestionCount)
	}
	assert.Equal(t, 100, res.TotalScore)
	assert.Equal(t, domain.StageStrategicLead, res.Stage)
	assert.Equal(t, []domain.Category{domain.CategoryUXFundamentals, domain.CategoryUICraft}, res.StrongestCategories)
	assert.Empty(t, res.WeakestCategories)
	assert.Equal(t, answeredAt, res.AnsweredAt)
}

func TestScoreAllMinimumAnswers(t *testing.T) {
	res, err := scoring.Score(uniformAnswers(1), questionbank.Default(), answeredAt)
	require.NoError(t, err)

	for _, cs := range res.Categories {
		assert.Equal(t, 3, cs.RawScore)
		assert.Equal(t, 15, cs.MaxPossible)
		assert.Equal(t, 20, cs.Score)
		assert.Equal(t, domain.BandLearnTheBasics, cs.Band)
	}
	assert.Equal(t, 20, res.TotalScore)
	assert.Equal(t, domain.StageExplorer, res.Stage)
	assert.Empty(t, res.StrongestCategories)
	// Ties on the weak side come out in reverse category order.
	assert.Equal(t, []domain.Category{domain.CategoryCollaboration, domain.CategoryProductThinking}, res.WeakestCategories)
}

func TestScoreEmptyAnswers(t *testing.T) {
	answers := domain.Answers{}
	assert.False(t, scoring.IsValid(answers))

	res, err := scoring.Score(answers, questionbank.Default(), answeredAt)
	require.NoError(t, err)

	require.Len(t, res.Categories, 5)
	for i, cs := range res.Categories {
		assert.Equal(t, domain.Categories[i], cs.Name)
		assert.Equal(t, scoring.MinDisplayScore, cs.Score)
		assert.Equal(t, domain.BandLearnTheBasics, cs.Band)
		assert.Zero(t, cs.RawScore)
		assert.Zero(t, cs.MaxPossible)
		assert.Zero(t, cs.QuestionCount)
	}
	assert.Equal(t, scoring.MinDisplayScore, res.TotalScore)
	assert.Equal(t, domain.StageExplorer, res.Stage)
}

func TestScoreMixedCategories(t *testing.T) {
	res, err := scoring.Score(perCategory(5, 4, 3, 2, 1), questionbank.Default(), answeredAt)
	require.NoError(t, err)

	wantScores := []int{100, 80, 60, 40, 20}
	wantBands := []domain.Band{domain.BandStrong, domain.BandStrong, domain.BandNeedsWork, domain.BandNeedsWork, domain.BandLearnTheBasics}
	for i, cs := range res.Categories {
		assert.Equal(t, wantScores[i], cs.Score, cs.Name)
		assert.Equal(t, wantBands[i], cs.Band, cs.Name)
	}
	assert.Equal(t, 60, res.TotalScore)
	assert.Equal(t, domain.StagePractitioner, res.Stage)
	assert.Equal(t, []domain.Category{domain.CategoryUXFundamentals, domain.CategoryUICraft}, res.StrongestCategories)
	assert.Equal(t, []domain.Category{domain.CategoryCollaboration, domain.CategoryProductThinking}, res.WeakestCategories)
}

func TestScorePartialAnswersAverageOnlyAnsweredCategories(t *testing.T) {
	answers := domain.Answers{"Q1": 5, "Q2": 5, "Q3": 5}
	res, err := scoring.Score(answers, questionbank.Default(), answeredAt)
	require.NoError(t, err)

	assert.Equal(t, 100, res.Categories[0].Score)
	for _, cs := range res.Categories[1:] {
		assert.Equal(t, scoring.MinDisplayScore, cs.Score)
		assert.Zero(t, cs.QuestionCount)
	}
	assert.Equal(t, 100, res.TotalScore)
	assert.Equal(t, domain.StageStrategicLead, res.Stage)
}

func TestScoreRoundsPercentages(t *testing.T) {
	// 7/15 = 46.67% and 8/15 = 53.33%.
	answers := domain.Answers{"Q1": 3, "Q2": 2, "Q3": 2, "Q4": 3, "Q5": 3, "Q6": 2}
	res, err := scoring.Score(answers, questionbank.Default(), answeredAt)
	require.NoError(t, err)

	assert.Equal(t, 47, res.Categories[0].Score)
	assert.Equal(t, 53, res.Categories[1].Score)
	assert.Equal(t, 50, res.TotalScore)
	assert.Equal(t, domain.StagePractitioner, res.Stage)
}

func TestScoreIgnoresUnknownQuestionIDs(t *testing.T) {
	res, err := scoring.Score(domain.Answers{"Q99": 5}, questionbank.Default(), answeredAt)
	require.NoError(t, err)
	assert.Equal(t, scoring.MinDisplayScore, res.TotalScore)
}

func TestScoreIsDeterministic(t *testing.T) {
	answers := perCategory(2, 5, 4, 1, 3)
	first, err := scoring.Score(answers, questionbank.Default(), answeredAt)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := scoring.Score(answers, questionbank.Default(), answeredAt)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestScoreBoundsForEveryUniformValue(t *testing.T) {
	for v := 1; v <= 5; v++ {
		res, err := scoring.Score(uniformAnswers(v), questionbank.Default(), answeredAt)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.TotalScore, scoring.MinDisplayScore)
		assert.LessOrEqual(t, res.TotalScore, 100)
		for _, cs := range res.Categories {
			assert.GreaterOrEqual(t, cs.Score, scoring.MinDisplayScore)
			assert.LessOrEqual(t, cs.Score, 100)
			assert.Equal(t, scoring.DeriveBand(cs.Score), cs.Band)
		}
		assert.Equal(t, scoring.DeriveStage(res.TotalScore), res.Stage)
	}
}

func TestScoreRejectsMalformedBank(t *testing.T) {
	bank := append(questionbank.Default(), domain.Question{ID: "QX", Category: "Marketing"})
	_, err := scoring.Score(uniformAnswers(3), bank, answeredAt)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCalculationFailed))
}
