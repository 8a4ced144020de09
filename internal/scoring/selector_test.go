package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ux-career-assessment/internal/domain"
)

func scores(values ...int) []domain.CategoryScore {
	out := make([]domain.CategoryScore, len(values))
	for i, v := range values {
		out[i] = domain.CategoryScore{Name: domain.Categories[i], Score: v}
	}
	return out
}

func TestSelectStrengthsOrdersByScore(t *testing.T) {
	strongest, weakest := SelectStrengths(scores(30, 90, 65, 85, 10))
	assert.Equal(t, []domain.Category{domain.CategoryUICraft, domain.CategoryProductThinking}, strongest)
	assert.Equal(t, []domain.Category{domain.CategoryCollaboration, domain.CategoryUXFundamentals}, weakest)
}

func TestSelectStrengthsStableTieBreak(t *testing.T) {
	strongest, _ := SelectStrengths(scores(60, 95, 95, 95, 20))
	assert.Equal(t, []domain.Category{domain.CategoryUICraft, domain.CategoryUserResearch}, strongest)
}

func TestSelectStrengthsMidRangeCanBeInNeitherList(t *testing.T) {
	// The third-ranked 70 is neither a top-two strength nor a bottom-two weakness.
	strongest, weakest := SelectStrengths(scores(90, 85, 70, 65, 62))
	assert.NotContains(t, strongest, domain.CategoryUserResearch)
	assert.NotContains(t, weakest, domain.CategoryUserResearch)
	assert.Equal(t, []domain.Category{domain.CategoryCollaboration, domain.CategoryProductThinking}, weakest)
}

func TestSelectStrengthsPredicatesOverlap(t *testing.T) {
	// With few categories the >=60 and <80 predicates select the same entry.
	strongest, weakest := SelectStrengths(scores(70, 65, 60))
	assert.Equal(t, []domain.Category{domain.CategoryUXFundamentals, domain.CategoryUICraft}, strongest)
	assert.Equal(t, []domain.Category{domain.CategoryUserResearch, domain.CategoryUICraft}, weakest)
}

func TestSelectStrengthsEmptyInput(t *testing.T) {
	strongest, weakest := SelectStrengths(nil)
	assert.Empty(t, strongest)
	assert.Empty(t, weakest)
}

func TestSelectStrengthsDoesNotMutateInput(t *testing.T) {
	in := scores(10, 20, 30, 40, 50)
	_, _ = SelectStrengths(in)
	assert.Equal(t, scores(10, 20, 30, 40, 50), in)
}
