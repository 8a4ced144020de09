package scoring

import (
	"sort"

	"ux-career-assessment/internal/domain"
)

const (
	strengthCutoff = 60
	weaknessCutoff = 80
	selectionSize  = 2
)

// SelectStrengths returns up to two strongest (score >= 60) and two weakest
// (score < 80) categories. Categories are stably sorted by descending score;
// weakest walks that order backwards, so tied weak categories come out in
// reverse category order. The two predicates overlap in 60..79, so a
// category may appear in both lists or in neither.
func SelectStrengths(categories []domain.CategoryScore) (strongest, weakest []domain.Category) {
	sorted := make([]domain.CategoryScore, len(categories))
	copy(sorted, categories)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	strongest = []domain.Category{}
	for _, cs := range sorted {
		if len(strongest) == selectionSize {
			break
		}
		if cs.Score >= strengthCutoff {
			strongest = append(strongest, cs.Name)
		}
	}

	weakest = []domain.Category{}
	for i := len(sorted) - 1; i >= 0; i-- {
		if len(weakest) == selectionSize {
			break
		}
		if sorted[i].Score < weaknessCutoff {
			weakest = append(weakest, sorted[i].Name)
		}
	}
	return strongest, weakest
}
