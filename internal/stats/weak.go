package stats

import (
	"sort"

	"github.com/verte-zerg/blindtype/internal/model"
)

// SelectWeakLetters selects the lowest-accuracy letters from aggregates.
// Whitespace letters are skipped.
func SelectWeakLetters(aggs []model.LetterAggregate, top int) map[rune]struct{} {
	weakSet := map[rune]struct{}{}
	candidates := make([]model.LetterAggregate, 0, len(aggs))
	for _, agg := range aggs {
		if agg.Presses == 0 || agg.Letter == "" || agg.Letter == " " {
			continue
		}
		candidates = append(candidates, agg)
	}
	sort.Slice(candidates, func(i, j int) bool {
		ai, aj := candidates[i].Accuracy(), candidates[j].Accuracy()
		if ai == aj {
			return candidates[i].Letter < candidates[j].Letter
		}
		return ai < aj
	})
	if top <= 0 || top > len(candidates) {
		top = len(candidates)
	}
	for _, c := range candidates[:top] {
		weakSet[[]rune(c.Letter)[0]] = struct{}{}
	}
	return weakSet
}
