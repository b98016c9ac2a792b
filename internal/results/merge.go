package results

import "github.com/verte-zerg/blindtype/internal/model"

// Merge folds a finished session into the running aggregate and returns the
// new aggregate. Neither argument is modified.
//
// Scalars are adopted when the aggregate still holds the unset value 0 and
// averaged with the new value otherwise. Accuracy is rounded to 0.1 after
// averaging; WPM is kept unrounded so repeated merges do not drift.
// Per-letter counts are summed.
func Merge(agg, next model.Result) model.Result {
	out := agg.Clone()
	out.WPM = mergeScalar(agg.WPM, next.WPM)
	if agg.TotalAccuracy == 0 {
		out.TotalAccuracy = next.TotalAccuracy
	} else {
		out.TotalAccuracy = model.Round1((agg.TotalAccuracy + next.TotalAccuracy) / 2)
	}
	for letter, st := range next.Letters {
		existing, ok := out.Letters[letter]
		if !ok {
			out.Letters[letter] = st.Clone()
			continue
		}
		existing.Add(st)
		out.Letters[letter] = existing
	}
	return out
}

func mergeScalar(old, next float64) float64 {
	if old == 0 {
		return next
	}
	return (old + next) / 2
}
