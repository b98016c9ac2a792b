package model

import (
	"math"
	"sort"
	"unicode/utf8"
)

// LetterStat is the confusion table for one expected letter: which runes were
// pressed while it was expected and how often.
type LetterStat struct {
	MainLetter   rune
	Presses      map[rune]int
	TotalPresses int
}

// NewLetterStat returns an empty stat for the expected letter.
func NewLetterStat(letter rune) *LetterStat {
	return &LetterStat{MainLetter: validRune(letter), Presses: map[rune]int{}}
}

// validRune maps runes that cannot be encoded as UTF-8 to utf8.RuneError so
// every recorded key survives a JSON round trip.
func validRune(r rune) rune {
	if !utf8.ValidRune(r) {
		return utf8.RuneError
	}
	return r
}

// Record counts one press of pressed while the main letter was expected.
func (s *LetterStat) Record(pressed rune) {
	if s.Presses == nil {
		s.Presses = map[rune]int{}
	}
	s.Presses[validRune(pressed)]++
	s.TotalPresses++
}

// Correct returns how many presses matched the main letter.
func (s LetterStat) Correct() int {
	return s.Presses[s.MainLetter]
}

// Accuracy returns the correct share of presses in percent, rounded to 0.1.
func (s LetterStat) Accuracy() float64 {
	if s.TotalPresses == 0 {
		return 0
	}
	return Round1(float64(s.Correct()) / float64(s.TotalPresses) * 100)
}

// Add accumulates the raw counts of other into s.
func (s *LetterStat) Add(other LetterStat) {
	if s.Presses == nil {
		s.Presses = map[rune]int{}
	}
	for r, n := range other.Presses {
		s.Presses[r] += n
	}
	s.TotalPresses += other.TotalPresses
}

// Clone returns a deep copy.
func (s LetterStat) Clone() LetterStat {
	presses := make(map[rune]int, len(s.Presses))
	for r, n := range s.Presses {
		presses[r] = n
	}
	return LetterStat{MainLetter: s.MainLetter, Presses: presses, TotalPresses: s.TotalPresses}
}

// Shares returns the percentage of presses per pressed rune, highest first.
func (s LetterStat) Shares() []PressShare {
	out := make([]PressShare, 0, len(s.Presses))
	for r, n := range s.Presses {
		share := 0.0
		if s.TotalPresses > 0 {
			share = Round1(float64(n) / float64(s.TotalPresses) * 100)
		}
		out = append(out, PressShare{Pressed: r, Count: n, Share: share})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Share == out[j].Share {
			return out[i].Pressed < out[j].Pressed
		}
		return out[i].Share > out[j].Share
	})
	return out
}

// PressShare is one row of a letter breakdown.
type PressShare struct {
	Pressed rune
	Count   int
	Share   float64
}

// LetterAccuracy pairs a letter with its derived accuracy.
type LetterAccuracy struct {
	Letter   rune
	Accuracy float64
	Presses  int
}

// Result is a finished session or the merged aggregate of all sessions.
type Result struct {
	WPM           float64
	TotalAccuracy float64
	Letters       map[rune]LetterStat
}

// EmptyResult returns the unset aggregate.
func EmptyResult() Result {
	return Result{Letters: map[rune]LetterStat{}}
}

// Clone returns a deep copy.
func (r Result) Clone() Result {
	out := Result{WPM: r.WPM, TotalAccuracy: r.TotalAccuracy, Letters: make(map[rune]LetterStat, len(r.Letters))}
	for k, v := range r.Letters {
		out.Letters[k] = v.Clone()
	}
	return out
}

// Accuracies lists per-letter accuracy sorted by accuracy descending, then
// by letter ascending.
func (r Result) Accuracies() []LetterAccuracy {
	out := make([]LetterAccuracy, 0, len(r.Letters))
	for letter, st := range r.Letters {
		out = append(out, LetterAccuracy{Letter: letter, Accuracy: st.Accuracy(), Presses: st.TotalPresses})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Accuracy == out[j].Accuracy {
			return out[i].Letter < out[j].Letter
		}
		return out[i].Accuracy > out[j].Accuracy
	})
	return out
}

// AccuracyMap returns letter -> accuracy for colouring.
func (r Result) AccuracyMap() map[rune]float64 {
	out := make(map[rune]float64, len(r.Letters))
	for letter, st := range r.Letters {
		out[letter] = st.Accuracy()
	}
	return out
}

// Round1 rounds v to one decimal place.
func Round1(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*10) / 10
}

// Band classifies an accuracy percentage for display.
type Band int

// Accuracy bands.
const (
	BandNone Band = iota
	BandPoor
	BandFair
	BandGood
)

// BandFor returns the display band of an accuracy percentage.
func BandFor(accuracy float64) Band {
	switch {
	case accuracy == 0:
		return BandNone
	case accuracy >= 80:
		return BandGood
	case accuracy >= 50:
		return BandFair
	default:
		return BandPoor
	}
}
