package texts

import (
	"math/rand"
	"time"
)

// Picker selects practice sentences.
type Picker struct {
	rnd *rand.Rand
}

// NewPicker returns a Picker seeded with the current time.
func NewPicker() *Picker {
	return NewPickerWithSeed(time.Now().UnixNano())
}

// NewPickerWithSeed returns a deterministic Picker.
func NewPickerWithSeed(seed int64) *Picker {
	return &Picker{rnd: rand.New(rand.NewSource(seed))}
}

// Pick selects a sentence uniformly. sentences must not be empty.
func (p *Picker) Pick(sentences []string) string {
	return sentences[p.rnd.Intn(len(sentences))]
}

// PickWeighted selects a sentence with a bias toward weak letters: each
// sentence weighs 1 + factor*(occurrences of weak letters).
func (p *Picker) PickWeighted(sentences []string, weakSet map[rune]struct{}, factor float64) string {
	if len(weakSet) == 0 || factor <= 0 {
		return p.Pick(sentences)
	}
	weights := make([]float64, len(sentences))
	total := 0.0
	for i, sentence := range sentences {
		weakCount := 0
		for _, r := range sentence {
			if _, ok := weakSet[r]; ok {
				weakCount++
			}
		}
		w := 1.0 + float64(weakCount)*factor
		weights[i] = w
		total += w
	}

	r := p.rnd.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r <= acc {
			return sentences[i]
		}
	}
	return sentences[len(sentences)-1]
}
