package engine

import (
	"strings"
	"time"

	"github.com/verte-zerg/blindtype/internal/model"
)

// SessionStats accumulates keystrokes for one run over a sample.
type SessionStats struct {
	startedAt  time.Time
	endedAt    time.Time
	started    bool
	keystrokes int
	confirmed  int
	letters    map[rune]*model.LetterStat
}

// NewSessionStats returns empty statistics with the clock not yet started.
func NewSessionStats() *SessionStats {
	return &SessionStats{letters: map[rune]*model.LetterStat{}}
}

// Start records the session start time unless it is already set.
func (s *SessionStats) Start(now time.Time) {
	if s.started {
		return
	}
	s.started = true
	s.startedAt = now
}

// Started reports whether the first keystroke has been seen.
func (s *SessionStats) Started() bool {
	return s.started
}

// StartedAt returns the time of the first keystroke.
func (s *SessionStats) StartedAt() time.Time {
	return s.startedAt
}

// EndedAt returns the time the session was finalized, or the zero time.
func (s *SessionStats) EndedAt() time.Time {
	return s.endedAt
}

// ElapsedMs returns the milliseconds between the first keystroke and
// finalization; 0 before either happened.
func (s *SessionStats) ElapsedMs() int64 {
	if !s.started || s.endedAt.IsZero() {
		return 0
	}
	return s.endedAt.Sub(s.startedAt).Milliseconds()
}

// Record counts a keystroke against the letter that was expected.
func (s *SessionStats) Record(expected, pressed rune) {
	s.keystrokes++
	entry, ok := s.letters[expected]
	if !ok {
		entry = model.NewLetterStat(expected)
		s.letters[expected] = entry
	}
	entry.Record(pressed)
}

// Confirm counts one letter the cursor moved past.
func (s *SessionStats) Confirm() {
	s.confirmed++
}

// Keystrokes returns every recorded keystroke including mismatches.
func (s *SessionStats) Keystrokes() int {
	return s.keystrokes
}

// Confirmed returns the number of correctly typed letters.
func (s *SessionStats) Confirmed() int {
	return s.confirmed
}

// Letters returns a copy of the per-letter statistics.
func (s *SessionStats) Letters() map[rune]model.LetterStat {
	out := make(map[rune]model.LetterStat, len(s.letters))
	for r, st := range s.letters {
		out[r] = st.Clone()
	}
	return out
}

// Finalize computes the session result for sample as of now.
func (s *SessionStats) Finalize(sample string, now time.Time) model.Result {
	s.endedAt = now
	return model.Result{
		WPM:           WordsPerMinute(WordCount(sample), s.ElapsedMs()),
		TotalAccuracy: Accuracy(s.confirmed, s.keystrokes),
		Letters:       s.Letters(),
	}
}

// WordCount returns the number of whitespace-delimited tokens.
func WordCount(sample string) int {
	return len(strings.Fields(sample))
}

// WordsPerMinute converts words typed in elapsedMs into words per minute,
// rounded to 0.1. Non-positive durations yield 0.
func WordsPerMinute(words int, elapsedMs int64) float64 {
	if elapsedMs <= 0 {
		return 0
	}
	return model.Round1(float64(words) / float64(elapsedMs) * 60000)
}

// Accuracy returns confirmed/keystrokes in percent, rounded to 0.1.
func Accuracy(confirmed, keystrokes int) float64 {
	if keystrokes <= 0 {
		return 0
	}
	return model.Round1(float64(confirmed) / float64(keystrokes) * 100)
}
