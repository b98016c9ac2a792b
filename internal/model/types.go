// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings.
type Config struct {
	TextsPattern string
	FocusWeak    bool
	WeakTop      int
	WeakFactor   float64
	WeakWindow   int
	History      bool
}

// FetchConfig defines how new practice sentences are requested.
type FetchConfig struct {
	Endpoint  string
	Model     string
	Count     int
	APIKeyEnv string
}

// HistoryConfig defines filters and options for history output.
type HistoryConfig struct {
	Since       *time.Time
	Last        int
	CurveWindow int
}

// SessionRecord captures a finished typing session for the history log.
type SessionRecord struct {
	UUID       string
	StartedAt  time.Time
	EndedAt    time.Time
	Sample     string
	WPM        float64
	Accuracy   float64
	Keystrokes int
	DurationMs int64
}

// SessionAggregate summarizes a stored session for reporting.
type SessionAggregate struct {
	SessionID  int64
	UUID       string
	EndedAt    time.Time
	WPM        float64
	Accuracy   float64
	Keystrokes int
	DurationMs int64
}

// LetterAggregate sums presses for one expected letter across sessions.
type LetterAggregate struct {
	Letter  string
	Correct int
	Presses int
}

// Accuracy returns the correct share of presses as a percentage.
func (a LetterAggregate) Accuracy() float64 {
	if a.Presses == 0 {
		return 0
	}
	return float64(a.Correct) / float64(a.Presses) * 100
}
