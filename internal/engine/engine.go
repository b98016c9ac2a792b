// Package engine implements the typing session state machine.
package engine

import (
	"errors"
	"time"

	"github.com/verte-zerg/blindtype/internal/model"
)

var (
	// ErrEmptySample is returned by Guess when Init was given an empty sample.
	ErrEmptySample = errors.New("empty sample")
	// ErrNotStarted is returned by Guess before the first Init.
	ErrNotStarted = errors.New("no sample loaded")
	// ErrSessionCompleted is returned by Guess after the sample was finished.
	ErrSessionCompleted = errors.New("session already completed")
)

// Clock returns the current time.
type Clock func() time.Time

// State is the lifecycle of an Engine.
type State int

// Engine states.
const (
	StateIdle State = iota
	StateInProgress
	StateCompleted
)

// Outcome is the effect of a single keystroke.
type Outcome int

// Guess outcomes.
const (
	OutcomeAdvanced Outcome = iota
	OutcomeMismatched
	OutcomeFinished
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAdvanced:
		return "advanced"
	case OutcomeMismatched:
		return "mismatched"
	case OutcomeFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// LastOutcome drives colouring of the cursor letter.
type LastOutcome int

// Last keystroke outcomes.
const (
	LastNone LastOutcome = iota
	LastCorrect
	LastIncorrect
)

// Segments splits the sample for rendering.
type Segments struct {
	Confirmed string
	Error     string
	Pending   string
}

// Engine matches keystrokes against a sample one rune at a time.
type Engine struct {
	clock   Clock
	sample  []rune
	guessed int
	last    LastOutcome
	state   State
	stats   *SessionStats
	result  *model.Result
}

// New returns an idle engine. A nil clock uses time.Now.
func New(clock Clock) *Engine {
	if clock == nil {
		clock = time.Now
	}
	return &Engine{clock: clock, stats: NewSessionStats()}
}

// Init loads sample and starts a fresh session over it.
func (e *Engine) Init(sample string) {
	e.sample = []rune(sample)
	e.restart()
}

// Reset restarts the session over the already loaded sample.
func (e *Engine) Reset() {
	if e.state == StateIdle {
		return
	}
	e.restart()
}

func (e *Engine) restart() {
	e.guessed = 0
	e.last = LastNone
	e.state = StateInProgress
	e.stats = NewSessionStats()
	e.result = nil
}

// Guess feeds one pressed rune into the session.
func (e *Engine) Guess(pressed rune) (Outcome, error) {
	switch e.state {
	case StateIdle:
		return 0, ErrNotStarted
	case StateCompleted:
		return 0, ErrSessionCompleted
	}
	if len(e.sample) == 0 {
		return 0, ErrEmptySample
	}

	now := e.clock()
	e.stats.Start(now)
	expected := e.sample[e.guessed]
	e.stats.Record(expected, pressed)

	if pressed != expected {
		e.last = LastIncorrect
		return OutcomeMismatched, nil
	}

	e.stats.Confirm()
	e.guessed++
	e.last = LastCorrect
	if e.guessed < len(e.sample) {
		return OutcomeAdvanced, nil
	}

	e.state = StateCompleted
	result := e.stats.Finalize(string(e.sample), now)
	e.result = &result
	return OutcomeFinished, nil
}

// RenderState splits the sample into confirmed, error-highlighted and
// pending parts.
func (e *Engine) RenderState() Segments {
	if len(e.sample) == 0 {
		return Segments{}
	}
	errEnd := e.guessed
	if e.last == LastIncorrect && e.guessed < len(e.sample) {
		errEnd++
	}
	return Segments{
		Confirmed: string(e.sample[:e.guessed]),
		Error:     string(e.sample[e.guessed:errEnd]),
		Pending:   string(e.sample[errEnd:]),
	}
}

// State returns the lifecycle state.
func (e *Engine) State() State {
	return e.state
}

// Sample returns the loaded sample.
func (e *Engine) Sample() string {
	return string(e.sample)
}

// Guessed returns how many letters have been confirmed.
func (e *Engine) Guessed() int {
	return e.guessed
}

// Expected returns the letter the engine waits for.
func (e *Engine) Expected() (rune, bool) {
	if e.state != StateInProgress || e.guessed >= len(e.sample) {
		return 0, false
	}
	return e.sample[e.guessed], true
}

// Last returns the outcome of the most recent keystroke.
func (e *Engine) Last() LastOutcome {
	return e.last
}

// Stats exposes the running session statistics.
func (e *Engine) Stats() *SessionStats {
	return e.stats
}

// Result returns the finalized result once the sample has been completed.
func (e *Engine) Result() (model.Result, bool) {
	if e.result == nil {
		return model.Result{}, false
	}
	return e.result.Clone(), true
}

// Progress returns the completed share of the sample in percent.
func (e *Engine) Progress() int {
	if len(e.sample) == 0 {
		return 0
	}
	return e.guessed * 100 / len(e.sample)
}
