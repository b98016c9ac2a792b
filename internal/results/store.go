// Package results persists the cross-session aggregate of typing results.
package results

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/samber/lo"

	"github.com/verte-zerg/blindtype/internal/log"
	"github.com/verte-zerg/blindtype/internal/model"
)

// ErrLetterNotFound is returned when a letter has no recorded statistics.
var ErrLetterNotFound = errors.New("no data for this letter")

// Store owns the read-modify-write cycle of the aggregate file.
type Store struct {
	path string
}

// New returns a store backed by the JSON document at path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the aggregate. A missing, empty or unparsable file yields the
// empty aggregate; only the corrupt case is logged.
func (s *Store) Load() model.Result {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("failed to read results, starting empty", "path", s.path, "err", err)
		}
		return model.EmptyResult()
	}
	if len(data) == 0 {
		return model.EmptyResult()
	}
	var agg model.Result
	if err := json.Unmarshal(data, &agg); err != nil {
		log.Warn("discarding unparsable results", "path", s.path, "err", err)
		return model.EmptyResult()
	}
	if agg.Letters == nil {
		agg.Letters = map[rune]model.LetterStat{}
	}
	return agg
}

// MergeAndPersist merges next into the stored aggregate, writes it back and
// returns the merged aggregate.
func (s *Store) MergeAndPersist(next model.Result) (model.Result, error) {
	merged := Merge(s.Load(), next)
	if err := s.write(merged); err != nil {
		return model.Result{}, err
	}
	log.Debug("results merged", "path", s.path, "letters", len(merged.Letters))
	return merged, nil
}

// Reset truncates the aggregate to an empty document.
func (s *Store) Reset() error {
	if err := s.write(model.EmptyResult()); err != nil {
		return fmt.Errorf("failed to reset results: %w", err)
	}
	return nil
}

func (s *Store) write(agg model.Result) error {
	data, err := json.MarshalIndent(agg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	return writeAtomic(s.path, data)
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create results dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(dir, "results-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp results: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync results: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close results: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace results: %w", err)
	}
	return nil
}

// Display is the aggregate prepared for the global results screen.
type Display struct {
	WPM           float64
	TotalAccuracy float64
	Letters       []model.LetterAccuracy
	Accuracy      map[rune]float64
}

// LetterDisplay is the breakdown of one expected letter.
type LetterDisplay struct {
	Letter   rune
	Accuracy float64
	Presses  int
	Shares   []model.PressShare
}

// NewDisplay prepares any result for display.
func NewDisplay(r model.Result) Display {
	return Display{
		WPM:           r.WPM,
		TotalAccuracy: r.TotalAccuracy,
		Letters:       r.Accuracies(),
		Accuracy:      r.AccuracyMap(),
	}
}

// NewLetterDisplay prepares the breakdown of letter in r.
func NewLetterDisplay(r model.Result, letter rune) (LetterDisplay, error) {
	st, ok := r.Letters[letter]
	if !ok || st.TotalPresses == 0 {
		return LetterDisplay{}, fmt.Errorf("%w: %q", ErrLetterNotFound, string(letter))
	}
	return LetterDisplay{
		Letter:   letter,
		Accuracy: st.Accuracy(),
		Presses:  st.TotalPresses,
		Shares:   st.Shares(),
	}, nil
}

// LoadForDisplay loads the aggregate for the global results view.
func (s *Store) LoadForDisplay() Display {
	return NewDisplay(s.Load())
}

// LoadLetter loads the breakdown of one letter, or ErrLetterNotFound.
func (s *Store) LoadLetter(letter rune) (LetterDisplay, error) {
	return NewLetterDisplay(s.Load(), letter)
}

// Letters returns the letters that have data, in ascending order.
func (s *Store) Letters() []rune {
	letters := lo.Keys(s.Load().Letters)
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })
	return letters
}
