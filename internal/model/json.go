package model

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

type letterStatJSON struct {
	MainLetter       string         `json:"main_letter"`
	LetterAccuracies map[string]int `json:"letter_accuracies"`
	PressesOfKey     int            `json:"presses_of_key"`
}

type resultJSON struct {
	WPM           float64                   `json:"wpm"`
	TotalAccuracy float64                   `json:"total_accuracy"`
	LettersInfo   map[string]letterStatJSON `json:"letters_info"`
}

// MarshalJSON encodes the letter stat with single-rune string keys.
func (s LetterStat) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.toJSON())
}

// UnmarshalJSON decodes a letter stat written by MarshalJSON.
func (s *LetterStat) UnmarshalJSON(data []byte) error {
	var raw letterStatJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	st, err := raw.toStat()
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// MarshalJSON encodes the result in the persisted aggregate layout.
func (r Result) MarshalJSON() ([]byte, error) {
	out := resultJSON{
		WPM:           r.WPM,
		TotalAccuracy: r.TotalAccuracy,
		LettersInfo:   make(map[string]letterStatJSON, len(r.Letters)),
	}
	for letter, st := range r.Letters {
		out.LettersInfo[string(letter)] = st.toJSON()
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the persisted aggregate layout.
func (r *Result) UnmarshalJSON(data []byte) error {
	var raw resultJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := Result{WPM: raw.WPM, TotalAccuracy: raw.TotalAccuracy, Letters: make(map[rune]LetterStat, len(raw.LettersInfo))}
	for key, info := range raw.LettersInfo {
		letter, err := singleRune(key)
		if err != nil {
			return fmt.Errorf("letters_info: %w", err)
		}
		st, err := info.toStat()
		if err != nil {
			return fmt.Errorf("letters_info[%q]: %w", key, err)
		}
		if st.MainLetter != letter {
			return fmt.Errorf("letters_info[%q]: main_letter %q does not match key", key, string(st.MainLetter))
		}
		out.Letters[letter] = st
	}
	*r = out
	return nil
}

func (s LetterStat) toJSON() letterStatJSON {
	presses := make(map[string]int, len(s.Presses))
	for r, n := range s.Presses {
		presses[string(r)] = n
	}
	return letterStatJSON{
		MainLetter:       string(s.MainLetter),
		LetterAccuracies: presses,
		PressesOfKey:     s.TotalPresses,
	}
}

func (raw letterStatJSON) toStat() (LetterStat, error) {
	main, err := singleRune(raw.MainLetter)
	if err != nil {
		return LetterStat{}, fmt.Errorf("main_letter: %w", err)
	}
	st := LetterStat{MainLetter: main, Presses: make(map[rune]int, len(raw.LetterAccuracies)), TotalPresses: raw.PressesOfKey}
	sum := 0
	for key, n := range raw.LetterAccuracies {
		pressed, err := singleRune(key)
		if err != nil {
			return LetterStat{}, fmt.Errorf("letter_accuracies: %w", err)
		}
		if n < 0 {
			return LetterStat{}, fmt.Errorf("letter_accuracies[%q]: negative count %d", key, n)
		}
		st.Presses[pressed] = n
		sum += n
	}
	if sum != st.TotalPresses {
		return LetterStat{}, fmt.Errorf("presses_of_key %d does not match distribution sum %d", st.TotalPresses, sum)
	}
	return st, nil
}

func singleRune(s string) (rune, error) {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) || (r == utf8.RuneError && size == 1) {
		return 0, fmt.Errorf("expected a single character, got %q", s)
	}
	return r, nil
}
