// Package stats renders reports over the session history.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/verte-zerg/blindtype/internal/model"
)

const sparkChars = " .:-=+*#%@"

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(min(i+1, window))
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints a summary for sessions.
func RenderSummary(w io.Writer, sessions []model.SessionAggregate) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	var totalWPM, totalAcc, bestWPM float64
	keystrokes := 0
	for _, s := range sessions {
		totalWPM += s.WPM
		totalAcc += s.Accuracy
		bestWPM = math.Max(bestWPM, s.WPM)
		keystrokes += s.Keystrokes
	}
	count := float64(len(sessions))
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d", len(sessions)),
		fmt.Sprintf("Keystrokes: %d", keystrokes),
		fmt.Sprintf("Avg WPM: %.1f", totalWPM/count),
		fmt.Sprintf("Best WPM: %.1f", bestWPM),
		fmt.Sprintf("Avg Accuracy: %.1f%%", totalAcc/count),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderCurves prints moving-average sparklines for WPM and accuracy. Only
// the most recent width points are drawn when width is positive.
func RenderCurves(w io.Writer, sessions []model.SessionAggregate, window, width int) error {
	if len(sessions) == 0 {
		return nil
	}
	wpms := make([]float64, len(sessions))
	accs := make([]float64, len(sessions))
	for i, s := range sessions {
		wpms[i] = s.WPM
		accs[i] = s.Accuracy
	}
	wpms = MovingAverage(wpms, window)
	accs = MovingAverage(accs, window)

	const label = "Accuracy "
	if width > len(label)+2 && len(wpms) > width-len(label)-2 {
		keep := width - len(label) - 2
		wpms = wpms[len(wpms)-keep:]
		accs = accs[len(accs)-keep:]
	}
	rows := [][]string{
		{"WPM", "│" + Sparkline(wpms) + "│", fmt.Sprintf("%.1f → %.1f", wpms[0], wpms[len(wpms)-1])},
		{"Accuracy", "│" + Sparkline(accs) + "│", fmt.Sprintf("%.1f%% → %.1f%%", accs[0], accs[len(accs)-1])},
	}
	if _, err := fmt.Fprintf(w, "Learning Curves (window %d)\n", window); err != nil {
		return err
	}
	for _, line := range formatTable(nil, rows, nil) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderLetterTable prints per-letter aggregates, weakest first.
func RenderLetterTable(w io.Writer, aggs []model.LetterAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No letter stats found.")
		return err
	}
	rows := make([]model.LetterAggregate, len(aggs))
	copy(rows, aggs)
	sort.Slice(rows, func(i, j int) bool {
		ai, aj := rows[i].Accuracy(), rows[j].Accuracy()
		if ai == aj {
			return rows[i].Letter < rows[j].Letter
		}
		return ai < aj
	})

	if _, err := fmt.Fprintln(w, "Per-Letter"); err != nil {
		return err
	}
	headers := []string{"Letter", "Accuracy", "Correct", "Presses"}
	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, []string{
			LetterLabel(r.Letter),
			fmt.Sprintf("%.1f%%", r.Accuracy()),
			fmt.Sprintf("%d", r.Correct),
			fmt.Sprintf("%d", r.Presses),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true}
	for _, line := range formatTable(headers, tableRows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// LetterLabel makes whitespace letters visible.
func LetterLabel(letter string) string {
	switch letter {
	case " ":
		return "<space>"
	case "\t":
		return "<tab>"
	default:
		return letter
	}
}
