package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/blindtype/internal/engine"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// buildStyledRunes colours the render segments of the engine. The first
// pending rune is underlined as the cursor unless an error is highlighted.
func buildStyledRunes(seg engine.Segments) []styledRune {
	out := make([]styledRune, 0, len(seg.Confirmed)+len(seg.Error)+len(seg.Pending))
	for _, r := range seg.Confirmed {
		out = append(out, newStyledRune(r, correctStyle))
	}
	for _, r := range seg.Error {
		style := incorrectStyle
		if r == ' ' {
			out = append(out, styledRune{s: style.Render("•"), width: 1, isSpace: true})
			continue
		}
		out = append(out, newStyledRune(r, style))
	}
	for i, r := range []rune(seg.Pending) {
		style := pendingStyle
		if i == 0 && seg.Error == "" {
			style = cursorStyle
		}
		out = append(out, newStyledRune(r, style))
	}
	return out
}

func newStyledRune(r rune, style lipgloss.Style) styledRune {
	return styledRune{
		s:       style.Render(string(r)),
		width:   runewidth.RuneWidth(r),
		isSpace: r == ' ',
	}
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx+1]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
			}
			lineWidth = lineWidthOf(line)
			lastSpaceIdx = lastSpaceIndex(line)
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
