package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/blindtype/internal/model"
)

var (
	lowerRows = []string{"`1234567890-=", "qwertyuiop[]\\", "asdfghjkl;'", "zxcvbnm,./"}
	upperRows = []string{"~!@#$%^&*()_+", "QWERTYUIOP{}|", "ASDFGHJKL:\"", "ZXCVBNM<>?"}
	rowIndent = []int{0, 3, 4, 6}
)

// keyboard renders a QWERTY layout. Keys are coloured by the accuracy of
// their letter; the pressed key, if any, is highlighted.
type keyboard struct {
	accuracy map[rune]float64
	pressed  rune
	upper    bool
}

func (k keyboard) render() string {
	rows := lowerRows
	if k.upper {
		rows = upperRows
	}
	lines := make([]string, 0, len(rows)+1)
	for i, row := range rows {
		keysRendered := make([]string, 0, len(row))
		for _, r := range row {
			keysRendered = append(keysRendered, k.renderKey(r, string(r)))
		}
		line := lipgloss.JoinHorizontal(lipgloss.Top, keysRendered...)
		lines = append(lines, indentBlock(line, rowIndent[i]))
	}
	space := k.renderKey(' ', strings.Repeat(" ", 12)+"space"+strings.Repeat(" ", 12))
	lines = append(lines, indentBlock(space, 14))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (k keyboard) renderKey(r rune, label string) string {
	style := keyStyle
	switch {
	case k.pressed != 0 && r == k.pressed:
		style = style.Foreground(lipgloss.Color("#000000")).Background(pressedKeyColor)
	default:
		if acc, ok := k.accuracy[r]; ok {
			style = style.Foreground(bandColor(model.BandFor(acc)))
		}
	}
	return style.Render(label)
}

func indentBlock(block string, n int) string {
	if n <= 0 {
		return block
	}
	pad := strings.Repeat(" ", n)
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		lines[i] = pad + line
	}
	return strings.Join(lines, "\n")
}

// isUpperLayout reports whether r lives on the shifted layer.
func isUpperLayout(r rune) bool {
	for _, row := range upperRows {
		if strings.ContainsRune(row, r) {
			return true
		}
	}
	return false
}
