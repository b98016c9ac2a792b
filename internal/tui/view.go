package tui

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/verte-zerg/blindtype/internal/model"
	statsPkg "github.com/verte-zerg/blindtype/internal/stats"
)

const (
	defaultContentWidth = 60
	lettersPerRow       = 8
)

// View implements tea.Model.
func (m *Model) View() string {
	screen := m.nav.Current()
	if screen == ScreenClosed {
		return ""
	}
	header := titleStyle.Render(screen.Title())
	body := m.renderBody(screen)
	footer := m.renderFooter(screen)

	content := lipgloss.JoinVertical(lipgloss.Center, header, "", body)
	if m.width == 0 || m.height == 0 {
		return content + "\n\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	page := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return page + "\n" + footerLine
}

func (m *Model) renderBody(screen Screen) string {
	switch screen {
	case ScreenMain:
		return m.renderMain()
	case ScreenTyping:
		return m.renderTyping()
	case ScreenTypingResult:
		return m.renderTypingResult()
	case ScreenGlobalResult:
		return m.renderGlobalResult()
	case ScreenLetterResult:
		return m.renderLetterResult()
	case ScreenExiting:
		return "Do you really want to exit?"
	case ScreenAlert:
		return alertStyle.Render(m.alert)
	default:
		return ""
	}
}

func (m *Model) renderFooter(screen Screen) string {
	line := m.help.ShortHelpView(hints(screen))
	switch {
	case m.fetching:
		line = m.spinner.View() + " " + statusStyle.Render(m.status) + "  " + line
	case m.status != "":
		line = statusStyle.Render(m.status) + "  " + line
	}
	return footerStyle.Render(line)
}

func (m *Model) renderMain() string {
	lines := []string{
		logoStyle.Render("b l i n d t y p e"),
		"",
		fmt.Sprintf("%d sentences loaded", len(m.sentences)),
	}
	if m.config.FocusWeak && len(m.weakSet) > 0 {
		lines = append(lines, fmt.Sprintf("Focusing on weak letters: %s", formatRuneSet(m.weakSet)))
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m *Model) renderTyping() string {
	width := m.contentWidth()
	styled := buildStyledRunes(m.engine.RenderState())
	text := lipgloss.NewStyle().Width(width).Render(wrapStyledRunes(styled, width))
	progress := footerStyle.Render(fmt.Sprintf("Progress %d%%", m.engine.Progress()))
	kb := keyboard{pressed: m.pressed, upper: unicode.IsUpper(m.pressed) || isUpperLayout(m.pressed)}
	return lipgloss.JoinVertical(lipgloss.Center, text, "", progress, "", kb.render())
}

func (m *Model) renderTypingResult() string {
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		renderCard("WPM", fmt.Sprintf("%.1f", m.session.WPM)),
		renderCard("Accuracy", fmt.Sprintf("%.1f%%", m.session.TotalAccuracy)),
	)
	letters := renderLetterAccuracies(m.session.Accuracies())
	kb := keyboard{accuracy: m.session.AccuracyMap()}
	return lipgloss.JoinVertical(lipgloss.Center, cards, "", letters, "", kb.render())
}

func (m *Model) renderGlobalResult() string {
	if len(m.display.Letters) == 0 {
		return "No results yet. Finish a session first."
	}
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		renderCard("Average WPM", fmt.Sprintf("%.1f", m.display.WPM)),
		renderCard("Average accuracy", fmt.Sprintf("%.1f%%", m.display.TotalAccuracy)),
	)
	letters := renderLetterAccuracies(m.display.Letters)
	kb := keyboard{accuracy: m.display.Accuracy}
	hint := footerStyle.Render("Press a letter to see its breakdown")
	return lipgloss.JoinVertical(lipgloss.Center, cards, "", letters, "", kb.render(), "", hint)
}

func (m *Model) renderLetterResult() string {
	label := statsPkg.LetterLabel(string(m.letterKey))
	if m.letterErr != nil {
		return fmt.Sprintf("No data for letter %q", label)
	}
	d := m.letter
	accStyle := lipgloss.NewStyle().Foreground(bandColor(model.BandFor(d.Accuracy)))
	header := fmt.Sprintf("Letter %s: %s over %d presses",
		summaryStyle.Render(label), accStyle.Render(fmt.Sprintf("%.1f%%", d.Accuracy)), d.Presses)
	var mistakes []string
	for _, share := range d.Shares {
		if share.Pressed == d.Letter {
			continue
		}
		mistakes = append(mistakes, fmt.Sprintf("%-8s %5.1f%%  (%d)", statsPkg.LetterLabel(string(share.Pressed)), share.Share, share.Count))
	}
	if len(mistakes) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, "", "No mistakes for this letter.")
	}
	lines := append([]string{header, "", cardTitleStyle.Render("Pressed instead")}, mistakes...)
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return defaultContentWidth
	}
	width := int(float64(m.width) * 0.70)
	if width < 1 {
		width = 1
	}
	return width
}

func renderCard(title, value string) string {
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Center, cardTitleStyle.Render(title), summaryStyle.Render(value)))
}

// renderLetterAccuracies lists letters below 100% coloured by band.
func renderLetterAccuracies(letters []model.LetterAccuracy) string {
	cells := make([]string, 0, len(letters))
	for _, la := range letters {
		if la.Accuracy >= 100 {
			continue
		}
		style := lipgloss.NewStyle().Foreground(bandColor(model.BandFor(la.Accuracy)))
		cells = append(cells, style.Render(fmt.Sprintf("%s %5.1f%%", statsPkg.LetterLabel(string(la.Letter)), la.Accuracy)))
	}
	if len(cells) == 0 {
		if len(letters) == 0 {
			return ""
		}
		return correctStyle.Render("You made it to 100% accuracy!")
	}
	rows := make([]string, 0, len(cells)/lettersPerRow+1)
	for start := 0; start < len(cells); start += lettersPerRow {
		end := start + lettersPerRow
		if end > len(cells) {
			end = len(cells)
		}
		rows = append(rows, strings.Join(cells[start:end], "   "))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func formatRuneSet(set map[rune]struct{}) string {
	runes := lo.Keys(set)
	slices.Sort(runes)
	return string(runes)
}
