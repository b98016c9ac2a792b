package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/blindtype/internal/model"
)

var (
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	cursorStyle    = pendingStyle.Underline(true)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#52C41A")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	cardStyle    = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	alertStyle     = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF4D4F")).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
	logoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))

	keyStyle        = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.NormalBorder(), true).BorderForeground(lipgloss.Color("#4A4A4A"))
	pressedKeyColor = lipgloss.Color("#FADB14")
)

// bandColor maps an accuracy band to its display colour.
func bandColor(b model.Band) lipgloss.TerminalColor {
	switch b {
	case model.BandGood:
		return lipgloss.Color("#52C41A")
	case model.BandFair:
		return lipgloss.Color("#1890FF")
	case model.BandPoor:
		return lipgloss.Color("#FF4D4F")
	default:
		return lipgloss.NoColor{}
	}
}
