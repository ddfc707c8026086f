package style

import (
	"github.com/charmbracelet/lipgloss"
)

var palette = DefaultPalette()

// Header styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true).
			Margin(1, 0)

	SubHeaderStyle = lipgloss.NewStyle().
			Foreground(palette.Secondary).
			Bold(true).
			Margin(0, 0, 1, 0)
)

// Layout styles
var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.TextMuted).
			Padding(1, 2).
			Margin(0, 1)

	ActivePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(palette.Primary).
				Padding(1, 2).
				Margin(0, 1)
)

// Status styles
var (
	SuccessStyle = lipgloss.NewStyle().
			Foreground(palette.Success).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(palette.Error).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(palette.Warning).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(palette.Info)

	MutedStyle = lipgloss.NewStyle().
			Foreground(palette.TextMuted)
)

// Sweep styles
var (
	LabelStyle = lipgloss.NewStyle().
			Foreground(palette.TextSecondary).
			Width(22)

	ValueStyle = lipgloss.NewStyle().
			Foreground(palette.Text).
			Bold(true)

	ProfitStyle = lipgloss.NewStyle().
			Foreground(palette.Profit).
			Bold(true)

	LossStyle = lipgloss.NewStyle().
			Foreground(palette.Loss).
			Bold(true)

	BestRowStyle = lipgloss.NewStyle().
			Foreground(palette.Profit).
			Padding(0, 1)
)

// AdaptiveJoinHorizontal stacks blocks vertically on narrow terminals.
func AdaptiveJoinHorizontal(width int, blocks ...string) string {
	if width < 80 {
		return lipgloss.JoinVertical(lipgloss.Left, blocks...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

// AdaptiveWidth returns percentage of width, or nearly all of it on narrow
// terminals.
func AdaptiveWidth(width, percentage int) int {
	if width < 80 {
		return width - 4
	}
	return (width * percentage) / 100
}
