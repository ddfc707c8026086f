package component

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/leverage-calc/internal/ui/style"
)

// HelpBar lists the key bindings of the current screen. The bindings sit on
// one line when they fit and fall back to columns on narrow terminals.
type HelpBar struct {
	bindings []key.Binding
	width    int

	help           help.Model
	containerStyle lipgloss.Style
}

// NewHelpBar creates a new help bar component
func NewHelpBar() *HelpBar {
	palette := style.DefaultPalette()
	keyStyle := lipgloss.NewStyle().Foreground(palette.Primary).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(palette.TextMuted)

	m := help.New()
	m.ShortSeparator = " • "
	m.Styles.ShortKey = keyStyle
	m.Styles.ShortDesc = descStyle
	m.Styles.ShortSeparator = descStyle
	m.Styles.FullKey = keyStyle
	m.Styles.FullDesc = descStyle
	m.Styles.FullSeparator = descStyle
	m.Styles.Ellipsis = descStyle

	return &HelpBar{
		width: 80,
		help:  m,
		containerStyle: lipgloss.NewStyle().
			Padding(0, 1).
			Margin(1, 0, 0, 0),
	}
}

// SetKeyBindings sets the key bindings to display
func (h *HelpBar) SetKeyBindings(bindings []key.Binding) *HelpBar {
	h.bindings = bindings
	return h
}

// SetWidth sets the help bar width
func (h *HelpBar) SetWidth(width int) *HelpBar {
	if width > 0 {
		h.width = width
	}
	return h
}

// View renders the bindings.
func (h *HelpBar) View() string {
	bindings := h.visible()
	if len(bindings) == 0 {
		return ""
	}
	return h.containerStyle.Width(h.width).Render(h.layout(bindings, h.width-4))
}

// layout picks the single line, or the fewest rows per column that fit
// maxWidth. A single column is used when nothing narrower exists.
func (h *HelpBar) layout(bindings []key.Binding, maxWidth int) string {
	h.help.Width = 0

	line := h.help.ShortHelpView(bindings)
	if lipgloss.Width(line) <= maxWidth || len(bindings) == 1 {
		return line
	}

	var view string
	for rows := 2; rows <= len(bindings); rows++ {
		view = h.help.FullHelpView(columns(bindings, rows))
		if lipgloss.Width(view) <= maxWidth {
			break
		}
	}
	return view
}

func (h *HelpBar) visible() []key.Binding {
	bindings := make([]key.Binding, 0, len(h.bindings))
	for _, b := range h.bindings {
		if !b.Enabled() || b.Help().Key == "" || b.Help().Desc == "" {
			continue
		}
		bindings = append(bindings, b)
	}
	return bindings
}

// columns splits bindings into groups of at most rows entries.
func columns(bindings []key.Binding, rows int) [][]key.Binding {
	groups := make([][]key.Binding, 0, (len(bindings)+rows-1)/rows)
	for start := 0; start < len(bindings); start += rows {
		end := min(start+rows, len(bindings))
		groups = append(groups, bindings[start:end])
	}
	return groups
}
