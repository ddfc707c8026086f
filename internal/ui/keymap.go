package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines keyboard shortcuts for the application.
// Letter keys are left to the form's text inputs, so the calculator screen
// only reacts to control keys.
type KeyMap struct {
	// Global navigation
	Quit      key.Binding
	QuitShort key.Binding
	Back      key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Tab      key.Binding
	ShiftTab key.Binding

	// Calculator form
	Submit key.Binding
	Reset  key.Binding

	// Results
	ExportCSV  key.Binding
	ExportJSON key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		QuitShort: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),

		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev"),
		),

		Submit: key.NewBinding(
			key.WithKeys("enter", "ctrl+s"),
			key.WithHelp("enter", "calculate"),
		),
		Reset: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "defaults"),
		),

		ExportCSV: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export csv"),
		),
		ExportJSON: key.NewBinding(
			key.WithKeys("J"),
			key.WithHelp("J", "export json"),
		),
	}
}

// ShortHelp returns key help text for the current context
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Quit}
}

// ContextualHelp returns help text based on the current route
func (k KeyMap) ContextualHelp(route Route) []key.Binding {
	switch route {
	case RouteCalculator:
		return []key.Binding{k.Tab, k.ShiftTab, k.Submit, k.Reset, k.Quit}
	case RouteResults:
		return []key.Binding{k.Up, k.Down, k.ExportCSV, k.ExportJSON, k.Back, k.QuitShort}
	default:
		return k.ShortHelp()
	}
}
