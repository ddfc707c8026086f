package ui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestCalculatorKeysLeaveLettersToInputs(t *testing.T) {
	km := DefaultKeyMap()

	for _, r := range "qejJk0123456789.,-" {
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
		for _, b := range km.ContextualHelp(RouteCalculator) {
			assert.False(t, key.Matches(msg, b), "key %q is bound on the calculator screen", string(r))
		}
	}
}

func TestContextualHelp(t *testing.T) {
	km := DefaultKeyMap()

	assert.Contains(t, km.ContextualHelp(RouteResults), km.ExportCSV)
	assert.Contains(t, km.ContextualHelp(RouteCalculator), km.Submit)
	assert.Equal(t, km.ShortHelp(), km.ContextualHelp(Route(42)))
	assert.Equal(t, "results", RouteResults.String())
	assert.Equal(t, "unknown", Route(42).String())
}
