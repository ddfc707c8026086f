package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/leverage-calc/internal/ui"
	"github.com/rovshanmuradov/leverage-calc/internal/ui/router"
	"github.com/rovshanmuradov/leverage-calc/internal/ui/screen"
)

// AppModel represents the main TUI application model
type AppModel struct {
	router *router.Router
	deps   screen.Deps
	width  int
	height int
}

// NewAppModel creates the application rooted at the calculator form.
func NewAppModel(deps screen.Deps) *AppModel {
	return &AppModel{
		router: router.New(screen.NewCalculatorScreen(deps)),
		deps:   deps,
	}
}

// Init initializes the application
func (m *AppModel) Init() tea.Cmd {
	return m.router.Init()
}

// Update handles application-level updates
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case ui.CalculatedMsg:
		return m, m.router.Push(screen.NewResultsScreen(m.deps, msg.Outcome))
	}

	_, cmd := m.router.Update(msg)
	return m, cmd
}

// View renders the application
func (m *AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	return m.router.View()
}
