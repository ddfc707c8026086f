package screen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/leverage-calc/internal/calculator"
	"github.com/rovshanmuradov/leverage-calc/internal/export"
	"github.com/rovshanmuradov/leverage-calc/internal/ui"
	"github.com/rovshanmuradov/leverage-calc/internal/ui/component"
	"github.com/rovshanmuradov/leverage-calc/internal/ui/router"
	"github.com/rovshanmuradov/leverage-calc/internal/ui/style"
	"go.uber.org/zap"
)

// ResultsScreen shows the best rows of one calculation.
type ResultsScreen struct {
	width  int
	height int
	keyMap ui.KeyMap
	deps   Deps
	logger *zap.Logger

	outcome *calculator.Outcome
	table   *component.Table
	helpBar *component.HelpBar

	status      string
	statusStyle lipgloss.Style
	exporting   bool
}

// NewResultsScreen creates the results view for outcome.
func NewResultsScreen(deps Deps, outcome *calculator.Outcome) *ResultsScreen {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &ResultsScreen{
		keyMap:  ui.DefaultKeyMap(),
		deps:    deps,
		logger:  logger.Named("results_screen").With(zap.String("correlation_id", outcome.ID)),
		outcome: outcome,
	}

	s.table = component.NewTable().
		AddColumn("#", 5, lipgloss.Right).
		AddColumn("Capital", 0, lipgloss.Right).
		AddColumn("Leverage", 10, lipgloss.Right).
		AddColumn("Position", 0, lipgloss.Right).
		AddColumn("Profit", 0, lipgloss.Right).
		AddColumn("Loss", 0, lipgloss.Right).
		AddColumn("Risk used", 11, lipgloss.Right)
	s.table.SetRows(s.tableRows())
	if len(outcome.Top) > 0 {
		s.table.SetRowStyle(0, style.BestRowStyle)
	}

	s.helpBar = component.NewHelpBar().
		SetKeyBindings(s.keyMap.ContextualHelp(ui.RouteResults))

	return s
}

func (s *ResultsScreen) tableRows() [][]string {
	f := s.deps.Formatter
	rows := make([][]string, 0, len(s.outcome.Top))
	for i, row := range s.outcome.Top {
		rows = append(rows, []string{
			f.Integer(i + 1),
			f.Money(float64(row.CapitalInvested)),
			f.Leverage(row.Leverage),
			f.Money(row.Notional),
			f.Money(row.Profit),
			f.Money(row.Loss),
			f.Percent(row.RiskUsed),
		})
	}
	return rows
}

// Init initializes the screen
func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

// Update handles table navigation and export shortcuts.
func (s *ResultsScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keyMap.Quit), key.Matches(msg, s.keyMap.QuitShort):
			return s, tea.Quit
		case key.Matches(msg, s.keyMap.Up):
			s.table.MoveUp()
		case key.Matches(msg, s.keyMap.Down):
			s.table.MoveDown()
		case key.Matches(msg, s.keyMap.ExportCSV):
			return s, s.export(export.FormatCSV)
		case key.Matches(msg, s.keyMap.ExportJSON):
			return s, s.export(export.FormatJSON)
		}

	case ui.ExportedMsg:
		s.exporting = false
		switch {
		case errors.Is(msg.Err, export.ErrNothingToExport):
			s.setStatus("Nothing to export: no combination fits the risk budget", style.ErrorStyle)
		case msg.Err != nil:
			s.logger.Error("Export failed", zap.Error(msg.Err))
			s.setStatus(fmt.Sprintf("Export failed: %v", msg.Err), style.ErrorStyle)
		default:
			s.setStatus(fmt.Sprintf("Saved %s to %s", strings.ToUpper(string(msg.Format)), msg.Path), style.SuccessStyle)
		}
	}

	return s, nil
}

func (s *ResultsScreen) setStatus(text string, st lipgloss.Style) {
	s.status = text
	s.statusStyle = st
}

// export writes the full qualifying set in the background.
func (s *ResultsScreen) export(format export.ExportFormat) tea.Cmd {
	if s.exporting || s.deps.Exporter == nil {
		return nil
	}
	s.exporting = true
	s.setStatus("Exporting...", style.InfoStyle)

	exporter := s.deps.Exporter
	result := s.outcome.Result
	options := export.ExportOptions{Format: format, OutputDir: s.deps.ExportDir}

	return func() tea.Msg {
		path, err := exporter.Export(result, options)
		return ui.ExportedMsg{Format: format, Path: path, Err: err}
	}
}

// View renders the screen
func (s *ResultsScreen) View() string {
	var content strings.Builder

	content.WriteString(style.TitleStyle.Render("Sweep Results"))
	content.WriteString("\n")
	content.WriteString(style.PanelStyle.Render(s.renderSummary()))
	content.WriteString("\n")

	if s.outcome.Empty() {
		content.WriteString(style.WarningStyle.Render(fmt.Sprintf(
			"No optimal combination found. No position keeps the loss within %s.",
			s.deps.Formatter.Money(s.maxRisk()))))
		content.WriteString("\n")
	} else {
		content.WriteString(style.SubHeaderStyle.Render(fmt.Sprintf(
			"Top %d of %s qualifying combinations",
			len(s.outcome.Top), s.deps.Formatter.Integer(len(s.outcome.Result.Rows)))))
		content.WriteString("\n")
		content.WriteString(s.table.View())
		content.WriteString("\n")
		content.WriteString(s.renderSelection())
		content.WriteString("\n")
	}

	if s.status != "" {
		content.WriteString(s.statusStyle.Render(s.status))
		content.WriteString("\n")
	}

	content.WriteString(s.helpBar.View())
	return content.String()
}

func (s *ResultsScreen) maxRisk() float64 {
	if s.outcome.Result != nil {
		return s.outcome.Result.MaxRiskAmount
	}
	return s.outcome.Input.MaxRiskAmount()
}

func (s *ResultsScreen) renderSummary() string {
	f := s.deps.Formatter
	in := s.outcome.Input

	evaluated := 0
	if s.outcome.Result != nil {
		evaluated = s.outcome.Result.Evaluated
	}

	lines := [][2]string{
		{"Capital available", f.Money(in.CapitalAvailable)},
		{"Risk per trade", f.Percent(in.RiskPct / 100)},
		{"Take profit", f.Percent(in.TPPct / 100)},
		{"Stop loss", f.Percent(in.SLPct / 100)},
		{"Max risk amount", f.Money(s.maxRisk())},
		{"Combinations checked", f.Integer(evaluated)},
	}

	rendered := make([]string, len(lines))
	for i, line := range lines {
		rendered[i] = style.LabelStyle.Render(line[0]) + style.ValueStyle.Render(line[1])
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}

// renderSelection describes the highlighted row.
func (s *ResultsScreen) renderSelection() string {
	idx := s.table.GetSelectedRow()
	if idx < 0 || idx >= len(s.outcome.Top) {
		return ""
	}
	row := s.outcome.Top[idx]
	f := s.deps.Formatter

	return fmt.Sprintf("Rank %d: invest %s at %s for a %s position. %s if TP hits, %s if SL hits (%s of budget).",
		idx+1,
		f.Money(float64(row.CapitalInvested)),
		f.Leverage(row.Leverage),
		f.Money(row.Notional),
		style.ProfitStyle.Render("+"+f.Money(row.Profit)),
		style.LossStyle.Render("-"+f.Money(row.Loss)),
		f.Percent(row.RiskUsed))
}

// Outcome returns the outcome being shown.
func (s *ResultsScreen) Outcome() *calculator.Outcome {
	return s.outcome
}

// SetSize sets the screen dimensions
func (s *ResultsScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.table.SetWidth(width - 4)
	s.helpBar.SetWidth(width)
}

var _ router.Screen = (*ResultsScreen)(nil)
var _ router.Screen = (*CalculatorScreen)(nil)

