package screen

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/leverage-calc/internal/calculator"
	"github.com/rovshanmuradov/leverage-calc/internal/config"
	"github.com/rovshanmuradov/leverage-calc/internal/export"
	"github.com/rovshanmuradov/leverage-calc/internal/format"
	"github.com/rovshanmuradov/leverage-calc/internal/sweep"
	"github.com/rovshanmuradov/leverage-calc/internal/ui"
	"github.com/rovshanmuradov/leverage-calc/internal/ui/component"
	"github.com/rovshanmuradov/leverage-calc/internal/ui/router"
	"github.com/rovshanmuradov/leverage-calc/internal/ui/style"
	"github.com/rovshanmuradov/leverage-calc/internal/validate"
	"go.uber.org/zap"
)

// Deps are the collaborators shared by every screen.
type Deps struct {
	Service   *calculator.Service
	Exporter  *export.ResultExporter
	Formatter *format.Formatter
	Defaults  config.FormDefaults
	ExportDir string
	Logger    *zap.Logger
}

type formField struct {
	field validate.Field
	label string
}

var calculatorFields = []formField{
	{validate.FieldCapital, "Capital available ($)"},
	{validate.FieldRisk, "Risk per trade (%)"},
	{validate.FieldTP, "Take profit (%)"},
	{validate.FieldSL, "Stop loss (%)"},
}

// CalculatorScreen collects the four sweep inputs and runs the calculation.
type CalculatorScreen struct {
	width  int
	height int
	keyMap ui.KeyMap
	deps   Deps
	logger *zap.Logger

	form    *component.Form
	helpBar *component.HelpBar
	status  string

	titleStyle     lipgloss.Style
	containerStyle lipgloss.Style
}

// NewCalculatorScreen creates the input form prefilled with deps.Defaults.
func NewCalculatorScreen(deps Deps) *CalculatorScreen {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &CalculatorScreen{
		keyMap: ui.DefaultKeyMap(),
		deps:   deps,
		logger: logger.Named("calculator_screen"),

		titleStyle: style.TitleStyle.Align(lipgloss.Center),
		containerStyle: style.ActivePanelStyle.
			Padding(1, 3),
	}

	s.form = component.NewForm()
	for _, f := range calculatorFields {
		s.form.AddField(string(f.field), f.label, "")
		if bound, ok := validate.DefaultBounds[f.field]; ok {
			s.form.SetFieldHint(string(f.field), " "+bound.String())
		}
	}
	s.applyDefaults()

	s.helpBar = component.NewHelpBar().
		SetKeyBindings(s.keyMap.ContextualHelp(ui.RouteCalculator))

	return s
}

func (s *CalculatorScreen) applyDefaults() {
	d := s.deps.Defaults
	values := map[validate.Field]float64{
		validate.FieldCapital: d.Capital,
		validate.FieldRisk:    d.RiskPct,
		validate.FieldTP:      d.TPPct,
		validate.FieldSL:      d.SLPct,
	}
	for field, v := range values {
		s.form.SetFieldValue(string(field), strconv.FormatFloat(v, 'f', -1, 64))
	}
	s.form.ClearErrors()
	s.form.FocusField(string(validate.FieldCapital))
	s.status = ""
}

// Init initializes the screen
func (s *CalculatorScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update handles key presses for the form.
func (s *CalculatorScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, s.keyMap.Quit):
			return s, tea.Quit

		case key.Matches(msg, s.keyMap.Submit):
			return s, s.submit()

		case key.Matches(msg, s.keyMap.Reset):
			s.applyDefaults()
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.form, cmd = s.form.Update(msg)
	return s, cmd
}

// submit validates the form and runs the sweep. Violations are shown under
// their fields; a successful outcome is handed to the app as CalculatedMsg.
func (s *CalculatorScreen) submit() tea.Cmd {
	s.form.ClearErrors()
	s.status = ""

	raw := validate.RawInput{
		Capital: s.form.GetValue(string(validate.FieldCapital)),
		Risk:    s.form.GetValue(string(validate.FieldRisk)),
		TP:      s.form.GetValue(string(validate.FieldTP)),
		SL:      s.form.GetValue(string(validate.FieldSL)),
	}

	outcome, err := s.deps.Service.Calculate(raw)
	if err != nil {
		s.showError(err)
		return nil
	}

	return func() tea.Msg {
		return ui.CalculatedMsg{Outcome: outcome}
	}
}

func (s *CalculatorScreen) showError(err error) {
	if errors.Is(err, sweep.ErrNoCapitalRange) {
		s.status = "Capital must be at least 1 to form a position"
		return
	}
	if errors.Is(err, sweep.ErrCapitalTooLarge) {
		s.status = fmt.Sprintf("Capital must not exceed %d", sweep.MaxCapital)
		return
	}

	byField := validate.FieldErrors(err)
	if len(byField) == 0 {
		s.logger.Error("Calculation failed", zap.Error(err))
		s.status = fmt.Sprintf("Calculation failed: %v", err)
		return
	}

	focused := false
	for _, f := range calculatorFields {
		fieldErr, ok := byField[f.field]
		if !ok {
			continue
		}
		s.form.SetFieldError(string(f.field), fieldMessage(fieldErr))
		if !focused {
			s.form.FocusField(string(f.field))
			focused = true
		}
	}
	s.status = fmt.Sprintf("%d field(s) need attention", len(byField))
}

// fieldMessage turns a validation error into text for the field's error line.
func fieldMessage(err error) string {
	var missing *validate.MissingValueError
	var outOfRange *validate.OutOfRangeError
	switch {
	case errors.As(err, &missing):
		return "Enter a number"
	case errors.As(err, &outOfRange):
		return "Must be in " + outOfRange.Bound.String()
	default:
		return err.Error()
	}
}

// View renders the screen
func (s *CalculatorScreen) View() string {
	var content strings.Builder

	content.WriteString(s.titleStyle.Render("Leverage & Capital Sweep"))
	content.WriteString("\n")
	content.WriteString(style.MutedStyle.Render(
		fmt.Sprintf("Every capital from 1 to your balance and leverage x1..x%d is checked against your risk budget.", sweep.MaxLeverage)))
	content.WriteString("\n\n")

	content.WriteString(s.containerStyle.Render(s.form.View()))
	content.WriteString("\n")

	if s.status != "" {
		content.WriteString(style.ErrorStyle.Render(s.status))
		content.WriteString("\n")
	}

	content.WriteString(s.helpBar.View())
	return content.String()
}

// SetSize sets the screen dimensions
func (s *CalculatorScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.form.SetSize(style.AdaptiveWidth(width, 50), height)
	s.helpBar.SetWidth(width)
}
