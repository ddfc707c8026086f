package component

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/leverage-calc/internal/ui/style"
)

// FormField represents a single form field
type FormField struct {
	Name        string
	Label       string
	Hint        string
	Value       string
	Placeholder string
	Error       string

	textInput textinput.Model
}

// Form is a vertical list of numeric text inputs with one focused field.
type Form struct {
	fields     []FormField
	focusIndex int
	width      int
	height     int

	labelStyle   lipgloss.Style
	hintStyle    lipgloss.Style
	inputStyle   lipgloss.Style
	focusedStyle lipgloss.Style
	errorStyle   lipgloss.Style
}

// NewForm creates a new form component
func NewForm() *Form {
	palette := style.DefaultPalette()

	return &Form{
		fields: make([]FormField, 0),

		labelStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Bold(true).
			MarginRight(1),

		hintStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted),

		inputStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Background(palette.BackgroundAlt).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.TextMuted),

		focusedStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Background(palette.BackgroundAlt).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.Primary),

		errorStyle: lipgloss.NewStyle().
			Foreground(palette.Error),
	}
}

// AddField adds a number field to the form. An empty placeholder shows "0".
func (f *Form) AddField(name, label, placeholder string) *Form {
	if placeholder == "" {
		placeholder = "0"
	}

	ti := textinput.New()
	ti.Width = 24
	ti.CharLimit = 32
	ti.Placeholder = placeholder

	f.fields = append(f.fields, FormField{
		Name:        name,
		Label:       label,
		Placeholder: placeholder,
		textInput:   ti,
	})

	if len(f.fields) == 1 {
		f.fields[0].textInput.Focus()
	}
	return f
}

// SetFieldHint sets the muted text shown next to a field label.
func (f *Form) SetFieldHint(name, hint string) *Form {
	if field := f.field(name); field != nil {
		field.Hint = hint
	}
	return f
}

// SetFieldValue sets the value of a field
func (f *Form) SetFieldValue(name, value string) *Form {
	if field := f.field(name); field != nil {
		field.Value = value
		field.textInput.SetValue(value)
		field.textInput.CursorEnd()
	}
	return f
}

// SetFieldError shows msg under the named field. An empty msg clears it.
func (f *Form) SetFieldError(name, msg string) *Form {
	if field := f.field(name); field != nil {
		field.Error = msg
	}
	return f
}

// ClearErrors removes every field error.
func (f *Form) ClearErrors() *Form {
	for i := range f.fields {
		f.fields[i].Error = ""
	}
	return f
}

// HasErrors reports whether any field shows an error.
func (f *Form) HasErrors() bool {
	for _, field := range f.fields {
		if field.Error != "" {
			return true
		}
	}
	return false
}

// FieldError returns the error shown under the named field.
func (f *Form) FieldError(name string) string {
	if field := f.field(name); field != nil {
		return field.Error
	}
	return ""
}

// Init initializes the form (for compatibility with tea.Model interface)
func (f *Form) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles focus movement and forwards input to the focused field.
func (f *Form) Update(msg tea.Msg) (*Form, tea.Cmd) {
	if len(f.fields) == 0 {
		return f, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab", "down":
			f.NextField()
			return f, nil
		case "shift+tab", "up":
			f.PrevField()
			return f, nil
		}
	}

	field := &f.fields[f.focusIndex]
	before := field.Value

	var cmd tea.Cmd
	field.textInput, cmd = field.textInput.Update(msg)
	field.Value = field.textInput.Value()

	// Editing a field clears its stale error.
	if field.Value != before {
		field.Error = ""
	}
	return f, cmd
}

// View renders the form
func (f *Form) View() string {
	if len(f.fields) == 0 {
		return "No fields defined"
	}

	var content strings.Builder

	for i, field := range f.fields {
		label := f.labelStyle.Render(field.Label)
		if field.Hint != "" {
			label += f.hintStyle.Render(field.Hint)
		}
		content.WriteString(label)
		content.WriteString("\n")

		fieldStyle := f.inputStyle
		if i == f.focusIndex {
			fieldStyle = f.focusedStyle
		}
		content.WriteString(fieldStyle.Render(field.textInput.View()))
		content.WriteString("\n")

		if field.Error != "" {
			content.WriteString(f.errorStyle.Render("⚠ " + field.Error))
			content.WriteString("\n")
		}

		if i < len(f.fields)-1 {
			content.WriteString("\n")
		}
	}

	return content.String()
}

// NextField moves focus to the next field, wrapping around.
func (f *Form) NextField() {
	f.focus((f.focusIndex + 1) % len(f.fields))
}

// PrevField moves focus to the previous field, wrapping around.
func (f *Form) PrevField() {
	f.focus((f.focusIndex - 1 + len(f.fields)) % len(f.fields))
}

// FocusField moves focus to the named field.
func (f *Form) FocusField(name string) {
	for i := range f.fields {
		if f.fields[i].Name == name {
			f.focus(i)
			return
		}
	}
}

// Focused returns the name of the focused field.
func (f *Form) Focused() string {
	if len(f.fields) == 0 {
		return ""
	}
	return f.fields[f.focusIndex].Name
}

func (f *Form) focus(index int) {
	if len(f.fields) == 0 {
		return
	}
	f.fields[f.focusIndex].textInput.Blur()
	f.focusIndex = index
	f.fields[f.focusIndex].textInput.Focus()
}

func (f *Form) field(name string) *FormField {
	for i := range f.fields {
		if f.fields[i].Name == name {
			return &f.fields[i]
		}
	}
	return nil
}

// GetValues returns all form field values as a map
func (f *Form) GetValues() map[string]string {
	values := make(map[string]string, len(f.fields))
	for _, field := range f.fields {
		values[field.Name] = field.Value
	}
	return values
}

// GetValue returns the value of a specific field
func (f *Form) GetValue(name string) string {
	if field := f.field(name); field != nil {
		return field.Value
	}
	return ""
}

// SetSize sets the form dimensions
func (f *Form) SetSize(width, height int) *Form {
	f.width = width
	f.height = height

	inputWidth := width - 6 // border and padding
	if inputWidth > 40 {
		inputWidth = 40
	}
	if inputWidth > 10 {
		for i := range f.fields {
			f.fields[i].textInput.Width = inputWidth
		}
	}
	return f
}
