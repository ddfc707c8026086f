package style

import "github.com/charmbracelet/lipgloss"

var (
	// Accents
	Cyan    = lipgloss.Color("#00E5FF")
	Magenta = lipgloss.Color("#FF1B6B")
	Yellow  = lipgloss.Color("#FFB500")
	Green   = lipgloss.Color("#2AFFAA")
	Red     = lipgloss.Color("#FF5555")
	Blue    = lipgloss.Color("#3B82F6")

	// Base colors
	Base03 = lipgloss.Color("#1B1D23") // Background
	Base02 = lipgloss.Color("#262831") // Darker background
	Base01 = lipgloss.Color("#6C7280") // Muted text
	Base2  = lipgloss.Color("#ECEFF4") // Primary text
	Base1  = lipgloss.Color("#B4BCC8") // Secondary text
)

// Palette provides a centralized color management
type Palette struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Error     lipgloss.Color
	Warning   lipgloss.Color
	Info      lipgloss.Color

	Background    lipgloss.Color
	BackgroundAlt lipgloss.Color
	Text          lipgloss.Color
	TextMuted     lipgloss.Color
	TextSecondary lipgloss.Color

	// Sweep columns
	Profit lipgloss.Color
	Loss   lipgloss.Color
}

// DefaultPalette returns the default color palette
func DefaultPalette() Palette {
	return Palette{
		Primary:   Cyan,
		Secondary: Magenta,
		Success:   Green,
		Error:     Red,
		Warning:   Yellow,
		Info:      Blue,

		Background:    Base03,
		BackgroundAlt: Base02,
		Text:          Base2,
		TextMuted:     Base01,
		TextSecondary: Base1,

		Profit: Green,
		Loss:   Red,
	}
}
