package ui

import (
	"github.com/rovshanmuradov/leverage-calc/internal/calculator"
	"github.com/rovshanmuradov/leverage-calc/internal/export"
)

// Tea message types for UI communication

// CalculatedMsg carries a finished sweep to the results screen.
type CalculatedMsg struct {
	Outcome *calculator.Outcome
}

// ExportedMsg reports the result of an export request.
type ExportedMsg struct {
	Format export.ExportFormat
	Path   string
	Err    error
}

// Route represents different screens in the application
type Route int

const (
	RouteCalculator Route = iota
	RouteResults
)

// String returns the string representation of the route
func (r Route) String() string {
	switch r {
	case RouteCalculator:
		return "calculator"
	case RouteResults:
		return "results"
	default:
		return "unknown"
	}
}
