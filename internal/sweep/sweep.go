// internal/sweep/sweep.go
package sweep

import (
	"errors"
	"math"
	"slices"
)

// MaxLeverage is the highest leverage multiplier evaluated by the sweep.
const MaxLeverage = 100

// MaxCapital is the largest available capital the sweep accepts. The grid
// holds floor(capital) * MaxLeverage cells.
const MaxCapital = 100_000

// ErrNoCapitalRange is returned when the available capital cannot form a
// single grid cell (floor(capital) < 1).
var ErrNoCapitalRange = errors.New("no capital range: available capital must cover at least 1 unit")

// ErrCapitalTooLarge is returned when the available capital exceeds MaxCapital.
var ErrCapitalTooLarge = errors.New("capital too large: available capital exceeds the sweep limit")

// Input is a validated sweep request. Percent fields are expressed as
// percentages, not fractions.
type Input struct {
	CapitalAvailable float64 `json:"capital_available"`
	RiskPct          float64 `json:"risk_pct"`
	TPPct            float64 `json:"tp_pct"`
	SLPct            float64 `json:"sl_pct"`
}

// MaxRiskAmount returns the loss budget in currency units.
func (in Input) MaxRiskAmount() float64 {
	return in.CapitalAvailable * (in.RiskPct / 100)
}

// Row is one grid cell that passed the risk filter.
type Row struct {
	CapitalInvested int     `json:"capital_invested"`
	Leverage        int     `json:"leverage"`
	Notional        float64 `json:"notional"`
	Profit          float64 `json:"profit"`
	Loss            float64 `json:"loss"`
	RiskUsed        float64 `json:"risk_used"`
}

// Result holds the rows that fit the risk budget, best profit first.
type Result struct {
	Input         Input   `json:"input"`
	MaxRiskAmount float64 `json:"max_risk_amount"`
	Evaluated     int     `json:"evaluated"`
	Rows          []Row   `json:"rows"`
}

// Empty reports whether no combination fit the risk budget.
func (r *Result) Empty() bool {
	return len(r.Rows) == 0
}

// Top returns at most n leading rows. A non-positive n returns every row.
func (r *Result) Top(n int) []Row {
	if n <= 0 || n >= len(r.Rows) {
		return r.Rows
	}
	return r.Rows[:n]
}

// Best returns the highest-profit row.
func (r *Result) Best() (Row, bool) {
	if r.Empty() {
		return Row{}, false
	}
	return r.Rows[0], true
}

// Evaluate sweeps every integer (capital, leverage) pair and keeps the cells
// whose potential loss does not exceed the risk budget. The input must
// already be validated.
func Evaluate(in Input) (*Result, error) {
	tp := in.TPPct / 100
	sl := in.SLPct / 100
	maxRisk := in.MaxRiskAmount()

	// Checked before the int conversion, which overflows for huge values.
	if in.CapitalAvailable > MaxCapital {
		return nil, ErrCapitalTooLarge
	}
	maxCapital := int(math.Floor(in.CapitalAvailable))
	if maxCapital < 1 {
		return nil, ErrNoCapitalRange
	}

	res := &Result{
		Input:         in,
		MaxRiskAmount: maxRisk,
	}

	for capital := 1; capital <= maxCapital; capital++ {
		for leverage := 1; leverage <= MaxLeverage; leverage++ {
			res.Evaluated++

			row := evaluateCell(capital, leverage, tp, sl)
			// A loss equal to the budget is still acceptable.
			if row.Loss > maxRisk {
				continue
			}
			row.RiskUsed = row.Loss / maxRisk
			res.Rows = append(res.Rows, row)
		}
	}

	// Stable: equal profits keep enumeration order (capital, then leverage).
	slices.SortStableFunc(res.Rows, func(a, b Row) int {
		switch {
		case a.Profit > b.Profit:
			return -1
		case a.Profit < b.Profit:
			return 1
		default:
			return 0
		}
	})

	return res, nil
}

func evaluateCell(capital, leverage int, tp, sl float64) Row {
	c := float64(capital)
	l := float64(leverage)
	return Row{
		CapitalInvested: capital,
		Leverage:        leverage,
		Notional:        c * l,
		Profit:          c * tp * l,
		Loss:            c * sl * l,
	}
}
