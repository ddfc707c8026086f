// Package validate turns raw form values into a sweep.Input, collecting every
// violation instead of stopping at the first one.
package validate

import (
	"fmt"
	"math"
	"strconv"

	"github.com/rovshanmuradov/leverage-calc/internal/sweep"
	"go.uber.org/multierr"
)

// Field names a sweep input field.
type Field string

const (
	FieldCapital Field = "capital_available"
	FieldRisk    Field = "risk_pct"
	FieldTP      Field = "tp_pct"
	FieldSL      Field = "sl_pct"
)

// Fields lists input fields in form order.
var Fields = []Field{FieldCapital, FieldRisk, FieldTP, FieldSL}

// Bound is an interval with an optionally exclusive minimum and an optional
// maximum. A zero Max with HasMax unset means no upper limit.
type Bound struct {
	Min          float64
	MinExclusive bool
	Max          float64
	HasMax       bool
}

// Contains reports whether v lies within the bound.
func (b Bound) Contains(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	if b.MinExclusive {
		if v <= b.Min {
			return false
		}
	} else if v < b.Min {
		return false
	}
	return !b.HasMax || v <= b.Max
}

func (b Bound) String() string {
	lo := "["
	if b.MinExclusive {
		lo = "("
	}
	hi := "+inf)"
	if b.HasMax {
		hi = strconv.FormatFloat(b.Max, 'g', -1, 64) + "]"
	}
	return fmt.Sprintf("%s%s, %s", lo, strconv.FormatFloat(b.Min, 'g', -1, 64), hi)
}

// BoundTable maps each field to its accepted range.
type BoundTable map[Field]Bound

// DefaultBounds is the bound table applied to form input.
var DefaultBounds = BoundTable{
	FieldCapital: {Min: 1, Max: sweep.MaxCapital, HasMax: true},
	FieldRisk:    {Min: 0, MinExclusive: true, Max: 100, HasMax: true},
	FieldTP:      {Min: 0, MinExclusive: true, Max: 1000, HasMax: true},
	FieldSL:      {Min: 0.05, Max: 100, HasMax: true},
}

// RawInput carries the four fields exactly as the user typed them.
type RawInput struct {
	Capital string
	Risk    string
	TP      string
	SL      string
}

func (r RawInput) value(f Field) string {
	switch f {
	case FieldCapital:
		return r.Capital
	case FieldRisk:
		return r.Risk
	case FieldTP:
		return r.TP
	case FieldSL:
		return r.SL
	}
	return ""
}

// Validate parses and range-checks raw input against DefaultBounds.
func Validate(raw RawInput) (sweep.Input, error) {
	return DefaultBounds.Validate(raw)
}

// FromValues range-checks already numeric input against DefaultBounds.
func FromValues(capital, risk, tp, sl float64) (sweep.Input, error) {
	return DefaultBounds.FromValues(capital, risk, tp, sl)
}

// Validate parses every field of raw and checks it against the table. On
// failure the returned error combines one violation per offending field.
func (t BoundTable) Validate(raw RawInput) (sweep.Input, error) {
	values := make(map[Field]float64, len(Fields))
	var errs error

	for _, f := range Fields {
		v, err := ParseNumber(raw.value(f))
		if err != nil {
			errs = multierr.Append(errs, &MissingValueError{Field: f, Cause: err})
			continue
		}
		values[f] = v
	}

	if err := t.check(values); err != nil {
		errs = multierr.Append(errs, err)
	}
	if errs != nil {
		return sweep.Input{}, errs
	}
	return toInput(values), nil
}

// FromValues checks numeric input against the table.
func (t BoundTable) FromValues(capital, risk, tp, sl float64) (sweep.Input, error) {
	values := map[Field]float64{
		FieldCapital: capital,
		FieldRisk:    risk,
		FieldTP:      tp,
		FieldSL:      sl,
	}
	if err := t.check(values); err != nil {
		return sweep.Input{}, err
	}
	return toInput(values), nil
}

func (t BoundTable) check(values map[Field]float64) error {
	var errs error
	for _, f := range Fields {
		v, ok := values[f]
		if !ok {
			continue
		}
		bound, ok := t[f]
		if !ok {
			continue
		}
		if !bound.Contains(v) {
			errs = multierr.Append(errs, &OutOfRangeError{Field: f, Value: v, Bound: bound})
		}
	}
	return errs
}

func toInput(values map[Field]float64) sweep.Input {
	return sweep.Input{
		CapitalAvailable: values[FieldCapital],
		RiskPct:          values[FieldRisk],
		TPPct:            values[FieldTP],
		SLPct:            values[FieldSL],
	}
}
