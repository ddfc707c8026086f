package validate

import (
	"errors"
	"testing"

	"github.com/rovshanmuradov/leverage-calc/internal/sweep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"dot thousands, comma decimal", "1.234,56", 1234.56},
		{"comma thousands, dot decimal", "1,234.56", 1234.56},
		{"comma decimal only", "1234,56", 1234.56},
		{"plain integer", "1000", 1000},
		{"dot decimal only", "0.5", 0.5},
		{"surrounding whitespace", "  42 ", 42},
		{"currency and percent stripped", "$ 1 000,5 %", 1000.5},
		{"several thousand groups", "1.234.567,89", 1234567.89},
		{"negative sign kept", "-3,5", -3.5},
		{"repeated comma groups thousands", "1,234,567", 1234567},
		{"repeated dot groups thousands", "1.234.567", 1234567},
		{"repeated separator with sign", "-12,000,000", -12000000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNumber(tt.input)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParseNumberFailures(t *testing.T) {
	for _, input := range []string{"", "   ", "abc", "1.2.3", "1,23,456", "1.2345.678", "--1", ","} {
		_, err := ParseNumber(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestValidateSuccess(t *testing.T) {
	in, err := Validate(RawInput{Capital: "1.000", Risk: "1", TP: "5", SL: "1"})
	require.NoError(t, err)

	// A lone dot is the decimal separator, so "1.000" is one.
	assert.Equal(t, sweep.Input{CapitalAvailable: 1, RiskPct: 1, TPPct: 5, SLPct: 1}, in)

	in, err = Validate(RawInput{Capital: "1.000,00", Risk: "0,1", TP: "5", SL: "50"})
	require.NoError(t, err)
	assert.InDelta(t, 1000, in.CapitalAvailable, 1e-9)
	assert.InDelta(t, 0.1, in.RiskPct, 1e-12)
}

func TestValidateCollectsEveryViolation(t *testing.T) {
	_, err := Validate(RawInput{Capital: "", Risk: "150", TP: "0", SL: "abc"})
	require.Error(t, err)

	violations := Violations(err)
	assert.Len(t, violations, 4)

	byField := FieldErrors(err)
	require.Len(t, byField, 4)

	var missing *MissingValueError
	require.True(t, errors.As(byField[FieldCapital], &missing))
	assert.Equal(t, FieldCapital, missing.Field)
	require.True(t, errors.As(byField[FieldSL], &missing))
	assert.Equal(t, FieldSL, missing.Field)

	var outOfRange *OutOfRangeError
	require.True(t, errors.As(byField[FieldRisk], &outOfRange))
	assert.Equal(t, 150.0, outOfRange.Value)
	assert.Equal(t, DefaultBounds[FieldRisk], outOfRange.Bound)
	require.True(t, errors.As(byField[FieldTP], &outOfRange))
	assert.Equal(t, FieldTP, outOfRange.Field)
}

func TestValidateRejectsHugeCapital(t *testing.T) {
	_, err := Validate(RawInput{Capital: "10000000000000000000", Risk: "1", TP: "5", SL: "1"})
	require.Error(t, err)

	var outOfRange *OutOfRangeError
	require.True(t, errors.As(err, &outOfRange))
	assert.Equal(t, FieldCapital, outOfRange.Field)
	assert.Equal(t, 1e19, outOfRange.Value)
	assert.Len(t, Violations(err), 1)
}

func TestValidateEmptyStringIsMissing(t *testing.T) {
	_, err := Validate(RawInput{Capital: "100", Risk: "1", TP: "5", SL: ""})
	require.Error(t, err)

	var missing *MissingValueError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, FieldSL, missing.Field)
	assert.Len(t, Violations(err), 1)
}

func TestBoundTable(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		value float64
		ok    bool
	}{
		{"capital at minimum", FieldCapital, 1, true},
		{"capital below minimum", FieldCapital, 0.99, false},
		{"capital at maximum", FieldCapital, sweep.MaxCapital, true},
		{"capital above maximum", FieldCapital, sweep.MaxCapital + 0.5, false},
		{"capital beyond int range", FieldCapital, 1e19, false},
		{"risk zero excluded", FieldRisk, 0, false},
		{"risk small", FieldRisk, 0.01, true},
		{"risk at maximum", FieldRisk, 100, true},
		{"risk above maximum", FieldRisk, 100.01, false},
		{"tp zero excluded", FieldTP, 0, false},
		{"tp at maximum", FieldTP, 1000, true},
		{"tp above maximum", FieldTP, 1000.5, false},
		{"sl at minimum", FieldSL, 0.05, true},
		{"sl below minimum", FieldSL, 0.04, false},
		{"sl at maximum", FieldSL, 100, true},
		{"sl above maximum", FieldSL, 101, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, DefaultBounds[tt.field].Contains(tt.value))
		})
	}
}

func TestFromValues(t *testing.T) {
	in, err := FromValues(1000, 1, 5, 1)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, in.CapitalAvailable)

	_, err = FromValues(0, 0, 5, 200)
	require.Error(t, err)
	assert.Len(t, Violations(err), 3)
}

func TestBoundString(t *testing.T) {
	assert.Equal(t, "[1, 100000]", DefaultBounds[FieldCapital].String())
	assert.Equal(t, "(0, 100]", DefaultBounds[FieldRisk].String())
	assert.Equal(t, "[0.05, 100]", DefaultBounds[FieldSL].String())
}
