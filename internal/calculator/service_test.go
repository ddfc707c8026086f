package calculator

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rovshanmuradov/leverage-calc/internal/metrics"
	"github.com/rovshanmuradov/leverage-calc/internal/sweep"
	"github.com/rovshanmuradov/leverage-calc/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestService(t *testing.T, topN int) (*Service, *metrics.Collector) {
	t.Helper()
	collector := metrics.NewCollector(nil)
	svc := NewService(&ServiceConfig{
		Logger:  zaptest.NewLogger(t),
		Metrics: collector,
		TopN:    topN,
	})
	return svc, collector
}

func TestCalculateReturnsTopRows(t *testing.T) {
	svc, collector := newTestService(t, 0)

	outcome, err := svc.Calculate(validate.RawInput{Capital: "1000", Risk: "1", TP: "5", SL: "1"})
	require.NoError(t, err)

	assert.NotEmpty(t, outcome.ID)
	assert.False(t, outcome.Empty())
	assert.Len(t, outcome.Top, DefaultTopN)
	assert.Equal(t, outcome.Result.Rows[:DefaultTopN], outcome.Top)
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.Sweeps().WithLabelValues(metrics.OutcomeFound)))
}

func TestCalculateEmptyOutcome(t *testing.T) {
	svc, collector := newTestService(t, 3)

	outcome, err := svc.Calculate(validate.RawInput{Capital: "10", Risk: "0,1", TP: "5", SL: "50"})
	require.NoError(t, err)

	assert.True(t, outcome.Empty())
	assert.Empty(t, outcome.Top)
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.Sweeps().WithLabelValues(metrics.OutcomeEmpty)))
}

func TestCalculateInvalidInput(t *testing.T) {
	svc, collector := newTestService(t, 5)

	outcome, err := svc.Calculate(validate.RawInput{Capital: "", Risk: "200", TP: "5", SL: "1"})
	require.Error(t, err)
	assert.Nil(t, outcome)

	assert.Len(t, validate.Violations(err), 2)
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.Sweeps().WithLabelValues(metrics.OutcomeInvalid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.ValidationErrors().WithLabelValues("capital_available")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.ValidationErrors().WithLabelValues("risk_pct")))
}

func TestEvaluateChecksBounds(t *testing.T) {
	svc, _ := newTestService(t, 5)

	_, err := svc.Evaluate(sweep.Input{CapitalAvailable: 100, RiskPct: 1, TPPct: 5, SLPct: 0.01})
	require.Error(t, err)

	var outOfRange *validate.OutOfRangeError
	require.True(t, errors.As(err, &outOfRange))
	assert.Equal(t, validate.FieldSL, outOfRange.Field)
}

func TestEvaluateNoCapitalRange(t *testing.T) {
	collector := metrics.NewCollector(nil)
	loose := validate.BoundTable{}
	svc := NewService(&ServiceConfig{
		Logger:  zaptest.NewLogger(t),
		Metrics: collector,
		Bounds:  loose,
	})

	_, err := svc.Evaluate(sweep.Input{CapitalAvailable: 0.4, RiskPct: 1, TPPct: 5, SLPct: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, sweep.ErrNoCapitalRange))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.Sweeps().WithLabelValues(metrics.OutcomeNoCapital)))
}

func TestEvaluateCapitalTooLarge(t *testing.T) {
	collector := metrics.NewCollector(nil)
	svc := NewService(&ServiceConfig{
		Logger:  zaptest.NewLogger(t),
		Metrics: collector,
		Bounds:  validate.BoundTable{},
	})

	_, err := svc.Evaluate(sweep.Input{CapitalAvailable: 1e19, RiskPct: 1, TPPct: 5, SLPct: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, sweep.ErrCapitalTooLarge))
	assert.False(t, errors.Is(err, sweep.ErrNoCapitalRange))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.Sweeps().WithLabelValues(metrics.OutcomeTooLarge)))
	assert.Equal(t, 0.0, testutil.ToFloat64(collector.Sweeps().WithLabelValues(metrics.OutcomeNoCapital)))
}

func TestNewServiceDefaults(t *testing.T) {
	svc := NewService(nil)
	assert.Equal(t, DefaultTopN, svc.TopN())

	outcome, err := svc.Evaluate(sweep.Input{CapitalAvailable: 5, RiskPct: 100, TPPct: 5, SLPct: 0.5})
	require.NoError(t, err)
	assert.Len(t, outcome.Result.Rows, 5*sweep.MaxLeverage)
}
