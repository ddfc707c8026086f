// internal/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for the sweep counter.
const (
	OutcomeFound     = "found"
	OutcomeEmpty     = "empty"
	OutcomeInvalid   = "invalid"
	OutcomeNoCapital = "no_capital_range"
	OutcomeTooLarge  = "capital_too_large"
)

// Collector groups calculator metrics.
type Collector struct {
	sweeps           *prometheus.CounterVec
	sweepDuration    prometheus.Histogram
	sweepRows        prometheus.Histogram
	validationErrors *prometheus.CounterVec
}

// NewCollector creates the metrics and registers them with reg. A nil reg
// leaves them unregistered, which is what tests usually want.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		sweeps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "levcalc_sweeps_total",
				Help: "Total number of submissions by outcome.",
			},
			[]string{"outcome"},
		),
		sweepDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "levcalc_sweep_duration_seconds",
				Help:    "Time spent evaluating the capital/leverage grid.",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
		),
		sweepRows: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "levcalc_sweep_rows",
				Help:    "Number of grid cells that fit the risk budget.",
				Buckets: prometheus.ExponentialBuckets(1, 10, 8),
			},
		),
		validationErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "levcalc_validation_errors_total",
				Help: "Rejected input fields.",
			},
			[]string{"field"},
		),
	}

	if reg != nil {
		reg.MustRegister(c.sweeps, c.sweepDuration, c.sweepRows, c.validationErrors)
	}
	return c
}

// RecordSweep records a completed evaluation.
func (c *Collector) RecordSweep(duration time.Duration, rows int) {
	outcome := OutcomeFound
	if rows == 0 {
		outcome = OutcomeEmpty
	}
	c.sweeps.WithLabelValues(outcome).Inc()
	c.sweepDuration.Observe(duration.Seconds())
	c.sweepRows.Observe(float64(rows))
}

// RecordRejected records a submission that never reached the grid.
func (c *Collector) RecordRejected(outcome string, fields ...string) {
	c.sweeps.WithLabelValues(outcome).Inc()
	for _, f := range fields {
		c.validationErrors.WithLabelValues(f).Inc()
	}
}

// Sweeps exposes the outcome counter, mainly for tests.
func (c *Collector) Sweeps() *prometheus.CounterVec {
	return c.sweeps
}

// ValidationErrors exposes the per-field rejection counter.
func (c *Collector) ValidationErrors() *prometheus.CounterVec {
	return c.validationErrors
}
