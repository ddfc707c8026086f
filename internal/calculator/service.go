// internal/calculator/service.go
package calculator

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rovshanmuradov/leverage-calc/internal/metrics"
	"github.com/rovshanmuradov/leverage-calc/internal/sweep"
	"github.com/rovshanmuradov/leverage-calc/internal/validate"
	"go.uber.org/zap"
)

// DefaultTopN is how many rows are shown when nothing else is configured.
const DefaultTopN = 5

// Outcome is the result of one submission.
type Outcome struct {
	ID     string
	Input  sweep.Input
	Result *sweep.Result
	Top    []sweep.Row
}

// Empty reports the "no optimal combination" outcome.
func (o *Outcome) Empty() bool {
	return o.Result == nil || o.Result.Empty()
}

// ServiceConfig configures a Service.
type ServiceConfig struct {
	Logger  *zap.Logger
	Metrics *metrics.Collector
	Bounds  validate.BoundTable
	TopN    int
}

// Service validates submissions and runs the sweep.
type Service struct {
	logger  *zap.Logger
	metrics *metrics.Collector
	bounds  validate.BoundTable
	topN    int
}

// NewService creates a calculator service.
func NewService(config *ServiceConfig) *Service {
	if config == nil {
		config = &ServiceConfig{}
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	collector := config.Metrics
	if collector == nil {
		collector = metrics.NewCollector(nil)
	}
	bounds := config.Bounds
	if bounds == nil {
		bounds = validate.DefaultBounds
	}
	topN := config.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}

	return &Service{
		logger:  logger.Named("calculator"),
		metrics: collector,
		bounds:  bounds,
		topN:    topN,
	}
}

// TopN returns the number of rows kept in Outcome.Top.
func (s *Service) TopN() int {
	return s.topN
}

// Calculate validates raw form values and evaluates the grid. Validation
// failures are returned as the combined error from the validate package.
func (s *Service) Calculate(raw validate.RawInput) (*Outcome, error) {
	id := uuid.New().String()
	log := s.logger.With(zap.String("correlation_id", id))

	in, err := s.bounds.Validate(raw)
	if err != nil {
		s.rejectInvalid(log, err)
		return nil, err
	}
	return s.evaluate(log, id, in)
}

// Evaluate runs the sweep on numeric input, checking it against the bound
// table first.
func (s *Service) Evaluate(in sweep.Input) (*Outcome, error) {
	id := uuid.New().String()
	log := s.logger.With(zap.String("correlation_id", id))

	checked, err := s.bounds.FromValues(in.CapitalAvailable, in.RiskPct, in.TPPct, in.SLPct)
	if err != nil {
		s.rejectInvalid(log, err)
		return nil, err
	}
	return s.evaluate(log, id, checked)
}

func (s *Service) evaluate(log *zap.Logger, id string, in sweep.Input) (*Outcome, error) {
	log.Debug("Evaluating sweep",
		zap.Float64("capital_available", in.CapitalAvailable),
		zap.Float64("risk_pct", in.RiskPct),
		zap.Float64("tp_pct", in.TPPct),
		zap.Float64("sl_pct", in.SLPct))

	start := time.Now()
	res, err := sweep.Evaluate(in)
	duration := time.Since(start)

	if err != nil {
		switch {
		case errors.Is(err, sweep.ErrNoCapitalRange):
			s.metrics.RecordRejected(metrics.OutcomeNoCapital)
		case errors.Is(err, sweep.ErrCapitalTooLarge):
			s.metrics.RecordRejected(metrics.OutcomeTooLarge)
		}
		log.Warn("Sweep rejected", zap.Error(err))
		return nil, fmt.Errorf("evaluate sweep: %w", err)
	}

	s.metrics.RecordSweep(duration, len(res.Rows))

	outcome := &Outcome{
		ID:     id,
		Input:  in,
		Result: res,
		Top:    res.Top(s.topN),
	}

	if best, ok := res.Best(); ok {
		log.Info("Sweep completed",
			zap.Int("evaluated", res.Evaluated),
			zap.Int("rows", len(res.Rows)),
			zap.Int("best_capital", best.CapitalInvested),
			zap.Int("best_leverage", best.Leverage),
			zap.Float64("best_profit", best.Profit),
			zap.Duration("duration", duration))
	} else {
		log.Info("No optimal combination found",
			zap.Int("evaluated", res.Evaluated),
			zap.Float64("max_risk_amount", res.MaxRiskAmount),
			zap.Duration("duration", duration))
	}

	return outcome, nil
}

func (s *Service) rejectInvalid(log *zap.Logger, err error) {
	byField := validate.FieldErrors(err)
	fields := make([]string, 0, len(byField))
	for _, f := range validate.Fields {
		if _, ok := byField[f]; ok {
			fields = append(fields, string(f))
		}
	}
	s.metrics.RecordRejected(metrics.OutcomeInvalid, fields...)
	log.Info("Input rejected", zap.Strings("fields", fields), zap.Error(err))
}
