package app

import (
	"context"
	"time"

	"modeleval/adapters/stats/engines"
	"modeleval/domain/core"
	"modeleval/domain/metrics"
	"modeleval/internal"
	"modeleval/internal/errors"
	"modeleval/internal/profiling"
	"modeleval/ports"
)

// EvaluationService orchestrates one evaluation: load the paired
// observations, profile both series, run the metric engines, persist
// the run and hand the results to the presentation collaborators.
type EvaluationService struct {
	engine   *engines.MetricsEngine
	profiler *profiling.SampleProfiler
	repo     ports.EvaluationRepository
	reporter ports.Reporter
	plotter  ports.Plotter
	logger   *internal.Logger
}

// EvaluationRequest defines the inputs for one evaluation run
type EvaluationRequest struct {
	X            []float64
	Y            []float64
	Source       string
	PredictorKey core.VariableKey
	TargetKey    core.VariableKey
	Options      engines.Options
}

// NewEvaluationService creates an evaluation service. Reporter and
// plotter may be nil when the caller only wants structured results.
func NewEvaluationService(
	engine *engines.MetricsEngine,
	repo ports.EvaluationRepository,
	reporter ports.Reporter,
	plotter ports.Plotter,
	logger *internal.Logger,
) *EvaluationService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &EvaluationService{
		engine:   engine,
		profiler: profiling.NewSampleProfiler(),
		repo:     repo,
		reporter: reporter,
		plotter:  plotter,
		logger:   logger,
	}
}

// Evaluate runs the full pipeline over in-memory series
func (s *EvaluationService) Evaluate(ctx context.Context, req EvaluationRequest) (*metrics.EvaluationRun, error) {
	startTime := time.Now()

	if len(req.X) != len(req.Y) {
		return nil, errors.InvalidInputf("predictor and target must be equal length, got %d and %d", len(req.X), len(req.Y))
	}
	if len(req.X) == 0 {
		return nil, errors.InvalidInput("evaluation requires at least one observation")
	}

	run := metrics.NewEvaluationRun(req.Source, req.PredictorKey, req.TargetKey)
	run.BuyThreshold = req.Options.BuyThreshold
	run.SellThreshold = req.Options.SellThreshold
	run.Theta = req.Options.Theta

	report, err := s.engine.EvaluateAll(ctx, req.X, req.Y, req.Options)
	if err != nil {
		return nil, errors.Wrap(err, "metric engines failed")
	}
	run.Report = *report

	// Summaries are context, not results; a profiling failure is logged
	// and the run still completes.
	if summary, err := s.profiler.Summarize(req.X); err == nil {
		run.PredictorSummary = summary
	} else {
		s.logger.Warn("predictor profiling failed: %v", err)
	}
	if summary, err := s.profiler.Summarize(req.Y); err == nil {
		run.TargetSummary = summary
	} else {
		s.logger.Warn("target profiling failed: %v", err)
	}

	run.RuntimeMs = time.Since(startTime).Milliseconds()

	if s.repo != nil {
		if err := s.repo.Insert(ctx, run); err != nil {
			return nil, errors.Wrap(err, "failed to persist evaluation")
		}
	}

	if s.reporter != nil {
		if err := s.reporter.ReportEvaluation(ctx, run); err != nil {
			return nil, errors.Wrap(err, "reporting failed")
		}
	}
	if s.plotter != nil {
		if err := s.plot(ctx, run); err != nil {
			return nil, errors.Wrap(err, "plot export failed")
		}
	}

	s.logger.Info("evaluation %s completed in %dms (n=%d)", run.ID, run.RuntimeMs, len(req.X))
	return run, nil
}

// EvaluateFromReader loads the pairs through a reader port first
func (s *EvaluationService) EvaluateFromReader(ctx context.Context, reader ports.PairReader, predictor, target core.VariableKey, opts engines.Options) (*metrics.EvaluationRun, error) {
	x, y, err := reader.ReadPairs(ctx, predictor, target)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read pairs")
	}
	return s.Evaluate(ctx, EvaluationRequest{
		X:            x,
		Y:            y,
		Source:       reader.Source(),
		PredictorKey: predictor,
		TargetKey:    target,
		Options:      opts,
	})
}

// GetEvaluation fetches a stored run
func (s *EvaluationService) GetEvaluation(ctx context.Context, id core.RunID) (*metrics.EvaluationRun, error) {
	if s.repo == nil {
		return nil, errors.InternalError("no evaluation repository configured")
	}
	run, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, errors.NotFound("evaluation " + id.String())
	}
	return run, nil
}

// ListEvaluations returns recent stored runs
func (s *EvaluationService) ListEvaluations(ctx context.Context, limit int) ([]*metrics.EvaluationRun, error) {
	if s.repo == nil {
		return nil, errors.InternalError("no evaluation repository configured")
	}
	if limit <= 0 {
		limit = 20
	}
	return s.repo.ListRecent(ctx, limit)
}

func (s *EvaluationService) plot(ctx context.Context, run *metrics.EvaluationRun) error {
	if run.Report.ECDF != nil {
		if err := s.plotter.PlotECDF(ctx, run.Report.ECDF); err != nil {
			return err
		}
	}
	if run.Report.Lift != nil {
		if err := s.plotter.PlotLift(ctx, run.Report.Lift); err != nil {
			return err
		}
	}
	return nil
}
