package ports

import (
	"context"

	"modeleval/domain/core"
	"modeleval/domain/metrics"
)

// EvaluationRepository persists completed evaluation runs.
type EvaluationRepository interface {
	Insert(ctx context.Context, run *metrics.EvaluationRun) error
	GetByID(ctx context.Context, id core.RunID) (*metrics.EvaluationRun, error)
	ListRecent(ctx context.Context, limit int) ([]*metrics.EvaluationRun, error)
}
