package ports

import (
	"context"

	"modeleval/domain/metrics"
)

// Reporter renders computed evaluation results for humans. Reporters
// receive structured numeric results and own all formatting; the
// engines never produce pre-formatted strings.
type Reporter interface {
	ReportEvaluation(ctx context.Context, run *metrics.EvaluationRun) error
}
