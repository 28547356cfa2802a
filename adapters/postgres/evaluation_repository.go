package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"modeleval/domain/core"
	"modeleval/domain/metrics"

	"github.com/jmoiron/sqlx"
)

// EvaluationRepository persists evaluation runs with their full report
// payloads as JSON.
type EvaluationRepository struct {
	db *sqlx.DB
}

// NewEvaluationRepository creates a new evaluation repository
func NewEvaluationRepository(db *sqlx.DB) *EvaluationRepository {
	return &EvaluationRepository{db: db}
}

// Insert stores a completed evaluation run
func (r *EvaluationRepository) Insert(ctx context.Context, run *metrics.EvaluationRun) error {
	query := `
		INSERT INTO evaluations (
			id, source, predictor_key, target_key,
			buy_threshold, sell_threshold, theta,
			report, predictor_summary, target_summary,
			runtime_ms, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	reportJSON, err := json.Marshal(run.Report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	predSummaryJSON, err := json.Marshal(run.PredictorSummary)
	if err != nil {
		return fmt.Errorf("failed to marshal predictor summary: %w", err)
	}
	targSummaryJSON, err := json.Marshal(run.TargetSummary)
	if err != nil {
		return fmt.Errorf("failed to marshal target summary: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query,
		run.ID.String(),
		run.Source,
		run.PredictorKey.String(),
		run.TargetKey.String(),
		run.BuyThreshold,
		run.SellThreshold,
		run.Theta,
		reportJSON,
		predSummaryJSON,
		targSummaryJSON,
		run.RuntimeMs,
		run.CreatedAt.Time(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert evaluation: %w", err)
	}
	return nil
}

// GetByID fetches one evaluation run, or nil when absent
func (r *EvaluationRepository) GetByID(ctx context.Context, id core.RunID) (*metrics.EvaluationRun, error) {
	query := `
		SELECT id, source, predictor_key, target_key,
			   buy_threshold, sell_threshold, theta,
			   report, predictor_summary, target_summary,
			   runtime_ms, created_at
		FROM evaluations
		WHERE id = $1`

	run, err := scanEvaluation(r.db.QueryRowContext(ctx, query, id.String()))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get evaluation: %w", err)
	}
	return run, nil
}

// ListRecent returns the most recent runs, newest first
func (r *EvaluationRepository) ListRecent(ctx context.Context, limit int) ([]*metrics.EvaluationRun, error) {
	query := `
		SELECT id, source, predictor_key, target_key,
			   buy_threshold, sell_threshold, theta,
			   report, predictor_summary, target_summary,
			   runtime_ms, created_at
		FROM evaluations
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query evaluations: %w", err)
	}
	defer rows.Close()

	var runs []*metrics.EvaluationRun
	for rows.Next() {
		run, err := scanEvaluation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan evaluation: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvaluation(row rowScanner) (*metrics.EvaluationRun, error) {
	var run metrics.EvaluationRun
	var id, source, predictorKey, targetKey string
	var reportJSON, predSummaryJSON, targSummaryJSON []byte
	var createdAt time.Time

	err := row.Scan(
		&id,
		&source,
		&predictorKey,
		&targetKey,
		&run.BuyThreshold,
		&run.SellThreshold,
		&run.Theta,
		&reportJSON,
		&predSummaryJSON,
		&targSummaryJSON,
		&run.RuntimeMs,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	run.ID = core.RunID(id)
	run.Source = source
	run.PredictorKey = core.VariableKey(predictorKey)
	run.TargetKey = core.VariableKey(targetKey)
	run.CreatedAt = core.NewTimestamp(createdAt)

	if err := json.Unmarshal(reportJSON, &run.Report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	if err := json.Unmarshal(predSummaryJSON, &run.PredictorSummary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal predictor summary: %w", err)
	}
	if err := json.Unmarshal(targSummaryJSON, &run.TargetSummary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal target summary: %w", err)
	}
	return &run, nil
}
