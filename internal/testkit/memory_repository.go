package testkit

import (
	"context"
	"sort"
	"sync"

	"modeleval/domain/core"
	"modeleval/domain/metrics"
	"modeleval/internal/errors"
)

// InMemoryEvaluationRepository is a threadsafe in-memory implementation
// of ports.EvaluationRepository, used in tests and when the service runs
// without a database.
type InMemoryEvaluationRepository struct {
	mu   sync.RWMutex
	runs map[core.RunID]*metrics.EvaluationRun
}

// NewInMemoryEvaluationRepository creates an empty repository
func NewInMemoryEvaluationRepository() *InMemoryEvaluationRepository {
	return &InMemoryEvaluationRepository{
		runs: make(map[core.RunID]*metrics.EvaluationRun),
	}
}

// Insert stores a run, rejecting duplicate IDs
func (r *InMemoryEvaluationRepository) Insert(ctx context.Context, run *metrics.EvaluationRun) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.runs[run.ID]; exists {
		return errors.InvalidInputf("evaluation %s already stored", run.ID)
	}
	copied := *run
	r.runs[run.ID] = &copied
	return nil
}

// GetByID returns the stored run or nil when absent
func (r *InMemoryEvaluationRepository) GetByID(ctx context.Context, id core.RunID) (*metrics.EvaluationRun, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	run, ok := r.runs[id]
	if !ok {
		return nil, nil
	}
	copied := *run
	return &copied, nil
}

// ListRecent returns up to limit runs, newest first
func (r *InMemoryEvaluationRepository) ListRecent(ctx context.Context, limit int) ([]*metrics.EvaluationRun, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	runs := make([]*metrics.EvaluationRun, 0, len(r.runs))
	for _, run := range r.runs {
		copied := *run
		runs = append(runs, &copied)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[j].CreatedAt.Before(runs[i].CreatedAt)
	})
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}
