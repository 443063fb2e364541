package memory

import (
	"context"

	"minerworld/internal/app/ports"
)

type RunRepo struct {
	store *Store
}

func NewRunRepo(store *Store) RunRepo {
	return RunRepo{store: store}
}

func (r RunRepo) Create(_ context.Context, run ports.RunRecord) error {
	if _, ok := r.store.runs[run.RunID]; ok {
		return ports.ErrConflict
	}
	r.store.runs[run.RunID] = run
	return nil
}

func (r RunRepo) Get(_ context.Context, runID string) (ports.RunRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	run, ok := r.store.runs[runID]
	if !ok {
		return ports.RunRecord{}, ports.ErrNotFound
	}
	return run, nil
}
