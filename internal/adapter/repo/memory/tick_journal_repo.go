package memory

import (
	"context"
	"maps"

	"minerworld/internal/app/ports"
)

type TickJournalRepo struct {
	store *Store
}

func NewTickJournalRepo(store *Store) TickJournalRepo {
	return TickJournalRepo{store: store}
}

func (r TickJournalRepo) Append(_ context.Context, runID string, rec ports.TickRecord) error {
	rec.Counts = maps.Clone(rec.Counts)
	r.store.journal[runID] = append(r.store.journal[runID], rec)
	return nil
}

// ListByRun returns up to limit records, newest first.
func (r TickJournalRepo) ListByRun(_ context.Context, runID string, limit int) ([]ports.TickRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	records := r.store.journal[runID]
	if len(records) == 0 {
		return nil, ports.ErrNotFound
	}
	n := len(records)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]ports.TickRecord, 0, n)
	for i := len(records) - 1; i >= 0 && len(out) < n; i-- {
		rec := records[i]
		rec.Counts = maps.Clone(rec.Counts)
		out = append(out, rec)
	}
	return out, nil
}
