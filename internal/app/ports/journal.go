package ports

import (
	"context"
	"time"
)

// TickRecord summarises one advance of a simulation run.
type TickRecord struct {
	FromTick   int64
	ToTick     int64
	Fired      int
	Changed    int
	Counts     map[string]int
	RecordedAt time.Time
}

type TickJournal interface {
	Append(ctx context.Context, runID string, rec TickRecord) error
	ListByRun(ctx context.Context, runID string, limit int) ([]TickRecord, error)
}

type RunRecord struct {
	RunID     string
	Seed      string
	Rows      int
	Cols      int
	Layout    string
	StartedAt time.Time
}

type RunRepository interface {
	Create(ctx context.Context, run RunRecord) error
	Get(ctx context.Context, runID string) (RunRecord, error)
}

// TxManager runs fn in one unit of work; repos called with the ctx it passes
// share that unit.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
