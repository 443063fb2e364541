package replay

import (
	"context"
	"errors"
	"testing"
	"time"

	"minerworld/internal/app/ports"
)

func TestUseCase_SummarisesRun(t *testing.T) {
	journal := fakeJournal{records: []ports.TickRecord{
		{FromTick: 200, ToTick: 300, Fired: 4, Counts: map[string]int{"ore": 2}},
		{FromTick: 100, ToTick: 200, Fired: 3, Counts: map[string]int{"ore": 1}},
		{FromTick: 0, ToTick: 100, Fired: 1},
	}}
	runs := fakeRuns{run: ports.RunRecord{RunID: "run-1", Seed: "s", StartedAt: time.Unix(10, 0)}}

	out, err := UseCase{Journal: journal, Runs: runs}.Execute(context.Background(), Request{RunID: "run-1", Limit: 10})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(out.Records) != 3 || out.TotalFired != 8 {
		t.Fatalf("unexpected summary: %d records, %d fired", len(out.Records), out.TotalFired)
	}
	if out.LatestCounts["ore"] != 2 {
		t.Fatalf("expected latest counts from tick 300, got %v", out.LatestCounts)
	}
	if out.Run == nil || out.Run.Seed != "s" {
		t.Fatalf("expected run info, got %+v", out.Run)
	}
}

func TestUseCase_FiltersByTickWindow(t *testing.T) {
	journal := fakeJournal{records: []ports.TickRecord{
		{FromTick: 200, ToTick: 300, Fired: 4},
		{FromTick: 100, ToTick: 200, Fired: 3},
		{FromTick: 0, ToTick: 100, Fired: 1},
	}}
	out, err := UseCase{Journal: journal}.Execute(context.Background(), Request{RunID: "run-1", FromTick: 150, ToTick: 199})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(out.Records) != 1 || out.Records[0].FromTick != 100 {
		t.Fatalf("expected only the 100..200 record, got %+v", out.Records)
	}
}

func TestUseCase_EmptyJournalIsNotAnError(t *testing.T) {
	out, err := UseCase{Journal: fakeJournal{err: ports.ErrNotFound}}.Execute(context.Background(), Request{RunID: "run-1"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(out.Records) != 0 || out.LatestCounts != nil {
		t.Fatalf("expected empty response, got %+v", out)
	}
}

func TestUseCase_RejectsMissingRunID(t *testing.T) {
	if _, err := (UseCase{Journal: fakeJournal{}}).Execute(context.Background(), Request{}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

type fakeJournal struct {
	records []ports.TickRecord
	err     error
}

func (j fakeJournal) Append(_ context.Context, _ string, _ ports.TickRecord) error {
	return nil
}

func (j fakeJournal) ListByRun(_ context.Context, _ string, _ int) ([]ports.TickRecord, error) {
	return j.records, j.err
}

type fakeRuns struct {
	run ports.RunRecord
}

func (r fakeRuns) Create(_ context.Context, _ ports.RunRecord) error {
	return nil
}

func (r fakeRuns) Get(_ context.Context, runID string) (ports.RunRecord, error) {
	if runID != r.run.RunID {
		return ports.RunRecord{}, ports.ErrNotFound
	}
	return r.run, nil
}
