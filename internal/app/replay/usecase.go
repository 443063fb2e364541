package replay

import (
	"context"
	"errors"
	"strings"

	"minerworld/internal/app/ports"
)

var ErrInvalidRequest = errors.New("invalid replay request")

type UseCase struct {
	Journal ports.TickJournal
	Runs    ports.RunRepository
}

// Execute lists journal records of a run, newest first.
func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.RunID) == "" || req.Limit < 0 {
		return Response{}, ErrInvalidRequest
	}
	out := Response{Records: []Record{}}
	if u.Runs != nil {
		run, err := u.Runs.Get(ctx, req.RunID)
		switch {
		case err == nil:
			out.Run = &Run{RunID: run.RunID, Seed: run.Seed, Rows: run.Rows, Cols: run.Cols, StartedAt: run.StartedAt}
		case !errors.Is(err, ports.ErrNotFound):
			return Response{}, err
		}
	}
	records, err := u.Journal.ListByRun(ctx, req.RunID, req.Limit)
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return Response{}, err
	}
	records = filterByTickWindow(records, req.FromTick, req.ToTick)
	for _, rec := range records {
		out.Records = append(out.Records, Record{
			FromTick:   rec.FromTick,
			ToTick:     rec.ToTick,
			Fired:      rec.Fired,
			Changed:    rec.Changed,
			Counts:     rec.Counts,
			RecordedAt: rec.RecordedAt,
		})
		out.TotalFired += rec.Fired
	}
	if len(out.Records) > 0 {
		out.LatestCounts = latest(out.Records).Counts
	}
	return out, nil
}

func filterByTickWindow(records []ports.TickRecord, from, to int64) []ports.TickRecord {
	if from <= 0 && to <= 0 {
		return records
	}
	out := make([]ports.TickRecord, 0, len(records))
	for _, rec := range records {
		if from > 0 && rec.ToTick < from {
			continue
		}
		if to > 0 && rec.FromTick > to {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func latest(records []Record) Record {
	best := records[0]
	for _, r := range records[1:] {
		if r.ToTick > best.ToTick {
			best = r
		}
	}
	return best
}
