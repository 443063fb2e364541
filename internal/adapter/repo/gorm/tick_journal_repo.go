package gormrepo

import (
	"context"
	"encoding/json"

	"minerworld/internal/adapter/repo/gorm/model"
	"minerworld/internal/app/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TickJournalRepo struct {
	db *gorm.DB
}

func NewTickJournalRepo(db *gorm.DB) TickJournalRepo {
	return TickJournalRepo{db: db}
}

func (r TickJournalRepo) Append(ctx context.Context, runID string, rec ports.TickRecord) error {
	counts := rec.Counts
	if counts == nil {
		counts = map[string]int{}
	}
	b, err := json.Marshal(counts)
	if err != nil {
		return err
	}
	row := model.TickRecord{
		RunID:      runID,
		FromTick:   rec.FromTick,
		ToTick:     rec.ToTick,
		Fired:      int32(rec.Fired),
		Changed:    int32(rec.Changed),
		Counts:     string(b),
		RecordedAt: rec.RecordedAt,
	}
	return getDBFromCtx(ctx, r.db).Create(&row).Error
}

// ListByRun returns up to limit records, newest first.
func (r TickJournalRepo) ListByRun(ctx context.Context, runID string, limit int) ([]ports.TickRecord, error) {
	rows := []model.TickRecord{}
	query := getDBFromCtx(ctx, r.db).
		Where(&model.TickRecord{RunID: runID}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{
				{Column: clause.Column{Name: "to_tick"}, Desc: true},
				{Column: clause.Column{Name: "id"}, Desc: true},
			},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ports.ErrNotFound
	}

	out := make([]ports.TickRecord, 0, len(rows))
	for _, row := range rows {
		var counts map[string]int
		if row.Counts != "" {
			_ = json.Unmarshal([]byte(row.Counts), &counts)
		}
		out = append(out, ports.TickRecord{
			FromTick:   row.FromTick,
			ToTick:     row.ToTick,
			Fired:      int(row.Fired),
			Changed:    int(row.Changed),
			Counts:     counts,
			RecordedAt: row.RecordedAt,
		})
	}
	return out, nil
}
