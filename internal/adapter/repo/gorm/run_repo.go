package gormrepo

import (
	"context"
	"errors"

	"minerworld/internal/adapter/repo/gorm/model"
	"minerworld/internal/app/ports"

	"gorm.io/gorm"
)

type RunRepo struct {
	db *gorm.DB
}

func NewRunRepo(db *gorm.DB) RunRepo {
	return RunRepo{db: db}
}

func (r RunRepo) Create(ctx context.Context, run ports.RunRecord) error {
	m := model.SimRun{
		RunID:     run.RunID,
		Seed:      run.Seed,
		GridRows:  int32(run.Rows),
		GridCols:  int32(run.Cols),
		Layout:    run.Layout,
		StartedAt: run.StartedAt,
	}
	if err := getDBFromCtx(ctx, r.db).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ports.ErrConflict
		}
		return err
	}
	return nil
}

func (r RunRepo) Get(ctx context.Context, runID string) (ports.RunRecord, error) {
	var m model.SimRun
	if err := getDBFromCtx(ctx, r.db).Where("run_id = ?", runID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.RunRecord{}, ports.ErrNotFound
		}
		return ports.RunRecord{}, err
	}
	return ports.RunRecord{
		RunID:     m.RunID,
		Seed:      m.Seed,
		Rows:      int(m.GridRows),
		Cols:      int(m.GridCols),
		Layout:    m.Layout,
		StartedAt: m.StartedAt,
	}, nil
}
