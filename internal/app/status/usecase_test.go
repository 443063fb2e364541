package status

import (
	"context"
	"errors"
	"testing"

	"minerworld/internal/app/ports"
	"minerworld/internal/domain/sim"
	"minerworld/internal/domain/world"
)

type worldReader struct {
	w *sim.World
}

func (r worldReader) Read(_ context.Context, fn func(w *sim.World) error) error {
	return fn(r.w)
}

func newReader() (worldReader, *sim.World) {
	w := sim.NewWorld(sim.Config{Rows: 5, Cols: 5})
	miner := sim.NewMiner(w, "bob", world.Point{X: 0, Y: 0}, 1, 10, 5)
	w.AddEntity(miner)
	w.ScheduleEntity(miner, 0)
	w.AddEntity(sim.NewOre(w, "ore1", world.Point{X: 2, Y: 2}, 100))
	w.AddEntity(sim.NewObstacle(w, "rock", world.Point{X: 4, Y: 4}))
	w.TryTransform(miner, sim.KindMinerFull, 0)
	return worldReader{w: w}, w
}

func TestUseCase_ListsAndFilters(t *testing.T) {
	reader, _ := newReader()
	uc := UseCase{World: reader}

	all, err := uc.Execute(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(all.Entities) != 3 {
		t.Fatalf("expected 3 entities, got %d", len(all.Entities))
	}

	miners, err := uc.Execute(context.Background(), Request{Kind: "miner"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(miners.Entities) != 1 || miners.Entities[0].Kind != "miner_full" {
		t.Fatalf("expected the full miner through its category, got %+v", miners.Entities)
	}

	ores, err := uc.Execute(context.Background(), Request{Kind: "ORE"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(ores.Entities) != 1 || ores.Entities[0].Name != "ore1" {
		t.Fatalf("unexpected ore list: %+v", ores.Entities)
	}
}

func TestUseCase_RejectsUnknownKind(t *testing.T) {
	reader, _ := newReader()
	if _, err := (UseCase{World: reader}).Execute(context.Background(), Request{Kind: "dragon"}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestEntityUseCase(t *testing.T) {
	reader, _ := newReader()
	uc := EntityUseCase{World: reader}

	resp, err := uc.Execute(context.Background(), EntityRequest{Name: "bob"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if resp.Entity.Kind != "miner_full" || resp.Entity.ResourceCount != 1 {
		t.Fatalf("unexpected entity: %+v", resp.Entity)
	}
	if resp.Entity.NextActionTick != nil {
		t.Fatalf("a transformed miner has only its animation queued, got next action %d", *resp.Entity.NextActionTick)
	}

	if _, err := uc.Execute(context.Background(), EntityRequest{Name: "ghost"}); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := uc.Execute(context.Background(), EntityRequest{}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}
