package sim

import (
	"fmt"

	"minerworld/internal/domain/world"
)

type actionHandler func(w *World, e *Entity, a Action, tick int64) []world.Point

var handlers = map[ActionKind]actionHandler{
	ActionMiner:        minerStep,
	ActionVein:         veinStep,
	ActionOreTransform: oreTransform,
	ActionBlob:         blobStep,
	ActionAnimate:      animate,
	ActionQuakeDeath:   quakeDeath,
}

func minerStep(w *World, e *Entity, _ Action, tick int64) []world.Point {
	var (
		tiles []world.Point
		found bool
	)
	switch e.Kind {
	case KindMinerNotFull:
		tiles, found = w.minerToOre(e)
		if found && e.ResourceCount >= e.ResourceLimit {
			w.TryTransform(e, KindMinerFull, tick)
		}
	case KindMinerFull:
		tiles, found = w.minerToSmith(e)
		if found {
			w.TryTransform(e, KindMinerNotFull, tick)
		}
	default:
		return nil
	}
	w.Schedule(e, Action{Kind: ActionMiner}, after(tick, e.Rate))
	return tiles
}

func (w *World) minerToOre(e *Entity) ([]world.Point, bool) {
	ore, ok := w.FindNearest(e.Position, KindOre)
	if !ok {
		return []world.Point{e.Position}, false
	}
	orePt := ore.Position
	if world.Adjacent(e.Position, orePt) {
		e.ResourceCount++
		w.RemoveEntity(ore)
		return []world.Point{orePt}, true
	}
	return w.MoveEntity(e, w.NextPosition(e.Position, orePt)), false
}

func (w *World) minerToSmith(e *Entity) ([]world.Point, bool) {
	smith, ok := w.FindNearest(e.Position, KindBlacksmith)
	if !ok {
		return []world.Point{e.Position}, false
	}
	if world.Adjacent(e.Position, smith.Position) {
		smith.ResourceCount += e.ResourceCount
		e.ResourceCount = 0
		return nil, true
	}
	return w.MoveEntity(e, w.NextPosition(e.Position, smith.Position)), false
}

// TryTransform swaps a miner between its full and not-full variants in place.
// The handle, name and cell survive; pending actions do not.
func (w *World) TryTransform(e *Entity, to Kind, tick int64) bool {
	if !e.Kind.IsMiner() || !to.IsMiner() || e.Kind == to {
		return false
	}
	pt := e.Position
	w.RemoveFromGrid(e)
	e.Kind = to
	e.Frame = 0
	if to == KindMinerFull {
		e.ResourceCount = e.ResourceLimit
	} else {
		e.ResourceCount = 0
	}
	e.Position = pt
	w.AddEntity(e)
	w.ScheduleAnimation(e, tick, 0)
	return true
}

// RemoveFromGrid cancels e's actions and takes it off the grid and out of the
// entity order without releasing its handle, so it can be re-added.
func (w *World) RemoveFromGrid(e *Entity) {
	w.CancelPending(e)
	if w.occupancy.Get(e.Position) == e.Handle {
		w.occupancy.Set(e.Position, Handle{})
	}
	e.Position = world.Unplaced
	for i, h := range w.order {
		if h == e.Handle {
			w.order = append(w.order[:i], w.order[i+1:]...)
			return
		}
	}
}

func veinStep(w *World, e *Entity, _ Action, tick int64) []world.Point {
	var tiles []world.Point
	if open, ok := w.FindOpenAround(e.Position, e.ResourceDistance); ok {
		ore := w.CreateOre(fmt.Sprintf("ore - %s - %d", e.Name, tick), open, tick)
		w.AddEntity(ore)
		tiles = []world.Point{open}
	}
	w.Schedule(e, Action{Kind: ActionVein}, after(tick, e.Rate))
	return tiles
}

func oreTransform(w *World, e *Entity, _ Action, tick int64) []world.Point {
	pt := e.Position
	blob := w.createBlob(e.Name+" -- blob", pt, e.Rate/w.tuning.BlobRateScale, tick)
	w.RemoveEntity(e)
	w.AddEntity(blob)
	return []world.Point{blob.Position}
}

func blobStep(w *World, e *Entity, _ Action, tick int64) []world.Point {
	tiles, found := w.blobToVein(e)
	next := after(tick, e.Rate)
	if found {
		quake := w.createQuake(e.Name, tiles[0], tick)
		w.AddEntity(quake)
		next = after(after(tick, e.Rate), e.Rate)
	}
	w.Schedule(e, Action{Kind: ActionBlob}, next)
	return tiles
}

func (w *World) blobToVein(e *Entity) ([]world.Point, bool) {
	vein, ok := w.FindNearest(e.Position, KindVein)
	if !ok {
		return []world.Point{e.Position}, false
	}
	veinPt := vein.Position
	if world.Adjacent(e.Position, veinPt) {
		w.RemoveEntity(vein)
		return []world.Point{veinPt}, true
	}
	next := w.BlobNextPosition(e.Position, veinPt)
	if occupant, ok := w.Occupant(next); ok && occupant.Kind == KindOre {
		w.RemoveEntity(occupant)
	}
	return w.MoveEntity(e, next), false
}

func animate(w *World, e *Entity, a Action, tick int64) []world.Point {
	e.NextFrame()
	if a.Repeat != 1 {
		w.Schedule(e, Action{Kind: ActionAnimate, Repeat: max(a.Repeat-1, 0)}, after(tick, e.AnimationRate))
	}
	return []world.Point{e.Position}
}

func quakeDeath(w *World, e *Entity, _ Action, _ int64) []world.Point {
	pt := e.Position
	w.RemoveEntity(e)
	return []world.Point{pt}
}
