// Package sim is the discrete-event core: the world model, the entity
// variants and the behaviours that schedule their own future actions.
//
// A World is not safe for concurrent use.
package sim

import (
	"math/rand"

	"minerworld/internal/domain/schedule"
	"minerworld/internal/domain/world"
)

// FrameSource resolves an asset category to its ordered frame handles.
type FrameSource interface {
	Frames(category string) []string
}

// Observer hears about every dispatched action and every placed entity.
type Observer interface {
	ActionFired(kind ActionKind, tick int64)
	EntityAdded(kind Kind, tick int64)
}

type nopObserver struct{}

func (nopObserver) ActionFired(ActionKind, int64) {}
func (nopObserver) EntityAdded(Kind, int64)       {}

type noFrames struct{}

func (noFrames) Frames(string) []string { return nil }

type Config struct {
	Rows       int
	Cols       int
	Background world.Background
	Tuning     Tuning
	Rand       *rand.Rand
	Frames     FrameSource
	Observer   Observer
}

type World struct {
	rows int
	cols int

	background *world.Grid[world.Background]
	occupancy  *world.Grid[Handle]
	entities   arena
	order      []Handle
	queue      *schedule.Queue[Action]
	now        int64

	tuning   Tuning
	rng      *rand.Rand
	frames   FrameSource
	observer Observer
}

func NewWorld(cfg Config) *World {
	if cfg.Rand == nil {
		cfg.Rand = NewDeterministicRNG(DefaultSeed, "world")
	}
	if cfg.Frames == nil {
		cfg.Frames = noFrames{}
	}
	if cfg.Observer == nil {
		cfg.Observer = nopObserver{}
	}
	if cfg.Background.Name == "" {
		cfg.Background = world.NewBackground(world.DefaultBackgroundName, cfg.Frames.Frames(KindBackground.Category()))
	}
	return &World{
		rows:       cfg.Rows,
		cols:       cfg.Cols,
		background: world.NewGrid(cfg.Rows, cfg.Cols, cfg.Background),
		occupancy:  world.NewGrid(cfg.Rows, cfg.Cols, Handle{}),
		queue:      schedule.NewQueue[Action](),
		tuning:     cfg.Tuning.Normalized(),
		rng:        cfg.Rand,
		frames:     cfg.Frames,
		observer:   cfg.Observer,
	}
}

func (w *World) Rows() int      { return w.rows }
func (w *World) Cols() int      { return w.cols }
func (w *World) Now() int64     { return w.now }
func (w *World) Tuning() Tuning { return w.tuning }
func (w *World) QueueLen() int  { return w.queue.Len() }

func (w *World) WithinBounds(pt world.Point) bool {
	return w.occupancy.Within(pt)
}

func (w *World) IsOccupied(pt world.Point) bool {
	return w.WithinBounds(pt) && !w.occupancy.Get(pt).IsZero()
}

// Occupant returns the entity holding pt, if any.
func (w *World) Occupant(pt world.Point) (*Entity, bool) {
	if !w.WithinBounds(pt) {
		return nil, false
	}
	e := w.entities.get(w.occupancy.Get(pt))
	return e, e != nil
}

func (w *World) Entity(h Handle) (*Entity, bool) {
	e := w.entities.get(h)
	return e, e != nil
}

func (w *World) EntityByName(name string) (*Entity, bool) {
	for _, h := range w.order {
		if e := w.entities.get(h); e != nil && e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// Entities returns the entity set in insertion order.
func (w *World) Entities() []*Entity {
	out := make([]*Entity, 0, len(w.order))
	for _, h := range w.order {
		if e := w.entities.get(h); e != nil {
			out = append(out, e)
		}
	}
	return out
}

func (w *World) Counts() map[Kind]int {
	out := map[Kind]int{}
	for _, e := range w.Entities() {
		if e.Position.IsPlaced() {
			out[e.Kind]++
		}
	}
	return out
}

func (w *World) Background(pt world.Point) (world.Background, bool) {
	if !w.WithinBounds(pt) {
		return world.Background{}, false
	}
	return w.background.Get(pt), true
}

// Frames resolves an asset category through the world's frame source.
func (w *World) Frames(category string) []string {
	return w.frames.Frames(category)
}

func (w *World) SetBackground(pt world.Point, bg world.Background) {
	w.background.Set(pt, bg)
}

// Image is the frame to draw at pt: the occupant's, else the background's.
func (w *World) Image(pt world.Point) string {
	if e, ok := w.Occupant(pt); ok {
		return e.Image()
	}
	bg, _ := w.Background(pt)
	return bg.Image()
}

func (w *World) newEntity(kind Kind, name string, pt world.Point) *Entity {
	e := &Entity{
		Kind:     kind,
		Name:     name,
		Position: pt,
		Frames:   w.frames.Frames(kind.Category()),
	}
	w.entities.alloc(e)
	return e
}

// AddEntity places e at its recorded position and appends it to the entity
// set. An occupant already at that cell loses its pending actions and its
// cell but stays in the entity set. An entity outside the grid is discarded.
func (w *World) AddEntity(e *Entity) bool {
	pt := e.Position
	if !w.WithinBounds(pt) {
		w.CancelPending(e)
		e.Position = world.Unplaced
		w.entities.release(e.Handle)
		return false
	}
	if old, ok := w.Occupant(pt); ok && old != e {
		w.CancelPending(old)
		old.Position = world.Unplaced
	}
	w.occupancy.Set(pt, e.Handle)
	w.order = append(w.order, e.Handle)
	w.observer.EntityAdded(e.Kind, w.now)
	return true
}

// MoveEntity returns the old and new cell, or nil when pt is off the grid.
func (w *World) MoveEntity(e *Entity, pt world.Point) []world.Point {
	if !w.WithinBounds(pt) {
		return nil
	}
	old := e.Position
	w.occupancy.Set(old, Handle{})
	w.occupancy.Set(pt, e.Handle)
	e.Position = pt
	return []world.Point{old, pt}
}

// RemoveEntity cancels every pending action of e, then detaches it from the
// grid and drops it from the entity set. It is the only removal path.
func (w *World) RemoveEntity(e *Entity) {
	if e == nil || w.entities.get(e.Handle) != e {
		return
	}
	w.RemoveFromGrid(e)
	w.entities.release(e.Handle)
}

func (w *World) RemoveEntityAt(pt world.Point) {
	if e, ok := w.Occupant(pt); ok {
		w.RemoveEntity(e)
	}
}

// FindNearest scans placed entities of kind in insertion order and returns
// the one with the smallest squared distance to pt; the first wins ties.
func (w *World) FindNearest(pt world.Point, kind Kind) (*Entity, bool) {
	var best *Entity
	bestDist := 0
	for _, h := range w.order {
		e := w.entities.get(h)
		if e == nil || e.Kind != kind || !e.Position.IsPlaced() {
			continue
		}
		d := world.DistanceSq(pt, e.Position)
		if best == nil || d < bestDist {
			best, bestDist = e, d
		}
	}
	return best, best != nil
}

// FindOpenAround scans the (2r+1)^2 square around pt row by row and returns
// the first free in-bounds cell.
func (w *World) FindOpenAround(pt world.Point, radius int) (world.Point, bool) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			p := world.Point{X: pt.X + dx, Y: pt.Y + dy}
			if w.WithinBounds(p) && !w.IsOccupied(p) {
				return p, true
			}
		}
	}
	return world.Point{}, false
}

// Schedule queues action for e at tick and records it as pending on e.
func (w *World) Schedule(e *Entity, action Action, tick int64) schedule.Ticket {
	action.Owner = e.Handle
	t := w.queue.Insert(action, tick)
	e.addPending(t)
	return t
}

// NextDue reports the earliest pending tick of an action of kind owned by e.
func (w *World) NextDue(e *Entity, kind ActionKind) (int64, bool) {
	var (
		due   int64
		found bool
	)
	for _, t := range e.pending {
		entry, ok := w.queue.Get(t)
		if !ok || entry.Payload.Kind != kind {
			continue
		}
		if !found || entry.Tick < due {
			due, found = entry.Tick, true
		}
	}
	return due, found
}

func (w *World) CancelPending(e *Entity) {
	for _, t := range e.pending {
		w.queue.Remove(t)
	}
	e.pending = nil
}

// AdvanceTo fires, in (tick, insertion) order, every queued action due
// strictly before tick, including actions scheduled while advancing. Each
// action sees Now() equal to its own trigger tick. The returned cells are
// in firing order and may repeat. Follow-ups land at trigger+rate, so one
// large advance and many small ones reach the same state.
func (w *World) AdvanceTo(tick int64) []world.Point {
	var changed []world.Point
	for {
		next, ok := w.queue.Peek()
		if !ok || next.Tick >= tick {
			break
		}
		w.queue.Pop()
		if next.Tick > w.now {
			w.now = next.Tick
		}
		changed = append(changed, w.dispatch(next)...)
	}
	if tick > w.now {
		w.now = tick
	}
	return changed
}

func (w *World) dispatch(entry schedule.Entry[Action]) []world.Point {
	owner := w.entities.get(entry.Payload.Owner)
	if owner == nil {
		return nil
	}
	owner.dropPending(entry.Ticket)
	w.observer.ActionFired(entry.Payload.Kind, w.now)

	handler, ok := handlers[entry.Payload.Kind]
	if !ok {
		return nil
	}
	return handler(w, owner, entry.Payload, w.now)
}
