package inmemory

import (
	"sync"

	"minerworld/internal/domain/sim"
)

type Snapshot struct {
	ActionsFired   uint64            `json:"actions_fired"`
	EntitiesAdded  uint64            `json:"entities_added"`
	Advances       uint64            `json:"advances"`
	TicksAdvanced  int64             `json:"ticks_advanced"`
	CellsChanged   uint64            `json:"cells_changed"`
	Rejected       uint64            `json:"rejected"`
	LastActionTick int64             `json:"last_action_tick"`
	ByAction       map[string]uint64 `json:"by_action"`
	ByEntity       map[string]uint64 `json:"by_entity"`
}

type Recorder struct {
	mu       sync.Mutex
	fired    uint64
	added    uint64
	advances uint64
	ticks    int64
	changed  uint64
	rejected uint64
	lastTick int64
	byAction map[string]uint64
	byEntity map[string]uint64
}

// NewRecorder starts every action kind at zero so /ops/kpi lists them all.
func NewRecorder() *Recorder {
	r := &Recorder{
		byAction: map[string]uint64{},
		byEntity: map[string]uint64{},
	}
	for _, k := range sim.ActionKinds() {
		r.byAction[k.String()] = 0
	}
	return r
}

func (r *Recorder) ActionFired(kind sim.ActionKind, tick int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fired++
	r.byAction[kind.String()]++
	if tick > r.lastTick {
		r.lastTick = tick
	}
}

func (r *Recorder) EntityAdded(kind sim.Kind, _ int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.added++
	r.byEntity[kind.String()]++
}

func (r *Recorder) RecordAdvance(ticks int64, changed int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.advances++
	r.ticks += ticks
	r.changed += uint64(changed)
}

func (r *Recorder) RecordRejected() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		ActionsFired:   r.fired,
		EntitiesAdded:  r.added,
		Advances:       r.advances,
		TicksAdvanced:  r.ticks,
		CellsChanged:   r.changed,
		Rejected:       r.rejected,
		LastActionTick: r.lastTick,
		ByAction:       make(map[string]uint64, len(r.byAction)),
		ByEntity:       make(map[string]uint64, len(r.byEntity)),
	}
	for k, v := range r.byAction {
		out.ByAction[k] = v
	}
	for k, v := range r.byEntity {
		out.ByEntity[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
