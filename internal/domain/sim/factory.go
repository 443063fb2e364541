package sim

import (
	"fmt"
	"math"

	"minerworld/internal/domain/world"
)

func NewMiner(w *World, name string, pt world.Point, resourceLimit int, rate, animationRate int64) *Entity {
	e := w.newEntity(KindMinerNotFull, name, pt)
	e.ResourceLimit = resourceLimit
	e.Rate = rate
	e.AnimationRate = animationRate
	return e
}

func NewVein(w *World, name string, pt world.Point, rate int64, resourceDistance int) *Entity {
	e := w.newEntity(KindVein, name, pt)
	e.Rate = rate
	e.ResourceDistance = resourceDistance
	return e
}

func NewOre(w *World, name string, pt world.Point, rate int64) *Entity {
	e := w.newEntity(KindOre, name, pt)
	e.Rate = rate
	return e
}

func NewBlacksmith(w *World, name string, pt world.Point, resourceLimit int, rate int64, resourceDistance int) *Entity {
	e := w.newEntity(KindBlacksmith, name, pt)
	e.ResourceLimit = resourceLimit
	e.Rate = rate
	e.ResourceDistance = resourceDistance
	return e
}

func NewObstacle(w *World, name string, pt world.Point) *Entity {
	return w.newEntity(KindObstacle, name, pt)
}

func NewOreBlob(w *World, name string, pt world.Point, rate, animationRate int64) *Entity {
	e := w.newEntity(KindOreBlob, name, pt)
	e.Rate = rate
	e.AnimationRate = animationRate
	return e
}

func NewQuake(w *World, name string, pt world.Point) *Entity {
	e := w.newEntity(KindQuake, name, pt)
	e.AnimationRate = w.tuning.QuakeAnimationRate
	return e
}

// ScheduleEntity queues the initial actions of e as of tick. Passive kinds get
// nothing.
func (w *World) ScheduleEntity(e *Entity, tick int64) {
	switch e.Kind {
	case KindMinerNotFull, KindMinerFull:
		w.Schedule(e, Action{Kind: ActionMiner}, after(tick, e.Rate))
		w.ScheduleAnimation(e, tick, 0)
	case KindVein:
		w.Schedule(e, Action{Kind: ActionVein}, after(tick, e.Rate))
	case KindOre:
		w.Schedule(e, Action{Kind: ActionOreTransform}, after(tick, e.Rate))
	case KindOreBlob:
		w.Schedule(e, Action{Kind: ActionBlob}, after(tick, e.Rate))
		w.ScheduleAnimation(e, tick, 0)
	case KindQuake:
		w.ScheduleAnimation(e, tick, w.tuning.QuakeSteps)
		w.Schedule(e, Action{Kind: ActionQuakeDeath}, after(tick, w.tuning.QuakeDuration))
	}
}

// ScheduleAnimation queues a frame advance; repeat 0 keeps animating.
func (w *World) ScheduleAnimation(e *Entity, tick int64, repeat int) {
	w.Schedule(e, Action{Kind: ActionAnimate, Repeat: repeat}, after(tick, e.AnimationRate))
}

// CreateVein builds an unplaced vein with a random rate whose first spawn
// attempt waits for the vein spawn delay.
func (w *World) CreateVein(name string, pt world.Point, tick int64) *Entity {
	rate := RandomBetween(w.rng, w.tuning.VeinRateMin, w.tuning.VeinRateMax)
	e := NewVein(w, name, pt, rate, 1)
	w.Schedule(e, Action{Kind: ActionVein}, after(tick, w.tuning.VeinSpawnDelay))
	return e
}

// CreateOre builds an unplaced ore with a random corruption delay.
func (w *World) CreateOre(name string, pt world.Point, tick int64) *Entity {
	rate := RandomBetween(w.rng, w.tuning.OreCorruptMin, w.tuning.OreCorruptMax)
	e := NewOre(w, name, pt, rate)
	w.ScheduleEntity(e, tick)
	return e
}

func (w *World) createBlob(name string, pt world.Point, rate, tick int64) *Entity {
	animation := RandomBetween(w.rng, w.tuning.BlobAnimationMin, w.tuning.BlobAnimationMax) * w.tuning.BlobAnimationRateScale
	e := NewOreBlob(w, name, pt, rate, animation)
	w.ScheduleEntity(e, tick)
	return e
}

func (w *World) createQuake(cause string, pt world.Point, tick int64) *Entity {
	e := NewQuake(w, fmt.Sprintf("quake - %s - %d", cause, tick), pt)
	w.ScheduleEntity(e, tick)
	return e
}

// MaxRate bounds the rates accepted from layouts and spawn requests.
const MaxRate int64 = 1 << 40

// ValidRate reports whether rate is usable as an entity rate. Zero means
// "as soon as possible" and is clamped when scheduling.
func ValidRate(rate int64) bool {
	return rate >= 0 && rate <= MaxRate
}

// after is tick+clampRate(d), saturating at math.MaxInt64. A saturated action
// stays queued and never fires.
func after(tick, d int64) int64 {
	d = clampRate(d)
	if tick > math.MaxInt64-d {
		return math.MaxInt64
	}
	return tick + d
}

func clampRate(rate int64) int64 {
	if rate < minRate {
		return minRate
	}
	return rate
}
