package sim

import "minerworld/internal/domain/world"

// NextPosition takes one greedy step from `from` toward `to`: horizontal
// first, then vertical, else stay. There is no search, so an agent can stall
// behind an obstacle.
func (w *World) NextPosition(from, to world.Point) world.Point {
	return w.step(from, to, w.IsOccupied)
}

// BlobNextPosition is NextPosition where cells holding ore are passable.
func (w *World) BlobNextPosition(from, to world.Point) world.Point {
	return w.step(from, to, func(p world.Point) bool {
		e, ok := w.Occupant(p)
		return ok && e.Kind != KindOre
	})
}

func (w *World) step(from, to world.Point, blocked func(world.Point) bool) world.Point {
	dir := to.Sub(from).Sign()
	next := world.Point{X: from.X + dir.X, Y: from.Y}
	if dir.X != 0 && !blocked(next) {
		return next
	}
	next = world.Point{X: from.X, Y: from.Y + dir.Y}
	if dir.Y != 0 && !blocked(next) {
		return next
	}
	return from
}
