package sim

import (
	"errors"
	"fmt"

	"minerworld/internal/domain/world"
)

var ErrInvariant = errors.New("world invariant violated")

// CheckInvariants verifies that the grid and entity positions agree in both
// directions and that every pending ticket is still queued.
func (w *World) CheckInvariants() error {
	for y := 0; y < w.rows; y++ {
		for x := 0; x < w.cols; x++ {
			pt := world.Point{X: x, Y: y}
			h := w.occupancy.Get(pt)
			if h.IsZero() {
				continue
			}
			e := w.entities.get(h)
			if e == nil {
				return fmt.Errorf("%w: cell %v holds stale handle %+v", ErrInvariant, pt, h)
			}
			if e.Position != pt {
				return fmt.Errorf("%w: cell %v holds %q positioned at %v", ErrInvariant, pt, e.Name, e.Position)
			}
		}
	}
	for _, e := range w.Entities() {
		if e.Position.IsPlaced() && w.occupancy.Get(e.Position) != e.Handle {
			return fmt.Errorf("%w: %q at %v is not in its cell", ErrInvariant, e.Name, e.Position)
		}
		for _, t := range e.pending {
			if !w.queue.Contains(t) {
				return fmt.Errorf("%w: %q owns fired ticket %d", ErrInvariant, e.Name, t)
			}
		}
	}
	return nil
}
