package observe

import (
	"context"
	"errors"
	"fmt"

	"minerworld/internal/app/ports"
	"minerworld/internal/app/shared/simview"
	"minerworld/internal/domain/sim"
	"minerworld/internal/domain/world"
)

var ErrInvalidRequest = errors.New("invalid observe request")

const (
	defaultViewRadius = 5
	maxViewRadius     = 20
)

type UseCase struct {
	World ports.WorldReader
}

// Execute returns the square window of cells around the requested center,
// clipped to the grid.
func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	radius := req.Radius
	if radius == 0 {
		radius = defaultViewRadius
	}
	if radius < 0 || radius > maxViewRadius {
		return Response{}, fmt.Errorf("%w: radius must be within 1..%d", ErrInvalidRequest, maxViewRadius)
	}
	center := world.Point{X: req.X, Y: req.Y}

	var resp Response
	err := u.World.Read(ctx, func(w *sim.World) error {
		if !w.WithinBounds(center) {
			return fmt.Errorf("%w: center %d,%d is outside the grid", ErrInvalidRequest, center.X, center.Y)
		}
		resp = Response{
			Tick: w.Now(),
			View: View{
				Width:  radius*2 + 1,
				Height: radius*2 + 1,
				Center: center,
				Radius: radius,
			},
			Cells:  buildWindow(w, center, radius),
			Counts: simview.Counts(w),
		}
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	return resp, nil
}

func buildWindow(w *sim.World, center world.Point, radius int) []ObservedCell {
	out := make([]ObservedCell, 0, (radius*2+1)*(radius*2+1))
	for y := center.Y - radius; y <= center.Y+radius; y++ {
		for x := center.X - radius; x <= center.X+radius; x++ {
			pt := world.Point{X: x, Y: y}
			bg, ok := w.Background(pt)
			if !ok {
				continue
			}
			cell := ObservedCell{Pos: pt, Background: bg.Name, Image: w.Image(pt)}
			if e, ok := w.Occupant(pt); ok {
				view := simview.EntityOf(w, e)
				cell.Occupant = &view
			}
			out = append(out, cell)
		}
	}
	return out
}
