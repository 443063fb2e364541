package status

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"minerworld/internal/app/ports"
	"minerworld/internal/app/shared/simview"
	"minerworld/internal/domain/sim"
)

var ErrInvalidRequest = errors.New("invalid status request")

type UseCase struct {
	World ports.WorldReader
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	filter, err := kindFilter(req.Kind)
	if err != nil {
		return Response{}, err
	}
	var resp Response
	err = u.World.Read(ctx, func(w *sim.World) error {
		resp = Response{Tick: w.Now(), Entities: simview.Entities(w, filter)}
		return nil
	})
	return resp, err
}

func kindFilter(raw string) (func(sim.Kind) bool, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return nil, nil
	}
	for _, k := range sim.Kinds() {
		if k.String() == raw {
			return func(c sim.Kind) bool { return c == k }, nil
		}
	}
	for _, k := range sim.Kinds() {
		if k.Category() == raw {
			category := raw
			return func(c sim.Kind) bool { return c.Category() == category }, nil
		}
	}
	return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidRequest, raw)
}

type EntityUseCase struct {
	World ports.WorldReader
}

func (u EntityUseCase) Execute(ctx context.Context, req EntityRequest) (EntityResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return EntityResponse{}, ErrInvalidRequest
	}
	var resp EntityResponse
	err := u.World.Read(ctx, func(w *sim.World) error {
		e, ok := w.EntityByName(name)
		if !ok || !e.Position.IsPlaced() {
			return fmt.Errorf("entity %q: %w", name, ports.ErrNotFound)
		}
		resp = EntityResponse{Tick: w.Now(), Entity: simview.EntityOf(w, e)}
		return nil
	})
	if err != nil {
		return EntityResponse{}, err
	}
	return resp, nil
}
