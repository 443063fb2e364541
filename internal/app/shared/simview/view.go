package simview

import (
	"minerworld/internal/domain/sim"
	"minerworld/internal/domain/world"
)

type Entity struct {
	Name             string      `json:"name" jsonschema:"required"`
	Kind             string      `json:"kind" jsonschema:"required"`
	Pos              world.Point `json:"pos" jsonschema:"required"`
	Image            string      `json:"image,omitempty"`
	Frame            int         `json:"frame"`
	Rate             int64       `json:"rate,omitempty"`
	AnimationRate    int64       `json:"animation_rate,omitempty"`
	ResourceCount    int         `json:"resource_count,omitempty"`
	ResourceLimit    int         `json:"resource_limit,omitempty"`
	ResourceDistance int         `json:"resource_distance,omitempty"`
	NextActionTick   *int64      `json:"next_action_tick,omitempty"`
	PendingActions   int         `json:"pending_actions"`
}

func EntityOf(w *sim.World, e *sim.Entity) Entity {
	out := Entity{
		Name:             e.Name,
		Kind:             e.Kind.String(),
		Pos:              e.Position,
		Image:            e.Image(),
		Frame:            e.Frame,
		Rate:             e.Rate,
		AnimationRate:    e.AnimationRate,
		ResourceCount:    e.ResourceCount,
		ResourceLimit:    e.ResourceLimit,
		ResourceDistance: e.ResourceDistance,
		PendingActions:   len(e.Pending()),
	}
	if kind, ok := e.Kind.PrimaryAction(); ok {
		if due, ok := w.NextDue(e, kind); ok {
			out.NextActionTick = &due
		}
	}
	return out
}

// Entities lists placed entities in insertion order, optionally of one kind.
func Entities(w *sim.World, filter func(sim.Kind) bool) []Entity {
	out := []Entity{}
	for _, e := range w.Entities() {
		if !e.Position.IsPlaced() {
			continue
		}
		if filter != nil && !filter(e.Kind) {
			continue
		}
		out = append(out, EntityOf(w, e))
	}
	return out
}

// Counts keys placed entities by kind name; every kind appears.
func Counts(w *sim.World) map[string]int {
	counts := w.Counts()
	out := make(map[string]int, len(sim.Kinds()))
	for _, k := range sim.Kinds() {
		out[k.String()] = counts[k]
	}
	return out
}
