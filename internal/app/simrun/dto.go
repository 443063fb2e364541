package simrun

import (
	"minerworld/internal/app/ports"
	"minerworld/internal/app/shared/simview"
)

// AdvanceRequest moves the clock by Ticks or up to the absolute tick To.
// Exactly one must be set.
type AdvanceRequest struct {
	Ticks int64 `json:"ticks,omitempty"`
	To    int64 `json:"to,omitempty"`
}

type AdvanceResponse struct {
	FromTick int64        `json:"from_tick" jsonschema:"required"`
	Tick     int64        `json:"tick" jsonschema:"required"`
	Fired    int          `json:"fired" jsonschema:"required"`
	Cells    []ports.Cell `json:"cells" jsonschema:"required"`
}

type SpawnRequest struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
	X    int    `json:"x"`
	Y    int    `json:"y"`

	Rate             int64 `json:"rate,omitempty"`
	AnimationRate    int64 `json:"animation_rate,omitempty"`
	ResourceLimit    int   `json:"resource_limit,omitempty"`
	ResourceDistance int   `json:"resource_distance,omitempty"`
}

type SpawnResponse struct {
	Entity simview.Entity `json:"entity" jsonschema:"required"`
}

type Status struct {
	RunID    string         `json:"run_id" jsonschema:"required"`
	Seed     string         `json:"seed"`
	Tick     int64          `json:"tick" jsonschema:"required"`
	Rows     int            `json:"rows"`
	Cols     int            `json:"cols"`
	QueueLen int            `json:"queue_len"`
	Counts   map[string]int `json:"counts"`
}
