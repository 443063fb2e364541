package observe

import (
	"minerworld/internal/app/shared/simview"
	"minerworld/internal/domain/world"
)

type Request struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Radius int `json:"radius"`
}

type Response struct {
	Tick   int64          `json:"tick" jsonschema:"required"`
	View   View           `json:"view" jsonschema:"required"`
	Cells  []ObservedCell `json:"cells" jsonschema:"required"`
	Counts map[string]int `json:"counts"`
}

type View struct {
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Center world.Point `json:"center"`
	Radius int         `json:"radius"`
}

type ObservedCell struct {
	Pos        world.Point     `json:"pos" jsonschema:"required"`
	Background string          `json:"background"`
	Image      string          `json:"image"`
	Occupant   *simview.Entity `json:"occupant,omitempty"`
}
