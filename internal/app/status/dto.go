package status

import "minerworld/internal/app/shared/simview"

type Request struct {
	// Kind filters by kind name ("ore_blob") or asset category ("miner").
	Kind string
}

type Response struct {
	Tick     int64            `json:"tick" jsonschema:"required"`
	Entities []simview.Entity `json:"entities" jsonschema:"required"`
}

type EntityRequest struct {
	Name string
}

type EntityResponse struct {
	Tick   int64          `json:"tick" jsonschema:"required"`
	Entity simview.Entity `json:"entity" jsonschema:"required"`
}
