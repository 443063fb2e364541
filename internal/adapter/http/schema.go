package httpadapter

import (
	"minerworld/internal/app/observe"
	"minerworld/internal/app/replay"
	"minerworld/internal/app/simrun"
	"minerworld/internal/app/status"

	"github.com/invopop/jsonschema"
)

var schemaTypes = []struct {
	name  string
	value any
	desc  string
}{
	{"advance", simrun.AdvanceResponse{}, "Result of POST /api/sim/advance."},
	{"spawn", simrun.SpawnResponse{}, "Result of POST /api/sim/spawn."},
	{"status", simrun.Status{}, "Result of GET /api/sim/status."},
	{"observe", observe.Response{}, "Result of POST /api/sim/observe."},
	{"entities", status.Response{}, "Result of GET /api/sim/entities."},
	{"entity", status.EntityResponse{}, "Result of GET /api/sim/entities/:name."},
	{"replay", replay.Response{}, "Result of GET /api/sim/replay."},
}

// ResponseSchemas describes every JSON response body keyed by endpoint name.
func ResponseSchemas() map[string]*jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}
	out := make(map[string]*jsonschema.Schema, len(schemaTypes))
	for _, st := range schemaTypes {
		schema := reflector.Reflect(st.value)
		schema.Title = st.name
		schema.Description = st.desc
		out[st.name] = schema
	}
	return out
}
