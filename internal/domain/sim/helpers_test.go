package sim

import (
	"fmt"
	"testing"

	"minerworld/internal/domain/world"
)

type stubFrames map[string][]string

func (s stubFrames) Frames(category string) []string { return s[category] }

func numbered(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return out
}

type recorder struct {
	fired map[ActionKind]int
	added map[Kind]int
}

func newRecorder() *recorder {
	return &recorder{fired: map[ActionKind]int{}, added: map[Kind]int{}}
}

func (r *recorder) ActionFired(kind ActionKind, _ int64) { r.fired[kind]++ }
func (r *recorder) EntityAdded(kind Kind, _ int64)       { r.added[kind]++ }

func newTestWorld(t *testing.T, rows, cols int) *World {
	t.Helper()
	return NewWorld(Config{
		Rows: rows,
		Cols: cols,
		Rand: NewDeterministicRNG("test", t.Name()),
		Frames: stubFrames{
			"background": {"grass"},
			"quake":      numbered("quake", 20),
			"miner":      numbered("miner", 4),
		},
	})
}

func place(t *testing.T, w *World, e *Entity) *Entity {
	t.Helper()
	if !w.AddEntity(e) {
		t.Fatalf("expected %q to be placed at %v", e.Name, e.Position)
	}
	return e
}

func pt(x, y int) world.Point { return world.Point{X: x, Y: y} }
