package ports

import (
	"context"
	"io"

	"minerworld/internal/domain/sim"
	"minerworld/internal/domain/world"
)

// WorldReader runs fn against the live world while holding it still.
type WorldReader interface {
	Read(ctx context.Context, fn func(w *sim.World) error) error
}

type LayoutCodec interface {
	Load(r io.Reader, w *sim.World) error
	Save(out io.Writer, w *sim.World) error
}

// TerrainProvider paints the background under every cell before the layout
// is loaded.
type TerrainProvider interface {
	BackgroundAt(pt world.Point) world.Background
}

type AssetProvider interface {
	sim.FrameSource
	File(ctx context.Context, path string) ([]byte, error)
}

// Cell is one changed grid cell and the frame now drawn there.
type Cell struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Image string `json:"image"`
}

type ChangeFrame struct {
	Tick  int64  `json:"tick"`
	Cells []Cell `json:"cells"`
}

type ChangeStream interface {
	Publish(frame ChangeFrame)
}
