package terrain

import (
	"sort"

	opensimplex "github.com/ojrac/opensimplex-go"

	"minerworld/internal/domain/sim"
	"minerworld/internal/domain/world"
)

// Band assigns Name to every cell whose normalized noise is below Below.
type Band struct {
	Below float64
	Name  string
}

type Config struct {
	Seed   int64
	Scale  float64
	Bands  []Band
	Frames sim.FrameSource
}

type Provider struct {
	cfg   Config
	noise opensimplex.Noise
}

func DefaultConfig() Config {
	return Config{
		Seed:  0,
		Scale: 0.15,
		Bands: []Band{
			{Below: 0.7, Name: world.DefaultBackgroundName},
			{Below: 1.01, Name: "rocks"},
		},
	}
}

func NewProvider(cfg Config) Provider {
	def := DefaultConfig()
	if cfg.Scale <= 0 {
		cfg.Scale = def.Scale
	}
	if len(cfg.Bands) == 0 {
		cfg.Bands = def.Bands
	}
	bands := append([]Band(nil), cfg.Bands...)
	sort.SliceStable(bands, func(i, j int) bool { return bands[i].Below < bands[j].Below })
	cfg.Bands = bands
	return Provider{cfg: cfg, noise: opensimplex.NewNormalized(cfg.Seed)}
}

func (p Provider) BackgroundAt(pt world.Point) world.Background {
	name := p.nameAt(pt)
	var frames []string
	if p.cfg.Frames != nil {
		frames = p.cfg.Frames.Frames(name)
	}
	return world.NewBackground(name, frames)
}

func (p Provider) nameAt(pt world.Point) string {
	n := p.noise.Eval2(float64(pt.X)*p.cfg.Scale, float64(pt.Y)*p.cfg.Scale)
	for _, b := range p.cfg.Bands {
		if n < b.Below {
			return b.Name
		}
	}
	return p.cfg.Bands[len(p.cfg.Bands)-1].Name
}
