package simrun

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"minerworld/internal/app/ports"
	"minerworld/internal/app/shared/simview"
	"minerworld/internal/domain/sim"
	"minerworld/internal/domain/world"
)

var (
	ErrInvalidRequest  = errors.New("invalid simulation request")
	ErrUnknownKind     = errors.New("unknown entity kind")
	ErrCellUnavailable = errors.New("cell unavailable")
)

const (
	defaultRows         = 15
	defaultCols         = 20
	defaultTicksPerStep = 100
	defaultStepInterval = 100 * time.Millisecond

	defaultMinerLimit         = 2
	defaultMinerRate          = 1000
	defaultMinerAnimationRate = 100
	defaultSmithLimit         = 100
)

type Config struct {
	Rows   int
	Cols   int
	Seed   string
	Tuning sim.Tuning
	// Layout is world file text loaded through Deps.Codec.
	Layout string

	TicksPerStep int64
	StepInterval time.Duration
	// RealTime makes Run follow the wall clock at TickDuration per tick
	// instead of stepping TicksPerStep.
	RealTime     bool
	TickDuration time.Duration
	Now          func() time.Time
}

type Deps struct {
	Frames    sim.FrameSource
	Terrain   ports.TerrainProvider
	Codec     ports.LayoutCodec
	Journal   ports.TickJournal
	Runs      ports.RunRepository
	TxManager ports.TxManager
	Metrics   ports.SimMetrics
	Stream    ports.ChangeStream
	Logger    *log.Logger
}

func DefaultConfig() Config {
	return Config{
		Rows:         defaultRows,
		Cols:         defaultCols,
		Seed:         sim.DefaultSeed,
		Tuning:       sim.DefaultTuning(),
		TicksPerStep: defaultTicksPerStep,
		StepInterval: defaultStepInterval,
		TickDuration: time.Millisecond,
		Now:          time.Now,
	}
}

// Service owns one world and serializes every access to it.
type Service struct {
	mu sync.Mutex
	// pubMu is taken before mu is released, so frames reach the stream in
	// the order the world changed.
	pubMu sync.Mutex
	cfg   Config
	deps  Deps
	world *sim.World
	runID string
	fired int

	logger *log.Logger
}

func New(ctx context.Context, cfg Config, deps Deps) (*Service, error) {
	def := DefaultConfig()
	if cfg.Rows <= 0 {
		cfg.Rows = def.Rows
	}
	if cfg.Cols <= 0 {
		cfg.Cols = def.Cols
	}
	if strings.TrimSpace(cfg.Seed) == "" {
		cfg.Seed = def.Seed
	}
	if cfg.TicksPerStep <= 0 {
		cfg.TicksPerStep = def.TicksPerStep
	}
	if cfg.StepInterval <= 0 {
		cfg.StepInterval = def.StepInterval
	}
	if cfg.TickDuration <= 0 {
		cfg.TickDuration = def.TickDuration
	}
	if cfg.Now == nil {
		cfg.Now = def.Now
	}
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}

	s := &Service{cfg: cfg, deps: deps, logger: deps.Logger, runID: uuid.NewString()}
	s.world = sim.NewWorld(sim.Config{
		Rows:     cfg.Rows,
		Cols:     cfg.Cols,
		Tuning:   cfg.Tuning,
		Rand:     sim.NewDeterministicRNG(cfg.Seed, "world"),
		Frames:   deps.Frames,
		Observer: observer{s: s},
	})
	if deps.Terrain != nil {
		for y := 0; y < cfg.Rows; y++ {
			for x := 0; x < cfg.Cols; x++ {
				pt := world.Point{X: x, Y: y}
				s.world.SetBackground(pt, deps.Terrain.BackgroundAt(pt))
			}
		}
	}
	if strings.TrimSpace(cfg.Layout) != "" {
		if deps.Codec == nil {
			return nil, fmt.Errorf("%w: layout given without a codec", ErrInvalidRequest)
		}
		if err := deps.Codec.Load(strings.NewReader(cfg.Layout), s.world); err != nil {
			return nil, fmt.Errorf("load layout: %w", err)
		}
	}
	if deps.Runs != nil {
		run := ports.RunRecord{
			RunID:     s.runID,
			Seed:      cfg.Seed,
			Rows:      cfg.Rows,
			Cols:      cfg.Cols,
			Layout:    cfg.Layout,
			StartedAt: cfg.Now(),
		}
		err := s.inTx(ctx, func(ctx context.Context) error {
			return deps.Runs.Create(ctx, run)
		})
		if err != nil {
			return nil, fmt.Errorf("register run: %w", err)
		}
	}
	return s, nil
}

func (s *Service) RunID() string { return s.runID }

// Read runs fn against the world under the service lock.
func (s *Service) Read(_ context.Context, fn func(w *sim.World) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.world)
}

func (s *Service) Advance(ctx context.Context, req AdvanceRequest) (AdvanceResponse, error) {
	s.mu.Lock()
	from := s.world.Now()
	target, err := targetTick(from, req)
	if err != nil {
		s.mu.Unlock()
		s.recordRejected()
		return AdvanceResponse{}, err
	}
	s.fired = 0
	changed := s.world.AdvanceTo(target)
	resp := AdvanceResponse{
		FromTick: from,
		Tick:     s.world.Now(),
		Fired:    s.fired,
		Cells:    s.cells(changed),
	}
	rec := ports.TickRecord{
		FromTick:   from,
		ToTick:     resp.Tick,
		Fired:      resp.Fired,
		Changed:    len(resp.Cells),
		Counts:     simview.Counts(s.world),
		RecordedAt: s.cfg.Now(),
	}
	s.pubMu.Lock()
	s.mu.Unlock()
	s.publish(resp.Tick, resp.Cells)
	s.pubMu.Unlock()

	if s.deps.Metrics != nil {
		s.deps.Metrics.RecordAdvance(resp.Tick-from, len(resp.Cells))
	}
	s.journal(ctx, rec)
	return resp, nil
}

func targetTick(from int64, req AdvanceRequest) (int64, error) {
	switch {
	case req.Ticks > 0 && req.To > 0:
		return 0, fmt.Errorf("%w: ticks and to are exclusive", ErrInvalidRequest)
	case req.Ticks > 0:
		if req.Ticks > math.MaxInt64-from {
			return 0, fmt.Errorf("%w: advancing %d ticks overflows the clock", ErrInvalidRequest, req.Ticks)
		}
		return from + req.Ticks, nil
	case req.To > 0:
		if req.To < from {
			return 0, fmt.Errorf("%w: tick %d is in the past (now %d)", ErrInvalidRequest, req.To, from)
		}
		return req.To, nil
	default:
		return 0, fmt.Errorf("%w: ticks or to is required", ErrInvalidRequest)
	}
}

// cells resolves each changed point once, in first-seen order, to the frame
// now drawn there.
func (s *Service) cells(changed []world.Point) []ports.Cell {
	seen := make(map[world.Point]bool, len(changed))
	out := make([]ports.Cell, 0, len(changed))
	for _, pt := range changed {
		if seen[pt] || !s.world.WithinBounds(pt) {
			continue
		}
		seen[pt] = true
		out = append(out, ports.Cell{X: pt.X, Y: pt.Y, Image: s.world.Image(pt)})
	}
	return out
}

func (s *Service) journal(ctx context.Context, rec ports.TickRecord) {
	if s.deps.Journal == nil {
		return
	}
	err := s.inTx(ctx, func(ctx context.Context) error {
		return s.deps.Journal.Append(ctx, s.runID, rec)
	})
	if err != nil {
		s.logger.Printf("journal append failed: run=%s tick=%d err=%v", s.runID, rec.ToTick, err)
	}
}

func (s *Service) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.deps.TxManager == nil {
		return fn(ctx)
	}
	return s.deps.TxManager.RunInTx(ctx, fn)
}

func (s *Service) publish(tick int64, cells []ports.Cell) {
	if s.deps.Stream == nil || len(cells) == 0 {
		return
	}
	s.deps.Stream.Publish(ports.ChangeFrame{Tick: tick, Cells: cells})
}

func (s *Service) recordRejected() {
	if s.deps.Metrics != nil {
		s.deps.Metrics.RecordRejected()
	}
}

func (s *Service) Spawn(_ context.Context, req SpawnRequest) (SpawnResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || strings.ContainsAny(name, " \t\n") {
		s.recordRejected()
		return SpawnResponse{}, fmt.Errorf("%w: name must be a single non-empty word", ErrInvalidRequest)
	}
	if !sim.ValidRate(req.Rate) || !sim.ValidRate(req.AnimationRate) {
		s.recordRejected()
		return SpawnResponse{}, fmt.Errorf("%w: rates must be between 0 and %d", ErrInvalidRequest, sim.MaxRate)
	}
	kind, ok := sim.ParseKind(strings.ToLower(strings.TrimSpace(req.Kind)))
	if !ok || !spawnable(kind) {
		s.recordRejected()
		return SpawnResponse{}, fmt.Errorf("%w: %q", ErrUnknownKind, req.Kind)
	}
	pt := world.Point{X: req.X, Y: req.Y}

	s.mu.Lock()
	if !s.world.WithinBounds(pt) || s.world.IsOccupied(pt) {
		s.mu.Unlock()
		s.recordRejected()
		return SpawnResponse{}, fmt.Errorf("%w: %d,%d", ErrCellUnavailable, pt.X, pt.Y)
	}
	if _, taken := s.world.EntityByName(name); taken {
		s.mu.Unlock()
		s.recordRejected()
		return SpawnResponse{}, fmt.Errorf("%w: name %q is taken", ports.ErrConflict, name)
	}
	e := s.build(kind, name, pt, req)
	s.world.AddEntity(e)
	view := simview.EntityOf(s.world, e)
	tick := s.world.Now()
	cell := ports.Cell{X: pt.X, Y: pt.Y, Image: s.world.Image(pt)}
	s.pubMu.Lock()
	s.mu.Unlock()
	s.publish(tick, []ports.Cell{cell})
	s.pubMu.Unlock()

	s.logger.Printf("spawned %s %q at %d,%d tick=%d", kind, name, pt.X, pt.Y, tick)
	return SpawnResponse{Entity: view}, nil
}

func spawnable(k sim.Kind) bool {
	switch k {
	case sim.KindVein, sim.KindOre, sim.KindObstacle, sim.KindBlacksmith, sim.KindMinerNotFull:
		return true
	default:
		return false
	}
}

// build makes the entity and queues its first actions; the caller places it.
func (s *Service) build(kind sim.Kind, name string, pt world.Point, req SpawnRequest) *sim.Entity {
	now := s.world.Now()
	switch kind {
	case sim.KindVein:
		return s.world.CreateVein(name, pt, now)
	case sim.KindOre:
		return s.world.CreateOre(name, pt, now)
	case sim.KindBlacksmith:
		return sim.NewBlacksmith(s.world, name, pt, orInt(req.ResourceLimit, defaultSmithLimit), req.Rate, orInt(req.ResourceDistance, 1))
	case sim.KindMinerNotFull:
		e := sim.NewMiner(s.world, name, pt,
			orInt(req.ResourceLimit, defaultMinerLimit),
			orInt64(req.Rate, defaultMinerRate),
			orInt64(req.AnimationRate, defaultMinerAnimationRate))
		s.world.ScheduleEntity(e, now)
		return e
	default:
		return sim.NewObstacle(s.world, name, pt)
	}
}

func orInt(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

func orInt64(v, def int64) int64 {
	if v > 0 {
		return v
	}
	return def
}

func (s *Service) Status(_ context.Context) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		RunID:    s.runID,
		Seed:     s.cfg.Seed,
		Tick:     s.world.Now(),
		Rows:     s.world.Rows(),
		Cols:     s.world.Cols(),
		QueueLen: s.world.QueueLen(),
		Counts:   simview.Counts(s.world),
	}
}

// Snapshot is every cell of the grid with the frame drawn there, row-major.
func (s *Service) Snapshot(_ context.Context) ports.ChangeFrame {
	s.mu.Lock()
	defer s.mu.Unlock()
	cells := make([]ports.Cell, 0, s.world.Rows()*s.world.Cols())
	for y := 0; y < s.world.Rows(); y++ {
		for x := 0; x < s.world.Cols(); x++ {
			pt := world.Point{X: x, Y: y}
			cells = append(cells, ports.Cell{X: x, Y: y, Image: s.world.Image(pt)})
		}
	}
	return ports.ChangeFrame{Tick: s.world.Now(), Cells: cells}
}

// Layout renders the current static layout in world file form.
func (s *Service) Layout(_ context.Context) (string, error) {
	if s.deps.Codec == nil {
		return "", fmt.Errorf("%w: no layout codec configured", ErrInvalidRequest)
	}
	var buf bytes.Buffer
	s.mu.Lock()
	err := s.deps.Codec.Save(&buf, s.world)
	s.mu.Unlock()
	if err != nil {
		return "", fmt.Errorf("save layout: %w", err)
	}
	return buf.String(), nil
}

// Run drives the world until ctx is done, one step per StepInterval.
func (s *Service) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.StepInterval)
	defer ticker.Stop()

	var clock world.Clock
	if s.cfg.RealTime {
		s.mu.Lock()
		elapsed := time.Duration(s.world.Now()) * s.cfg.TickDuration
		s.mu.Unlock()
		clock = world.NewClock(world.ClockConfig{
			StartAt:      s.cfg.Now().Add(-elapsed),
			TickDuration: s.cfg.TickDuration,
		})
	}
	s.logger.Printf("simulation run %s started: step=%s realtime=%v", s.runID, s.cfg.StepInterval, s.cfg.RealTime)
	for {
		select {
		case <-ctx.Done():
			s.logger.Printf("simulation run %s stopped", s.runID)
			return nil
		case <-ticker.C:
			req := AdvanceRequest{Ticks: s.cfg.TicksPerStep}
			if s.cfg.RealTime {
				req = AdvanceRequest{To: clock.TickAt(s.cfg.Now())}
			}
			if _, err := s.Advance(ctx, req); err != nil && !errors.Is(err, ErrInvalidRequest) {
				s.logger.Printf("advance failed: %v", err)
			}
		}
	}
}

// observer counts fired actions for the advance in progress and forwards
// every event to the metrics port. It runs under the service lock.
type observer struct {
	s *Service
}

func (o observer) ActionFired(kind sim.ActionKind, tick int64) {
	o.s.fired++
	if o.s.deps.Metrics != nil {
		o.s.deps.Metrics.ActionFired(kind, tick)
	}
}

func (o observer) EntityAdded(kind sim.Kind, tick int64) {
	if o.s.deps.Metrics != nil {
		o.s.deps.Metrics.EntityAdded(kind, tick)
	}
}
