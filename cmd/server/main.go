package main

import (
	"context"
	"errors"
	"log"
	nethttp "net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	staticassets "minerworld/internal/adapter/assets/static"
	httpadapter "minerworld/internal/adapter/http"
	metricsinmem "minerworld/internal/adapter/metrics/inmemory"
	gormrepo "minerworld/internal/adapter/repo/gorm"
	"minerworld/internal/adapter/repo/memory"
	"minerworld/internal/adapter/stream/ws"
	"minerworld/internal/adapter/world/terrain"
	"minerworld/internal/adapter/worldfile"
	"minerworld/internal/app/observe"
	"minerworld/internal/app/ports"
	"minerworld/internal/app/replay"
	"minerworld/internal/app/simrun"
	"minerworld/internal/app/status"
	"minerworld/internal/domain/sim"

	"github.com/cloudwego/hertz/pkg/app/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	journal, runs, txManager := mustBuildRepos(ctx)
	kpiRecorder := metricsinmem.NewRecorder()
	assets := mustBuildAssets()

	corsOrigin := os.Getenv("SIM_CORS_ORIGIN")
	var svc *simrun.Service
	hub := ws.NewHub(ws.HubConfig{
		Snapshot:      func(ctx context.Context) ports.ChangeFrame { return svc.Snapshot(ctx) },
		AllowedOrigin: corsOrigin,
	})

	deps := simrun.Deps{
		Codec:     worldfile.Codec{},
		Journal:   journal,
		Runs:      runs,
		TxManager: txManager,
		Metrics:   kpiRecorder,
		Stream:    hub,
	}
	if assets != nil {
		deps.Frames = assets
	}
	if intEnv("SIM_TERRAIN", 0) == 1 {
		deps.Terrain = terrain.NewProvider(terrain.Config{
			Seed:   int64(intEnv("SIM_TERRAIN_SEED", 1)),
			Frames: deps.Frames,
		})
	}

	svc, err := simrun.New(ctx, mustBuildConfig(), deps)
	if err != nil {
		log.Fatalf("build simulation: %v", err)
	}

	h := httpadapter.Handler{
		Sim:        svc,
		ObserveUC:  observe.UseCase{World: svc},
		EntitiesUC: status.UseCase{World: svc},
		EntityUC:   status.EntityUseCase{World: svc},
		ReplayUC:   replay.UseCase{Journal: journal, Runs: runs},
		KPI:        kpiRecorder,
		CORSOrigin: corsOrigin,
	}
	if assets != nil {
		h.Assets = assets
	}

	go func() {
		if err := svc.Run(ctx); err != nil {
			log.Printf("simulation stopped: %v", err)
		}
	}()

	wsAddr := stringEnv("SIM_WS_ADDR", ":8081")
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/ws", hub.Handle)
	wsServer := &nethttp.Server{Addr: wsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := wsServer.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			log.Printf("websocket listener: %v", err)
		}
	}()

	httpAddr := stringEnv("SIM_HTTP_ADDR", ":8080")
	s := server.Default(server.WithHostPorts(httpAddr))
	h.RegisterRoutes(s)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = wsServer.Shutdown(shutdownCtx)
	}()

	log.Printf("minerworld run %s: http on %s, websocket on %s/ws", svc.RunID(), httpAddr, wsAddr)
	s.Spin()
}

func mustBuildRepos(ctx context.Context) (ports.TickJournal, ports.RunRepository, ports.TxManager) {
	dsn := strings.TrimSpace(os.Getenv("SIM_DB_DSN"))
	if dsn == "" {
		store := memory.NewStore()
		log.Println("SIM_DB_DSN not set, journaling in memory")
		return memory.NewTickJournalRepo(store), memory.NewRunRepo(store), memory.NewTxManager(store)
	}
	db, err := gormrepo.OpenPostgres(dsn, gormrepo.PoolConfig{
		MaxOpenConns:    intEnv("SIM_DB_MAX_OPEN_CONNS", 0),
		MaxIdleConns:    intEnv("SIM_DB_MAX_IDLE_CONNS", 0),
		ConnMaxLifetime: time.Duration(intEnv("SIM_DB_CONN_MAX_LIFETIME_SECONDS", 0)) * time.Second,
	})
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	dir := stringEnv("SIM_MIGRATIONS_DIR", "db/migrations")
	applied, err := gormrepo.ApplyMigrations(ctx, db, os.DirFS(dir))
	if err != nil {
		log.Fatalf("apply migrations from %s: %v", dir, err)
	}
	if len(applied) > 0 {
		log.Printf("applied migrations: %s", strings.Join(applied, ", "))
	}
	return gormrepo.NewTickJournalRepo(db), gormrepo.NewRunRepo(db), gormrepo.NewTxManager(db)
}

func mustBuildAssets() *staticassets.Provider {
	dir := strings.TrimSpace(os.Getenv("SIM_ASSETS_DIR"))
	if dir == "" {
		return nil
	}
	p, err := staticassets.NewProvider(dir)
	if err != nil {
		log.Fatalf("load assets from %s: %v", dir, err)
	}
	return p
}

func mustBuildConfig() simrun.Config {
	cfg, err := buildConfigFromEnv()
	if err != nil {
		log.Fatalf("load configuration: %v", err)
	}
	return cfg
}

func buildConfigFromEnv() (simrun.Config, error) {
	cfg := simrun.DefaultConfig()
	cfg.Rows = intEnv("SIM_ROWS", cfg.Rows)
	cfg.Cols = intEnv("SIM_COLS", cfg.Cols)
	cfg.Seed = stringEnv("SIM_SEED", cfg.Seed)
	cfg.TicksPerStep = int64(intEnv("SIM_TICKS_PER_STEP", int(cfg.TicksPerStep)))
	cfg.StepInterval = time.Duration(intEnv("SIM_STEP_MS", int(cfg.StepInterval/time.Millisecond))) * time.Millisecond
	cfg.TickDuration = time.Duration(intEnv("SIM_TICK_MS", int(cfg.TickDuration/time.Millisecond))) * time.Millisecond
	cfg.RealTime = intEnv("SIM_REALTIME", 0) == 1
	cfg.Tuning = tuningFromEnv(cfg.Tuning)

	if path := strings.TrimSpace(os.Getenv("SIM_WORLD_FILE")); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return simrun.Config{}, err
		}
		cfg.Layout = string(b)
	}
	return cfg, nil
}

func tuningFromEnv(t sim.Tuning) sim.Tuning {
	t.BlobRateScale = int64Env("SIM_BLOB_RATE_SCALE", t.BlobRateScale)
	t.BlobAnimationRateScale = int64Env("SIM_BLOB_ANIMATION_RATE_SCALE", t.BlobAnimationRateScale)
	t.BlobAnimationMin = int64Env("SIM_BLOB_ANIMATION_MIN", t.BlobAnimationMin)
	t.BlobAnimationMax = int64Env("SIM_BLOB_ANIMATION_MAX", t.BlobAnimationMax)
	t.OreCorruptMin = int64Env("SIM_ORE_CORRUPT_MIN", t.OreCorruptMin)
	t.OreCorruptMax = int64Env("SIM_ORE_CORRUPT_MAX", t.OreCorruptMax)
	t.QuakeSteps = intEnv("SIM_QUAKE_STEPS", t.QuakeSteps)
	t.QuakeDuration = int64Env("SIM_QUAKE_DURATION", t.QuakeDuration)
	t.QuakeAnimationRate = int64Env("SIM_QUAKE_ANIMATION_RATE", t.QuakeAnimationRate)
	t.VeinSpawnDelay = int64Env("SIM_VEIN_SPAWN_DELAY", t.VeinSpawnDelay)
	t.VeinRateMin = int64Env("SIM_VEIN_RATE_MIN", t.VeinRateMin)
	t.VeinRateMax = int64Env("SIM_VEIN_RATE_MAX", t.VeinRateMax)
	return t
}

func stringEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func int64Env(key string, fallback int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
