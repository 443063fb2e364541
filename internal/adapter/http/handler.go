package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strconv"
	"strings"

	"minerworld/internal/app/observe"
	"minerworld/internal/app/ports"
	"minerworld/internal/app/replay"
	"minerworld/internal/app/simrun"
	"minerworld/internal/app/status"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// Simulation is the slice of simrun.Service the HTTP surface drives.
type Simulation interface {
	RunID() string
	Advance(ctx context.Context, req simrun.AdvanceRequest) (simrun.AdvanceResponse, error)
	Spawn(ctx context.Context, req simrun.SpawnRequest) (simrun.SpawnResponse, error)
	Status(ctx context.Context) simrun.Status
	Layout(ctx context.Context) (string, error)
}

type Handler struct {
	Sim        Simulation
	ObserveUC  observe.UseCase
	EntitiesUC status.UseCase
	EntityUC   status.EntityUseCase
	ReplayUC   replay.UseCase
	Assets     ports.AssetProvider
	KPI        kpiSnapshotProvider
	// CORSOrigin is the allowed browser origin; empty allows any.
	CORSOrigin string
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware(h.CORSOrigin))

	sim := s.Group("/api/sim")
	sim.GET("/status", h.status)
	sim.POST("/advance", h.advance)
	sim.POST("/spawn", h.spawn)
	sim.POST("/observe", h.observe)
	sim.GET("/entities", h.entities)
	sim.GET("/entities/:name", h.entity)
	sim.GET("/replay", h.replay)
	sim.GET("/layout", h.layout)
	sim.GET("/schema", h.schema)

	s.GET("/assets/*filepath", h.asset)
	s.GET("/ops/kpi", h.kpi)
}

func (h Handler) status(c context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, h.Sim.Status(c))
}

func (h Handler) advance(c context.Context, ctx *app.RequestContext) {
	var body simrun.AdvanceRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.Sim.Advance(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) spawn(c context.Context, ctx *app.RequestContext) {
	var body simrun.SpawnRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.Sim.Spawn(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) observe(c context.Context, ctx *app.RequestContext) {
	var body observe.Request
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.ObserveUC.Execute(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) entities(c context.Context, ctx *app.RequestContext) {
	resp, err := h.EntitiesUC.Execute(c, status.Request{Kind: string(ctx.Query("kind"))})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) entity(c context.Context, ctx *app.RequestContext) {
	resp, err := h.EntityUC.Execute(c, status.EntityRequest{Name: ctx.Param("name")})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) replay(c context.Context, ctx *app.RequestContext) {
	runID := strings.TrimSpace(string(ctx.Query("run_id")))
	if runID == "" {
		runID = h.Sim.RunID()
	}
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	fromTick, _ := strconv.ParseInt(string(ctx.Query("from_tick")), 10, 64)
	toTick, _ := strconv.ParseInt(string(ctx.Query("to_tick")), 10, 64)
	resp, err := h.ReplayUC.Execute(c, replay.Request{
		RunID:    runID,
		Limit:    limit,
		FromTick: fromTick,
		ToTick:   toTick,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) layout(c context.Context, ctx *app.RequestContext) {
	text, err := h.Sim.Layout(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}

func (h Handler) schema(_ context.Context, ctx *app.RequestContext) {
	b, err := json.Marshal(ResponseSchemas())
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Data(http.StatusOK, "application/schema+json", b)
}

func (h Handler) asset(c context.Context, ctx *app.RequestContext) {
	if h.Assets == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "asset provider not configured")
		return
	}
	p := strings.TrimPrefix(ctx.Param("filepath"), "/")
	if p == "" {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_filepath", "invalid filepath")
		return
	}

	b, err := h.Assets.File(c, p)
	if err != nil {
		writeError(ctx, err)
		return
	}
	if keyed, ok := h.Assets.(colorKeyProvider); ok {
		if c, found := keyed.ColorKey(p); found {
			ctx.Response.Header.Set(colorKeyHeader, fmt.Sprintf("%d,%d,%d,%d", c.R, c.G, c.B, c.A))
		}
	}
	contentType := mime.TypeByExtension(path.Ext(p))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	ctx.Data(http.StatusOK, contentType, b)
}

// colorKeyHeader carries a frame's transparent colour as "r,g,b,a".
const colorKeyHeader = "X-Color-Key"

type colorKeyProvider interface {
	ColorKey(handle string) (color.RGBA, bool)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, simrun.ErrUnknownKind):
		writeErrorBody(ctx, consts.StatusBadRequest, "unknown_kind", err.Error())
	case errors.Is(err, simrun.ErrCellUnavailable):
		writeErrorBody(ctx, consts.StatusConflict, "cell_unavailable", err.Error())
	case errors.Is(err, ports.ErrInvalidPath):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_filepath", err.Error())
	case errors.Is(err, simrun.ErrInvalidRequest),
		errors.Is(err, observe.ErrInvalidRequest),
		errors.Is(err, replay.ErrInvalidRequest),
		errors.Is(err, status.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
