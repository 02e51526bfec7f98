package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusdesk/campusdesk/internal/domain"
	"github.com/campusdesk/campusdesk/internal/service/reconcile"
	"github.com/campusdesk/campusdesk/internal/service/timetable"
)

type TimetableHandler struct {
	timetable domain.TimetableRepository
	resolver  *timetable.Resolver
	engine    *reconcile.Engine
}

func NewTimetableHandler(repo domain.TimetableRepository, resolver *timetable.Resolver, engine *reconcile.Engine) *TimetableHandler {
	return &TimetableHandler{
		timetable: repo,
		resolver:  resolver,
		engine:    engine,
	}
}

func (h *TimetableHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/timetable", h.HandleGet)
	group.PUT("/timetable", h.HandleReplace)
	group.GET("/timetable/status", h.HandleStatus)
}

type replaceTimetableRequest struct {
	Slots []domain.LectureSlot `json:"slots"`
}

func (h *TimetableHandler) HandleGet(c *gin.Context) {
	ctx := c.Request.Context()

	slots, err := h.timetable.List(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list lecture slots",
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "storage_error", "failed to list lecture slots")
		return
	}

	lockedAt, err := h.timetable.LockedAt(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to read timetable lock",
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "storage_error", "failed to read timetable lock")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"slots":     slots,
		"locked_at": lockedAt,
	})
}

func (h *TimetableHandler) HandleReplace(c *gin.Context) {
	ctx := c.Request.Context()

	var req replaceTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	for i := range req.Slots {
		if err := req.Slots[i].Validate(); err != nil {
			respondError(c, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
	}

	lockedAt := time.Now().UTC()
	if err := h.timetable.Replace(ctx, req.Slots, lockedAt); err != nil {
		slog.ErrorContext(ctx, "failed to replace timetable",
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "storage_error", "failed to replace timetable")
		return
	}

	slog.InfoContext(ctx, "timetable replaced",
		slog.Int("slot_count", len(req.Slots)),
		slog.Time("locked_at", lockedAt),
	)

	if h.engine != nil {
		go h.engine.Request(context.WithoutCancel(ctx))
	}

	c.JSON(http.StatusOK, gin.H{
		"slot_count": len(req.Slots),
		"locked_at":  lockedAt,
	})
}

func (h *TimetableHandler) HandleStatus(c *gin.Context) {
	ctx := c.Request.Context()

	now := time.Now()
	if atStr := c.Query("at"); atStr != "" {
		parsed, err := time.Parse(time.RFC3339, atStr)
		if err != nil {
			respondError(c, http.StatusBadRequest, "validation_error", "invalid at time format, expected RFC3339")
			return
		}
		now = parsed.In(time.Local)
	}

	slots, err := h.timetable.List(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list lecture slots",
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "storage_error", "failed to list lecture slots")
		return
	}

	res := h.resolver.Resolve(slots, now)
	c.JSON(http.StatusOK, gin.H{
		"current":      res.Current,
		"next":         res.Next,
		"display_text": timetable.DisplayText(res),
	})
}
