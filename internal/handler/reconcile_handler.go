package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusdesk/campusdesk/internal/service/reconcile"
)

type ReconcileHandler struct {
	engine *reconcile.Engine
}

func NewReconcileHandler(engine *reconcile.Engine) *ReconcileHandler {
	return &ReconcileHandler{
		engine: engine,
	}
}

func (h *ReconcileHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/reconcile", h.HandleReconcile)
}

// HandleReconcile runs one synchronous pass. The at query overrides the
// evaluation instant, for inspecting behavior at a virtual time.
func (h *ReconcileHandler) HandleReconcile(c *gin.Context) {
	ctx := c.Request.Context()

	now := time.Now()
	if atStr := c.Query("at"); atStr != "" {
		parsed, err := time.Parse(time.RFC3339, atStr)
		if err != nil {
			respondError(c, http.StatusBadRequest, "validation_error", "invalid at time format, expected RFC3339")
			return
		}
		now = parsed.In(time.Local)
		slog.InfoContext(ctx, "using virtual time",
			slog.Time("virtual_now", now),
		)
	}

	result, err := h.engine.RunAt(ctx, now)
	if err != nil {
		slog.ErrorContext(ctx, "reconciliation pass failed",
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "reconcile_error", "reconciliation pass failed")
		return
	}

	c.JSON(http.StatusOK, result)
}
