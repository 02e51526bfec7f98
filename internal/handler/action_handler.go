package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusdesk/campusdesk/internal/domain"
	"github.com/campusdesk/campusdesk/internal/service/reconcile"
)

type ActionHandler struct {
	actions domain.ActionItemRepository
	engine  *reconcile.Engine
}

func NewActionHandler(actions domain.ActionItemRepository, engine *reconcile.Engine) *ActionHandler {
	return &ActionHandler{
		actions: actions,
		engine:  engine,
	}
}

func (h *ActionHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/actions", h.HandleList)
	group.POST("/actions", h.HandleCreate)
	group.GET("/actions/:id", h.HandleGet)
	group.PUT("/actions/:id", h.HandleUpdate)
	group.POST("/actions/:id/complete", h.HandleComplete)
	group.POST("/actions/:id/reopen", h.HandleReopen)
	group.DELETE("/actions/:id", h.HandleDelete)
}

type actionRequest struct {
	Text  string `json:"text"`
	Date  string `json:"date"`
	Time  string `json:"time"`
	Notes string `json:"notes"`
}

func (r *actionRequest) validate() error {
	if r.Text == "" {
		return domain.ErrInvalidActionItem
	}
	if r.Date != "" {
		if _, err := domain.ParseCalendarDate(r.Date); err != nil {
			return err
		}
	}
	if r.Time != "" {
		if _, err := domain.TimeToMinutes(r.Time); err != nil {
			return err
		}
	}
	return nil
}

func (h *ActionHandler) HandleList(c *gin.Context) {
	items, err := h.actions.List(c.Request.Context())
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "failed to list action items",
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "storage_error", "failed to list action items")
		return
	}
	c.JSON(http.StatusOK, gin.H{"actions": items})
}

func (h *ActionHandler) HandleCreate(c *gin.Context) {
	ctx := c.Request.Context()

	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	if err := req.validate(); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	item := &domain.ActionItem{
		Text:  req.Text,
		Date:  req.Date,
		Time:  req.Time,
		Notes: req.Notes,
	}
	if err := h.actions.Create(ctx, item); err != nil {
		slog.ErrorContext(ctx, "failed to create action item",
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "storage_error", "failed to create action item")
		return
	}

	h.requestReconcile(ctx)
	c.JSON(http.StatusCreated, item)
}

func (h *ActionHandler) HandleGet(c *gin.Context) {
	item, err := h.actions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondStorageError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ActionHandler) HandleUpdate(c *gin.Context) {
	ctx := c.Request.Context()

	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	if err := req.validate(); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	item := &domain.ActionItem{
		ID:    c.Param("id"),
		Text:  req.Text,
		Date:  req.Date,
		Time:  req.Time,
		Notes: req.Notes,
	}
	if err := h.actions.Update(ctx, item); err != nil {
		h.respondStorageError(c, err)
		return
	}

	updated, err := h.actions.Get(ctx, item.ID)
	if err != nil {
		h.respondStorageError(c, err)
		return
	}

	h.requestReconcile(ctx)
	c.JSON(http.StatusOK, updated)
}

func (h *ActionHandler) HandleComplete(c *gin.Context) {
	ctx := c.Request.Context()

	now := time.Now().UTC()
	if err := h.actions.SetCompleted(ctx, c.Param("id"), &now); err != nil {
		h.respondStorageError(c, err)
		return
	}

	h.requestReconcile(ctx)
	c.JSON(http.StatusOK, gin.H{"completed_at": now})
}

func (h *ActionHandler) HandleReopen(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.actions.SetCompleted(ctx, c.Param("id"), nil); err != nil {
		h.respondStorageError(c, err)
		return
	}

	h.requestReconcile(ctx)
	c.Status(http.StatusNoContent)
}

func (h *ActionHandler) HandleDelete(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.actions.Delete(ctx, c.Param("id")); err != nil {
		h.respondStorageError(c, err)
		return
	}

	h.requestReconcile(ctx)
	c.Status(http.StatusNoContent)
}

// requestReconcile asks for an asynchronous pass so the mutation's response
// never waits on the notification daemon.
func (h *ActionHandler) requestReconcile(ctx context.Context) {
	if h.engine == nil {
		return
	}
	go h.engine.Request(context.WithoutCancel(ctx))
}

func (h *ActionHandler) respondStorageError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrActionItemNotFound) {
		respondError(c, http.StatusNotFound, "not_found", "action item not found")
		return
	}
	slog.ErrorContext(c.Request.Context(), "action item storage failure",
		slog.String("error", err.Error()),
	)
	respondError(c, http.StatusInternalServerError, "storage_error", "action item storage failure")
}
