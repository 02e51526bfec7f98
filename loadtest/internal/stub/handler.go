package stub

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler implements the notification daemon's HTTP bridge against the
// in-memory storage, for local development and load testing.
type Handler struct {
	storage *NotificationStorage
}

func NewHandler(storage *NotificationStorage) *Handler {
	return &Handler{storage: storage}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/api/v1/channels", h.HandleRegisterChannel)
	r.POST("/api/v1/notifications", h.HandleSchedule)
	r.GET("/api/v1/notifications", h.HandleList)
	r.DELETE("/api/v1/notifications/:id", h.HandleCancel)
	r.POST("/reset", h.HandleReset)
}

func (h *Handler) HandleRegisterChannel(c *gin.Context) {
	var req ChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "channel name is required"})
		return
	}

	if !h.storage.RegisterChannel(req.Name, req.Importance) {
		c.JSON(http.StatusConflict, gin.H{"name": req.Name})
		return
	}

	slog.Info("channel registered",
		slog.String("name", req.Name),
		slog.String("importance", req.Importance),
	)
	c.JSON(http.StatusCreated, gin.H{"name": req.Name})
}

func (h *Handler) HandleSchedule(c *gin.Context) {
	var req NotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry := h.storage.Add(&req)

	slog.Info("notification scheduled",
		slog.String("id", entry.ID),
		slog.String("title", entry.Title),
		slog.Bool("silent", entry.Silent),
		slog.Bool("sticky", entry.Sticky),
	)
	c.JSON(http.StatusCreated, gin.H{"id": entry.ID})
}

func (h *Handler) HandleList(c *gin.Context) {
	entries := h.storage.List()
	c.JSON(http.StatusOK, ListResponse{
		Notifications: entries,
		Count:         len(entries),
	})
}

func (h *Handler) HandleCancel(c *gin.Context) {
	id := c.Param("id")
	if !h.storage.Remove(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		return
	}

	slog.Info("notification cancelled", slog.String("id", id))
	c.Status(http.StatusNoContent)
}

func (h *Handler) HandleReset(c *gin.Context) {
	h.storage.Reset()
	slog.Info("stub storage reset")
	c.JSON(http.StatusOK, gin.H{"status": "reset complete"})
}
