package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/campusdesk/campusdesk/loadtest/internal/stub"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "9090"
	}

	storage := stub.NewNotificationStorage()
	handler := stub.NewHandler(storage)

	r := gin.Default()
	handler.RegisterRoutes(r)

	slog.Info("starting notification daemon stub", slog.String("port", port))
	if err := r.Run(":" + port); err != nil {
		slog.Error("stub server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
