package config

import (
	"log/slog"
	"os"
	"strings"
)

type Config struct {
	Port         string
	LogLevel     slog.Level
	DatabasePath string
	Notifier     *NotifierConfig
	Redis        *RedisConfig
	Reconcile    *ReconcileConfig
	Timetable    *TimetableConfig
}

func Load() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	databasePath := os.Getenv("DATABASE_PATH")
	if databasePath == "" {
		databasePath = "campusdesk.db"
	}

	redisConfig, err := LoadRedisConfig()
	if err != nil {
		return nil, err
	}

	reconcileConfig, err := LoadReconcileConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:         port,
		LogLevel:     parseLogLevel(os.Getenv("LOG_LEVEL")),
		DatabasePath: databasePath,
		Notifier:     LoadNotifierConfig(),
		Redis:        redisConfig,
		Reconcile:    reconcileConfig,
		Timetable:    LoadTimetableConfig(),
	}, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
