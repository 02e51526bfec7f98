package config

import "errors"

var (
	ErrInvalidRedisDB          = errors.New("REDIS_DB must be a valid integer")
	ErrInvalidPollInterval     = errors.New("RECONCILE_POLL_INTERVAL_SECONDS must be a positive integer")
	ErrInvalidNotificationTime = errors.New("DEFAULT_NOTIFICATION_HOUR/MINUTE must be a valid wall-clock time")
	ErrDatabasePathMissing     = errors.New("DATABASE_PATH must not be empty")
)
