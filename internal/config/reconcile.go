package config

import (
	"os"
	"strconv"
	"time"
)

const (
	pollIntervalSecondsEnv       = "RECONCILE_POLL_INTERVAL_SECONDS"
	defaultNotificationHourEnv   = "DEFAULT_NOTIFICATION_HOUR"
	defaultNotificationMinuteEnv = "DEFAULT_NOTIFICATION_MINUTE"
	sweepUnknownEnv              = "RECONCILE_SWEEP_UNKNOWN"

	defaultPollIntervalSeconds = 60
	defaultNotificationHour    = 9
	defaultNotificationMinute  = 0
)

type ReconcileConfig struct {
	PollInterval time.Duration
	// DefaultNotificationHour/Minute is the local wall-clock trigger for
	// tasks that carry a date but no time.
	DefaultNotificationHour   int
	DefaultNotificationMinute int
	// SweepUnknown also cancels scheduled notifications the baseline does
	// not own. Off by default; it assumes exclusive ownership of the
	// notification store.
	SweepUnknown bool
}

func LoadReconcileConfig() (*ReconcileConfig, error) {
	pollSeconds := defaultPollIntervalSeconds
	if v := os.Getenv(pollIntervalSecondsEnv); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			return nil, ErrInvalidPollInterval
		}
		pollSeconds = parsed
	}

	hour := defaultNotificationHour
	if v := os.Getenv(defaultNotificationHourEnv); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 || parsed > 23 {
			return nil, ErrInvalidNotificationTime
		}
		hour = parsed
	}

	minute := defaultNotificationMinute
	if v := os.Getenv(defaultNotificationMinuteEnv); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 || parsed > 59 {
			return nil, ErrInvalidNotificationTime
		}
		minute = parsed
	}

	return &ReconcileConfig{
		PollInterval:              time.Duration(pollSeconds) * time.Second,
		DefaultNotificationHour:   hour,
		DefaultNotificationMinute: minute,
		SweepUnknown:              os.Getenv(sweepUnknownEnv) == "true",
	}, nil
}
