package config

import (
	"os"
	"strconv"
)

const (
	lookaheadDaysEnv = "TIMETABLE_LOOKAHEAD_DAYS"

	defaultLookaheadDays = 0
)

type TimetableConfig struct {
	// LookaheadDays extends the "next lecture" search past midnight. Zero
	// keeps the status strictly same-day.
	LookaheadDays int
}

func LoadTimetableConfig() *TimetableConfig {
	lookahead := defaultLookaheadDays
	if v := os.Getenv(lookaheadDaysEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			lookahead = parsed
		}
	}

	return &TimetableConfig{
		LookaheadDays: lookahead,
	}
}
