package domain

import (
	"fmt"
	"time"
)

const (
	// ClockTimeLayout is the stored time-of-day format (24-hour).
	ClockTimeLayout = "15:04"
	// CalendarDateLayout is the stored calendar date format.
	CalendarDateLayout = "2006-01-02"
)

// TimeToMinutes parses an HH:MM string into a minute-of-day offset.
// Input must be exactly two 2-digit fields, hour 00-23, minute 00-59.
// Anything else is a data-integrity fault, never coerced to a default.
func TimeToMinutes(hhmm string) (int, error) {
	if len(hhmm) != 5 || hhmm[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, hhmm)
	}

	hour, ok := parseTwoDigits(hhmm[0], hhmm[1])
	if !ok || hour > 23 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, hhmm)
	}

	minute, ok := parseTwoDigits(hhmm[3], hhmm[4])
	if !ok || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, hhmm)
	}

	return hour*60 + minute, nil
}

// MinutesOfDay returns the minute-of-day offset for a wall-clock instant.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// ParseCalendarDate parses a strict YYYY-MM-DD string into local midnight
// of that day. Non-canonical input (missing zero padding, out-of-range
// fields) is rejected.
func ParseCalendarDate(date string) (time.Time, error) {
	parsed, err := time.ParseInLocation(CalendarDateLayout, date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, date)
	}
	if parsed.Format(CalendarDateLayout) != date {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, date)
	}
	return parsed, nil
}

// ComposeLocalInstant combines a YYYY-MM-DD date and an HH:MM time-of-day
// into a single absolute instant in the device's local timezone. No zone is
// stored with either part; the instant uses whatever offset is in effect at
// construction time. DST-transition wall times are not specially handled.
func ComposeLocalInstant(date, hhmm string) (time.Time, error) {
	day, err := ParseCalendarDate(date)
	if err != nil {
		return time.Time{}, err
	}

	minutes, err := TimeToMinutes(hhmm)
	if err != nil {
		return time.Time{}, err
	}

	return time.Date(day.Year(), day.Month(), day.Day(), minutes/60, minutes%60, 0, 0, time.Local), nil
}

// SameDayInstant places an HH:MM time-of-day on the calendar day of ref,
// in local time.
func SameDayInstant(hhmm string, ref time.Time) (time.Time, error) {
	minutes, err := TimeToMinutes(hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(ref.Year(), ref.Month(), ref.Day(), minutes/60, minutes%60, 0, 0, ref.Location()), nil
}

func parseTwoDigits(hi, lo byte) (int, bool) {
	if hi < '0' || hi > '9' || lo < '0' || lo > '9' {
		return 0, false
	}
	return int(hi-'0')*10 + int(lo-'0'), true
}
