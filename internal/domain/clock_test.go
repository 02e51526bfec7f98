package domain

import (
	"errors"
	"testing"
	"time"
)

func TestTimeToMinutes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "midnight", input: "00:00", want: 0},
		{name: "morning", input: "09:30", want: 570},
		{name: "last minute of day", input: "23:59", want: 1439},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "10:60", wantErr: true},
		{name: "missing zero padding", input: "9:30", wantErr: true},
		{name: "wrong separator", input: "09.30", wantErr: true},
		{name: "trailing seconds", input: "09:30:00", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "non-numeric", input: "ab:cd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TimeToMinutes(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("TimeToMinutes(%q): expected error, got %d", tt.input, got)
				}
				if !errors.Is(err, ErrMalformedTime) {
					t.Errorf("TimeToMinutes(%q): error %v is not ErrMalformedTime", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("TimeToMinutes(%q): unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("TimeToMinutes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseCalendarDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid", input: "2026-02-10"},
		{name: "leap day", input: "2028-02-29"},
		{name: "non-leap february 29", input: "2026-02-29", wantErr: true},
		{name: "month out of range", input: "2026-13-01", wantErr: true},
		{name: "day out of range", input: "2026-01-32", wantErr: true},
		{name: "missing zero padding", input: "2026-2-10", wantErr: true},
		{name: "slashes", input: "2026/02/10", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCalendarDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseCalendarDate(%q): expected error, got %v", tt.input, got)
				}
				if !errors.Is(err, ErrMalformedDate) {
					t.Errorf("ParseCalendarDate(%q): error %v is not ErrMalformedDate", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCalendarDate(%q): unexpected error: %v", tt.input, err)
			}
			if got.Hour() != 0 || got.Minute() != 0 {
				t.Errorf("ParseCalendarDate(%q): expected local midnight, got %v", tt.input, got)
			}
		})
	}
}

func TestComposeLocalInstant(t *testing.T) {
	got, err := ComposeLocalInstant("2026-02-10", "09:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2026, time.February, 10, 9, 30, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("ComposeLocalInstant = %v, want %v", got, want)
	}
	if got.Location() != time.Local {
		t.Errorf("composed instant not in local zone: %v", got.Location())
	}
}

func TestComposeLocalInstantMalformed(t *testing.T) {
	if _, err := ComposeLocalInstant("2026-02-10", "9:30"); !errors.Is(err, ErrMalformedTime) {
		t.Errorf("expected ErrMalformedTime, got %v", err)
	}
	if _, err := ComposeLocalInstant("2026-2-10", "09:30"); !errors.Is(err, ErrMalformedDate) {
		t.Errorf("expected ErrMalformedDate, got %v", err)
	}
}

func TestSameDayInstant(t *testing.T) {
	ref := time.Date(2026, time.March, 2, 14, 45, 12, 0, time.Local)

	got, err := SameDayInstant("08:15", ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2026, time.March, 2, 8, 15, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("SameDayInstant = %v, want %v", got, want)
	}
}
