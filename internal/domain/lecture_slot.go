package domain

import (
	"time"
)

// LectureType classifies a timetable slot for display only.
type LectureType string

const (
	LectureTheory   LectureType = "theory"
	LectureLab      LectureType = "lab"
	LectureTutorial LectureType = "tutorial"
	LectureOther    LectureType = "other"
)

// LectureSlot is one entry of the fixed weekly schedule. The schedule is
// week-periodic: DayOfWeek plus wall-clock times, no calendar dates.
// Descriptive fields (code, faculty, location, type, batch) do not
// participate in time resolution.
type LectureSlot struct {
	ID          string       `json:"id"`
	DayOfWeek   time.Weekday `json:"day_of_week"`
	StartTime   string       `json:"start_time"` // HH:MM
	EndTime     string       `json:"end_time"`   // HH:MM, strictly after StartTime
	SubjectCode string       `json:"subject_code,omitempty"`
	SubjectName string       `json:"subject_name"`
	Faculty     string       `json:"faculty,omitempty"`
	Location    string       `json:"location,omitempty"`
	Type        LectureType  `json:"type,omitempty"`
	Batch       string       `json:"batch,omitempty"`
}

// Validate rejects slots with malformed or inverted times, an out-of-range
// weekday, or an empty subject.
func (s *LectureSlot) Validate() error {
	if s.SubjectName == "" {
		return ErrInvalidLectureSlot
	}
	if s.DayOfWeek < time.Sunday || s.DayOfWeek > time.Saturday {
		return ErrInvalidLectureSlot
	}

	start, err := TimeToMinutes(s.StartTime)
	if err != nil {
		return err
	}
	end, err := TimeToMinutes(s.EndTime)
	if err != nil {
		return err
	}
	if end <= start {
		return ErrInvalidLectureSlot
	}
	return nil
}
