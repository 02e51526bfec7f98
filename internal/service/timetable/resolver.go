package timetable

import (
	"fmt"
	"sort"
	"time"

	"github.com/campusdesk/campusdesk/internal/domain"
)

// Resolution is the lecture in progress and the next one, either of which
// may be absent.
type Resolution struct {
	Current *domain.LectureSlot
	Next    *domain.LectureSlot
}

// Resolver answers "what lecture is on right now, and what comes next"
// against the fixed weekly schedule. Pure: no clock reads, no I/O.
type Resolver struct {
	lookaheadDays int
}

// NewResolver creates a resolver. lookaheadDays extends the next-lecture
// search into subsequent days; 0 restricts it to the reference day.
func NewResolver(lookaheadDays int) *Resolver {
	if lookaheadDays < 0 {
		lookaheadDays = 0
	}
	return &Resolver{lookaheadDays: lookaheadDays}
}

// Resolve computes the current and next lecture for the instant now.
// Slots whose times fail to parse are ignored; stores reject such rows at
// decode time, so this only guards against data written out-of-band.
//
// The schedule is assumed non-overlapping within a day. Overlapping input
// yields the first match in stored order.
func (r *Resolver) Resolve(slots []domain.LectureSlot, now time.Time) Resolution {
	today := slotsForDay(slots, now.Weekday())
	minutesNow := domain.MinutesOfDay(now)

	var current *domain.LectureSlot
	for i := range today {
		start, end, err := slotMinutes(&today[i])
		if err != nil {
			continue
		}
		if minutesNow >= start && minutesNow < end {
			current = &today[i]
			break
		}
	}

	threshold := minutesNow
	inclusive := false
	if current != nil {
		// The next lecture may start the moment the current one ends.
		if end, err := domain.TimeToMinutes(current.EndTime); err == nil {
			threshold = end
			inclusive = true
		}
	}

	next := earliestAfter(today, threshold, inclusive)
	if next == nil && r.lookaheadDays > 0 {
		next = r.lookahead(slots, now)
	}

	return Resolution{Current: current, Next: next}
}

// lookahead scans up to lookaheadDays subsequent days for the earliest slot.
func (r *Resolver) lookahead(slots []domain.LectureSlot, now time.Time) *domain.LectureSlot {
	for offset := 1; offset <= r.lookaheadDays; offset++ {
		day := now.AddDate(0, 0, offset).Weekday()
		candidates := slotsForDay(slots, day)
		if next := earliestAfter(candidates, -1, false); next != nil {
			return next
		}
	}
	return nil
}

// TodayBoundaries returns the start and end instants of today's slots that
// lie strictly in the future, de-duplicated and sorted ascending. These are
// the moments the timetable status must be refreshed.
func (r *Resolver) TodayBoundaries(slots []domain.LectureSlot, now time.Time) []time.Time {
	seen := make(map[int64]struct{})
	var boundaries []time.Time

	for _, slot := range slotsForDay(slots, now.Weekday()) {
		for _, hhmm := range []string{slot.StartTime, slot.EndTime} {
			at, err := domain.SameDayInstant(hhmm, now)
			if err != nil {
				continue
			}
			if !at.After(now) {
				continue
			}
			if _, ok := seen[at.Unix()]; ok {
				continue
			}
			seen[at.Unix()] = struct{}{}
			boundaries = append(boundaries, at)
		}
	}

	sort.Slice(boundaries, func(i, j int) bool { return boundaries[i].Before(boundaries[j]) })
	return boundaries
}

// DisplayText renders the human-readable status line for a resolution.
func DisplayText(res Resolution) string {
	switch {
	case res.Current != nil:
		return fmt.Sprintf("Now: %s until %s", res.Current.SubjectName, res.Current.EndTime)
	case res.Next != nil:
		return fmt.Sprintf("Next: %s at %s", res.Next.SubjectName, res.Next.StartTime)
	default:
		return "No upcoming lectures today"
	}
}

func slotsForDay(slots []domain.LectureSlot, day time.Weekday) []domain.LectureSlot {
	filtered := make([]domain.LectureSlot, 0, len(slots))
	for _, slot := range slots {
		if slot.DayOfWeek == day {
			filtered = append(filtered, slot)
		}
	}
	return filtered
}

// earliestAfter returns the slot with the smallest start minute above the
// threshold (at or above, when inclusive). nil threshold semantics: pass -1
// to accept any slot.
func earliestAfter(slots []domain.LectureSlot, threshold int, inclusive bool) *domain.LectureSlot {
	var best *domain.LectureSlot
	bestStart := 0

	for i := range slots {
		start, err := domain.TimeToMinutes(slots[i].StartTime)
		if err != nil {
			continue
		}
		if inclusive {
			if start < threshold {
				continue
			}
		} else if start <= threshold {
			continue
		}
		if best == nil || start < bestStart {
			best = &slots[i]
			bestStart = start
		}
	}
	return best
}

func slotMinutes(slot *domain.LectureSlot) (start, end int, err error) {
	start, err = domain.TimeToMinutes(slot.StartTime)
	if err != nil {
		return 0, 0, err
	}
	end, err = domain.TimeToMinutes(slot.EndTime)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}
