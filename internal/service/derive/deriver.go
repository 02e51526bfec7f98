package derive

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/campusdesk/campusdesk/internal/domain"
	"github.com/campusdesk/campusdesk/internal/service/deadline"
	"github.com/campusdesk/campusdesk/internal/service/timetable"
)

const (
	taskDueNowTitle   = "Task due now"
	taskDueTodayTitle = "Task due today"
	timetableTitle    = "Timetable"
)

// Deriver computes the full set of notification intents that should exist
// at a given instant: one per qualifying incomplete task, plus the singleton
// persistent timetable status with its refresh points.
type Deriver struct {
	classifier    *deadline.Classifier
	resolver      *timetable.Resolver
	defaultHour   int
	defaultMinute int
}

// NewDeriver creates a deriver. defaultHour/defaultMinute is the local
// wall-clock trigger applied to date-only deadlines.
func NewDeriver(classifier *deadline.Classifier, resolver *timetable.Resolver, defaultHour, defaultMinute int) *Deriver {
	return &Deriver{
		classifier:    classifier,
		resolver:      resolver,
		defaultHour:   defaultHour,
		defaultMinute: defaultMinute,
	}
}

// Derive returns the desired intents for now, and the number of items
// skipped because of malformed stored date/time strings. A malformed item
// is a per-entity data fault: it is logged and excluded from this pass,
// never coerced.
func (d *Deriver) Derive(items []domain.ActionItem, slots []domain.LectureSlot, now time.Time) ([]domain.NotificationIntent, int) {
	intents := make([]domain.NotificationIntent, 0, len(items)+1)
	skipped := 0

	for _, item := range items {
		if item.Completed() {
			continue
		}

		intent, err := d.actionIntent(item, now)
		if err != nil {
			slog.Warn("skipping action item with malformed deadline",
				slog.String("action_id", item.ID),
				slog.String("error", err.Error()),
			)
			skipped++
			continue
		}
		if intent == nil {
			// No deadline, or the deadline already passed.
			continue
		}
		intents = append(intents, *intent)
	}

	intents = append(intents, d.timetableIntent(slots, now))
	return intents, skipped
}

// actionIntent computes the intent for a single incomplete task, or nil when
// the task produces none.
func (d *Deriver) actionIntent(item domain.ActionItem, now time.Time) (*domain.NotificationIntent, error) {
	class := d.classifier.Classify(item)

	var triggerAt time.Time
	var title string

	switch class {
	case domain.DeadlineNone:
		return nil, nil
	case domain.DeadlineDateOnly:
		day, err := domain.ParseCalendarDate(item.Date)
		if err != nil {
			return nil, err
		}
		triggerAt = time.Date(day.Year(), day.Month(), day.Day(), d.defaultHour, d.defaultMinute, 0, 0, time.Local)
		title = taskDueTodayTitle
	case domain.DeadlineTimeCritical:
		at, err := domain.ComposeLocalInstant(item.Date, item.Time)
		if err != nil {
			return nil, err
		}
		triggerAt = at
		title = taskDueNowTitle
	}

	// Past or exactly-now deadlines never produce an intent.
	if !triggerAt.After(now) {
		return nil, nil
	}

	key := domain.ActionEntityKey(item.ID)
	return &domain.NotificationIntent{
		EntityKey: key,
		// Only the trigger instant participates: editing text or notes
		// must not force a reschedule.
		Fingerprint: key + ":" + triggerAt.UTC().Format(time.RFC3339),
		TriggerAt:   &triggerAt,
		Title:       title,
		Body:        item.Text,
	}, nil
}

// timetableIntent builds the singleton persistent status intent. Its
// fingerprint covers the display text and the remaining boundary set for
// today, so crossing any lecture boundary naturally produces a fresh
// fingerprint and forces a re-presentation.
func (d *Deriver) timetableIntent(slots []domain.LectureSlot, now time.Time) domain.NotificationIntent {
	res := d.resolver.Resolve(slots, now)
	display := timetable.DisplayText(res)
	boundaries := d.resolver.TodayBoundaries(slots, now)

	stamps := make([]string, len(boundaries))
	for i, at := range boundaries {
		stamps[i] = at.UTC().Format(time.RFC3339)
	}

	return domain.NotificationIntent{
		EntityKey:   domain.TimetableEntityKey,
		Fingerprint: fmt.Sprintf("timetable:%s:%s", display, strings.Join(stamps, ",")),
		TriggerAt:   nil,
		Title:       timetableTitle,
		Body:        display,
		Silent:      true,
		Sticky:      true,
		RefreshAt:   boundaries,
	}
}
