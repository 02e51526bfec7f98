package reconcile

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/campusdesk/campusdesk/internal/domain"
	"github.com/campusdesk/campusdesk/internal/infra/notifier"
	"github.com/campusdesk/campusdesk/internal/service/deadline"
	"github.com/campusdesk/campusdesk/internal/service/derive"
	"github.com/campusdesk/campusdesk/internal/service/timetable"
)

// Monday 2026-03-02 08:00 local.
func fixedNow() time.Time {
	return time.Date(2026, time.March, 2, 8, 0, 0, 0, time.Local)
}

// Fingerprint of the timetable singleton when no lectures remain today.
const emptyTimetableFingerprint = "timetable:No upcoming lectures today:"

type engineEnv struct {
	actions  *domain.MockActionItemRepository
	schedule *domain.MockTimetableRepository
	baseline *domain.MockBaselineRepository
	notifier *notifier.MockNotifier
	engine   *Engine
}

func newEngineEnv(t *testing.T) *engineEnv {
	t.Helper()
	ctrl := gomock.NewController(t)

	env := &engineEnv{
		actions:  domain.NewMockActionItemRepository(ctrl),
		schedule: domain.NewMockTimetableRepository(ctrl),
		baseline: domain.NewMockBaselineRepository(ctrl),
		notifier: notifier.NewMockNotifier(ctrl),
	}

	deriver := derive.NewDeriver(deadline.NewClassifier(), timetable.NewResolver(0), 9, 0)
	env.engine = NewEngine(env.actions, env.schedule, env.baseline, env.notifier, deriver, nil, nil, false)
	return env
}

func timeCriticalTask(id, date, hhmm string) domain.ActionItem {
	return domain.ActionItem{
		ID:        id,
		Text:      "submit report",
		Date:      date,
		Time:      hhmm,
		CreatedAt: fixedNow().Add(-24 * time.Hour),
	}
}

func taskFingerprint(id string, at time.Time) string {
	return domain.ActionEntityKey(id) + ":" + at.UTC().Format(time.RFC3339)
}

func TestPassSchedulesNewIntents(t *testing.T) {
	env := newEngineEnv(t)
	ctx := context.Background()

	task := timeCriticalTask("t1", "2026-03-02", "10:00")

	env.actions.EXPECT().List(gomock.Any()).Return([]domain.ActionItem{task}, nil)
	env.schedule.EXPECT().List(gomock.Any()).Return(nil, nil)
	env.baseline.EXPECT().Load(gomock.Any()).Return(domain.Baseline{}, nil)

	scheduled := make([]*notifier.Notification, 0, 2)
	env.notifier.EXPECT().Schedule(gomock.Any(), gomock.Any()).Times(2).
		DoAndReturn(func(_ context.Context, n *notifier.Notification) (string, error) {
			scheduled = append(scheduled, n)
			return "id-" + n.Title, nil
		})

	var saved domain.Baseline
	env.baseline.EXPECT().Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b domain.Baseline) error {
			saved = b
			return nil
		})

	result, err := env.engine.RunAt(ctx, fixedNow())
	if err != nil {
		t.Fatalf("RunAt returned error: %v", err)
	}

	if result.Scheduled != 2 {
		t.Errorf("scheduled: got %d, want 2", result.Scheduled)
	}
	if result.Failed != 0 || result.Cancelled != 0 || result.Unchanged != 0 {
		t.Errorf("unexpected counters: %+v", result)
	}

	taskKey := domain.ActionEntityKey("t1")
	record, ok := saved[taskKey]
	if !ok {
		t.Fatalf("saved baseline missing %s", taskKey)
	}
	wantAt := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.Local)
	if record.Fingerprint != taskFingerprint("t1", wantAt) {
		t.Errorf("task fingerprint: got %q, want %q", record.Fingerprint, taskFingerprint("t1", wantAt))
	}

	if _, ok := saved[domain.TimetableEntityKey]; !ok {
		t.Errorf("saved baseline missing timetable singleton")
	}

	foundTask := false
	for _, n := range scheduled {
		if n.TriggerAt != nil && n.TriggerAt.Equal(wantAt) {
			foundTask = true
			if n.Title != "Task due now" {
				t.Errorf("task title: got %q", n.Title)
			}
		}
	}
	if !foundTask {
		t.Errorf("no notification scheduled at the task deadline")
	}
}

func TestPassIsIdempotent(t *testing.T) {
	env := newEngineEnv(t)
	ctx := context.Background()

	task := timeCriticalTask("t1", "2026-03-02", "10:00")
	wantAt := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.Local)

	prev := domain.Baseline{
		domain.ActionEntityKey("t1"): {
			EntityKey:      domain.ActionEntityKey("t1"),
			NotificationID: "n1",
			Fingerprint:    taskFingerprint("t1", wantAt),
		},
		domain.TimetableEntityKey: {
			EntityKey:      domain.TimetableEntityKey,
			NotificationID: "n2",
			Fingerprint:    emptyTimetableFingerprint,
		},
	}

	env.actions.EXPECT().List(gomock.Any()).Return([]domain.ActionItem{task}, nil)
	env.schedule.EXPECT().List(gomock.Any()).Return(nil, nil)
	env.baseline.EXPECT().Load(gomock.Any()).Return(prev, nil)

	var saved domain.Baseline
	env.baseline.EXPECT().Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b domain.Baseline) error {
			saved = b
			return nil
		})

	result, err := env.engine.RunAt(ctx, fixedNow())
	if err != nil {
		t.Fatalf("RunAt returned error: %v", err)
	}

	if result.Unchanged != 2 {
		t.Errorf("unchanged: got %d, want 2", result.Unchanged)
	}
	if result.Scheduled != 0 || result.Cancelled != 0 || result.Failed != 0 {
		t.Errorf("unexpected counters: %+v", result)
	}
	if saved[domain.ActionEntityKey("t1")].NotificationID != "n1" {
		t.Errorf("idempotent pass must carry the existing record forward")
	}
}

func TestPassReschedulesOnDeadlineMove(t *testing.T) {
	env := newEngineEnv(t)
	ctx := context.Background()

	task := timeCriticalTask("t1", "2026-03-02", "11:00")
	oldAt := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.Local)
	newAt := time.Date(2026, time.March, 2, 11, 0, 0, 0, time.Local)

	prev := domain.Baseline{
		domain.ActionEntityKey("t1"): {
			EntityKey:      domain.ActionEntityKey("t1"),
			NotificationID: "old-id",
			Fingerprint:    taskFingerprint("t1", oldAt),
		},
		domain.TimetableEntityKey: {
			EntityKey:      domain.TimetableEntityKey,
			NotificationID: "tt-id",
			Fingerprint:    emptyTimetableFingerprint,
		},
	}

	env.actions.EXPECT().List(gomock.Any()).Return([]domain.ActionItem{task}, nil)
	env.schedule.EXPECT().List(gomock.Any()).Return(nil, nil)
	env.baseline.EXPECT().Load(gomock.Any()).Return(prev, nil)

	env.notifier.EXPECT().Cancel(gomock.Any(), "old-id").Return(nil)
	env.notifier.EXPECT().Schedule(gomock.Any(), gomock.Any()).Return("new-id", nil)

	var saved domain.Baseline
	env.baseline.EXPECT().Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b domain.Baseline) error {
			saved = b
			return nil
		})

	result, err := env.engine.RunAt(ctx, fixedNow())
	if err != nil {
		t.Fatalf("RunAt returned error: %v", err)
	}

	if result.Scheduled != 1 || result.Unchanged != 1 {
		t.Errorf("counters: got %+v, want scheduled=1, unchanged=1", result)
	}

	record := saved[domain.ActionEntityKey("t1")]
	if record.NotificationID != "new-id" {
		t.Errorf("record notification id: got %q, want new-id", record.NotificationID)
	}
	if record.Fingerprint != taskFingerprint("t1", newAt) {
		t.Errorf("record fingerprint: got %q, want %q", record.Fingerprint, taskFingerprint("t1", newAt))
	}
}

func TestPassCancelsOrphans(t *testing.T) {
	env := newEngineEnv(t)
	ctx := context.Background()

	prev := domain.Baseline{
		domain.ActionEntityKey("deleted"): {
			EntityKey:      domain.ActionEntityKey("deleted"),
			NotificationID: "gone-id",
			ExtraIDs:       []string{"gone-extra"},
			Fingerprint:    "stale",
		},
		domain.TimetableEntityKey: {
			EntityKey:      domain.TimetableEntityKey,
			NotificationID: "tt-id",
			Fingerprint:    emptyTimetableFingerprint,
		},
	}

	env.actions.EXPECT().List(gomock.Any()).Return(nil, nil)
	env.schedule.EXPECT().List(gomock.Any()).Return(nil, nil)
	env.baseline.EXPECT().Load(gomock.Any()).Return(prev, nil)

	env.notifier.EXPECT().Cancel(gomock.Any(), "gone-id").Return(nil)
	env.notifier.EXPECT().Cancel(gomock.Any(), "gone-extra").Return(nil)

	var saved domain.Baseline
	env.baseline.EXPECT().Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b domain.Baseline) error {
			saved = b
			return nil
		})

	result, err := env.engine.RunAt(ctx, fixedNow())
	if err != nil {
		t.Fatalf("RunAt returned error: %v", err)
	}

	if result.Cancelled != 1 {
		t.Errorf("cancelled: got %d, want 1", result.Cancelled)
	}
	if _, ok := saved[domain.ActionEntityKey("deleted")]; ok {
		t.Errorf("orphaned record must not survive into the next baseline")
	}
}

func TestPassKeepsRecordWhenOrphanCancelFails(t *testing.T) {
	env := newEngineEnv(t)
	ctx := context.Background()

	prev := domain.Baseline{
		domain.ActionEntityKey("deleted"): {
			EntityKey:      domain.ActionEntityKey("deleted"),
			NotificationID: "stuck-id",
			Fingerprint:    "stale",
		},
		domain.TimetableEntityKey: {
			EntityKey:      domain.TimetableEntityKey,
			NotificationID: "tt-id",
			Fingerprint:    emptyTimetableFingerprint,
		},
	}

	env.actions.EXPECT().List(gomock.Any()).Return(nil, nil)
	env.schedule.EXPECT().List(gomock.Any()).Return(nil, nil)
	env.baseline.EXPECT().Load(gomock.Any()).Return(prev, nil)

	env.notifier.EXPECT().Cancel(gomock.Any(), "stuck-id").Return(errors.New("daemon unavailable"))

	var saved domain.Baseline
	env.baseline.EXPECT().Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b domain.Baseline) error {
			saved = b
			return nil
		})

	result, err := env.engine.RunAt(ctx, fixedNow())
	if err != nil {
		t.Fatalf("RunAt returned error: %v", err)
	}

	if result.Failed != 1 {
		t.Errorf("failed: got %d, want 1", result.Failed)
	}
	if _, ok := saved[domain.ActionEntityKey("deleted")]; !ok {
		t.Errorf("record with failed cancel must stay in the baseline for retry")
	}
}

func TestPassKeepsPreviousRecordWhenScheduleFails(t *testing.T) {
	env := newEngineEnv(t)
	ctx := context.Background()

	task := timeCriticalTask("t1", "2026-03-02", "11:00")
	oldAt := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.Local)

	prev := domain.Baseline{
		domain.ActionEntityKey("t1"): {
			EntityKey:      domain.ActionEntityKey("t1"),
			NotificationID: "old-id",
			Fingerprint:    taskFingerprint("t1", oldAt),
		},
		domain.TimetableEntityKey: {
			EntityKey:      domain.TimetableEntityKey,
			NotificationID: "tt-id",
			Fingerprint:    emptyTimetableFingerprint,
		},
	}

	env.actions.EXPECT().List(gomock.Any()).Return([]domain.ActionItem{task}, nil)
	env.schedule.EXPECT().List(gomock.Any()).Return(nil, nil)
	env.baseline.EXPECT().Load(gomock.Any()).Return(prev, nil)

	env.notifier.EXPECT().Cancel(gomock.Any(), "old-id").Return(nil)
	env.notifier.EXPECT().Schedule(gomock.Any(), gomock.Any()).Return("", errors.New("daemon unavailable"))

	var saved domain.Baseline
	env.baseline.EXPECT().Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b domain.Baseline) error {
			saved = b
			return nil
		})

	result, err := env.engine.RunAt(ctx, fixedNow())
	if err != nil {
		t.Fatalf("RunAt returned error: %v", err)
	}

	if result.Failed != 1 {
		t.Errorf("failed: got %d, want 1", result.Failed)
	}

	record, ok := saved[domain.ActionEntityKey("t1")]
	if !ok {
		t.Fatalf("previous record must survive a failed reschedule")
	}
	if record.NotificationID != "old-id" {
		t.Errorf("record id: got %q, want old-id", record.NotificationID)
	}
}

func TestPassAbortsWhenStoreListFails(t *testing.T) {
	env := newEngineEnv(t)
	ctx := context.Background()

	env.actions.EXPECT().List(gomock.Any()).Return(nil, errors.New("database locked"))

	if _, err := env.engine.RunAt(ctx, fixedNow()); err == nil {
		t.Fatalf("expected pass to abort on store failure")
	}
}

func TestPassSchedulesRefreshTriggers(t *testing.T) {
	env := newEngineEnv(t)
	ctx := context.Background()

	// One lecture later this Monday yields two boundaries: start and end.
	slots := []domain.LectureSlot{
		{
			ID:          "s1",
			DayOfWeek:   time.Monday,
			StartTime:   "09:00",
			EndTime:     "10:00",
			SubjectCode: "CS101",
			SubjectName: "Data Structures",
			Type:        domain.LectureTheory,
		},
	}

	env.actions.EXPECT().List(gomock.Any()).Return(nil, nil)
	env.schedule.EXPECT().List(gomock.Any()).Return(slots, nil)
	env.baseline.EXPECT().Load(gomock.Any()).Return(domain.Baseline{}, nil)

	ids := []string{"primary", "refresh-1", "refresh-2"}
	calls := 0
	env.notifier.EXPECT().Schedule(gomock.Any(), gomock.Any()).Times(3).
		DoAndReturn(func(_ context.Context, n *notifier.Notification) (string, error) {
			id := ids[calls]
			calls++
			return id, nil
		})

	var saved domain.Baseline
	env.baseline.EXPECT().Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b domain.Baseline) error {
			saved = b
			return nil
		})

	result, err := env.engine.RunAt(ctx, fixedNow())
	if err != nil {
		t.Fatalf("RunAt returned error: %v", err)
	}

	if result.Scheduled != 1 {
		t.Errorf("scheduled: got %d, want 1", result.Scheduled)
	}

	record := saved[domain.TimetableEntityKey]
	if record.NotificationID != "primary" {
		t.Errorf("primary id: got %q", record.NotificationID)
	}
	if len(record.ExtraIDs) != 2 {
		t.Fatalf("extra ids: got %d, want 2", len(record.ExtraIDs))
	}
}

func TestRequestCoalesces(t *testing.T) {
	env := newEngineEnv(t)
	ctx := context.Background()

	// Exactly one pass despite three requests.
	env.actions.EXPECT().List(gomock.Any()).Return(nil, nil)
	env.schedule.EXPECT().List(gomock.Any()).Return(nil, nil)
	env.baseline.EXPECT().Load(gomock.Any()).Return(domain.Baseline{}, nil)
	env.notifier.EXPECT().Schedule(gomock.Any(), gomock.Any()).Return("tt-id", nil)
	env.baseline.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	// Requests arriving while a pass holds the lock are absorbed into the
	// pending flag rather than queueing their own passes.
	env.engine.mu.Lock()
	env.engine.Request(ctx)
	env.engine.Request(ctx)
	env.engine.mu.Unlock()

	env.engine.Request(ctx)
}

func TestRunAtDrainsRequestsArrivingMidPass(t *testing.T) {
	env := newEngineEnv(t)
	ctx := context.Background()

	passStarted := make(chan struct{})
	release := make(chan struct{})

	// The first pass blocks inside the store read so a request can arrive
	// while the run lock is held. Both passes must complete: the in-flight
	// one plus the deferred one for the absorbed request.
	firstPass := true
	env.actions.EXPECT().List(gomock.Any()).Times(2).
		DoAndReturn(func(context.Context) ([]domain.ActionItem, error) {
			if firstPass {
				firstPass = false
				close(passStarted)
				<-release
			}
			return nil, nil
		})
	env.schedule.EXPECT().List(gomock.Any()).Times(2).Return(nil, nil)
	env.baseline.EXPECT().Load(gomock.Any()).Times(2).Return(domain.Baseline{}, nil)
	env.notifier.EXPECT().Schedule(gomock.Any(), gomock.Any()).Times(2).Return("tt-id", nil)
	env.baseline.EXPECT().Save(gomock.Any(), gomock.Any()).Times(2).Return(nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := env.engine.RunAt(ctx, fixedNow()); err != nil {
			t.Errorf("RunAt returned error: %v", err)
		}
	}()

	<-passStarted
	// Absorbed into the pending flag; RunAt must run the follow-up pass
	// before releasing the lock.
	env.engine.Request(ctx)
	close(release)
	<-done
}

func TestRunSurvivesBaselineSaveFailure(t *testing.T) {
	env := newEngineEnv(t)
	ctx := context.Background()

	env.actions.EXPECT().List(gomock.Any()).Return(nil, nil)
	env.schedule.EXPECT().List(gomock.Any()).Return(nil, nil)
	env.baseline.EXPECT().Load(gomock.Any()).Return(domain.Baseline{}, nil)
	env.notifier.EXPECT().Schedule(gomock.Any(), gomock.Any()).Return("tt-id", nil)
	env.baseline.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	result, err := env.engine.RunAt(ctx, fixedNow())
	if err != nil {
		t.Fatalf("a failed baseline save must not fail the pass: %v", err)
	}
	if result.Scheduled != 1 {
		t.Errorf("scheduled: got %d, want 1", result.Scheduled)
	}
}
