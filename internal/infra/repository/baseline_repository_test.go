package repository

import (
	"context"
	"testing"

	"github.com/campusdesk/campusdesk/internal/domain"
	"github.com/campusdesk/campusdesk/internal/testutil"
)

func sampleBaseline() domain.Baseline {
	return domain.Baseline{
		"action:t1": {
			EntityKey:      "action:t1",
			NotificationID: "n1",
			Fingerprint:    "action:t1:2026-03-02T04:30:00Z",
		},
		domain.TimetableEntityKey: {
			EntityKey:      domain.TimetableEntityKey,
			NotificationID: "n2",
			ExtraIDs:       []string{"r1", "r2"},
			Fingerprint:    "timetable:Now: CS101 until 10:00:2026-03-02T04:30:00Z",
		},
	}
}

func assertBaselineEqual(t *testing.T, got, want domain.Baseline) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("baseline size: got %d, want %d", len(got), len(want))
	}
	for key, wantRecord := range want {
		gotRecord, ok := got[key]
		if !ok {
			t.Errorf("missing entity %q", key)
			continue
		}
		if gotRecord.NotificationID != wantRecord.NotificationID {
			t.Errorf("%s notification id: got %q, want %q", key, gotRecord.NotificationID, wantRecord.NotificationID)
		}
		if gotRecord.Fingerprint != wantRecord.Fingerprint {
			t.Errorf("%s fingerprint: got %q, want %q", key, gotRecord.Fingerprint, wantRecord.Fingerprint)
		}
		if len(gotRecord.ExtraIDs) != len(wantRecord.ExtraIDs) {
			t.Errorf("%s extra ids: got %d, want %d", key, len(gotRecord.ExtraIDs), len(wantRecord.ExtraIDs))
		}
	}
}

func TestBaselineRepositorySaveAndLoad(t *testing.T) {
	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewBaselineRepository(client)

	want := sampleBaseline()
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	assertBaselineEqual(t, got, want)
}

func TestBaselineRepositoryLoadWhenEmpty(t *testing.T) {
	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewBaselineRepository(client)

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty baseline, got %d records", len(got))
	}
}

func TestBaselineRepositorySaveOverwrites(t *testing.T) {
	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewBaselineRepository(client)

	if err := repo.Save(ctx, sampleBaseline()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	smaller := domain.Baseline{
		domain.TimetableEntityKey: {
			EntityKey:      domain.TimetableEntityKey,
			NotificationID: "n3",
			Fingerprint:    "timetable:No upcoming lectures today:",
		},
	}
	if err := repo.Save(ctx, smaller); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	assertBaselineEqual(t, got, smaller)
}

func TestMemoryBaselineRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBaselineRepository()

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty baseline, got %d records", len(got))
	}

	want := sampleBaseline()
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err = repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	assertBaselineEqual(t, got, want)

	// Mutating the loaded copy must not leak into the stored baseline.
	got["action:t1"] = domain.NotificationRecord{EntityKey: "action:t1", NotificationID: "mutated"}
	reloaded, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if reloaded["action:t1"].NotificationID != "n1" {
		t.Errorf("stored baseline mutated through a loaded copy")
	}
}
