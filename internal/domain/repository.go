package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=repository.go -destination=repository_mock.go -package=domain

// ActionItemRepository is the task store. The reconciliation core only
// reads it; mutation is the CRUD layer's concern.
type ActionItemRepository interface {
	List(ctx context.Context) ([]ActionItem, error)
	Get(ctx context.Context, id string) (*ActionItem, error)
	Create(ctx context.Context, item *ActionItem) error
	Update(ctx context.Context, item *ActionItem) error
	SetCompleted(ctx context.Context, id string, completedAt *time.Time) error
	Delete(ctx context.Context, id string) error
}

// TimetableRepository is the weekly schedule store. Slots are immutable
// once locked; Replace installs a whole new schedule and re-locks.
type TimetableRepository interface {
	List(ctx context.Context) ([]LectureSlot, error)
	Replace(ctx context.Context, slots []LectureSlot, lockedAt time.Time) error
	LockedAt(ctx context.Context) (*time.Time, error)
}

// BaselineRepository persists the reconciliation baseline between passes.
// Save overwrites the whole baseline atomically; Load returns an empty
// baseline when none has been written yet.
type BaselineRepository interface {
	Load(ctx context.Context) (Baseline, error)
	Save(ctx context.Context, baseline Baseline) error
}
