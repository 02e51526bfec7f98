package repository

import (
	"context"
	"sync"

	"github.com/campusdesk/campusdesk/internal/domain"
)

// memoryBaselineRepository keeps the baseline in process memory. Used when
// no Redis address is configured; the first pass after a restart re-syncs
// against the notification store.
type memoryBaselineRepository struct {
	mu       sync.RWMutex
	baseline domain.Baseline
}

func NewMemoryBaselineRepository() domain.BaselineRepository {
	return &memoryBaselineRepository{
		baseline: domain.Baseline{},
	}
}

func (r *memoryBaselineRepository) Load(ctx context.Context) (domain.Baseline, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	copied := make(domain.Baseline, len(r.baseline))
	for key, record := range r.baseline {
		copied[key] = record
	}
	return copied, nil
}

func (r *memoryBaselineRepository) Save(ctx context.Context, baseline domain.Baseline) error {
	copied := make(domain.Baseline, len(baseline))
	for key, record := range baseline {
		copied[key] = record
	}

	r.mu.Lock()
	r.baseline = copied
	r.mu.Unlock()
	return nil
}
