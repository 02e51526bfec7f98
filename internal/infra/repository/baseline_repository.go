package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/campusdesk/campusdesk/internal/domain"
)

// The baseline is one document overwritten whole; the version suffix guards
// against decoding documents written by an older record layout.
const baselineKey = "campusdesk:reconcile:baseline:v2"

type baselineRecord struct {
	EntityKey      string   `json:"entity_key"`
	NotificationID string   `json:"notification_id"`
	ExtraIDs       []string `json:"extra_ids,omitempty"`
	Fingerprint    string   `json:"fingerprint"`
}

type baselineDocument struct {
	Records []baselineRecord `json:"records"`
}

type baselineRepository struct {
	client *redis.Client
}

func NewBaselineRepository(client *redis.Client) domain.BaselineRepository {
	return &baselineRepository{
		client: client,
	}
}

func (r *baselineRepository) Load(ctx context.Context) (domain.Baseline, error) {
	data, err := r.client.Get(ctx, baselineKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Baseline{}, nil
		}
		return nil, err
	}

	var doc baselineDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, ErrInvalidBaselineData
	}

	baseline := make(domain.Baseline, len(doc.Records))
	for _, record := range doc.Records {
		baseline[record.EntityKey] = domain.NotificationRecord{
			EntityKey:      record.EntityKey,
			NotificationID: record.NotificationID,
			ExtraIDs:       record.ExtraIDs,
			Fingerprint:    record.Fingerprint,
		}
	}

	return baseline, nil
}

func (r *baselineRepository) Save(ctx context.Context, baseline domain.Baseline) error {
	doc := baselineDocument{
		Records: make([]baselineRecord, 0, len(baseline)),
	}
	for _, record := range baseline {
		doc.Records = append(doc.Records, baselineRecord{
			EntityKey:      record.EntityKey,
			NotificationID: record.NotificationID,
			ExtraIDs:       record.ExtraIDs,
			Fingerprint:    record.Fingerprint,
		})
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return ErrInvalidBaselineData
	}

	// No TTL: the baseline must outlive arbitrary downtime.
	return r.client.Set(ctx, baselineKey, data, 0).Err()
}
