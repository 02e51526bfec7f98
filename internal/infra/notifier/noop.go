package notifier

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// noopNotifier is used when no notification daemon is configured. It hands
// out throwaway ids so the reconciliation bookkeeping stays exercised.
type noopNotifier struct{}

func NewNoopNotifier() Notifier {
	return &noopNotifier{}
}

func (n *noopNotifier) Configure(_ context.Context) error {
	return nil
}

func (n *noopNotifier) Schedule(ctx context.Context, notification *Notification) (string, error) {
	slog.DebugContext(ctx, "notification delivery disabled, dropping schedule",
		slog.String("title", notification.Title),
	)
	return uuid.NewString(), nil
}

func (n *noopNotifier) Cancel(_ context.Context, _ string) error {
	return nil
}

func (n *noopNotifier) ListScheduled(_ context.Context) ([]string, error) {
	return nil, nil
}
