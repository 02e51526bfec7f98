package notifier

import "context"

//go:generate mockgen -source=notifier.go -destination=mock.go -package=notifier

// Notifier is the OS-level notification scheduling primitive. The engine
// depends only on this contract; the store's own bookkeeping stays
// authoritative, ListScheduled exists for best-effort foreign-notification
// sweeps only.
type Notifier interface {
	// Configure registers the process-wide notification channel/handler.
	// Called once at startup; idempotent, no teardown needed.
	Configure(ctx context.Context) error
	Schedule(ctx context.Context, n *Notification) (string, error)
	Cancel(ctx context.Context, id string) error
	ListScheduled(ctx context.Context) ([]string, error)
}
