package settlement

import "context"

// Notifier receives events after a settlement commits. Delivery is best
// effort; a notifier failure never rolls back or fails the settlement.
type Notifier interface {
	Notify(ctx context.Context, event Event)
}

// NoopNotifier discards all events.
type NoopNotifier struct{}

func (NoopNotifier) Notify(ctx context.Context, event Event) {}
