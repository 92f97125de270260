// Package pubsub relays post-commit settlement events across instances over
// Redis Pub/Sub. Delivery is best effort: a publish failure is logged and
// dropped, never surfaced to the settlement path.
package pubsub

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"tonpay/internal/application/settlement"
	"tonpay/internal/shared/goroutine"
	"tonpay/internal/shared/logger"
)

const settlementChannel = "tonpay:settlement:events"

const publishTimeout = 5 * time.Second

// RedisNotifier publishes settlement events to the shared Redis channel.
type RedisNotifier struct {
	client *redis.Client
	logger logger.Interface
}

// NewRedisNotifier creates a notifier backed by the given Redis client.
func NewRedisNotifier(client *redis.Client, log logger.Interface) *RedisNotifier {
	return &RedisNotifier{
		client: client,
		logger: log,
	}
}

// Notify publishes the event. Failures are logged and dropped.
func (n *RedisNotifier) Notify(ctx context.Context, event settlement.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		n.logger.Errorw("failed to marshal settlement event", "kind", event.Kind, "error", err)
		return
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := n.client.Publish(pubCtx, settlementChannel, payload).Err(); err != nil {
		n.logger.Warnw("failed to publish settlement event",
			"kind", event.Kind,
			"obligation_id", event.ObligationID,
			"error", err)
		return
	}
	n.logger.Debugw("settlement event published", "kind", event.Kind, "obligation_id", event.ObligationID)
}

// Subscribe listens for settlement events published by any instance and
// invokes handler for each. It runs until ctx is cancelled.
func (n *RedisNotifier) Subscribe(ctx context.Context, handler func(event settlement.Event)) error {
	sub := n.client.Subscribe(ctx, settlementChannel)
	if _, err := sub.Receive(ctx); err != nil {
		return err
	}

	ch := sub.Channel()
	goroutine.SafeGo(n.logger, "settlement-event-subscriber", func() {
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event settlement.Event
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					n.logger.Warnw("failed to unmarshal settlement event", "error", err)
					continue
				}
				handler(event)
			}
		}
	})
	return nil
}
