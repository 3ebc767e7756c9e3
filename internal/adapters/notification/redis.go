package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/claims_app/internal/core/domain"
	portssvc "github.com/SscSPs/claims_app/internal/core/ports/services"
	"github.com/SscSPs/claims_app/internal/middleware"
	"github.com/redis/go-redis/v9"
)

// listPusher is the part of the redis client the notifier needs.
type listPusher interface {
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// message is what the mail worker pops off the queue.
type message struct {
	ClaimID    string                  `json:"claimId"`
	Kind       domain.NotificationKind `json:"kind"`
	OccurredAt time.Time               `json:"occurredAt"`
}

// RedisNotifier queues claim notifications on a redis list.
type RedisNotifier struct {
	client listPusher
	queue  string
	now    func() time.Time
}

// NewRedisNotifier creates a notifier pushing onto queue.
func NewRedisNotifier(client listPusher, queue string) *RedisNotifier {
	return &RedisNotifier{client: client, queue: queue, now: time.Now}
}

var _ portssvc.Notifier = (*RedisNotifier)(nil)

func (n *RedisNotifier) Notify(ctx context.Context, claimID string, kind domain.NotificationKind) error {
	payload, err := json.Marshal(message{ClaimID: claimID, Kind: kind, OccurredAt: n.now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	if err := n.client.RPush(ctx, n.queue, payload).Err(); err != nil {
		return fmt.Errorf("push notification to %s: %w", n.queue, err)
	}
	middleware.GetLoggerFromCtx(ctx).Debug("Notification queued",
		slog.String("claim_id", claimID), slog.String("kind", string(kind)))
	return nil
}
