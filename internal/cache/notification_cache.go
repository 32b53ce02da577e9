package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pjdesenvolvedor-coder/CRM-SISTEMA/internal/domain"
)

const notificationFeedKey = "notification_feed"

// Keep roughly a month of feed entries; the feed is operator-facing
// history, not an audit log.
const notificationFeedTTL = 30 * 24 * time.Hour

// NotificationCache records send outcomes so the dashboard can show the
// operator what the loops did. It is best-effort: a cache write failure
// never fails the send that produced it.
type NotificationCache interface {
	Record(ctx context.Context, n domain.Notification) error
	Recent(ctx context.Context, page, pageSize int) ([]domain.Notification, int64, error)
}

type redisNotificationCache struct {
	client *redis.Client
}

func NewNotificationCache(client *redis.Client) NotificationCache {
	return &redisNotificationCache{client: client}
}

func (r *redisNotificationCache) Record(ctx context.Context, n domain.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}

	member := redis.Z{
		Score:  float64(n.SentAt.UnixMilli()),
		Member: payload,
	}
	if err := r.client.ZAdd(ctx, notificationFeedKey, member).Err(); err != nil {
		return err
	}
	return r.client.Expire(ctx, notificationFeedKey, notificationFeedTTL).Err()
}

func (r *redisNotificationCache) Recent(ctx context.Context, page, pageSize int) ([]domain.Notification, int64, error) {
	total, err := r.client.ZCard(ctx, notificationFeedKey).Result()
	if err != nil {
		return nil, 0, err
	}

	start := (page - 1) * pageSize
	stop := start + pageSize - 1

	raw, err := r.client.ZRevRange(ctx, notificationFeedKey, int64(start), int64(stop)).Result()
	if err != nil {
		return nil, 0, err
	}

	notifications := make([]domain.Notification, 0, len(raw))
	for _, entry := range raw {
		var n domain.Notification
		if err := json.Unmarshal([]byte(entry), &n); err != nil {
			// Skip malformed entries instead of breaking the feed.
			continue
		}
		notifications = append(notifications, n)
	}
	return notifications, total, nil
}
