package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vibe-directory/vibe-backend/internal/notifications/domain"
)

const NotificationCountKey = "notification_count"

// NotificationLog records sent notifications and keeps a running total.
type NotificationLog interface {
	Record(ctx context.Context, msg domain.Message) (count int64, err error)
}

type RedisNotificationLog struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisNotificationLog(client *redis.Client) *RedisNotificationLog {
	return &RedisNotificationLog{client: client, now: time.Now}
}

func logKey(token string, at time.Time) string {
	return "notification:" + token + ":" + strconv.FormatInt(at.UnixMilli(), 10)
}

// Record writes notification:{token}:{unixms} and bumps notification_count
// in one MULTI.
func (l *RedisNotificationLog) Record(ctx context.Context, msg domain.Message) (int64, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return 0, err
	}

	var incr *redis.IntCmd
	_, err = l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, logKey(msg.Token, l.now()), data, 0)
		incr = pipe.Incr(ctx, NotificationCountKey)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to record notification: %w", err)
	}
	return incr.Val(), nil
}

type MemoryNotificationLog struct {
	mu      sync.Mutex
	entries map[string]domain.Message
	count   int64
	now     func() time.Time
}

func NewMemoryNotificationLog() *MemoryNotificationLog {
	return &MemoryNotificationLog{entries: make(map[string]domain.Message), now: time.Now}
}

func (l *MemoryNotificationLog) Record(ctx context.Context, msg domain.Message) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[logKey(msg.Token, l.now())] = msg
	l.count++
	return l.count, nil
}
