// Package repository stores frame notification tokens and the notification log.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/vibe-directory/vibe-backend/internal/notifications/domain"
)

const scanCount = 100

// TokenRepository keeps one set of notification details per fid.
type TokenRepository interface {
	Set(ctx context.Context, fid int64, details domain.Details) error
	Get(ctx context.Context, fid int64) (*domain.Details, error)
	Delete(ctx context.Context, fid int64) error
	List(ctx context.Context) ([]domain.Registration, error)
}

// RedisTokenRepository stores JSON details under "{app}:user:{fid}".
type RedisTokenRepository struct {
	client *redis.Client
	prefix string
}

func NewRedisTokenRepository(client *redis.Client, appName string) *RedisTokenRepository {
	return &RedisTokenRepository{client: client, prefix: appName + ":user:"}
}

func (r *RedisTokenRepository) key(fid int64) string {
	return r.prefix + strconv.FormatInt(fid, 10)
}

func (r *RedisTokenRepository) Set(ctx context.Context, fid int64, details domain.Details) error {
	data, err := json.Marshal(details)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key(fid), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store notification token: %w", err)
	}
	return nil
}

func (r *RedisTokenRepository) Get(ctx context.Context, fid int64) (*domain.Details, error) {
	data, err := r.client.Get(ctx, r.key(fid)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get notification token: %w", err)
	}

	var d domain.Details
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to decode notification token: %w", err)
	}
	return &d, nil
}

func (r *RedisTokenRepository) Delete(ctx context.Context, fid int64) error {
	if err := r.client.Del(ctx, r.key(fid)).Err(); err != nil {
		return fmt.Errorf("failed to delete notification token: %w", err)
	}
	return nil
}

// List walks the key space with SCAN. Entries that fail to decode are skipped.
func (r *RedisTokenRepository) List(ctx context.Context) ([]domain.Registration, error) {
	var keys []string
	iter := r.client.Scan(ctx, 0, r.prefix+"*", scanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan notification tokens: %w", err)
	}

	out := make([]domain.Registration, 0, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load notification tokens: %w", err)
	}

	for i, key := range keys {
		s, ok := vals[i].(string)
		if !ok {
			// deleted between SCAN and MGET
			continue
		}
		var d domain.Details
		if err := json.Unmarshal([]byte(s), &d); err != nil {
			continue
		}
		fid, _ := strconv.ParseInt(strings.TrimPrefix(key, r.prefix), 10, 64)
		out = append(out, domain.Registration{FID: fid, Details: d})
	}
	return out, nil
}

type MemoryTokenRepository struct {
	mu     sync.RWMutex
	tokens map[int64]domain.Details
}

func NewMemoryTokenRepository() *MemoryTokenRepository {
	return &MemoryTokenRepository{tokens: make(map[int64]domain.Details)}
}

func (r *MemoryTokenRepository) Set(ctx context.Context, fid int64, details domain.Details) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[fid] = details
	return nil
}

func (r *MemoryTokenRepository) Get(ctx context.Context, fid int64) (*domain.Details, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.tokens[fid]
	if !ok {
		return nil, domain.ErrTokenNotFound
	}
	return &d, nil
}

func (r *MemoryTokenRepository) Delete(ctx context.Context, fid int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, fid)
	return nil
}

func (r *MemoryTokenRepository) List(ctx context.Context) ([]domain.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Registration, 0, len(r.tokens))
	for fid, d := range r.tokens {
		out = append(out, domain.Registration{FID: fid, Details: d})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FID < out[j].FID })
	return out, nil
}
