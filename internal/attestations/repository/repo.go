// Package repository appends attestations to a per-user list.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/vibe-directory/vibe-backend/internal/attestations/domain"
)

const KeyPrefix = "vibe-directory:attestations:"

type Repository interface {
	Append(ctx context.Context, a domain.Attestation) error
	ListByAttester(ctx context.Context, address string) ([]domain.Attestation, error)
}

func key(address string) string {
	return KeyPrefix + strings.ToLower(address)
}

type RedisRepository struct {
	client *redis.Client
}

func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

func (r *RedisRepository) Append(ctx context.Context, a domain.Attestation) error {
	data, err := json.Marshal(a)
	if err != nil {
		return err
	}
	if err := r.client.RPush(ctx, key(a.Attester), data).Err(); err != nil {
		return fmt.Errorf("failed to store attestation: %w", err)
	}
	return nil
}

func (r *RedisRepository) ListByAttester(ctx context.Context, address string) ([]domain.Attestation, error) {
	raw, err := r.client.LRange(ctx, key(address), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list attestations: %w", err)
	}

	out := make([]domain.Attestation, 0, len(raw))
	for _, s := range raw {
		var a domain.Attestation
		if err := json.Unmarshal([]byte(s), &a); err != nil {
			return nil, fmt.Errorf("failed to decode attestation: %w", err)
		}
		out = append(out, a)
	}
	return out, nil
}

type MemoryRepository struct {
	mu     sync.RWMutex
	byUser map[string][]domain.Attestation
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byUser: make(map[string][]domain.Attestation)}
}

func (r *MemoryRepository) Append(ctx context.Context, a domain.Attestation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key(a.Attester)
	r.byUser[k] = append(r.byUser[k], a)
	return nil
}

func (r *MemoryRepository) ListByAttester(ctx context.Context, address string) ([]domain.Attestation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Attestation{}, r.byUser[key(address)]...), nil
}
