package repository

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/redis/go-redis/v9"

	"github.com/vibe-directory/vibe-backend/internal/projects/domain"
)

const (
	// ProjectsKey holds the serialised collection.
	ProjectsKey = "vibe-directory:projects"

	maxMutateAttempts = 5
)

// RedisRepository keeps the collection under a single key and guards
// writes with WATCH/MULTI so a concurrent writer cannot be silently lost.
type RedisRepository struct {
	client *redis.Client
	key    string
}

// NewRedisRepository creates a new RedisRepository
func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{
		client: client,
		key:    ProjectsKey,
	}
}

// List returns the stored collection; a missing key is an empty collection.
func (r *RedisRepository) List(ctx context.Context) ([]domain.Project, error) {
	return r.load(ctx, r.client)
}

// Mutate retries a bounded number of times when the key changes between
// read and write, then gives up with domain.ErrWriteConflict.
func (r *RedisRepository) Mutate(ctx context.Context, fn MutateFunc) error {
	txf := func(tx *redis.Tx) error {
		projects, err := r.load(ctx, tx)
		if err != nil {
			return err
		}

		next, err := fn(projects)
		if err != nil {
			return err
		}

		data, err := domain.EncodeCollection(next)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, r.key, data, 0)
			return nil
		})
		return err
	}

	for i := 0; i < maxMutateAttempts; i++ {
		err := r.client.Watch(ctx, txf, r.key)
		if err == nil {
			return nil
		}
		// key changed under us → retry
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		var netErr net.Error
		if errors.As(err, &netErr) {
			return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}
		return err
	}

	return domain.ErrWriteConflict
}

// getter is satisfied by both *redis.Client and *redis.Tx.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (r *RedisRepository) load(ctx context.Context, c getter) ([]domain.Project, error) {
	data, err := c.Get(ctx, r.key).Bytes()
	if err == redis.Nil {
		return []domain.Project{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	projects, err := domain.DecodeCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode projects: %w", err)
	}
	return projects, nil
}
