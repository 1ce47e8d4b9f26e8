package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const (
	UserViewsPrefix        = "vibe-directory:user-views:"
	ProjectViewCountPrefix = "vibe-directory:project-view-count:"
)

// markViewedScript: KEYS[1] is the user's set, KEYS[i+1] the counter for
// ARGV[i]. A counter moves only when SADD reports a new member.
var markViewedScript = redis.NewScript(`
local added = 0
for i, id in ipairs(ARGV) do
  if redis.call('SADD', KEYS[1], id) == 1 then
    redis.call('INCR', KEYS[i + 1])
    added = added + 1
  end
end
return added
`)

type RedisRepository struct {
	client *redis.Client
}

func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

func userKey(userID string) string       { return UserViewsPrefix + userID }
func counterKey(projectID string) string { return ProjectViewCountPrefix + projectID }

func (r *RedisRepository) MarkViewed(ctx context.Context, userID string, projectIDs ...string) (int, error) {
	if len(projectIDs) == 0 {
		return 0, nil
	}

	keys := make([]string, 0, len(projectIDs)+1)
	args := make([]interface{}, 0, len(projectIDs))
	keys = append(keys, userKey(userID))
	for _, id := range projectIDs {
		keys = append(keys, counterKey(id))
		args = append(args, id)
	}

	added, err := markViewedScript.Run(ctx, r.client, keys, args...).Int()
	if err != nil {
		return 0, fmt.Errorf("failed to mark viewed: %w", err)
	}
	return added, nil
}

func (r *RedisRepository) Viewed(ctx context.Context, userID string) ([]string, error) {
	ids, err := r.client.SMembers(ctx, userKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list viewed projects: %w", err)
	}
	return ids, nil
}

func (r *RedisRepository) HasViewed(ctx context.Context, userID, projectID string) (bool, error) {
	ok, err := r.client.SIsMember(ctx, userKey(userID), projectID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check view: %w", err)
	}
	return ok, nil
}

func (r *RedisRepository) ViewedCount(ctx context.Context, userID string) (int64, error) {
	n, err := r.client.SCard(ctx, userKey(userID)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count viewed projects: %w", err)
	}
	return n, nil
}

func (r *RedisRepository) ProjectViewCounts(ctx context.Context, projectIDs ...string) (map[string]int64, error) {
	counts := make(map[string]int64, len(projectIDs))
	if len(projectIDs) == 0 {
		return counts, nil
	}

	keys := make([]string, len(projectIDs))
	for i, id := range projectIDs {
		keys[i] = counterKey(id)
	}

	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get view counts: %w", err)
	}

	for i, id := range projectIDs {
		counts[id] = 0
		s, ok := vals[i].(string)
		if !ok {
			continue
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("view count for %s is not an integer: %w", id, err)
		}
		counts[id] = n
	}
	return counts, nil
}
