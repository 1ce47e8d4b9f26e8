package bootstrap

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/vibe-directory/vibe-backend/config"
	httpapi "github.com/vibe-directory/vibe-backend/internal/api/http"
	attestrepo "github.com/vibe-directory/vibe-backend/internal/attestations/repository"
	notifrepo "github.com/vibe-directory/vibe-backend/internal/notifications/repository"
	projectrepo "github.com/vibe-directory/vibe-backend/internal/projects/repository"
	viewrepo "github.com/vibe-directory/vibe-backend/internal/views/repository"
)

// Stores is every repository the API needs, all backed by the same store.
type Stores struct {
	Projects      projectrepo.Repository
	Views         viewrepo.Repository
	Tokens        notifrepo.TokenRepository
	Notifications notifrepo.NotificationLog
	Attestations  attestrepo.Repository

	// Health is nil for the in-memory stores.
	Health httpapi.Pinger
}

// NewRedisStores backs every repository with client. appName namespaces the
// notification token keys.
func NewRedisStores(client *redis.Client, appName string) Stores {
	return Stores{
		Projects:      projectrepo.NewRedisRepository(client),
		Views:         viewrepo.NewRedisRepository(client),
		Tokens:        notifrepo.NewRedisTokenRepository(client, appName),
		Notifications: notifrepo.NewRedisNotificationLog(client),
		Attestations:  attestrepo.NewRedisRepository(client),
		Health:        redisPinger{client: client},
	}
}

// NewMemoryStores is used when no store is configured. Projects start out
// with the fallback fixtures.
func NewMemoryStores() Stores {
	return Stores{
		Projects:      projectrepo.NewMemoryRepository(projectrepo.FallbackProjects()...),
		Views:         viewrepo.NewMemoryRepository(),
		Tokens:        notifrepo.NewMemoryTokenRepository(),
		Notifications: notifrepo.NewMemoryNotificationLog(),
		Attestations:  attestrepo.NewMemoryRepository(),
	}
}

// OpenStores selects the Redis stores when a URL is configured and the
// in-memory ones otherwise. The returned client is nil in memory mode.
// A failed ping still returns usable Redis stores together with
// ErrStoreUnreachable; their reads degrade until the store comes back.
func OpenStores(ctx context.Context, cfg *config.Config) (Stores, *redis.Client, error) {
	if !cfg.UseRedis() {
		return NewMemoryStores(), nil, nil
	}

	opt := RedisOptions{
		URL:    cfg.Redis.URL,
		Token:  cfg.Redis.Token,
		DialTO: cfg.Redis.DialTimeout,
		PingTO: cfg.Redis.PingTimeout,
	}
	client, err := newRedisClient(opt)
	if err != nil {
		return Stores{}, nil, err
	}
	stores := NewRedisStores(client, cfg.App.Name)
	return stores, client, pingRedis(ctx, client, opt.PingTO)
}
