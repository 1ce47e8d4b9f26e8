package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibe-directory/vibe-backend/internal/projects/domain"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	// Test connection
	err = client.Ping(context.Background()).Err()
	require.NoError(t, err)

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return client, mr
}

func prepend(p domain.Project) MutateFunc {
	return func(projects []domain.Project) ([]domain.Project, error) {
		return append([]domain.Project{p}, projects...), nil
	}
}

// repositories runs the shared contract against both implementations.
func repositories(t *testing.T) map[string]Repository {
	client, _ := setupTestRedis(t)
	return map[string]Repository{
		"redis":  NewRedisRepository(client),
		"memory": NewMemoryRepository(),
	}
}

func TestRepository_EmptyListIsNotNil(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			projects, err := repo.List(context.Background())
			require.NoError(t, err)
			assert.NotNil(t, projects)
			assert.Empty(t, projects)
		})
	}
}

func TestRepository_MutatePersistsInOrder(t *testing.T) {
	ctx := context.Background()
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, repo.Mutate(ctx, prepend(domain.Project{ID: "old", Title: "Old"})))
			require.NoError(t, repo.Mutate(ctx, prepend(domain.Project{ID: "new", Title: "New", Displayed: domain.Bool(false)})))

			projects, err := repo.List(ctx)
			require.NoError(t, err)
			require.Len(t, projects, 2)
			assert.Equal(t, "new", projects[0].ID)
			assert.Equal(t, "old", projects[1].ID)
			assert.False(t, projects[0].IsDisplayed())
			assert.Nil(t, projects[1].Displayed)
		})
	}
}

func TestRepository_MutateErrorAbortsWrite(t *testing.T) {
	ctx := context.Background()
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, repo.Mutate(ctx, prepend(domain.Project{ID: "keep"})))

			err := repo.Mutate(ctx, func([]domain.Project) ([]domain.Project, error) {
				return nil, domain.ErrProjectNotFound
			})
			assert.ErrorIs(t, err, domain.ErrProjectNotFound)

			projects, err := repo.List(ctx)
			require.NoError(t, err)
			require.Len(t, projects, 1)
			assert.Equal(t, "keep", projects[0].ID)
		})
	}
}

func TestRedisRepository_StoresVersionedEnvelope(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewRedisRepository(client)

	require.NoError(t, repo.Mutate(context.Background(), prepend(domain.Project{ID: "x", Title: "X"})))

	raw, err := mr.Get(ProjectsKey)
	require.NoError(t, err)
	assert.Contains(t, raw, `"version":1`)
	assert.Contains(t, raw, `"id":"x"`)
}

func TestRedisRepository_RejectsLegacyValue(t *testing.T) {
	client, mr := setupTestRedis(t)
	require.NoError(t, mr.Set(ProjectsKey, `[{"id":"1","title":"Legacy"}]`))

	_, err := NewRedisRepository(client).List(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnsupportedVersion))
}

func TestRedisRepository_RetriesWhenKeyChanges(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewRedisRepository(client)
	ctx := context.Background()

	other := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer other.Close()
	otherRepo := NewRedisRepository(other)

	calls := 0
	err := repo.Mutate(ctx, func(projects []domain.Project) ([]domain.Project, error) {
		calls++
		if calls == 1 {
			// A second writer lands between our read and our write.
			require.NoError(t, otherRepo.Mutate(ctx, prepend(domain.Project{ID: "theirs"})))
		}
		return append([]domain.Project{{ID: "ours"}}, projects...), nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	projects, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "ours", projects[0].ID)
	assert.Equal(t, "theirs", projects[1].ID)
}

func TestRedisRepository_GivesUpAfterRepeatedConflicts(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewRedisRepository(client)
	ctx := context.Background()

	other := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer other.Close()
	otherRepo := NewRedisRepository(other)

	calls := 0
	err := repo.Mutate(ctx, func(projects []domain.Project) ([]domain.Project, error) {
		calls++
		require.NoError(t, otherRepo.Mutate(ctx, prepend(domain.Project{ID: "noise"})))
		return projects, nil
	})
	assert.ErrorIs(t, err, domain.ErrWriteConflict)
	assert.Equal(t, maxMutateAttempts, calls)
}

func TestRedisRepository_StoreDown(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	repo := NewRedisRepository(client)
	_, err = repo.List(context.Background())
	assert.Error(t, err)

	err = repo.Mutate(context.Background(), prepend(domain.Project{ID: "lost"}))
	assert.Error(t, err)
}

func TestMemoryRepository_ReadsDoNotAlias(t *testing.T) {
	repo := NewMemoryRepository(domain.Project{ID: "1", Title: "Original"})
	ctx := context.Background()

	projects, err := repo.List(ctx)
	require.NoError(t, err)
	projects[0].Title = "Changed by caller"

	again, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Original", again[0].Title)
}

func TestFallbackProjects_AreValidAndUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, p := range FallbackProjects() {
		assert.NoError(t, p.Validate(), p.ID)
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
	}
}

func TestRedisRepository_StoreDownIsSentinel(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewRedisRepository(client)
	mr.Close()

	_, err := repo.List(context.Background())
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	err = repo.Mutate(context.Background(), prepend(domain.Project{ID: "x"}))
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
