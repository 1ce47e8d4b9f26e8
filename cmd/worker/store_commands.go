package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/vibe-directory/vibe-backend/internal/projects/domain"
	"github.com/vibe-directory/vibe-backend/internal/projects/repository"
)

// RunCheckStore round-trips a throwaway key.
func RunCheckStore(ctx context.Context, client *redis.Client, log logrus.FieldLogger) error {
	key := "test-key-" + strconv.FormatInt(time.Now().UnixMilli(), 10)
	const want = "connection successful"

	if err := client.Set(ctx, key, want, time.Minute).Err(); err != nil {
		return fmt.Errorf("set probe key: %w", err)
	}
	defer client.Del(ctx, key)

	got, err := client.Get(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("get probe key: %w", err)
	}
	if got != want {
		return fmt.Errorf("probe mismatch: expected %q, got %q", want, got)
	}

	log.WithField("key", key).Info("store is reachable and working")
	return nil
}

// RunSeed writes the fixture projects when the collection is empty.
func RunSeed(ctx context.Context, client *redis.Client, log logrus.FieldLogger) error {
	seeded := 0
	err := repository.NewRedisRepository(client).Mutate(ctx, func(projects []domain.Project) ([]domain.Project, error) {
		if len(projects) > 0 {
			return projects, nil
		}
		fixtures := repository.FallbackProjects()
		seeded = len(fixtures)
		return fixtures, nil
	})
	if err != nil {
		return err
	}

	if seeded == 0 {
		log.Info("collection not empty, nothing seeded")
	} else {
		log.WithField("count", seeded).Info("seeded fixture projects")
	}
	return nil
}

// RunSetPrompt replaces a project's prompt with the contents of path.
func RunSetPrompt(ctx context.Context, client *redis.Client, projectID, path string, log logrus.FieldLogger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read prompt: %w", err)
	}
	prompt := strings.TrimSpace(string(data))

	err = repository.NewRedisRepository(client).Mutate(ctx, func(projects []domain.Project) ([]domain.Project, error) {
		for i := range projects {
			if projects[i].ID == projectID {
				projects[i].Prompt = prompt
				return projects, nil
			}
		}
		return nil, domain.ErrProjectNotFound
	})
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{"project_id": projectID, "chars": len(prompt)}).Info("prompt updated")
	return nil
}

// RunMigrateLegacy rewrites a bare JSON array, or a JSON string holding
// one, into the versioned envelope. Already migrated values are left alone.
func RunMigrateLegacy(ctx context.Context, client *redis.Client, log logrus.FieldLogger) error {
	key := repository.ProjectsKey

	raw, err := client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		log.Info("no project collection stored, nothing to migrate")
		return nil
	}
	if err != nil {
		return fmt.Errorf("get projects: %w", err)
	}

	if _, err := domain.DecodeCollection(raw); err == nil {
		log.Info("collection already uses the versioned format")
		return nil
	}

	projects, err := decodeLegacy(raw)
	if err != nil {
		return err
	}

	data, err := domain.EncodeCollection(projects)
	if err != nil {
		return err
	}
	if err := client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("write migrated projects: %w", err)
	}

	log.WithField("count", len(projects)).Info("migrated legacy project collection")
	return nil
}

func decodeLegacy(raw []byte) ([]domain.Project, error) {
	var projects []domain.Project
	if err := json.Unmarshal(raw, &projects); err == nil {
		return projects, nil
	}

	var inner string
	if err := json.Unmarshal(raw, &inner); err != nil {
		return nil, fmt.Errorf("unrecognised project collection format")
	}
	if err := json.Unmarshal([]byte(inner), &projects); err != nil {
		return nil, fmt.Errorf("unrecognised project collection format: %w", err)
	}
	return projects, nil
}
