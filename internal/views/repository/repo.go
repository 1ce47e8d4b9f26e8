// Package repository stores per-user view sets and per-project view counters.
package repository

import "context"

// Repository records unique (user, project) views.
type Repository interface {
	// MarkViewed adds projectIDs to the user's set and bumps the counter of
	// each project that was not already in it. It returns how many were new.
	MarkViewed(ctx context.Context, userID string, projectIDs ...string) (int, error)
	Viewed(ctx context.Context, userID string) ([]string, error)
	HasViewed(ctx context.Context, userID, projectID string) (bool, error)
	ViewedCount(ctx context.Context, userID string) (int64, error)
	// ProjectViewCounts returns a count for every requested id, zero when unseen.
	ProjectViewCounts(ctx context.Context, projectIDs ...string) (map[string]int64, error)
}
