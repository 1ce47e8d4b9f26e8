package repository

import (
	"context"

	"github.com/vibe-directory/vibe-backend/internal/projects/domain"
)

// MutateFunc receives the current collection and returns the one to persist.
// Returning an error aborts the write. It may run more than once when a
// concurrent writer wins the race, so it must not have side effects.
type MutateFunc func(projects []domain.Project) ([]domain.Project, error)

// Repository stores the whole project collection as one value.
type Repository interface {
	// List returns the collection in storage order.
	List(ctx context.Context) ([]domain.Project, error)
	// Mutate performs a guarded read-modify-write of the collection.
	Mutate(ctx context.Context, fn MutateFunc) error
}
