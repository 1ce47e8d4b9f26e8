package repository

import (
	"context"
	"sync"

	"github.com/vibe-directory/vibe-backend/internal/projects/domain"
)

// MemoryRepository is the in-process Repository used when no key-value
// store is configured. It keeps the encoded form so reads never alias
// stored records.
type MemoryRepository struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryRepository creates a repository holding seed in storage order.
func NewMemoryRepository(seed ...domain.Project) *MemoryRepository {
	data, err := domain.EncodeCollection(seed)
	if err != nil {
		// Project only holds JSON-safe fields.
		panic(err)
	}
	return &MemoryRepository{data: data}
}

func (r *MemoryRepository) List(ctx context.Context) ([]domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return domain.DecodeCollection(r.data)
}

func (r *MemoryRepository) Mutate(ctx context.Context, fn MutateFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	projects, err := domain.DecodeCollection(r.data)
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
	r.data = data
	return nil
}
