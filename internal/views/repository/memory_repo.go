package repository

import (
	"context"
	"sort"
	"sync"
)

type MemoryRepository struct {
	mu     sync.RWMutex
	views  map[string]map[string]struct{}
	counts map[string]int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		views:  make(map[string]map[string]struct{}),
		counts: make(map[string]int64),
	}
}

func (r *MemoryRepository) MarkViewed(ctx context.Context, userID string, projectIDs ...string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.views[userID]
	if !ok {
		set = make(map[string]struct{})
		r.views[userID] = set
	}

	added := 0
	for _, id := range projectIDs {
		if _, seen := set[id]; seen {
			continue
		}
		set[id] = struct{}{}
		r.counts[id]++
		added++
	}
	return added, nil
}

// Viewed returns ids sorted; Redis set order is unspecified anyway.
func (r *MemoryRepository) Viewed(ctx context.Context, userID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.views[userID]))
	for id := range r.views[userID] {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

func (r *MemoryRepository) HasViewed(ctx context.Context, userID, projectID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.views[userID][projectID]
	return ok, nil
}

func (r *MemoryRepository) ViewedCount(ctx context.Context, userID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.views[userID])), nil
}

func (r *MemoryRepository) ProjectViewCounts(ctx context.Context, projectIDs ...string) (map[string]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]int64, len(projectIDs))
	for _, id := range projectIDs {
		out[id] = r.counts[id]
	}
	return out, nil
}
