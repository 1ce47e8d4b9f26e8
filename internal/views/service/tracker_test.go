package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vibe-directory/vibe-backend/internal/logging"
	"github.com/vibe-directory/vibe-backend/internal/views/repository"
)

type downRepository struct{}

var errDown = errors.New("connection refused")

func (downRepository) MarkViewed(context.Context, string, ...string) (int, error) { return 0, errDown }
func (downRepository) Viewed(context.Context, string) ([]string, error)          { return nil, errDown }
func (downRepository) HasViewed(context.Context, string, string) (bool, error)   { return false, errDown }
func (downRepository) ViewedCount(context.Context, string) (int64, error)        { return 0, errDown }
func (downRepository) ProjectViewCounts(context.Context, ...string) (map[string]int64, error) {
	return nil, errDown
}

func TestTracker_RepeatedViewCountsOnce(t *testing.T) {
	tr := NewTracker(repository.NewMemoryRepository(), logging.Discard())
	ctx := context.Background()

	assert.True(t, tr.MarkViewed(ctx, "u", "p"))
	assert.True(t, tr.HasViewed(ctx, "u", "p"))
	assert.True(t, tr.MarkViewed(ctx, "u", "p"))
	assert.True(t, tr.HasViewed(ctx, "u", "p"))

	assert.Equal(t, int64(1), tr.ProjectViewCount(ctx, "p"))
	assert.Equal(t, int64(1), tr.ViewCount(ctx, "u"))
	assert.Equal(t, []string{"p"}, tr.ListViewed(ctx, "u"))
}

func TestTracker_Batch(t *testing.T) {
	tr := NewTracker(repository.NewMemoryRepository(), logging.Discard())
	ctx := context.Background()

	assert.False(t, tr.MarkViewedBatch(ctx, "u", nil))
	assert.True(t, tr.MarkViewed(ctx, "u", "a"))
	assert.True(t, tr.MarkViewedBatch(ctx, "u", []string{"a", "b"}))

	assert.Equal(t, map[string]int64{"a": 1, "b": 1}, tr.ProjectViewCounts(ctx, []string{"a", "b"}))
}

func TestTracker_StoreDownDegrades(t *testing.T) {
	tr := NewTracker(downRepository{}, logging.Discard())
	ctx := context.Background()

	assert.False(t, tr.MarkViewed(ctx, "u", "p"))
	assert.False(t, tr.MarkViewedBatch(ctx, "u", []string{"p"}))
	assert.False(t, tr.HasViewed(ctx, "u", "p"))
	assert.Equal(t, []string{}, tr.ListViewed(ctx, "u"))
	assert.Zero(t, tr.ViewCount(ctx, "u"))
	assert.Zero(t, tr.ProjectViewCount(ctx, "p"))
	assert.Empty(t, tr.ProjectViewCounts(ctx, []string{"p"}))
}
