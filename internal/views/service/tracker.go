// Package service exposes view tracking as an engagement metric: store
// failures are logged and reported as false or zero, never as errors.
package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/vibe-directory/vibe-backend/internal/logging"
	"github.com/vibe-directory/vibe-backend/internal/metrics"
	"github.com/vibe-directory/vibe-backend/internal/views/repository"
)

type Tracker struct {
	repo repository.Repository
	log  logrus.FieldLogger
}

func NewTracker(repo repository.Repository, log logrus.FieldLogger) *Tracker {
	return &Tracker{repo: repo, log: log}
}

// MarkViewed records a view. Repeating it for the same pair is a no-op that
// still reports true.
func (t *Tracker) MarkViewed(ctx context.Context, userID, projectID string) bool {
	return t.mark(ctx, userID, projectID)
}

// MarkViewedBatch records several views at once. An empty list reports false.
func (t *Tracker) MarkViewedBatch(ctx context.Context, userID string, projectIDs []string) bool {
	if len(projectIDs) == 0 {
		return false
	}
	return t.mark(ctx, userID, projectIDs...)
}

func (t *Tracker) mark(ctx context.Context, userID string, projectIDs ...string) bool {
	added, err := t.repo.MarkViewed(ctx, userID, projectIDs...)
	if err != nil {
		logging.FromContext(ctx, t.log).WithError(err).WithFields(logrus.Fields{
			"user_id":  userID,
			"projects": len(projectIDs),
		}).Warn("failed to track project view")
		return false
	}
	metrics.ProjectViewsRecordedTotal.Add(float64(added))
	return true
}

func (t *Tracker) HasViewed(ctx context.Context, userID, projectID string) bool {
	ok, err := t.repo.HasViewed(ctx, userID, projectID)
	if err != nil {
		t.warn(ctx, err, "has_viewed")
		return false
	}
	return ok
}

func (t *Tracker) ListViewed(ctx context.Context, userID string) []string {
	ids, err := t.repo.Viewed(ctx, userID)
	if err != nil {
		t.warn(ctx, err, "list_viewed")
		return []string{}
	}
	if ids == nil {
		return []string{}
	}
	return ids
}

func (t *Tracker) ViewCount(ctx context.Context, userID string) int64 {
	n, err := t.repo.ViewedCount(ctx, userID)
	if err != nil {
		t.warn(ctx, err, "view_count")
		return 0
	}
	return n
}

func (t *Tracker) ProjectViewCount(ctx context.Context, projectID string) int64 {
	return t.ProjectViewCounts(ctx, []string{projectID})[projectID]
}

// ProjectViewCounts returns an empty map when the store is unavailable.
func (t *Tracker) ProjectViewCounts(ctx context.Context, projectIDs []string) map[string]int64 {
	if len(projectIDs) == 0 {
		return map[string]int64{}
	}
	counts, err := t.repo.ProjectViewCounts(ctx, projectIDs...)
	if err != nil {
		t.warn(ctx, err, "project_view_counts")
		return map[string]int64{}
	}
	return counts
}

func (t *Tracker) warn(ctx context.Context, err error, op string) {
	logging.FromContext(ctx, t.log).WithError(err).WithField("op", op).Warn("view store unavailable")
}
