package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vibe-directory/vibe-backend/internal/logging"
	"github.com/vibe-directory/vibe-backend/internal/metrics"
	"github.com/vibe-directory/vibe-backend/internal/projects/domain"
	"github.com/vibe-directory/vibe-backend/internal/projects/repository"
)

// ApprovalNotifier is told when a hidden project becomes visible.
type ApprovalNotifier interface {
	ProjectApproved(ctx context.Context, project domain.Project) error
}

// ProjectService handles project-related business logic
type ProjectService struct {
	repo     repository.Repository
	notifier ApprovalNotifier
	log      logrus.FieldLogger
	now      func() time.Time
}

// NewProjectService creates a new project service. notifier may be nil.
func NewProjectService(repo repository.Repository, notifier ApprovalNotifier, log logrus.FieldLogger) *ProjectService {
	return &ProjectService{
		repo:     repo,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// GetAll returns the collection in storage order, newest first. Hidden
// projects are dropped unless includeHidden is set. A store failure yields an
// empty list so the directory stays browsable.
func (s *ProjectService) GetAll(ctx context.Context, includeHidden bool) []domain.Project {
	projects, err := s.repo.List(ctx)
	if err != nil {
		logging.FromContext(ctx, s.log).WithError(err).Warn("project store unavailable, serving empty directory")
		return []domain.Project{}
	}
	if includeHidden {
		return projects
	}
	return domain.Visible(projects)
}

// GetByID scans GetAll for id.
func (s *ProjectService) GetByID(ctx context.Context, id string, includeHidden bool) (*domain.Project, error) {
	for _, p := range s.GetAll(ctx, includeHidden) {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.ErrProjectNotFound
}

// Add assigns a fresh id, fills createdAt and the flag defaults, and
// prepends the project.
func (s *ProjectService) Add(ctx context.Context, p domain.Project) (*domain.Project, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	p.ID = uuid.NewString()
	if p.CreatedAt == "" {
		p.CreatedAt = s.now().UTC().Format(domain.TimestampLayout)
	}
	if p.Displayed == nil {
		p.Displayed = domain.Bool(true)
	}
	if p.Featured == nil {
		p.Featured = domain.Bool(false)
	}

	err := s.repo.Mutate(ctx, func(projects []domain.Project) ([]domain.Project, error) {
		return append([]domain.Project{p}, projects...), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add project: %w", err)
	}

	metrics.ProjectMutationsTotal.WithLabelValues("add").Inc()
	s.log.WithFields(logrus.Fields{
		"project_id": p.ID,
		"displayed":  p.IsDisplayed(),
	}).Info("project added")

	return &p, nil
}

// Update merges patch into the stored project. When the merge takes the
// project from hidden to shown, the approval notifier runs after the write
// has been persisted; its failures are logged only.
func (s *ProjectService) Update(ctx context.Context, id string, patch domain.Patch) (*domain.Project, error) {
	var before, after domain.Project

	err := s.repo.Mutate(ctx, func(projects []domain.Project) ([]domain.Project, error) {
		idx := indexOf(projects, id)
		if idx < 0 {
			return nil, domain.ErrProjectNotFound
		}

		before = projects[idx]
		after = patch.Apply(before)
		if err := after.Validate(); err != nil {
			return nil, err
		}

		projects[idx] = after
		return projects, nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) || errors.Is(err, domain.ErrInvalidProject) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	metrics.ProjectMutationsTotal.WithLabelValues("update").Inc()

	if !before.IsDisplayed() && after.IsDisplayed() {
		s.notifyApproved(ctx, after)
	}

	return &after, nil
}

// Delete removes the project permanently. It reports false when no project
// has that id.
func (s *ProjectService) Delete(ctx context.Context, id string) (bool, error) {
	err := s.repo.Mutate(ctx, func(projects []domain.Project) ([]domain.Project, error) {
		idx := indexOf(projects, id)
		if idx < 0 {
			return nil, domain.ErrProjectNotFound
		}
		return append(projects[:idx], projects[idx+1:]...), nil
	})
	if errors.Is(err, domain.ErrProjectNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to delete project: %w", err)
	}

	metrics.ProjectMutationsTotal.WithLabelValues("delete").Inc()
	s.log.WithField("project_id", id).Info("project deleted")
	return true, nil
}

func (s *ProjectService) notifyApproved(ctx context.Context, p domain.Project) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.ProjectApproved(ctx, p); err != nil {
		logging.FromContext(ctx, s.log).WithError(err).WithField("project_id", p.ID).Warn("approval notification failed")
	}
}

func indexOf(projects []domain.Project, id string) int {
	for i, p := range projects {
		if p.ID == id {
			return i
		}
	}
	return -1
}
