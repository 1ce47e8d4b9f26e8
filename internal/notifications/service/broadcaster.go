// Package service fans frame notifications out to every registered token.
package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vibe-directory/vibe-backend/internal/metrics"
	"github.com/vibe-directory/vibe-backend/internal/notifications/domain"
	"github.com/vibe-directory/vibe-backend/internal/notifications/repository"
	projectdomain "github.com/vibe-directory/vibe-backend/internal/projects/domain"
)

const approvedTitle = "New Project Added! 🚀"

// Sender delivers a single notification.
type Sender interface {
	Send(ctx context.Context, details domain.Details, title, body string) (domain.Result, error)
}

// Broadcaster sends one message to every registered token.
type Broadcaster struct {
	tokens      repository.TokenRepository
	sender      Sender
	log         logrus.FieldLogger
	concurrency int
}

func NewBroadcaster(tokens repository.TokenRepository, sender Sender, concurrency int, log logrus.FieldLogger) *Broadcaster {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Broadcaster{tokens: tokens, sender: sender, log: log, concurrency: concurrency}
}

// Broadcast makes exactly one delivery attempt per registered token. Delivery
// failures are counted, never returned; the error is for a failed token listing.
// Tokens the provider reports invalid are removed.
func (b *Broadcaster) Broadcast(ctx context.Context, title, body string) (domain.Stats, error) {
	regs, err := b.tokens.List(ctx)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("failed to list notification tokens: %w", err)
	}

	var (
		mu    sync.Mutex
		stats = domain.Stats{Total: len(regs)}
	)

	g := new(errgroup.Group)
	g.SetLimit(b.concurrency)

	for _, reg := range regs {
		reg := reg
		g.Go(func() error {
			result := b.deliver(ctx, reg, title, body)

			mu.Lock()
			if result == domain.ResultSuccess {
				stats.Successful++
			} else {
				stats.Failed++
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	b.log.WithFields(logrus.Fields{
		"total":      stats.Total,
		"successful": stats.Successful,
		"failed":     stats.Failed,
	}).Info("broadcast finished")

	return stats, nil
}

// NotifyUser sends to one fid's registered token. domain.ErrTokenNotFound
// means the user never enabled notifications.
func (b *Broadcaster) NotifyUser(ctx context.Context, fid int64, title, body string) (domain.Stats, error) {
	details, err := b.tokens.Get(ctx, fid)
	if err != nil {
		return domain.Stats{}, err
	}

	stats := domain.Stats{Total: 1}
	if b.deliver(ctx, domain.Registration{FID: fid, Details: *details}, title, body) == domain.ResultSuccess {
		stats.Successful = 1
	} else {
		stats.Failed = 1
	}
	return stats, nil
}

func (b *Broadcaster) deliver(ctx context.Context, reg domain.Registration, title, body string) domain.Result {
	result, err := b.sender.Send(ctx, reg.Details, title, body)
	if err != nil {
		result = domain.ResultError
		b.log.WithError(err).WithField("fid", reg.FID).Warn("frame notification failed")
	}
	metrics.NotificationsTotal.WithLabelValues(string(result)).Inc()

	if result == domain.ResultInvalidToken {
		if err := b.tokens.Delete(ctx, reg.FID); err != nil {
			b.log.WithError(err).WithField("fid", reg.FID).Warn("failed to drop invalid token")
		}
	}
	return result
}

// ProjectApproved announces a newly displayed project to everyone.
func (b *Broadcaster) ProjectApproved(ctx context.Context, p projectdomain.Project) error {
	body := fmt.Sprintf("Check out \"%s\" by %s", p.Title, p.Author)
	_, err := b.Broadcast(ctx, approvedTitle, body)
	return err
}
