package identity

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

// Resolver turns wallet addresses into display names for submissions.
type Resolver struct {
	client *NeynarClient
	log    logrus.FieldLogger
}

func NewResolver(client *NeynarClient, log logrus.FieldLogger) *Resolver {
	return &Resolver{client: client, log: log}
}

// ResolveAuthor is best effort; any failure reports ok=false.
func (r *Resolver) ResolveAuthor(ctx context.Context, address string) (string, int64, bool) {
	p, err := r.client.UserByAddress(ctx, address)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) && !errors.Is(err, ErrNotConfigured) {
			r.log.WithError(err).WithField("address", address).Warn("farcaster lookup failed")
		}
		return "", 0, false
	}

	name := preferredName(p)
	if name == "" {
		return "", 0, false
	}
	return name, p.FID, true
}

// NameByFID resolves a social ID. Placeholder profiles report ok=false.
func (r *Resolver) NameByFID(ctx context.Context, fid int64) (string, bool) {
	p, err := r.client.UserByFID(ctx, fid)
	if err != nil || !p.Found {
		return "", false
	}
	return preferredName(p), preferredName(p) != ""
}

func preferredName(p *Profile) string {
	if p.Username != "" {
		return p.Username
	}
	return p.DisplayName
}
