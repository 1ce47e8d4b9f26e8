package http

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/vibe-directory/vibe-backend/internal/projects/service"
)

// AuthorResolver fills in submission metadata from a wallet address or a
// social ID. ok is false when nothing is known.
type AuthorResolver interface {
	ResolveAuthor(ctx context.Context, address string) (name string, fid int64, ok bool)
	NameByFID(ctx context.Context, fid int64) (name string, ok bool)
}

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	svc      *service.ProjectService
	resolver AuthorResolver
	log      logrus.FieldLogger
}

// New builds the handler. resolver may be nil.
func New(svc *service.ProjectService, resolver AuthorResolver, log logrus.FieldLogger) *Handler {
	return &Handler{svc: svc, resolver: resolver, log: log}
}
