package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	httpapi "github.com/vibe-directory/vibe-backend/internal/api/http"
	"github.com/vibe-directory/vibe-backend/internal/api/http/middleware"
	attesthttp "github.com/vibe-directory/vibe-backend/internal/attestations/http"
	attestservice "github.com/vibe-directory/vibe-backend/internal/attestations/service"
	"github.com/vibe-directory/vibe-backend/internal/identity"
	identityhttp "github.com/vibe-directory/vibe-backend/internal/identity/http"
	"github.com/vibe-directory/vibe-backend/internal/manifest"
	"github.com/vibe-directory/vibe-backend/internal/metrics"
	notifhttp "github.com/vibe-directory/vibe-backend/internal/notifications/http"
	notifservice "github.com/vibe-directory/vibe-backend/internal/notifications/service"
	projecthttp "github.com/vibe-directory/vibe-backend/internal/projects/http"
	projectservice "github.com/vibe-directory/vibe-backend/internal/projects/service"
	viewhttp "github.com/vibe-directory/vibe-backend/internal/views/http"
	viewservice "github.com/vibe-directory/vibe-backend/internal/views/service"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	AppURL      string

	CORSAllowedOrigins []string

	NeynarBaseURL string
	NeynarAPIKey  string

	SubmitPerMinute   int
	SubmitBurst       int
	NotifyConcurrency int

	Stores Stores
	Log    logrus.FieldLogger

	// Sender overrides the frame notification client; tests use it.
	Sender notifservice.Sender
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(dep.Log))
	r.Use(middleware.Metrics())
	r.Use(cors.New(corsConfig(dep.CORSAllowedOrigins)))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Stores.Health)
	healthHandler.RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/.well-known/farcaster.json", manifest.Handler(dep.AppURL))

	sender := dep.Sender
	if sender == nil {
		sender = notifservice.NewFrameClient(dep.AppURL)
	}
	broadcaster := notifservice.NewBroadcaster(dep.Stores.Tokens, sender, dep.NotifyConcurrency, dep.Log)

	neynar := identity.NewNeynarClient(dep.NeynarBaseURL, dep.NeynarAPIKey)
	resolver := identity.NewResolver(neynar, dep.Log)

	projectSvc := projectservice.NewProjectService(dep.Stores.Projects, broadcaster, dep.Log)
	tracker := viewservice.NewTracker(dep.Stores.Views, dep.Log)
	attestSvc := attestservice.NewService(dep.Stores.Attestations, dep.Log)

	submitLimiter := middleware.NewRateLimiter(dep.SubmitPerMinute, dep.SubmitBurst, dep.Log)
	viewLimiter := middleware.NewRateLimiter(dep.SubmitPerMinute, dep.SubmitBurst, dep.Log)

	api := r.Group("/api")

	projecthttp.New(projectSvc, resolver, dep.Log).Register(api.Group("/projects"), submitLimiter.Handler())
	viewhttp.New(tracker).Register(api.Group("/project-views"), viewLimiter.Handler())
	notifhttp.New(broadcaster, dep.Stores.Tokens, dep.Stores.Notifications, dep.Log).Register(api)
	identityhttp.New(neynar, dep.Log).Register(api.Group("/farcaster"))
	attesthttp.New(attestSvc).Register(api.Group("/attestations"))

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
