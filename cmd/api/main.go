package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vibe-directory/vibe-backend/config"
	"github.com/vibe-directory/vibe-backend/internal/bootstrap"
	"github.com/vibe-directory/vibe-backend/internal/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}

	log := logging.New(cfg.App.LogLevel, cfg.App.Environment)
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, client, err := bootstrap.OpenStores(ctx, cfg)
	switch {
	case errors.Is(err, bootstrap.ErrStoreUnreachable):
		log.WithError(err).Warn("redis unreachable at startup, reads will degrade until it recovers")
	case err != nil:
		log.WithError(err).Fatal("failed to open store")
	}
	if client != nil {
		defer client.Close()
		log.Info("using redis stores")
	} else {
		log.Warn("REDIS_URL not set, using in-memory stores")
	}

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:        "vibe-backend",
		Version:            cfg.App.Version,
		AppURL:             cfg.App.URL,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		NeynarBaseURL:      cfg.Neynar.BaseURL,
		NeynarAPIKey:       cfg.Neynar.APIKey,
		SubmitPerMinute:    cfg.Limits.SubmitPerMinute,
		SubmitBurst:        cfg.Limits.SubmitBurst,
		NotifyConcurrency:  cfg.Limits.NotifyConcurrency,
		Stores:             stores,
		Log:                log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Server.Port).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("graceful shutdown failed")
		}
	case err := <-errChan:
		log.WithError(err).Fatal("server failed")
	}
}
