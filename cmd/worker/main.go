package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/vibe-directory/vibe-backend/config"
	"github.com/vibe-directory/vibe-backend/internal/bootstrap"
	"github.com/vibe-directory/vibe-backend/internal/logging"
)

const usage = "usage: worker <check-store|seed|set-prompt <projectID> <file>|migrate-legacy>"

func main() {
	if len(os.Args) < 2 {
		logrus.Fatal(usage)
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}
	log := logging.New(cfg.App.LogLevel, cfg.App.Environment)

	if !cfg.UseRedis() {
		log.Fatal("REDIS_URL is required for worker commands")
	}

	ctx := context.Background()
	client, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
		URL:    cfg.Redis.URL,
		Token:  cfg.Redis.Token,
		DialTO: cfg.Redis.DialTimeout,
		PingTO: cfg.Redis.PingTimeout,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to connect to redis")
	}
	defer client.Close()

	switch os.Args[1] {
	case "check-store":
		err = RunCheckStore(ctx, client, log)
	case "seed":
		err = RunSeed(ctx, client, log)
	case "set-prompt":
		if len(os.Args) < 4 {
			log.Fatal("usage: worker set-prompt <projectID> <file>")
		}
		err = RunSetPrompt(ctx, client, os.Args[2], os.Args[3], log)
	case "migrate-legacy":
		err = RunMigrateLegacy(ctx, client, log)
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}

	if err != nil {
		log.WithError(err).WithField("command", os.Args[1]).Fatal("command failed")
	}
}
