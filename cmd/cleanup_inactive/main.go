// Command cleanup_inactive is a scheduled Lambda that deactivates wizard
// conversations nobody has touched for chat.max_idle.
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/primeweb/site/internal/platform/config"
	"github.com/primeweb/site/internal/platform/database"
	applog "github.com/primeweb/site/internal/platform/logging"
	convsvc "github.com/primeweb/site/internal/service/conversation"
)

type idleDeactivator interface {
	DeactivateIdle(ctx context.Context, cutoff time.Time) (int, error)
}

func cleanup(ctx context.Context, store idleDeactivator, maxIdle time.Duration, now time.Time) (int, error) {
	if maxIdle <= 0 {
		return 0, errors.New("chat.max_idle must be positive")
	}
	cutoff := now.Add(-maxIdle)
	n, err := store.DeactivateIdle(ctx, cutoff)
	if err != nil {
		return n, err
	}
	applog.LogInfo(ctx, "inactive conversations cleaned up",
		zap.Int("deactivated", n),
		zap.Time("cutoff", cutoff),
	)
	return n, nil
}

func handler(ctx context.Context, _ events.CloudWatchEvent) error {
	cfg, err := config.Load(os.Getenv("PRIMEWEB_CONFIG"))
	if err != nil {
		return err
	}
	if cfg.Postgres.DSN == "" {
		return errors.New("postgres.dsn is required")
	}
	db, err := database.Open(cfg.Postgres.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = cleanup(ctx, convsvc.NewPostgresStore(db), cfg.Chat.MaxIdle, time.Now())
	return err
}

func main() {
	lambda.Start(handler)
}
