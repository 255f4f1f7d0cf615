// Command migrate is a Lambda that creates or updates the conversations table.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/primeweb/site/internal/platform/config"
	"github.com/primeweb/site/internal/platform/database"
	applog "github.com/primeweb/site/internal/platform/logging"
	convsvc "github.com/primeweb/site/internal/service/conversation"
)

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

	if err := convsvc.NewPostgresStore(db).Migrate(); err != nil {
		applog.LogError(ctx, "migration failed", err)
		return err
	}
	applog.LogInfo(ctx, "conversations table migrated")
	return nil
}

func main() {
	lambda.Start(handler)
}
