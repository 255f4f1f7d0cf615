package main

import (
	"context"
	"testing"

	"github.com/aws/aws-lambda-go/events"
)

func TestHandlerRequiresDSN(t *testing.T) {
	t.Setenv("PRIMEWEB_CONFIG", "")
	t.Setenv("PRIMEWEB_POSTGRES__DSN", "")
	if err := handler(context.Background(), events.CloudWatchEvent{}); err == nil {
		t.Fatal("expected error without a DSN")
	}
}
