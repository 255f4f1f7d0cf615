package main

import (
	"context"
	"testing"
	"time"

	convsvc "github.com/primeweb/site/internal/service/conversation"
)

func TestCleanupDeactivatesIdle(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC)
	store := convsvc.NewMemoryStore()
	_ = store.Create(ctx, &convsvc.Conversation{ID: "stale", Active: true, UpdatedAt: now.Add(-48 * time.Hour)})
	_ = store.Create(ctx, &convsvc.Conversation{ID: "recent", Active: true, UpdatedAt: now.Add(-time.Hour)})

	n, err := cleanup(ctx, store, 24*time.Hour, now)
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 deactivated, got %d", n)
	}
	if c, _ := store.Get(ctx, "recent"); !c.Active {
		t.Fatal("recent conversation must stay active")
	}
}

func TestCleanupRejectsNonPositiveIdle(t *testing.T) {
	if _, err := cleanup(context.Background(), convsvc.NewMemoryStore(), 0, time.Now()); err == nil {
		t.Fatal("expected error")
	}
}
