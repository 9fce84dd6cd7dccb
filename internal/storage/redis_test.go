package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupTestCache(t *testing.T) (*MenuCache, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewMenuCache(client, time.Minute), server
}

func TestMenuCache_MissThenHit(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	key := cache.Key(false)
	if key != "menu:available" {
		t.Fatalf("unexpected key: %s", key)
	}

	payload, err := cache.Get(ctx, key)
	if err != nil {
		t.Fatalf("expected no error on miss, got %v", err)
	}
	if payload != nil {
		t.Fatalf("expected nil payload on miss, got %q", payload)
	}

	if err := cache.Set(ctx, key, []byte(`[{"id":1}]`)); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	payload, err = cache.Get(ctx, key)
	if err != nil || string(payload) != `[{"id":1}]` {
		t.Fatalf("expected cached payload, got %q err=%v", payload, err)
	}
}

func TestMenuCache_InvalidateClearsBothKeys(t *testing.T) {
	cache, server := setupTestCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, cache.Key(false), []byte("a")); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := cache.Set(ctx, cache.Key(true), []byte("b")); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := cache.Invalidate(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if server.Exists("menu:available") || server.Exists("menu:all") {
		t.Fatal("expected both menu keys to be deleted")
	}
}
