package redis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/hongminglow/labubu-portal/internal/storage"
)

// TestStoreIntegration exercises the store against a live Redis.
func TestStoreIntegration(t *testing.T) {
	if os.Getenv("RUN_REDIS_INTEGRATION") != "true" {
		t.Skip("set RUN_REDIS_INTEGRATION=true to run this integration test")
	}
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	ctx := context.Background()
	s, err := NewStore(ctx, addr, os.Getenv("REDIS_PASSWORD"), time.Minute)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	defer s.Close()

	ns := fmt.Sprintf("it_%d", time.Now().UnixNano())
	if err := s.Set(ctx, ns, "auth_token", "tok"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := s.Get(ctx, ns, "auth_token")
	if err != nil || got != "tok" {
		t.Fatalf("get = %q, %v", got, err)
	}
	full := s.key(ns, "auth_token")
	if err := s.client.Expire(ctx, full, 5*time.Second).Err(); err != nil {
		t.Fatalf("shorten ttl: %v", err)
	}
	if _, err := s.Get(ctx, ns, "auth_token"); err != nil {
		t.Fatalf("get after shorten: %v", err)
	}
	if ttl := s.client.TTL(ctx, full).Val(); ttl < 30*time.Second {
		t.Fatalf("ttl after read = %v, want it refreshed to about a minute", ttl)
	}
	if err := s.Delete(ctx, ns, "auth_token"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, ns, "auth_token"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
