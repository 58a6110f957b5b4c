package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/hongminglow/labubu-portal/internal/storage"
)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New()

	if _, err := s.Get(ctx, "sid", "auth_token"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Set(ctx, "sid", "auth_token", "tok"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, err := s.Get(ctx, "sid", "auth_token"); err != nil || got != "tok" {
		t.Fatalf("get = %q, %v", got, err)
	}
	if _, err := s.Get(ctx, "other", "auth_token"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("namespaces must not leak, got %v", err)
	}
	if err := s.Delete(ctx, "sid", "auth_token", "user"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, "sid", "auth_token"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
