package storage

import (
	"context"
	"errors"
)

// ErrNotFound indicates a key does not exist or has expired.
var ErrNotFound = errors.New("record not found")

// KV is the durable key-value storage that backs visitor sessions.
// Keys live inside a namespace; the portal uses the visitor session id as the namespace.
type KV interface {
	Get(ctx context.Context, namespace, key string) (string, error)
	Set(ctx context.Context, namespace, key, value string) error
	Delete(ctx context.Context, namespace string, keys ...string) error
}
