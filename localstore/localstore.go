// Package localstore is the durable key-value storage behind the session
// stores, playing the role browser local storage plays for the web UI. Keys
// are namespaced per browser session; no two stores write the same key.
package localstore

import (
	"context"
	"errors"
)

// ErrNoValue is returned when a key has no stored value.
var ErrNoValue = errors.New("no value stored")

// KV is one session's slice of the local storage.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Store is the process-wide local storage.
type Store interface {
	// Namespace scopes all operations to one browser session.
	Namespace(sessionID string) KV
	// DropSession removes every key stored for the session.
	DropSession(ctx context.Context, sessionID string) error
	Close() error
}
