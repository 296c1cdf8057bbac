// Package store holds the backing stores fragment code is fetched from.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Fetch when no fragment has the requested id.
var ErrNotFound = errors.New("no such fragment")

// Store is a keyed lookup of fragment code. Implementations are safe for
// concurrent use.
type Store interface {
	Fetch(ctx context.Context, id uint64) (string, error)
}

// Writer is a Store that also accepts new or replacement fragments.
type Writer interface {
	Store
	Put(ctx context.Context, id uint64, code string) error
}

// Open builds a store from a DSN: "memory:", "sqlite:<path>" or "dir:<path>".
// Stores holding resources implement io.Closer.
func Open(dsn string) (Store, error) {
	scheme, rest, ok := strings.Cut(dsn, ":")
	if !ok {
		return nil, fmt.Errorf("store %q: missing scheme (memory:, sqlite:, dir:)", dsn)
	}
	switch scheme {
	case "memory":
		return NewMemory(), nil
	case "sqlite":
		if rest == "" {
			return nil, fmt.Errorf("store %q: missing database path", dsn)
		}
		return OpenSQLite(rest)
	case "dir":
		if rest == "" {
			return nil, fmt.Errorf("store %q: missing directory", dsn)
		}
		return NewDir(rest)
	default:
		return nil, fmt.Errorf("store %q: unknown scheme %q", dsn, scheme)
	}
}
