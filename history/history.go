// Package history keeps the snapshots the operator saved.
package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/etnz/horizon"
)

// ErrNotFound is returned for a snapshot id the store does not hold.
var ErrNotFound = errors.New("snapshot not found")

// Store persists snapshots by id. Saving a snapshot with a known id replaces
// it. List returns the most recent snapshots first.
type Store interface {
	Save(ctx context.Context, s horizon.Snapshot) error
	List(ctx context.Context) ([]horizon.Snapshot, error)
	Get(ctx context.Context, id string) (horizon.Snapshot, error)
	Delete(ctx context.Context, id string) error
}

// Open returns the Postgres store when databaseURL is set, the file store at
// path otherwise.
func Open(ctx context.Context, path, databaseURL string) (Store, error) {
	if databaseURL != "" {
		return NewPGStore(ctx, databaseURL)
	}
	if path == "" {
		return nil, fmt.Errorf("no history file nor database configured")
	}
	return &FileStore{Path: path}, nil
}

// Import saves every snapshot into the store and returns how many were saved.
func Import(ctx context.Context, store Store, snapshots []horizon.Snapshot) (int, error) {
	for i, s := range snapshots {
		if err := store.Save(ctx, s); err != nil {
			return i, fmt.Errorf("could not import snapshot %q: %w", s.Name, err)
		}
	}
	return len(snapshots), nil
}

// Close releases the store resources, if it has any.
func Close(store Store) {
	if c, ok := store.(interface{ Close() }); ok {
		c.Close()
	}
}
