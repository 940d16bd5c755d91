// Package sqlite provides the public API for the SQLite slot store.
// This package exposes the factory function for creating SQLite backends
// while keeping implementation details internal.
package sqlite

import (
	"go.uber.org/zap"

	"github.com/mesh-intelligence/tweetbox/internal/sqlite"
	"github.com/mesh-intelligence/tweetbox/pkg/types"
)

// NewBackend creates a new SQLite slot store. The store is not attached;
// call Attach with a Config to initialize. A nil logger discards output.
//
// Example:
//
//	store := sqlite.NewBackend(nil)
//	err := store.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".tweetbox-db",
//	})
//	defer store.Detach()
func NewBackend(logger *zap.Logger) types.Store {
	if logger == nil {
		return sqlite.NewBackend()
	}
	return sqlite.NewBackend(sqlite.WithLogger(logger))
}
