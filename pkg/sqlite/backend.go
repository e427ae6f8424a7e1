// Package sqlite provides the public API for the SQLite record store.
// It exposes the factory while keeping implementation details internal.
package sqlite

import (
	"go.uber.org/zap"

	"github.com/mesh-intelligence/loantrack/internal/sqlite"
	"github.com/mesh-intelligence/loantrack/pkg/types"
)

// Option configures a backend created by NewBackend.
type Option = sqlite.Option

// WithLogger routes the backend's load, flush and seed events to l.
func WithLogger(l *zap.Logger) Option { return sqlite.WithLogger(l) }

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	store := sqlite.NewBackend()
//	err := store.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: "./data",
//	})
//	defer store.Detach()
func NewBackend(opts ...Option) types.Store {
	return sqlite.NewBackend(opts...)
}

// Seed loads the demo dataset into every empty collection of store.
func Seed(store types.Store, log *zap.Logger) (map[string]int, error) {
	return sqlite.Seed(store, log)
}
