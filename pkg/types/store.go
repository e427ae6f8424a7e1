package types

import "errors"

// Store defines the interface for backend-agnostic storage access.
// Callers attach to a backend, access collections by name, and detach when done.
type Store interface {
	// GetTable returns the Table for the given collection name.
	// Returns ErrTableNotFound if the name is not a standard collection.
	GetTable(name string) (Table, error)

	// Attach connects the Store to the backend described by config.
	// Creates the DataDir if it does not exist. Returns ErrAlreadyAttached
	// if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, GetTable returns ErrStoreDetached.
	Detach() error
}

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
	ErrTableNotFound   = errors.New("table not found")
)
