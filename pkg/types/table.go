package types

import "errors"

// Filter selects records by top-level field equality. The reserved keys
// "limit" and "offset" (int) bound the result after ordering. A []string
// value matches any of its elements; a nil value matches absent fields.
type Filter map[string]any

// Reserved filter keys.
const (
	FilterLimit  = "limit"
	FilterOffset = "offset"
)

// Table provides uniform CRUD operations for a single collection.
type Table interface {
	// Get retrieves the record with the given ID.
	// Returns ErrNotFound if no record exists with that ID.
	Get(id string) (Record, error)

	// Set creates or updates a record. When id is empty the record's own
	// "id" field is used, or a new UUID v7 is generated. Returns the ID used.
	Set(id string, data Record) (string, error)

	// Delete removes the record with the given ID.
	// Returns ErrNotFound if no record exists with that ID.
	Delete(id string) error

	// Fetch returns all records matching the filter in insertion order.
	// An empty filter returns every record in the collection.
	Fetch(filter Filter) ([]Record, error)
}

// Table operation errors.
var (
	ErrNotFound      = errors.New("record not found")
	ErrInvalidID     = errors.New("invalid record ID")
	ErrInvalidData   = errors.New("invalid record data")
	ErrInvalidFilter = errors.New("invalid filter")
)

// Entity method errors.
var (
	ErrInvalidState      = errors.New("invalid state value")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrInvalidName       = errors.New("invalid name")
	ErrInvalidRole       = errors.New("invalid role")
	ErrInvalidRisk       = errors.New("invalid risk level")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrOverUtilized      = errors.New("utilization exceeds loan amount")
	ErrInvalidTimestamp  = errors.New("invalid timestamp")
)
