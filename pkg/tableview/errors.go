package tableview

import "errors"

// Configuration errors. Each is returned before any view state changes.
var (
	ErrInvalidPageSize = errors.New("page size must be positive")
	ErrUnknownColumn   = errors.New("unknown column")
	ErrNotSortable     = errors.New("column is not sortable")
	ErrMissingKey      = errors.New("record lacks the identity key")
	ErrNoKeyField      = errors.New("selectable table needs a key field")
	ErrDuplicateColumn = errors.New("duplicate column key")
	ErrNotSelectable   = errors.New("table is not selectable")
	ErrNotSearchable   = errors.New("table is not searchable")
	ErrRowOutOfRange   = errors.New("row index out of range")
)
