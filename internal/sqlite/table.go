package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/loantrack/pkg/types"
)

// Compile-time interface check.
var _ types.Table = (*table)(nil)

// table implements types.Table for one collection. Records are validated and
// normalized against the collection's entity type before they are stored.
type table struct {
	name    string
	backend *Backend
}

// newUUID generates a UUID v7 string.
func newUUID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generating UUID v7: %w", err)
	}
	return id.String(), nil
}

// Get retrieves a record by ID.
// Returns ErrInvalidID if id is empty, ErrNotFound if not found.
func (t *table) Get(id string) (types.Record, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	t.backend.mu.RLock()
	defer t.backend.mu.RUnlock()

	if !t.backend.attached {
		return nil, types.ErrStoreDetached
	}

	var body string
	err := t.backend.db.QueryRow(
		"SELECT body FROM records WHERE collection = ? AND record_id = ?", t.name, id,
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s/%s", types.ErrNotFound, t.name, id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting %s/%s: %w", t.name, id, err)
	}
	return decodeBody(body)
}

// Set creates or updates a record. An empty id takes the record's own "id"
// field, or a new UUID v7 when that is empty too. The stored record always
// carries the ID in its "id" field. Returns the ID used.
func (t *table) Set(id string, data types.Record) (string, error) {
	if data == nil {
		return "", types.ErrInvalidData
	}
	if id == "" {
		id = data.ID()
	}
	if id == "" {
		var err error
		if id, err = newUUID(); err != nil {
			return "", err
		}
	}

	rec := data.Clone()
	rec[types.KeyField] = id
	rec, err := types.NormalizeRecord(t.name, rec)
	if err != nil {
		return "", err
	}
	body, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("%w: %w", types.ErrInvalidData, err)
	}

	t.backend.mu.Lock()
	defer t.backend.mu.Unlock()

	if !t.backend.attached {
		return "", types.ErrStoreDetached
	}
	if _, err := t.backend.db.Exec(upsertSQL, t.name, id, t.name, string(body)); err != nil {
		return "", fmt.Errorf("persisting %s/%s: %w", t.name, id, err)
	}
	if err := t.backend.recordWrite(t.name); err != nil {
		return id, fmt.Errorf("writing %s: %w", t.name, err)
	}
	return id, nil
}

// Delete removes a record by ID.
// Returns ErrInvalidID if id is empty, ErrNotFound if not found.
func (t *table) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	t.backend.mu.Lock()
	defer t.backend.mu.Unlock()

	if !t.backend.attached {
		return types.ErrStoreDetached
	}
	res, err := t.backend.db.Exec(
		"DELETE FROM records WHERE collection = ? AND record_id = ?", t.name, id)
	if err != nil {
		return fmt.Errorf("deleting %s/%s: %w", t.name, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s/%s", types.ErrNotFound, t.name, id)
	}
	if err := t.backend.recordWrite(t.name); err != nil {
		return fmt.Errorf("writing %s: %w", t.name, err)
	}
	return nil
}

// Fetch returns the records matching filter in insertion order. An empty
// filter returns every record in the collection.
func (t *table) Fetch(filter types.Filter) ([]types.Record, error) {
	query, args, err := buildFetchQuery(t.name, filter)
	if err != nil {
		return nil, err
	}

	t.backend.mu.RLock()
	defer t.backend.mu.RUnlock()

	if !t.backend.attached {
		return nil, types.ErrStoreDetached
	}
	rows, err := t.backend.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", t.name, err)
	}
	defer rows.Close()

	out := []types.Record{}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", t.name, err)
		}
		rec, err := decodeBody(body)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func decodeBody(body string) (types.Record, error) {
	var rec types.Record
	if err := json.Unmarshal([]byte(body), &rec); err != nil {
		return nil, fmt.Errorf("decoding record: %w", err)
	}
	return rec, nil
}
