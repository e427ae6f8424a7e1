package types

import (
	"encoding/json"
	"fmt"
)

// KeyField is the identity field every collection declares.
const KeyField = "id"

// Record is one row of domain data: a mapping from field name to value.
// Values are strings, numbers, booleans, time.Time, or nil.
type Record map[string]any

// ID returns the record's identity as a string, or "" when absent.
func (r Record) ID() string {
	switch v := r[KeyField].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Decode copies the record's fields into the struct pointed to by v using
// the struct's json tags.
func (r Record) Decode(v any) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	return nil
}

// EncodeRecord converts a tagged struct into a Record.
func EncodeRecord(v any) (Record, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding %T: %w", v, err)
	}
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decoding %T: %w", v, err)
	}
	return r, nil
}
