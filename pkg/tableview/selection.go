package tableview

import (
	"fmt"
	"slices"
)

// SelectionPolicy decides whether selected rows survive view changes.
type SelectionPolicy int

const (
	// SelectionPersist keeps the selection across search, sort and page
	// changes. A row hidden by a search is still selected when the search
	// is cleared.
	SelectionPersist SelectionPolicy = iota

	// SelectionPageScoped clears the selection whenever the search term or
	// the current page changes, so only rows on screen can be selected.
	SelectionPageScoped
)

// String returns the policy name used in configuration.
func (p SelectionPolicy) String() string {
	if p == SelectionPageScoped {
		return "page"
	}
	return "persist"
}

// ParseSelectionPolicy accepts "persist" (or "") and "page".
func ParseSelectionPolicy(s string) (SelectionPolicy, error) {
	switch s {
	case "", "persist":
		return SelectionPersist, nil
	case "page":
		return SelectionPageScoped, nil
	default:
		return SelectionPersist, fmt.Errorf("unknown selection policy %q", s)
	}
}

// Selection is an immutable set of record identities in the order they were
// selected. The zero value is an empty selection. Methods that change the
// set return a new Selection and leave the receiver untouched.
type Selection struct {
	order []string
	set   map[string]struct{}
}

// NewSelection returns a selection holding keys. Duplicates are ignored.
func NewSelection(keys ...string) Selection {
	return Selection{}.with(keys...)
}

// Len returns the number of selected keys.
func (s Selection) Len() int { return len(s.order) }

// Has reports whether key is selected.
func (s Selection) Has(key string) bool {
	_, ok := s.set[key]
	return ok
}

// Keys returns the selected keys in selection order.
func (s Selection) Keys() []string { return slices.Clone(s.order) }

// RowKey returns the identity of row under keyField.
// Returns ErrMissingKey if the field is absent, nil or empty.
func RowKey(row Record, keyField string) (string, error) {
	k, ok := Stringify(row[keyField])
	if !ok || k == "" {
		return "", fmt.Errorf("%w: %q", ErrMissingKey, keyField)
	}
	return k, nil
}

// Toggle adds row's identity if absent and removes it if present.
// Returns ErrMissingKey, and the unchanged selection, if row has no identity.
func (s Selection) Toggle(row Record, keyField string) (Selection, error) {
	k, err := RowKey(row, keyField)
	if err != nil {
		return s, err
	}
	if s.Has(k) {
		return s.without(map[string]struct{}{k: {}}), nil
	}
	return s.with(k), nil
}

// ToggleAll clears every visible row from the selection when all of them are
// already selected, and otherwise adds every visible row. Rows outside
// visible are never removed. Returns ErrMissingKey, and the unchanged
// selection, if any visible row has no identity.
func (s Selection) ToggleAll(visible []Record, keyField string) (Selection, error) {
	keys := make([]string, 0, len(visible))
	for _, row := range visible {
		k, err := RowKey(row, keyField)
		if err != nil {
			return s, err
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return s, nil
	}

	all := true
	for _, k := range keys {
		if !s.Has(k) {
			all = false
			break
		}
	}
	if !all {
		return s.with(keys...), nil
	}
	drop := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		drop[k] = struct{}{}
	}
	return s.without(drop), nil
}

// AllSelected reports whether visible is non-empty and every row in it is
// selected.
func (s Selection) AllSelected(visible []Record, keyField string) bool {
	if len(visible) == 0 {
		return false
	}
	for _, row := range visible {
		k, err := RowKey(row, keyField)
		if err != nil || !s.Has(k) {
			return false
		}
	}
	return true
}

// Retain returns the selection restricted to identities present in records.
func (s Selection) Retain(records []Record, keyField string) Selection {
	if s.Len() == 0 {
		return s
	}
	present := make(map[string]struct{}, len(records))
	for _, r := range records {
		if k, err := RowKey(r, keyField); err == nil {
			present[k] = struct{}{}
		}
	}
	drop := make(map[string]struct{})
	for _, k := range s.order {
		if _, ok := present[k]; !ok {
			drop[k] = struct{}{}
		}
	}
	if len(drop) == 0 {
		return s
	}
	return s.without(drop)
}

// Rows returns the selected records in the order they appear in records.
func (s Selection) Rows(records []Record, keyField string) []Record {
	out := make([]Record, 0, s.Len())
	if s.Len() == 0 {
		return out
	}
	for _, r := range records {
		if k, err := RowKey(r, keyField); err == nil && s.Has(k) {
			out = append(out, r)
		}
	}
	return out
}

func (s Selection) with(keys ...string) Selection {
	next := Selection{
		order: slices.Clone(s.order),
		set:   make(map[string]struct{}, len(s.order)+len(keys)),
	}
	for _, k := range s.order {
		next.set[k] = struct{}{}
	}
	for _, k := range keys {
		if _, ok := next.set[k]; ok {
			continue
		}
		next.set[k] = struct{}{}
		next.order = append(next.order, k)
	}
	return next
}

func (s Selection) without(drop map[string]struct{}) Selection {
	next := Selection{set: make(map[string]struct{}, len(s.order))}
	for _, k := range s.order {
		if _, ok := drop[k]; ok {
			continue
		}
		next.set[k] = struct{}{}
		next.order = append(next.order, k)
	}
	return next
}
