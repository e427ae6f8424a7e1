package sqlite

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/mesh-intelligence/loantrack/pkg/types"
)

// fieldName restricts filter keys to plain identifiers, which keeps them safe
// to splice into a JSON path.
var fieldName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// buildFetchQuery translates a filter into SQL over the records table.
//
// Field values match as follows: a string, number or bool by equality, a
// []string by membership, and nil by absence (or JSON null). The reserved
// keys limit and offset page through the result in insertion order.
func buildFetchQuery(collection string, filter types.Filter) (string, []any, error) {
	var (
		where = []string{"collection = ?"}
		args  = []any{collection}
	)

	keys := make([]string, 0, len(filter))
	for k := range filter {
		if k == types.FilterLimit || k == types.FilterOffset {
			continue
		}
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		if !fieldName.MatchString(k) {
			return "", nil, fmt.Errorf("%w: field %q", types.ErrInvalidFilter, k)
		}
		path := "$." + k
		switch v := filter[k].(type) {
		case nil:
			where = append(where, "(json_type(body, ?) IS NULL OR json_type(body, ?) = 'null')")
			args = append(args, path, path)
		case []string:
			if len(v) == 0 {
				where = append(where, "0")
				continue
			}
			marks := strings.TrimSuffix(strings.Repeat("?, ", len(v)), ", ")
			where = append(where, "json_extract(body, ?) IN ("+marks+")")
			args = append(args, path)
			for _, s := range v {
				args = append(args, s)
			}
		case bool:
			where = append(where, "json_extract(body, ?) = ?")
			args = append(args, path, boolInt(v))
		case string, int, int32, int64, float32, float64:
			where = append(where, "json_extract(body, ?) = ?")
			args = append(args, path, v)
		default:
			return "", nil, fmt.Errorf("%w: unsupported value %T for %q", types.ErrInvalidFilter, v, k)
		}
	}

	limit, err := filterInt(filter, types.FilterLimit, -1)
	if err != nil {
		return "", nil, err
	}
	offset, err := filterInt(filter, types.FilterOffset, 0)
	if err != nil {
		return "", nil, err
	}

	query := "SELECT body FROM records WHERE " + strings.Join(where, " AND ") +
		" ORDER BY seq LIMIT ? OFFSET ?"
	args = append(args, limit, offset)
	return query, args, nil
}

// filterInt reads a non-negative integer under key, or def when absent.
func filterInt(filter types.Filter, key string, def int) (int, error) {
	raw, ok := filter[key]
	if !ok {
		return def, nil
	}
	var n int
	switch v := raw.(type) {
	case int:
		n = v
	case int64:
		n = int(v)
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("%w: %s must be an integer", types.ErrInvalidFilter, key)
		}
		n = int(v)
	default:
		return 0, fmt.Errorf("%w: %s must be an integer, got %T", types.ErrInvalidFilter, key, raw)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %s must not be negative", types.ErrInvalidFilter, key)
	}
	return n, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
