package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/mesh-intelligence/loantrack/internal/catalog"
	"github.com/mesh-intelligence/loantrack/internal/sqlite"
	"github.com/mesh-intelligence/loantrack/pkg/types"
)

// validTableNamesStr lists the collections for error output.
var validTableNamesStr = strings.Join(types.StandardTableNames, ", ")

// userErrors are table errors caused by the caller's input.
var userErrors = []error{
	types.ErrTableNotFound,
	types.ErrNotFound,
	types.ErrInvalidID,
	types.ErrInvalidData,
	types.ErrInvalidFilter,
}

// tableErr classifies an error from a Table operation.
func tableErr(context string, err error) error {
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return fmt.Errorf("%s: %w", context, err)
		}
	}
	return sysErr(context, err)
}

// openStore attaches a SQLite backend to the resolved data directory. The
// caller must call detach.
func (a *app) openStore() (*sqlite.Backend, error) {
	dataDir, err := a.dataDir()
	if err != nil {
		return nil, err
	}
	backend := sqlite.NewBackend(sqlite.WithLogger(a.log))
	if err := backend.Attach(a.settings.storeConfig(dataDir)); err != nil {
		if errors.Is(err, types.ErrSyncStrategyUnknown) || errors.Is(err, types.ErrBackendUnknown) {
			return nil, fmt.Errorf("config: %w", err)
		}
		return nil, sysErr("attach store", err)
	}
	return backend, nil
}

// detach releases the store, reporting a flush failure only when the
// command itself succeeded.
func detach(backend *sqlite.Backend, err *error) {
	if derr := backend.Detach(); derr != nil && *err == nil {
		*err = sysErr("detach store", derr)
	}
}

// collectionTable checks the collection name and returns its table.
func collectionTable(store types.Store, collection string) (types.Table, error) {
	if !types.IsStandardTable(collection) {
		return nil, fmt.Errorf("unknown collection %q (valid: %s): %w", collection, validTableNamesStr, types.ErrTableNotFound)
	}
	tbl, err := store.GetTable(collection)
	if err != nil {
		return nil, tableErr("get table", err)
	}
	return tbl, nil
}

// checkAccess rejects collections the active role may not use.
func (a *app) checkAccess(collection string) error {
	if !types.IsStandardTable(collection) {
		return fmt.Errorf("unknown collection %q (valid: %s): %w", collection, validTableNamesStr, types.ErrTableNotFound)
	}
	if !catalog.CanView(a.settings.Role, collection) {
		return fmt.Errorf("%w: %s cannot use %s", ErrForbidden, a.settings.Role, collection)
	}
	return nil
}

// checkWritable is checkAccess for commands that change or remove records.
func (a *app) checkWritable(collection string) error {
	if err := a.checkAccess(collection); err != nil {
		return err
	}
	if collection == types.TableAudit {
		return fmt.Errorf("%w: %s", ErrAppendOnly, collection)
	}
	return nil
}

// parseWhere turns key=value pairs into a Fetch filter. Values that parse as
// JSON (numbers, booleans, null) keep their type; anything else is a string.
func parseWhere(pairs []string) (types.Filter, error) {
	filter := types.Filter{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q (expected key=value)", types.ErrInvalidFilter, pair)
		}
		var parsed any
		if err := json.Unmarshal([]byte(value), &parsed); err != nil {
			parsed = value
		}
		switch parsed.(type) {
		case map[string]any, []any:
			parsed = value
		}
		filter[key] = parsed
	}
	return filter, nil
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysErr("marshal JSON", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
