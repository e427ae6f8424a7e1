package sqlite

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/loantrack/pkg/types"
)

// attach opens a backend over dir and detaches it when the test ends.
func attach(t *testing.T, dir string, sqlCfg *types.SQLiteConfig) *Backend {
	t.Helper()
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{
		Backend:      types.BackendSQLite,
		DataDir:      dir,
		SQLiteConfig: sqlCfg,
	}))
	t.Cleanup(func() { _ = b.Detach() })
	return b
}

func mustTable(t *testing.T, b *Backend, name string) types.Table {
	t.Helper()
	tbl, err := b.GetTable(name)
	require.NoError(t, err)
	return tbl
}

// jsonlLines returns the non-empty lines of a collection's JSONL file.
func jsonlLines(t *testing.T, dir, collection string) []string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, collection+".jsonl"))
	require.NoError(t, err)
	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func user(id, name, role string) types.Record {
	return types.Record{"id": id, "name": name, "role": role, "status": types.StatusActive}
}
