package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/loantrack/pkg/types"
)

func TestNewBackendRoundTrip(t *testing.T) {
	store := NewBackend(WithLogger(zap.NewNop()))
	require.NoError(t, store.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	defer store.Detach()

	seeded, err := Seed(store, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, seeded[types.TableSubmissions])

	subs, err := store.GetTable(types.TableSubmissions)
	require.NoError(t, err)
	got, err := subs.Get("SUB-2024-004")
	require.NoError(t, err)
	assert.Equal(t, "MacBook Pro 14-inch", got["item"])
}
