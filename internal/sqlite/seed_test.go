package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/loantrack/pkg/types"
)

func TestSeedFillsEmptyCollections(t *testing.T) {
	b := attach(t, t.TempDir(), nil)

	seeded, err := Seed(b, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		types.TableUsers:         3,
		types.TableBeneficiaries: 5,
		types.TableLoans:         5,
		types.TableSubmissions:   5,
		types.TableImports:       3,
		types.TableAudit:         2,
	}, seeded)

	loan, err := mustTable(t, b, types.TableLoans).Get("LN-2024-001234")
	require.NoError(t, err)
	assert.Equal(t, float64(15000), loan["pending"])

	again, err := Seed(b, nil)
	require.NoError(t, err)
	assert.Empty(t, again, "seeding is idempotent")
}

func TestSeedSkipsPopulatedCollections(t *testing.T) {
	b := attach(t, t.TempDir(), nil)
	_, err := mustTable(t, b, types.TableUsers).Set("", user("USR-100", "Existing", types.RoleAdmin))
	require.NoError(t, err)

	seeded, err := Seed(b, nil)
	require.NoError(t, err)
	assert.NotContains(t, seeded, types.TableUsers)

	users, err := mustTable(t, b, types.TableUsers).Fetch(nil)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestDemoDataIsValid(t *testing.T) {
	for collection, entities := range demoData {
		for _, e := range entities {
			rec, err := types.EncodeRecord(e)
			require.NoError(t, err)
			_, err = types.NormalizeRecord(collection, rec)
			assert.NoError(t, err, "%s/%s", collection, rec.ID())
		}
	}
}
