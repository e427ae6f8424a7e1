package cli

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/loantrack/internal/sqlite"
	"github.com/mesh-intelligence/loantrack/pkg/types"
)

var errDiskFull = errors.New("disk full")

// failingStore fails every Set on one collection.
type failingStore struct {
	types.Store
	failOn string
}

func (s failingStore) GetTable(name string) (types.Table, error) {
	tbl, err := s.Store.GetTable(name)
	if err != nil || name != s.failOn {
		return tbl, err
	}
	return failingTable{tbl}, nil
}

type failingTable struct{ types.Table }

func (failingTable) Set(string, types.Record) (string, error) { return "", errDiskFull }

// seededBackend attaches a backend over a seeded data directory.
func seededBackend(t *testing.T) *sqlite.Backend {
	t.Helper()
	env := seededEnv(t)
	b := sqlite.NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: env.dataDir}))
	t.Cleanup(func() { _ = b.Detach() })
	return b
}

func fetchAll(t *testing.T, store types.Store, collection string) []types.Record {
	t.Helper()
	tbl, err := store.GetTable(collection)
	require.NoError(t, err)
	recs, err := tbl.Fetch(nil)
	require.NoError(t, err)
	return recs
}

func TestApplyReviewAudits(t *testing.T) {
	b := seededBackend(t)
	now := time.Date(2024, 1, 23, 8, 0, 0, 0, time.FixedZone("IST", 5*3600+1800))

	stored, err := applyReview(b, "SUB-2024-003", types.SubmissionApproved, "Officer Patel", now)
	require.NoError(t, err)
	assert.Equal(t, types.SubmissionApproved, stored["status"])

	entries := fetchAll(t, b, types.TableAudit)
	require.Len(t, entries, 3)
	last := entries[2]
	assert.Equal(t, types.AuditApproveSubmission, last["action"])
	assert.Equal(t, "Officer Patel", last["user"])
	assert.Equal(t, "SUB-2024-003", last["target"])
	assert.Equal(t, "2024-01-23T02:30:00Z", last["timestamp"])
	assert.Equal(t, "ai-review -> approved: Software License - Adobe Creative (₹15,000) charged to LN-2024-001236", last["details"])

	_, err = applyReview(b, "SUB-2024-002", types.SubmissionFlagged, "Officer Patel", now)
	require.NoError(t, err)
	entries = fetchAll(t, b, types.TableAudit)
	require.Len(t, entries, 4)
	assert.Equal(t, types.AuditFlagSubmission, entries[3]["action"])

	// A refused review leaves no trace.
	_, err = applyReview(b, "SUB-2024-005", types.SubmissionApproved, "Officer Patel", now)
	require.ErrorIs(t, err, types.ErrOverUtilized)
	assert.Len(t, fetchAll(t, b, types.TableAudit), 4)
}

func TestApplyReviewRestoresLoan(t *testing.T) {
	b := seededBackend(t)
	loans, err := b.GetTable(types.TableLoans)
	require.NoError(t, err)
	before, err := loans.Get("LN-2024-001237")
	require.NoError(t, err)

	store := failingStore{Store: b, failOn: types.TableSubmissions}
	_, err = applyReview(store, "SUB-2024-004", types.SubmissionApproved, "Officer Sharma", time.Now())
	require.ErrorIs(t, err, errDiskFull)
	assert.Equal(t, exitSysError, ExitCode(err))

	after, err := loans.Get("LN-2024-001237")
	require.NoError(t, err)
	assert.Equal(t, before, after, "the loan charge is undone")
	assert.Equal(t, float64(0), after["utilized"])

	subs, err := b.GetTable(types.TableSubmissions)
	require.NoError(t, err)
	sub, err := subs.Get("SUB-2024-004")
	require.NoError(t, err)
	assert.Equal(t, types.SubmissionPending, sub["status"])
	assert.Len(t, fetchAll(t, b, types.TableAudit), 2)
}

func TestApplyReviewAuditFailure(t *testing.T) {
	b := seededBackend(t)
	store := failingStore{Store: b, failOn: types.TableAudit}

	_, err := applyReview(store, "SUB-2024-002", types.SubmissionRejected, "Officer Patel", time.Now())
	require.ErrorIs(t, err, errDiskFull)
	assert.Contains(t, err.Error(), "record audit entry")
}
