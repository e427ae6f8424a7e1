package cli

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/loantrack/pkg/types"
)

func (e *testEnv) summaryJSON(args ...string) summary {
	e.t.Helper()
	out := e.mustRun(append([]string{"summary", "--json"}, args...)...)
	var s summary
	require.NoError(e.t, json.Unmarshal([]byte(out), &s), out)
	return s
}

func TestSummaryAdmin(t *testing.T) {
	env := seededEnv(t)
	got := env.summaryJSON()

	want := summary{
		Submissions: &submissionSummary{
			Total:  5,
			Amount: 188000,
			ByStatus: map[string]int{
				types.SubmissionFlagged:  1,
				types.SubmissionAIReview: 3,
				types.SubmissionPending:  1,
			},
			ByRisk:      map[string]int{types.RiskRed: 1, types.RiskAmber: 2, types.RiskGreen: 2},
			FlaggedRate: 20,
		},
		Loans: &loanSummary{
			Total: 5, Active: 4,
			Amount: 435000, Utilized: 210000, Pending: 225000,
			Utilization: 48.3,
		},
		Beneficiaries: &tally{Total: 5, By: map[string]int{types.StatusActive: 4, types.StatusInactive: 1}},
		Users:         &tally{Total: 3, By: map[string]int{types.RoleOfficer: 2, types.RoleAdmin: 1}},
		Imports:       &tally{Total: 3, By: map[string]int{types.ImportCompleted: 2, types.ImportFailed: 1}},
		Audit: &tally{Total: 2, By: map[string]int{
			types.AuditApproveSubmission: 1,
			types.AuditRejectSubmission:  1,
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}

	out := env.mustRun("summary")
	assert.Contains(t, out, "₹1,88,000")
	assert.Contains(t, out, "AI Review")
	assert.Contains(t, out, "Medium Risk")
	assert.Contains(t, out, "Flagged Rate")
	assert.Contains(t, out, "₹4,35,000")
	assert.Contains(t, out, "48.3%")
	assert.Contains(t, out, "APPROVE_SUBMISSION")
}

func TestSummaryFollowsReviews(t *testing.T) {
	env := seededEnv(t)
	env.mustRun("review", "SUB-2024-004", "approved", "--by", "Officer Sharma")

	got := env.summaryJSON()
	assert.Equal(t, 1, got.Submissions.ByStatus[types.SubmissionApproved])
	assert.Equal(t, int64(305000), got.Loans.Utilized)
	assert.Equal(t, 70.1, got.Loans.Utilization)
	assert.Equal(t, 3, got.Audit.Total)
}

func TestSummaryRoles(t *testing.T) {
	env := seededEnv(t)

	ben := env.summaryJSON("--role", "beneficiary", "--beneficiary", "BEN-2024-5678")
	require.NotNil(t, ben.Loans)
	assert.Equal(t, 1, ben.Loans.Total)
	assert.Equal(t, int64(15000), ben.Loans.Pending)
	assert.Equal(t, 70.0, ben.Loans.Utilization)
	require.NotNil(t, ben.Submissions)
	assert.Equal(t, 1, ben.Submissions.Total)
	assert.Equal(t, 100.0, ben.Submissions.FlaggedRate)
	assert.Nil(t, ben.Users)
	assert.Nil(t, ben.Audit)

	officer := env.summaryJSON("--role", "officer")
	assert.Nil(t, officer.Loans)
	assert.Nil(t, officer.Users)
	assert.Nil(t, officer.Imports)
	require.NotNil(t, officer.Audit)
	assert.Equal(t, 2, officer.Audit.Total)
	assert.Equal(t, 5, officer.Beneficiaries.Total)

	none := env.summaryJSON("--beneficiary", "BEN-0000")
	assert.Zero(t, none.Loans.Utilization)
	assert.Zero(t, none.Submissions.FlaggedRate)
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0.0, percent(5, 0))
	assert.Equal(t, 33.3, percent(1, 3))
	assert.Equal(t, 66.7, percent(2, 3))
	assert.Equal(t, 100.0, percent(7, 7))
}
