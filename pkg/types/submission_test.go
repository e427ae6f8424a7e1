package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubmissionTransition(t *testing.T) {
	tests := []struct {
		name      string
		initial   string
		target    string
		wantErr   error
		wantState string
	}{
		{name: "pending to ai-review", initial: SubmissionPending, target: SubmissionAIReview, wantState: SubmissionAIReview},
		{name: "pending to approved", initial: SubmissionPending, target: SubmissionApproved, wantState: SubmissionApproved},
		{name: "ai-review to flagged", initial: SubmissionAIReview, target: SubmissionFlagged, wantState: SubmissionFlagged},
		{name: "flagged to field-visit", initial: SubmissionFlagged, target: SubmissionFieldVisit, wantState: SubmissionFieldVisit},
		{name: "field-visit to rejected", initial: SubmissionFieldVisit, target: SubmissionRejected, wantState: SubmissionRejected},
		{name: "ai-review back to pending fails", initial: SubmissionAIReview, target: SubmissionPending, wantErr: ErrInvalidTransition},
		{name: "flagged to ai-review fails", initial: SubmissionFlagged, target: SubmissionAIReview, wantErr: ErrInvalidTransition},
		{name: "approved is terminal", initial: SubmissionApproved, target: SubmissionRejected, wantErr: ErrInvalidTransition},
		{name: "rejected is terminal", initial: SubmissionRejected, target: SubmissionApproved, wantErr: ErrInvalidTransition},
		{name: "same state is not a transition", initial: SubmissionPending, target: SubmissionPending, wantErr: ErrInvalidTransition},
		{name: "unknown state rejected", initial: SubmissionPending, target: "archived", wantErr: ErrInvalidState},
		{name: "empty state rejected", initial: SubmissionPending, target: "", wantErr: ErrInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Submission{ID: "SUB-1", Item: "Laptop", Amount: 100, Status: tt.initial}

			err := s.Transition(tt.target)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.initial, s.Status, "state should not change on error")
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantState, s.Status)
		})
	}
}

func TestSubmissionReview(t *testing.T) {
	s := &Submission{ID: "SUB-2", Item: "Sewing machine", Amount: 15000, Status: SubmissionFlagged}

	assert.ErrorIs(t, s.Review(SubmissionApproved, ""), ErrInvalidName)
	assert.Equal(t, SubmissionFlagged, s.Status)

	assert.NoError(t, s.Review(SubmissionApproved, "Officer Sharma"))
	assert.Equal(t, SubmissionApproved, s.Status)
	assert.Equal(t, "Officer Sharma", s.ReviewedBy)
	assert.True(t, s.Terminal())
}

func TestSubmissionValidate(t *testing.T) {
	valid := Submission{Item: "Dell Laptop", Amount: 25000, Status: SubmissionPending, RiskLevel: RiskGreen}
	assert.NoError(t, valid.Validate())

	noItem := valid
	noItem.Item = ""
	assert.ErrorIs(t, noItem.Validate(), ErrInvalidName)

	zero := valid
	zero.Amount = 0
	assert.ErrorIs(t, zero.Validate(), ErrInvalidAmount)

	badState := valid
	badState.Status = "done"
	assert.ErrorIs(t, badState.Validate(), ErrInvalidState)

	badRisk := valid
	badRisk.RiskLevel = "purple"
	assert.ErrorIs(t, badRisk.Validate(), ErrInvalidRisk)
}
