package types

// Submission review states.
const (
	SubmissionPending    = "pending"
	SubmissionAIReview   = "ai-review"
	SubmissionFlagged    = "flagged"
	SubmissionApproved   = "approved"
	SubmissionRejected   = "rejected"
	SubmissionFieldVisit = "field-visit"
)

// Risk levels assigned by the automated review.
const (
	RiskGreen = "green"
	RiskAmber = "amber"
	RiskRed   = "red"
)

// submissionTransitions lists the allowed next states for each state.
// approved and rejected are terminal.
var submissionTransitions = map[string][]string{
	SubmissionPending:    {SubmissionAIReview, SubmissionFlagged, SubmissionApproved, SubmissionRejected, SubmissionFieldVisit},
	SubmissionAIReview:   {SubmissionFlagged, SubmissionApproved, SubmissionRejected, SubmissionFieldVisit},
	SubmissionFlagged:    {SubmissionFieldVisit, SubmissionApproved, SubmissionRejected},
	SubmissionFieldVisit: {SubmissionApproved, SubmissionRejected},
	SubmissionApproved:   nil,
	SubmissionRejected:   nil,
}

var validRiskLevels = map[string]bool{
	RiskGreen: true,
	RiskAmber: true,
	RiskRed:   true,
}

// IsValidSubmissionState reports whether s is a recognized review state.
func IsValidSubmissionState(s string) bool {
	_, ok := submissionTransitions[s]
	return ok
}

// Submission is a purchase proof filed by a beneficiary against a loan.
type Submission struct {
	ID              string  `json:"id"`
	BeneficiaryName string  `json:"beneficiaryName"`
	BeneficiaryID   string  `json:"beneficiaryId"`
	LoanID          string  `json:"loanId,omitempty"`
	Item            string  `json:"item"`
	Amount          int64   `json:"amount"`
	Status          string  `json:"status"`
	RiskLevel       string  `json:"riskLevel,omitempty"`
	RiskScore       float64 `json:"riskScore,omitempty"`
	SubmittedOn     string  `json:"submittedOn,omitempty"`
	ReviewedBy      string  `json:"reviewedBy,omitempty"`
	District        string  `json:"district,omitempty"`
}

// Validate checks required fields and enumerations.
func (s *Submission) Validate() error {
	if s.Item == "" {
		return ErrInvalidName
	}
	if s.Amount <= 0 {
		return ErrInvalidAmount
	}
	if !IsValidSubmissionState(s.Status) {
		return ErrInvalidState
	}
	if s.RiskLevel != "" && !validRiskLevels[s.RiskLevel] {
		return ErrInvalidRisk
	}
	return nil
}

// Terminal reports whether the submission can no longer change state.
func (s *Submission) Terminal() bool {
	return len(submissionTransitions[s.Status]) == 0
}

// Transition moves the submission to the given review state.
// Returns ErrInvalidState for an unknown state and ErrInvalidTransition if
// the move is not allowed from the current state.
func (s *Submission) Transition(to string) error {
	if !IsValidSubmissionState(to) {
		return ErrInvalidState
	}
	for _, next := range submissionTransitions[s.Status] {
		if next == to {
			s.Status = to
			return nil
		}
	}
	return ErrInvalidTransition
}

// Review applies an officer's decision and records the reviewer.
func (s *Submission) Review(to, reviewer string) error {
	if reviewer == "" {
		return ErrInvalidName
	}
	if err := s.Transition(to); err != nil {
		return err
	}
	s.ReviewedBy = reviewer
	return nil
}
