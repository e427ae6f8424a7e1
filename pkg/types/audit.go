package types

import "time"

// Audit actions recorded for officer and admin operations.
const (
	AuditApproveSubmission = "APPROVE_SUBMISSION"
	AuditRejectSubmission  = "REJECT_SUBMISSION"
	AuditFlagSubmission    = "FLAG_SUBMISSION"
	AuditFieldVisit        = "SCHEDULE_FIELD_VISIT"
	AuditReviewSubmission  = "REVIEW_SUBMISSION"
	AuditImportData        = "IMPORT_DATA"
)

var validAuditActions = map[string]bool{
	AuditApproveSubmission: true,
	AuditRejectSubmission:  true,
	AuditFlagSubmission:    true,
	AuditFieldVisit:        true,
	AuditReviewSubmission:  true,
	AuditImportData:        true,
}

// AuditEntry is one line of the audit log: who did what to which record.
type AuditEntry struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Action    string `json:"action"`
	User      string `json:"user"`
	Target    string `json:"target"`
	Details   string `json:"details,omitempty"`
	IPAddress string `json:"ipAddress,omitempty"`
}

// ReviewAction returns the audit action for moving a submission to status.
func ReviewAction(status string) string {
	switch status {
	case SubmissionApproved:
		return AuditApproveSubmission
	case SubmissionRejected:
		return AuditRejectSubmission
	case SubmissionFlagged:
		return AuditFlagSubmission
	case SubmissionFieldVisit:
		return AuditFieldVisit
	default:
		return AuditReviewSubmission
	}
}

// Validate checks the action, actor, target and RFC 3339 timestamp.
func (e *AuditEntry) Validate() error {
	if !validAuditActions[e.Action] {
		return ErrInvalidState
	}
	if e.User == "" || e.Target == "" {
		return ErrInvalidName
	}
	if _, err := time.Parse(time.RFC3339, e.Timestamp); err != nil {
		return ErrInvalidTimestamp
	}
	return nil
}
