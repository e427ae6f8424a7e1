package types

// Import job statuses.
const (
	ImportProcessing = "Processing"
	ImportCompleted  = "Completed"
	ImportFailed     = "Failed"
)

var validImportStatuses = map[string]bool{
	ImportProcessing: true,
	ImportCompleted:  true,
	ImportFailed:     true,
}

// ImportJob records one bulk file import into a collection.
type ImportJob struct {
	ID                string `json:"id"`
	Type              string `json:"type"`
	FileName          string `json:"fileName"`
	UploadedOn        string `json:"uploadedOn"`
	Status            string `json:"status"`
	TotalRecords      int    `json:"totalRecords"`
	SuccessfulRecords int    `json:"successfulRecords"`
	ErrorRecords      int    `json:"errorRecords"`
	UploadedBy        string `json:"uploadedBy,omitempty"`
	Message           string `json:"message,omitempty"`
}

// Validate checks the status and that the counts add up.
func (j *ImportJob) Validate() error {
	if j.FileName == "" {
		return ErrInvalidName
	}
	if !validImportStatuses[j.Status] {
		return ErrInvalidState
	}
	if j.TotalRecords < 0 || j.SuccessfulRecords < 0 || j.ErrorRecords < 0 {
		return ErrInvalidAmount
	}
	if j.SuccessfulRecords+j.ErrorRecords != j.TotalRecords {
		return ErrInvalidAmount
	}
	return nil
}
