package types

// Beneficiary is a loan recipient registered in a district.
type Beneficiary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	District     string `json:"district,omitempty"`
	State        string `json:"state,omitempty"`
	Status       string `json:"status,omitempty"`
	LoansCount   int    `json:"loansCount"`
	TotalAmount  int64  `json:"totalAmount"`
	RegisteredOn string `json:"registeredOn,omitempty"`
}

// Validate checks required fields.
func (b *Beneficiary) Validate() error {
	if b.Name == "" {
		return ErrInvalidName
	}
	if b.Status != "" && !validAccountStatuses[b.Status] {
		return ErrInvalidState
	}
	if b.LoansCount < 0 || b.TotalAmount < 0 {
		return ErrInvalidAmount
	}
	return nil
}
