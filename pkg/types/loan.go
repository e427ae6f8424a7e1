package types

// Loan statuses.
const (
	LoanActive = "Active"
	LoanClosed = "Closed"
)

// Loan is a sanctioned amount under a scheme whose use the beneficiary
// must prove. Pending is always Amount minus Utilized.
type Loan struct {
	ID              string `json:"id"`
	BeneficiaryName string `json:"beneficiaryName"`
	BeneficiaryID   string `json:"beneficiaryId"`
	Scheme          string `json:"scheme"`
	Amount          int64  `json:"amount"`
	SanctionedDate  string `json:"sanctionedDate,omitempty"`
	DueDate         string `json:"dueDate,omitempty"`
	Status          string `json:"status,omitempty"`
	Utilized        int64  `json:"utilized"`
	Pending         int64  `json:"pending"`
	District        string `json:"district,omitempty"`
}

// Validate checks the amounts and recomputes Pending.
func (l *Loan) Validate() error {
	if l.BeneficiaryID == "" {
		return ErrInvalidName
	}
	if l.Amount <= 0 || l.Utilized < 0 {
		return ErrInvalidAmount
	}
	if l.Utilized > l.Amount {
		return ErrOverUtilized
	}
	l.Pending = l.Amount - l.Utilized
	return nil
}

// Utilize records an approved purchase against the loan.
// Returns ErrOverUtilized if the purchase exceeds the pending balance; the
// loan is unchanged on error.
func (l *Loan) Utilize(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > l.Amount-l.Utilized {
		return ErrOverUtilized
	}
	l.Utilized += amount
	l.Pending = l.Amount - l.Utilized
	return nil
}

// UtilizationPercent returns the share of the loan already utilized, 0-100.
func (l *Loan) UtilizationPercent() float64 {
	if l.Amount <= 0 {
		return 0
	}
	return float64(l.Utilized) * 100 / float64(l.Amount)
}
