package types

// User roles. The role decides which collections a user works with.
const (
	RoleBeneficiary = "beneficiary"
	RoleOfficer     = "officer"
	RoleAdmin       = "admin"
)

// Account statuses shared by users and beneficiaries.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

var validRoles = map[string]bool{
	RoleBeneficiary: true,
	RoleOfficer:     true,
	RoleAdmin:       true,
}

var validAccountStatuses = map[string]bool{
	StatusActive:   true,
	StatusInactive: true,
}

// IsValidRole reports whether role is a recognized user role.
func IsValidRole(role string) bool {
	return validRoles[role]
}

// User is a staff or beneficiary login.
type User struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email,omitempty"`
	Role               string `json:"role"`
	Status             string `json:"status,omitempty"`
	District           string `json:"district,omitempty"`
	LastLogin          string `json:"lastLogin,omitempty"`
	SubmissionsHandled int    `json:"submissionsHandled"`
}

// Validate checks required fields and enumerations.
func (u *User) Validate() error {
	if u.Name == "" {
		return ErrInvalidName
	}
	if !validRoles[u.Role] {
		return ErrInvalidRole
	}
	if u.Status != "" && !validAccountStatuses[u.Status] {
		return ErrInvalidState
	}
	return nil
}
