// Package types defines the Store and Table interfaces, the loan-tracking
// entity types, and the standard errors shared by loantrack packages.
//
// Records are stored and listed as generic field maps (Record). The entity
// structs (User, Beneficiary, Loan, Submission, ImportJob) are typed views
// used for validation and state transitions.
package types
