package types

import "fmt"

// validator is implemented by every entity struct.
type validator interface {
	Validate() error
}

// newEntity returns an empty entity for the collection.
func newEntity(collection string) (validator, error) {
	switch collection {
	case TableUsers:
		return &User{}, nil
	case TableBeneficiaries:
		return &Beneficiary{}, nil
	case TableLoans:
		return &Loan{}, nil
	case TableSubmissions:
		return &Submission{}, nil
	case TableImports:
		return &ImportJob{}, nil
	case TableAudit:
		return &AuditEntry{}, nil
	default:
		return nil, ErrTableNotFound
	}
}

// NormalizeRecord validates r against the collection's entity type and
// returns a copy in which the entity's fields hold their canonical values
// (for example a loan's recomputed pending balance). Fields the entity does
// not know are kept as-is. Validation failures wrap ErrInvalidData.
func NormalizeRecord(collection string, r Record) (Record, error) {
	e, err := newEntity(collection)
	if err != nil {
		return nil, err
	}
	if err := r.Decode(e); err != nil {
		return nil, err
	}
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidData, collection, err)
	}
	canonical, err := EncodeRecord(e)
	if err != nil {
		return nil, err
	}
	out := r.Clone()
	for k, v := range canonical {
		out[k] = v
	}
	return out, nil
}
