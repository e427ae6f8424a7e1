package types

// Standard collection names for Store.GetTable.
const (
	TableUsers         = "users"
	TableBeneficiaries = "beneficiaries"
	TableLoans         = "loans"
	TableSubmissions   = "submissions"
	TableImports       = "imports"
	TableAudit         = "audit"
)

// StandardTableNames lists all standard collection names for enumeration.
var StandardTableNames = []string{
	TableUsers,
	TableBeneficiaries,
	TableLoans,
	TableSubmissions,
	TableImports,
	TableAudit,
}

// IsStandardTable reports whether name is one of the standard collections.
func IsStandardTable(name string) bool {
	for _, n := range StandardTableNames {
		if n == name {
			return true
		}
	}
	return false
}
