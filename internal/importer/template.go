package importer

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/mesh-intelligence/loantrack/internal/sheet"
	"github.com/mesh-intelligence/loantrack/pkg/types"
)

// templates lists the header row an import file for each collection needs.
var templates = map[string][]string{
	types.TableUsers:         {"Name", "Email", "Role", "District"},
	types.TableBeneficiaries: {"Name", "Email", "Phone", "District", "State"},
	types.TableLoans:         {"Beneficiary ID", "Scheme", "Amount", "Sanctioned Date"},
	types.TableSubmissions:   {"Beneficiary ID", "Loan ID", "Item", "Amount"},
}

// defaults fill fields an import file may leave out.
var defaults = map[string]types.Record{
	types.TableUsers:         {"status": types.StatusActive},
	types.TableBeneficiaries: {"status": types.StatusActive},
	types.TableLoans:         {"status": types.LoanActive},
	types.TableSubmissions:   {"status": types.SubmissionPending},
}

// Template returns the header row for collection's import file.
func Template(collection string) ([]string, error) {
	h, ok := templates[collection]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotImportable, collection)
	}
	return append([]string(nil), h...), nil
}

// WriteTemplate writes an empty import file for collection in format.
func WriteTemplate(w io.Writer, collection string, format sheet.Format) error {
	header, err := Template(collection)
	if err != nil {
		return err
	}
	if format == sheet.FormatXLSX {
		return sheet.WriteRecordsXLSX(w, collection, header, nil)
	}
	return sheet.WriteRecordsCSV(w, header, nil)
}

// HeaderKey maps a header cell to a record field: "Beneficiary ID" becomes
// "beneficiaryId" and "Sanctioned Date" becomes "sanctionedDate". Headers
// that are already field names pass through.
func HeaderKey(header string) string {
	words := strings.FieldsFunc(header, func(r rune) bool {
		return r == ' ' || r == '_' || r == '-'
	})
	var b strings.Builder
	for i, w := range words {
		runes := []rune(w)
		allUpper := strings.ToUpper(w) == w
		switch {
		case i == 0 && allUpper:
			b.WriteString(strings.ToLower(w))
		case i == 0:
			b.WriteRune(unicode.ToLower(runes[0]))
			b.WriteString(string(runes[1:]))
		default:
			b.WriteRune(unicode.ToUpper(runes[0]))
			rest := string(runes[1:])
			if allUpper {
				rest = strings.ToLower(rest)
			}
			b.WriteString(rest)
		}
	}
	return b.String()
}

// normalizeRow renames header keys to field keys and applies defaults.
func normalizeRow(collection string, row types.Record) types.Record {
	out := make(types.Record, len(row))
	for k, v := range defaults[collection] {
		out[k] = v
	}
	for k, v := range row {
		key := HeaderKey(k)
		// Numeric ids stay text so "1001" and 1001 name the same record.
		if key == types.KeyField {
			v = fmt.Sprint(v)
		}
		out[key] = v
	}
	return out
}

// collectionLabel is the job type shown in import history.
func collectionLabel(collection string) string {
	if collection == "" {
		return ""
	}
	return strings.ToUpper(collection[:1]) + collection[1:]
}
