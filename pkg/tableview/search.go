package tableview

import (
	"strings"

	"golang.org/x/text/cases"
)

// Search returns the records for which the string form of any field value
// contains term, ignoring case. Every field is searched, not only the
// displayed columns. An empty or whitespace-only term returns records
// unchanged. Values that do not stringify (see Stringify) never match.
// Matches keep their input order in a newly allocated slice.
func Search(records []Record, term string) []Record {
	if strings.TrimSpace(term) == "" {
		return records
	}

	fold := cases.Fold()
	needle := fold.String(term)

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if matches(r, needle, fold) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r Record, needle string, fold cases.Caser) bool {
	for _, v := range r {
		s, ok := Stringify(v)
		if !ok {
			continue
		}
		if strings.Contains(fold.String(s), needle) {
			return true
		}
	}
	return false
}
