package tableview

import "fmt"

// numbered returns n records with ids "1".."n" and names "rec-01"...
func numbered(n int) []Record {
	out := make([]Record, n)
	for i := range out {
		out[i] = Record{
			"id":    fmt.Sprint(i + 1),
			"name":  fmt.Sprintf("rec-%02d", i+1),
			"order": i + 1,
		}
	}
	return out
}

// ids extracts the id field of each record.
func ids(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i], _ = Stringify(r["id"])
	}
	return out
}

// names extracts the name field of each record.
func names(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i], _ = r["name"].(string)
	}
	return out
}

func testColumns() []Column {
	return []Column{
		{Key: "id", Title: "ID", Sortable: true},
		{Key: "name", Title: "Name", Sortable: true, Filterable: true},
		{Key: "order", Title: "Order", Sortable: true},
		{Key: "amount", Title: "Amount", Sortable: true},
		{Key: "actions", Title: ""},
	}
}
