package tableview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSearch(t *testing.T) {
	records := []Record{
		{"id": "LN-1", "name": "Rajesh Kumar", "district": "Bangalore Urban", "amount": 50000},
		{"id": "LN-2", "name": "Priya Sharma", "district": "Mumbai", "amount": 75000},
		{"id": "LN-3", "name": "Amit Patel", "district": "Mumbai", "note": nil},
	}

	tests := []struct {
		name string
		term string
		want []string
	}{
		{name: "empty term returns all", term: "", want: []string{"LN-1", "LN-2", "LN-3"}},
		{name: "whitespace term returns all", term: "   \t", want: []string{"LN-1", "LN-2", "LN-3"}},
		{name: "case-insensitive", term: "MUMBAI", want: []string{"LN-2", "LN-3"}},
		{name: "substring of name", term: "sharm", want: []string{"LN-2"}},
		{name: "numbers are searched as text", term: "7500", want: []string{"LN-2"}},
		{name: "fields outside columns are searched", term: "urban", want: []string{"LN-1"}},
		{name: "nil never matches its text", term: "nil", want: []string{}},
		{name: "no match", term: "zzz", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Search(records, tt.term)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestSearchIdempotent(t *testing.T) {
	records := numbered(30)
	once := Search(records, "rec-1")
	twice := Search(once, "rec-1")
	assert.Equal(t, ids(once), ids(twice))
	assert.Len(t, once, 10)
}

func TestSearchEmptyIsIdentity(t *testing.T) {
	records := numbered(5)
	got := Search(records, "")
	assert.Equal(t, ids(records), ids(got))
}

func TestSearchUnstringifiableValues(t *testing.T) {
	var nilPtr *time.Time
	records := []Record{
		{"id": "a", "fn": func() {}, "ch": make(chan int), "ptr": nilPtr},
	}
	assert.NotPanics(t, func() {
		assert.Empty(t, Search(records, "func"))
		assert.Empty(t, Search(records, "0x"))
	})
	assert.Len(t, Search(records, "A"), 1, "id still matches")
}

func TestSearchTimes(t *testing.T) {
	records := []Record{
		{"id": "1", "at": time.Date(2024, 1, 20, 10, 30, 0, 0, time.UTC)},
		{"id": "2", "at": time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
	}
	assert.Equal(t, []string{"1"}, ids(Search(records, "2024-01-20")))
}

func TestSearchDoesNotMutateInput(t *testing.T) {
	records := numbered(3)
	before := ids(records)
	_ = Search(records, "rec-02")
	assert.Equal(t, before, ids(records))
}
