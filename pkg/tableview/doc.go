// Package tableview turns a slice of uniform records into a searched,
// sorted, paginated and optionally row-selectable view.
//
// Every stage is a pure function of its input: Search, Sort and Paginate
// never mutate the records they are given, and Derive never mutates the
// ViewState it is handed. Table wraps the pipeline in a caller-owned session
// with the usual interactions (typing a search term, clicking a column
// header, paging, ticking checkboxes).
//
// Ordering rules: numbers compare numerically, strings compare by byte-wise
// ordinal (case-sensitive, so "Bravo" < "Charlie" < "alpha"), times compare
// chronologically, and absent or nil values sort below every present value.
// Searching is case-insensitive.
package tableview
