package tableview

import "fmt"

// DefaultPageSize is the number of rows per page when none is configured.
const DefaultPageSize = 10

// PageInfo summarizes where the visible rows sit in the filtered set.
// From and To are 1-based ordinals for "Showing From to To of TotalRows";
// both are 0 when there are no rows.
type PageInfo struct {
	Page       int
	PageSize   int
	TotalPages int
	TotalRows  int
	From       int
	To         int
}

// HasPrev reports whether a previous page exists.
func (p PageInfo) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a next page exists.
func (p PageInfo) HasNext() bool { return p.Page < p.TotalPages }

// String renders the pagination footer, "Showing 11 to 20 of 25".
func (p PageInfo) String() string {
	return fmt.Sprintf("Showing %d to %d of %d", p.From, p.To, p.TotalRows)
}

// TotalPages returns ceil(total/pageSize), or 0 when total is 0.
func TotalPages(total, pageSize int) (int, error) {
	if pageSize <= 0 {
		return 0, ErrInvalidPageSize
	}
	return ceilDiv(total, pageSize), nil
}

// ceilDiv returns ceil(n/d) for n >= 0 and d > 0 without overflowing.
func ceilDiv(n, d int) int {
	q := n / d
	if n%d != 0 {
		q++
	}
	return q
}

// ClampPage clamps page into [1, max(1, TotalPages(total, pageSize))].
func ClampPage(page, total, pageSize int) (int, error) {
	pages, err := TotalPages(total, pageSize)
	if err != nil {
		return 0, err
	}
	if page > pages {
		page = pages
	}
	if page < 1 {
		page = 1
	}
	return page, nil
}

// Paginate returns records[(page-1)*pageSize : page*pageSize], truncated to
// the records available. A page outside the data yields an empty slice.
// Returns ErrInvalidPageSize if pageSize is not positive.
func Paginate(records []Record, page, pageSize int) ([]Record, error) {
	if pageSize <= 0 {
		return nil, ErrInvalidPageSize
	}
	if page < 1 {
		return []Record{}, nil
	}
	// Compare page counts before multiplying so huge pages cannot wrap.
	if page-1 >= ceilDiv(len(records), pageSize) {
		return []Record{}, nil
	}
	start := (page - 1) * pageSize
	end := start + min(pageSize, len(records)-start)
	return records[start:end:end], nil
}

// pageInfo builds the PageInfo for an already clamped page.
func pageInfo(page, pageSize, total int) PageInfo {
	pages := ceilDiv(total, pageSize)
	info := PageInfo{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: pages,
		TotalRows:  total,
	}
	if total > 0 {
		skipped := (page - 1) * pageSize
		info.From = skipped + 1
		info.To = skipped + min(pageSize, total-skipped)
	}
	return info
}
