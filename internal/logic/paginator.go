package logic

// Paginator tracks the current page of a collection of count items.
// The page index always stays within [1, TotalPages].
type Paginator struct {
	pageSize int
	count    int
	current  int
}

// NewPaginator creates a paginator on page 1. Sizes below 1 are treated as 1.
func NewPaginator(pageSize int) *Paginator {
	if pageSize < 1 {
		pageSize = 1
	}
	return &Paginator{pageSize: pageSize, current: 1}
}

// PageSize returns the number of items per page
func (p *Paginator) PageSize() int { return p.pageSize }

// Count returns the size of the paginated collection
func (p *Paginator) Count() int { return p.count }

// CurrentPage returns the 1-based page index
func (p *Paginator) CurrentPage() int { return p.current }

// TotalPages is max(1, ceil(count/pageSize))
func (p *Paginator) TotalPages() int {
	return max(1, (p.count+p.pageSize-1)/p.pageSize)
}

// SetCount records a new collection size and clamps the current page down
// when it falls past the last page
func (p *Paginator) SetCount(n int) {
	p.count = max(0, n)
	if total := p.TotalPages(); p.current > total {
		p.current = total
	}
}

// GoToPage moves to page n. Out-of-range pages are ignored.
func (p *Paginator) GoToPage(n int) bool {
	if n < 1 || n > p.TotalPages() {
		return false
	}
	p.current = n
	return true
}

// Next moves forward one page if possible
func (p *Paginator) Next() bool { return p.GoToPage(p.current + 1) }

// Prev moves back one page if possible
func (p *Paginator) Prev() bool { return p.GoToPage(p.current - 1) }

// Bounds returns the half-open item range of the current page
func (p *Paginator) Bounds() (start, end int) {
	start = (p.current - 1) * p.pageSize
	end = min(start+p.pageSize, p.count)
	if start > end {
		start = end
	}
	return start, end
}

// Paginate records len(items) on p and returns the current page's slice
func Paginate[T any](p *Paginator, items []T) []T {
	p.SetCount(len(items))
	start, end := p.Bounds()
	return items[start:end]
}
