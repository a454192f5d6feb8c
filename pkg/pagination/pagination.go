package pagination

// Page-number pagination for the catalog surfaces. Listing pages are small
// and users navigate them by number, so cursors would buy nothing here.

const (
	// CatalogPageSize is the number of products per catalog page.
	CatalogPageSize = 5
	// SearchPageSize is the number of products per search result page.
	SearchPageSize = 3
)

// Page holds normalized page-number inputs.
type Page struct {
	Number int
	Size   int
}

// Meta describes a resolved page for response envelopes.
type Meta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// New normalizes the requested page number against the given size.
// Page numbers start at 1; anything lower collapses to 1.
func New(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = 1
	}
	return Page{Number: number, Size: size}
}

// Offset returns the SQL offset for the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// MetaFor computes the page metadata for a total row count.
func (p Page) MetaFor(total int64) Meta {
	pages := int((total + int64(p.Size) - 1) / int64(p.Size))
	if pages < 1 {
		pages = 1
	}
	return Meta{
		Page:       p.Number,
		PageSize:   p.Size,
		TotalItems: total,
		TotalPages: pages,
	}
}
