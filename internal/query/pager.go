package query

// Window is the skip/limit pair sent to a store. A zero Limit means no limit.
type Window struct {
	Skip  int64
	Limit int64
}

// PageMeta is the pagination metadata of a page envelope.
type PageMeta struct {
	TotalCount      int64 `json:"totalCount"`
	Page            int   `json:"page"`
	PageSize        int   `json:"pageSize"`
	TotalPages      int   `json:"totalPages"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

// Page is the envelope returned by Run.
type Page[T any] struct {
	Items []T `json:"items"`
	PageMeta
}

// Pager computes the window and metadata for a 1-based page.
type Pager struct {
	page     int
	pageSize int
}

// NewPager expects page >= 1 and pageSize >= 1.
func NewPager(page, pageSize int) Pager {
	return Pager{page: page, pageSize: pageSize}
}

func (p Pager) Skip() int64 {
	return int64(p.page-1) * int64(p.pageSize)
}

func (p Pager) Limit() int64 {
	return int64(p.pageSize)
}

func (p Pager) Window() Window {
	return Window{Skip: p.Skip(), Limit: p.Limit()}
}

// Meta derives the page metadata from the total number of matching records.
func (p Pager) Meta(totalCount int64) PageMeta {
	totalPages := int(totalCount / int64(p.pageSize))
	if totalCount%int64(p.pageSize) > 0 {
		totalPages++
	}

	return PageMeta{
		TotalCount:      totalCount,
		Page:            p.page,
		PageSize:        p.pageSize,
		TotalPages:      totalPages,
		HasNextPage:     p.page < totalPages,
		HasPreviousPage: p.page > 1,
	}
}
