package pagination

import "strconv"

const (
	DefaultPage     = 1
	DefaultPageSize = 18
)

type Params struct {
	Page     int
	PageSize int
}

// Coerce parses page and limit query values. Anything that is not a positive
// integer falls back to the defaults instead of being rejected.
func Coerce(page, limit string) Params {
	return Params{
		Page:     positiveOr(page, DefaultPage),
		PageSize: positiveOr(limit, DefaultPageSize),
	}
}

func positiveOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// HasMore reports whether items remain past this page, that is
// Page*PageSize < totalItems without multiplying.
func (p Params) HasMore(totalItems int) bool {
	if p.PageSize < 1 {
		return totalItems > 0
	}
	return p.Page < pageCount(totalItems, p.PageSize)
}

func (p Params) BuildMeta(totalItems int) Meta {
	return Meta{
		Page:         p.Page,
		PageSize:     p.PageSize,
		TotalResults: totalItems,
		TotalPages:   pageCount(totalItems, p.PageSize),
		HasMore:      p.HasMore(totalItems),
	}
}

// pageCount is ceil(totalItems/pageSize), safe for any positive pageSize.
func pageCount(totalItems, pageSize int) int {
	if totalItems < 1 || pageSize < 1 {
		return 0
	}

	n := totalItems / pageSize
	if totalItems%pageSize != 0 {
		n++
	}
	return n
}

// Meta is the paging header of every list envelope.
type Meta struct {
	Page         int  `json:"page"`
	PageSize     int  `json:"-"`
	TotalPages   int  `json:"total_pages"`
	TotalResults int  `json:"total_results"`
	HasMore      bool `json:"has_more"`
}

// EmptyMeta is the header of a search that was never sent upstream.
func EmptyMeta() Meta {
	return Meta{Page: DefaultPage}
}

// Clip truncates items to at most limit entries.
func Clip[T any](items []T, limit int) []T {
	if limit < 0 || len(items) <= limit {
		return items
	}
	return items[:limit]
}
