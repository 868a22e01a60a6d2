package query

import (
	"errors"
	"strings"
	"time"
)

// Paging defaults and limits shared by every collection.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Sort directions accepted in Criteria.SortOrder.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

var (
	ErrInvalidPage     = errors.New("page must be greater than or equal to 1")
	ErrInvalidPageSize = errors.New("pageSize must be between 1 and 100")
	ErrInvalidRange    = errors.New("range start must not be after range end")
)

// Criteria holds the paging, search and sort fields common to every listing.
type Criteria struct {
	Page      int
	PageSize  int
	Search    string
	SortBy    string
	SortOrder string
}

// WithDefaults returns a copy with zero-valued fields replaced by defaults.
func (c Criteria) WithDefaults() Criteria {
	if c.Page == 0 {
		c.Page = DefaultPage
	}
	if c.PageSize == 0 {
		c.PageSize = DefaultPageSize
	}
	if strings.TrimSpace(c.SortOrder) == "" {
		c.SortOrder = SortDesc
	}
	c.Search = strings.TrimSpace(c.Search)
	return c
}

// Validate reports out-of-range paging values. Values are never clamped.
func (c Criteria) Validate() error {
	if c.Page < 1 {
		return ErrInvalidPage
	}
	if c.PageSize < 1 || c.PageSize > MaxPageSize {
		return ErrInvalidPageSize
	}
	return nil
}

// CheckRange returns ErrInvalidRange when both bounds are set and from is after to.
func CheckRange(from, to *time.Time) error {
	if from != nil && to != nil && from.After(*to) {
		return ErrInvalidRange
	}
	return nil
}

// Spec is implemented by the per-collection criteria types. Paging exposes
// the common fields; Apply adds the collection specific predicates.
type Spec interface {
	Paging() Criteria
	Apply(b *FilterBuilder)
}
