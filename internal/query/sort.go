package query

import "strings"

// Sort is a single-key ordering. Equal keys keep whatever order the store
// returns; no secondary key is applied.
type Sort struct {
	Field      string
	Descending bool
}

// Entity describes how one collection is searched, sorted and post-processed.
type Entity[T any] struct {
	Name string
	// SearchFields are matched by Criteria.Search.
	SearchFields []string
	// SortFields maps a lowercase sortBy key to a stored field.
	SortFields map[string]string
	// DefaultSort is used whenever sortBy is absent or not in SortFields.
	DefaultSort Sort
	// Reconcile, when set, is applied to every item read by Run.
	Reconcile func(T) T
}

// ResolveSort maps a sortBy key and direction to a Sort. Only "asc" (any case)
// sorts ascending.
func (e Entity[T]) ResolveSort(sortBy, sortOrder string) Sort {
	field, ok := e.SortFields[strings.ToLower(strings.TrimSpace(sortBy))]
	if !ok {
		return e.DefaultSort
	}
	return Sort{
		Field:      field,
		Descending: !strings.EqualFold(strings.TrimSpace(sortOrder), SortAsc),
	}
}
