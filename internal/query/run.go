package query

import (
	"context"
	"fmt"
)

// Store is the storage contract the query layer depends on.
type Store[T any] interface {
	Count(ctx context.Context, filter Filter) (int64, error)
	Find(ctx context.Context, filter Filter, sort Sort, window Window) ([]T, error)
}

// rangeValidator is implemented by criteria with date ranges.
type rangeValidator interface {
	ValidateRanges() error
}

// BuildFilter turns criteria into the filter for entity.
func BuildFilter[T any](entity Entity[T], spec Spec) Filter {
	c := spec.Paging().WithDefaults()
	b := NewFilterBuilder().Search(entity.SearchFields, c.Search)
	spec.Apply(b)
	return b.Build()
}

// Run counts and fetches one page of entity matching spec. Any store error
// aborts the whole call; no partial page is returned.
func Run[T any](ctx context.Context, store Store[T], entity Entity[T], spec Spec) (*Page[T], error) {
	c := spec.Paging().WithDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if v, ok := spec.(rangeValidator); ok {
		if err := v.ValidateRanges(); err != nil {
			return nil, err
		}
	}

	filter := BuildFilter(entity, spec)

	total, err := store.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count %s: %w", entity.Name, err)
	}

	pager := NewPager(c.Page, c.PageSize)
	items, err := store.Find(ctx, filter, entity.ResolveSort(c.SortBy, c.SortOrder), pager.Window())
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", entity.Name, err)
	}

	if items == nil {
		items = []T{}
	}
	if entity.Reconcile != nil {
		for i := range items {
			items[i] = entity.Reconcile(items[i])
		}
	}

	return &Page[T]{
		Items:    items,
		PageMeta: pager.Meta(total),
	}, nil
}
