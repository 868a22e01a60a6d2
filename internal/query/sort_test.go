package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testEntity = Entity[string]{
	Name:         "things",
	SearchFields: []string{"Name", "Description"},
	SortFields: map[string]string{
		"name":      "Name",
		"createdat": "createdAt",
	},
	DefaultSort: Sort{Field: "createdAt", Descending: true},
}

func TestResolveSort(t *testing.T) {
	tests := []struct {
		name      string
		sortBy    string
		sortOrder string
		want      Sort
	}{
		{"known key ascending", "name", "asc", Sort{Field: "Name"}},
		{"key is case-insensitive", "NaMe", "ASC", Sort{Field: "Name"}},
		{"desc", "name", "desc", Sort{Field: "Name", Descending: true}},
		{"anything but asc is descending", "name", "upwards", Sort{Field: "Name", Descending: true}},
		{"empty order is descending", "name", "", Sort{Field: "Name", Descending: true}},
		{"explicit default key ascending", "CreatedAt", "asc", Sort{Field: "createdAt"}},
		{"absent key falls back", "", "asc", Sort{Field: "createdAt", Descending: true}},
		{"unknown key falls back", "priority", "asc", Sort{Field: "createdAt", Descending: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, testEntity.ResolveSort(tt.sortBy, tt.sortOrder))
		})
	}
}

func TestResolveSort_UnknownEqualsAbsent(t *testing.T) {
	for _, order := range []string{"", "asc", "desc"} {
		assert.Equal(t,
			testEntity.ResolveSort("", order),
			testEntity.ResolveSort("definitely-not-a-field", order),
		)
	}
}
