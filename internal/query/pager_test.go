package query

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPager_Skip(t *testing.T) {
	assert.Equal(t, int64(0), NewPager(1, 10).Skip())
	assert.Equal(t, int64(20), NewPager(3, 10).Skip())
	assert.Equal(t, int64(10), NewPager(3, 10).Limit())
}

func TestPager_MetaIsConsistent(t *testing.T) {
	for pageSize := 1; pageSize <= 12; pageSize++ {
		for total := int64(0); total <= 40; total++ {
			for page := 1; page <= 6; page++ {
				meta := NewPager(page, pageSize).Meta(total)

				want := int(math.Ceil(float64(total) / float64(pageSize)))
				assert.Equal(t, want, meta.TotalPages, "total=%d size=%d", total, pageSize)
				assert.Equal(t, page < want, meta.HasNextPage)
				assert.Equal(t, page > 1, meta.HasPreviousPage)
				assert.Equal(t, total, meta.TotalCount)
			}
		}
	}
}

func TestPager_ZeroTotal(t *testing.T) {
	meta := NewPager(1, 10).Meta(0)

	assert.Equal(t, 0, meta.TotalPages)
	assert.False(t, meta.HasNextPage)
	assert.False(t, meta.HasPreviousPage)
}

func TestPager_TwentyFiveInPagesOfTen(t *testing.T) {
	first := NewPager(1, 10).Meta(25)
	assert.Equal(t, 3, first.TotalPages)
	assert.True(t, first.HasNextPage)
	assert.False(t, first.HasPreviousPage)

	last := NewPager(3, 10).Meta(25)
	assert.Equal(t, 3, last.TotalPages)
	assert.False(t, last.HasNextPage)
	assert.True(t, last.HasPreviousPage)
}
