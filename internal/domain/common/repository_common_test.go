package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	r := Paginate(items, Page{Number: 2, PerPage: 2})
	assert.Equal(t, []int{3, 4}, r.Items)
	assert.Equal(t, 5, r.TotalCount)
	assert.Equal(t, 3, r.TotalPages)
	assert.Equal(t, 2, r.Page)

	r = Paginate(items, Page{Number: 9, PerPage: 2})
	assert.NotNil(t, r.Items)
	assert.Empty(t, r.Items)

	r = Paginate(items, Page{})
	assert.Equal(t, DefaultPerPage, r.PerPage)
	assert.Equal(t, 1, r.TotalPages)
	assert.Len(t, r.Items, 5)

	r = Paginate([]int(nil), Page{Number: 1, PerPage: 1000})
	assert.Equal(t, MaxPerPage, r.PerPage)
	assert.Equal(t, 0, r.TotalPages)
}
