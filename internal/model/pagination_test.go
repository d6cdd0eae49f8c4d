package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		total      int
		totalPages int
		hasNext    bool
		hasPrev    bool
	}{
		{"first of five", 1, 5, 23, 5, true, false},
		{"middle page", 3, 5, 23, 5, true, true},
		{"last page", 5, 5, 23, 5, false, true},
		{"single page", 1, 10, 7, 1, false, false},
		{"empty result", 1, 10, 0, 0, false, false},
		{"exact multiple", 2, 5, 10, 2, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.limit, tt.total)
			assert.Equal(t, tt.totalPages, p.TotalPages)
			assert.Equal(t, tt.hasNext, p.HasNext)
			assert.Equal(t, tt.hasPrev, p.HasPrev)
			assert.Equal(t, tt.total, p.Total)
		})
	}
}

func TestListParamsOffset(t *testing.T) {
	p := ListParams{Page: 3, Limit: 5}
	assert.Equal(t, 10, p.Offset())

	p = ListParams{Page: 1, Limit: 20}
	assert.Equal(t, 0, p.Offset())
}
