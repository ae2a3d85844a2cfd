package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginatedResponseRoundsPagesUp(t *testing.T) {
	response := NewPaginatedResponse([]int{1, 2, 3}, 7, 1, 3)

	assert.Equal(t, int64(7), response.Meta.TotalItems)
	assert.Equal(t, 3, response.Meta.TotalPages, "a final short page still counts")
	assert.Equal(t, 3, response.Meta.PageSize)
}

func TestPaginatedResponseGuardsZeroLimit(t *testing.T) {
	response := NewPaginatedResponse([]int{}, 5, 1, 0)

	assert.Equal(t, 5, response.Meta.TotalPages)
	assert.Equal(t, 1, response.Meta.PageSize)
}
