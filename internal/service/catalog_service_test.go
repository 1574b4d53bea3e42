package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"marketplace-service/internal/models"
)

func TestSortByRank(t *testing.T) {
	products := []models.Product{
		{ID: 1, Title: "first"},
		{ID: 2, Title: "second"},
		{ID: 3, Title: "third"},
	}

	ranked := sortByRank([]int64{3, 1, 2}, products)
	assert.Equal(t, []int64{3, 1, 2}, []int64{ranked[0].ID, ranked[1].ID, ranked[2].ID})
}

func TestSortByRankSkipsMissingProducts(t *testing.T) {
	products := []models.Product{
		{ID: 2, Title: "second"},
	}

	// id 9 was sold at some point but the product is gone
	ranked := sortByRank([]int64{9, 2}, products)
	assert.Len(t, ranked, 1)
	assert.Equal(t, int64(2), ranked[0].ID)

	assert.Empty(t, sortByRank(nil, products))
	assert.Empty(t, sortByRank([]int64{5}, nil))
}
