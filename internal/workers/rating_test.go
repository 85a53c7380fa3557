package workers

import (
	"context"
	"testing"

	"analytics-workers/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecalcComputesProductAndShopAggregates(t *testing.T) {
	store := newMemRatingStore()
	store.products["p1"] = &models.Product{ID: "p1", ShopID: "s1"}
	store.products["p2"] = &models.Product{ID: "p2", ShopID: "s1", ReviewCount: 2, AverageRating: 3.0}
	store.shops["s1"] = &models.Shop{ID: "s1"}
	store.reviews = []models.Review{
		{ID: "r1", ProductID: "p1", Rating: 5},
		{ID: "r2", ProductID: "p1", Rating: 4},
		{ID: "r3", ProductID: "p1", Rating: 3},
		{ID: "r4", ProductID: "p2", Rating: 3},
	}

	svc := NewRatingService(store, testLogger())
	require.NoError(t, svc.Recalc(context.Background(), "p1"))

	assert.Equal(t, int64(3), store.products["p1"].ReviewCount)
	assert.InDelta(t, 4.0, store.products["p1"].AverageRating, 1e-9)

	// Shop totals: sum of product review counts, average of product averages.
	assert.Equal(t, int64(5), store.shops["s1"].ReviewCount)
	assert.InDelta(t, 3.5, store.shops["s1"].Ratings, 1e-9)
}

func TestRecalcWithNoReviewsZeroesProduct(t *testing.T) {
	store := newMemRatingStore()
	store.products["p1"] = &models.Product{ID: "p1", ShopID: "s1", ReviewCount: 7, AverageRating: 4.2}
	store.shops["s1"] = &models.Shop{ID: "s1", ReviewCount: 7, Ratings: 4.2}

	svc := NewRatingService(store, testLogger())
	require.NoError(t, svc.Recalc(context.Background(), "p1"))

	assert.Equal(t, int64(0), store.products["p1"].ReviewCount)
	assert.Equal(t, 0.0, store.products["p1"].AverageRating)
	assert.Equal(t, int64(0), store.shops["s1"].ReviewCount)
}

func TestRecalcIsIdempotent(t *testing.T) {
	store := newMemRatingStore()
	store.products["p1"] = &models.Product{ID: "p1", ShopID: "s1"}
	store.shops["s1"] = &models.Shop{ID: "s1"}
	store.reviews = []models.Review{
		{ID: "r1", ProductID: "p1", Rating: 4},
		{ID: "r2", ProductID: "p1", Rating: 2},
	}

	svc := NewRatingService(store, testLogger())
	require.NoError(t, svc.Recalc(context.Background(), "p1"))

	firstProduct := *store.products["p1"]
	firstShop := *store.shops["s1"]

	require.NoError(t, svc.Recalc(context.Background(), "p1"))

	assert.Equal(t, firstProduct, *store.products["p1"])
	assert.Equal(t, firstShop, *store.shops["s1"])
	assert.Equal(t, 2, store.productSaves)
	assert.Equal(t, 2, store.shopSaves)
}

func TestRecalcUnknownProductFails(t *testing.T) {
	store := newMemRatingStore()
	svc := NewRatingService(store, testLogger())

	err := svc.Recalc(context.Background(), "missing")
	assert.Error(t, err)
}
