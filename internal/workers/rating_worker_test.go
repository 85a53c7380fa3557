package workers

import (
	"testing"

	"analytics-workers/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingWorkerHandleMessage(t *testing.T) {
	store := newMemRatingStore()
	store.products["p1"] = &models.Product{ID: "p1", ShopID: "s1"}
	store.shops["s1"] = &models.Shop{ID: "s1"}
	store.reviews = []models.Review{{ID: "r1", ProductID: "p1", Rating: 5}}

	w := NewRatingWorker(nil, NewRatingService(store, testLogger()), "review_events", testLogger())

	require.NoError(t, w.handleMessage([]byte(`{"event":"created","product_id":"p1","shop_id":"s1"}`)))
	assert.Equal(t, int64(1), store.products["p1"].ReviewCount)
	assert.InDelta(t, 5.0, store.products["p1"].AverageRating, 1e-9)
}

func TestRatingWorkerRejectsBadMessages(t *testing.T) {
	w := NewRatingWorker(nil, NewRatingService(newMemRatingStore(), testLogger()), "review_events", testLogger())

	assert.Error(t, w.handleMessage([]byte(`not json`)), "malformed payload")
	assert.Error(t, w.handleMessage([]byte(`{"event":"archived","product_id":"p1"}`)), "unknown event type")
	assert.Error(t, w.handleMessage([]byte(`{"event":"created"}`)), "missing product id")
}
