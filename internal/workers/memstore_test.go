package workers

import (
	"context"
	"fmt"

	"analytics-workers/models"
	"analytics-workers/pkg/logger"

	"go.uber.org/zap"
)

func testLogger() *logger.Logger {
	return &logger.Logger{Logger: zap.NewNop()}
}

// memEventStore is an in-memory EventStore applying the same semantics as
// the Postgres/ClickHouse implementation: append-only history slices, a full
// row save for users, increment-relative-to-stored upserts for products.
type memEventStore struct {
	userHistory  []models.UserEventHistory
	interactions []models.ProductInteraction
	users        map[string]models.UserAnalytics
	products     map[string]models.ProductAnalytics

	// failUserHistoryFor makes InsertUserHistory fail for one user id, to
	// exercise per-event failure isolation.
	failUserHistoryFor string
}

func newMemEventStore() *memEventStore {
	return &memEventStore{
		users:    make(map[string]models.UserAnalytics),
		products: make(map[string]models.ProductAnalytics),
	}
}

func (m *memEventStore) InsertUserHistory(_ context.Context, rec models.UserEventHistory) error {
	if m.failUserHistoryFor != "" && rec.UserID == m.failUserHistoryFor {
		return fmt.Errorf("simulated history insert failure for %s", rec.UserID)
	}
	m.userHistory = append(m.userHistory, rec)
	return nil
}

func (m *memEventStore) FindUserAggregate(_ context.Context, userID string) (*models.UserAnalytics, error) {
	agg, ok := m.users[userID]
	if !ok {
		return nil, nil
	}
	return &agg, nil
}

func (m *memEventStore) SaveUserAggregate(_ context.Context, agg *models.UserAnalytics) error {
	m.users[agg.UserID] = *agg
	return nil
}

func (m *memEventStore) UpsertProductAggregate(_ context.Context, delta ProductDelta) error {
	row := m.products[delta.ProductID]
	row.ProductID = delta.ProductID
	row.Views += delta.Views
	row.WishlistCount += delta.WishlistCount
	row.CartCount += delta.CartCount
	row.Purchases += delta.Purchases
	if delta.LastViewedAt != nil {
		row.LastViewedAt = *delta.LastViewedAt
	}
	m.products[delta.ProductID] = row
	return nil
}

func (m *memEventStore) InsertProductInteraction(_ context.Context, rec models.ProductInteraction) error {
	m.interactions = append(m.interactions, rec)
	return nil
}

// memRatingStore backs the rating recompute tests with plain maps.
type memRatingStore struct {
	reviews      []models.Review
	products     map[string]*models.Product
	shops        map[string]*models.Shop
	productSaves int
	shopSaves    int
}

func newMemRatingStore() *memRatingStore {
	return &memRatingStore{
		products: make(map[string]*models.Product),
		shops:    make(map[string]*models.Shop),
	}
}

func (m *memRatingStore) ProductReviewStats(_ context.Context, productID string) (int64, float64, error) {
	var count int64
	var sum float64
	for _, r := range m.reviews {
		if r.ProductID == productID {
			count++
			sum += r.Rating
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return count, sum / float64(count), nil
}

func (m *memRatingStore) UpdateProductRating(_ context.Context, productID string, reviewCount int64, averageRating float64) error {
	p, ok := m.products[productID]
	if !ok {
		return fmt.Errorf("product %s not found", productID)
	}
	p.ReviewCount = reviewCount
	p.AverageRating = averageRating
	m.productSaves++
	return nil
}

func (m *memRatingStore) ProductShop(_ context.Context, productID string) (string, error) {
	p, ok := m.products[productID]
	if !ok {
		return "", fmt.Errorf("product %s not found", productID)
	}
	return p.ShopID, nil
}

func (m *memRatingStore) ShopRatingStats(_ context.Context, shopID string) (int64, float64, error) {
	var count, total int64
	var sum float64
	for _, p := range m.products {
		if p.ShopID == shopID {
			total++
			count += p.ReviewCount
			sum += p.AverageRating
		}
	}
	if total == 0 {
		return 0, 0, nil
	}
	return count, sum / float64(total), nil
}

func (m *memRatingStore) UpdateShopRating(_ context.Context, shopID string, reviewCount int64, ratings float64) error {
	s, ok := m.shops[shopID]
	if !ok {
		return fmt.Errorf("shop %s not found", shopID)
	}
	s.ReviewCount = reviewCount
	s.Ratings = ratings
	m.shopSaves++
	return nil
}
