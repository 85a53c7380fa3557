package storage

import (
	"context"
	"errors"
	"fmt"

	"analytics-workers/internal/clickhouse"
	"analytics-workers/internal/postgres"
	"analytics-workers/internal/workers"
	"analytics-workers/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store implements the persistence operations the aggregation engine issues:
// history inserts go to ClickHouse, aggregate rows live in Postgres.
type Store struct {
	pg *postgres.Client
	ch *clickhouse.Client
}

func NewStore(pg *postgres.Client, ch *clickhouse.Client) *Store {
	return &Store{pg: pg, ch: ch}
}

func (s *Store) InsertUserHistory(ctx context.Context, rec models.UserEventHistory) error {
	return s.ch.InsertUserHistory(ctx, rec)
}

func (s *Store) InsertProductInteraction(ctx context.Context, rec models.ProductInteraction) error {
	return s.ch.InsertProductInteraction(ctx, rec)
}

// FindUserAggregate returns nil without error when no row exists yet.
func (s *Store) FindUserAggregate(ctx context.Context, userID string) (*models.UserAnalytics, error) {
	var agg models.UserAnalytics
	err := s.pg.DB().WithContext(ctx).Where("user_id = ?", userID).First(&agg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user aggregate %s: %w", userID, err)
	}
	return &agg, nil
}

// SaveUserAggregate writes the full row, inserting or replacing by primary
// key. Together with FindUserAggregate this is a read-modify-write, not an
// atomic upsert; concurrent events for the same user can lose updates.
func (s *Store) SaveUserAggregate(ctx context.Context, agg *models.UserAnalytics) error {
	if err := s.pg.DB().WithContext(ctx).Save(agg).Error; err != nil {
		return fmt.Errorf("failed to save user aggregate %s: %w", agg.UserID, err)
	}
	return nil
}

// UpsertProductAggregate applies the delta as an increment expression
// relative to the stored value, atomically at the database. The insert arm
// seeds a fresh row with the delta as the initial counters.
func (s *Store) UpsertProductAggregate(ctx context.Context, delta workers.ProductDelta) error {
	row := models.ProductAnalytics{
		ProductID:     delta.ProductID,
		Views:         delta.Views,
		WishlistCount: delta.WishlistCount,
		CartCount:     delta.CartCount,
		Purchases:     delta.Purchases,
	}

	assignments := map[string]interface{}{
		"views":          gorm.Expr("product_analytics.views + ?", delta.Views),
		"wishlist_count": gorm.Expr("product_analytics.wishlist_count + ?", delta.WishlistCount),
		"cart_count":     gorm.Expr("product_analytics.cart_count + ?", delta.CartCount),
		"purchases":      gorm.Expr("product_analytics.purchases + ?", delta.Purchases),
	}
	if delta.LastViewedAt != nil {
		row.LastViewedAt = *delta.LastViewedAt
		assignments["last_viewed_at"] = *delta.LastViewedAt
	}

	err := s.pg.DB().WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to upsert product aggregate %s: %w", delta.ProductID, err)
	}
	return nil
}

type reviewStats struct {
	ReviewCount   int64
	AverageRating float64
}

func (s *Store) ProductReviewStats(ctx context.Context, productID string) (int64, float64, error) {
	var stats reviewStats
	err := s.pg.DB().WithContext(ctx).Raw(`
		SELECT COUNT(*) AS review_count,
		       COALESCE(AVG(rating), 0) AS average_rating
		FROM reviews
		WHERE product_id = ?
	`, productID).Scan(&stats).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to query review stats for product %s: %w", productID, err)
	}
	return stats.ReviewCount, stats.AverageRating, nil
}

func (s *Store) UpdateProductRating(ctx context.Context, productID string, reviewCount int64, averageRating float64) error {
	err := s.pg.DB().WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"review_count":   reviewCount,
			"average_rating": averageRating,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update rating for product %s: %w", productID, err)
	}
	return nil
}

func (s *Store) ProductShop(ctx context.Context, productID string) (string, error) {
	var product models.Product
	err := s.pg.DB().WithContext(ctx).Select("shop_id").Where("id = ?", productID).First(&product).Error
	if err != nil {
		return "", fmt.Errorf("failed to query shop for product %s: %w", productID, err)
	}
	return product.ShopID, nil
}

func (s *Store) ShopRatingStats(ctx context.Context, shopID string) (int64, float64, error) {
	var stats reviewStats
	err := s.pg.DB().WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(review_count), 0) AS review_count,
		       COALESCE(AVG(average_rating), 0) AS average_rating
		FROM products
		WHERE shop_id = ?
	`, shopID).Scan(&stats).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to query rating stats for shop %s: %w", shopID, err)
	}
	return stats.ReviewCount, stats.AverageRating, nil
}

func (s *Store) UpdateShopRating(ctx context.Context, shopID string, reviewCount int64, ratings float64) error {
	err := s.pg.DB().WithContext(ctx).Model(&models.Shop{}).
		Where("id = ?", shopID).
		Updates(map[string]interface{}{
			"review_count": reviewCount,
			"ratings":      ratings,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update rating for shop %s: %w", shopID, err)
	}
	return nil
}
