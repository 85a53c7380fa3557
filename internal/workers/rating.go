package workers

import (
	"context"

	"analytics-workers/pkg/logger"

	"go.uber.org/zap"
)

// RatingStore is the persistence surface the rating recompute reads and
// writes: review aggregates per product, rating aggregates per shop.
type RatingStore interface {
	ProductReviewStats(ctx context.Context, productID string) (count int64, average float64, err error)
	UpdateProductRating(ctx context.Context, productID string, reviewCount int64, averageRating float64) error
	ProductShop(ctx context.Context, productID string) (string, error)
	ShopRatingStats(ctx context.Context, shopID string) (reviewCount int64, ratings float64, err error)
	UpdateShopRating(ctx context.Context, shopID string, reviewCount int64, ratings float64) error
}

// RatingService recomputes product and shop rating aggregates from scratch
// whenever a review changes. There is no incremental path: every call is a
// full recomputation scoped to one product and its shop, so re-running it
// with unchanged reviews yields identical output.
type RatingService struct {
	store RatingStore
	log   *logger.Logger
}

func NewRatingService(store RatingStore, log *logger.Logger) *RatingService {
	return &RatingService{store: store, log: log}
}

func (s *RatingService) Recalc(ctx context.Context, productID string) error {
	reviewCount, averageRating, err := s.store.ProductReviewStats(ctx, productID)
	if err != nil {
		return err
	}

	if err := s.store.UpdateProductRating(ctx, productID, reviewCount, averageRating); err != nil {
		return err
	}

	shopID, err := s.store.ProductShop(ctx, productID)
	if err != nil {
		return err
	}

	shopReviewCount, shopRatings, err := s.store.ShopRatingStats(ctx, shopID)
	if err != nil {
		return err
	}

	if err := s.store.UpdateShopRating(ctx, shopID, shopReviewCount, shopRatings); err != nil {
		return err
	}

	s.log.Info("recalculated ratings",
		zap.String("product_id", productID),
		zap.String("shop_id", shopID),
		zap.Int64("review_count", reviewCount),
		zap.Float64("average_rating", averageRating),
	)
	return nil
}
