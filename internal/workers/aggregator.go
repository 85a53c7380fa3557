package workers

import (
	"context"
	"fmt"
	"time"

	"analytics-workers/models"
	"analytics-workers/pkg/logger"

	"github.com/google/uuid"
)

// EventStore is the persistence surface the aggregation engine writes to.
// History inserts are append-only; the user aggregate is a read-modify-write
// pair while the product aggregate is a single atomic upsert.
type EventStore interface {
	InsertUserHistory(ctx context.Context, rec models.UserEventHistory) error
	FindUserAggregate(ctx context.Context, userID string) (*models.UserAnalytics, error)
	SaveUserAggregate(ctx context.Context, agg *models.UserAnalytics) error
	UpsertProductAggregate(ctx context.Context, delta ProductDelta) error
	InsertProductInteraction(ctx context.Context, rec models.ProductInteraction) error
}

// ProductDelta is the signed counter change one event contributes to a
// product aggregate row.
type ProductDelta struct {
	ProductID     string
	Views         int64
	WishlistCount int64
	CartCount     int64
	Purchases     int64
	LastViewedAt  *time.Time
}

// Aggregator folds validated behavioral events into the history logs and the
// per-user / per-product aggregate rows.
type Aggregator struct {
	store EventStore
	log   *logger.Logger
	now   func() time.Time
}

func NewAggregator(store EventStore, log *logger.Logger) *Aggregator {
	return &Aggregator{
		store: store,
		log:   log,
		now:   time.Now,
	}
}

// Apply processes one validated event: the user-side path first, then the
// product-side path. A failure on the user side aborts the product side for
// this event; the caller isolates failures between events.
func (a *Aggregator) Apply(ctx context.Context, event models.BehavioralEvent) error {
	if err := a.applyUserEvent(ctx, event); err != nil {
		return err
	}
	return a.applyProductEvent(ctx, event)
}

// applyUserEvent appends a user history record and merges the event into the
// per-user aggregate. Events without a userId are skipped entirely.
func (a *Aggregator) applyUserEvent(ctx context.Context, event models.BehavioralEvent) error {
	if event.UserID == "" {
		return nil
	}

	now := a.now()

	rec := models.UserEventHistory{
		EventID:    uuid.New().String(),
		UserID:     event.UserID,
		ProductID:  event.ProductID,
		ShopID:     event.ShopID,
		Action:     event.Action,
		Country:    event.Country,
		City:       event.City,
		IPAddress:  event.IPAddress,
		DeviceType: event.DeviceType,
		OS:         event.OS,
		Browser:    event.Browser,
		UserAgent:  event.UserAgent,
		EventTime:  now,
	}
	if err := a.store.InsertUserHistory(ctx, rec); err != nil {
		return fmt.Errorf("failed to insert user history for %s: %w", event.UserID, err)
	}

	agg, err := a.store.FindUserAggregate(ctx, event.UserID)
	if err != nil {
		return err
	}
	if agg == nil {
		agg = &models.UserAnalytics{UserID: event.UserID}
	}

	switch event.Action {
	case models.ActionProductView:
		agg.TotalViews++
	case models.ActionAddToCart:
		agg.TotalCartAdds++
	case models.ActionPurchase:
		agg.TotalPurchases++
	}

	// Every event counts as activity, whatever its kind.
	agg.SessionCount++
	agg.LastActiveAt = now

	// Last-known context: overwrite only what the event carries, never clear
	// a field once set.
	if event.Country != "" {
		agg.Country = event.Country
	}
	if event.City != "" {
		agg.City = event.City
	}
	if event.IPAddress != "" {
		agg.IPAddress = event.IPAddress
	}
	if event.DeviceType != "" {
		agg.DeviceType = event.DeviceType
	}
	if event.OS != "" {
		agg.OS = event.OS
	}
	if event.Browser != "" {
		agg.Browser = event.Browser
	}
	if event.UserAgent != "" {
		agg.UserAgent = event.UserAgent
	}

	return a.store.SaveUserAggregate(ctx, agg)
}

// applyProductEvent maps the action to a signed counter delta and upserts the
// product aggregate, then logs the interaction when a userId is present.
// Events without a productId, or whose action maps to no product counter,
// are skipped entirely.
func (a *Aggregator) applyProductEvent(ctx context.Context, event models.BehavioralEvent) error {
	if event.ProductID == "" {
		return nil
	}

	now := a.now()
	delta := ProductDelta{ProductID: event.ProductID}

	switch event.Action {
	case models.ActionProductView:
		delta.Views = 1
		delta.LastViewedAt = &now
	case models.ActionAddToWishlist:
		delta.WishlistCount = 1
	case models.ActionRemoveFromWishlist:
		delta.WishlistCount = -1
	case models.ActionAddToCart:
		delta.CartCount = 1
	case models.ActionRemoveFromCart:
		delta.CartCount = -1
	case models.ActionPurchase:
		delta.Purchases = 1
	default:
		return nil
	}

	if err := a.store.UpsertProductAggregate(ctx, delta); err != nil {
		return err
	}

	if event.UserID == "" {
		return nil
	}

	rec := models.ProductInteraction{
		EventID:   uuid.New().String(),
		UserID:    event.UserID,
		ProductID: event.ProductID,
		Action:    event.Action,
		EventTime: now,
	}
	if err := a.store.InsertProductInteraction(ctx, rec); err != nil {
		return fmt.Errorf("failed to insert product interaction for %s: %w", event.ProductID, err)
	}
	return nil
}
