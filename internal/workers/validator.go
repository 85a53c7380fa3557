package workers

import "analytics-workers/models"

// trackedActions is the closed set of action kinds the pipeline aggregates.
// shop_visit is deliberately absent: see FilterEvents.
var trackedActions = map[string]struct{}{
	models.ActionAddToWishlist:      {},
	models.ActionAddToCart:          {},
	models.ActionProductView:        {},
	models.ActionPurchase:           {},
	models.ActionRemoveFromWishlist: {},
	models.ActionRemoveFromCart:     {},
}

// FilterEvents drops every event whose action is not in the tracked set.
// Events with no action at all are discarded silently. Order is preserved.
func FilterEvents(batch []models.BehavioralEvent) []models.BehavioralEvent {
	var valid []models.BehavioralEvent
	for _, event := range batch {
		if event.Action == models.ActionShopVisit {
			// Shop visit rollups are not tracked yet; the event falls
			// through to the filter below and is dropped.
		}
		if _, ok := trackedActions[event.Action]; !ok {
			continue
		}
		valid = append(valid, event)
	}
	return valid
}
