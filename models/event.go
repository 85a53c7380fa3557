package models

// Action kinds a behavioral event may carry. The validator only forwards the
// six interaction kinds; shop_visit is received on the wire but not rolled up.
const (
	ActionProductView        = "product_view"
	ActionAddToWishlist      = "add_to_wishlist"
	ActionRemoveFromWishlist = "remove_from_wishlist"
	ActionAddToCart          = "add_to_cart"
	ActionRemoveFromCart     = "remove_from_cart"
	ActionPurchase           = "purchase"
	ActionShopVisit          = "shop_visit"
)

// BehavioralEvent is the message payload published to the user_events topic.
// It exists only in flight between the storefront producer and aggregation.
type BehavioralEvent struct {
	UserID     string `json:"userId"`
	ProductID  string `json:"productId,omitempty"`
	ShopID     string `json:"shopId,omitempty"`
	Action     string `json:"action"`
	Country    string `json:"country,omitempty"`
	City       string `json:"city,omitempty"`
	IPAddress  string `json:"ipAddress,omitempty"`
	DeviceType string `json:"deviceType,omitempty"`
	OS         string `json:"os,omitempty"`
	Browser    string `json:"browser,omitempty"`
	UserAgent  string `json:"userAgent,omitempty"`
	Timestamp  int64  `json:"timestamp,omitempty"`
}

// ReviewEvent is the message payload from RabbitMQ for review changes.
type ReviewEvent struct {
	Event     string `json:"event"` // created | updated | deleted
	ProductID string `json:"product_id"`
	ShopID    string `json:"shop_id"`
}
