package models

import "time"

// UserAnalytics is the mutable per-user aggregate row in Postgres.
// At most one row per user; created on the first event seen for that user.
type UserAnalytics struct {
	UserID         string    `gorm:"column:user_id;primaryKey"`
	TotalViews     int64     `gorm:"column:total_views"`
	TotalCartAdds  int64     `gorm:"column:total_cart_adds"`
	TotalPurchases int64     `gorm:"column:total_purchases"`
	SessionCount   int64     `gorm:"column:session_count"`
	Country        string    `gorm:"column:country"`
	City           string    `gorm:"column:city"`
	IPAddress      string    `gorm:"column:ip_address"`
	DeviceType     string    `gorm:"column:device_type"`
	OS             string    `gorm:"column:os"`
	Browser        string    `gorm:"column:browser"`
	UserAgent      string    `gorm:"column:user_agent"`
	LastActiveAt   time.Time `gorm:"column:last_active_at"`
}

func (UserAnalytics) TableName() string {
	return "user_analytics"
}

// ProductAnalytics is the mutable per-product aggregate row in Postgres.
// Counters are applied as increments relative to the stored value; wishlist
// and cart counters carry removals as negative deltas and are not clamped.
type ProductAnalytics struct {
	ProductID     string    `gorm:"column:product_id;primaryKey"`
	Views         int64     `gorm:"column:views"`
	WishlistCount int64     `gorm:"column:wishlist_count"`
	CartCount     int64     `gorm:"column:cart_count"`
	Purchases     int64     `gorm:"column:purchases"`
	LastViewedAt  time.Time `gorm:"column:last_viewed_at"`
}

func (ProductAnalytics) TableName() string {
	return "product_analytics"
}

// UserEventHistory is one append-only history row per valid event, scoped to
// the user, with the full denormalized context. Insert-only; never mutated.
type UserEventHistory struct {
	EventID    string
	UserID     string
	ProductID  string
	ShopID     string
	Action     string
	Country    string
	City       string
	IPAddress  string
	DeviceType string
	OS         string
	Browser    string
	UserAgent  string
	EventTime  time.Time
}

// ProductInteraction is one append-only history row per valid event that
// carries both a product and a user.
type ProductInteraction struct {
	EventID   string
	UserID    string
	ProductID string
	Action    string
	EventTime time.Time
}

// Review, Product and Shop are the catalog rows the rating worker reads and
// writes. Columns outside the rating recompute are owned by other services.
type Review struct {
	ID        string  `gorm:"column:id;primaryKey"`
	ProductID string  `gorm:"column:product_id"`
	Rating    float64 `gorm:"column:rating"`
}

func (Review) TableName() string {
	return "reviews"
}

type Product struct {
	ID            string  `gorm:"column:id;primaryKey"`
	ShopID        string  `gorm:"column:shop_id"`
	ReviewCount   int64   `gorm:"column:review_count"`
	AverageRating float64 `gorm:"column:average_rating"`
}

func (Product) TableName() string {
	return "products"
}

type Shop struct {
	ID          string  `gorm:"column:id;primaryKey"`
	ReviewCount int64   `gorm:"column:review_count"`
	Ratings     float64 `gorm:"column:ratings"`
}

func (Shop) TableName() string {
	return "shops"
}
