package entity

import "time"

// Rating is one user's score for one store. At most one row exists per
// (UserID, StoreID) pair; a repeat submission updates the existing row.
type Rating struct {
	ID        string
	UserID    string
	StoreID   string
	Rating    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StoreStats is the per-store aggregate: average over all ratings plus the
// row count. Average is nil when the store has no ratings, never zero.
type StoreStats struct {
	StoreID   string
	StoreName string
	Average   *float64
	Count     int64
}

// StoreListing is one row of the per-user store listing: the store joined
// with its overall average and the caller's own rating, if any.
type StoreListing struct {
	Store
	Average    *float64
	Count      int64
	UserRating *int
}

// StoreRater is one rating of an owner's store together with the rater's
// identity fields, as exposed on the store-owner dashboard.
type StoreRater struct {
	UserID      string
	UserName    string
	UserEmail   string
	UserAddress string
	StoreID     string
	StoreName   string
	Rating      int
	CreatedAt   time.Time
}
