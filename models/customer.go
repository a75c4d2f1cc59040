package models

import "time"

// Customer is the denormalized customer document written alongside an
// order. The ID is the authenticated user id, or guest_<timestamp> for
// guest checkouts. Writes are upserts keyed by ID so repeat buyers merge
// into one document.
type Customer struct {
	ID                string            `bson:"_id" json:"id"`
	IsGuest           bool              `bson:"is_guest" json:"isGuest"`
	Email             string            `bson:"email" json:"email"`
	FirstName         string            `bson:"first_name" json:"firstName"`
	LastName          string            `bson:"last_name" json:"lastName"`
	Orders            []string          `bson:"orders" json:"orders"`
	ShippingAddresses []ShippingAddress `bson:"shipping_addresses" json:"shippingAddresses"`
	CreatedAt         time.Time         `bson:"created_at" json:"createdAt"`
	UpdatedAt         time.Time         `bson:"updated_at" json:"updatedAt"`
}
