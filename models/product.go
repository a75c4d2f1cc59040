package models

import (
	"time"

	"github.com/google/uuid"
)

// Product kinds: apparel items and bookable simulator sessions share one
// catalog collection.
const (
	ProductKindApparel = "apparel"
	ProductKindSession = "session"
)

type Product struct {
	ID              uuid.UUID `bson:"_id" json:"id"`
	Name            string    `bson:"name" json:"name"`
	SKU             string    `bson:"sku" json:"sku"`
	Kind            string    `bson:"kind" json:"kind"`
	Category        string    `bson:"category,omitempty" json:"category,omitempty"`
	Description     string    `bson:"description,omitempty" json:"description,omitempty"`
	PriceCents      int       `bson:"price_cents" json:"price"`
	Sizes           []string  `bson:"sizes,omitempty" json:"sizes,omitempty"`
	DurationMinutes int       `bson:"duration_minutes,omitempty" json:"durationMinutes,omitempty"`
	ImageURL        string    `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	Active          bool      `bson:"active" json:"active"`
	CreatedAt       time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updatedAt"`
}
