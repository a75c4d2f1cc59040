package models

import "time"

// Cart is the per-user cart blob stored in Redis.
type Cart struct {
	UserID    string     `json:"user_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CartItem struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	SKU        string `json:"sku,omitempty"`
	Quantity   int    `json:"quantity"`
	PriceCents int    `json:"price"`
	Size       string `json:"size,omitempty"`
}

// TotalCents sums line totals.
func (c *Cart) TotalCents() int {
	total := 0
	for _, item := range c.Items {
		total += item.PriceCents * item.Quantity
	}
	return total
}
