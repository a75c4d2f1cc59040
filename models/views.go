package models

import "time"

// OrderView is the admin dashboard's order row, derived from the
// transaction log rather than the orders collection.
type OrderView struct {
	ID            string    `json:"id"`
	CustomerID    string    `json:"customerId"`
	CustomerEmail string    `json:"customerEmail"`
	IsGuest       bool      `json:"isGuest"`
	TotalCents    int       `json:"total"`
	ItemCount     int       `json:"itemCount"`
	Status        string    `json:"status"`
	TransactionID string    `json:"transactionId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// CustomerView is one grouped customer as seen by the admin dashboard.
type CustomerView struct {
	ID             string          `json:"id"`
	IsGuest        bool            `json:"isGuest"`
	Email          string          `json:"email"`
	FirstName      string          `json:"firstName"`
	LastName       string          `json:"lastName"`
	LatestShipping ShippingAddress `json:"latestShipping"`
	Metrics        CustomerMetrics `json:"metrics"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

type CustomerMetrics struct {
	TotalOrders       int `json:"totalOrders"`
	TotalSpentCents   int `json:"totalSpent"`
	AverageOrderValue int `json:"averageOrderValue"`
}
