package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/apexsim/storefront-backend/models"
)

// TransactionLogRepository is the append-only audit trail. Entries are
// never updated or deleted.
type TransactionLogRepository interface {
	Append(ctx context.Context, entry *models.TransactionLogEntry) error
	// FindByTypeAndStatus returns matching entries, newest first.
	FindByTypeAndStatus(ctx context.Context, eventType models.EventType, status string) ([]models.TransactionLogEntry, error)
	// FindRecent returns the newest entries of any type, for operator diagnosis.
	FindRecent(ctx context.Context, limit int64) ([]models.TransactionLogEntry, error)
}

// OrderRepository persists orders and their denormalized customers.
type OrderRepository interface {
	// CreateWithCustomer writes the order and upserts the customer inside one
	// multi-document transaction; either both land or neither does.
	CreateWithCustomer(ctx context.Context, order *models.Order, customer *models.Customer) (string, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByTransactionID(ctx context.Context, transactionID string) (*models.Order, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	UpdateByTransactionID(ctx context.Context, transactionID string, updates map[string]interface{}) error
}

// UserRepository resolves authenticated principals from their stored profile.
type UserRepository interface {
	FindPrincipal(ctx context.Context, userID string) (*models.Principal, error)
}

// ProductRepository is the catalog store.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Find(ctx context.Context, filter map[string]interface{}, limit, skip int64) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
}

// CartRepository keeps per-user carts.
type CartRepository interface {
	GetCart(ctx context.Context, userID string) (*models.Cart, error)
	SaveCart(ctx context.Context, cart *models.Cart) error
	DeleteCart(ctx context.Context, userID string) error
}
