package services

import (
	"context"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/apexsim/storefront-backend/apperrors"
	"github.com/apexsim/storefront-backend/models"
	"github.com/apexsim/storefront-backend/repository"
)

// AggregationService derives the admin dashboard's order and customer views
// from the append-only transaction log instead of reading the stored
// documents directly.
type AggregationService struct {
	logRepo repository.TransactionLogRepository
	log     *zap.Logger
}

func NewAggregationService(logRepo repository.TransactionLogRepository, log *zap.Logger) *AggregationService {
	return &AggregationService{logRepo: logRepo, log: log}
}

// OrderListing is the order read model plus how many malformed entries were
// skipped while building it, so low-looking counts are explainable.
type OrderListing struct {
	Orders  []models.OrderView `json:"orders"`
	Skipped int                `json:"skipped"`
}

// ListOrders maps successful checkout_initiated entries to order views,
// newest first. Entries lacking a data payload are skipped, not fatal.
func (s *AggregationService) ListOrders(ctx context.Context) (*OrderListing, error) {
	entries, err := s.logRepo.FindByTypeAndStatus(ctx, models.EventCheckoutInitiated, models.LogStatusSuccess)
	if err != nil {
		return nil, apperrors.Storage("Failed to read transaction log", err)
	}

	listing := &OrderListing{Orders: make([]models.OrderView, 0, len(entries))}
	for i := range entries {
		view := FormatTransactionToOrder(&entries[i])
		if view == nil {
			listing.Skipped++
			s.log.Warn("Skipping malformed transaction log entry",
				zap.String("entry_id", entries[i].ID.String()),
				zap.String("type", string(entries[i].Type)),
				zap.Error(apperrors.MalformedRecord("entry has no data payload")),
			)
			continue
		}
		listing.Orders = append(listing.Orders, *view)
	}
	return listing, nil
}

// FormatTransactionToOrder maps one log entry to an order view. Returns nil
// for entries with no data payload.
func FormatTransactionToOrder(entry *models.TransactionLogEntry) *models.OrderView {
	if entry == nil || entry.Data == nil {
		return nil
	}

	status := models.OrderStatusPending
	if entry.Status == models.LogStatusSuccess {
		status = models.OrderStatusCompleted
	}

	return &models.OrderView{
		ID:            entry.ID.String(),
		CustomerID:    customerKey(entry.Data),
		CustomerEmail: entry.Data.CustomerEmail,
		IsGuest:       entry.Data.IsGuest,
		TotalCents:    entry.Data.AmountCents,
		ItemCount:     entry.Data.ItemCount,
		Status:        status,
		TransactionID: entry.Data.TransactionID,
		CreatedAt:     entry.Timestamp,
	}
}

// ListCustomers groups log entries into customer views, newest activity
// first. Entries with neither a user id nor an email are excluded.
func (s *AggregationService) ListCustomers(ctx context.Context) ([]models.CustomerView, error) {
	entries, err := s.logRepo.FindByTypeAndStatus(ctx, models.EventCheckoutInitiated, models.LogStatusSuccess)
	if err != nil {
		return nil, apperrors.Storage("Failed to read transaction log", err)
	}

	groups := make(map[string][]models.TransactionLogEntry)
	order := make([]string, 0)
	for _, entry := range entries {
		if entry.Data == nil {
			continue
		}
		key := customerKey(entry.Data)
		if key == "" {
			continue
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], entry)
	}

	customers := make([]models.CustomerView, 0, len(groups))
	for _, key := range order {
		view := FormatTransactionToCustomer(groups[key], key)
		if view == nil {
			continue
		}
		customers = append(customers, *view)
	}

	sort.Slice(customers, func(i, j int) bool {
		return customers[i].UpdatedAt.After(customers[j].UpdatedAt)
	})
	return customers, nil
}

// FormatTransactionToCustomer builds one customer view from a group of
// entries sharing a key. The most recent entry supplies the profile; the
// metrics sum across the whole group.
func FormatTransactionToCustomer(entries []models.TransactionLogEntry, key string) *models.CustomerView {
	if len(entries) == 0 {
		return nil
	}

	latest := entries[0]
	earliest := entries[0]
	totalSpent := 0
	for _, entry := range entries {
		if entry.Data == nil {
			continue
		}
		totalSpent += entry.Data.AmountCents
		if entry.Timestamp.After(latest.Timestamp) {
			latest = entry
		}
		if entry.Timestamp.Before(earliest.Timestamp) {
			earliest = entry
		}
	}
	if latest.Data == nil {
		return nil
	}

	count := len(entries)
	avg := int(math.Round(float64(totalSpent) / float64(count)))

	return &models.CustomerView{
		ID:        key,
		IsGuest:   latest.Data.IsGuest,
		Email:     latest.Data.CustomerEmail,
		FirstName: latest.Data.FirstName,
		LastName:  latest.Data.LastName,
		LatestShipping: models.ShippingAddress{
			FirstName: latest.Data.FirstName,
			LastName:  latest.Data.LastName,
			Email:     latest.Data.CustomerEmail,
			Address:   latest.Data.Address,
			City:      latest.Data.City,
			State:     latest.Data.State,
			ZipCode:   latest.Data.ZipCode,
			Country:   latest.Data.Country,
			Phone:     latest.Data.Phone,
		},
		Metrics: models.CustomerMetrics{
			TotalOrders:       count,
			TotalSpentCents:   totalSpent,
			AverageOrderValue: avg,
		},
		CreatedAt: earliest.Timestamp,
		UpdatedAt: latest.Timestamp,
	}
}

// customerKey prefers the user id and falls back to the email; entries with
// neither cannot be grouped.
func customerKey(data *models.EventData) string {
	if data.UserID != "" {
		return data.UserID
	}
	return data.CustomerEmail
}
