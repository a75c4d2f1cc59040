package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/apexsim/storefront-backend/apperrors"
	"github.com/apexsim/storefront-backend/models"
)

func TestUpdateOrder_FulfillAction(t *testing.T) {
	orders := &fakeOrderRepo{}
	order := &models.Order{
		ID:                uuid.New(),
		Status:            models.OrderStatusPaid,
		FulfillmentStatus: models.FulfillmentUnfulfilled,
	}
	orders.orders = append(orders.orders, order)

	svc := NewOrderAdminService(orders, NewEventPublisher(nil, nil, "", zap.NewNop()), zap.NewNop())

	err := svc.UpdateOrder(context.Background(), order.ID, models.OrderStatusCompleted, models.FulfillmentFulfilled)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, order.Status)
	assert.Equal(t, models.FulfillmentFulfilled, order.FulfillmentStatus)
}

func TestUpdateOrder_RejectsUnknownStatus(t *testing.T) {
	orders := &fakeOrderRepo{}
	svc := NewOrderAdminService(orders, NewEventPublisher(nil, nil, "", zap.NewNop()), zap.NewNop())

	err := svc.UpdateOrder(context.Background(), uuid.New(), "cancelled-ish", "")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	err = svc.UpdateOrder(context.Background(), uuid.New(), "", "shipped")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	err = svc.UpdateOrder(context.Background(), uuid.New(), "", "")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}
