package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/apexsim/storefront-backend/apperrors"
	"github.com/apexsim/storefront-backend/gateway"
	"github.com/apexsim/storefront-backend/logger"
	"github.com/apexsim/storefront-backend/middleware"
	"github.com/apexsim/storefront-backend/models"
	awspkg "github.com/apexsim/storefront-backend/pkg/aws"
	"github.com/apexsim/storefront-backend/services"
)

type CheckoutController struct {
	Checkout *services.CheckoutService
	Gateway  gateway.Processor
	TxLog    *services.TransactionLogger
	Metrics  *awspkg.MetricsClient
	Env      string
	Logger   *zap.Logger
}

// ClientToken hands the browser payment widget its initialization token.
func (cc *CheckoutController) ClientToken(c *gin.Context) {
	token, err := cc.Gateway.ClientToken(c.Request.Context())
	if err != nil {
		cc.Logger.Error("Client token generation failed", zap.Error(err))
		apperrors.Respond(c, err, cc.Env)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientToken": token})
}

// SubmitCheckout runs one checkout attempt. Unexpected failures are
// recorded as system_error entries and masked behind a generic message in
// production.
func (cc *CheckoutController) SubmitCheckout(c *gin.Context) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic in checkout: %v", r)
			cc.TxLog.LogError(c.Request.Context(), models.EventSystemError, nil, err)
			cc.Logger.Error("Checkout panicked", logger.WithRequestID(c, zap.Any("panic", r))...)
			apperrors.Respond(c, apperrors.Internal(err), cc.Env)
		}
	}()

	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.Validation("Invalid checkout payload", err), cc.Env)
		return
	}

	// An authenticated principal always wins over the client-sent userId.
	if principal := middleware.GetPrincipal(c); principal != nil {
		req.UserID = principal.ID
	}

	recordMetric(cc.Metrics, awspkg.MetricCheckoutsInitiated)

	resp, err := cc.Checkout.Checkout(c.Request.Context(), &req)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindGateway) {
			recordMetric(cc.Metrics, awspkg.MetricPaymentFailed)
		}
		if !isAppError(err) {
			cc.TxLog.LogError(c.Request.Context(), models.EventSystemError, nil, err)
		}
		apperrors.Respond(c, err, cc.Env)
		return
	}

	recordMetric(cc.Metrics, awspkg.MetricPaymentSucceeded)
	recordMetric(cc.Metrics, awspkg.MetricOrdersCreated)

	c.JSON(http.StatusOK, resp)
}

// recordMetric fires a business counter without blocking the request path.
func recordMetric(mc *awspkg.MetricsClient, name string) {
	if mc == nil || !mc.IsEnabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mc.RecordCount(ctx, name, nil)
	}()
}

func isAppError(err error) bool {
	return apperrors.IsKind(err, apperrors.KindGateway) ||
		apperrors.IsKind(err, apperrors.KindStorage) ||
		apperrors.IsKind(err, apperrors.KindValidation) ||
		apperrors.IsKind(err, apperrors.KindAuthorization)
}
