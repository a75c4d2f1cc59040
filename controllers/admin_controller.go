package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/apexsim/storefront-backend/apperrors"
	"github.com/apexsim/storefront-backend/repository"
	"github.com/apexsim/storefront-backend/services"
)

// AdminController serves the dashboard: log-derived order/customer views,
// stored order detail, and fulfillment actions.
type AdminController struct {
	Aggregation *services.AggregationService
	OrderAdmin  *services.OrderAdminService
	LogRepo     repository.TransactionLogRepository
	Env         string
	Logger      *zap.Logger
}

func (ac *AdminController) ListOrders(c *gin.Context) {
	listing, err := ac.Aggregation.ListOrders(c.Request.Context())
	if err != nil {
		apperrors.Respond(c, err, ac.Env)
		return
	}
	c.JSON(http.StatusOK, listing)
}

func (ac *AdminController) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.Validation("Invalid order id", err), ac.Env)
		return
	}

	order, err := ac.OrderAdmin.GetOrder(c.Request.Context(), id)
	if err != nil {
		apperrors.Respond(c, err, ac.Env)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (ac *AdminController) UpdateOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.Validation("Invalid order id", err), ac.Env)
		return
	}

	var req struct {
		Status            string `json:"status"`
		FulfillmentStatus string `json:"fulfillmentStatus"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.Validation("Invalid update payload", err), ac.Env)
		return
	}

	if err := ac.OrderAdmin.UpdateOrder(c.Request.Context(), id, req.Status, req.FulfillmentStatus); err != nil {
		apperrors.Respond(c, err, ac.Env)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (ac *AdminController) ListCustomers(c *gin.Context) {
	customers, err := ac.Aggregation.ListCustomers(c.Request.Context())
	if err != nil {
		apperrors.Respond(c, err, ac.Env)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

// ListTransactions exposes the raw recent log entries for operator
// diagnosis of checkout failures.
func (ac *AdminController) ListTransactions(c *gin.Context) {
	entries, err := ac.LogRepo.FindRecent(c.Request.Context(), 200)
	if err != nil {
		ac.Logger.Error("Failed to read transaction log", zap.Error(err))
		apperrors.Respond(c, apperrors.Storage("Failed to read transaction log", err), ac.Env)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": entries})
}
