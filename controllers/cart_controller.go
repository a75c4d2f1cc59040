package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/apexsim/storefront-backend/apperrors"
	"github.com/apexsim/storefront-backend/middleware"
	"github.com/apexsim/storefront-backend/models"
	"github.com/apexsim/storefront-backend/repository"
)

type CartController struct {
	Carts  repository.CartRepository
	Env    string
	Logger *zap.Logger
}

func (cc *CartController) GetCart(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	cart, err := cc.Carts.GetCart(c.Request.Context(), principal.ID)
	if err != nil {
		cc.Logger.Error("Failed to load cart", zap.String("user_id", principal.ID), zap.Error(err))
		apperrors.Respond(c, apperrors.Storage("Failed to load cart", err), cc.Env)
		return
	}
	if cart == nil {
		cart = &models.Cart{UserID: principal.ID, Items: []models.CartItem{}}
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart, "total": cart.TotalCents()})
}

func (cc *CartController) SaveCart(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	var req struct {
		Items []models.CartItem `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.Validation("Invalid cart payload", err), cc.Env)
		return
	}

	cart := &models.Cart{UserID: principal.ID, Items: req.Items}
	if err := cc.Carts.SaveCart(c.Request.Context(), cart); err != nil {
		cc.Logger.Error("Failed to save cart", zap.String("user_id", principal.ID), zap.Error(err))
		apperrors.Respond(c, apperrors.Storage("Failed to save cart", err), cc.Env)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart, "total": cart.TotalCents()})
}

func (cc *CartController) DeleteCart(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	if err := cc.Carts.DeleteCart(c.Request.Context(), principal.ID); err != nil {
		apperrors.Respond(c, apperrors.Storage("Failed to delete cart", err), cc.Env)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
