package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/apexsim/storefront-backend/apperrors"
	"github.com/apexsim/storefront-backend/models"
	"github.com/apexsim/storefront-backend/repository"
)

type ProductController struct {
	Products repository.ProductRepository
	Env      string
	Logger   *zap.Logger
}

// ListProducts serves the storefront catalog: apparel and simulator
// sessions, filterable by kind and category.
func (pc *ProductController) ListProducts(c *gin.Context) {
	filter := map[string]interface{}{"active": true}
	if kind := c.Query("kind"); kind != "" {
		filter["kind"] = kind
	}
	if category := c.Query("category"); category != "" {
		filter["category"] = category
	}

	limit := queryInt(c, "limit", 50)
	skip := queryInt(c, "skip", 0)

	products, err := pc.Products.Find(c.Request.Context(), filter, limit, skip)
	if err != nil {
		pc.Logger.Error("Failed to list products", zap.Error(err))
		apperrors.Respond(c, apperrors.Storage("Failed to list products", err), pc.Env)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (pc *ProductController) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.Validation("Invalid product id", err), pc.Env)
		return
	}

	product, err := pc.Products.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct adds a catalog entry (admin only).
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var req struct {
		Name            string   `json:"name" binding:"required"`
		SKU             string   `json:"sku" binding:"required"`
		Kind            string   `json:"kind" binding:"required"`
		Category        string   `json:"category"`
		Description     string   `json:"description"`
		PriceCents      int      `json:"price" binding:"required,min=1"`
		Sizes           []string `json:"sizes"`
		DurationMinutes int      `json:"durationMinutes"`
		ImageURL        string   `json:"imageUrl"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.Validation("Invalid product payload", err), pc.Env)
		return
	}
	if req.Kind != models.ProductKindApparel && req.Kind != models.ProductKindSession {
		apperrors.Respond(c, apperrors.Validation("Unknown product kind", nil), pc.Env)
		return
	}

	product := &models.Product{
		ID:              uuid.New(),
		Name:            req.Name,
		SKU:             req.SKU,
		Kind:            req.Kind,
		Category:        req.Category,
		Description:     req.Description,
		PriceCents:      req.PriceCents,
		Sizes:           req.Sizes,
		DurationMinutes: req.DurationMinutes,
		ImageURL:        req.ImageURL,
		Active:          true,
	}
	if err := pc.Products.Create(c.Request.Context(), product); err != nil {
		pc.Logger.Error("Failed to create product", zap.Error(err))
		apperrors.Respond(c, apperrors.Storage("Failed to create product", err), pc.Env)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct patches catalog fields (admin only).
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.Validation("Invalid product id", err), pc.Env)
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.Validation("Invalid update payload", err), pc.Env)
		return
	}

	allowed := map[string]string{
		"name": "name", "category": "category", "description": "description",
		"price": "price_cents", "imageUrl": "image_url", "active": "active",
	}
	updates := map[string]interface{}{}
	for key, col := range allowed {
		if v, ok := req[key]; ok {
			updates[col] = v
		}
	}
	if len(updates) == 0 {
		apperrors.Respond(c, apperrors.Validation("Nothing to update", nil), pc.Env)
		return
	}

	if err := pc.Products.Update(c.Request.Context(), id, updates); err != nil {
		apperrors.Respond(c, apperrors.Storage("Failed to update product", err), pc.Env)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func queryInt(c *gin.Context, key string, fallback int64) int64 {
	if raw := c.Query(key); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil && v >= 0 {
			return v
		}
	}
	return fallback
}
