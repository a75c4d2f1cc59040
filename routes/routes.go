package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/apexsim/storefront-backend/controllers"
	"github.com/apexsim/storefront-backend/middleware"
)

// Controllers bundles everything Register wires onto the engine.
type Controllers struct {
	Checkout *controllers.CheckoutController
	Webhook  *controllers.WebhookController
	Admin    *controllers.AdminController
	Products *controllers.ProductController
	Cart     *controllers.CartController
	Auth     *middleware.Auth
}

func Register(r *gin.Engine, c *Controllers) {
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/payments/client-token", c.Checkout.ClientToken)
	r.POST("/checkout", c.Auth.Optional(), c.Checkout.SubmitCheckout)

	r.POST("/webhooks/stripe", c.Webhook.StripeWebhook)

	r.GET("/products", c.Products.ListProducts)
	r.GET("/products/:id", c.Products.GetProduct)

	cartRoutes := r.Group("/cart")
	cartRoutes.Use(c.Auth.Required())
	cartRoutes.GET("", c.Cart.GetCart)
	cartRoutes.PUT("", c.Cart.SaveCart)
	cartRoutes.DELETE("", c.Cart.DeleteCart)

	adminRoutes := r.Group("/admin")
	adminRoutes.Use(c.Auth.Required(), c.Auth.AdminOnly())
	adminRoutes.GET("/orders", c.Admin.ListOrders)
	adminRoutes.GET("/orders/:id", c.Admin.GetOrder)
	adminRoutes.PATCH("/orders/:id", c.Admin.UpdateOrder)
	adminRoutes.GET("/customers", c.Admin.ListCustomers)
	adminRoutes.GET("/transactions", c.Admin.ListTransactions)
	adminRoutes.POST("/products", c.Products.CreateProduct)
	adminRoutes.PATCH("/products/:id", c.Products.UpdateProduct)
}
