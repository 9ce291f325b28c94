package routes

import (
	cartControllers "github.com/PbxInder84/carzone-sub001/controllers/cart"
	checkoutControllers "github.com/PbxInder84/carzone-sub001/controllers/checkout"
	reviewControllers "github.com/PbxInder84/carzone-sub001/controllers/review"
	userControllers "github.com/PbxInder84/carzone-sub001/controllers/user"
	"github.com/PbxInder84/carzone-sub001/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupUserRoutes registers all JWT-protected customer endpoints.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	userGroup := r.Group("/api")
	userGroup.Use(middleware.ValidateToken)
	{
		// ──────────────── User Profile ────────────────
		userGroup.GET("/users/me", userControllers.GetUser(db))    // GET /api/users/me
		userGroup.PUT("/users/me", userControllers.UpdateUser(db)) // PUT /api/users/me

		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetUserCart(db))                       // GET /api/cart
			cartGroup.POST("", cartControllers.AddCartItem(db))                      // POST /api/cart
			cartGroup.PUT("/:product_id", cartControllers.UpdateCartItemQuantity(db)) // PUT /api/cart/:product_id
			cartGroup.DELETE("/:product_id", cartControllers.DeleteCartItem(db))      // DELETE /api/cart/:product_id
			cartGroup.DELETE("", cartControllers.ClearUserCart(db))                  // DELETE /api/cart
		}

		// ──────────────── Checkout ────────────────
		userGroup.POST("/checkout", checkoutControllers.CheckoutHandler(db))
		userGroup.GET("/checkout/confirmation/:orderId", checkoutControllers.OrderConfirmationHandler(db))
		userGroup.PUT("/checkout/:orderId/update-payment", checkoutControllers.UpdatePaymentHandler(db))

		// ──────────────── Reviews ────────────────
		userGroup.POST("/products/:id/reviews", reviewControllers.UpsertReview(db))
		userGroup.DELETE("/reviews/:id", reviewControllers.DeleteReview(db))
	}
}
