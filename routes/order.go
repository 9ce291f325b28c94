package routes

import (
	orderControllers "github.com/PbxInder84/carzone-sub001/controllers/order"
	"github.com/PbxInder84/carzone-sub001/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupOrderRoutes registers the "/api/orders/*" endpoints.
func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	orders := r.Group("/api/orders")
	orders.Use(middleware.ValidateToken)
	{
		// Create a new order from a client-supplied item list
		orders.POST("", orderControllers.CreateOrderHandler(db))

		// List orders (own / seller's / all for admin)
		orders.GET("", orderControllers.GetOrdersHandler(db))

		// Fetch a single order by id or order_ref
		orders.GET("/:id", orderControllers.GetOrderByIDHandler(db))

		// Update order status (admin or seller with an item in the order)
		orders.PUT("/:id", orderControllers.UpdateOrderStatusHandler(db))
	}
}
