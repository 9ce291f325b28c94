package routes

import (
	adminController "github.com/PbxInder84/carzone-sub001/controllers/admin"
	cartControllers "github.com/PbxInder84/carzone-sub001/controllers/cart"
	couponControllers "github.com/PbxInder84/carzone-sub001/controllers/coupon"
	orderControllers "github.com/PbxInder84/carzone-sub001/controllers/order"
	productcontroller "github.com/PbxInder84/carzone-sub001/controllers/product"
	settingsControllers "github.com/PbxInder84/carzone-sub001/controllers/settings"
	userControllers "github.com/PbxInder84/carzone-sub001/controllers/user"
	"github.com/PbxInder84/carzone-sub001/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers seller/admin management endpoints.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	// ─────────── Product Management (seller or admin) ───────────
	sellerGroup := r.Group("/api")
	sellerGroup.Use(middleware.ValidateToken, middleware.RequireSellerOrAdmin)
	{
		sellerGroup.POST("/products", productcontroller.CreateProduct(db))
		sellerGroup.PUT("/products/:id", productcontroller.UpdateProduct(db))
		sellerGroup.DELETE("/products/:id", productcontroller.DeleteProduct(db))
	}

	adminGroup := r.Group("/api")
	adminGroup.Use(middleware.ValidateToken, middleware.RequireAdmin)
	{
		// ─────────── User Management ───────────
		adminGroup.GET("/admin/users", userControllers.GetAllUsers(db))
		adminGroup.PUT("/users/:id/role", userControllers.UpdateUserRole(db))
		adminGroup.GET("/admin/user-cart/:user_id", cartControllers.GetAdminUserCart(db))

		// ─────────── Category Management ───────────
		adminGroup.POST("/categories", productcontroller.CreateCategory(db))
		adminGroup.PUT("/categories/:id", productcontroller.UpdateCategory(db))
		adminGroup.DELETE("/categories/:id", productcontroller.DeleteCategory(db))

		// ─────────── Coupon Management ───────────
		adminGroup.POST("/coupons", couponControllers.CreateCoupon(db))
		adminGroup.GET("/coupons", couponControllers.GetAllCoupons(db))
		adminGroup.PUT("/coupons/:id", couponControllers.UpdateCoupon(db))
		adminGroup.DELETE("/coupons/:id", couponControllers.DeleteCoupon(db))

		// ─────────── Site Settings ───────────
		adminGroup.PUT("/settings", settingsControllers.UpdateSettings(db))

		// ─────────── Order Tools ───────────
		adminGroup.GET("/admin/orders/export", orderControllers.ExportOrdersToExcel(db))
		adminGroup.GET("/admin/orders/ws", orderControllers.OrderWebSocketHandler)

		// ─────────── Danger Zone ───────────
		adminGroup.POST("/admin/reset", adminController.ResetData(db))
	}
}
