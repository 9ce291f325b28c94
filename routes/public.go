package routes

import (
	couponControllers "github.com/PbxInder84/carzone-sub001/controllers/coupon"
	productcontroller "github.com/PbxInder84/carzone-sub001/controllers/product"
	reviewControllers "github.com/PbxInder84/carzone-sub001/controllers/review"
	settingsControllers "github.com/PbxInder84/carzone-sub001/controllers/settings"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupPublicRoutes registers unauthenticated catalog browsing endpoints.
func SetupPublicRoutes(r *gin.Engine, db *gorm.DB) {
	api := r.Group("/api")
	{
		// ──────────────── Browse Products ────────────────
		api.GET("/products", productcontroller.GetProducts(db))
		api.GET("/products/:id", productcontroller.GetProductByID(db))
		api.GET("/products/:id/reviews", reviewControllers.GetProductReviews(db))

		// ──────────────── Browse Categories ────────────────
		api.GET("/categories", productcontroller.GetAllCategoriesWithProducts(db))
		api.GET("/categories/:id", productcontroller.GetCategoryByID(db))

		// ──────────────── Site Settings ────────────────
		api.GET("/settings", settingsControllers.GetSettings(db))

		// ──────────────── Coupon Preview ────────────────
		api.POST("/coupons/validate", couponControllers.ValidateCoupon(db))
	}
}
