package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up all route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db)

	// Public catalog browsing
	SetupPublicRoutes(r, db)

	// JWT-protected user routes (cart, checkout, reviews)
	SetupUserRoutes(r, db)

	// Order routes
	SetupOrderRoutes(r, db)

	// Admin / seller management routes
	SetupAdminRoutes(r, db)
}
