package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdmin must run after ValidateToken.
func RequireAdmin(c *gin.Context) {
	if c.GetString("role") != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		c.Abort()
		return
	}
	c.Next()
}

// RequireSellerOrAdmin must run after ValidateToken.
func RequireSellerOrAdmin(c *gin.Context) {
	role := c.GetString("role")
	if role != "seller" && role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Seller or admin access required"})
		c.Abort()
		return
	}
	c.Next()
}
