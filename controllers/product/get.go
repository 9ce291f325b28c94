package productcontroller

import (
	"net/http"

	"github.com/PbxInder84/carzone-sub001/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetProductByID fetches a product with its category, seller, and reviews.
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var product models.Product
		if err := db.
			Preload("Category").
			Preload("Seller").
			Preload("Reviews").
			Preload("Reviews.User").
			First(&product, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}
