package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/PbxInder84/carzone-sub001/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetProducts lists products, optionally filtered by category or seller,
// with limit/offset paging.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("Category").Preload("Seller").Order("created_at DESC")

		if catID := c.Query("category_id"); catID != "" {
			query = query.Where("category_id = ?", catID)
		}
		if sellerID := c.Query("seller_id"); sellerID != "" {
			query = query.Where("seller_id = ?", sellerID)
		}
		if search := c.Query("search"); search != "" {
			query = query.Where("name LIKE ?", "%"+search+"%")
		}

		limit := 50
		if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 && l <= 200 {
			limit = l
		}
		offset := 0
		if o, err := strconv.Atoi(c.Query("offset")); err == nil && o > 0 {
			offset = o
		}

		var products []models.Product
		if err := query.Limit(limit).Offset(offset).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		c.JSON(http.StatusOK, products)
	}
}
