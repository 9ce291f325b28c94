package productcontroller

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/PbxInder84/carzone-sub001/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DeleteProduct soft-deletes a product. Sellers may only delete their own.
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		role := c.GetString("role")
		id := c.Param("id")

		var product models.Product
		if err := db.First(&product, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		if role != "admin" && product.SellerID != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to delete this product"})
			return
		}

		// Delete image file
		if product.Image != "" {
			imagePath := filepath.Join(uploadDir(), "products", filepath.Base(product.Image))
			_ = os.Remove(imagePath)
		}

		if err := db.Delete(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}
