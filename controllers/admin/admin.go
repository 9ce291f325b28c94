package adminController

import (
	"net/http"

	"github.com/PbxInder84/carzone-sub001/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// POST /api/admin/reset
// Wipes all storefront data in one transaction, children before parents,
// so a partial reset cannot occur.
func ResetData(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := db.Transaction(func(tx *gorm.DB) error {
			tables := []interface{}{
				&models.OrderCoupon{},
				&models.OrderItem{},
				&models.Order{},
				&models.CartItem{},
				&models.Review{},
				&models.Product{},
				&models.Category{},
				&models.Coupon{},
			}
			for _, table := range tables {
				if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
					Unscoped().Delete(table).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset data"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "All storefront data cleared"})
	}
}
