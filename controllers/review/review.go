package reviewControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/PbxInder84/carzone-sub001/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ReviewInput struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// POST /api/products/:id/reviews
// One review per (user, product); posting again updates the existing one.
func UpsertReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		productID := c.Param("id")

		var input ReviewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", productID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		var review models.Review
		err := db.Where("user_id = ? AND product_id = ?", userID, product.ID).First(&review).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				review = models.Review{
					ProductID: product.ID,
					UserID:    userID,
					Rating:    input.Rating,
					Comment:   input.Comment,
				}
				if err := db.Create(&review).Error; err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
					return
				}
				c.JSON(http.StatusCreated, review)
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch review"})
			return
		}

		review.Rating = input.Rating
		review.Comment = input.Comment
		if err := db.Save(&review).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review"})
			return
		}

		c.JSON(http.StatusOK, review)
	}
}

// GET /api/products/:id/reviews
func GetProductReviews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Param("id")

		var reviews []models.Review
		if err := db.Preload("User").Where("product_id = ?", productID).
			Order("created_at DESC").Find(&reviews).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
			return
		}

		c.JSON(http.StatusOK, reviews)
	}
}

// DELETE /api/reviews/:id — author or admin
func DeleteReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		role := c.GetString("role")

		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review id"})
			return
		}

		var review models.Review
		if err := db.First(&review, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}

		if role != "admin" && review.UserID != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to delete this review"})
			return
		}

		if err := db.Delete(&review).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
	}
}
