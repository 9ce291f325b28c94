package couponControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/PbxInder84/carzone-sub001/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CouponInput struct {
	Code               string          `json:"code" binding:"required"`
	Description        string          `json:"description"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
	MinimumPurchase    decimal.Decimal `json:"minimum_purchase"`
	IsActive           *bool           `json:"is_active"`
	StartDate          *time.Time      `json:"start_date"`
	EndDate            *time.Time      `json:"end_date"`
}

type ValidateCouponInput struct {
	Code  string          `json:"code" binding:"required"`
	Total decimal.Decimal `json:"total" binding:"required"`
}

// POST /api/coupons — admin
func CreateCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CouponInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		coupon := models.Coupon{
			Code:               input.Code,
			Description:        input.Description,
			DiscountPercentage: input.DiscountPercentage,
			DiscountAmount:     input.DiscountAmount,
			MinimumPurchase:    input.MinimumPurchase,
			IsActive:           true,
			StartDate:          input.StartDate,
			EndDate:            input.EndDate,
		}
		if input.IsActive != nil {
			coupon.IsActive = *input.IsActive
		}

		if err := db.Create(&coupon).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create coupon"})
			return
		}

		c.JSON(http.StatusCreated, coupon)
	}
}

// GET /api/coupons — admin
func GetAllCoupons(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var coupons []models.Coupon
		if err := db.Order("created_at DESC").Find(&coupons).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch coupons"})
			return
		}
		c.JSON(http.StatusOK, coupons)
	}
}

// PUT /api/coupons/:id — admin
func UpdateCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var coupon models.Coupon
		if err := db.First(&coupon, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found"})
			return
		}

		var input CouponInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		coupon.Code = input.Code
		coupon.Description = input.Description
		coupon.DiscountPercentage = input.DiscountPercentage
		coupon.DiscountAmount = input.DiscountAmount
		coupon.MinimumPurchase = input.MinimumPurchase
		coupon.StartDate = input.StartDate
		coupon.EndDate = input.EndDate
		if input.IsActive != nil {
			coupon.IsActive = *input.IsActive
		}

		if err := db.Save(&coupon).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update coupon"})
			return
		}

		c.JSON(http.StatusOK, coupon)
	}
}

// DELETE /api/coupons/:id — admin
func DeleteCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		result := db.Delete(&models.Coupon{}, "id = ?", id)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete coupon"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Coupon deleted"})
	}
}

// POST /api/coupons/validate
// Previews the discount a coupon would grant on a given total, using the
// same rules as order creation.
func ValidateCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ValidateCouponInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var coupon models.Coupon
		if err := db.Where("code = ? AND is_active = ?", input.Code, true).
			Where("end_date IS NULL OR end_date >= ?", time.Now()).
			First(&coupon).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid or expired coupon"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate coupon"})
			return
		}

		if input.Total.LessThan(coupon.MinimumPurchase) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Order total does not meet the coupon minimum purchase",
			})
			return
		}

		discount := coupon.DiscountFor(input.Total)
		newTotal := input.Total.Sub(discount)
		if newTotal.IsNegative() {
			newTotal = decimal.Zero
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"discount": discount,
			"total":    newTotal,
		})
	}
}
