package checkoutControllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/PbxInder84/carzone-sub001/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CheckoutRequest struct {
	ShippingAddress string `json:"shipping_address" binding:"required"`
	PaymentMethod   string `json:"payment_method"`
	PaymentDetails  string `json:"payment_details"`
}

type UpdatePaymentRequest struct {
	PaymentDetails string `json:"payment_details" binding:"required"`
}

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// isCheckoutInputErr separates business-rule failures (400) from
// unexpected errors (500).
func isCheckoutInputErr(err error) bool {
	return errors.Is(err, ErrEmptyCart) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrInvalidPaymentMethod)
}

func mapPaymentMethod(method string) (models.PaymentMethod, error) {
	switch method {
	case "", string(models.PaymentMethodCOD):
		return models.PaymentMethodCOD, nil
	case string(models.PaymentMethodUPI):
		return models.PaymentMethodUPI, nil
	case string(models.PaymentMethodNetBanking):
		return models.PaymentMethodNetBanking, nil
	default:
		return "", ErrInvalidPaymentMethod
	}
}

// Generate unique order reference
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// Checkout places an order from the user's cart. The whole workflow runs
// in one transaction: load cart, verify stock, decrement,
// create order + items, clear cart. Any failure rolls everything back.
func Checkout(db *gorm.DB, userID uint, req CheckoutRequest) (*models.Order, error) {
	method, err := mapPaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	var orderID uint
	err = db.Transaction(func(tx *gorm.DB) error {
		var cartItems []models.CartItem
		if err := tx.Preload("Product").Preload("Product.Seller").
			Where("user_id = ?", userID).Find(&cartItems).Error; err != nil {
			return err
		}
		if len(cartItems) == 0 {
			return ErrEmptyCart
		}

		total := decimal.Zero
		var orderItems []models.OrderItem

		for _, item := range cartItems {
			var product models.Product
			if err := tx.First(&product, "id = ?", item.ProductID).Error; err != nil {
				return err
			}

			if product.StockQuantity < item.Quantity {
				return fmt.Errorf("%w for product: %s", ErrInsufficientStock, product.Name)
			}

			// Guarded decrement: the stock_quantity >= ? condition makes the
			// deduction atomic, so two concurrent checkouts cannot both drain
			// the same stock below zero.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock_quantity >= ?", product.ID, item.Quantity).
				UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w for product: %s", ErrInsufficientStock, product.Name)
			}

			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))

			orderItems = append(orderItems, models.OrderItem{
				ProductID:          product.ID,
				SellerID:           product.SellerID,
				Quantity:           item.Quantity,
				PriceAtTimeOfOrder: product.Price,
			})
		}

		// COD stays pending; upi/net_banking model an instant out-of-band
		// confirmation, so the payment is marked completed at once.
		paymentStatus := models.PaymentStatusPending
		var paymentDate *time.Time
		if method != models.PaymentMethodCOD {
			paymentStatus = models.PaymentStatusCompleted
			now := time.Now()
			paymentDate = &now
		}

		order := models.Order{
			OrderRef:        generateOrderRef(),
			UserID:          userID,
			Items:           orderItems,
			TotalAmount:     total,
			ShippingAddress: req.ShippingAddress,
			PaymentMethod:   method,
			PaymentStatus:   paymentStatus,
			PaymentDetails:  req.PaymentDetails,
			PaymentDate:     paymentDate,
			OrderStatus:     models.OrderStatusProcessing,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// Clear cart items
		if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Read-after-commit for the response payload
	var order models.Order
	if err := db.Preload("Items").Preload("Items.Product").Preload("Items.Seller").
		First(&order, orderID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// POST /api/checkout
func CheckoutHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input: " + err.Error()})
			return
		}

		order, err := Checkout(db, userID, req)
		if err != nil {
			if isCheckoutInputErr(err) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to place order"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Order placed successfully",
			"data":    order,
		})
	}
}

// GET /api/checkout/confirmation/:orderId
func OrderConfirmationHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		role := c.GetString("role")
		orderID := c.Param("orderId")

		var order models.Order
		if err := db.Preload("Items").Preload("Items.Product").Preload("Items.Seller").
			Preload("Coupons").Preload("Coupons.Coupon").
			First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch order"})
			return
		}

		if order.UserID != userID && role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Not allowed to view this order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
	}
}

// PUT /api/checkout/:orderId/update-payment
func UpdatePaymentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		role := c.GetString("role")
		orderID := c.Param("orderId")

		var req UpdatePaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input: " + err.Error()})
			return
		}

		var order models.Order
		if err := db.First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch order"})
			return
		}

		if order.UserID != userID && role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Not allowed to update this order"})
			return
		}

		if order.PaymentMethod == models.PaymentMethodCOD {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Payment update only applies to upi/net_banking orders"})
			return
		}

		now := time.Now()
		updates := map[string]interface{}{
			"payment_details": req.PaymentDetails,
			"payment_status":  models.PaymentStatusCompleted,
			"payment_date":    &now,
		}
		if err := db.Model(&order).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update payment"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Payment updated successfully",
			"data":    order,
		})
	}
}
