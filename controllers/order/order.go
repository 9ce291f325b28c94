package orderControllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PbxInder84/carzone-sub001/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// -------- Request Structs --------

type OrderItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type CreateOrderRequest struct {
	Items           []OrderItemInput `json:"items" binding:"required"`
	ShippingAddress string           `json:"shipping_address" binding:"required"`
	PaymentMethod   string           `json:"payment_method"`
	PaymentDetails  string           `json:"payment_details"`
	CouponCode      string           `json:"coupon_code"`
}

type UpdateOrderStatusRequest struct {
	OrderStatus string `json:"order_status" binding:"required"`
}

var (
	ErrInvalidCoupon        = errors.New("invalid or expired coupon")
	ErrMinimumPurchase      = errors.New("order total does not meet the coupon minimum purchase")
	ErrInvalidOrderStatus   = errors.New("invalid order status")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrProductNotFound      = errors.New("product not found")
	ErrNoItems              = errors.New("order must contain at least one item")
)

// isOrderInputErr separates business-rule failures (400) from
// unexpected errors (500).
func isOrderInputErr(err error) bool {
	return errors.Is(err, ErrNoItems) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrInvalidPaymentMethod) ||
		errors.Is(err, ErrInvalidCoupon) ||
		errors.Is(err, ErrMinimumPurchase)
}

// -------- Helpers --------

// Map string to OrderStatus
func mapOrderStatus(status string) (models.OrderStatus, error) {
	switch strings.ToLower(status) {
	case string(models.OrderStatusPending):
		return models.OrderStatusPending, nil
	case string(models.OrderStatusProcessing):
		return models.OrderStatusProcessing, nil
	case string(models.OrderStatusShipped):
		return models.OrderStatusShipped, nil
	case string(models.OrderStatusDelivered):
		return models.OrderStatusDelivered, nil
	case string(models.OrderStatusCancelled):
		return models.OrderStatusCancelled, nil
	default:
		return "", ErrInvalidOrderStatus
	}
}

// Map string to PaymentMethod, defaulting to COD
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

// applyCoupon looks up an applicable coupon inside tx and records the
// discount against the order. At most one coupon per order.
func applyCoupon(tx *gorm.DB, order *models.Order, code string) error {
	var coupon models.Coupon
	if err := tx.Where("code = ? AND is_active = ?", code, true).
		Where("end_date IS NULL OR end_date >= ?", time.Now()).
		First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidCoupon
		}
		return err
	}

	if order.TotalAmount.LessThan(coupon.MinimumPurchase) {
		return ErrMinimumPurchase
	}

	discount := coupon.DiscountFor(order.TotalAmount)
	if err := tx.Create(&models.OrderCoupon{
		OrderID:         order.ID,
		CouponID:        coupon.ID,
		DiscountApplied: discount,
	}).Error; err != nil {
		return err
	}

	newTotal := order.TotalAmount.Sub(discount)
	if newTotal.IsNegative() {
		newTotal = decimal.Zero
	}
	if err := tx.Model(order).Update("total_amount", newTotal).Error; err != nil {
		return err
	}
	order.TotalAmount = newTotal
	return nil
}

// -------- Core Logic --------

// CreateOrder places an order from a client-supplied item list. Same
// transactional skeleton as the cart checkout, plus coupon application:
// verify stock, decrement, create order + items, apply coupon. Any
// failure rolls the whole transaction back.
func CreateOrder(db *gorm.DB, userID uint, req CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrNoItems
	}
	method, err := mapPaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	var orderID uint
	err = db.Transaction(func(tx *gorm.DB) error {
		total := decimal.Zero
		var orderItems []models.OrderItem

		for _, item := range req.Items {
			var product models.Product
			if err := tx.First(&product, "id = ?", item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrProductNotFound
				}
				return err
			}

			if product.StockQuantity < item.Quantity {
				return fmt.Errorf("%w for product: %s", ErrInsufficientStock, product.Name)
			}

			// Guarded decrement, same as the cart checkout: atomic under
			// concurrent order creation.
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

		if req.CouponCode != "" {
			if err := applyCoupon(tx, &order, req.CouponCode); err != nil {
				return err
			}
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
		Preload("Coupons").Preload("Coupons.Coupon").
		First(&order, orderID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// -------- Handlers --------

// POST /api/orders
func CreateOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input: " + err.Error()})
			return
		}

		order, err := CreateOrder(db, userID, req)
		if err != nil {
			if isOrderInputErr(err) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to place order"})
			return
		}

		broadcastNewOrder(*order)

		c.JSON(http.StatusCreated, gin.H{"success": true, "data": order})
	}
}

// GET /api/orders
// Users see their own orders, sellers the orders containing their items,
// admins everything.
func GetOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		role := c.GetString("role")

		query := db.
			Preload("User").
			Preload("Items").
			Preload("Items.Product").
			Preload("Items.Seller").
			Preload("Coupons").Preload("Coupons.Coupon").
			Order("created_at DESC")

		switch role {
		case "admin":
			// no filter
		case "seller":
			query = query.Where("id IN (?)",
				db.Model(&models.OrderItem{}).Select("order_id").Where("seller_id = ?", userID))
		default:
			query = query.Where("user_id = ?", userID)
		}

		var orders []models.Order
		if err := query.Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": orders})
	}
}

// canAccessOrder allows the owner, any admin, and sellers with at least
// one item in the order.
func canAccessOrder(order models.Order, userID uint, role string) bool {
	if role == "admin" || order.UserID == userID {
		return true
	}
	if role == "seller" {
		for _, item := range order.Items {
			if item.SellerID == userID {
				return true
			}
		}
	}
	return false
}

// GET /api/orders/:id — lookup by numeric id or order_ref
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		role := c.GetString("role")
		id := c.Param("id")

		query := db.
			Preload("User").
			Preload("Items").
			Preload("Items.Product").
			Preload("Items.Seller").
			Preload("Coupons").Preload("Coupons.Coupon")
		if _, err := strconv.Atoi(id); err == nil {
			query = query.Where("id = ?", id)
		} else {
			query = query.Where("order_ref = ?", id)
		}

		var order models.Order
		if err := query.First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch order"})
			return
		}

		if !canAccessOrder(order, userID, role) {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Not allowed to view this order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
	}
}

// PUT /api/orders/:id
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		role := c.GetString("role")
		id := c.Param("id")

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "order_status is required"})
			return
		}
		newStatus, err := mapOrderStatus(req.OrderStatus)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		var order models.Order
		if err := db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch order"})
			return
		}

		// Only admins and sellers with an item in the order may change status
		allowed := role == "admin"
		if !allowed && role == "seller" {
			for _, item := range order.Items {
				if item.SellerID == userID {
					allowed = true
					break
				}
			}
		}
		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Not allowed to update this order"})
			return
		}

		if err := db.Model(&order).Update("order_status", newStatus).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update order status"})
			return
		}
		order.OrderStatus = newStatus

		broadcastOrderUpdate(order)

		c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
	}
}
