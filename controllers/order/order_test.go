package orderControllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	orderControllers "github.com/PbxInder84/carzone-sub001/controllers/order"
	"github.com/PbxInder84/carzone-sub001/models"
	"github.com/PbxInder84/carzone-sub001/routes"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret")
	os.Exit(m.Run())
}

// Create DB connection for tests
func getTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatal("failed to connect to test database: " + err.Error())
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.Category{}, &models.Product{},
		&models.CartItem{}, &models.Order{}, &models.OrderItem{},
		&models.Coupon{}, &models.OrderCoupon{}, &models.Review{},
		&models.SiteSetting{},
	); err != nil {
		t.Fatal("failed to migrate test database: " + err.Error())
	}
	return db
}

func newRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	routes.SetupRoutes(r, db)
	return r
}

func authToken(t *testing.T, userID uint, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedUser(t *testing.T, db *gorm.DB, role models.Role) models.User {
	t.Helper()
	user := models.User{
		Name:     "Test " + string(role),
		Email:    fmt.Sprintf("%s-%d@example.com", role, time.Now().UnixNano()),
		Password: "x",
		Role:     role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatal(err)
	}
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, sellerID uint, name, p string, stock int) models.Product {
	t.Helper()
	product := models.Product{
		Name:          name,
		Price:         price(p),
		StockQuantity: stock,
		SellerID:      sellerID,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatal(err)
	}
	return product
}

// ----------------------- TESTS ----------------------- //

func TestCreateOrderWithPercentageCoupon(t *testing.T) {
	db := getTestDB(t)
	seller := seedUser(t, db, models.RoleSeller)
	buyer := seedUser(t, db, models.RoleUser)
	product := seedProduct(t, db, seller.ID, "ProductA", "100.00", 10)

	db.Create(&models.Coupon{
		Code:               "SAVE10",
		DiscountPercentage: price("10"),
		IsActive:           true,
	})

	order, err := orderControllers.CreateOrder(db, buyer.ID, orderControllers.CreateOrderRequest{
		Items:           []orderControllers.OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		ShippingAddress: "12 Gasket Lane",
		CouponCode:      "SAVE10",
	})
	assert.NoError(t, err)
	assert.Equal(t, "90.00", order.TotalAmount.StringFixed(2))
	assert.Len(t, order.Coupons, 1)
	assert.Equal(t, "10.00", order.Coupons[0].DiscountApplied.StringFixed(2))
}

func TestCreateOrderWithAmountCoupon(t *testing.T) {
	db := getTestDB(t)
	seller := seedUser(t, db, models.RoleSeller)
	buyer := seedUser(t, db, models.RoleUser)
	product := seedProduct(t, db, seller.ID, "ProductA", "60.00", 10)

	db.Create(&models.Coupon{
		Code:           "FLAT15",
		DiscountAmount: price("15"),
		IsActive:       true,
	})

	order, err := orderControllers.CreateOrder(db, buyer.ID, orderControllers.CreateOrderRequest{
		Items:           []orderControllers.OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		ShippingAddress: "12 Gasket Lane",
		CouponCode:      "FLAT15",
	})
	assert.NoError(t, err)
	assert.Equal(t, "45.00", order.TotalAmount.StringFixed(2))
}

func TestCreateOrderMinimumPurchaseNotMet(t *testing.T) {
	db := getTestDB(t)
	seller := seedUser(t, db, models.RoleSeller)
	buyer := seedUser(t, db, models.RoleUser)
	product := seedProduct(t, db, seller.ID, "ProductA", "40.00", 10)

	db.Create(&models.Coupon{
		Code:            "FLAT15",
		DiscountAmount:  price("15"),
		MinimumPurchase: price("50"),
		IsActive:        true,
	})

	_, err := orderControllers.CreateOrder(db, buyer.ID, orderControllers.CreateOrderRequest{
		Items:           []orderControllers.OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		ShippingAddress: "12 Gasket Lane",
		CouponCode:      "FLAT15",
	})
	assert.ErrorIs(t, err, orderControllers.ErrMinimumPurchase)

	// Rolled back: no order, no order-coupon, stock untouched
	var orders, orderCoupons int64
	db.Model(&models.Order{}).Count(&orders)
	db.Model(&models.OrderCoupon{}).Count(&orderCoupons)
	assert.Equal(t, int64(0), orders)
	assert.Equal(t, int64(0), orderCoupons)

	var p models.Product
	db.First(&p, product.ID)
	assert.Equal(t, 10, p.StockQuantity)
}

func TestCreateOrderInvalidOrExpiredCoupon(t *testing.T) {
	db := getTestDB(t)
	seller := seedUser(t, db, models.RoleSeller)
	buyer := seedUser(t, db, models.RoleUser)
	product := seedProduct(t, db, seller.ID, "ProductA", "40.00", 10)

	expired := time.Now().Add(-24 * time.Hour)
	db.Create(&models.Coupon{
		Code:           "OLD",
		DiscountAmount: price("5"),
		IsActive:       true,
		EndDate:        &expired,
	})

	for _, code := range []string{"NOPE", "OLD"} {
		_, err := orderControllers.CreateOrder(db, buyer.ID, orderControllers.CreateOrderRequest{
			Items:           []orderControllers.OrderItemInput{{ProductID: product.ID, Quantity: 1}},
			ShippingAddress: "12 Gasket Lane",
			CouponCode:      code,
		})
		assert.ErrorIs(t, err, orderControllers.ErrInvalidCoupon, code)
	}
}

func TestCreateOrderDiscountNeverGoesNegative(t *testing.T) {
	db := getTestDB(t)
	seller := seedUser(t, db, models.RoleSeller)
	buyer := seedUser(t, db, models.RoleUser)
	product := seedProduct(t, db, seller.ID, "ProductA", "10.00", 10)

	db.Create(&models.Coupon{
		Code:           "BIG",
		DiscountAmount: price("25"),
		IsActive:       true,
	})

	order, err := orderControllers.CreateOrder(db, buyer.ID, orderControllers.CreateOrderRequest{
		Items:           []orderControllers.OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		ShippingAddress: "12 Gasket Lane",
		CouponCode:      "BIG",
	})
	assert.NoError(t, err)
	assert.True(t, order.TotalAmount.IsZero())
}

func TestPriceSnapshotImmutability(t *testing.T) {
	db := getTestDB(t)
	seller := seedUser(t, db, models.RoleSeller)
	buyer := seedUser(t, db, models.RoleUser)
	product := seedProduct(t, db, seller.ID, "ProductA", "50.00", 10)

	order, err := orderControllers.CreateOrder(db, buyer.ID, orderControllers.CreateOrderRequest{
		Items:           []orderControllers.OrderItemInput{{ProductID: product.ID, Quantity: 2}},
		ShippingAddress: "12 Gasket Lane",
	})
	assert.NoError(t, err)

	// Price change after the fact must not touch the snapshot
	db.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("price", price("75.00"))

	var item models.OrderItem
	db.First(&item, "order_id = ?", order.ID)
	assert.Equal(t, "50.00", item.PriceAtTimeOfOrder.StringFixed(2))
	assert.Equal(t, seller.ID, item.SellerID)
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	db := getTestDB(t)
	seller := seedUser(t, db, models.RoleSeller)
	buyer := seedUser(t, db, models.RoleUser)
	product := seedProduct(t, db, seller.ID, "ProductC", "20.00", 0)

	_, err := orderControllers.CreateOrder(db, buyer.ID, orderControllers.CreateOrderRequest{
		Items:           []orderControllers.OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		ShippingAddress: "12 Gasket Lane",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ProductC")

	var p models.Product
	db.First(&p, product.ID)
	assert.Equal(t, 0, p.StockQuantity)
}

func TestUpdateOrderStatusAuthorization(t *testing.T) {
	db := getTestDB(t)
	router := newRouter(db)
	seller := seedUser(t, db, models.RoleSeller)
	otherSeller := seedUser(t, db, models.RoleSeller)
	buyer := seedUser(t, db, models.RoleUser)
	product := seedProduct(t, db, seller.ID, "ProductA", "50.00", 10)

	order, err := orderControllers.CreateOrder(db, buyer.ID, orderControllers.CreateOrderRequest{
		Items:           []orderControllers.OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		ShippingAddress: "12 Gasket Lane",
	})
	assert.NoError(t, err)

	put := func(token, status string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(map[string]string{"order_status": status})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", fmt.Sprintf("/api/orders/%d", order.ID), bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		return w
	}

	// The buyer cannot change status, nor can an uninvolved seller
	assert.Equal(t, http.StatusForbidden, put(authToken(t, buyer.ID, "user"), "shipped").Code)
	assert.Equal(t, http.StatusForbidden, put(authToken(t, otherSeller.ID, "seller"), "shipped").Code)

	// Unknown status values are rejected
	assert.Equal(t, http.StatusBadRequest, put(authToken(t, seller.ID, "seller"), "teleported").Code)

	// The item's seller may update
	assert.Equal(t, http.StatusOK, put(authToken(t, seller.ID, "seller"), "shipped").Code)

	var updated models.Order
	db.First(&updated, order.ID)
	assert.Equal(t, models.OrderStatusShipped, updated.OrderStatus)
}

func TestCreateOrderHandlerErrorStatus(t *testing.T) {
	db := getTestDB(t)
	router := newRouter(db)
	seller := seedUser(t, db, models.RoleSeller)
	buyer := seedUser(t, db, models.RoleUser)
	product := seedProduct(t, db, seller.ID, "ProductA", "50.00", 5)

	post := func(r *gin.Engine, payload interface{}) *httptest.ResponseRecorder {
		body, _ := json.Marshal(payload)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/orders", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+authToken(t, buyer.ID, "user"))
		r.ServeHTTP(w, req)
		return w
	}

	// Business-rule failure: unknown coupon → 400 with the message
	w := post(router, gin.H{
		"items":            []gin.H{{"product_id": product.ID, "quantity": 1}},
		"shipping_address": "12 Gasket Lane",
		"coupon_code":      "NOPE",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "coupon")

	// Unexpected failure (no tables) → generic 500, no internal error text
	bare, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s-bare?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	assert.NoError(t, err)
	bareRouter := newRouter(bare)

	w = post(bareRouter, gin.H{
		"items":            []gin.H{{"product_id": product.ID, "quantity": 1}},
		"shipping_address": "12 Gasket Lane",
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to place order")
	assert.NotContains(t, w.Body.String(), "no such table")
}

func TestGetOrdersScopedByRole(t *testing.T) {
	db := getTestDB(t)
	router := newRouter(db)
	seller := seedUser(t, db, models.RoleSeller)
	buyerA := seedUser(t, db, models.RoleUser)
	buyerB := seedUser(t, db, models.RoleUser)
	product := seedProduct(t, db, seller.ID, "ProductA", "50.00", 10)

	for _, buyer := range []models.User{buyerA, buyerB} {
		_, err := orderControllers.CreateOrder(db, buyer.ID, orderControllers.CreateOrderRequest{
			Items:           []orderControllers.OrderItemInput{{ProductID: product.ID, Quantity: 1}},
			ShippingAddress: "12 Gasket Lane",
		})
		assert.NoError(t, err)
	}

	list := func(token string) int {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/orders", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data []models.Order `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return len(resp.Data)
	}

	assert.Equal(t, 1, list(authToken(t, buyerA.ID, "user")))
	assert.Equal(t, 2, list(authToken(t, seller.ID, "seller")))
	assert.Equal(t, 2, list(authToken(t, seller.ID, "admin")))
}
