package cartControllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

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

func seed(t *testing.T, db *gorm.DB) (models.User, models.Product) {
	t.Helper()
	user := models.User{Name: "Buyer", Email: fmt.Sprintf("buyer-%d@example.com", time.Now().UnixNano()), Password: "x", Role: models.RoleUser}
	if err := db.Create(&user).Error; err != nil {
		t.Fatal(err)
	}
	product := models.Product{
		Name:          "Brake Pads",
		Price:         decimal.RequireFromString("35.50"),
		StockQuantity: 20,
		SellerID:      user.ID,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatal(err)
	}
	return user, product
}

func doJSON(router *gin.Engine, method, url, token string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewBuffer(b)
	} else {
		body = bytes.NewBuffer(nil)
	}
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, url, body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	return w
}

// ----------------------- TESTS ----------------------- //

func TestAddCartItemCreatesThenUpdates(t *testing.T) {
	db := getTestDB(t)
	router := newRouter(db)
	user, product := seed(t, db)
	token := authToken(t, user.ID, "user")

	// First add creates
	w := doJSON(router, "POST", "/api/cart", token, gin.H{"product_id": product.ID, "quantity": 2})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Second add for the same product updates in place: still one row
	w = doJSON(router, "POST", "/api/cart", token, gin.H{"product_id": product.ID, "quantity": 5})
	assert.Equal(t, http.StatusOK, w.Code)

	var items []models.CartItem
	db.Where("user_id = ?", user.ID).Find(&items)
	assert.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestAddCartItemUnknownProduct(t *testing.T) {
	db := getTestDB(t)
	router := newRouter(db)
	user, _ := seed(t, db)

	w := doJSON(router, "POST", "/api/cart", authToken(t, user.ID, "user"), gin.H{"product_id": 9999, "quantity": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddCartItemRequiresAuth(t *testing.T) {
	db := getTestDB(t)
	router := newRouter(db)
	_, product := seed(t, db)

	b, _ := json.Marshal(gin.H{"product_id": product.ID, "quantity": 1})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/cart", bytes.NewBuffer(b))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateCartItemQuantity(t *testing.T) {
	db := getTestDB(t)
	router := newRouter(db)
	user, product := seed(t, db)
	token := authToken(t, user.ID, "user")

	db.Create(&models.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1, AddedAt: time.Now()})

	w := doJSON(router, "PUT", fmt.Sprintf("/api/cart/%d", product.ID), token, gin.H{"quantity": 4})
	assert.Equal(t, http.StatusOK, w.Code)

	var item models.CartItem
	db.First(&item, "user_id = ? AND product_id = ?", user.ID, product.ID)
	assert.Equal(t, 4, item.Quantity)
}

func TestDeleteAndClearCart(t *testing.T) {
	db := getTestDB(t)
	router := newRouter(db)
	user, product := seed(t, db)
	token := authToken(t, user.ID, "user")

	db.Create(&models.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1, AddedAt: time.Now()})

	// Delete a specific item
	w := doJSON(router, "DELETE", fmt.Sprintf("/api/cart/%d", product.ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Deleting it again is a 404
	w = doJSON(router, "DELETE", fmt.Sprintf("/api/cart/%d", product.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Clear always succeeds
	db.Create(&models.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 2, AddedAt: time.Now()})
	w = doJSON(router, "DELETE", "/api/cart", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestGetUserCartPreloadsProduct(t *testing.T) {
	db := getTestDB(t)
	router := newRouter(db)
	user, product := seed(t, db)

	db.Create(&models.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 3, AddedAt: time.Now()})

	w := doJSON(router, "GET", "/api/cart", authToken(t, user.ID, "user"), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var items []models.CartItem
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	assert.Len(t, items, 1)
	assert.Equal(t, "Brake Pads", items[0].Product.Name)
}
