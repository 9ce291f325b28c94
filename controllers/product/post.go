package productcontroller

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/PbxInder84/carzone-sub001/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func uploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "./uploads"
}

// saveProductImage stores a multipart image under UPLOAD_DIR/products and
// returns its public URL.
func saveProductImage(c *gin.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", err
	}

	saveDir := filepath.Join(uploadDir(), "products")
	if err := os.MkdirAll(saveDir, os.ModePerm); err != nil {
		return "", err
	}

	ext := filepath.Ext(file.Filename)
	base := strings.TrimSuffix(filepath.Base(file.Filename), ext)
	base = strings.ReplaceAll(base, " ", "_")
	filename := fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), base, ext)

	if err := c.SaveUploadedFile(file, filepath.Join(saveDir, filename)); err != nil {
		return "", err
	}
	return fmt.Sprintf("/uploads/products/%s", filename), nil
}

// CreateProduct creates a new product with category + image upload.
// The authenticated seller (or admin) becomes the owner.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sellerID := c.GetUint("user_id")

		// Required fields
		name := c.PostForm("name")
		priceStr := c.PostForm("price")
		if name == "" || priceStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and price are required"})
			return
		}

		price, err := decimal.NewFromString(priceStr)
		if err != nil || price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}

		// Optional fields
		description := c.PostForm("description")

		var stock int
		if stockStr := c.PostForm("stock_quantity"); stockStr != "" {
			s, parseErr := strconv.Atoi(stockStr)
			if parseErr != nil || s < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock_quantity"})
				return
			}
			stock = s
		}

		var categoryID uint
		if catStr := c.PostForm("category_id"); catStr != "" {
			id64, parseErr := strconv.ParseUint(catStr, 10, 64)
			if parseErr != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
				return
			}
			var category models.Category
			if err := db.First(&category, id64).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
				return
			}
			categoryID = uint(id64)
		}

		// Image upload (optional)
		var imageURL string
		if _, err := c.FormFile("image"); err == nil {
			imageURL, err = saveProductImage(c)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to save image: %v", err)})
				return
			}
		}

		newProduct := models.Product{
			Name:          name,
			Description:   description,
			Price:         price,
			StockQuantity: stock,
			Image:         imageURL,
			SellerID:      sellerID,
			CategoryID:    categoryID,
		}

		if err := db.Create(&newProduct).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, newProduct)
	}
}
