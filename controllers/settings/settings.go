package settingsControllers

import (
	"net/http"

	"github.com/PbxInder84/carzone-sub001/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GET /api/settings
func GetSettings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var settings []models.SiteSetting
		if err := db.Order("key").Find(&settings).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
			return
		}

		out := make(map[string]string, len(settings))
		for _, s := range settings {
			out[s.Key] = s.Value
		}
		c.JSON(http.StatusOK, out)
	}
}

// PUT /api/settings — admin; upserts the supplied keys
func UpdateSettings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input map[string]string
		if err := c.ShouldBindJSON(&input); err != nil || len(input) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Expected a non-empty object of settings"})
			return
		}

		for key, value := range input {
			setting := models.SiteSetting{Key: key, Value: value}
			if err := db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&setting).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save setting: " + key})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "Settings updated"})
	}
}
