package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/glamourcosmetics/storefront-api/apperr"
	"github.com/glamourcosmetics/storefront-api/models"
	"gorm.io/gorm"
)

// GET /categories
func GetAllCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories := []models.Category{}
		if err := db.Order("name ASC").Find(&categories).Error; err != nil {
			apperr.Respond(c, apperr.Wrap(err, "list categories"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": categories})
	}
}
