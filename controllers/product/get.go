package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/glamourcosmetics/storefront-api/apperr"
	"github.com/glamourcosmetics/storefront-api/controllers/params"
	"github.com/glamourcosmetics/storefront-api/models"
	"gorm.io/gorm"
)

func loadProduct(db *gorm.DB, id uint) (models.Product, error) {
	var product models.Product
	err := db.Preload("Category").First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return product, apperr.E(apperr.NotFound, "Product not found")
	}
	if err != nil {
		return product, apperr.Wrap(err, "load product")
	}
	product.FillCategoryName()
	return product, nil
}

// GET /products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := params.ID(c, "id", "Product")
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		product, err := loadProduct(db.Where("is_active = ?", true), id)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"product": product})
	}
}
