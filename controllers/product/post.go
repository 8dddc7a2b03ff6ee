package productcontroller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/glamourcosmetics/storefront-api/apperr"
	"github.com/glamourcosmetics/storefront-api/models"
	"gorm.io/gorm"
)

// POST /products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperr.Respond(c, apperr.E(apperr.Validation, "Invalid request body"))
			return
		}

		product := models.Product{IsActive: true}
		if err := input.apply(db, &product); err != nil {
			apperr.Respond(c, err)
			return
		}

		if err := db.Create(&product).Error; err != nil {
			apperr.Respond(c, apperr.Wrap(err, "create product"))
			return
		}

		created, err := loadProduct(db, product.ID)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		log.Printf("🛍️ Product %d (%s) created", created.ID, created.Name)
		c.JSON(http.StatusCreated, gin.H{
			"message": "Product created successfully",
			"product": created,
		})
	}
}
