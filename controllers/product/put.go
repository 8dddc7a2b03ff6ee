package productcontroller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glamourcosmetics/storefront-api/apperr"
	"github.com/glamourcosmetics/storefront-api/controllers/params"
	"gorm.io/gorm"
)

// PUT /products/:id
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := params.ID(c, "id", "Product")
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperr.Respond(c, apperr.E(apperr.Validation, "Invalid request body"))
			return
		}

		product, err := loadProduct(db, id)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		if err := input.apply(db, &product); err != nil {
			apperr.Respond(c, err)
			return
		}

		// Naming the columns makes zero values (featured=false, stock=0) get written.
		product.Category = nil
		product.UpdatedAt = time.Now()
		if err := db.Model(&product).
			Select("name", "description", "price", "original_price", "brand", "image_url", "stock", "category_id", "featured", "updated_at").
			Updates(&product).Error; err != nil {
			apperr.Respond(c, apperr.Wrap(err, "update product"))
			return
		}

		updated, err := loadProduct(db, id)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Product updated successfully",
			"product": updated,
		})
	}
}

// PATCH /admin/products/:id/active
func SetProductActive(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := params.ID(c, "id", "Product")
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		var input struct {
			IsActive *bool `json:"isActive"`
		}
		if err := c.ShouldBindJSON(&input); err != nil || input.IsActive == nil {
			apperr.Respond(c, apperr.E(apperr.Validation, "isActive is required"))
			return
		}

		product, err := loadProduct(db, id)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		if err := db.Model(&product).Update("is_active", *input.IsActive).Error; err != nil {
			apperr.Respond(c, apperr.Wrap(err, "toggle product"))
			return
		}
		product.IsActive = *input.IsActive

		c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully", "product": product})
	}
}
