package productcontroller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/glamourcosmetics/storefront-api/apperr"
	"github.com/glamourcosmetics/storefront-api/controllers/params"
	"github.com/glamourcosmetics/storefront-api/models"
	"gorm.io/gorm"
)

// DELETE /products/:id
//
// Cart lines go first. Order items keep their snapshot.
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := params.ID(c, "id", "Product")
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		product, err := loadProduct(db, id)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		tx := db.Begin()
		if tx.Error != nil {
			apperr.Respond(c, apperr.Wrap(tx.Error, "begin product delete"))
			return
		}

		if err := tx.Where("product_id = ?", product.ID).Delete(&models.CartItem{}).Error; err != nil {
			tx.Rollback()
			apperr.Respond(c, apperr.Wrap(err, "delete cart lines"))
			return
		}

		if err := tx.Delete(&models.Product{}, product.ID).Error; err != nil {
			tx.Rollback()
			apperr.Respond(c, apperr.Wrap(err, "delete product"))
			return
		}

		if err := tx.Commit().Error; err != nil {
			apperr.Respond(c, apperr.Wrap(err, "commit product delete"))
			return
		}

		log.Printf("🗑️ Product %d deleted", product.ID)
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}
