package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/glamourcosmetics/storefront-api/apperr"
	"github.com/glamourcosmetics/storefront-api/controllers/params"
	"gorm.io/gorm"
)

func filterFromQuery(c *gin.Context) ProductFilter {
	return ProductFilter{
		Category: c.Query("category"),
		Brand:    c.Query("brand"),
		Featured: params.Bool(c, "featured"),
		Search:   c.Query("search"),
	}
}

// GET /products
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := params.PageFrom(c)
		products, total, err := ListProducts(db, filterFromQuery(c), page)
		if err != nil {
			apperr.Respond(c, apperr.Wrap(err, "list products"))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"products":   products,
			"pagination": page.Of(total),
		})
	}
}

// GET /admin/products
//
// Same filters as the storefront listing, inactive products included.
func GetAdminProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := params.PageFrom(c)
		f := filterFromQuery(c)
		f.IncludeInactive = true

		products, total, err := ListProducts(db, f, page)
		if err != nil {
			apperr.Respond(c, apperr.Wrap(err, "list products"))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"products":   products,
			"pagination": page.Of(total),
		})
	}
}
