package routes

import (
	"github.com/gin-gonic/gin"
	newsletterControllers "github.com/glamourcosmetics/storefront-api/controllers/newsletter"
	offerControllers "github.com/glamourcosmetics/storefront-api/controllers/offer"
	productcontroller "github.com/glamourcosmetics/storefront-api/controllers/product"
	"github.com/glamourcosmetics/storefront-api/middleware"
)

// SetupCatalogRoutes registers the storefront reads and the owner-only
// catalog mutations that share their paths.
func SetupCatalogRoutes(r *gin.Engine, d Deps) {
	owner := []gin.HandlerFunc{middleware.RequireAuth(d.Tokens), middleware.RequireOwner()}

	products := r.Group("/products")
	{
		products.GET("", productcontroller.GetProducts(d.DB))
		products.GET("/:id", productcontroller.GetProductByID(d.DB))

		manage := products.Group("", owner...)
		manage.POST("", productcontroller.CreateProduct(d.DB))
		manage.PUT("/:id", productcontroller.UpdateProduct(d.DB))
		manage.DELETE("/:id", productcontroller.DeleteProduct(d.DB))
	}

	r.GET("/categories", productcontroller.GetAllCategories(d.DB))

	offers := r.Group("/offers")
	{
		offers.GET("", offerControllers.GetOffers(d.DB))
		offers.GET("/:id", offerControllers.GetOffer(d.DB))

		manage := offers.Group("", owner...)
		manage.POST("", offerControllers.CreateOffer(d.DB))
		manage.PUT("/:id", offerControllers.UpdateOffer(d.DB))
		manage.DELETE("/:id", offerControllers.DeleteOffer(d.DB))
	}

	r.POST("/subscribe", newsletterControllers.Subscribe(d.DB, d.Mail))
}
