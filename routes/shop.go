package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/glamourcosmetics/storefront-api/controllers/cart"
	orderControllers "github.com/glamourcosmetics/storefront-api/controllers/order"
	userControllers "github.com/glamourcosmetics/storefront-api/controllers/user"
	"github.com/glamourcosmetics/storefront-api/middleware"
)

// SetupShopRoutes registers cart, checkout and profile endpoints. All of
// them act on the caller's own data.
func SetupShopRoutes(r *gin.Engine, d Deps) {
	gate := middleware.RequireAuth(d.Tokens)

	cart := r.Group("/cart", gate)
	{
		cart.GET("", cartControllers.GetCartHandler(d.DB))
		cart.POST("", cartControllers.AddToCartHandler(d.DB))
		cart.PUT("", cartControllers.UpdateCartHandler(d.DB))
		cart.DELETE("", cartControllers.ClearCartHandler(d.DB))
	}

	orders := r.Group("/orders", gate)
	{
		orders.POST("", orderControllers.PlaceOrderHandler(d.DB, d.Hub))
		orders.GET("", orderControllers.GetMyOrdersHandler(d.DB))
		orders.GET("/:id", orderControllers.GetMyOrderHandler(d.DB))
	}

	user := r.Group("/user", gate)
	{
		user.GET("/profile", userControllers.GetProfile(d.DB))
		user.PUT("/profile", userControllers.UpdateProfile(d.DB))
	}
}
