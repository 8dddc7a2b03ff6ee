package routes

import (
	"github.com/gin-gonic/gin"
	adminController "github.com/glamourcosmetics/storefront-api/controllers/admin"
	offerControllers "github.com/glamourcosmetics/storefront-api/controllers/offer"
	productcontroller "github.com/glamourcosmetics/storefront-api/controllers/product"
	"github.com/glamourcosmetics/storefront-api/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Owner token required.
func SetupAdminRoutes(r *gin.Engine, d Deps) {
	// The stream accepts ?token= because browsers cannot set headers on
	// websocket upgrades.
	r.GET("/admin/orders/stream",
		middleware.TokenFromQuery(),
		middleware.RequireAuth(d.Tokens),
		middleware.RequireOwner(),
		d.Hub.Serve,
	)

	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.RequireAuth(d.Tokens), middleware.RequireOwner())
	{
		// ─────────── Orders ───────────
		orders := adminGroup.Group("/orders")
		{
			orders.GET("", adminController.GetOrders(d.DB))
			orders.PATCH("", adminController.BulkUpdateOrdersHandler(d.DB))
			orders.GET("/export", adminController.ExportOrders(d.DB))
			orders.GET("/:id", adminController.GetOrder(d.DB))
			orders.PATCH("/:id", adminController.UpdateOrderHandler(d.DB))
		}

		// ─────────── Users ───────────
		users := adminGroup.Group("/users")
		{
			users.GET("", adminController.GetUsers(d.DB))
			users.GET("/:id", adminController.GetUser(d.DB))
			users.GET("/:id/cart", adminController.GetUserCart(d.DB))
			users.PATCH("/:id", adminController.UpdateUserHandler(d.DB))
			users.DELETE("/:id", adminController.DeleteUserHandler(d.DB))
		}

		// ─────────── Products ───────────
		products := adminGroup.Group("/products")
		{
			products.GET("", productcontroller.GetAdminProducts(d.DB))
			products.GET("/export", productcontroller.ExportProductsToExcel(d.DB))
			products.POST("/import", productcontroller.ImportProductsFromExcel(d.DB))
			products.PATCH("/:id/active", productcontroller.SetProductActive(d.DB))
		}

		adminGroup.GET("/offers", offerControllers.GetAllOffers(d.DB))
	}
}
