package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/glamourcosmetics/storefront-api/auth"
	orderControllers "github.com/glamourcosmetics/storefront-api/controllers/order"
	"github.com/glamourcosmetics/storefront-api/mail"
	"gorm.io/gorm"
)

// Deps is everything the handlers are built from.
type Deps struct {
	DB     *gorm.DB
	Tokens *auth.Tokens
	Mail   mail.Sender
	Hub    *orderControllers.Hub
	Reset  auth.ResetOptions
}

// Setup is the single entry-point that wires every route group.
func Setup(r *gin.Engine, d Deps) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 1️⃣ Public auth + account routes
	SetupAuthRoutes(r, d)

	// 2️⃣ Catalog: products, categories, offers, newsletter
	SetupCatalogRoutes(r, d)

	// 3️⃣ Customer routes (bearer token)
	SetupShopRoutes(r, d)

	// 4️⃣ Owner dashboard
	SetupAdminRoutes(r, d)
}
