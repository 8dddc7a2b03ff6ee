package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/glamourcosmetics/storefront-api/auth"
	"github.com/glamourcosmetics/storefront-api/middleware"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, d Deps) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/signup", auth.Signup(d.DB, d.Tokens))
		authGroup.POST("/login", auth.Login(d.DB, d.Tokens))
		authGroup.POST("/forgot-password", auth.ForgotPassword(d.DB, d.Mail, d.Reset))
		authGroup.POST("/reset-password", auth.ResetPassword(d.DB))

		authed := authGroup.Group("", middleware.RequireAuth(d.Tokens))
		authed.GET("/me", auth.Me(d.DB))
		authed.POST("/change-password", auth.ChangePassword(d.DB))
	}
}
