package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/glamourcosmetics/storefront-api/apperr"
	"github.com/glamourcosmetics/storefront-api/auth"
)

// RequireAuth validates the bearer token and stores the caller's identity
// on the context.
func RequireAuth(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			apperr.Respond(c, apperr.E(apperr.Unauthenticated, "Unauthorized"))
			return
		}

		claims, err := tokens.Validate(raw)
		if err != nil {
			apperr.Respond(c, apperr.E(apperr.Unauthenticated, "Invalid or expired token"))
			return
		}

		auth.SetIdentity(c, auth.Identity{
			UserID:  claims.UserID,
			Email:   claims.Email,
			IsOwner: claims.IsOwner,
		})
		c.Next()
	}
}

// RequireOwner must run after RequireAuth.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := auth.CurrentIdentity(c)
		if !ok {
			apperr.Respond(c, apperr.E(apperr.Unauthenticated, "Unauthorized"))
			return
		}
		if !id.IsOwner {
			apperr.Respond(c, apperr.E(apperr.Forbidden, "Forbidden"))
			return
		}
		c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// TokenFromQuery lets clients that cannot set headers, such as browser
// websockets, pass the bearer token as ?token=. A header always wins.
func TokenFromQuery() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			if tok := c.Query("token"); tok != "" {
				c.Request.Header.Set("Authorization", "Bearer "+tok)
			}
		}
		c.Next()
	}
}
