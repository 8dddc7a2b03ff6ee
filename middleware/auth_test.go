package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glamourcosmetics/storefront-api/auth"
	"github.com/glamourcosmetics/storefront-api/models"
)

func newRouter(tokens *auth.Tokens) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", RequireAuth(tokens), func(c *gin.Context) {
		id := auth.MustIdentity(c)
		c.JSON(http.StatusOK, gin.H{"userId": id.UserID})
	})
	r.GET("/admin", RequireAuth(tokens), RequireOwner(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func do(r http.Handler, path, header string) int {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestGate(t *testing.T) {
	tokens := auth.NewTokens("test-secret", time.Hour)
	r := newRouter(tokens)

	customer, _ := tokens.Issue(models.User{ID: 2, Email: "c@example.com"})
	owner, _ := tokens.Issue(models.User{ID: 1, Email: "o@example.com", IsOwner: true})
	expired, _ := auth.NewTokens("test-secret", -time.Minute).Issue(models.User{ID: 1, IsOwner: true})
	forged, _ := auth.NewTokens("other-secret", time.Hour).Issue(models.User{ID: 1, IsOwner: true})

	cases := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"no header", "/me", "", http.StatusUnauthorized},
		{"not bearer", "/me", "Basic abc", http.StatusUnauthorized},
		{"garbage", "/me", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"expired", "/me", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong secret", "/me", "Bearer " + forged, http.StatusUnauthorized},
		{"customer", "/me", "Bearer " + customer, http.StatusOK},
		{"lowercase scheme", "/me", "bearer " + customer, http.StatusOK},
		{"customer on owner route", "/admin", "Bearer " + customer, http.StatusForbidden},
		{"anonymous on owner route", "/admin", "", http.StatusUnauthorized},
		{"owner", "/admin", "Bearer " + owner, http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := do(r, tc.path, tc.header); got != tc.want {
				t.Errorf("status = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestTokenFromQuery(t *testing.T) {
	tokens := auth.NewTokens("test-secret", time.Hour)
	owner, _ := tokens.Issue(models.User{ID: 1, IsOwner: true})

	r := gin.New()
	r.GET("/stream", TokenFromQuery(), RequireAuth(tokens), RequireOwner(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	if got := do(r, "/stream?token="+owner, ""); got != http.StatusNoContent {
		t.Errorf("query token = %d, want 204", got)
	}
	if got := do(r, "/stream", ""); got != http.StatusUnauthorized {
		t.Errorf("no token = %d, want 401", got)
	}
	if got := do(r, "/stream?token="+owner, "Bearer nope"); got != http.StatusUnauthorized {
		t.Errorf("bad header with good query = %d, want 401", got)
	}
}
