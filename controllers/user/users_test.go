package userControllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glamourcosmetics/storefront-api/middleware"
	"github.com/glamourcosmetics/storefront-api/models"
	"github.com/glamourcosmetics/storefront-api/testutil"
)

func TestProfile(t *testing.T) {
	db := testutil.NewDB(t)
	r := gin.New()
	g := r.Group("/user", middleware.RequireAuth(testutil.Tokens()))
	g.GET("/profile", GetProfile(db))
	g.PUT("/profile", UpdateProfile(db))

	u := testutil.CreateUser(t, db, "alice@example.com", false)
	tok := testutil.Bearer(t, u)

	if w := testutil.Do(r, http.MethodPut, "/user/profile", map[string]string{"city": "Paris"}, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous update = %d, want 401", w.Code)
	}

	w := testutil.Do(r, http.MethodPut, "/user/profile", map[string]string{"city": " Paris ", "phone": "555-0100"}, tok)
	if w.Code != http.StatusOK {
		t.Fatalf("update = %d %s", w.Code, w.Body)
	}
	var body struct {
		User models.User `json:"user"`
	}
	testutil.Decode(t, w, &body)
	if body.User.City != "Paris" || body.User.Phone != "555-0100" || body.User.FirstName != "Test" {
		t.Errorf("user after update = %+v", body.User)
	}

	// Absent fields stay as they were.
	w = testutil.Do(r, http.MethodPut, "/user/profile", map[string]string{"zipCode": "75001"}, tok)
	testutil.Decode(t, w, &body)
	if body.User.City != "Paris" || body.User.ZipCode != "75001" {
		t.Errorf("partial update lost fields: %+v", body.User)
	}

	cases := map[string]map[string]string{
		"empty body": {},
		"blank name": {"firstName": "  "},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			if w := testutil.Do(r, http.MethodPut, "/user/profile", in, tok); w.Code != http.StatusBadRequest {
				t.Errorf("= %d, want 400", w.Code)
			}
		})
	}

	w = testutil.Do(r, http.MethodGet, "/user/profile", nil, tok)
	if w.Code != http.StatusOK {
		t.Fatalf("get = %d", w.Code)
	}
	var raw map[string]map[string]any
	testutil.Decode(t, w, &raw)
	if _, leaked := raw["user"]["password"]; leaked {
		t.Error("password digest in profile")
	}
}
