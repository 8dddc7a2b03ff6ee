package auth_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glamourcosmetics/storefront-api/auth"
	"github.com/glamourcosmetics/storefront-api/mail"
	"github.com/glamourcosmetics/storefront-api/middleware"
	"github.com/glamourcosmetics/storefront-api/models"
	"github.com/glamourcosmetics/storefront-api/testutil"
	"gorm.io/gorm"
)

func newAuthRouter(db *gorm.DB, sender mail.Sender) *gin.Engine {
	tokens := testutil.Tokens()
	r := gin.New()
	g := r.Group("/auth")
	g.POST("/signup", auth.Signup(db, tokens))
	g.POST("/login", auth.Login(db, tokens))
	g.POST("/forgot-password", auth.ForgotPassword(db, sender, auth.ResetOptions{TTL: time.Hour, BaseURL: "https://shop.example"}))
	g.POST("/reset-password", auth.ResetPassword(db))
	g.GET("/me", middleware.RequireAuth(tokens), auth.Me(db))
	g.POST("/change-password", middleware.RequireAuth(tokens), auth.ChangePassword(db))
	return r
}

func TestSignup(t *testing.T) {
	db := testutil.NewDB(t)
	r := newAuthRouter(db, &mail.Recorder{})

	valid := map[string]string{
		"email": "new@example.com", "password": "secret1",
		"firstName": "Ada", "lastName": "Lovelace", "city": "London",
	}

	w := testutil.Do(r, http.MethodPost, "/auth/signup", valid, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("signup = %d %s", w.Code, w.Body)
	}
	var body struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	testutil.Decode(t, w, &body)
	if body.Token == "" || body.User.Email != "new@example.com" || body.User.City != "London" {
		t.Errorf("body = %+v", body)
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Error("response must not carry the password digest")
	}

	w = testutil.Do(r, http.MethodPost, "/auth/signup", valid, "")
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate signup = %d, want 409", w.Code)
	}

	bad := []map[string]string{
		{"email": "x@example.com", "password": "secret1", "firstName": "A"},
		{"email": "not-an-email", "password": "secret1", "firstName": "A", "lastName": "B"},
		{"email": "short@example.com", "password": "12345", "firstName": "A", "lastName": "B"},
	}
	for _, in := range bad {
		if w := testutil.Do(r, http.MethodPost, "/auth/signup", in, ""); w.Code != http.StatusBadRequest {
			t.Errorf("signup %v = %d, want 400", in, w.Code)
		}
	}
}

func TestLoginAndMe(t *testing.T) {
	db := testutil.NewDB(t)
	r := newAuthRouter(db, &mail.Recorder{})
	testutil.CreateUser(t, db, "jane@example.com", false)

	w := testutil.Do(r, http.MethodPost, "/auth/login", map[string]string{"email": "jane@example.com", "password": "wrong-pass"}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad password = %d", w.Code)
	}
	wrongPass := testutil.ErrorOf(t, w)

	w = testutil.Do(r, http.MethodPost, "/auth/login", map[string]string{"email": "ghost@example.com", "password": "whatever"}, "")
	if w.Code != http.StatusUnauthorized || testutil.ErrorOf(t, w) != wrongPass {
		t.Errorf("unknown email = %d %q, want same 401 as a wrong password", w.Code, testutil.ErrorOf(t, w))
	}

	w = testutil.Do(r, http.MethodPost, "/auth/login", map[string]string{"email": "jane@example.com", "password": testutil.Password}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login = %d %s", w.Code, w.Body)
	}
	var login struct {
		Token string `json:"token"`
	}
	testutil.Decode(t, w, &login)

	w = testutil.Do(r, http.MethodGet, "/auth/me", nil, login.Token)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "jane@example.com") {
		t.Errorf("me = %d %s", w.Code, w.Body)
	}
}

func TestChangePassword(t *testing.T) {
	db := testutil.NewDB(t)
	r := newAuthRouter(db, &mail.Recorder{})
	u := testutil.CreateUser(t, db, "jane@example.com", false)
	tok := testutil.Bearer(t, u)

	if w := testutil.Do(r, http.MethodPost, "/auth/change-password", map[string]string{"currentPassword": "x", "newPassword": "newsecret"}, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous = %d, want 401", w.Code)
	}

	w := testutil.Do(r, http.MethodPost, "/auth/change-password", map[string]string{"currentPassword": "wrong-one", "newPassword": "newsecret"}, tok)
	if w.Code != http.StatusBadRequest || testutil.ErrorOf(t, w) != "Current password is incorrect" {
		t.Errorf("wrong current = %d %s", w.Code, w.Body)
	}

	w = testutil.Do(r, http.MethodPost, "/auth/change-password", map[string]string{"currentPassword": testutil.Password, "newPassword": "abc"}, tok)
	if w.Code != http.StatusBadRequest {
		t.Errorf("weak new password = %d", w.Code)
	}

	w = testutil.Do(r, http.MethodPost, "/auth/change-password", map[string]string{"currentPassword": testutil.Password, "newPassword": "newsecret"}, tok)
	if w.Code != http.StatusOK {
		t.Fatalf("change = %d %s", w.Code, w.Body)
	}

	var reloaded models.User
	db.First(&reloaded, u.ID)
	if !auth.CheckPassword(reloaded.Password, "newsecret") {
		t.Error("new password not stored")
	}
}

func TestForgotPasswordGivesNoEnumerationSignal(t *testing.T) {
	db := testutil.NewDB(t)
	rec := &mail.Recorder{}
	r := newAuthRouter(db, rec)
	testutil.CreateUser(t, db, "jane@example.com", false)

	known := testutil.Do(r, http.MethodPost, "/auth/forgot-password", map[string]string{"email": "jane@example.com"}, "")
	unknown := testutil.Do(r, http.MethodPost, "/auth/forgot-password", map[string]string{"email": "ghost@example.com"}, "")

	if known.Code != http.StatusOK || unknown.Code != http.StatusOK {
		t.Fatalf("codes = %d / %d, want 200 / 200", known.Code, unknown.Code)
	}
	if known.Body.String() != unknown.Body.String() {
		t.Errorf("bodies differ:\n%s\n%s", known.Body, unknown.Body)
	}

	sent := rec.Sent()
	if len(sent) != 1 || sent[0].To != "jane@example.com" {
		t.Fatalf("sent = %+v", sent)
	}
	if !strings.Contains(sent[0].Text, "https://shop.example/reset-password?token=") {
		t.Errorf("reset link missing: %q", sent[0].Text)
	}
}

func TestResetPasswordIsSingleUse(t *testing.T) {
	db := testutil.NewDB(t)
	rec := &mail.Recorder{}
	r := newAuthRouter(db, rec)
	u := testutil.CreateUser(t, db, "jane@example.com", false)

	testutil.Do(r, http.MethodPost, "/auth/forgot-password", map[string]string{"email": u.Email}, "")

	var stored models.User
	db.First(&stored, u.ID)
	if stored.ResetToken == nil {
		t.Fatal("reset token not stored")
	}
	token := *stored.ResetToken
	if len(token) != 64 {
		t.Errorf("token length = %d, want 64 hex chars", len(token))
	}

	reset := map[string]string{"token": token, "password": "brandnew"}
	if w := testutil.Do(r, http.MethodPost, "/auth/reset-password", reset, ""); w.Code != http.StatusOK {
		t.Fatalf("reset = %d %s", w.Code, w.Body)
	}
	if w := testutil.Do(r, http.MethodPost, "/auth/reset-password", reset, ""); w.Code != http.StatusBadRequest {
		t.Errorf("second reset = %d, want 400", w.Code)
	}

	db.First(&stored, u.ID)
	if !auth.CheckPassword(stored.Password, "brandnew") {
		t.Error("password was not reset")
	}
}

func TestResetPasswordExpired(t *testing.T) {
	db := testutil.NewDB(t)
	r := newAuthRouter(db, &mail.Recorder{})
	u := testutil.CreateUser(t, db, "jane@example.com", false)

	past := time.Now().Add(-time.Minute)
	db.Model(&u).Updates(map[string]interface{}{"reset_token": "deadbeef", "reset_token_expires": past})

	w := testutil.Do(r, http.MethodPost, "/auth/reset-password", map[string]string{"token": "deadbeef", "password": "brandnew"}, "")
	if w.Code != http.StatusBadRequest || testutil.ErrorOf(t, w) != "Invalid or expired token" {
		t.Errorf("expired = %d %s", w.Code, w.Body)
	}
}
