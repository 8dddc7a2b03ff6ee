// Package testutil provides an in-memory store and request helpers for
// package tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glamourcosmetics/storefront-api/auth"
	"github.com/glamourcosmetics/storefront-api/config"
	"github.com/glamourcosmetics/storefront-api/database"
	"github.com/glamourcosmetics/storefront-api/models"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	Secret   = "test-secret"
	Password = "password123"
)

func init() {
	gin.SetMode(gin.TestMode)
	auth.Cost = bcrypt.MinCost
}

// NewDB returns a migrated in-memory sqlite store that lives for the test.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.Open(config.DBConfig{Driver: "sqlite", SQLitePath: ":memory:"})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func Tokens() *auth.Tokens {
	return auth.NewTokens(Secret, time.Hour)
}

// CreateUser inserts an account whose password is Password.
func CreateUser(t testing.TB, db *gorm.DB, email string, owner bool) models.User {
	t.Helper()
	hash, err := auth.HashPassword(Password)
	if err != nil {
		t.Fatal(err)
	}
	u := models.User{Email: email, Password: hash, FirstName: "Test", LastName: "User", IsOwner: owner}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func Bearer(t testing.TB, u models.User) string {
	t.Helper()
	tok, err := Tokens().Issue(u)
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

func CreateCategory(t testing.TB, db *gorm.DB, name string) models.Category {
	t.Helper()
	c := models.Category{Name: name}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	return c
}

// CreateProduct inserts an active product in the given category.
func CreateProduct(t testing.TB, db *gorm.DB, categoryID uint, name, price string, stock int) models.Product {
	t.Helper()
	p := models.Product{
		Name:        name,
		Description: name + " description",
		Price:       decimal.RequireFromString(price),
		Brand:       "Glamour",
		Stock:       stock,
		CategoryID:  categoryID,
		IsActive:    true,
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return p
}

// Do sends a JSON request through h. An empty token sends no Authorization header.
func Do(h http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func Decode(t testing.TB, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

// ErrorOf returns the "error" field of a JSON error body.
func ErrorOf(t testing.TB, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	Decode(t, w, &body)
	return body.Error
}
