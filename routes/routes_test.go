package routes

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glamourcosmetics/storefront-api/auth"
	orderControllers "github.com/glamourcosmetics/storefront-api/controllers/order"
	"github.com/glamourcosmetics/storefront-api/mail"
	"github.com/glamourcosmetics/storefront-api/testutil"
	"gorm.io/gorm"
)

func newEngine(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	r := gin.New()
	Setup(r, Deps{
		DB:     db,
		Tokens: testutil.Tokens(),
		Mail:   &mail.Recorder{},
		Hub:    orderControllers.NewHub([]string{"*"}),
		Reset:  auth.ResetOptions{TTL: time.Hour},
	})
	return r, db
}

func TestOwnerRoutesAreGated(t *testing.T) {
	r, db := newEngine(t)
	customer := testutil.Bearer(t, testutil.CreateUser(t, db, "customer@example.com", false))

	routes := []struct{ method, path string }{
		{http.MethodPost, "/products"},
		{http.MethodPut, "/products/1"},
		{http.MethodDelete, "/products/1"},
		{http.MethodPost, "/offers"},
		{http.MethodPut, "/offers/1"},
		{http.MethodDelete, "/offers/1"},
		{http.MethodGet, "/admin/orders"},
		{http.MethodPatch, "/admin/orders"},
		{http.MethodGet, "/admin/orders/1"},
		{http.MethodPatch, "/admin/orders/1"},
		{http.MethodGet, "/admin/orders/export"},
		{http.MethodGet, "/admin/orders/stream"},
		{http.MethodGet, "/admin/users"},
		{http.MethodPatch, "/admin/users/1"},
		{http.MethodDelete, "/admin/users/1"},
		{http.MethodGet, "/admin/products"},
		{http.MethodGet, "/admin/products/export"},
		{http.MethodPost, "/admin/products/import"},
		{http.MethodPatch, "/admin/products/1/active"},
		{http.MethodGet, "/admin/offers"},
	}
	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			if w := testutil.Do(r, rt.method, rt.path, nil, ""); w.Code != http.StatusUnauthorized {
				t.Errorf("anonymous = %d, want 401", w.Code)
			}
			if w := testutil.Do(r, rt.method, rt.path, nil, customer); w.Code != http.StatusForbidden {
				t.Errorf("customer = %d, want 403", w.Code)
			}
		})
	}
}

func TestCustomerRoutesNeedToken(t *testing.T) {
	r, _ := newEngine(t)
	for _, rt := range []struct{ method, path string }{
		{http.MethodGet, "/cart"},
		{http.MethodPost, "/cart"},
		{http.MethodPut, "/cart"},
		{http.MethodPost, "/orders"},
		{http.MethodGet, "/orders"},
		{http.MethodGet, "/orders/1"},
		{http.MethodGet, "/user/profile"},
		{http.MethodGet, "/auth/me"},
		{http.MethodPost, "/auth/change-password"},
	} {
		if w := testutil.Do(r, rt.method, rt.path, nil, ""); w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s = %d, want 401", rt.method, rt.path, w.Code)
		}
	}
}

func TestShoppingFlow(t *testing.T) {
	r, db := newEngine(t)
	owner := testutil.Bearer(t, testutil.CreateUser(t, db, "owner@example.com", true))
	cat := testutil.CreateCategory(t, db, "Lipsticks")
	p := testutil.CreateProduct(t, db, cat.ID, "Ruby Woo", "19.50", 5)

	w := testutil.Do(r, http.MethodPost, "/auth/signup", map[string]string{
		"email": "shopper@example.com", "password": "secret1", "firstName": "Sam", "lastName": "Shopper",
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("signup = %d %s", w.Code, w.Body)
	}
	var signup struct {
		Token string `json:"token"`
	}
	testutil.Decode(t, w, &signup)

	if w := testutil.Do(r, http.MethodGet, "/products", nil, ""); w.Code != http.StatusOK {
		t.Fatalf("browse = %d", w.Code)
	}

	if w := testutil.Do(r, http.MethodPost, "/cart", map[string]any{"productId": p.ID, "quantity": 2}, signup.Token); w.Code != http.StatusOK {
		t.Fatalf("add to cart = %d %s", w.Code, w.Body)
	}

	w = testutil.Do(r, http.MethodPost, "/orders", map[string]any{
		"items": []map[string]any{{"productId": p.ID, "quantity": 2, "price": 19.5}},
		"shippingInfo": map[string]string{
			"firstName": "Sam", "lastName": "Shopper", "email": "shopper@example.com",
			"address": "1 Main St", "city": "Springfield", "zipCode": "12345",
		},
		"paymentInfo": map[string]string{"cardNumber": "4242"},
		"total":       39,
	}, signup.Token)
	if w.Code != http.StatusCreated {
		t.Fatalf("checkout = %d %s", w.Code, w.Body)
	}

	w = testutil.Do(r, http.MethodGet, "/cart", nil, signup.Token)
	var cart struct {
		Items []any `json:"items"`
	}
	testutil.Decode(t, w, &cart)
	if len(cart.Items) != 0 {
		t.Errorf("cart after checkout has %d items", len(cart.Items))
	}

	w = testutil.Do(r, http.MethodGet, "/admin/orders", nil, owner)
	var orders struct {
		Orders []struct {
			CustomerName string `json:"customerName"`
		} `json:"orders"`
	}
	testutil.Decode(t, w, &orders)
	if len(orders.Orders) != 1 || orders.Orders[0].CustomerName != "Sam Shopper" {
		t.Errorf("admin orders = %s", w.Body)
	}
}
