package orderControllers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glamourcosmetics/storefront-api/models"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
)

func itoa(n uint) string {
	b, _ := json.Marshal(n)
	return string(b)
}

func TestHubBroadcast(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub([]string{"*"})
	r := gin.New()
	r.GET("/stream", hub.Serve)
	srv := httptest.NewServer(r)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/stream", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.Clients() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	hub.Broadcast(models.Order{ID: 7, OrderRef: "ref-7", Total: decimal.RequireFromString("19.99")})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev OrderEvent
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read: %v", err)
	}
	if ev.Type != "order.created" || ev.Order.ID != 7 || !ev.Order.Total.Equal(decimal.RequireFromString("19.99")) {
		t.Errorf("event = %+v", ev)
	}
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://shop.example"})
	req := httptest.NewRequest("GET", "/", nil)
	if !check(req) {
		t.Error("no origin header should pass")
	}
	req.Header.Set("Origin", "https://evil.example")
	if check(req) {
		t.Error("foreign origin accepted")
	}
	req.Header.Set("Origin", "https://shop.example")
	if !check(req) {
		t.Error("allowed origin rejected")
	}
}
