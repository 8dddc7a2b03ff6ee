package models

import (
	"testing"
	"time"
)

func TestOfferVisibleAt(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour
	at := func(d time.Duration) *time.Time { t := now.Add(d); return &t }

	cases := []struct {
		name  string
		offer Offer
		want  bool
	}{
		{"no window", Offer{IsActive: true}, true},
		{"inactive", Offer{IsActive: false}, false},
		{"inside window", Offer{IsActive: true, StartDate: at(-day), EndDate: at(day)}, true},
		{"ended", Offer{IsActive: true, StartDate: at(-2 * day), EndDate: at(-day)}, false},
		{"not started", Offer{IsActive: true, StartDate: at(day)}, false},
		{"open ended", Offer{IsActive: true, StartDate: at(-day)}, true},
		{"starts now", Offer{IsActive: true, StartDate: at(0), EndDate: at(0)}, true},
		{"inactive inside window", Offer{IsActive: false, StartDate: at(-day), EndDate: at(day)}, false},
	}
	for _, tc := range cases {
		if got := tc.offer.VisibleAt(now); got != tc.want {
			t.Errorf("%s: VisibleAt = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestParseStatus(t *testing.T) {
	if s, ok := ParseOrderStatus("shipped"); !ok || s != OrderStatusShipped {
		t.Errorf("shipped = %q %v", s, ok)
	}
	if _, ok := ParseOrderStatus("lost"); ok {
		t.Error("unknown order status accepted")
	}
	if s, ok := ParsePaymentStatus("refunded"); !ok || s != PaymentStatusRefunded {
		t.Errorf("refunded = %q %v", s, ok)
	}
	if _, ok := ParsePaymentStatus(""); ok {
		t.Error("empty payment status accepted")
	}
}
