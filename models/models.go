// Package models holds the gorm entities of the storefront.
package models

import "github.com/shopspring/decimal"

func init() {
	// Prices go over the wire as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// All lists every entity in migration order.
func All() []any {
	return []any{
		&User{},
		&Category{},
		&Product{},
		&CartItem{},
		&Order{},
		&OrderItem{},
		&Offer{},
		&Subscriber{},
	}
}
