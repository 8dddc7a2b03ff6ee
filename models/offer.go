package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Offer struct {
	ID                 uint                `gorm:"primaryKey;autoIncrement" json:"id"`
	Title              string              `gorm:"not null" json:"title"`
	Description        string              `gorm:"not null" json:"description"`
	DiscountPercentage decimal.Decimal     `gorm:"type:decimal(5,2);not null;default:0" json:"discountPercentage"`
	DiscountAmount     decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"discountAmount"`
	StartDate          *time.Time          `json:"startDate"`
	EndDate            *time.Time          `json:"endDate"`
	IsActive           bool                `gorm:"index" json:"isActive"`
	CreatedAt          time.Time           `json:"createdAt"`
}

// VisibleAt reports whether the offer is shown publicly at t: it must be
// active and t must fall inside whichever window bounds are set.
func (o Offer) VisibleAt(t time.Time) bool {
	if !o.IsActive {
		return false
	}
	if o.StartDate != nil && t.Before(*o.StartDate) {
		return false
	}
	if o.EndDate != nil && t.After(*o.EndDate) {
		return false
	}
	return true
}
