package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            uint                `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string              `gorm:"not null" json:"name"`
	Description   string              `gorm:"not null" json:"description"`
	Price         decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"price"`
	OriginalPrice decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"originalPrice"`
	Brand         string              `gorm:"not null;index" json:"brand"`
	ImageURL      string              `json:"imageUrl"`
	Stock         int                 `gorm:"not null;default:0" json:"stock"`
	CategoryID    uint                `gorm:"index" json:"categoryId"`
	Category      *Category           `json:"-"`
	CategoryName  string              `gorm:"-" json:"categoryName,omitempty"`
	Featured      bool                `gorm:"index" json:"featured"`
	IsActive      bool                `gorm:"index" json:"isActive"` // false hides it from the storefront
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

// FillCategoryName copies the preloaded category name onto the product.
func (p *Product) FillCategoryName() {
	if p.Category != nil {
		p.CategoryName = p.Category.Name
	}
}
