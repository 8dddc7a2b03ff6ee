package productcontroller

import (
	"strconv"
	"strings"

	"github.com/glamourcosmetics/storefront-api/apperr"
	"github.com/glamourcosmetics/storefront-api/controllers/params"
	"github.com/glamourcosmetics/storefront-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MaxStock bounds owner-entered stock.
const MaxStock = 1_000_000

type ProductInput struct {
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	Price         params.Loose `json:"price"`
	OriginalPrice params.Loose `json:"originalPrice"`
	Brand         string       `json:"brand"`
	ImageURL      string       `json:"imageUrl"`
	Stock         params.Loose `json:"stock"`
	CategoryID    params.Loose `json:"categoryId"`
	Featured      params.Loose `json:"featured"`
}

// apply validates the input and copies it onto p. Stock defaults to 0 and
// featured to false.
func (in ProductInput) apply(db *gorm.DB, p *models.Product) error {
	missing := apperr.E(apperr.Validation, "Missing required fields")
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Description) == "" ||
		in.Price == "" || strings.TrimSpace(in.Brand) == "" || in.CategoryID == "" {
		return missing
	}

	price, err := decimal.NewFromString(string(in.Price))
	if err != nil || !price.IsPositive() {
		return apperr.E(apperr.Validation, "Price must be a positive number")
	}

	var original decimal.NullDecimal
	if in.OriginalPrice != "" {
		d, err := decimal.NewFromString(string(in.OriginalPrice))
		if err != nil {
			return apperr.E(apperr.Validation, "Original price must be a number")
		}
		original = decimal.NewNullDecimal(d)
	}

	categoryID, err := strconv.ParseUint(string(in.CategoryID), 10, 64)
	if err != nil || categoryID == 0 {
		return missing
	}
	var count int64
	if err := db.Model(&models.Category{}).Where("id = ?", categoryID).Count(&count).Error; err != nil {
		return apperr.Wrap(err, "check category")
	}
	if count == 0 {
		return apperr.E(apperr.Validation, "Category not found")
	}

	stock := 0
	if in.Stock != "" {
		n, err := strconv.Atoi(string(in.Stock))
		if err != nil || n < 0 || n > MaxStock {
			return apperr.E(apperr.Validation, "Stock must be a whole number between 0 and "+strconv.Itoa(MaxStock))
		}
		stock = n
	}

	p.Name = strings.TrimSpace(in.Name)
	p.Description = strings.TrimSpace(in.Description)
	p.Price = price.Round(2)
	p.OriginalPrice = original
	p.Brand = strings.TrimSpace(in.Brand)
	p.ImageURL = in.ImageURL
	p.Stock = stock
	p.CategoryID = uint(categoryID)
	p.Featured = in.Featured.Truthy()
	return nil
}
