package productcontroller

import (
	"strings"

	"github.com/glamourcosmetics/storefront-api/controllers/params"
	"github.com/glamourcosmetics/storefront-api/models"
	"gorm.io/gorm"
)

// ProductFilter selects which products a listing returns. Every value is
// bound as a parameter.
type ProductFilter struct {
	Category        string // category name
	Brand           string
	Featured        *bool
	Search          string // case-insensitive substring of name, description or brand
	IncludeInactive bool
}

func (f ProductFilter) scope(db *gorm.DB) *gorm.DB {
	if !f.IncludeInactive {
		db = db.Where("products.is_active = ?", true)
	}
	if f.Category != "" {
		db = db.Where("products.category_id IN (?)",
			db.Session(&gorm.Session{NewDB: true}).Model(&models.Category{}).Select("id").Where("name = ?", f.Category))
	}
	if f.Brand != "" {
		db = db.Where("products.brand = ?", f.Brand)
	}
	if f.Featured != nil {
		db = db.Where("products.featured = ?", *f.Featured)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		db = db.Where("(LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ? OR LOWER(products.brand) LIKE ?)", like, like, like)
	}
	return db
}

// ListProducts returns one page of matching products, newest first, and the
// total number of matches.
func ListProducts(db *gorm.DB, f ProductFilter, page params.Page) ([]models.Product, int64, error) {
	var total int64
	if err := db.Model(&models.Product{}).Scopes(f.scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	products := []models.Product{}
	if err := db.Scopes(f.scope).
		Preload("Category").
		Order("products.created_at DESC, products.id DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&products).Error; err != nil {
		return nil, 0, err
	}
	for i := range products {
		products[i].FillCategoryName()
	}
	return products, total, nil
}
