package productcontroller

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/glamourcosmetics/storefront-api/apperr"
	"github.com/glamourcosmetics/storefront-api/controllers/sheets"
	"github.com/glamourcosmetics/storefront-api/models"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

var productColumns = []string{
	"ID", "Name", "Description", "Price", "OriginalPrice", "Brand",
	"ImageURL", "Stock", "CategoryID", "Category", "Featured", "Active", "CreatedAt",
}

func productWorkbook(products []models.Product) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return nil, err
	}

	sheets.Header(sheet, productColumns...)

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(p.ID))
		row.AddCell().SetString(p.Name)
		row.AddCell().SetString(p.Description)
		row.AddCell().SetString(p.Price.StringFixed(2))
		if p.OriginalPrice.Valid {
			row.AddCell().SetString(p.OriginalPrice.Decimal.StringFixed(2))
		} else {
			row.AddCell().SetString("")
		}
		row.AddCell().SetString(p.Brand)
		row.AddCell().SetString(p.ImageURL)
		row.AddCell().SetInt(p.Stock)
		row.AddCell().SetString(strconv.FormatUint(uint64(p.CategoryID), 10))
		name := ""
		if p.Category != nil {
			name = p.Category.Name
		}
		row.AddCell().SetString(name)
		row.AddCell().SetString(strconv.FormatBool(p.Featured))
		row.AddCell().SetString(strconv.FormatBool(p.IsActive))
		row.AddCell().SetString(p.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return file, nil
}

// GET /admin/products/export
func ExportProductsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Preload("Category").Order("id ASC").Find(&products).Error; err != nil {
			apperr.Respond(c, apperr.Wrap(err, "export products"))
			return
		}

		file, err := productWorkbook(products)
		if err != nil {
			apperr.Respond(c, apperr.Wrap(err, "build product sheet"))
			return
		}

		sheets.Write(c, file, "products.xlsx")
	}
}
