package productcontroller

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glamourcosmetics/storefront-api/apperr"
	"github.com/glamourcosmetics/storefront-api/controllers/params"
	"github.com/glamourcosmetics/storefront-api/models"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

type ImportResult struct {
	Created int      `json:"createdCount"`
	Updated int      `json:"updatedCount"`
	Skipped int      `json:"skippedCount"`
	Errors  []string `json:"errors,omitempty"`
}

// importProducts reads the first sheet in the export layout. A row whose ID
// matches an existing product updates it; any other row creates a product.
// Rows failing validation are skipped and reported. A store error rolls
// back the whole sheet.
func importProducts(db *gorm.DB, file *xlsx.File) (ImportResult, error) {
	var res ImportResult
	if len(file.Sheets) == 0 || len(file.Sheets[0].Rows) < 2 {
		return res, apperr.E(apperr.Validation, "Excel file is empty or missing header row")
	}

	rows := file.Sheets[0].Rows
	err := db.Transaction(func(tx *gorm.DB) error {
		for i := 1; i < len(rows); i++ {
			row := rows[i]
			get := func(col int) string {
				if row == nil || col >= len(row.Cells) {
					return ""
				}
				return strings.TrimSpace(row.Cells[col].String())
			}

			if get(1) == "" && get(3) == "" {
				continue // blank row
			}

			input := ProductInput{
				Name:          get(1),
				Description:   get(2),
				Price:         params.Loose(get(3)),
				OriginalPrice: params.Loose(get(4)),
				Brand:         get(5),
				ImageURL:      get(6),
				Stock:         params.Loose(get(7)),
				CategoryID:    params.Loose(get(8)),
				Featured:      params.Loose(get(10)),
			}
			active := get(11) == "" || params.Loose(get(11)).Truthy()

			var product models.Product
			existing := false
			if id, err := strconv.ParseUint(get(0), 10, 64); err == nil && id > 0 {
				err := tx.First(&product, id).Error
				switch {
				case err == nil:
					existing = true
				case !errors.Is(err, gorm.ErrRecordNotFound):
					return err
				}
			}

			if err := input.apply(tx, &product); err != nil {
				if apperr.KindOf(err) == apperr.Internal {
					return err
				}
				res.Skipped++
				res.Errors = append(res.Errors, "row "+strconv.Itoa(i+1)+": "+apperr.Message(err))
				continue
			}
			product.IsActive = active
			product.Category = nil
			product.UpdatedAt = time.Now()

			if existing {
				if err := tx.Model(&product).
					Select("name", "description", "price", "original_price", "brand", "image_url", "stock", "category_id", "featured", "is_active", "updated_at").
					Updates(&product).Error; err != nil {
					return err
				}
				res.Updated++
				continue
			}

			product.ID = 0
			if err := tx.Create(&product).Error; err != nil {
				return err
			}
			res.Created++
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}
	return res, nil
}

// POST /admin/products/import
func ImportProductsFromExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		header, err := c.FormFile("file")
		if err != nil {
			apperr.Respond(c, apperr.E(apperr.Validation, "Excel file is required"))
			return
		}

		f, err := header.Open()
		if err != nil {
			apperr.Respond(c, apperr.Wrap(err, "open upload"))
			return
		}
		defer f.Close()

		file, err := xlsx.OpenReaderAt(f, header.Size)
		if err != nil {
			apperr.Respond(c, apperr.E(apperr.Validation, "Failed to parse Excel file"))
			return
		}

		res, err := importProducts(db, file)
		if err != nil {
			if apperr.KindOf(err) == apperr.Internal {
				err = apperr.Wrap(err, "import products")
			}
			apperr.Respond(c, err)
			return
		}

		log.Printf("📥 Product import: %d created, %d updated, %d skipped", res.Created, res.Updated, res.Skipped)
		c.JSON(http.StatusOK, gin.H{"message": "Import completed", "result": res})
	}
}
