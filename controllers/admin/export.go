package adminController

import (
	"github.com/gin-gonic/gin"
	"github.com/glamourcosmetics/storefront-api/apperr"
	"github.com/glamourcosmetics/storefront-api/controllers/sheets"
	"github.com/glamourcosmetics/storefront-api/models"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

var orderColumns = []string{
	"Order ID", "Reference", "Customer", "Email", "Status", "Payment Status",
	"Payment Method", "Items", "Total", "City", "Created At",
}

func orderWorkbook(orders []models.Order) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return nil, err
	}
	sheets.Header(sheet, orderColumns...)

	for _, o := range orders {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(o.ID))
		row.AddCell().SetString(o.OrderRef)
		row.AddCell().SetString(o.CustomerName)
		email := o.Shipping.Email
		if o.User != nil {
			email = o.User.Email
		}
		row.AddCell().SetString(email)
		row.AddCell().SetString(string(o.Status))
		row.AddCell().SetString(string(o.PaymentStatus))
		row.AddCell().SetString(o.PaymentMethod)
		row.AddCell().SetInt(o.ItemCount)
		row.AddCell().SetString(o.Total.StringFixed(2))
		row.AddCell().SetString(o.Shipping.City)
		row.AddCell().SetString(o.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return file, nil
}

// GET /admin/orders/export
//
// Accepts the same status and paymentStatus filters as the list.
func ExportOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		f, err := filterFromQuery(c)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		var orders []models.Order
		if err := db.Scopes(f.scope).
			Preload("User").
			Preload("Items").
			Order("orders.created_at DESC, orders.id DESC").
			Find(&orders).Error; err != nil {
			apperr.Respond(c, apperr.Wrap(err, "export orders"))
			return
		}
		for i := range orders {
			decorate(&orders[i])
		}

		file, err := orderWorkbook(orders)
		if err != nil {
			apperr.Respond(c, apperr.Wrap(err, "build order sheet"))
			return
		}
		sheets.Write(c, file, "orders.xlsx")
	}
}
