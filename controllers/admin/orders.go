package adminController

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/glamourcosmetics/storefront-api/apperr"
	orderControllers "github.com/glamourcosmetics/storefront-api/controllers/order"
	"github.com/glamourcosmetics/storefront-api/controllers/params"
	"github.com/glamourcosmetics/storefront-api/models"
	"gorm.io/gorm"
)

type OrderFilter struct {
	Status        models.OrderStatus
	PaymentStatus models.PaymentStatus
	UserID        uint
}

func (f OrderFilter) scope(db *gorm.DB) *gorm.DB {
	if f.Status != "" {
		db = db.Where("orders.status = ?", f.Status)
	}
	if f.PaymentStatus != "" {
		db = db.Where("orders.payment_status = ?", f.PaymentStatus)
	}
	if f.UserID != 0 {
		db = db.Where("orders.user_id = ?", f.UserID)
	}
	return db
}

func respond(c *gin.Context, err error, op string) {
	if apperr.KindOf(err) == apperr.Internal {
		err = apperr.Wrap(err, op)
	}
	apperr.Respond(c, err)
}

func decorate(o *models.Order) {
	o.ItemCount = len(o.Items)
	if o.User != nil {
		o.CustomerName = o.User.FullName()
	}
}

// ListOrders returns one page of orders across all customers, newest first.
func ListOrders(db *gorm.DB, f OrderFilter, page params.Page) ([]models.Order, int64, error) {
	var total int64
	if err := db.Model(&models.Order{}).Scopes(f.scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orders := []models.Order{}
	if err := db.Scopes(f.scope).
		Preload("User").
		Preload("Items").
		Order("orders.created_at DESC, orders.id DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	for i := range orders {
		decorate(&orders[i])
	}
	return orders, total, nil
}

func filterFromQuery(c *gin.Context) (OrderFilter, error) {
	var f OrderFilter
	if s := c.Query("status"); s != "" {
		st, ok := models.ParseOrderStatus(s)
		if !ok {
			return f, apperr.E(apperr.Validation, "Invalid status")
		}
		f.Status = st
	}
	if s := c.Query("paymentStatus"); s != "" {
		ps, ok := models.ParsePaymentStatus(s)
		if !ok {
			return f, apperr.E(apperr.Validation, "Invalid payment status")
		}
		f.PaymentStatus = ps
	}
	return f, nil
}

// GET /admin/orders
func GetOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		f, err := filterFromQuery(c)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		page := params.PageFrom(c)

		orders, total, err := ListOrders(db, f, page)
		if err != nil {
			apperr.Respond(c, apperr.Wrap(err, "list orders"))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"orders":     orders,
			"pagination": page.Of(total),
		})
	}
}

// GET /admin/orders/:id
//
// Owners read any order.
func GetOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := params.ID(c, "id", "Order")
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		order, err := orderControllers.LoadOrder(db, id)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		decorate(&order)
		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}

type UpdateOrderInput struct {
	Status        *string `json:"status"`
	PaymentStatus *string `json:"paymentStatus"`
}

func (in UpdateOrderInput) updates() (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	if in.Status != nil {
		st, ok := models.ParseOrderStatus(*in.Status)
		if !ok {
			return nil, apperr.E(apperr.Validation, "Invalid status")
		}
		updates["status"] = st
	}
	if in.PaymentStatus != nil {
		ps, ok := models.ParsePaymentStatus(*in.PaymentStatus)
		if !ok {
			return nil, apperr.E(apperr.Validation, "Invalid payment status")
		}
		updates["payment_status"] = ps
	}
	if len(updates) == 0 {
		return nil, apperr.E(apperr.Validation, "No fields to update")
	}
	return updates, nil
}

// UpdateOrder applies a partial status update. Fields left out are untouched.
func UpdateOrder(db *gorm.DB, orderID uint, in UpdateOrderInput) error {
	updates, err := in.updates()
	if err != nil {
		return err
	}
	res := db.Model(&models.Order{}).Where("id = ?", orderID).Updates(updates)
	if res.Error != nil {
		return apperr.Wrap(res.Error, "update order")
	}
	if res.RowsAffected == 0 {
		return apperr.E(apperr.NotFound, "Order not found")
	}
	return nil
}

// PATCH /admin/orders/:id
func UpdateOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := params.ID(c, "id", "Order")
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		var input UpdateOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperr.Respond(c, apperr.E(apperr.Validation, "Invalid request body"))
			return
		}
		if err := UpdateOrder(db, id, input); err != nil {
			apperr.Respond(c, err)
			return
		}

		log.Printf("📦 Order %d updated", id)
		c.JSON(http.StatusOK, gin.H{"message": "Order updated"})
	}
}

type BulkStatusUpdate struct {
	ID     uint   `json:"id"`
	Status string `json:"status"`
}

// BulkUpdateStatus sets several order statuses in one transaction. An
// unknown status or order rejects the whole batch.
func BulkUpdateStatus(db *gorm.DB, batch []BulkStatusUpdate) error {
	if len(batch) == 0 {
		return apperr.E(apperr.Validation, "No fields to update")
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, u := range batch {
			st, ok := models.ParseOrderStatus(u.Status)
			if !ok {
				return apperr.E(apperr.Validation, "Invalid status")
			}
			res := tx.Model(&models.Order{}).Where("id = ?", u.ID).Update("status", st)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return apperr.E(apperr.NotFound, "Order not found")
			}
		}
		return nil
	})
}

// PATCH /admin/orders
func BulkUpdateOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Updates []BulkStatusUpdate `json:"updates"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			apperr.Respond(c, apperr.E(apperr.Validation, "Invalid request body"))
			return
		}

		if err := BulkUpdateStatus(db, input.Updates); err != nil {
			respond(c, err, "bulk update orders")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Orders updated", "updated": len(input.Updates)})
	}
}
