package orderControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/glamourcosmetics/storefront-api/apperr"
	"github.com/glamourcosmetics/storefront-api/auth"
	"github.com/glamourcosmetics/storefront-api/controllers/params"
	"github.com/glamourcosmetics/storefront-api/models"
	"gorm.io/gorm"
)

// POST /orders
func PlaceOrderHandler(db *gorm.DB, hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := auth.MustIdentity(c)

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.E(apperr.Validation, "Invalid request body"))
			return
		}

		order, err := PlaceOrder(db, id.UserID, req)
		if err != nil {
			if apperr.KindOf(err) == apperr.Internal {
				err = apperr.Wrap(err, "place order")
			}
			apperr.Respond(c, err)
			return
		}

		if hub != nil {
			hub.Broadcast(order)
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":  "Order created successfully",
			"orderId":  order.ID,
			"orderRef": order.OrderRef,
			"total":    order.Total,
		})
	}
}

// GET /orders
func GetMyOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := auth.MustIdentity(c)

		var orders []models.Order
		if err := db.
			Where("user_id = ?", id.UserID).
			Preload("Items").
			Order("created_at DESC, id DESC").
			Find(&orders).Error; err != nil {
			apperr.Respond(c, apperr.Wrap(err, "list orders"))
			return
		}
		for i := range orders {
			orders[i].ItemCount = len(orders[i].Items)
		}

		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

// GET /orders/:id
//
// Another user's order reads as not found.
func GetMyOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := auth.MustIdentity(c)

		orderID, err := params.ID(c, "id", "Order")
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		order, err := LoadOrder(db.Where("user_id = ?", id.UserID), orderID)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}

// LoadOrder fetches one order with its items and customer. Scope db to
// restrict which orders are visible.
func LoadOrder(db *gorm.DB, orderID uint) (models.Order, error) {
	var order models.Order
	err := db.
		Preload("Items").
		Preload("User").
		Where("orders.id = ?", orderID).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return order, apperr.E(apperr.NotFound, "Order not found")
	}
	if err != nil {
		return order, apperr.Wrap(err, "load order")
	}
	order.ItemCount = len(order.Items)
	return order, nil
}
