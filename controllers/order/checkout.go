package orderControllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/glamourcosmetics/storefront-api/apperr"
	"github.com/glamourcosmetics/storefront-api/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderLine struct {
	ProductID uint `json:"productId"`
	Quantity  int  `json:"quantity"`
	// Price is accepted for compatibility with the storefront client but
	// never trusted; the product's current price is charged.
	Price *decimal.Decimal `json:"price"`
}

type PlaceOrderRequest struct {
	Items        []OrderLine          `json:"items"`
	ShippingInfo *models.ShippingInfo `json:"shippingInfo"`
	PaymentInfo  json.RawMessage      `json:"paymentInfo"`
	Total        *decimal.Decimal     `json:"total"`
}

func (r PlaceOrderRequest) validate() error {
	if len(r.Items) == 0 || r.ShippingInfo == nil || isEmptyJSON(r.PaymentInfo) || r.Total == nil {
		return apperr.E(apperr.Validation, "Missing required fields")
	}
	for _, it := range r.Items {
		if it.ProductID == 0 || it.Quantity < 1 {
			return apperr.E(apperr.Validation, "Each item needs a productId and a quantity of at least 1")
		}
	}
	return nil
}

func isEmptyJSON(raw json.RawMessage) bool {
	s := string(raw)
	return s == "" || s == "null"
}

// generateOrderRef gives a sortable, unique reference: 20250908130500-<uuid4>
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// PlaceOrder turns the request into an order in one transaction: every line
// decrements stock with a guarded update, the order and its items are
// written, and the user's cart is emptied. Any failure rolls all of it back.
func PlaceOrder(db *gorm.DB, userID uint, req PlaceOrderRequest) (models.Order, error) {
	if err := req.validate(); err != nil {
		return models.Order{}, err
	}

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(req.Items))

		for _, line := range req.Items {
			var product models.Product
			err := tx.Where("id = ? AND is_active = ?", line.ProductID, true).First(&product).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.E(apperr.Validation, fmt.Sprintf("Product %d is not available", line.ProductID))
			}
			if err != nil {
				return err
			}

			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", product.ID, line.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", line.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return apperr.E(apperr.InsufficientStock, "Insufficient stock for "+product.Name)
			}

			item := models.OrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				Brand:       product.Brand,
				ImageURL:    product.ImageURL,
				Quantity:    line.Quantity,
				Price:       product.Price,
			}
			total = total.Add(item.LineTotal())
			items = append(items, item)
		}

		if !req.Total.Equal(total) {
			log.Printf("⚠️ User %d submitted total %s, charging %s", userID, req.Total.StringFixed(2), total.StringFixed(2))
		}

		order = models.Order{
			OrderRef:      generateOrderRef(),
			UserID:        userID,
			Total:         total,
			Status:        models.OrderStatusPending,
			Shipping:      *req.ShippingInfo,
			PaymentMethod: models.DefaultPaymentMethod,
			PaymentStatus: models.PaymentStatusPending,
			Items:         items,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// The whole cart goes, not only the ordered products.
		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return models.Order{}, err
	}

	order.ItemCount = len(order.Items)
	return order, nil
}
