package cartControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/glamourcosmetics/storefront-api/apperr"
	"github.com/glamourcosmetics/storefront-api/auth"
	"github.com/glamourcosmetics/storefront-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartLine struct {
	ID        uint            `json:"id"`
	ProductID uint            `json:"productId"`
	Quantity  int             `json:"quantity"`
	Name      string          `json:"name"`
	Brand     string          `json:"brand"`
	ImageURL  string          `json:"imageUrl"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
}

type Cart struct {
	Items []CartLine      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// GetCart prices the cart at current product prices. Lines whose product
// has been deactivated are left out.
func GetCart(db *gorm.DB, userID uint) (Cart, error) {
	var rows []models.CartItem
	if err := db.
		Joins("Product").
		Where("cart_items.user_id = ? AND \"Product\".\"is_active\" = ?", userID, true).
		Order("cart_items.created_at DESC, cart_items.id DESC").
		Find(&rows).Error; err != nil {
		return Cart{}, err
	}

	cart := Cart{Items: make([]CartLine, 0, len(rows)), Total: decimal.Zero}
	for _, row := range rows {
		p := row.Product
		cart.Items = append(cart.Items, CartLine{
			ID:        row.ID,
			ProductID: row.ProductID,
			Quantity:  row.Quantity,
			Name:      p.Name,
			Brand:     p.Brand,
			ImageURL:  p.ImageURL,
			Price:     p.Price,
			Stock:     p.Stock,
		})
		cart.Total = cart.Total.Add(p.Price.Mul(decimal.NewFromInt(int64(row.Quantity))))
	}
	cart.Total = cart.Total.Round(2)
	return cart, nil
}

func activeProduct(db *gorm.DB, id uint) (models.Product, error) {
	var p models.Product
	err := db.Where("id = ? AND is_active = ?", id, true).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return p, apperr.E(apperr.NotFound, "Product not found")
	}
	if err != nil {
		return p, apperr.Wrap(err, "load product")
	}
	return p, nil
}

// AddToCart increments an existing line or inserts a new one. The resulting
// quantity may not exceed current stock.
func AddToCart(db *gorm.DB, userID, productID uint, quantity int) (models.CartItem, error) {
	if quantity < 1 {
		return models.CartItem{}, apperr.E(apperr.Validation, "Quantity must be at least 1")
	}

	var item models.CartItem
	err := db.Transaction(func(tx *gorm.DB) error {
		product, err := activeProduct(tx, productID)
		if err != nil {
			return err
		}
		if product.Stock < quantity {
			return apperr.E(apperr.InsufficientStock, "Insufficient stock")
		}

		err = tx.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			item = models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
			return tx.Create(&item).Error
		}
		if err != nil {
			return err
		}

		if item.Quantity+quantity > product.Stock {
			return apperr.E(apperr.InsufficientStock, "Insufficient stock for requested quantity")
		}
		item.Quantity += quantity
		return tx.Model(&item).Update("quantity", item.Quantity).Error
	})
	return item, err
}

// SetQuantity overwrites a line's quantity. Zero removes the line.
func SetQuantity(db *gorm.DB, userID, productID uint, quantity int) error {
	if quantity < 0 {
		return apperr.E(apperr.Validation, "Quantity cannot be negative")
	}
	if quantity == 0 {
		return db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.CartItem{}).Error
	}

	product, err := activeProduct(db, productID)
	if err != nil {
		return err
	}
	if product.Stock < quantity {
		return apperr.E(apperr.InsufficientStock, "Insufficient stock")
	}

	res := db.Model(&models.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", quantity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.E(apperr.NotFound, "Cart item not found")
	}
	return nil
}

type CartItemInput struct {
	ProductID uint `json:"productId"`
	Quantity  *int `json:"quantity"`
}

func respond(c *gin.Context, err error, op string) {
	if apperr.KindOf(err) == apperr.Internal {
		err = apperr.Wrap(err, op)
	}
	apperr.Respond(c, err)
}

// GET /cart
func GetCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := GetCart(db, auth.MustIdentity(c).UserID)
		if err != nil {
			respond(c, err, "load cart")
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// POST /cart
func AddToCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil || input.ProductID == 0 {
			apperr.Respond(c, apperr.E(apperr.Validation, "Product ID is required"))
			return
		}
		qty := 1
		if input.Quantity != nil {
			qty = *input.Quantity
		}

		if _, err := AddToCart(db, auth.MustIdentity(c).UserID, input.ProductID, qty); err != nil {
			respond(c, err, "add to cart")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item added to cart"})
	}
}

// PUT /cart
func UpdateCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil || input.ProductID == 0 || input.Quantity == nil {
			apperr.Respond(c, apperr.E(apperr.Validation, "Product ID and quantity are required"))
			return
		}

		if err := SetQuantity(db, auth.MustIdentity(c).UserID, input.ProductID, *input.Quantity); err != nil {
			respond(c, err, "update cart")
			return
		}
		msg := "Cart updated"
		if *input.Quantity == 0 {
			msg = "Item removed from cart"
		}
		c.JSON(http.StatusOK, gin.H{"message": msg})
	}
}

// DELETE /cart
func ClearCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Where("user_id = ?", auth.MustIdentity(c).UserID).Delete(&models.CartItem{}).Error; err != nil {
			respond(c, err, "clear cart")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
