package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string
type PaymentStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // Order placed, awaiting dispatch
	OrderStatusShipped   OrderStatus = "shipped"   // Out for delivery
	OrderStatusDelivered OrderStatus = "delivered" // Customer received the items
	OrderStatusCancelled OrderStatus = "cancelled"

	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// DefaultPaymentMethod is recorded on every order; there is no gateway.
const DefaultPaymentMethod = "credit_card"

// ParseOrderStatus maps a client string onto the order status vocabulary.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch st := OrderStatus(s); st {
	case OrderStatusPending, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return st, true
	}
	return "", false
}

func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch st := PaymentStatus(s); st {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return st, true
	}
	return "", false
}

// ShippingInfo is copied verbatim from the checkout request.
type ShippingInfo struct {
	FirstName string `gorm:"not null" json:"firstName"`
	LastName  string `gorm:"not null" json:"lastName"`
	Email     string `gorm:"not null" json:"email"`
	Phone     string `json:"phone"`
	Address   string `gorm:"not null" json:"address"`
	City      string `gorm:"not null" json:"city"`
	State     string `gorm:"not null" json:"state"`
	ZipCode   string `gorm:"not null" json:"zipCode"`
}

type Order struct {
	ID            uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderRef      string          `gorm:"uniqueIndex;not null" json:"orderRef"`
	UserID        uint            `gorm:"not null;index" json:"userId"`
	User          *User           `json:"user,omitempty"`
	Total         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	Status        OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	Shipping      ShippingInfo    `gorm:"embedded;embeddedPrefix:shipping_" json:"shippingInfo"`
	PaymentMethod string          `gorm:"type:varchar(40);not null" json:"paymentMethod"`
	PaymentStatus PaymentStatus   `gorm:"type:varchar(20);not null" json:"paymentStatus"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	ItemCount     int             `gorm:"-" json:"itemCount"`
	CustomerName  string          `gorm:"-" json:"customerName,omitempty"`
	CreatedAt     time.Time       `gorm:"index" json:"createdAt"`
}

// OrderItem is immutable once written. ProductID carries no foreign key so a
// deleted product leaves its historical lines intact.
type OrderItem struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     uint            `gorm:"not null;index" json:"orderId"`
	ProductID   uint            `gorm:"not null;index" json:"productId"`
	ProductName string          `json:"name"`
	Brand       string          `json:"brand"`
	ImageURL    string          `json:"imageUrl"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
