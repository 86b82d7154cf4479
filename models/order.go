package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the fulfillment state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// orderTransitions encodes the fulfillment state machine. PROCESSING is
// reachable straight from PENDING so that payment capture can run before
// a manual confirmation step. Cancellation is valid from any
// non-terminal state and is handled by Terminal, not this table.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusProcessing},
	OrderStatusConfirmed:  {OrderStatusProcessing},
	OrderStatusProcessing: {OrderStatusShipped},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// Terminal reports whether no further transition is allowed.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo reports whether moving to next is a legal transition.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if next == OrderStatusCancelled {
		return !s.Terminal()
	}
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OrderItem is one line of an order. UnitPrice is a snapshot taken at
// order time; later catalog price changes do not touch it.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"not null;index" json:"order_id"`
	ProductID uint            `gorm:"not null;index" json:"product_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	Subtotal  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"subtotal"`
}

// Order is the GORM model for a customer order. Addresses are copied
// from the user profile at creation time, not live references.
type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	OrderNumber     string          `gorm:"type:varchar(64);not null;uniqueIndex" json:"order_number"`
	UserID          uint            `gorm:"not null;index" json:"user_id"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	ShippingAddress string          `gorm:"type:varchar(512)" json:"shipping_address"`
	BillingAddress  string          `gorm:"type:varchar(512)" json:"billing_address"`
	TrackingNumber  string          `gorm:"type:varchar(128)" json:"tracking_number,omitempty"`
	Status          OrderStatus     `gorm:"type:varchar(16);not null;default:'PENDING';index" json:"status"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	CompletedAt     *time.Time      `json:"completed_at,omitempty"`
}

// OrderItemRequest is one requested line of a new order.
type OrderItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gt=0"`
}

// CreateOrderRequest is the payload for placing an order.
type CreateOrderRequest struct {
	UserID        uint               `json:"user_id" binding:"required"`
	Items         []OrderItemRequest `json:"items" binding:"required,min=1"`
	PaymentMethod PaymentMethod      `json:"payment_method" binding:"required"`
}

// ShipOrderRequest is the payload for marking an order shipped.
type ShipOrderRequest struct {
	TrackingNumber string `json:"tracking_number" binding:"required"`
}
