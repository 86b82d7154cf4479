// Package audit records significant system activities. Recording is
// fire-and-forget: callers never see a failure, and a broken sink must
// not block the operation that triggered the event.
package audit

import (
	"context"
	"time"
)

// Event types written to the trail.
const (
	EventUserCreated        = "USER_CREATED"
	EventUserUpdated        = "USER_UPDATED"
	EventProductCreated     = "PRODUCT_CREATED"
	EventProductUpdated     = "PRODUCT_UPDATED"
	EventStockUpdated       = "STOCK_UPDATED"
	EventOrderCreated       = "ORDER_CREATED"
	EventOrderStatusChanged = "ORDER_STATUS_CHANGED"
	EventPaymentProcessed   = "PAYMENT_PROCESSED"
	EventPaymentRefunded    = "PAYMENT_REFUNDED"
)

// Entry is one audit record as stored in the trail.
type Entry struct {
	EventType string            `bson:"event_type" json:"event_type"`
	Details   map[string]string `bson:"details" json:"details"`
	Timestamp time.Time         `bson:"timestamp" json:"timestamp"`
}

// Recorder is the audit sink injected into the services.
type Recorder interface {
	UserCreated(ctx context.Context, userID uint, email string)
	UserUpdated(ctx context.Context, userID uint, email string)
	ProductCreated(ctx context.Context, productID uint, name string)
	ProductUpdated(ctx context.Context, productID uint, name string)
	StockUpdated(ctx context.Context, productID uint, oldStock, newStock int)
	OrderCreated(ctx context.Context, orderID uint, orderNumber string, userID uint)
	OrderStatusChanged(ctx context.Context, orderID uint, oldStatus, newStatus string)
	PaymentProcessed(ctx context.Context, paymentID uint, transactionID, status string)
	PaymentRefunded(ctx context.Context, paymentID uint, transactionID string)
}
