package models

import "time"

// Notification event types carried on the notification topic.
const (
	NotificationWelcome             = "user.welcome"
	NotificationOrderConfirmation   = "order.confirmation"
	NotificationPaymentConfirmation = "payment.confirmation"
	NotificationOrderShipped        = "order.shipped"
	NotificationPasswordReset       = "user.password_reset"
	NotificationLowStock            = "product.low_stock"
)

// NotificationEvent is published to SNS and consumed by the email
// worker. Data holds the type-specific fields needed to render the
// message (order_number, transaction_id, tracking_number, ...).
type NotificationEvent struct {
	EventType string            `json:"event_type"`
	Recipient string            `json:"recipient,omitempty"`
	Data      map[string]string `json:"data,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}
