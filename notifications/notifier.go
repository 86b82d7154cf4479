// Package notifications is the customer-notification boundary. Calls
// are fire-and-forget: implementations log delivery failures and never
// surface them to the triggering operation.
package notifications

import "context"

// Notifier dispatches one notification per method. Implementations
// dispatch synchronously so that notifications for the same entity keep
// their order.
type Notifier interface {
	Welcome(ctx context.Context, email, firstName string)
	OrderConfirmation(ctx context.Context, email, orderNumber string)
	PaymentConfirmation(ctx context.Context, email, orderNumber, transactionID string)
	OrderShipped(ctx context.Context, email, orderNumber, trackingNumber string)
	PasswordReset(ctx context.Context, email, resetToken string)
	LowStockAlert(ctx context.Context, productName string, currentStock int)
}
