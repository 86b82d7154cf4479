package notifications

import (
	"context"

	"go.uber.org/zap"
)

// LogNotifier writes each notification to the log instead of a topic.
// Used when SNS is not configured (local development, tests).
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a new LogNotifier.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Welcome(_ context.Context, email, firstName string) {
	n.logger.Info("sending welcome email",
		zap.String("email", email), zap.String("first_name", firstName))
}

func (n *LogNotifier) OrderConfirmation(_ context.Context, email, orderNumber string) {
	n.logger.Info("sending order confirmation email",
		zap.String("email", email), zap.String("order_number", orderNumber))
}

func (n *LogNotifier) PaymentConfirmation(_ context.Context, email, orderNumber, transactionID string) {
	n.logger.Info("sending payment confirmation email",
		zap.String("email", email),
		zap.String("order_number", orderNumber),
		zap.String("transaction_id", transactionID))
}

func (n *LogNotifier) OrderShipped(_ context.Context, email, orderNumber, trackingNumber string) {
	n.logger.Info("sending order shipped email",
		zap.String("email", email),
		zap.String("order_number", orderNumber),
		zap.String("tracking_number", trackingNumber))
}

func (n *LogNotifier) PasswordReset(_ context.Context, email, _ string) {
	n.logger.Info("sending password reset email", zap.String("email", email))
}

func (n *LogNotifier) LowStockAlert(_ context.Context, productName string, currentStock int) {
	n.logger.Warn("low stock alert",
		zap.String("product_name", productName), zap.Int("current_stock", currentStock))
}
