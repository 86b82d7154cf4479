package notifications

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"go.uber.org/zap"

	awspkg "order-backend/pkg/aws"
	"order-backend/models"
)

// SNSNotifier publishes a NotificationEvent per call to the
// notification topic; the SQS email worker consumes them downstream.
type SNSNotifier struct {
	publisher awspkg.SNSPublisher
	topicArn  string
	logger    *zap.Logger
}

// NewSNSNotifier creates a new SNSNotifier.
func NewSNSNotifier(publisher awspkg.SNSPublisher, topicArn string, logger *zap.Logger) *SNSNotifier {
	return &SNSNotifier{publisher: publisher, topicArn: topicArn, logger: logger}
}

func (n *SNSNotifier) publish(ctx context.Context, eventType, recipient string, data map[string]string) {
	event := models.NotificationEvent{
		EventType: eventType,
		Recipient: recipient,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		n.logger.Error("notification marshal failed", zap.String("event_type", eventType), zap.Error(err))
		return
	}
	if err := n.publisher.Publish(ctx, n.topicArn, payload); err != nil {
		n.logger.Error("notification publish failed",
			zap.String("event_type", eventType),
			zap.String("recipient", recipient),
			zap.Error(err),
		)
	}
}

func (n *SNSNotifier) Welcome(ctx context.Context, email, firstName string) {
	n.publish(ctx, models.NotificationWelcome, email, map[string]string{
		"first_name": firstName,
	})
}

func (n *SNSNotifier) OrderConfirmation(ctx context.Context, email, orderNumber string) {
	n.publish(ctx, models.NotificationOrderConfirmation, email, map[string]string{
		"order_number": orderNumber,
	})
}

func (n *SNSNotifier) PaymentConfirmation(ctx context.Context, email, orderNumber, transactionID string) {
	n.publish(ctx, models.NotificationPaymentConfirmation, email, map[string]string{
		"order_number":   orderNumber,
		"transaction_id": transactionID,
	})
}

func (n *SNSNotifier) OrderShipped(ctx context.Context, email, orderNumber, trackingNumber string) {
	n.publish(ctx, models.NotificationOrderShipped, email, map[string]string{
		"order_number":    orderNumber,
		"tracking_number": trackingNumber,
	})
}

func (n *SNSNotifier) PasswordReset(ctx context.Context, email, resetToken string) {
	n.publish(ctx, models.NotificationPasswordReset, email, map[string]string{
		"reset_token": resetToken,
	})
}

func (n *SNSNotifier) LowStockAlert(ctx context.Context, productName string, currentStock int) {
	// Admin alert; no customer recipient.
	n.publish(ctx, models.NotificationLowStock, "", map[string]string{
		"product_name":  productName,
		"current_stock": strconv.Itoa(currentStock),
	})
}
