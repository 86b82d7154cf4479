// Package consumer turns notification events from the SQS queue into
// outbound emails.
package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"order-backend/models"
	"order-backend/notifications/sender"
	awspkg "order-backend/pkg/aws"
)

// EmailWorker consumes NotificationEvents and delivers them through
// the email sender. Unknown event types are acknowledged and dropped.
type EmailWorker struct {
	consumer   *awspkg.SQSConsumer
	sender     sender.EmailSender
	adminEmail string
	logger     *zap.Logger
}

// NewEmailWorker creates a new EmailWorker. adminEmail receives
// operational alerts such as low-stock notices.
func NewEmailWorker(consumer *awspkg.SQSConsumer, emailSender sender.EmailSender, adminEmail string, logger *zap.Logger) *EmailWorker {
	return &EmailWorker{
		consumer:   consumer,
		sender:     emailSender,
		adminEmail: adminEmail,
		logger:     logger,
	}
}

// Run polls the queue until the context is cancelled.
func (w *EmailWorker) Run(ctx context.Context) error {
	return w.consumer.StartPolling(ctx, w.handleMessage)
}

// snsEnvelope unwraps the SNS → SQS message wrapper.
type snsEnvelope struct {
	Message string `json:"Message"`
}

func (w *EmailWorker) handleMessage(ctx context.Context, body string) error {
	payload := body
	var envelope snsEnvelope
	if err := json.Unmarshal([]byte(body), &envelope); err == nil && envelope.Message != "" {
		payload = envelope.Message
	}

	var event models.NotificationEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return fmt.Errorf("failed to decode notification event: %w", err)
	}

	to, subject, emailBody, ok := w.render(event)
	if !ok {
		w.logger.Warn("dropping unknown notification event", zap.String("event_type", event.EventType))
		return nil
	}
	if to == "" {
		w.logger.Warn("dropping notification without recipient", zap.String("event_type", event.EventType))
		return nil
	}

	result, err := w.sender.SendEmail(ctx, to, subject, emailBody)
	if err != nil {
		return fmt.Errorf("failed to send %s email: %w", event.EventType, err)
	}

	w.logger.Info("notification email sent",
		zap.String("event_type", event.EventType),
		zap.String("recipient", to),
		zap.String("message_id", result.MessageID),
	)
	return nil
}

func (w *EmailWorker) render(event models.NotificationEvent) (to, subject, body string, ok bool) {
	data := event.Data
	switch event.EventType {
	case models.NotificationWelcome:
		return event.Recipient,
			"Welcome aboard",
			fmt.Sprintf("<p>Hi %s, welcome! Your account is ready.</p>", data["first_name"]),
			true
	case models.NotificationOrderConfirmation:
		return event.Recipient,
			fmt.Sprintf("Order %s confirmed", data["order_number"]),
			fmt.Sprintf("<p>We received your order <b>%s</b> and will keep you posted.</p>", data["order_number"]),
			true
	case models.NotificationPaymentConfirmation:
		return event.Recipient,
			fmt.Sprintf("Payment received for order %s", data["order_number"]),
			fmt.Sprintf("<p>Your payment for order <b>%s</b> went through (transaction %s).</p>",
				data["order_number"], data["transaction_id"]),
			true
	case models.NotificationOrderShipped:
		return event.Recipient,
			fmt.Sprintf("Order %s shipped", data["order_number"]),
			fmt.Sprintf("<p>Order <b>%s</b> is on its way. Tracking number: %s</p>",
				data["order_number"], data["tracking_number"]),
			true
	case models.NotificationPasswordReset:
		return event.Recipient,
			"Password reset",
			fmt.Sprintf("<p>Use this token to reset your password: %s</p>", data["reset_token"]),
			true
	case models.NotificationLowStock:
		return w.adminEmail,
			fmt.Sprintf("Low stock: %s", data["product_name"]),
			fmt.Sprintf("<p>Product <b>%s</b> is down to %s units.</p>",
				data["product_name"], data["current_stock"]),
			true
	}
	return "", "", "", false
}
