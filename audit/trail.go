package audit

import (
	"context"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// EntryWriter is the subset of *mongo.Collection the trail needs;
// narrow so tests can swap in a fake.
type EntryWriter interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

// Trail implements Recorder by logging every event through zap and
// best-effort persisting it to a Mongo collection. A nil collection
// degrades to log-only, which is how local development runs.
type Trail struct {
	collection EntryWriter
	logger     *zap.Logger
}

// NewTrail creates a Trail. collection may be nil.
func NewTrail(collection EntryWriter, logger *zap.Logger) *Trail {
	return &Trail{collection: collection, logger: logger}
}

func (t *Trail) record(ctx context.Context, eventType string, details map[string]string) {
	fields := make([]zap.Field, 0, len(details)+1)
	fields = append(fields, zap.String("event_type", eventType))
	for k, v := range details {
		fields = append(fields, zap.String(k, v))
	}
	t.logger.Info("[AUDIT] "+eventType, fields...)

	if t.collection == nil {
		return
	}
	entry := Entry{EventType: eventType, Details: details, Timestamp: time.Now().UTC()}
	if _, err := t.collection.InsertOne(ctx, entry); err != nil {
		t.logger.Error("audit entry insert failed", zap.String("event_type", eventType), zap.Error(err))
	}
}

func (t *Trail) UserCreated(ctx context.Context, userID uint, email string) {
	t.record(ctx, EventUserCreated, map[string]string{
		"user_id": formatID(userID),
		"email":   email,
	})
}

func (t *Trail) UserUpdated(ctx context.Context, userID uint, email string) {
	t.record(ctx, EventUserUpdated, map[string]string{
		"user_id": formatID(userID),
		"email":   email,
	})
}

func (t *Trail) ProductCreated(ctx context.Context, productID uint, name string) {
	t.record(ctx, EventProductCreated, map[string]string{
		"product_id": formatID(productID),
		"name":       name,
	})
}

func (t *Trail) ProductUpdated(ctx context.Context, productID uint, name string) {
	t.record(ctx, EventProductUpdated, map[string]string{
		"product_id": formatID(productID),
		"name":       name,
	})
}

func (t *Trail) StockUpdated(ctx context.Context, productID uint, oldStock, newStock int) {
	t.record(ctx, EventStockUpdated, map[string]string{
		"product_id": formatID(productID),
		"old_stock":  strconv.Itoa(oldStock),
		"new_stock":  strconv.Itoa(newStock),
	})
}

func (t *Trail) OrderCreated(ctx context.Context, orderID uint, orderNumber string, userID uint) {
	t.record(ctx, EventOrderCreated, map[string]string{
		"order_id":     formatID(orderID),
		"order_number": orderNumber,
		"user_id":      formatID(userID),
	})
}

func (t *Trail) OrderStatusChanged(ctx context.Context, orderID uint, oldStatus, newStatus string) {
	t.record(ctx, EventOrderStatusChanged, map[string]string{
		"order_id":   formatID(orderID),
		"old_status": oldStatus,
		"new_status": newStatus,
	})
}

func (t *Trail) PaymentProcessed(ctx context.Context, paymentID uint, transactionID, status string) {
	t.record(ctx, EventPaymentProcessed, map[string]string{
		"payment_id":     formatID(paymentID),
		"transaction_id": transactionID,
		"status":         status,
	})
}

func (t *Trail) PaymentRefunded(ctx context.Context, paymentID uint, transactionID string) {
	t.record(ctx, EventPaymentRefunded, map[string]string{
		"payment_id":     formatID(paymentID),
		"transaction_id": transactionID,
	})
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
