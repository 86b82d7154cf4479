package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	apperrors "order-backend/common/errors"
	"order-backend/models"
	"order-backend/services"
)

type orderFixture struct {
	users    *memUserRepo
	products *memProductRepo
	orders   *memOrderRepo
	payments *memPaymentRepo
	notifier *recordingNotifier
	auditor  *recordingAuditor

	userService    services.UserService
	productService services.ProductService
	paymentService services.PaymentService
	orderService   services.OrderService
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	logger := zap.NewNop()
	f := &orderFixture{
		users:    newMemUserRepo(),
		products: newMemProductRepo(),
		orders:   newMemOrderRepo(),
		payments: newMemPaymentRepo(),
		notifier: &recordingNotifier{},
		auditor:  &recordingAuditor{},
	}
	f.userService = services.NewUserService(f.users, f.notifier, f.auditor, logger)
	f.productService = services.NewProductService(f.products, f.notifier, f.auditor, logger)
	f.paymentService = services.NewPaymentService(f.payments, services.NewSimulatedGateway(), f.notifier, f.auditor, logger)
	f.orderService = services.NewOrderService(
		f.orders, passthroughTx{},
		f.userService, f.productService, f.paymentService,
		f.notifier, f.auditor, logger,
	)
	return f
}

func (f *orderFixture) seedUser(t *testing.T, email string) *models.User {
	t.Helper()
	user := &models.User{
		FirstName: "John",
		LastName:  "Doe",
		Email:     email,
		Password:  "hashed",
		Address:   "1 Main St",
		Active:    true,
	}
	assert.NoError(t, f.users.Create(context.Background(), user))
	return user
}

func (f *orderFixture) seedProduct(t *testing.T, name, price string, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:          name,
		Price:         decimal.RequireFromString(price),
		StockQuantity: stock,
		Active:        true,
	}
	assert.NoError(t, f.products.Create(context.Background(), product))
	return product
}

func TestCreateOrder(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "john@example.com")
	product := f.seedProduct(t, "Widget", "99.99", 100)

	order, err := f.orderService.CreateOrder(ctx, &models.CreateOrderRequest{
		UserID:        user.ID,
		Items:         []models.OrderItemRequest{{ProductID: product.ID, Quantity: 2}},
		PaymentMethod: models.PaymentMethodCreditCard,
	})
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"))
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("199.98")))
	assert.Len(t, order.Items, 1)
	assert.True(t, order.Items[0].UnitPrice.Equal(product.Price))
	assert.Equal(t, user.Address, order.ShippingAddress)

	// Stock is decremented and a pending payment is attached.
	got, err := f.products.FindByID(ctx, product.ID)
	assert.NoError(t, err)
	assert.Equal(t, 98, got.StockQuantity)

	payments, err := f.payments.FindByOrderID(ctx, order.ID)
	assert.NoError(t, err)
	assert.Len(t, payments, 1)
	assert.Equal(t, models.PaymentStatusPending, payments[0].Status)
	assert.True(t, payments[0].Amount.Equal(order.TotalAmount))

	confirmations := f.notifier.byKind("order_confirmation")
	assert.Len(t, confirmations, 1)
	assert.Equal(t, "john@example.com", confirmations[0].email)
	assert.Equal(t, 1, f.auditor.count("ORDER_CREATED"))
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "john@example.com")
	product := f.seedProduct(t, "Widget", "10.00", 3)

	_, err := f.orderService.CreateOrder(ctx, &models.CreateOrderRequest{
		UserID:        user.ID,
		Items:         []models.OrderItemRequest{{ProductID: product.ID, Quantity: 5}},
		PaymentMethod: models.PaymentMethodCreditCard,
	})
	assert.True(t, apperrors.IsInvalidState(err))

	// Nothing was written: no order, no payment, stock untouched.
	orders, _ := f.orders.FindByUserID(ctx, user.ID)
	assert.Empty(t, orders)
	payments, _ := f.payments.FindByStatus(ctx, models.PaymentStatusPending)
	assert.Empty(t, payments)
	got, _ := f.products.FindByID(ctx, product.ID)
	assert.Equal(t, 3, got.StockQuantity)
	assert.Empty(t, f.notifier.byKind("order_confirmation"))
}

func TestCreateOrderValidation(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "john@example.com")
	product := f.seedProduct(t, "Widget", "10.00", 10)

	_, err := f.orderService.CreateOrder(ctx, &models.CreateOrderRequest{
		UserID:        user.ID,
		PaymentMethod: models.PaymentMethodCreditCard,
	})
	assert.True(t, apperrors.IsValidation(err))

	_, err = f.orderService.CreateOrder(ctx, &models.CreateOrderRequest{
		UserID:        user.ID,
		Items:         []models.OrderItemRequest{{ProductID: product.ID, Quantity: 0}},
		PaymentMethod: models.PaymentMethodCreditCard,
	})
	assert.True(t, apperrors.IsValidation(err))

	_, err = f.orderService.CreateOrder(ctx, &models.CreateOrderRequest{
		UserID:        user.ID,
		Items:         []models.OrderItemRequest{{ProductID: product.ID, Quantity: 1}},
		PaymentMethod: models.PaymentMethod("CHEQUE"),
	})
	assert.True(t, apperrors.IsValidation(err))

	_, err = f.orderService.CreateOrder(ctx, &models.CreateOrderRequest{
		UserID:        999,
		Items:         []models.OrderItemRequest{{ProductID: product.ID, Quantity: 1}},
		PaymentMethod: models.PaymentMethodCreditCard,
	})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCreateOrderInactiveProduct(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "john@example.com")
	product := f.seedProduct(t, "Widget", "10.00", 10)
	product.Active = false
	assert.NoError(t, f.products.Update(ctx, product))

	_, err := f.orderService.CreateOrder(ctx, &models.CreateOrderRequest{
		UserID:        user.ID,
		Items:         []models.OrderItemRequest{{ProductID: product.ID, Quantity: 1}},
		PaymentMethod: models.PaymentMethodCreditCard,
	})
	assert.True(t, apperrors.IsInvalidState(err))
}

func TestProcessOrderCompletesPaymentAndAdvances(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "john@example.com")
	product := f.seedProduct(t, "Widget", "25.00", 20)

	order, err := f.orderService.CreateOrder(ctx, &models.CreateOrderRequest{
		UserID:        user.ID,
		Items:         []models.OrderItemRequest{{ProductID: product.ID, Quantity: 1}},
		PaymentMethod: models.PaymentMethodPayPal,
	})
	assert.NoError(t, err)

	processed, err := f.orderService.ProcessOrder(ctx, order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, processed.Status)

	payments, _ := f.payments.FindByOrderID(ctx, order.ID)
	assert.Len(t, payments, 1)
	assert.Equal(t, models.PaymentStatusCompleted, payments[0].Status)
	assert.Equal(t, models.GatewayResponseSuccess, payments[0].GatewayResponse)
	assert.NotNil(t, payments[0].ProcessedAt)

	confirmations := f.notifier.byKind("payment_confirmation")
	assert.Len(t, confirmations, 1)
	assert.Equal(t, "john@example.com", confirmations[0].email)
}

func TestProcessOrderWithoutPayment(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "john@example.com")

	order := &models.Order{
		OrderNumber: "ORD-1-TEST",
		UserID:      user.ID,
		Status:      models.OrderStatusPending,
		TotalAmount: decimal.RequireFromString("5.00"),
	}
	assert.NoError(t, f.orders.Create(ctx, order))

	_, err := f.orderService.ProcessOrder(ctx, order.ID)
	assert.True(t, apperrors.IsInvalidState(err))
	assert.Contains(t, err.Error(), "no payment found")
}

func TestOrderLifecycleTransitions(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "john@example.com")
	product := f.seedProduct(t, "Widget", "25.00", 20)

	order, err := f.orderService.CreateOrder(ctx, &models.CreateOrderRequest{
		UserID:        user.ID,
		Items:         []models.OrderItemRequest{{ProductID: product.ID, Quantity: 1}},
		PaymentMethod: models.PaymentMethodCreditCard,
	})
	assert.NoError(t, err)

	// Ship and complete require the order to have moved forward first.
	_, err = f.orderService.ShipOrder(ctx, order.ID, "TRACK123")
	assert.True(t, apperrors.IsInvalidState(err))
	_, err = f.orderService.CompleteOrder(ctx, order.ID)
	assert.True(t, apperrors.IsInvalidState(err))

	confirmed, err := f.orderService.ConfirmOrder(ctx, order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusConfirmed, confirmed.Status)

	// Confirming twice is rejected.
	_, err = f.orderService.ConfirmOrder(ctx, order.ID)
	assert.True(t, apperrors.IsInvalidState(err))

	_, err = f.orderService.ProcessOrder(ctx, order.ID)
	assert.NoError(t, err)

	shipped, err := f.orderService.ShipOrder(ctx, order.ID, "TRACK123")
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, shipped.Status)
	assert.Equal(t, "TRACK123", shipped.TrackingNumber)
	assert.Len(t, f.notifier.byKind("order_shipped"), 1)

	done, err := f.orderService.CompleteOrder(ctx, order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, done.Status)
	assert.NotNil(t, done.CompletedAt)

	// Delivered is terminal.
	_, err = f.orderService.CancelOrder(ctx, order.ID)
	assert.True(t, apperrors.IsInvalidState(err))
}

func TestCancelOrderRefundsCompletedPayments(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "john@example.com")
	product := f.seedProduct(t, "Widget", "25.00", 20)

	order, err := f.orderService.CreateOrder(ctx, &models.CreateOrderRequest{
		UserID:        user.ID,
		Items:         []models.OrderItemRequest{{ProductID: product.ID, Quantity: 2}},
		PaymentMethod: models.PaymentMethodCreditCard,
	})
	assert.NoError(t, err)

	_, err = f.orderService.ProcessOrder(ctx, order.ID)
	assert.NoError(t, err)

	cancelled, err := f.orderService.CancelOrder(ctx, order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)

	payments, _ := f.payments.FindByOrderID(ctx, order.ID)
	assert.Len(t, payments, 1)
	assert.Equal(t, models.PaymentStatusRefunded, payments[0].Status)
	assert.Equal(t, 1, f.auditor.count("PAYMENT_REFUNDED"))
}

func TestCancelPendingOrderLeavesPaymentAlone(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "john@example.com")
	product := f.seedProduct(t, "Widget", "25.00", 20)

	order, err := f.orderService.CreateOrder(ctx, &models.CreateOrderRequest{
		UserID:        user.ID,
		Items:         []models.OrderItemRequest{{ProductID: product.ID, Quantity: 1}},
		PaymentMethod: models.PaymentMethodCreditCard,
	})
	assert.NoError(t, err)

	cancelled, err := f.orderService.CancelOrder(ctx, order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)

	// The pending payment is untouched, only completed ones are refunded.
	payments, _ := f.payments.FindByOrderID(ctx, order.ID)
	assert.Equal(t, models.PaymentStatusPending, payments[0].Status)
	assert.Equal(t, 0, f.auditor.count("PAYMENT_REFUNDED"))
}

func TestGetOrderLookups(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "john@example.com")
	product := f.seedProduct(t, "Widget", "25.00", 20)

	order, err := f.orderService.CreateOrder(ctx, &models.CreateOrderRequest{
		UserID:        user.ID,
		Items:         []models.OrderItemRequest{{ProductID: product.ID, Quantity: 1}},
		PaymentMethod: models.PaymentMethodCreditCard,
	})
	assert.NoError(t, err)

	byNum, err := f.orderService.GetOrderByOrderNumber(ctx, order.OrderNumber)
	assert.NoError(t, err)
	assert.Equal(t, order.ID, byNum.ID)

	_, err = f.orderService.GetOrderByID(ctx, 999)
	assert.True(t, apperrors.IsNotFound(err))

	pending, err := f.orderService.GetUserOrdersByStatus(ctx, user.ID, models.OrderStatusPending)
	assert.NoError(t, err)
	assert.Len(t, pending, 1)

	none, err := f.orderService.GetUserOrdersByStatus(ctx, user.ID, models.OrderStatusShipped)
	assert.NoError(t, err)
	assert.Empty(t, none)
}
