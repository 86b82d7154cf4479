package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"order-backend/audit"
	apperrors "order-backend/common/errors"
	"order-backend/models"
	"order-backend/notifications"
	"order-backend/repository"
)

// OrderService owns the order state machine and coordinates stock,
// payment and notification side effects across the order's life.
type OrderService interface {
	CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error)
	ConfirmOrder(ctx context.Context, orderID uint) (*models.Order, error)
	ProcessOrder(ctx context.Context, orderID uint) (*models.Order, error)
	ShipOrder(ctx context.Context, orderID uint, trackingNumber string) (*models.Order, error)
	CompleteOrder(ctx context.Context, orderID uint) (*models.Order, error)
	CancelOrder(ctx context.Context, orderID uint) (*models.Order, error)
	GetOrderByID(ctx context.Context, id uint) (*models.Order, error)
	GetOrderByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	GetOrdersByUserID(ctx context.Context, userID uint) ([]models.Order, error)
	GetOrdersByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error)
	GetUserOrdersByStatus(ctx context.Context, userID uint, status models.OrderStatus) ([]models.Order, error)
}

type orderServiceImpl struct {
	repo           repository.OrderRepository
	tx             repository.TxManager
	userService    UserService
	productService ProductService
	paymentService PaymentService
	notifier       notifications.Notifier
	auditor        audit.Recorder
	logger         *zap.Logger
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	repo repository.OrderRepository,
	tx repository.TxManager,
	userService UserService,
	productService ProductService,
	paymentService PaymentService,
	notifier notifications.Notifier,
	auditor audit.Recorder,
	logger *zap.Logger,
) OrderService {
	return &orderServiceImpl{
		repo:           repo,
		tx:             tx,
		userService:    userService,
		productService: productService,
		paymentService: paymentService,
		notifier:       notifier,
		auditor:        auditor,
		logger:         logger,
	}
}

// CreateOrder places a new order. The availability checks, the order
// row, the stock decrements and the payment record all happen inside
// one transaction: either the whole placement commits or none of it
// does.
func (s *orderServiceImpl) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, apperrors.Validation("order must contain at least one item")
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, apperrors.Validation("quantity must be positive for product %d", item.ProductID)
		}
	}
	if !req.PaymentMethod.Valid() {
		return nil, apperrors.Validation("unsupported payment method: %s", req.PaymentMethod)
	}

	user, err := s.userService.GetUserByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	var order *models.Order
	err = s.tx.Do(ctx, func(ctx context.Context) error {
		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(req.Items))
		for _, item := range req.Items {
			available, err := s.productService.IsAvailable(ctx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if !available {
				return apperrors.InvalidState("product not available: %d", item.ProductID)
			}

			product, err := s.productService.GetProductByID(ctx, item.ProductID)
			if err != nil {
				return err
			}

			// Unit price is frozen into the line item here; later
			// catalog changes must not touch historical orders.
			subtotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			items = append(items, models.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: product.Price,
				Subtotal:  subtotal,
			})
			total = total.Add(subtotal)
		}

		order = &models.Order{
			OrderNumber:     generateOrderNumber(),
			UserID:          user.ID,
			Items:           items,
			TotalAmount:     total,
			ShippingAddress: user.Address,
			BillingAddress:  user.Address,
			Status:          models.OrderStatusPending,
		}
		if err := s.repo.Create(ctx, order); err != nil {
			return apperrors.Internal("failed to create order", err)
		}

		for _, item := range req.Items {
			if err := s.productService.ReduceStock(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		if _, err := s.paymentService.CreatePayment(ctx, order.ID, total, req.PaymentMethod); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.OrderConfirmation(ctx, user.Email, order.OrderNumber)
	s.auditor.OrderCreated(ctx, order.ID, order.OrderNumber, user.ID)

	return order, nil
}

func (s *orderServiceImpl) ConfirmOrder(ctx context.Context, orderID uint) (*models.Order, error) {
	return s.transition(ctx, orderID, models.OrderStatusConfirmed, nil)
}

// ProcessOrder captures the order's primary payment and moves the order
// to PROCESSING. The order must have at least one payment record.
func (s *orderServiceImpl) ProcessOrder(ctx context.Context, orderID uint) (*models.Order, error) {
	order, err := s.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(models.OrderStatusProcessing) {
		return nil, apperrors.InvalidState("cannot process order %d in status %s", orderID, order.Status)
	}

	payments, err := s.paymentService.GetPaymentsByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if len(payments) == 0 {
		return nil, apperrors.InvalidState("no payment found for order: %d", orderID)
	}

	notifyEmail := ""
	if user, err := s.userService.GetUserByID(ctx, order.UserID); err == nil {
		notifyEmail = user.Email
	} else {
		s.logger.Warn("owner lookup failed, skipping payment confirmation",
			zap.Uint("order_id", orderID), zap.Error(err))
	}

	if _, err := s.paymentService.ProcessPayment(ctx, payments[0].ID, notifyEmail, order.OrderNumber); err != nil {
		return nil, err
	}

	return s.transition(ctx, orderID, models.OrderStatusProcessing, nil)
}

func (s *orderServiceImpl) ShipOrder(ctx context.Context, orderID uint, trackingNumber string) (*models.Order, error) {
	order, err := s.transition(ctx, orderID, models.OrderStatusShipped, func(o *models.Order) {
		o.TrackingNumber = trackingNumber
	})
	if err != nil {
		return nil, err
	}

	// The shipped notification is best-effort: a missing owner does not
	// fail the shipment.
	if user, err := s.userService.GetUserByID(ctx, order.UserID); err == nil {
		s.notifier.OrderShipped(ctx, user.Email, order.OrderNumber, trackingNumber)
	} else {
		s.logger.Warn("owner lookup failed, skipping shipped notification",
			zap.Uint("order_id", orderID), zap.Error(err))
	}

	return order, nil
}

func (s *orderServiceImpl) CompleteOrder(ctx context.Context, orderID uint) (*models.Order, error) {
	return s.transition(ctx, orderID, models.OrderStatusDelivered, func(o *models.Order) {
		now := time.Now()
		o.CompletedAt = &now
	})
}

// CancelOrder refunds every completed payment on the order, then moves
// it to CANCELLED. Refund failures are logged and do not abort the
// cancellation.
func (s *orderServiceImpl) CancelOrder(ctx context.Context, orderID uint) (*models.Order, error) {
	order, err := s.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(models.OrderStatusCancelled) {
		return nil, apperrors.InvalidState("cannot cancel order %d in status %s", orderID, order.Status)
	}

	payments, err := s.paymentService.GetPaymentsByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	for _, payment := range payments {
		if payment.Status != models.PaymentStatusCompleted {
			continue
		}
		if _, err := s.paymentService.RefundPayment(ctx, payment.ID); err != nil {
			s.logger.Error("refund failed during cancellation",
				zap.Uint("order_id", orderID),
				zap.Uint("payment_id", payment.ID),
				zap.Error(err),
			)
		}
	}

	return s.transition(ctx, orderID, models.OrderStatusCancelled, nil)
}

// transition loads the order, validates the status change, applies
// mutate (when given), persists and audits the change.
func (s *orderServiceImpl) transition(ctx context.Context, orderID uint, next models.OrderStatus, mutate func(*models.Order)) (*models.Order, error) {
	order, err := s.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, apperrors.InvalidState("cannot move order %d from %s to %s", orderID, order.Status, next)
	}

	oldStatus := order.Status
	order.Status = next
	if mutate != nil {
		mutate(order)
	}

	if err := s.repo.Update(ctx, order); err != nil {
		return nil, apperrors.Internal("failed to update order", err)
	}

	s.auditor.OrderStatusChanged(ctx, order.ID, string(oldStatus), string(next))
	return order, nil
}

func (s *orderServiceImpl) GetOrderByID(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order not found with ID: %d", id)
		}
		return nil, apperrors.Internal("failed to load order", err)
	}
	return order, nil
}

func (s *orderServiceImpl) GetOrderByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	order, err := s.repo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order not found with number: %s", orderNumber)
		}
		return nil, apperrors.Internal("failed to load order", err)
	}
	return order, nil
}

func (s *orderServiceImpl) GetOrdersByUserID(ctx context.Context, userID uint) ([]models.Order, error) {
	orders, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to list orders for user", err)
	}
	return orders, nil
}

func (s *orderServiceImpl) GetOrdersByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	orders, err := s.repo.FindByStatus(ctx, status)
	if err != nil {
		return nil, apperrors.Internal("failed to list orders by status", err)
	}
	return orders, nil
}

func (s *orderServiceImpl) GetUserOrdersByStatus(ctx context.Context, userID uint, status models.OrderStatus) ([]models.Order, error) {
	orders, err := s.repo.FindByUserIDAndStatus(ctx, userID, status)
	if err != nil {
		return nil, apperrors.Internal("failed to list orders by user and status", err)
	}
	return orders, nil
}

// generateOrderNumber builds numbers like ORD-1735689600000-9F3A.
func generateOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), suffix)
}
