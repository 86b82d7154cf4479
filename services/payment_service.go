package services

import (
	"context"
	"errors"
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

// PaymentService manages payment records and drives the gateway.
type PaymentService interface {
	CreatePayment(ctx context.Context, orderID uint, amount decimal.Decimal, method models.PaymentMethod) (*models.Payment, error)
	ProcessPayment(ctx context.Context, paymentID uint, notifyEmail, orderNumber string) (*models.Payment, error)
	RefundPayment(ctx context.Context, paymentID uint) (*models.Payment, error)
	GetPaymentByID(ctx context.Context, id uint) (*models.Payment, error)
	GetPaymentByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error)
	GetPaymentsByOrderID(ctx context.Context, orderID uint) ([]models.Payment, error)
	GetPaymentsByStatus(ctx context.Context, status models.PaymentStatus) ([]models.Payment, error)
	GetPendingPayments(ctx context.Context) ([]models.Payment, error)
}

type paymentServiceImpl struct {
	repo     repository.PaymentRepository
	gateway  PaymentGateway
	notifier notifications.Notifier
	auditor  audit.Recorder
	logger   *zap.Logger
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(repo repository.PaymentRepository, gateway PaymentGateway, notifier notifications.Notifier, auditor audit.Recorder, logger *zap.Logger) PaymentService {
	return &paymentServiceImpl{
		repo:     repo,
		gateway:  gateway,
		notifier: notifier,
		auditor:  auditor,
		logger:   logger,
	}
}

func (s *paymentServiceImpl) CreatePayment(ctx context.Context, orderID uint, amount decimal.Decimal, method models.PaymentMethod) (*models.Payment, error) {
	if !method.Valid() {
		return nil, apperrors.Validation("unsupported payment method: %s", method)
	}

	payment := &models.Payment{
		OrderID:       orderID,
		TransactionID: generateTransactionID(),
		Amount:        amount,
		Method:        method,
		Status:        models.PaymentStatusPending,
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, apperrors.Internal("failed to create payment", err)
	}

	s.auditor.PaymentProcessed(ctx, payment.ID, payment.TransactionID, "CREATED")
	return payment, nil
}

func (s *paymentServiceImpl) ProcessPayment(ctx context.Context, paymentID uint, notifyEmail, orderNumber string) (*models.Payment, error) {
	payment, err := s.GetPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status != models.PaymentStatusPending {
		return nil, apperrors.InvalidState("can only process pending payments, payment %d is %s", paymentID, payment.Status)
	}

	approved, response := s.gateway.Authorize(ctx, payment.Amount, payment.Method)
	if approved {
		now := time.Now()
		payment.Status = models.PaymentStatusCompleted
		payment.ProcessedAt = &now
		payment.GatewayResponse = response
	} else {
		payment.Status = models.PaymentStatusFailed
		payment.GatewayResponse = response
	}

	if err := s.repo.Update(ctx, payment); err != nil {
		return nil, apperrors.Internal("failed to update payment", err)
	}

	// Confirmation goes out only for approved payments, and only after
	// the new status is persisted.
	if approved && notifyEmail != "" {
		s.notifier.PaymentConfirmation(ctx, notifyEmail, orderNumber, payment.TransactionID)
	}
	s.auditor.PaymentProcessed(ctx, payment.ID, payment.TransactionID, string(payment.Status))

	return payment, nil
}

func (s *paymentServiceImpl) RefundPayment(ctx context.Context, paymentID uint) (*models.Payment, error) {
	payment, err := s.GetPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status != models.PaymentStatusCompleted {
		return nil, apperrors.InvalidState("can only refund completed payments")
	}

	payment.Status = models.PaymentStatusRefunded
	if err := s.repo.Update(ctx, payment); err != nil {
		return nil, apperrors.Internal("failed to refund payment", err)
	}

	s.auditor.PaymentRefunded(ctx, payment.ID, payment.TransactionID)
	return payment, nil
}

func (s *paymentServiceImpl) GetPaymentByID(ctx context.Context, id uint) (*models.Payment, error) {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("payment not found with ID: %d", id)
		}
		return nil, apperrors.Internal("failed to load payment", err)
	}
	return payment, nil
}

func (s *paymentServiceImpl) GetPaymentByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	payment, err := s.repo.FindByTransactionID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("payment not found with transaction ID: %s", transactionID)
		}
		return nil, apperrors.Internal("failed to load payment", err)
	}
	return payment, nil
}

func (s *paymentServiceImpl) GetPaymentsByOrderID(ctx context.Context, orderID uint) ([]models.Payment, error) {
	payments, err := s.repo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, apperrors.Internal("failed to list payments for order", err)
	}
	return payments, nil
}

func (s *paymentServiceImpl) GetPaymentsByStatus(ctx context.Context, status models.PaymentStatus) ([]models.Payment, error) {
	payments, err := s.repo.FindByStatus(ctx, status)
	if err != nil {
		return nil, apperrors.Internal("failed to list payments by status", err)
	}
	return payments, nil
}

func (s *paymentServiceImpl) GetPendingPayments(ctx context.Context) ([]models.Payment, error) {
	return s.GetPaymentsByStatus(ctx, models.PaymentStatusPending)
}

// generateTransactionID builds ids like TXN-3F2A91BC. Collisions are
// negligible; the unique index on transaction_id is the real guard.
func generateTransactionID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "TXN-" + strings.ToUpper(raw[:8])
}
