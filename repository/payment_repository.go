package repository

import (
	"context"

	"gorm.io/gorm"

	"order-backend/models"
)

// PaymentRepository defines data-access operations for payments.
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	FindByID(ctx context.Context, id uint) (*models.Payment, error)
	FindByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error)
	FindByOrderID(ctx context.Context, orderID uint) ([]models.Payment, error)
	FindByStatus(ctx context.Context, status models.PaymentStatus) ([]models.Payment, error)
	Update(ctx context.Context, payment *models.Payment) error
}

// GormPaymentRepository implements PaymentRepository using GORM.
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository.
func NewGormPaymentRepository(db *gorm.DB) PaymentRepository {
	return &GormPaymentRepository{db: db}
}

func (r *GormPaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return conn(ctx, r.db).Create(payment).Error
}

func (r *GormPaymentRepository) FindByID(ctx context.Context, id uint) (*models.Payment, error) {
	var p models.Payment
	if err := conn(ctx, r.db).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormPaymentRepository) FindByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	var p models.Payment
	if err := conn(ctx, r.db).Where("transaction_id = ?", transactionID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByOrderID returns the order's payment attempts in insertion order.
func (r *GormPaymentRepository) FindByOrderID(ctx context.Context, orderID uint) ([]models.Payment, error) {
	var payments []models.Payment
	if err := conn(ctx, r.db).Where("order_id = ?", orderID).Order("id").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *GormPaymentRepository) FindByStatus(ctx context.Context, status models.PaymentStatus) ([]models.Payment, error) {
	var payments []models.Payment
	if err := conn(ctx, r.db).Where("status = ?", status).Order("id").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *GormPaymentRepository) Update(ctx context.Context, payment *models.Payment) error {
	return conn(ctx, r.db).Save(payment).Error
}
