package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"order-backend/models"
)

// ErrInsufficientStock is returned by DecrementStock when the product
// exists but its stock is below the requested quantity. The decrement
// is all-or-nothing; stock is left unchanged.
var ErrInsufficientStock = errors.New("insufficient stock")

// ProductRepository defines data-access operations for products,
// including the atomic stock mutations.
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id uint) (*models.Product, error)
	FindAll(ctx context.Context) ([]models.Product, error)
	FindByActive(ctx context.Context, active bool) ([]models.Product, error)
	FindByCategory(ctx context.Context, category string) ([]models.Product, error)
	FindInStock(ctx context.Context) ([]models.Product, error)
	SearchByName(ctx context.Context, keyword string) ([]models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	// DecrementStock performs a conditional decrement in a single
	// statement (stock_quantity >= quantity is part of the WHERE
	// clause) so concurrent orders cannot oversell. Returns
	// gorm.ErrRecordNotFound for unknown ids and ErrInsufficientStock
	// when the guard fails.
	DecrementStock(ctx context.Context, id uint, quantity int) error
	// IncrementStock adds quantity atomically; no upper bound.
	IncrementStock(ctx context.Context, id uint, quantity int) error
}

// GormProductRepository implements ProductRepository using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository.
func NewGormProductRepository(db *gorm.DB) ProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) Create(ctx context.Context, product *models.Product) error {
	return conn(ctx, r.db).Create(product).Error
}

func (r *GormProductRepository) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := conn(ctx, r.db).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := conn(ctx, r.db).Order("id").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormProductRepository) FindByActive(ctx context.Context, active bool) ([]models.Product, error) {
	var products []models.Product
	if err := conn(ctx, r.db).Where("active = ?", active).Order("id").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormProductRepository) FindByCategory(ctx context.Context, category string) ([]models.Product, error) {
	var products []models.Product
	if err := conn(ctx, r.db).Where("category = ?", category).Order("id").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormProductRepository) FindInStock(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := conn(ctx, r.db).Where("stock_quantity > 0").Order("id").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormProductRepository) SearchByName(ctx context.Context, keyword string) ([]models.Product, error) {
	var products []models.Product
	if err := conn(ctx, r.db).Where("name ILIKE ?", "%"+keyword+"%").Order("id").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormProductRepository) Update(ctx context.Context, product *models.Product) error {
	return conn(ctx, r.db).Save(product).Error
}

func (r *GormProductRepository) DecrementStock(ctx context.Context, id uint, quantity int) error {
	result := conn(ctx, r.db).Model(&models.Product{}).
		Where("id = ? AND stock_quantity >= ?", id, quantity).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Either the row is missing or the guard failed; one more read
		// tells which.
		var count int64
		if err := conn(ctx, r.db).Model(&models.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return ErrInsufficientStock
	}
	return nil
}

func (r *GormProductRepository) IncrementStock(ctx context.Context, id uint, quantity int) error {
	result := conn(ctx, r.db).Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
