package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"order-backend/audit"
	apperrors "order-backend/common/errors"
	"order-backend/models"
	"order-backend/notifications"
	"order-backend/repository"
)

// ProductService manages the catalog and the stock ledger.
type ProductService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetProductByID(ctx context.Context, id uint) (*models.Product, error)
	GetAllProducts(ctx context.Context) ([]models.Product, error)
	GetActiveProducts(ctx context.Context) ([]models.Product, error)
	GetProductsByCategory(ctx context.Context, category string) ([]models.Product, error)
	GetInStockProducts(ctx context.Context) ([]models.Product, error)
	SearchProducts(ctx context.Context, keyword string) ([]models.Product, error)
	UpdateProduct(ctx context.Context, id uint, req *models.UpdateProductRequest) (*models.Product, error)

	// ReduceStock decrements stock all-or-nothing. The decrement is a
	// single conditional statement at the storage boundary, so two
	// concurrent orders cannot drive stock negative.
	ReduceStock(ctx context.Context, productID uint, quantity int) error
	// IncreaseStock adds stock unconditionally.
	IncreaseStock(ctx context.Context, productID uint, quantity int) error
	// IsAvailable reports whether the product is active and has at
	// least the requested quantity. Unknown products are simply
	// unavailable, not an error.
	IsAvailable(ctx context.Context, productID uint, requestedQuantity int) (bool, error)
}

type productServiceImpl struct {
	repo     repository.ProductRepository
	notifier notifications.Notifier
	auditor  audit.Recorder
	logger   *zap.Logger
}

// NewProductService creates a new ProductService.
func NewProductService(repo repository.ProductRepository, notifier notifications.Notifier, auditor audit.Recorder, logger *zap.Logger) ProductService {
	return &productServiceImpl{repo: repo, notifier: notifier, auditor: auditor, logger: logger}
}

func (s *productServiceImpl) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	if req.Price.IsNegative() {
		return nil, apperrors.Validation("price must not be negative")
	}
	if req.StockQuantity < 0 {
		return nil, apperrors.Validation("stock quantity must not be negative")
	}

	product := &models.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		Category:      req.Category,
		Active:        true,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, apperrors.Internal("failed to create product", err)
	}

	s.auditor.ProductCreated(ctx, product.ID, product.Name)
	return product, nil
}

func (s *productServiceImpl) GetProductByID(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("product not found with ID: %d", id)
		}
		return nil, apperrors.Internal("failed to load product", err)
	}
	return product, nil
}

func (s *productServiceImpl) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to list products", err)
	}
	return products, nil
}

func (s *productServiceImpl) GetActiveProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.FindByActive(ctx, true)
	if err != nil {
		return nil, apperrors.Internal("failed to list active products", err)
	}
	return products, nil
}

func (s *productServiceImpl) GetProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	products, err := s.repo.FindByCategory(ctx, category)
	if err != nil {
		return nil, apperrors.Internal("failed to list products by category", err)
	}
	return products, nil
}

func (s *productServiceImpl) GetInStockProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.FindInStock(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to list in-stock products", err)
	}
	return products, nil
}

func (s *productServiceImpl) SearchProducts(ctx context.Context, keyword string) ([]models.Product, error) {
	products, err := s.repo.SearchByName(ctx, keyword)
	if err != nil {
		return nil, apperrors.Internal("failed to search products", err)
	}
	return products, nil
}

func (s *productServiceImpl) UpdateProduct(ctx context.Context, id uint, req *models.UpdateProductRequest) (*models.Product, error) {
	if req.Price.IsNegative() {
		return nil, apperrors.Validation("price must not be negative")
	}

	product, err := s.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.Category = req.Category
	product.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, apperrors.Internal("failed to update product", err)
	}

	s.auditor.ProductUpdated(ctx, product.ID, product.Name)
	return product, nil
}

func (s *productServiceImpl) ReduceStock(ctx context.Context, productID uint, quantity int) error {
	if quantity <= 0 {
		return apperrors.Validation("quantity must be positive")
	}

	if err := s.repo.DecrementStock(ctx, productID, quantity); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return apperrors.NotFound("product not found with ID: %d", productID)
		case errors.Is(err, repository.ErrInsufficientStock):
			return apperrors.InvalidState("insufficient stock for product %d", productID)
		default:
			return apperrors.Internal("failed to reduce stock", err)
		}
	}

	// Side effects only after the decrement persisted.
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		s.logger.Error("stock reduced but reload failed", zap.Uint("product_id", productID), zap.Error(err))
		return nil
	}

	s.auditor.StockUpdated(ctx, productID, product.StockQuantity+quantity, product.StockQuantity)

	if product.StockQuantity <= models.LowStockThreshold {
		s.notifier.LowStockAlert(ctx, product.Name, product.StockQuantity)
	}
	return nil
}

func (s *productServiceImpl) IncreaseStock(ctx context.Context, productID uint, quantity int) error {
	if quantity <= 0 {
		return apperrors.Validation("quantity must be positive")
	}

	if err := s.repo.IncrementStock(ctx, productID, quantity); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("product not found with ID: %d", productID)
		}
		return apperrors.Internal("failed to increase stock", err)
	}

	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		s.logger.Error("stock increased but reload failed", zap.Uint("product_id", productID), zap.Error(err))
		return nil
	}

	s.auditor.StockUpdated(ctx, productID, product.StockQuantity-quantity, product.StockQuantity)
	return nil
}

func (s *productServiceImpl) IsAvailable(ctx context.Context, productID uint, requestedQuantity int) (bool, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, apperrors.Internal("failed to check availability", err)
	}
	return product.InStock() && product.StockQuantity >= requestedQuantity, nil
}
