package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockThreshold is the stock level at or below which a low-stock
// alert is sent after a successful decrement.
const LowStockThreshold = 10

// Product is the GORM model for a catalog item with its stock count.
// Prices are exact decimals; stock never goes below zero (enforced by
// the conditional decrement in the repository).
type Product struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Name          string          `gorm:"type:varchar(256);not null;index" json:"name"`
	Description   string          `gorm:"type:text" json:"description"`
	Price         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	StockQuantity int             `gorm:"not null;default:0" json:"stock_quantity"`
	Category      string          `gorm:"type:varchar(128);index" json:"category"`
	Active        bool            `gorm:"not null;default:true" json:"active"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// InStock reports whether the product can currently be sold at all.
func (p *Product) InStock() bool {
	return p.Active && p.StockQuantity > 0
}

// CreateProductRequest is the payload for adding a catalog item.
type CreateProductRequest struct {
	Name          string          `json:"name" binding:"required"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price" binding:"required"`
	StockQuantity int             `json:"stock_quantity" binding:"gte=0"`
	Category      string          `json:"category"`
}

// UpdateProductRequest is the payload for editing catalog fields.
// Stock is changed only through the dedicated stock endpoints.
type UpdateProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Category    string          `json:"category"`
}

// StockAdjustmentRequest is the payload for increase/reduce stock calls.
type StockAdjustmentRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}
