package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is the closed set of supported payment instruments.
type PaymentMethod string

const (
	PaymentMethodCreditCard   PaymentMethod = "CREDIT_CARD"
	PaymentMethodDebitCard    PaymentMethod = "DEBIT_CARD"
	PaymentMethodPayPal       PaymentMethod = "PAYPAL"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
)

// Valid reports whether m is one of the supported methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCreditCard, PaymentMethodDebitCard, PaymentMethodPayPal, PaymentMethodBankTransfer:
		return true
	}
	return false
}

// PaymentStatus is the authorization state of a payment attempt.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
)

// Terminal reports whether the status admits no further transition.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentStatusFailed || s == PaymentStatusRefunded
}

// Gateway response markers recorded on the payment row.
const (
	GatewayResponseSuccess  = "SUCCESS"
	GatewayResponseDeclined = "DECLINED"
)

// Payment is the GORM model for a single attempt to collect an order's
// total. TransactionID is generated at creation and never changes.
type Payment struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	OrderID         uint            `gorm:"not null;index" json:"order_id"`
	TransactionID   string          `gorm:"type:varchar(32);not null;uniqueIndex" json:"transaction_id"`
	Amount          decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Method          PaymentMethod   `gorm:"type:varchar(16);not null" json:"method"`
	Status          PaymentStatus   `gorm:"type:varchar(16);not null;default:'PENDING';index" json:"status"`
	GatewayResponse string          `gorm:"type:varchar(256)" json:"gateway_response,omitempty"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	ProcessedAt     *time.Time      `json:"processed_at,omitempty"`
}
