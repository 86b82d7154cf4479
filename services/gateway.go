package services

import (
	"context"

	"github.com/shopspring/decimal"

	"order-backend/models"
)

// PaymentGateway authorizes a payment attempt. The returned response is
// the opaque gateway string recorded on the payment row.
type PaymentGateway interface {
	Authorize(ctx context.Context, amount decimal.Decimal, method models.PaymentMethod) (approved bool, response string)
}

// SimulatedGateway is the placeholder authorization policy: any
// positive amount is approved. It stands in for a real processor.
type SimulatedGateway struct{}

// NewSimulatedGateway creates a new SimulatedGateway.
func NewSimulatedGateway() *SimulatedGateway {
	return &SimulatedGateway{}
}

func (g *SimulatedGateway) Authorize(_ context.Context, amount decimal.Decimal, _ models.PaymentMethod) (bool, string) {
	if amount.GreaterThan(decimal.Zero) {
		return true, models.GatewayResponseSuccess
	}
	return false, models.GatewayResponseDeclined
}
