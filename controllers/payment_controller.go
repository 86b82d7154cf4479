package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "order-backend/common/errors"
	"order-backend/models"
	"order-backend/services"
)

// PaymentController handles HTTP requests for payment reads and the
// refund operation. Payment creation and capture happen through the
// order lifecycle endpoints.
type PaymentController struct {
	paymentService services.PaymentService
}

// NewPaymentController creates a new PaymentController.
func NewPaymentController(paymentService services.PaymentService) *PaymentController {
	return &PaymentController{paymentService: paymentService}
}

// GetPayment handles GET /payments/:id.
func (pc *PaymentController) GetPayment(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	payment, err := pc.paymentService.GetPaymentByID(ctx.Request.Context(), id)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"payment": payment})
}

// GetPaymentByTransaction handles GET /payments/transaction/:txn.
func (pc *PaymentController) GetPaymentByTransaction(ctx *gin.Context) {
	txn := ctx.Param("txn")
	if txn == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Transaction ID is required"})
		return
	}

	payment, err := pc.paymentService.GetPaymentByTransactionID(ctx.Request.Context(), txn)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"payment": payment})
}

// ListPayments handles GET /payments with ?order_id= or ?status=
// filters.
func (pc *PaymentController) ListPayments(ctx *gin.Context) {
	reqCtx := ctx.Request.Context()

	if raw := ctx.Query("order_id"); raw != "" {
		orderID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || orderID == 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order_id"})
			return
		}
		payments, err := pc.paymentService.GetPaymentsByOrderID(reqCtx, uint(orderID))
		if err != nil {
			ctx.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"payments": payments})
		return
	}

	if status := ctx.Query("status"); status != "" {
		payments, err := pc.paymentService.GetPaymentsByStatus(reqCtx, models.PaymentStatus(status))
		if err != nil {
			ctx.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"payments": payments})
		return
	}

	ctx.JSON(http.StatusBadRequest, gin.H{"error": "order_id or status filter is required"})
}

// RefundPayment handles POST /payments/:id/refund (admin only).
func (pc *PaymentController) RefundPayment(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	payment, err := pc.paymentService.RefundPayment(ctx.Request.Context(), id)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"payment": payment})
}
