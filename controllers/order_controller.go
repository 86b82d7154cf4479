package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "order-backend/common/errors"
	"order-backend/models"
	"order-backend/services"
)

// OrderController handles HTTP requests for the order lifecycle.
type OrderController struct {
	orderService services.OrderService
}

// NewOrderController creates a new OrderController.
func NewOrderController(orderService services.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// CreateOrder handles POST /orders.
func (oc *OrderController) CreateOrder(ctx *gin.Context) {
	var req models.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	order, err := oc.orderService.CreateOrder(ctx.Request.Context(), &req)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"order": order})
}

// GetOrder handles GET /orders/:id.
func (oc *OrderController) GetOrder(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	order, err := oc.orderService.GetOrderByID(ctx.Request.Context(), id)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"order": order})
}

// GetOrderByNumber handles GET /orders/number/:number.
func (oc *OrderController) GetOrderByNumber(ctx *gin.Context) {
	number := ctx.Param("number")
	if number == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Order number is required"})
		return
	}

	order, err := oc.orderService.GetOrderByOrderNumber(ctx.Request.Context(), number)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"order": order})
}

// ListOrders handles GET /orders with ?user_id= and/or ?status=
// filters.
func (oc *OrderController) ListOrders(ctx *gin.Context) {
	reqCtx := ctx.Request.Context()
	status := models.OrderStatus(ctx.Query("status"))

	var userID uint
	if raw := ctx.Query("user_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user_id"})
			return
		}
		userID = uint(id)
	}

	var (
		orders []models.Order
		err    error
	)
	switch {
	case userID != 0 && status != "":
		orders, err = oc.orderService.GetUserOrdersByStatus(reqCtx, userID, status)
	case userID != 0:
		orders, err = oc.orderService.GetOrdersByUserID(reqCtx, userID)
	case status != "":
		orders, err = oc.orderService.GetOrdersByStatus(reqCtx, status)
	default:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "user_id or status filter is required"})
		return
	}
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"orders": orders})
}

// ConfirmOrder handles POST /orders/:id/confirm.
func (oc *OrderController) ConfirmOrder(ctx *gin.Context) {
	oc.lifecycle(ctx, oc.orderService.ConfirmOrder)
}

// ProcessOrder handles POST /orders/:id/process.
func (oc *OrderController) ProcessOrder(ctx *gin.Context) {
	oc.lifecycle(ctx, oc.orderService.ProcessOrder)
}

// ShipOrder handles POST /orders/:id/ship.
func (oc *OrderController) ShipOrder(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req models.ShipOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	order, err := oc.orderService.ShipOrder(ctx.Request.Context(), id, req.TrackingNumber)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"order": order})
}

// CompleteOrder handles POST /orders/:id/complete.
func (oc *OrderController) CompleteOrder(ctx *gin.Context) {
	oc.lifecycle(ctx, oc.orderService.CompleteOrder)
}

// CancelOrder handles POST /orders/:id/cancel.
func (oc *OrderController) CancelOrder(ctx *gin.Context) {
	oc.lifecycle(ctx, oc.orderService.CancelOrder)
}

func (oc *OrderController) lifecycle(ctx *gin.Context, step func(ctx context.Context, id uint) (*models.Order, error)) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	order, err := step(ctx.Request.Context(), id)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"order": order})
}
