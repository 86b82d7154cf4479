package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "order-backend/common/errors"
	"order-backend/models"
	"order-backend/services"
)

// ProductController handles HTTP requests for catalog and stock
// operations.
type ProductController struct {
	productService services.ProductService
}

// NewProductController creates a new ProductController.
func NewProductController(productService services.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// CreateProduct handles POST /products (admin only).
func (pc *ProductController) CreateProduct(ctx *gin.Context) {
	var req models.CreateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	product, err := pc.productService.CreateProduct(ctx.Request.Context(), &req)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"product": product})
}

// GetProduct handles GET /products/:id.
func (pc *ProductController) GetProduct(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	product, err := pc.productService.GetProductByID(ctx.Request.Context(), id)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"product": product})
}

// ListProducts handles GET /products with optional filters:
// ?active=true, ?category=..., ?in_stock=true, ?search=...
func (pc *ProductController) ListProducts(ctx *gin.Context) {
	reqCtx := ctx.Request.Context()

	var (
		products []models.Product
		err      error
	)
	switch {
	case ctx.Query("search") != "":
		products, err = pc.productService.SearchProducts(reqCtx, ctx.Query("search"))
	case ctx.Query("category") != "":
		products, err = pc.productService.GetProductsByCategory(reqCtx, ctx.Query("category"))
	case ctx.Query("in_stock") == "true":
		products, err = pc.productService.GetInStockProducts(reqCtx)
	case ctx.Query("active") == "true":
		products, err = pc.productService.GetActiveProducts(reqCtx)
	default:
		products, err = pc.productService.GetAllProducts(reqCtx)
	}
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"products": products})
}

// UpdateProduct handles PUT /products/:id (admin only).
func (pc *ProductController) UpdateProduct(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req models.UpdateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	product, err := pc.productService.UpdateProduct(ctx.Request.Context(), id, &req)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"product": product})
}

// IncreaseStock handles POST /products/:id/stock/increase (admin only).
func (pc *ProductController) IncreaseStock(ctx *gin.Context) {
	pc.adjustStock(ctx, pc.productService.IncreaseStock)
}

// ReduceStock handles POST /products/:id/stock/reduce (admin only).
func (pc *ProductController) ReduceStock(ctx *gin.Context) {
	pc.adjustStock(ctx, pc.productService.ReduceStock)
}

func (pc *ProductController) adjustStock(ctx *gin.Context, adjust func(ctx context.Context, id uint, qty int) error) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req models.StockAdjustmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if err := adjust(ctx.Request.Context(), id, req.Quantity); err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	product, err := pc.productService.GetProductByID(ctx.Request.Context(), id)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"product": product})
}
