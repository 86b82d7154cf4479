package routes

import (
	"github.com/gin-gonic/gin"

	"order-backend/controllers"
	"order-backend/middleware"
)

// Register sets up all API routes.
func Register(
	r *gin.Engine,
	uc *controllers.UserController,
	pc *controllers.ProductController,
	oc *controllers.OrderController,
	pay *controllers.PaymentController,
) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	users.POST("", uc.CreateUser)
	users.GET("/:id", uc.GetUser)
	users.PUT("/:id", uc.UpdateUser)
	users.POST("/:id/deactivate", uc.DeactivateUser)

	usersAdmin := users.Group("")
	usersAdmin.Use(middleware.AdminOnly())
	usersAdmin.GET("", uc.ListUsers)
	usersAdmin.DELETE("/:id", uc.DeleteUser)

	products := r.Group("/products")
	products.GET("", pc.ListProducts)
	products.GET("/:id", pc.GetProduct)

	productsAdmin := products.Group("")
	productsAdmin.Use(middleware.AuthMiddleware(), middleware.AdminOnly())
	productsAdmin.POST("", pc.CreateProduct)
	productsAdmin.PUT("/:id", pc.UpdateProduct)
	productsAdmin.POST("/:id/stock/increase", pc.IncreaseStock)
	productsAdmin.POST("/:id/stock/reduce", pc.ReduceStock)

	orders := r.Group("/orders")
	orders.Use(middleware.AuthMiddleware())
	orders.POST("", oc.CreateOrder)
	orders.GET("", oc.ListOrders)
	orders.GET("/:id", oc.GetOrder)
	orders.GET("/number/:number", oc.GetOrderByNumber)
	orders.POST("/:id/confirm", oc.ConfirmOrder)
	orders.POST("/:id/process", oc.ProcessOrder)
	orders.POST("/:id/cancel", oc.CancelOrder)

	ordersAdmin := orders.Group("")
	ordersAdmin.Use(middleware.AdminOnly())
	ordersAdmin.POST("/:id/ship", oc.ShipOrder)
	ordersAdmin.POST("/:id/complete", oc.CompleteOrder)

	payments := r.Group("/payments")
	payments.Use(middleware.AuthMiddleware())
	payments.GET("", pay.ListPayments)
	payments.GET("/:id", pay.GetPayment)
	payments.GET("/transaction/:txn", pay.GetPaymentByTransaction)

	paymentsAdmin := payments.Group("")
	paymentsAdmin.Use(middleware.AdminOnly())
	paymentsAdmin.POST("/:id/refund", pay.RefundPayment)
}
