package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"order-backend/audit"
	"order-backend/common/logger"
	"order-backend/controllers"
	"order-backend/database"
	"order-backend/notifications"
	"order-backend/notifications/consumer"
	"order-backend/notifications/sender"
	awspkg "order-backend/pkg/aws"
	"order-backend/repository"
	"order-backend/routes"
	servicepkg "order-backend/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zlog.Sync() //nolint:errcheck

	if err := database.Connect(cfg.DSN()); err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close() //nolint:errcheck

	// Audit trail: Mongo when configured, log-only otherwise.
	var trail *audit.Trail
	if cfg.MongoURI != "" {
		mongoClient, err := database.ConnectMongo(context.Background(), cfg.MongoURI)
		if err != nil {
			zlog.Fatal("Failed to connect to mongo", zap.Error(err))
		}
		defer mongoClient.Disconnect(context.Background()) //nolint:errcheck
		collection := mongoClient.Database(cfg.MongoDatabase).Collection("audit_events")
		trail = audit.NewTrail(collection, zlog)
	} else {
		zlog.Warn("MONGO_URI not set, audit trail is log-only")
		trail = audit.NewTrail(nil, zlog)
	}

	// Notifications: SNS when configured, log-only otherwise.
	var notifier notifications.Notifier = notifications.NewLogNotifier(zlog)
	awsCfg, awsErr := awspkg.LoadConfig(context.Background())
	if awsErr != nil {
		zlog.Warn("AWS config unavailable, notifications are log-only", zap.Error(awsErr))
	} else if cfg.NotifyTopicARN != "" {
		notifier = notifications.NewSNSNotifier(awspkg.NewSNSClient(awsCfg), cfg.NotifyTopicARN, zlog)
	}

	// DI chain
	userRepo := repository.NewGormUserRepository(database.DB)
	productRepo := repository.NewGormProductRepository(database.DB)
	orderRepo := repository.NewGormOrderRepository(database.DB)
	paymentRepo := repository.NewGormPaymentRepository(database.DB)
	txManager := repository.NewGormTxManager(database.DB)

	userService := servicepkg.NewUserService(userRepo, notifier, trail, zlog)
	productService := servicepkg.NewProductService(productRepo, notifier, trail, zlog)
	paymentService := servicepkg.NewPaymentService(paymentRepo, servicepkg.NewSimulatedGateway(), notifier, trail, zlog)
	orderService := servicepkg.NewOrderService(orderRepo, txManager, userService, productService, paymentService, notifier, trail, zlog)

	userController := controllers.NewUserController(userService)
	productController := controllers.NewProductController(productService)
	orderController := controllers.NewOrderController(orderService)
	paymentController := controllers.NewPaymentController(paymentService)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Email worker consumes the notification queue when configured.
	if awsErr == nil && cfg.NotifyQueueURL != "" {
		emailSender, err := sender.NewSMTPSender()
		if err != nil {
			zlog.Warn("SMTP not configured, email worker disabled", zap.Error(err))
		} else {
			sqsConsumer := awspkg.NewSQSConsumer(awsCfg, cfg.NotifyQueueURL, zlog)
			worker := consumer.NewEmailWorker(sqsConsumer, emailSender, cfg.AdminEmail, zlog)
			go func() {
				if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					zlog.Error("email worker stopped", zap.Error(err))
				}
			}()
		}
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		zlog.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})

	// 30-second request timeout
	r.Use(func(c *gin.Context) {
		reqCtx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(reqCtx)
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "order-backend"})
	})

	routes.Register(r, userController, productController, orderController, paymentController)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		zlog.Info("Server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("Shutdown failed", zap.Error(err))
	}
}
