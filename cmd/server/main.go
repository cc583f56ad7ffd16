package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	addrapp "github.com/meatshop/backend/internal/application/address"
	cartapp "github.com/meatshop/backend/internal/application/cart"
	"github.com/meatshop/backend/internal/application/checkout"
	"github.com/meatshop/backend/internal/application/history"
	"github.com/meatshop/backend/internal/domain/pricing"
	"github.com/meatshop/backend/internal/infrastructure/cache"
	"github.com/meatshop/backend/internal/infrastructure/config"
	"github.com/meatshop/backend/internal/infrastructure/logger"
	"github.com/meatshop/backend/internal/infrastructure/notification"
	"github.com/meatshop/backend/internal/infrastructure/persistence"
	"github.com/meatshop/backend/internal/interfaces/http/handler"
	"github.com/meatshop/backend/internal/interfaces/http/middleware"
	"github.com/meatshop/backend/internal/interfaces/http/router"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log := logger.New(cfg.Log)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting meat shop backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Connect to the remote document store
	connectCtx, connectCancel := context.WithTimeout(context.Background(), cfg.Mongo.ConnectTimeout)
	db, err := persistence.ConnectMongo(connectCtx, cfg.Mongo)
	connectCancel()
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := db.Client().Disconnect(context.Background()); err != nil {
			log.Error("Error disconnecting MongoDB", zap.Error(err))
		}
	}()
	if err := persistence.EnsureIndexes(context.Background(), db); err != nil {
		log.Fatal("Failed to ensure MongoDB indexes", zap.Error(err))
	}
	log.Info("MongoDB connected", zap.String("database", cfg.Mongo.Database))

	// Connect to the local cart store
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis client", zap.Error(err))
		}
	}()
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis is unreachable, carts will not survive restarts", zap.Error(err))
	}
	pingCancel()
	cartStorage := cache.NewRedisCartStorage(redisClient)

	// Pricing
	pricePerKg, err := decimal.NewFromString(cfg.Pricing.PricePerKilogram)
	if err != nil {
		log.Fatal("Invalid pricing.price_per_kilogram", zap.Error(err))
	}
	priceEngine := pricing.NewEngine(pricePerKg)

	// Initialize repositories
	addressRepo := persistence.NewMongoAddressRepository(db)
	orderRepo := persistence.NewMongoOrderRepository(db)
	historyRepo := persistence.NewMongoOrderHistoryRepository(db)

	// Initialize application services
	cartManager := cartapp.NewManager(cartStorage, priceEngine, log)
	addressBook := addrapp.NewBook(addressRepo, log)
	retention := history.NewRetention(historyRepo, cfg.History.Cap, log)
	notifier := notification.NewSendGridNotifier(cfg.SendGrid, log)
	orchestrator := checkout.NewOrchestrator(orderRepo, retention, notifier, priceEngine, log)
	defer orchestrator.Close()
	defer cartManager.Close()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. CORS - Handle cross-origin requests
	// 5. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.CORSConfig{
		AllowOrigins:  cfg.HTTP.CORSAllowOrigins,
		AllowMethods:  cfg.HTTP.CORSAllowMethods,
		AllowHeaders:  cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewCartHandler(cartManager))
	r.Register(handler.NewAddressHandler(addressBook))
	r.Register(handler.NewCheckoutHandler(cartManager, addressBook, orchestrator))
	r.Register(handler.NewOrderHandler(retention))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler reports readiness of the document store connection
func healthHandler(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.Client().Ping(ctx, nil); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
