package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"private-chef-api/ai"
	"private-chef-api/checkout"
	"private-chef-api/config"
	"private-chef-api/console"
	"private-chef-api/handlers"
	"private-chef-api/identity"
	"private-chef-api/metrics"
	"private-chef-api/middleware"
	"private-chef-api/notify"
	"private-chef-api/payment"
	"private-chef-api/portfolio"
	"private-chef-api/routes"
	"private-chef-api/store"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()
	config.InitLogger(cfg)

	// Set Gin mode
	if cfg.GinMode == "" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(cfg.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Record store on top of the database
	db, err := config.OpenDB(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to open database")
	}
	kv, err := store.NewGormKV(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to prepare record store")
	}
	seed := store.MustLoadSeed()
	st := store.New(kv, seed)

	ids := identity.NewService(st, cfg.AdminPassword)
	if err := ids.EnsureAdmin(ctx); err != nil {
		logrus.WithError(err).Fatal("Failed to provision admin account")
	}

	collector := metrics.NewCollector()

	// AI gateway; without a key every call reports the model as unavailable
	var model ai.Model
	if cfg.GeminiAPIKey != "" {
		m, err := ai.NewGenAIModel(ctx, cfg.GeminiAPIKey)
		if err != nil {
			logrus.WithError(err).Warn("AI model unavailable, continuing without it")
		} else {
			model = m
		}
	} else {
		logrus.Warn("GEMINI_API_KEY not set, AI features disabled")
	}
	gateway := ai.NewGateway(model, seed.Chefs(), ai.WithMetrics(collector))

	// Warm the chef catalogue the first time the store is empty
	if len(st.CachedChefs(ctx)) == 0 {
		if err := st.CacheChefs(ctx, gateway.SearchChefs(ctx, "London", "Any")); err != nil {
			logrus.WithError(err).Warn("Failed to warm chef cache")
		}
	}

	var payments payment.Processor = payment.NewSandboxProcessor()
	if cfg.StripeSecretKey != "" {
		payments = payment.NewStripeProcessor(cfg.StripeSecretKey)
	}
	logrus.WithField("processor", payments.Name()).Info("Payments ready")

	notifiers := []notify.Notifier{notify.NewEmailNotifier()}
	if cfg.AMQPURL != "" {
		publisher, err := notify.NewAMQPPublisher(cfg.AMQPURL)
		if err != nil {
			logrus.WithError(err).Warn("RabbitMQ unavailable, booking events will not be published")
		} else {
			defer publisher.Close()
			notifiers = append(notifiers, publisher)
		}
	}

	checkoutSvc := checkout.NewService(st, payments, gateway,
		checkout.WithNotifier(notify.NewFanout(collector, notifiers...)),
		checkout.WithMetrics(collector),
		checkout.WithCurrency(cfg.Currency),
	)
	portfolioSvc := portfolio.NewService(st, gateway)
	consoleSvc := console.New(st, gateway)

	h := handlers.New(st, ids, checkoutSvc, portfolioSvc, consoleSvc, gateway)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "LuxePlate Private Chef API",
			"version": "1.0.0",
		})
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the LuxePlate Private Chef API",
			"docs":    "/api/state-machine",
			"health":  "/health",
			"roles":   []string{"DINER", "CHEF", "ADMIN"},
		})
	})

	// Register all routes
	routes.SetupRoutes(r, h, ids, collector.Handler())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logrus.Infof("Server running on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("Failed to start server")
		}
	}()

	<-ctx.Done()
	logrus.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Graceful shutdown failed")
	}
}
