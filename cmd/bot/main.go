package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"finbot/internal/config"
	"finbot/internal/database"
	"finbot/internal/dispatch"
	"finbot/internal/handlers"
	"finbot/internal/intent"
	"finbot/internal/logger"
	"finbot/internal/matching"
	"finbot/internal/middleware"
	"finbot/internal/services"
	"finbot/internal/telegram"
	"finbot/internal/validator"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Services
	db := dbManager.DB()
	loc := cfg.Location()
	match := matching.Substring{}
	userService := services.NewUserService(db)
	accountService := services.NewAccountService(db, match)
	transactionService := services.NewTransactionService(db, accountService, loc)
	billService := services.NewBillService(db, accountService, match)
	reportService := services.NewReportService(db, loc)
	goalService := services.NewGoalService(db, loc)

	classifier := intent.NewOpenAIClassifier(
		cfg.LLMAPIURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTimeout, loc,
		&http.Client{Timeout: cfg.LLMTimeout + time.Second},
	)

	sender, err := telegram.NewSender(cfg.BotToken)
	if err != nil {
		return fmt.Errorf("failed to create telegram sender: %w", err)
	}
	log.Infof("Authenticated as @%s", sender.Username())

	if cfg.WebhookBaseURL != "" {
		if err := sender.RegisterWebhook(cfg.WebhookBaseURL, cfg.WebhookSecret); err != nil {
			return fmt.Errorf("failed to register webhook: %w", err)
		}
		log.Infof("Webhook registered at %s", cfg.WebhookBaseURL)
	}

	dispatcher := dispatch.New(dispatch.Deps{
		Users:        userService,
		Transactions: transactionService,
		Accounts:     accountService,
		Bills:        billService,
		Reports:      reportService,
		Goals:        goalService,
		Classifier:   classifier,
		Location:     loc,
	})

	// Handlers
	webhookHandler := handlers.NewWebhookHandler(cfg.WebhookSecret, dispatcher, sender)
	adminHandler := handlers.NewAdminHandler(userService)

	validator.Register()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())

	router.GET("/", webhookHandler.Health)
	router.POST("/webhook/:secret", webhookHandler.Receive)

	admin := router.Group("/internal")
	admin.Use(middleware.AdminAuth(cfg.AdminAPIKey))
	admin.POST("/users", adminHandler.RegisterUser)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting finbot server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
