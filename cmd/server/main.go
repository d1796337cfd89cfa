package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tradepulse/internal/dashboard/config"
	delivery "tradepulse/internal/dashboard/delivery/http"
	_ "tradepulse/internal/dashboard/docs"
	"tradepulse/internal/dashboard/repository"
	"tradepulse/internal/dashboard/service"
	"tradepulse/pkg/logger"
	"tradepulse/pkg/postgres"
	"tradepulse/pkg/redis"
	"tradepulse/pkg/telegram"

	"github.com/labstack/echo/v4"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
	"google.golang.org/genai"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the dashboard service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Dashboard Service", logger.Field("name", cfg.App.Name))

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Initialize Redis
	redisCfg := redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	redisClient, err := redis.NewClient(redisCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	defer redisClient.Close()

	// Initialize news provider
	var newsRepo repository.NewsRepository
	switch cfg.News.Provider {
	case "newsapi":
		newsRepo = repository.NewNewsAPIRepository(cfg, appLogger)
	case "googlerss":
		newsRepo = repository.NewGoogleRSSRepository(cfg, appLogger)
	default:
		appLogger.Fatal("Invalid news provider specified in config", logger.StringField("provider", cfg.News.Provider))
	}

	// Initialize sentiment provider
	var sentimentRepo repository.SentimentRepository
	switch cfg.Sentiment.Provider {
	case "huggingface":
		sentimentRepo = repository.NewHuggingFaceRepository(cfg, appLogger, redisClient)
	case "cohere":
		sentimentRepo = repository.NewCohereRepository(cfg, appLogger, redisClient)
	default:
		appLogger.Fatal("Invalid sentiment provider specified in config", logger.StringField("provider", cfg.Sentiment.Provider))
	}

	// Initialize assistant provider
	genAiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: cfg.Gemini.APIKey,
	})
	if err != nil {
		appLogger.Fatal("Failed to initialize Gemini client", logger.ErrorField(err))
	}
	assistantRepo, err := repository.NewGeminiAssistantRepository(cfg, appLogger, genAiClient)
	if err != nil {
		appLogger.Fatal("Failed to initialize assistant repository", logger.ErrorField(err))
	}

	contentRepo := repository.NewArticleContentRepository(appLogger)
	quoteRepo, err := repository.NewYahooFinanceRepository(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize Yahoo Finance repository", logger.ErrorField(err))
	}
	tradeRepo := repository.NewTradeRepository(db.DB)
	userRepo := repository.NewUserRepository(db.DB)
	watchlistRepo := repository.NewWatchlistRepository(db.DB)
	alertRepo := repository.NewAlertRepository(db.DB)

	var telegramNotifier telegram.Notifier
	if cfg.Telegram.Enabled {
		telegramNotifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
	}

	// Initialize services
	enrichmentSvc := service.NewNewsEnrichmentService(newsRepo, sentimentRepo, appLogger)
	newsSvc := service.NewNewsService(enrichmentSvc, appLogger)
	assistantSvc := service.NewAssistantService(cfg, appLogger, newsRepo, sentimentRepo, assistantRepo)
	journalSvc := service.NewJournalService(tradeRepo, appLogger)
	watchlistSvc := service.NewWatchlistService(watchlistRepo, quoteRepo, appLogger)
	alertSvc := service.NewAlertService(cfg, appLogger, alertRepo, quoteRepo, redisClient, telegramNotifier)
	authSvc := service.NewAuthService(cfg, appLogger, userRepo, redisClient)
	calculatorSvc := service.NewCalculatorService()

	// Warm the feed with the default selection
	go newsSvc.Refresh(ctx)

	// Schedule background jobs
	scheduler := cron.New()
	if cfg.News.RefreshCron != "" {
		if _, err := scheduler.AddFunc(cfg.News.RefreshCron, func() { newsSvc.Refresh(ctx) }); err != nil {
			appLogger.Fatal("Invalid news refresh cron expression", logger.ErrorField(err))
		}
	}
	if cfg.Alerts.CheckCron != "" {
		if _, err := scheduler.AddFunc(cfg.Alerts.CheckCron, func() { alertSvc.CheckAlerts(ctx) }); err != nil {
			appLogger.Fatal("Invalid alert check cron expression", logger.ErrorField(err))
		}
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	// Initialize handlers and routes
	apiV1 := e.Group("/api/v1")

	newsHandler := delivery.NewNewsHandler(newsSvc, contentRepo, appLogger)
	newsHandler.RegisterRoutes(apiV1.Group("/news"))

	sentimentHandler := delivery.NewSentimentHandler(sentimentRepo, appLogger)
	sentimentHandler.RegisterRoutes(apiV1.Group("/sentiment"))

	chatHandler := delivery.NewChatHandler(assistantSvc, appLogger)
	chatHandler.RegisterRoutes(apiV1.Group("/chat"))

	journalHandler := delivery.NewJournalHandler(journalSvc, appLogger)
	journalHandler.RegisterRoutes(apiV1.Group("/journal"))

	watchlistHandler := delivery.NewWatchlistHandler(watchlistSvc, appLogger)
	watchlistHandler.RegisterRoutes(apiV1.Group("/watchlist"))

	alertHandler := delivery.NewAlertHandler(alertSvc, appLogger)
	alertHandler.RegisterRoutes(apiV1.Group("/alerts"))

	calculatorHandler := delivery.NewCalculatorHandler(calculatorSvc)
	calculatorHandler.RegisterRoutes(apiV1.Group("/calculator"))

	authHandler := delivery.NewAuthHandler(authSvc, appLogger)
	authHandler.RegisterRoutes(apiV1.Group("/auth"))

	e.GET("/swagger/*", swagger.WrapHandler)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

// @title TradePulse Dashboard API
// @version 1.0
// @description Backend for the TradePulse day-trading dashboard.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	rootCmd := &cobra.Command{Use: "server"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing server CLI: %s\n", err)
		os.Exit(1)
	}
}
