package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dynastytrade/internal/billing"
	"dynastytrade/internal/catalog"
	"dynastytrade/internal/config"
	"dynastytrade/internal/handlers"
	"dynastytrade/internal/jobs"
	"dynastytrade/internal/llm"
	_ "dynastytrade/internal/llm/gemini"
	"dynastytrade/internal/metrics"
	"dynastytrade/internal/models"
	"dynastytrade/internal/prompts"
	"dynastytrade/internal/repositories"
	"dynastytrade/internal/routers"
	"dynastytrade/internal/sleeper"
	"dynastytrade/internal/trades"
	"dynastytrade/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func initDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN()), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.LeagueConnection{},
		&models.Transaction{},
	); err != nil {
		return nil, err
	}
	return db, nil
}

func registerRoutes(
	router *chi.Mux,
	sessions *repositories.SessionRepository,
	authHandler *handlers.AuthHandler,
	leagueHandler *handlers.LeagueHandler,
	tradeHandler *handlers.TradeHandler,
	billingHandler *handlers.BillingHandler,
	healthHandler *handlers.HealthHandler,
) {
	routers.HealthRoutes(router, healthHandler)
	routers.AuthRoutes(router, authHandler, sessions)
	routers.LeagueRoutes(router, leagueHandler, sessions)
	routers.TradeRoutes(router, tradeHandler, sessions)
	routers.BillingRoutes(router, billingHandler, sessions)
	router.Handle("/metrics", metrics.Handler())
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	logger := utils.NewLogger(cfg.Env)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("provider", cfg.Provider))

	db, err := initDatabase(cfg)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}

	users := &repositories.UserRepository{DB: db}
	sessions := &repositories.SessionRepository{DB: db}
	leagues := &repositories.LeagueRepository{DB: db}
	txns := &repositories.TransactionRepository{DB: db}

	promptManager, err := prompts.NewManager()
	if err != nil {
		logger.Fatal("failed to initialize prompt manager", zap.Error(err))
	}

	// An unset provider is a supported mode: the deterministic fallbacks
	// carry every suggestion and valuation request.
	var provider llm.Provider
	if cfg.Provider != "" {
		provider, err = llm.NewProvider(cfg.Provider)
		if err != nil {
			logger.Fatal("failed to initialize AI provider", zap.Error(err))
		}
		logger.Info("AI provider initialized", zap.String("provider", provider.GetProviderName()))
	} else {
		logger.Info("no AI provider configured, using deterministic fallbacks")
	}

	sleeperClient := sleeper.NewClient(cfg.SleeperBaseURL, cfg.UpstreamTimeout)
	sleeperService := sleeper.NewService(sleeperClient, logger)
	playerCatalog := catalog.NewCache(sleeperClient, cfg.PlayerCacheTTL, logger)

	engine := trades.NewSuggestionEngine(provider, promptManager, logger)
	calculator := trades.NewValueCalculator(provider, promptManager, logger)

	var checkoutProvider billing.CheckoutProvider
	if cfg.StripeSecretKey != "" {
		checkoutProvider = billing.NewStripeProvider(cfg.StripeSecretKey)
	} else {
		logger.Warn("STRIPE_SECRET_KEY not set, checkout endpoints will report unavailable")
	}
	billingService := billing.NewService(checkoutProvider, users, txns, billing.Config{
		AmountCents: cfg.ProPriceCents,
		ProductName: "Dynasty Trade Pro",
		Description: "Unlimited trade analysis and suggestions",
		SuccessURL:  cfg.CheckoutSuccessURL,
		CancelURL:   cfg.CheckoutCancelURL,
	}, logger)

	authHandler := handlers.NewAuthHandler(users, sessions, cfg.SessionDuration, logger)
	leagueHandler := handlers.NewLeagueHandler(leagues, sleeperService, logger)
	tradeHandler := handlers.NewTradeHandler(users, leagues, sleeperService, playerCatalog, engine, calculator, logger)
	billingHandler := handlers.NewBillingHandler(billingService, users, txns, logger)
	healthHandler := handlers.NewHealthHandler(db)

	cleanupJob := jobs.NewSessionCleanupJob(sessions, cfg.SessionCleanupSchedule, logger)
	if err := cleanupJob.Start(); err != nil {
		logger.Fatal("failed to start session cleanup job", zap.Error(err))
	}

	router := chi.NewRouter()

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	router.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer, middleware.Timeout(60*time.Second))
	router.Use(metrics.Middleware())

	registerRoutes(router, sessions, authHandler, leagueHandler, tradeHandler, billingHandler, healthHandler)

	serverAddr := ":" + cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("dynastytrade service starting", zap.String("addr", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("dynastytrade service shutting down...")

	cleanupJob.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("dynastytrade service exited")
}
