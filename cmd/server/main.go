package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"workoo-web/internal/api"
	"workoo-web/internal/backend"
	"workoo-web/internal/config"
	"workoo-web/internal/core"
	"workoo-web/internal/db"
	"workoo-web/internal/events"
	"workoo-web/internal/guard"
	"workoo-web/internal/middleware"
)

func main() {
	// In production, environment variables are set directly.
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file loaded:", err)
		}
	}

	appConfig, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := newLogger(appConfig)
	if err != nil {
		log.Fatalf("Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()
	zapLogger.Info("Configuration loaded",
		zap.String("backendURL", appConfig.BackendURL),
		zap.String("sessionStore", appConfig.SessionStore),
	)

	// --- Token Store ---
	initCtx, cancelInit := context.WithTimeout(context.Background(), 15*time.Second)
	repo, err := newSessionRepository(initCtx, appConfig, zapLogger)
	cancelInit()
	if err != nil {
		zapLogger.Fatal("Failed to initialize session repository", zap.Error(err))
	}
	defer func() {
		if err := repo.Close(); err != nil {
			zapLogger.Error("Failed to close session repository", zap.Error(err))
		}
	}()
	store := core.NewTokenStore(repo, zapLogger)

	// --- Session change events ---
	if appConfig.AMQPURL != "" {
		publisher, err := events.NewRabbitMQPublisher(appConfig.AMQPURL, zapLogger)
		if err != nil {
			zapLogger.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
		}
		broadcaster := events.NewBroadcaster(publisher, appConfig.SessionEventsQueue, 0, zapLogger)
		unsubscribe := store.Subscribe(broadcaster.Listen)
		defer func() {
			unsubscribe()
			if err := broadcaster.Close(); err != nil {
				zapLogger.Error("Failed to close session event broadcaster", zap.Error(err))
			}
		}()
		zapLogger.Info("Session events published", zap.String("queue", appConfig.SessionEventsQueue))
	} else {
		defer store.Subscribe(events.LogListener(zapLogger))()
	}

	// --- Services ---
	client := backend.NewClient(appConfig.BackendURL, appConfig.HTTPClientTimeout, core.TokenFromContext, zapLogger)
	profiles := core.NewProfileCache(appConfig.ProfileCacheSize, appConfig.ProfileCacheTTL)
	verifier := core.NewSessionVerifier(client, zapLogger)
	checker := core.NewSubscriptionChecker(client, zapLogger)

	var credentials core.CredentialValidator
	if appConfig.GoogleClientID != "" {
		credentials = core.NewGoogleCredentialValidator(appConfig.GoogleClientID)
	} else {
		zapLogger.Warn("GOOGLE_CLIENT_ID is not configured; Google sign-in is disabled")
	}
	authService := core.NewAuthService(client, credentials, profiles, zapLogger)
	dashboardService := core.NewDashboardService(client, checker, profiles, zapLogger)

	// --- HTTP engine ---
	if appConfig.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()
	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	if appConfig.ClientURL != "" {
		router.Use(middleware.CORSMiddleware(appConfig.ClientURL))
		zapLogger.Info("CORS enabled", zap.String("clientURL", appConfig.ClientURL))
	}
	router.Use(middleware.BrowserSession(store, middleware.CookieOptions{
		MaxAge: appConfig.SessionTTL,
		Secure: appConfig.CookieSecure,
	}, zapLogger))

	err = api.SetupRoutes(router, api.Dependencies{
		Config:        appConfig,
		Logger:        zapLogger,
		Backend:       client,
		Auth:          authService,
		Dashboard:     dashboardService,
		Subscriptions: checker,
		Profiles:      profiles,
		Guards:        guard.NewGuards(verifier, checker, api.RenderScreen, zapLogger),
	})
	if err != nil {
		zapLogger.Fatal("Failed to set up routes", zap.Error(err))
	}

	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLogger.Info("Starting HTTP server", zap.String("address", serverAddr), zap.String("ginMode", gin.Mode()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	zapLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server forced to shut down", zap.Error(err))
		return
	}
	zapLogger.Info("Server exiting gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsRelease() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func newSessionRepository(ctx context.Context, cfg *config.Config, logger *zap.Logger) (db.SessionRepository, error) {
	switch cfg.SessionStore {
	case config.StoreRedis:
		return db.NewRedisSessionRepository(ctx, db.RedisConfig{
			Address:  cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.SessionTTL,
		}, logger)
	case config.StoreFirestore:
		client, err := db.InitFirestore(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return db.NewFirestoreSessionRepository(client)
	default:
		logger.Warn("Using in-memory session store; sessions are lost on restart")
		return db.NewMemorySessionRepository(cfg.SessionTTL), nil
	}
}
