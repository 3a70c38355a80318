package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/JonnyWalker81/vibecheck/backend/internal/auth"
	"github.com/JonnyWalker81/vibecheck/backend/internal/handlers"
	"github.com/JonnyWalker81/vibecheck/backend/internal/logger"
	"github.com/JonnyWalker81/vibecheck/backend/internal/middleware"
	"github.com/JonnyWalker81/vibecheck/backend/internal/sentiment"
	"github.com/JonnyWalker81/vibecheck/backend/internal/service"
	"github.com/JonnyWalker81/vibecheck/backend/internal/storage"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server and listen for requests.`,
	RunE:  runServe,
}

var (
	port string
)

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Sync(log)

	// Override port from flag if provided
	if port != "" {
		cfg.Server.Port = port
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("Starting VibeCheck API server",
		logger.String("env", cfg.Server.Env),
		logger.String("storage", cfg.Storage.Driver),
	)

	// Initialize storage
	store, err := storage.Open(ctx, cfg.Storage, cfg.Supabase)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer store.Close()

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return fmt.Errorf("failed to create token manager: %w", err)
	}

	analyzer := sentiment.New(cfg.Sentiment)
	if !analyzer.Ready() {
		log.Warn("No Hugging Face API key configured; using keyword sentiment")
	}

	windows := service.Windows{
		Dashboard:      cfg.Storage.DashboardWindowDays,
		Insights:       cfg.Storage.InsightWindowDays,
		StreakLookback: cfg.Storage.StreakLookbackDays,
	}

	// Initialize services
	authService := service.NewAuthService(store.Users(), tokens)
	journalService := service.NewJournalService(store.MoodEntries(), store.Activities(), analyzer, windows)
	dashboardService := service.NewDashboardService(store.MoodEntries(), windows)
	demoService := service.NewDemoService(store.Users(), store.MoodEntries(), store.Activities())

	apiLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, "api")
	defer apiLimiter.Stop()
	authLimiter := middleware.NewRateLimiter(cfg.RateLimit.AuthRequestsPerMinute, "auth")
	defer authLimiter.Stop()

	// Set Gin mode based on environment
	production := cfg.Server.Env == "production"
	if production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := handlers.NewRouter(handlers.RouterConfig{
		Logger:         log,
		Verifier:       tokens,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Production:     production,
		APILimiter:     apiLimiter,
		AuthLimiter:    authLimiter,
		Auth:           handlers.NewAuthHandler(authService, production),
		MoodEntry:      handlers.NewMoodEntryHandler(journalService),
		Dashboard:      handlers.NewDashboardHandler(dashboardService),
		Demo:           handlers.NewDemoHandler(demoService),
		Health:         handlers.NewHealthHandler(store, analyzer.Ready(), cfg.Server.Env),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server listening", logger.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info("Server stopped")
	return nil
}
