package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/prediction-league/config"
	"github.com/Dosada05/prediction-league/db"
	"github.com/Dosada05/prediction-league/handlers"
	"github.com/Dosada05/prediction-league/live"
	"github.com/Dosada05/prediction-league/repositories"
	api "github.com/Dosada05/prediction-league/routes"
	"github.com/Dosada05/prediction-league/scoring"
	"github.com/Dosada05/prediction-league/services"
	"github.com/Dosada05/prediction-league/storage"
	"github.com/go-chi/chi/v5"
	"github.com/jonboulle/clockwork"
	_ "github.com/lib/pq"
)

const lockoutAnnounceInterval = 30 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	ruleset, ok := scoring.ByName(cfg.ScoringRuleset)
	if !ok {
		logger.Error("unknown scoring ruleset", slog.String("ruleset", cfg.ScoringRuleset))
		os.Exit(1)
	}
	logger.Info("scoring ruleset selected", slog.String("ruleset", ruleset.Name()))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	clock := clockwork.NewRealClock()

	hub := live.NewHub(logger)
	go hub.Run()
	logger.Info("live feed hub started")

	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	predictionRepo := repositories.NewPostgresPredictionRepository(dbConn)
	txRunner := repositories.NewTxRunner(dbConn)
	logger.Info("repositories initialized")

	scoreboardService := services.NewScoreboardService(predictionRepo, cfg.Roster)
	matchService := services.NewMatchService(txRunner, matchRepo, predictionRepo, scoreboardService, ruleset, clock, hub, logger)
	predictionService := services.NewPredictionService(matchRepo, predictionRepo, clock)
	authService := services.NewAuthService(cfg.OperatorPasswordHash, cfg.JWTSecretKey)
	logger.Info("services initialized")

	source, err := fixtureSource(cfg)
	if err != nil {
		logger.Error("failed to initialize fixture source", slog.Any("error", err))
		os.Exit(1)
	}
	if source != nil {
		fixtureService := services.NewFixtureService(source, matchRepo, logger)
		if _, err := fixtureService.Import(context.Background()); err != nil {
			logger.Error("fixture import failed", slog.Any("error", err))
			os.Exit(1)
		}
	} else {
		logger.Info("no fixture source configured, assuming matches are already seeded")
	}

	// Announce lockouts to live clients as kickoffs pass. Lock state is
	// derived from kickoff, so this never touches the database.
	go func() {
		ticker := clock.NewTicker(lockoutAnnounceInterval)
		defer ticker.Stop()
		lastRun := clock.Now()
		for range ticker.Chan() {
			now := clock.Now()
			matches, err := matchService.List(context.Background())
			if err != nil {
				logger.Error("lockout announcer failed to list matches", slog.Any("error", err))
				lastRun = now
				continue
			}
			for _, match := range matches {
				if match.Kickoff.After(lastRun) && !match.IsUpcoming(now) {
					hub.Broadcast(services.FrameMatchLocked, match)
					logger.Info("match locked", slog.Int("match_id", match.ID))
				}
			}
			lastRun = now
		}
	}()

	actionHandler := handlers.NewActionHandler(matchService, predictionService, scoreboardService, cfg.JWTSecretKey)
	matchHandler := handlers.NewMatchHandler(matchService)
	predictionHandler := handlers.NewPredictionHandler(predictionService)
	scoreboardHandler := handlers.NewScoreboardHandler(scoreboardService)
	authHandler := handlers.NewAuthHandler(authService)
	webSocketHandler := handlers.NewWebSocketHandler(hub, logger)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		actionHandler,
		matchHandler,
		predictionHandler,
		scoreboardHandler,
		authHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}

func fixtureSource(cfg *config.Config) (storage.FixtureSource, error) {
	if cfg.FixturesFile != "" {
		return storage.NewFileSource(cfg.FixturesFile), nil
	}
	if cfg.HasR2Source() {
		return storage.NewCloudflareR2Source(storage.CloudflareR2SourceConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			ObjectKey:       cfg.FixturesObjectKey,
		})
	}
	return nil, nil
}
