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

	"github.com/go-chi/chi/v5"
	"github.com/urfave/cli/v2"

	"github.com/Dosada05/atletica-scoreboard/db"
	"github.com/Dosada05/atletica-scoreboard/handlers"
	"github.com/Dosada05/atletica-scoreboard/live"
	"github.com/Dosada05/atletica-scoreboard/metrics"
	"github.com/Dosada05/atletica-scoreboard/middleware"
	"github.com/Dosada05/atletica-scoreboard/repositories"
	api "github.com/Dosada05/atletica-scoreboard/routes"
	"github.com/Dosada05/atletica-scoreboard/services"
	"github.com/Dosada05/atletica-scoreboard/storage"
	"github.com/Dosada05/atletica-scoreboard/tracing"
)

const (
	shutdownTimeout = 15 * time.Second
	requestTimeout  = 30 * time.Second
)

func serveCommand(c *cli.Context) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.String("driver", cfg.DatabaseDriver))

	if cfg.MigrateOnStart {
		if err := db.MigrateUp(cfg.DatabaseDriver, cfg.DatabaseURL, logger); err != nil {
			return err
		}
	}

	dbConn, err := db.Connect(cfg.DatabaseDriver, cfg.DatabaseURL, dbConnectTimeout)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	if cfg.TracingEnabled() {
		shutdownTracing, err := tracing.Setup(c.Context, tracing.Config{
			Endpoint:    cfg.OTLPEndpoint,
			SampleRatio: cfg.TraceSampleRatio,
		})
		if err != nil {
			return fmt.Errorf("failed to set up tracing: %w", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := shutdownTracing(ctx); err != nil {
				logger.Error("failed to flush traces", slog.Any("error", err))
			}
		}()
		logger.Info("tracing enabled", slog.String("endpoint", cfg.OTLPEndpoint), slog.Float64("sample_ratio", cfg.TraceSampleRatio))
	} else {
		logger.Info("OTLP endpoint not set, tracing disabled")
	}

	var uploader storage.Uploader
	if cfg.PublishingEnabled() {
		uploader, err = storage.NewR2Uploader(c.Context, storage.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize Cloudflare R2 uploader: %w", err)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Info("R2 credentials not set, standings publishing disabled")
	}

	m := metrics.New()

	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	wsHub := live.NewHub(logger)
	go wsHub.Run(hubCtx)
	logger.Info("WebSocket hub started")

	competitionRepo := repositories.NewCompetitionRepository(dbConn)
	athleticRepo := repositories.NewAthleticRepository(dbConn)
	modalityRepo := repositories.NewModalityRepository(dbConn)
	resultRepo := repositories.NewResultRepository(dbConn)
	penaltyRepo := repositories.NewPenaltyRepository(dbConn)
	scoreRuleRepo := repositories.NewScoreRuleRepository(dbConn)
	settingsRepo := repositories.NewSettingsRepository(dbConn)
	financeRepo := repositories.NewFinanceRepository(dbConn)
	productRepo := repositories.NewProductRepository(dbConn)

	rules := services.ScoreRulePolicy{
		Default:          cfg.DefaultScoreRule,
		OverridesEnabled: cfg.ScoreRuleOverridesEnabled,
	}
	standingsService := services.NewStandingsService(services.StandingsServiceDeps{
		CompetitionRepo:     competitionRepo,
		AthleticRepo:        athleticRepo,
		ResultRepo:          resultRepo,
		PenaltyRepo:         penaltyRepo,
		ScoreRuleRepo:       scoreRuleRepo,
		SettingsRepo:        settingsRepo,
		Rules:               rules,
		Broadcaster:         wsHub,
		Uploader:            uploader,
		Metrics:             m,
		PublicScoreboardURL: cfg.PublicScoreboardURL,
		Logger:              logger,
	})
	competitionService := services.NewCompetitionService(dbConn, competitionRepo, modalityRepo, logger)
	athleticService := services.NewAthleticService(athleticRepo, competitionRepo, standingsService, logger)
	modalityService := services.NewModalityService(modalityRepo, competitionRepo, standingsService, logger)
	resultService := services.NewResultService(dbConn, resultRepo, modalityRepo, athleticRepo, standingsService, wsHub, m, logger)
	penaltyService := services.NewPenaltyService(penaltyRepo, athleticRepo, standingsService, logger)
	scoreRuleService := services.NewScoreRuleService(rules, scoreRuleRepo, modalityRepo, standingsService, logger)
	financeService := services.NewFinanceService(financeRepo, logger)
	inventoryService := services.NewInventoryService(productRepo, logger)
	settingsService := services.NewSettingsService(settingsRepo)
	logger.Info("services initialized")

	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		Competition: handlers.NewCompetitionHandler(competitionService),
		Athletic:    handlers.NewAthleticHandler(athleticService),
		Modality:    handlers.NewModalityHandler(modalityService),
		Result:      handlers.NewResultHandler(resultService),
		Scoring:     handlers.NewScoringHandler(penaltyService, scoreRuleService),
		Standings:   handlers.NewStandingsHandler(standingsService, competitionService),
		Finance:     handlers.NewFinanceHandler(financeService),
		Inventory:   handlers.NewInventoryHandler(inventoryService),
		Settings:    handlers.NewSettingsHandler(settingsService),
		WebSocket:   handlers.NewWebSocketHandler(wsHub, competitionService, standingsService, cfg.CORSAllowedOrigins, logger),
	}, api.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimiter:    middleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		Metrics:        m,
		RequestTimeout: requestTimeout,
	})
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
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
			return fmt.Errorf("server error: %w", err)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		logger.Info("server shutdown complete")
	}

	stopHub()
	logger.Info("application exited")
	return nil
}
