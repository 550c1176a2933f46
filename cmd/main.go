package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Dosada05/torvix-arena/assist"
	"github.com/Dosada05/torvix-arena/brackets"
	"github.com/Dosada05/torvix-arena/config"
	"github.com/Dosada05/torvix-arena/db"
	"github.com/Dosada05/torvix-arena/handlers"
	"github.com/Dosada05/torvix-arena/observability"
	"github.com/Dosada05/torvix-arena/repositories"
	api "github.com/Dosada05/torvix-arena/routes"
	"github.com/Dosada05/torvix-arena/services"
	"github.com/Dosada05/torvix-arena/session"
	"github.com/Dosada05/torvix-arena/storage"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"
)

const (
	serviceName     = "torvix-arena"
	shutdownTimeout = 15 * time.Second
)

// @title Torvix Arena API
// @version 1.0
// @description Tournament hosting: sessions, tournaments, teams, brackets and text assist.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Настройка логгера
	logger := setupLogger(cfg.Env, cfg.LogLevel)
	slog.SetDefault(logger)
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.String("backend", cfg.StorageBackend))

	if err := run(cfg, logger); err != nil {
		logger.Error("application stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application exited")
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitTracing(ctx, logger, cfg.OTLPEndpoint, serviceName, cfg.Env)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		tctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(tctx); err != nil {
			logger.Warn("failed to flush traces", slog.Any("error", err))
		}
	}()

	location, err := cfg.Location()
	if err != nil {
		return err
	}

	// Инициализация хранилища
	gateway, closeGateway, err := openGateway(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeGateway()

	// Инициализация загрузчика файлов (Cloudflare R2), если настроен
	var uploader storage.FileUploader
	if cfg.R2.Enabled() {
		uploader, err = storage.NewCloudflareR2Uploader(ctx, storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2.AccountID,
			AccessKeyID:     cfg.R2.AccessKeyID,
			SecretAccessKey: cfg.R2.SecretAccessKey,
			BucketName:      cfg.R2.BucketName,
			PublicBaseURL:   cfg.R2.PublicBaseURL,
		})
		if err != nil {
			return fmt.Errorf("init Cloudflare R2 uploader: %w", err)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Warn("R2 is not configured, avatar uploads are disabled")
	}

	// Генератор текстов: без API_KEY все подсказки сохраняют текущий текст
	var generator assist.Generator
	if cfg.GeminiAPIKey != "" {
		gemini, err := assist.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return fmt.Errorf("init text generator: %w", err)
		}
		generator = gemini
		logger.Info("text assist enabled", slog.String("model", cfg.GeminiModel))
	}

	// Инициализация сервисов
	userService := services.NewUserService(gateway, uploader, logger)
	tournamentService := services.NewTournamentService(gateway, location, logger)
	assistService := assist.NewService(generator, logger)
	sessions := session.NewManager(cfg.JWTSecretKey, cfg.SessionTTL, gateway)

	wsHub := brackets.NewHub(logger)
	snapshots := services.NewSnapshotHolder(logger)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, snapshots, tournamentService, cfg.CORSAllowedOrigins, logger)
	snapshots.OnChange(webSocketHandler.Broadcast)
	snapshots.Start(gateway)
	defer snapshots.Stop()

	readyCtx, cancelReady := context.WithTimeout(ctx, 10*time.Second)
	err = snapshots.WaitReady(readyCtx)
	cancelReady()
	if err != nil {
		return fmt.Errorf("waiting for the first tournament snapshot: %w", err)
	}

	scheduler, err := services.StartScheduler(ctx, tournamentService, cfg.SchedulerInterval, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := scheduler.Stop(); err != nil {
			logger.Warn("failed to stop scheduler", slog.Any("error", err))
		}
	}()

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		Auth:        handlers.NewAuthHandler(userService, sessions),
		User:        handlers.NewUserHandler(userService),
		Tournament:  handlers.NewTournamentHandler(tournamentService, snapshots),
		Participant: handlers.NewParticipantHandler(tournamentService),
		Team:        handlers.NewTeamHandler(tournamentService),
		Match:       handlers.NewMatchHandler(tournamentService, snapshots),
		Assist:      handlers.NewAssistHandler(assistService, tournamentService, snapshots),
		WebSocket:   webSocketHandler,
	}, api.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Sessions:       sessions,
		Logger:         logger,
	})
	logger.Info("Routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      otelhttp.NewHandler(router, serviceName),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		wsHub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		logger.Info("starting server", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			return server.Close()
		}
		logger.Info("server shutdown complete")
		return nil
	})

	return g.Wait()
}

// openGateway выбирает хранилище по STORAGE_BACKEND.
func openGateway(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repositories.Gateway, func(), error) {
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := db.Migrate(ctx, dbConn); err != nil {
			dbConn.Close()
			return nil, nil, fmt.Errorf("migrate database: %w", err)
		}
		gw, err := repositories.NewPostgresGateway(ctx, dbConn, cfg.DatabaseURL, logger)
		if err != nil {
			dbConn.Close()
			return nil, nil, err
		}
		logger.Info("postgres gateway ready")
		return gw, func() {
			if err := gw.Close(); err != nil {
				logger.Error("failed to close postgres gateway", slog.Any("error", err))
			}
			if err := dbConn.Close(); err != nil {
				logger.Error("failed to close database connection", slog.Any("error", err))
			} else {
				logger.Info("database connection closed")
			}
		}, nil

	case config.BackendRedis:
		rdb, err := db.ConnectRedis(cfg.RedisURL, 5*time.Second)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to redis: %w", err)
		}
		gw, err := repositories.NewRedisGateway(ctx, rdb, logger)
		if err != nil {
			rdb.Close()
			return nil, nil, err
		}
		logger.Info("redis gateway ready")
		return gw, func() {
			if err := gw.Close(); err != nil {
				logger.Error("failed to close redis gateway", slog.Any("error", err))
			}
			if err := rdb.Close(); err != nil {
				logger.Error("failed to close redis client", slog.Any("error", err))
			}
		}, nil

	default:
		gw, err := repositories.NewLocalGateway(cfg.LocalDataPath, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("open local store: %w", err)
		}
		logger.Info("local gateway ready", slog.String("path", cfg.LocalDataPath))
		return gw, func() { _ = gw.Close() }, nil
	}
}

func setupLogger(env, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if env == "local" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
