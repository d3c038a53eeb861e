package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/cuplet/cuplet-go/internal/config"
	"github.com/cuplet/cuplet-go/internal/handler"
	"github.com/cuplet/cuplet-go/internal/repository"
	"github.com/cuplet/cuplet-go/internal/service"
	"github.com/cuplet/cuplet-go/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	setupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	medium, db, err := openMedium(ctx, cfg)
	if err != nil {
		slog.Error("storage unavailable", "driver", cfg.StorageDriver, "error", err)
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
	}

	engine, err := storage.Open(ctx, medium)
	if err != nil {
		slog.Error("failed to load data", "driver", cfg.StorageDriver, "error", err)
		os.Exit(1)
	}

	authService := service.NewAuthService(repository.NewUserRepository(engine), cfg.JWTSecret, cfg.JWTExpiry)
	couponService := service.NewCouponService(repository.NewCouponRepository(engine))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.NewRouter(authService, couponService, cfg.JWTSecret),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "storage", cfg.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

func setupLogger(cfg config.Config) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if cfg.IsProduction() {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, opts)))
		return
	}
	opts.Level = slog.LevelDebug
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, opts)))
}

// openMedium returns the configured durable medium and, for SQL drivers, the
// pool the caller must close.
func openMedium(ctx context.Context, cfg config.Config) (storage.Medium, *sql.DB, error) {
	if cfg.StorageDriver == config.StorageFile {
		return storage.NewFileMedium(cfg.DataPath), nil, nil
	}

	dialect := storage.Dialect(cfg.StorageDriver)
	db, err := storage.NewDB(ctx, dialect, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}

	medium, err := storage.NewSQLMedium(ctx, db, dialect, cfg.DocumentName)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	return medium, db, nil
}
