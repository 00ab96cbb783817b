package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"poker-log/internal/cache"
	"poker-log/internal/config"
	"poker-log/internal/database"
	"poker-log/internal/metrics"
	"poker-log/internal/middleware"
	"poker-log/internal/router"
	"poker-log/internal/service"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
)

var (
	loadConfig      = config.Load
	loadDatabaseURL = config.LoadDatabaseURL
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	rollbackFn      = database.RollbackAll
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	exitFunc        = os.Exit
	cmdArgs         = func() []string { return os.Args[1:] }
)

var logOutput io.Writer = os.Stderr

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "poker-log",
		Short:         "Poker tournament log API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context())
		},
	}
	cmd.AddCommand(newServeCmd(), newMigrateCmd())
	return cmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run migrations and start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context())
		},
	}
}

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, _ []string) error {
				url, err := loadDatabaseURL()
				if err != nil {
					return err
				}
				if err := runMigrationsFn(url); err != nil {
					return fmt.Errorf("Migration 執行失敗: %v", err)
				}
				cmd.Println("migrations applied")
				return nil
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back every migration",
			RunE: func(cmd *cobra.Command, _ []string) error {
				url, err := loadDatabaseURL()
				if err != nil {
					return err
				}
				if err := rollbackFn(url); err != nil {
					return fmt.Errorf("RollbackAll 失敗: %v", err)
				}
				cmd.Println("migrations rolled back")
				return nil
			},
		},
	)
	return cmd
}

func newLogger(level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel)

	db, err := newPgxPool(ctx, cfg.DatabaseURL, cfg.ConnectRetries)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %v", err)
	}
	defer db.Close()

	rdb, err := newRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.ConnectRetries)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %v", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			logger.Warn("關閉 Redis 連線失敗", "error", err)
		}
	}()

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %v", err)
	}

	e := newServer(cfg, logger, db, rdb)
	logger.Info("server starting", "addr", cfg.Addr())
	return startServer(e, cfg.Addr())
}

// newServer 組裝 Echo、中介層與所有 workflow
func newServer(cfg *config.Config, logger *slog.Logger, db database.DB, rdb cache.Cache) *echo.Echo {
	reporter := service.Reporter{Logger: logger, Metrics: metrics.New()}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(logger))

	router.Setup(e, router.Deps{
		DB:          db,
		Cache:       rdb,
		Sessions:    service.NewSessions(db, rdb, cfg.JWTSecret, cfg.SessionTTL, reporter),
		Registrar:   service.NewRegistrar(db, reporter),
		Tournaments: service.NewTournamentService(db, rdb, cfg.CacheTTL, cfg.Location, reporter),
		Metrics:     reporter.Metrics,
	})
	return e
}
