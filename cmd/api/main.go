package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"log/slog"

	"github.com/mnmarketlink/platform/internal/auth"
	"github.com/mnmarketlink/platform/internal/config"
	"github.com/mnmarketlink/platform/internal/database"
	"github.com/mnmarketlink/platform/internal/domain"
	"github.com/mnmarketlink/platform/internal/httpapi"
	"github.com/mnmarketlink/platform/internal/logger"
	"github.com/mnmarketlink/platform/internal/server"
	"github.com/mnmarketlink/platform/internal/storage/memory"
	mysqlstorage "github.com/mnmarketlink/platform/internal/storage/mysql"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	logr := logger.New(cfg.Env)

	if cfg.JWTSecret == "" {
		logr.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	baseCtx := context.Background()

	var db *database.DB
	if cfg.DataBackend == "mysql" {
		db, err = database.Connect(baseCtx, database.Options{
			DSN:             database.BuildDSN(cfg.Database),
			MaxOpenConns:    cfg.DBMaxOpenConns,
			MaxIdleConns:    cfg.DBMaxIdleConns,
			ConnMaxLifetime: cfg.DBConnMaxLifetime,
			ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
			Logger:          logr,
		})
		if err != nil {
			logr.Error("failed to connect database", "err", err)
			os.Exit(1)
		}
		defer func() {
			if cerr := db.Close(); cerr != nil {
				logr.Error("error closing database", "err", cerr)
			}
		}()

		migrator := database.NewSQLMigrator(db.DB, database.MigrationsFS(), database.MigrationsPath, logr)
		if err := db.RunMigrations(baseCtx, migrator); err != nil {
			logr.Error("database migrations failed", "err", err)
			os.Exit(1)
		}
	}

	domainContainer, err := buildDomainContainer(cfg, logr, db)
	if err != nil {
		logr.Error("failed to init domain container", "err", err)
		os.Exit(1)
	}

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry)

	srv := server.New(cfg, logr)

	httpapi.Register(srv.Mux(), logr, domainContainer, tokens)

	go func() {
		if err := srv.Run(); err != nil {
			logr.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logr.Error("server shutdown failed", "err", err)
		os.Exit(1)
	}
}

func buildDomainContainer(cfg config.Config, logr *slog.Logger, db *database.DB) (domain.Container, error) {
	switch cfg.DataBackend {
	case "memory":
		logr.Info("using in-memory repositories (DATA_BACKEND=memory)")
		marketRepo := memory.NewMarketRepository()
		vendorRepo := memory.NewVendorRepository()
		return domain.New(domain.Options{
			MarketRepo:   marketRepo,
			VendorRepo:   vendorRepo,
			ProductRepo:  memory.NewProductRepository(vendorRepo, marketRepo),
			CustomerRepo: memory.NewCustomerRepository(),
			OrderRepo:    memory.NewOrderRepository(),
			UserRepo:     memory.NewUserRepository(),
		}), nil
	case "mysql":
		if db == nil {
			return domain.Container{}, fmt.Errorf("mysql backend requires database connection")
		}
		logr.Info("using mysql repositories (DATA_BACKEND=mysql)")
		sqlDB := db.DB
		return domain.New(domain.Options{
			MarketRepo:   mysqlstorage.NewMarketRepository(sqlDB),
			VendorRepo:   mysqlstorage.NewVendorRepository(sqlDB),
			ProductRepo:  mysqlstorage.NewProductRepository(sqlDB),
			CustomerRepo: mysqlstorage.NewCustomerRepository(sqlDB),
			OrderRepo:    mysqlstorage.NewOrderRepository(sqlDB),
			UserRepo:     mysqlstorage.NewUserRepository(sqlDB),
		}), nil
	default:
		return domain.Container{}, fmt.Errorf("unsupported data backend: %s", cfg.DataBackend)
	}
}
