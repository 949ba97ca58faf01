package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/comandahq/backoffice-backend/api/routes"
	"github.com/comandahq/backoffice-backend/internal/categories"
	"github.com/comandahq/backoffice-backend/internal/companies"
	"github.com/comandahq/backoffice-backend/internal/modifiergroups"
	"github.com/comandahq/backoffice-backend/internal/products"
	"github.com/comandahq/backoffice-backend/internal/taxes"
	"github.com/comandahq/backoffice-backend/pkg/config"
	"github.com/comandahq/backoffice-backend/pkg/db"
	"github.com/comandahq/backoffice-backend/pkg/logger"
	"github.com/comandahq/backoffice-backend/pkg/metrics"
	"github.com/comandahq/backoffice-backend/pkg/migrate"
	pkgredis "github.com/comandahq/backoffice-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisClient *pkgredis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = pkgredis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured, idempotency middleware disabled")
	}

	companyRepo := companies.NewRepository(dbClient.DB())
	companyService, err := companies.NewService(companyRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create company service", err)
		os.Exit(1)
	}

	categoryService, err := categories.NewService(categories.NewRepository(dbClient.DB()), companyRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create category service", err)
		os.Exit(1)
	}

	taxService, err := taxes.NewService(taxes.NewRepository(dbClient.DB()), companyRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create tax service", err)
		os.Exit(1)
	}

	groupRepo := modifiergroups.NewRepository(dbClient.DB())
	groupService, err := modifiergroups.NewService(dbClient, groupRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create modifier group service", err)
		os.Exit(1)
	}

	productService, err := products.NewService(
		dbClient,
		products.NewRepository(dbClient.DB()),
		modifiergroups.NewReconciler(groupRepo),
		cfg.Defaults.DefaultCompanyID(),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	deps := routes.Deps{
		Config:     cfg,
		Logger:     logg,
		DB:         dbClient,
		Redis:      redisClient,
		Metrics:    httpMetrics,
		Companies:  companyService,
		Categories: categoryService,
		Taxes:      taxService,
		Products:   productService,
		Groups:     groupService,
	}
	if redisClient != nil {
		deps.Idempotency = redisClient
	}

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(deps),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
