package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/harpsglobal/harps-portal-backend/api/controllers"
	"github.com/harpsglobal/harps-portal-backend/api/routes"
	"github.com/harpsglobal/harps-portal-backend/internal/addresses"
	"github.com/harpsglobal/harps-portal-backend/internal/cart"
	"github.com/harpsglobal/harps-portal-backend/internal/catalog"
	"github.com/harpsglobal/harps-portal-backend/internal/invoice"
	"github.com/harpsglobal/harps-portal-backend/internal/mailer"
	"github.com/harpsglobal/harps-portal-backend/internal/orders"
	"github.com/harpsglobal/harps-portal-backend/internal/profiles"
	"github.com/harpsglobal/harps-portal-backend/internal/settings"
	"github.com/harpsglobal/harps-portal-backend/internal/templates"
	"github.com/harpsglobal/harps-portal-backend/internal/tickets"
	"github.com/harpsglobal/harps-portal-backend/pkg/config"
	"github.com/harpsglobal/harps-portal-backend/pkg/db"
	"github.com/harpsglobal/harps-portal-backend/pkg/logger"
	"github.com/harpsglobal/harps-portal-backend/pkg/metrics"
	"github.com/harpsglobal/harps-portal-backend/pkg/migrate"
	"github.com/harpsglobal/harps-portal-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

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

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	mailerMetrics := metrics.NewMailerMetrics(registry)

	templatesRepo := templates.NewRepository(dbClient.DB())
	dispatcher, err := mailer.NewDispatcher(mailer.NewResendSender(cfg.Mailer), templatesRepo, mailerMetrics, logg, cfg.Mailer)
	if err != nil {
		logg.Error(context.Background(), "failed to create mail dispatcher", err)
		os.Exit(1)
	}

	svcs, err := buildServices(dbClient, templatesRepo, dispatcher, cfg, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to wire services", err)
		os.Exit(1)
	}

	health := map[string]controllers.Pinger{
		"database": dbClient,
		"redis":    redisClient,
	}

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

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, health, registry, redisClient, svcs),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
		dispatcher.Wait()
	}
}

func buildServices(dbClient *db.Client, templatesRepo templates.Repository, dispatcher *mailer.Dispatcher, cfg *config.Config, logg *logger.Logger) (routes.Services, error) {
	catalogSvc, err := catalog.NewService(catalog.NewRepository(dbClient.DB()))
	if err != nil {
		return routes.Services{}, err
	}

	cartSvc, err := cart.NewService(cart.NewStore(), catalogSvc)
	if err != nil {
		return routes.Services{}, err
	}

	addressesSvc, err := addresses.NewService(addresses.NewRepository(dbClient.DB()), dbClient)
	if err != nil {
		return routes.Services{}, err
	}

	settingsSvc, err := settings.NewService(settings.NewRepository(dbClient.DB()))
	if err != nil {
		return routes.Services{}, err
	}

	profilesSvc, err := profiles.NewService(profiles.NewRepository(dbClient.DB()))
	if err != nil {
		return routes.Services{}, err
	}

	templatesSvc, err := templates.NewService(templatesRepo)
	if err != nil {
		return routes.Services{}, err
	}

	ordersSvc, err := orders.NewService(
		orders.NewRepository(dbClient.DB()),
		dbClient,
		cartSvc,
		addressesSvc,
		settingsSvc,
		profilesSvc,
		dispatcher,
		logg,
	)
	if err != nil {
		return routes.Services{}, err
	}

	ticketsSvc, err := tickets.NewService(tickets.NewRepository(dbClient.DB()), profilesSvc, dispatcher, logg)
	if err != nil {
		return routes.Services{}, err
	}

	invoiceSvc, err := invoice.NewService(cfg.Company)
	if err != nil {
		return routes.Services{}, err
	}

	return routes.Services{
		Catalog:   catalogSvc,
		Cart:      cartSvc,
		Addresses: addressesSvc,
		Profiles:  profilesSvc,
		Orders:    ordersSvc,
		Tickets:   ticketsSvc,
		Templates: templatesSvc,
		Settings:  settingsSvc,
		Invoice:   invoiceSvc,
	}, nil
}
