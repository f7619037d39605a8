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

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mesaYaDash/internal/app"
	"mesaYaDash/internal/config"
	customers "mesaYaDash/internal/modules/customers/interface"
	messaging "mesaYaDash/internal/modules/messaging/interface"
	handler "mesaYaDash/internal/modules/realtime/application/handler"
	usecase "mesaYaDash/internal/modules/realtime/application/usecase"
	"mesaYaDash/internal/modules/realtime/infrastructure"
	realtime "mesaYaDash/internal/modules/realtime/interface"
	reservations "mesaYaDash/internal/modules/reservations/interface"
	settings "mesaYaDash/internal/modules/settings/interface"
	system "mesaYaDash/internal/modules/system/interface"
	tables "mesaYaDash/internal/modules/tables/interface"
	waitlist "mesaYaDash/internal/modules/waitlist/interface"
	"mesaYaDash/internal/platform/broker"
	"mesaYaDash/internal/platform/querycache"
	"mesaYaDash/internal/shared/auth"
	"mesaYaDash/internal/shared/logging"
)

func main() {
	// Attempt to load variables from .env so local runs honour configuration tweaks.
	if err := godotenv.Overload(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	logFile, logger, err := logging.Open(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: true,
		Directory: cfg.Logging.Directory,
	}, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging setup error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	slog.SetDefault(logger)
	slog.Info("logging initialized", slog.String("directory", cfg.Logging.Directory), slog.String("level", cfg.Logging.Level), slog.String("format", cfg.Logging.Format))
	slog.Info("kafka config resolved", slog.Any("brokers", cfg.Kafka.Brokers), slog.String("group", cfg.Kafka.GroupID), slog.Any("topics", cfg.Kafka.TopicList()))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	services, err := app.NewServices(cfg, reg)
	if err != nil {
		slog.Error("services setup failed", slog.Any("error", err))
		os.Exit(1)
	}

	// JWT validator for the tokens issued by the backend auth service
	validator, err := auth.NewJWTValidator(cfg.Security.JWTSecret, cfg.Security.JWTPublicKey)
	if err != nil {
		slog.Error("jwt validator setup failed", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := infrastructure.NewHub()
	usecase.NewCacheBridge(services.Cache, hub).Start(ctx)

	// Registrar un handler por tópico configurado
	registry := infrastructure.NewHandlerRegistry()
	for entity, topics := range cfg.Kafka.Topics {
		for _, topic := range topics {
			registry.Register(handler.NewEntityStreamHandler(entity, topic, cfg.Websocket.AllowedActions, services.Cache))
		}
	}
	consumers := broker.StartKafkaConsumers(ctx, registry, cfg.Kafka.Brokers, cfg.Kafka.GroupID)

	go collectGarbage(ctx, services.Cache, cfg.Cache.GCInterval, cfg.Cache.MaxIdle)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{"status": "ok", "clients": hub.Clients()})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	api := e.Group("/api/dashboard", auth.Middleware(validator))
	tables.NewHandler(services.Tables).Register(api)
	reservations.NewHandler(services.Reservations).Register(api)
	customers.NewHandler(services.Customers).Register(api)
	waitlist.NewHandler(services.Waitlist).Register(api)
	settings.NewHandler(services.Settings).Register(api)
	system.NewHandler(services.System).Register(api)
	messaging.NewHandler(services.Messaging).Register(api)

	e.GET("/ws/dashboard", realtime.NewWebsocketHandler(hub, cfg.Websocket.SendBuffer), auth.Middleware(validator))

	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server stopped", slog.Any("error", err))
		}
	}()

	// Esperar señales
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Warn("http shutdown", slog.Any("error", err))
	}
	cancel()
	hub.Close()
	consumers.Wait()
}

// collectGarbage drops cache entries nobody read for maxIdle.
func collectGarbage(ctx context.Context, cache *querycache.Cache, every, maxIdle time.Duration) {
	if every <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := cache.Prune(maxIdle); n > 0 {
				slog.Debug("cache pruned", slog.Int("entries", n))
			}
		}
	}
}
