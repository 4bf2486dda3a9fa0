package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/saakhtemaan/internal/auth"
	"github.com/mmynk/saakhtemaan/internal/config"
	"github.com/mmynk/saakhtemaan/internal/events"
	"github.com/mmynk/saakhtemaan/internal/server"
	"github.com/mmynk/saakhtemaan/internal/storage/sqlite"
	"github.com/mmynk/saakhtemaan/internal/worker"
	"github.com/mmynk/saakhtemaan/pkg/logging"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	logger := logging.Setup()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.JWTSecret == config.DefaultJWTSecret {
		logger.Warn("Using the development JWT secret; set JWT_SECRET in production")
	}

	// Jalali labels are rendered in local time
	loc := cfg.Location()
	time.Local = loc

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}
	defer store.Close()
	logger.Info("Storage initialized", "database", cfg.DBPath)

	var publisher events.Publisher = events.NewLogPublisher(logger)
	if cfg.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			logger.Warn("Failed to connect to AMQP, events will only be logged", "error", err)
		} else {
			publisher = amqpPublisher
			logger.Info("AMQP publisher initialized", "exchange", cfg.AMQPExchange)
		}
	}
	defer publisher.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	staticDir := ""
	if cfg.StaticPath != "" {
		if staticDir, err = filepath.Abs(cfg.StaticPath); err != nil {
			return fmt.Errorf("resolve static path: %w", err)
		}
		logger.Info("Serving static files", "path", staticDir)
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	handler := server.NewHandler(server.Deps{
		Store:          store,
		Authenticator:  auth.NewPasswordAuthenticator(store, cfg.BcryptCost),
		JWT:            jwtManager,
		Publisher:      publisher,
		Registry:       registry,
		Logger:         logger,
		StaticDir:      staticDir,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	scheduler, err := worker.NewScheduler(store, cfg.OverdueSchedule, loc, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return scheduler.Run(ctx)
	})
	g.Go(func() error {
		addr := ":" + cfg.Port
		logger.Info("Connect server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
		return server.Serve(ctx, addr, handler)
	})

	err = g.Wait()
	logger.Info("Server stopped")
	return err
}
