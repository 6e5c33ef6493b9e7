package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"hotel-pms/config"
	"hotel-pms/events"
	"hotel-pms/repository"
	"hotel-pms/repository/memstore"
	"hotel-pms/routes"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("couldn't load .env: %v", err)
	}

	port := pflag.String("port", "", "listen port (overrides PORT)")
	migrateOnly := pflag.Bool("migrate-only", false, "apply the schema and exit")
	seedDemo := pflag.Bool("seed-demo", false, "create a demo organization when none exists")
	pflag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *port != "" {
		cfg.Port = *port
	}

	logger, err := config.NewLogger(cfg.LogLevel, cfg.LogFormat, "hotel-pms")
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	store, closeStore, err := openStore(cfg, logger)
	if err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	defer closeStore()
	if *migrateOnly {
		logger.Info("migrations applied")
		return
	}

	if *seedDemo {
		if err := config.SeedDemo(context.Background(), store, logger); err != nil {
			logger.Fatal("demo seed failed", zap.Error(err))
		}
	}

	var pub events.Publisher = events.Nop{}
	if cfg.AMQPURL != "" {
		pub = events.NewAMQPPublisher(cfg.AMQPURL, cfg.EventsExchange, logger.Named("events"))
		logger.Info("publishing domain events", zap.String("exchange", cfg.EventsExchange))
	}

	rdb := config.NewRedisClient(cfg.Redis, logger)
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	router := routes.SetupRouter(cfg, routes.NewControllers(cfg, store, pub, logger), rdb, logger)

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", addr), zap.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		return
	}
	logger.Info("server stopped gracefully")
}

// openStore connects and migrates MySQL, or returns an empty in-memory store.
func openStore(cfg config.Config, logger *zap.Logger) (repository.Store, func(), error) {
	if cfg.StoreDriver == config.StoreMemory {
		logger.Warn("using in-memory store, data is lost on restart")
		return memstore.New(), func() {}, nil
	}
	db, err := config.ConnectDatabase(cfg.DB, logger, cfg.IsDev())
	if err != nil {
		return nil, nil, err
	}
	if err := config.Migrate(db); err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return repository.NewGormStore(db), closeFn, nil
}
