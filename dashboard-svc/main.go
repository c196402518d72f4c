package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jollof-hub/config"
	httpapi "jollof-hub/dashboard-svc/internal/api/http"
	"jollof-hub/dashboard-svc/internal/service"
	"jollof-hub/dashboard-svc/internal/storage"
	"jollof-hub/logger"

	"github.com/shopspring/decimal"
)

const (
	serviceName   = "dashboard-svc"
	consumerGroup = "dashboard-svc-consumer"
	counterTTL    = 8 * 24 * time.Hour
)

func main() {
	decimal.MarshalJSONWithoutQuotes = true

	log := logger.NewLogger(serviceName)
	cfg := config.Load(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db := config.MustInitPostgres(log)
	defer db.Close()

	rdb := config.MustInitRedis(log)
	defer rdb.Close()

	store := storage.NewStore(db, rdb, counterTTL, cfg.Location())
	hub := service.NewHub()

	reader := config.NewKafkaReader(cfg.OrdersTopic, consumerGroup)
	consumer := service.NewConsumer(reader, store, hub, log)
	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		consumer.Start(ctx)
	}()

	handler := httpapi.NewHandler(hub, store, log)
	srv := httpapi.NewServer(cfg.DashboardAddr, httpapi.NewRouter(handler, cfg.AllowedOrigins))
	// Event streams end when ctx is cancelled.
	srv.BaseContext = func(net.Listener) context.Context { return ctx }

	go func() {
		log.Info(ctx, "startup", "Dashboard Service starting", slog.String("addr", cfg.DashboardAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "startup", "server stopped", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "shutdown", "graceful shutdown failed", err)
		srv.Close()
	}
	if err := reader.Close(); err != nil {
		log.Error(shutdownCtx, "shutdown", "failed to close kafka reader", err)
	}
	<-consumerDone
	log.Info(shutdownCtx, "shutdown", "Dashboard Service stopped")
}
