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

	"jollof-hub/api-gateway/internal/gateway"
	"jollof-hub/config"
	"jollof-hub/logger"

	"github.com/rs/cors"
)

func main() {
	log := logger.NewLogger("api-gateway")
	cfg := config.Load(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gw := gateway.NewGateway(gateway.Config{
		StorefrontSvcURL: cfg.StorefrontSvcURL,
		DashboardSvcURL:  cfg.DashboardSvcURL,
		StaticDir:        cfg.StaticDir,
	}, &http.Client{}, log)

	r := gw.SetupRoutes()

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Admin-Key", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              cfg.GatewayAddr,
		Handler:           c.Handler(r),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		log.Info(ctx, "startup", "API Gateway starting", slog.String("addr", cfg.GatewayAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "startup", "server stopped", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		srv.Close()
	}
}
