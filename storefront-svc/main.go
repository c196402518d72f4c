package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jollof-hub/config"
	"jollof-hub/logger"
	httpapi "jollof-hub/storefront-svc/internal/api/http"
	"jollof-hub/storefront-svc/internal/auth"
	"jollof-hub/storefront-svc/internal/service"
	"jollof-hub/storefront-svc/internal/storage"

	"github.com/shopspring/decimal"
)

const (
	serviceName  = "storefront-svc"
	fromName     = "Ghana Jollof Hub"
	qrCodeSize   = 256
	shutdownWait = 15 * time.Second
)

func main() {
	decimal.MarshalJSONWithoutQuotes = true

	log := logger.NewLogger(serviceName)
	cfg := config.Load(log)
	ctx := context.Background()

	db := config.MustInitPostgres(log)
	defer db.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Error(ctx, "startup", "failed to ensure schema", err)
		os.Exit(1)
	}

	rdb := config.MustInitRedis(log)
	defer rdb.Close()
	cache := storage.NewRedisCache(rdb, cfg.CacheTTL)

	broadcaster := storage.NewKafkaBroadcaster(func() storage.MessageWriter {
		return config.NewKafkaWriter(cfg.OrdersTopic)
	})
	defer broadcaster.Close()

	notifier := newNotifier(cfg)
	if notifier == nil {
		log.Warn(ctx, "startup", "EMAIL_SERVER_HOST not set, reservation emails are disabled")
	}

	loc := cfg.Location()
	dispatcher := service.NewDispatcher(cfg.NotifyTimeout, log)
	qr := service.DefaultQRGenerator{BaseURL: cfg.PublicBaseURL, Size: qrCodeSize}

	handler := httpapi.NewHandler(httpapi.Services{
		Orders:       service.NewOrderService(repo, repo, broadcaster, dispatcher, cache, qr, log),
		Reservations: service.NewReservationService(repo, repo, notifierOrNil(notifier), dispatcher, loc, log),
		Menu:         service.NewMenuService(repo, cache, log),
		Users:        service.NewUserService(repo, repo),
		Analytics:    service.NewAnalyticsService(repo, cache, loc, log),
		Contact:      service.NewContactService(notifierOrNil(notifier), dispatcher, cfg.ContactInbox, log),
	}, auth.NewSessionVerifier(cfg.JWTSecret), auth.NewAdminGuard(cfg.AdminKeyHash), log)

	if cfg.JWTSecret == "" {
		log.Warn(ctx, "startup", "JWT_SECRET not set, every request is anonymous")
	}
	if cfg.AdminKeyHash == "" {
		log.Warn(ctx, "startup", "ADMIN_KEY_HASH not set, admin routes are open")
	}

	srv := httpapi.NewServer(cfg.StorefrontAddr, httpapi.NewRouter(handler, cfg.AllowedOrigins, log))

	go func() {
		log.Info(ctx, "startup", "Storefront Service starting", slog.String("addr", cfg.StorefrontAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "startup", "server stopped", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownWait)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "shutdown", "graceful shutdown failed", err)
	}
	dispatcher.Wait()
	log.Info(ctx, "shutdown", "Storefront Service stopped")
}

// newNotifier returns nil when no SMTP host is configured.
func newNotifier(cfg config.Settings) *storage.SMTPMailer {
	if cfg.SMTPHost == "" {
		return nil
	}
	return &storage.SMTPMailer{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		FromName: fromName,
		From:     cfg.EmailFrom,
	}
}

// notifierOrNil keeps a nil mailer from turning into a non-nil interface.
func notifierOrNil(m *storage.SMTPMailer) service.Notifier {
	if m == nil {
		return nil
	}
	return m
}
