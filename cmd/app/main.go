// File: cmd/app/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alertpe-admin/internal/config"
	"alertpe-admin/internal/domain/ports/adapter"
	pg "alertpe-admin/internal/infra/db/postgres"
	"alertpe-admin/internal/infra/logging"
	"alertpe-admin/internal/infra/metrics"
	"alertpe-admin/internal/infra/notify"
	payAdapters "alertpe-admin/internal/infra/payment"
	red "alertpe-admin/internal/infra/redis"
	"alertpe-admin/internal/infra/sched"
	"alertpe-admin/internal/infra/security"
	"alertpe-admin/internal/infra/web"
	"alertpe-admin/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (noop gateway, relaxed auth)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Warn().Msg("dev mode enabled")
	}
	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, cfg.Database.MaxConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres connect failed")
	}
	defer pool.Close()
	if err := pg.Migrate(ctx, pool); err != nil {
		logger.Fatal().Err(err).Msg("migrate failed")
	}
	txm := pg.NewTxManager(pool)

	// ---- Redis (optional; ingest degrades without it) ----
	var limiter web.RateLimiter
	var dedupe usecase.DedupeCache
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis connect failed")
		}
		defer redisClient.Close()
		limiter = red.NewRateLimiter(redisClient)
		dedupe = red.NewDedupeCache(redisClient, cfg.Ingest.DedupWindow)
	} else {
		logger.Warn().Msg("redis.url not set; rate limiting and dedup fast path disabled")
	}

	// ---- Encryption (optional; payments store plaintext without it) ----
	var encSvc *security.EncryptionService
	if cfg.Security.EncryptionKey != "" {
		if encSvc, err = security.NewEncryptionService(cfg.Security.EncryptionKey); err != nil {
			logger.Fatal().Err(err).Msg("encryption key invalid")
		}
	} else {
		logger.Warn().Msg("security.encryption_key not set; notification text stored in plaintext")
	}

	// ---- Repositories ----
	userRepo := pg.NewUserRepo(pool)
	planRepo := pg.NewPlanRepo(pool)
	subRepo := pg.NewSubscriptionRepo(pool)
	payRepo := pg.NewPaymentRepo(pool, encSvc)
	mandateRepo := pg.NewMandateRepo(pool)
	timelineRepo := pg.NewTimelineRepo(pool)
	reminderRepo := pg.NewReminderRepo(pool)
	webhookLogRepo := pg.NewWebhookLogRepo(pool)
	qrRepo := pg.NewQRRepo(pool)
	upiAppRepo := pg.NewUpiAppRepo(pool)

	// ---- Gateway ----
	var gateway adapter.PaymentGateway
	rz := cfg.Gateway.Razorpay
	if rz.KeyID != "" && rz.KeySecret != "" && !cfg.Runtime.Dev {
		gateway = payAdapters.NewRazorpayGateway(rz.KeyID, rz.KeySecret, rz.MerchantVPA, cfg.Server.PublicURL+"/razorpay/mandate-callback", rz.Sandbox)
	} else {
		logger.Warn().Msg("razorpay keys not configured; using noop gateway")
		gateway = payAdapters.NewNoopGateway(rz.MerchantVPA, cfg.Server.PublicURL)
	}
	var verifier usecase.WebhookVerifier
	if rz.WebhookSecret != "" {
		verifier = payAdapters.NewWebhookVerifier(rz.WebhookSecret)
	} else {
		logger.Warn().Msg("razorpay webhook_secret not set; webhook signatures are NOT verified")
	}

	notifier := notify.NewLogNotifier(logger)

	// ---- Use cases ----
	paymentUC := usecase.NewPaymentUseCase(payRepo, dedupe, cfg.Ingest.DedupWindow, 2*time.Minute, logger)
	subUC := usecase.NewSubscriptionUseCase(subRepo, planRepo, userRepo, mandateRepo, timelineRepo, txm, cfg.Trial.Enabled, cfg.Trial.DurationDays, logger)
	mandateUC := usecase.NewMandateUseCase(mandateRepo, subRepo, planRepo, userRepo, timelineRepo, txm, gateway, logger)
	webhookUC := usecase.NewWebhookUseCase(subRepo, planRepo, userRepo, timelineRepo, webhookLogRepo, txm, gateway, verifier, logger)
	sweepUC := usecase.NewSweepUseCase(subRepo, userRepo, timelineRepo, reminderRepo, txm, notifier, logger)
	statsUC := usecase.NewStatsUseCase(userRepo, payRepo, subRepo, logger)
	userUC := usecase.NewUserUseCase(userRepo, timelineRepo, txm, logger)
	planUC := usecase.NewPlanUseCase(planRepo, logger)
	qrUC := usecase.NewQRUseCase(qrRepo, logger)
	upiAppUC := usecase.NewUpiAppUseCase(upiAppRepo, logger)

	// ---- HTTP ----
	auth := web.NewAuthManager(cfg.Server.AdminSecret, !cfg.Runtime.Dev, "", 30*time.Minute)
	srv := web.NewServer(paymentUC, subUC, mandateUC, webhookUC, sweepUC, statsUC, userUC, planUC, qrUC, upiAppUC,
		auth, limiter, cfg.Server.AdminSecret,
		web.ServerConfig{
			PublicURL:  cfg.Server.PublicURL,
			RateLimit:  cfg.Ingest.RateLimit,
			RateWindow: cfg.Ingest.RateWindow,
			Dev:        cfg.Runtime.Dev,
		}, logger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("http listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Sweep worker (optional; POST /scheduler/run is always available) ----
	if cfg.Scheduler.SweepInterval > 0 {
		worker := sched.NewSweepWorker(sweepUC, cfg.Scheduler.SweepInterval, logger)
		go worker.Start(ctx)
	}

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = server.Shutdown(shutdownCtx)
}
