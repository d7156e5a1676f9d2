// File: internal/infra/web/server.go
package web

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"alertpe-admin/internal/infra/logging"
	"alertpe-admin/internal/infra/metrics"
	"alertpe-admin/internal/usecase"
)

// RateLimiter is what the ingest path needs from the Redis limiter. A nil
// limiter disables rate limiting (dev, tests).
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

type ServerConfig struct {
	PublicURL  string
	RateLimit  int
	RateWindow time.Duration
	Dev        bool
}

type Server struct {
	paymentUC usecase.PaymentUseCase
	subUC     usecase.SubscriptionUseCase
	mandateUC usecase.MandateUseCase
	webhookUC usecase.WebhookUseCase
	sweepUC   usecase.SweepUseCase
	statsUC   usecase.StatsUseCase
	userUC    usecase.UserUseCase
	planUC    usecase.PlanUseCase
	qrUC      usecase.QRUseCase
	upiAppUC  usecase.UpiAppUseCase

	auth    *AuthManager
	limiter RateLimiter
	cfg     ServerConfig

	adminSecret string
	log         *zerolog.Logger
}

func NewServer(
	paymentUC usecase.PaymentUseCase,
	subUC usecase.SubscriptionUseCase,
	mandateUC usecase.MandateUseCase,
	webhookUC usecase.WebhookUseCase,
	sweepUC usecase.SweepUseCase,
	statsUC usecase.StatsUseCase,
	userUC usecase.UserUseCase,
	planUC usecase.PlanUseCase,
	qrUC usecase.QRUseCase,
	upiAppUC usecase.UpiAppUseCase,
	auth *AuthManager,
	limiter RateLimiter,
	adminSecret string,
	cfg ServerConfig,
	logger *zerolog.Logger,
) *Server {
	l := logger.With().Str("component", "Web").Logger()
	return &Server{
		paymentUC:   paymentUC,
		subUC:       subUC,
		mandateUC:   mandateUC,
		webhookUC:   webhookUC,
		sweepUC:     sweepUC,
		statsUC:     statsUC,
		userUC:      userUC,
		planUC:      planUC,
		qrUC:        qrUC,
		upiAppUC:    upiAppUC,
		auth:        auth,
		limiter:     limiter,
		cfg:         cfg,
		adminSecret: adminSecret,
		log:         &l,
	}
}

// Router wires every route. App-facing endpoints are unauthenticated (the
// mobile client has no session); dashboard endpoints sit behind the admin
// session middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(s.observe)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondOK(w, http.StatusOK, map[string]any{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Mobile app surface
	r.Post("/payments", s.handleIngestPayment)
	r.Get("/payments", s.handleListPayments)
	r.Post("/users", s.handleRegisterUser)
	r.Post("/subscription/start-trial", s.handleStartTrial)
	r.Post("/subscription/create", s.handleCreateSubscription)
	r.Post("/subscription/cancel", s.handleCancelSubscription)
	r.Post("/subscription/downgrade", s.handleDowngradeSubscription)
	r.Get("/subscription/status", s.handleSubscriptionStatus)
	r.Post("/qr", s.handleCreateQRCode)
	r.Get("/qr", s.handleListQRCodes)
	r.Get("/upi-apps", s.handleListUpiApps)

	// Gateway surface
	r.Post("/razorpay/create-mandate", s.handleCreateMandate)
	r.Get("/razorpay/mandate-callback", s.handleMandateCallback)
	r.Post("/razorpay/create-subscription", s.handleCreateGatewaySubscription)
	r.Post("/razorpay/cancel-subscription", s.handleCancelGatewaySubscription)
	r.Post("/razorpay/webhook", s.handleWebhook)
	r.Post("/razorpay/mock-webhook", s.handleMockWebhook)

	// External cron trigger
	r.Post("/scheduler/run", s.handleSchedulerRun)

	// Admin session
	r.Post("/admin/login", s.handleAdminLogin)
	r.Post("/admin/logout", s.handleAdminLogout)

	// Dashboard
	r.Group(func(r chi.Router) {
		r.Use(s.requireAdmin)
		r.Get("/stats", s.handleStats)
		r.Get("/users", s.handleListUsers)
		r.Get("/users/{id}", s.handleGetUser)
		r.Get("/users/{id}/timeline", s.handleUserTimeline)
		r.Post("/timeline/add", s.handleAddTimelineEvent)
		r.Get("/subscriptions", s.handleListSubscriptions)
		r.Get("/mandates", s.handleListMandates)
		r.Get("/webhook-logs", s.handleListWebhookLogs)
		r.Get("/reminders", s.handleListReminders)
		r.Delete("/payments", s.handleDeletePayments)
		r.Post("/payments/cleanup", s.handleCleanupPayments)
		r.Get("/plans", s.handleListPlans)
		r.Post("/plans", s.handleCreatePlan)
		r.Put("/plans/{id}", s.handleUpdatePlan)
		r.Delete("/plans/{id}", s.handleDeletePlan)
		r.Post("/upi-apps", s.handleCreateUpiApp)
	})

	return r
}

func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.auth == nil {
			respondErr(w, http.StatusForbidden, "admin auth is not configured")
			return
		}
		if _, err := s.auth.ParseFromRequest(r); err != nil {
			respondErr(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// observe logs each request and records the latency histogram.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		ctx := logging.WithRequestID(r.Context(), chimw.GetReqID(r.Context()))
		next.ServeHTTP(ww, r.WithContext(ctx))

		elapsed := time.Since(start)
		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		metrics.ObserveHTTP(route, r.Method, strconv.Itoa(ww.Status()), float64(elapsed.Milliseconds()))
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", elapsed).
			Msg("request")
	})
}

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Secret string `json:"secret"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Secret == "" {
		respondErr(w, http.StatusBadRequest, "secret is required")
		return
	}
	if s.adminSecret == "" || req.Secret != s.adminSecret {
		respondErr(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	token, err := s.auth.Mint(w)
	if err != nil {
		respondErr(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondOK(w, http.StatusOK, map[string]any{"token": token})
}

func (s *Server) handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	if s.auth != nil {
		s.auth.Clear(w)
	}
	respondOK(w, http.StatusOK, nil)
}
