// File: internal/infra/web/handlers_payment.go
package web

import (
	"net/http"

	"alertpe-admin/internal/domain"
	"alertpe-admin/internal/domain/model"
	"alertpe-admin/internal/infra/logging"
	"alertpe-admin/internal/infra/metrics"
	redisinfra "alertpe-admin/internal/infra/redis"
	"alertpe-admin/internal/usecase"

	"errors"
)

type ingestRequest struct {
	UserID           string `json:"userId"`
	Amount           string `json:"amount"`
	PaymentApp       string `json:"paymentApp"`
	UpiID            string `json:"upiId"`
	TransactionID    string `json:"transactionId"`
	NotificationText string `json:"notificationText"`
}

func (s *Server) handleIngestPayment(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if s.limiter != nil && req.UserID != "" {
		ok, err := s.limiter.Allow(r.Context(), redisinfra.IngestKey(req.UserID), s.cfg.RateLimit, s.cfg.RateWindow)
		if err != nil {
			// Limiter outage never blocks ingest.
			s.log.Warn().Err(err).Msg("rate limiter unavailable")
		} else if !ok {
			metrics.IncPaymentIngested("rate_limited")
			respondErr(w, http.StatusTooManyRequests, "Too many payment reports")
			return
		}
	}

	p, err := s.paymentUC.Ingest(r.Context(), usecase.IngestInput{
		UserID:           model.UserID(req.UserID),
		Amount:           req.Amount,
		PaymentApp:       req.PaymentApp,
		UpiID:            req.UpiID,
		TransactionID:    req.TransactionID,
		NotificationText: req.NotificationText,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicatePayment):
			metrics.IncPaymentIngested("duplicate")
		case errors.Is(err, domain.ErrMissingFields), errors.Is(err, domain.ErrInvalidUPIID):
			metrics.IncPaymentIngested("invalid")
		}
		respondDomainErr(w, err)
		return
	}

	metrics.IncPaymentIngested("recorded")
	s.log.Info().
		Str("user_id", req.UserID).
		Str("upi_id", logging.Redact(req.UpiID, s.cfg.Dev)).
		Msg("payment ingested")
	respondOK(w, http.StatusCreated, map[string]any{"payment": toPaymentView(p)})
}

// handleListPayments serves both the app history (userId given) and the
// admin listing (no userId).
func (s *Server) handleListPayments(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		offset, limit := parsePage(r)
		payments, err := s.paymentUC.ListAll(r.Context(), offset, limit)
		if err != nil {
			respondDomainErr(w, err)
			return
		}
		respondOK(w, http.StatusOK, map[string]any{"payments": toPaymentViews(payments)})
		return
	}

	filter := r.URL.Query().Get("filter")
	if filter == "" {
		filter = "today"
	}
	_, limit := parsePage(r)
	payments, err := s.paymentUC.ListByUser(r.Context(), model.UserID(userID), filter, limit)
	if err != nil {
		respondDomainErr(w, err)
		return
	}
	respondOK(w, http.StatusOK, map[string]any{"payments": toPaymentViews(payments)})
}

func (s *Server) handleDeletePayments(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []string `json:"ids"`
	}
	if err := decodeJSON(r, &req); err != nil || len(req.IDs) == 0 {
		respondErr(w, http.StatusBadRequest, "ids are required")
		return
	}
	ids := make([]model.PaymentID, 0, len(req.IDs))
	for _, id := range req.IDs {
		ids = append(ids, model.PaymentID(id))
	}
	n, err := s.paymentUC.Delete(r.Context(), ids...)
	if err != nil {
		respondDomainErr(w, err)
		return
	}
	respondOK(w, http.StatusOK, map[string]any{"deleted": n})
}

func (s *Server) handleCleanupPayments(w http.ResponseWriter, r *http.Request) {
	removed, err := s.paymentUC.CleanupDuplicates(r.Context())
	if err != nil {
		respondDomainErr(w, err)
		return
	}
	respondOK(w, http.StatusOK, map[string]any{"removed": removed})
}
