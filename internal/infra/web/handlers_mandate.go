// File: internal/infra/web/handlers_mandate.go
package web

import (
	"encoding/json"
	"io"
	"net/http"

	"alertpe-admin/internal/domain/model"
	"alertpe-admin/internal/infra/metrics"
)

func (s *Server) handleCreateMandate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"userId"`
		PlanID string `json:"planId"`
		Amount int64  `json:"amount"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	view, err := s.mandateUC.CreateMandate(r.Context(), model.UserID(req.UserID), model.PlanID(req.PlanID), req.Amount)
	if err != nil {
		respondDomainErr(w, err)
		return
	}
	respondOK(w, http.StatusCreated, map[string]any{
		"mandate":      toMandateView(view.Mandate),
		"upiIntentUrl": view.UPIIntentURL,
		"browserUrl":   view.BrowserURL,
	})
}

// handleMandateCallback is the gateway redirect target after the approval
// screen. It answers with a redirect to the app's success/error page, never
// an API error: the user is in a browser here.
func (s *Server) handleMandateCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	paymentID := q.Get("razorpay_payment_id")
	paymentLinkID := q.Get("razorpay_payment_link_id")
	linkStatus := q.Get("razorpay_payment_link_status")

	dest := s.cfg.PublicURL + "/mandate/success"
	if _, err := s.mandateUC.HandleCallback(r.Context(), paymentLinkID, paymentID, linkStatus); err != nil {
		s.log.Warn().Err(err).Str("payment_link_id", paymentLinkID).Msg("mandate callback failed")
		dest = s.cfg.PublicURL + "/mandate/error"
	} else if linkStatus != "paid" {
		dest = s.cfg.PublicURL + "/mandate/error"
	}
	http.Redirect(w, r, dest, http.StatusFound)
}

func (s *Server) handleCreateGatewaySubscription(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"userId"`
		PlanID string `json:"planId"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	link, err := s.webhookUC.CreateGatewaySubscription(r.Context(), model.UserID(req.UserID), model.PlanID(req.PlanID))
	if err != nil {
		respondDomainErr(w, err)
		return
	}
	respondOK(w, http.StatusCreated, map[string]any{
		"gatewaySubscriptionId": link.GatewaySubscriptionID.String(),
		"paymentUrl":            link.PaymentURL,
		"upiIntentUrl":          link.UPIIntentURL,
	})
}

func (s *Server) handleCancelGatewaySubscription(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"userId"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.webhookUC.CancelGatewaySubscription(r.Context(), model.UserID(req.UserID)); err != nil {
		respondDomainErr(w, err)
		return
	}
	respondOK(w, http.StatusOK, nil)
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondErr(w, http.StatusBadRequest, "unreadable body")
		return
	}
	defer r.Body.Close()

	signature := r.Header.Get("X-Razorpay-Signature")
	if err := s.webhookUC.ProcessWebhook(r.Context(), body, signature); err != nil {
		metrics.IncWebhookEvent(eventTypeOf(body), "error")
		respondDomainErr(w, err)
		return
	}
	metrics.IncWebhookEvent(eventTypeOf(body), "applied")
	respondOK(w, http.StatusOK, nil)
}

func (s *Server) handleMockWebhook(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Event                 string `json:"event"`
		GatewaySubscriptionID string `json:"gatewaySubscriptionId"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	body, err := s.webhookUC.ProcessMockWebhook(r.Context(), req.Event, model.GatewaySubscriptionID(req.GatewaySubscriptionID))
	if err != nil {
		respondDomainErr(w, err)
		return
	}
	respondOK(w, http.StatusOK, map[string]any{"event": json.RawMessage(body)})
}

func (s *Server) handleListMandates(w http.ResponseWriter, r *http.Request) {
	if userID := r.URL.Query().Get("userId"); userID != "" {
		mandates, err := s.mandateUC.ListByUser(r.Context(), model.UserID(userID))
		if err != nil {
			respondDomainErr(w, err)
			return
		}
		respondOK(w, http.StatusOK, map[string]any{"mandates": toMandateViews(mandates)})
		return
	}
	offset, limit := parsePage(r)
	mandates, err := s.mandateUC.List(r.Context(), offset, limit)
	if err != nil {
		respondDomainErr(w, err)
		return
	}
	respondOK(w, http.StatusOK, map[string]any{"mandates": toMandateViews(mandates)})
}

func (s *Server) handleListWebhookLogs(w http.ResponseWriter, r *http.Request) {
	offset, limit := parsePage(r)
	logs, err := s.webhookUC.ListLogs(r.Context(), offset, limit)
	if err != nil {
		respondDomainErr(w, err)
		return
	}
	respondOK(w, http.StatusOK, map[string]any{"webhookLogs": toWebhookLogViews(logs)})
}

func (s *Server) handleListReminders(w http.ResponseWriter, r *http.Request) {
	offset, limit := parsePage(r)
	reminders, err := s.sweepUC.ListReminders(r.Context(), offset, limit)
	if err != nil {
		respondDomainErr(w, err)
		return
	}
	respondOK(w, http.StatusOK, map[string]any{"reminders": toReminderViews(reminders)})
}

func (s *Server) handleSchedulerRun(w http.ResponseWriter, r *http.Request) {
	res, err := s.sweepUC.Sweep(r.Context())
	if err != nil {
		respondDomainErr(w, err)
		return
	}
	metrics.SweepCompleted(res.ExpiredTrials, res.Renewed, res.RemindersCreated)
	respondOK(w, http.StatusOK, map[string]any{
		"processedCount":   res.ProcessedCount,
		"remindersCreated": res.RemindersCreated,
		"expiredTrials":    res.ExpiredTrials,
		"renewed":          res.Renewed,
	})
}

func eventTypeOf(body []byte) string {
	var env struct {
		Event string `json:"event"`
	}
	if err := json.Unmarshal(body, &env); err != nil || env.Event == "" {
		return "unknown"
	}
	return env.Event
}
