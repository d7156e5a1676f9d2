// File: internal/infra/web/handlers_subscription.go
package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"alertpe-admin/internal/domain/model"
	"alertpe-admin/internal/usecase"
)

type subscriptionRequest struct {
	UserID    string `json:"userId"`
	PlanID    string `json:"planId"`
	Reason    string `json:"reason"`
	TrialDays int    `json:"trialDays"`
}

func (s *Server) handleStartTrial(w http.ResponseWriter, r *http.Request) {
	var req subscriptionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	sub, err := s.subUC.StartTrial(r.Context(), model.UserID(req.UserID), model.PlanID(req.PlanID), req.TrialDays)
	if err != nil {
		respondDomainErr(w, err)
		return
	}
	respondOK(w, http.StatusCreated, map[string]any{"subscription": toSubscriptionView(sub)})
}

func (s *Server) handleCreateSubscription(w http.ResponseWriter, r *http.Request) {
	var req subscriptionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	sub, err := s.subUC.Create(r.Context(), model.UserID(req.UserID), model.PlanID(req.PlanID))
	if err != nil {
		respondDomainErr(w, err)
		return
	}
	respondOK(w, http.StatusCreated, map[string]any{"subscription": toSubscriptionView(sub)})
}

func (s *Server) handleCancelSubscription(w http.ResponseWriter, r *http.Request) {
	var req subscriptionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	reason := req.Reason
	if reason == "" {
		reason = "cancelled by user"
	}
	sub, err := s.subUC.Cancel(r.Context(), model.UserID(req.UserID), reason)
	if err != nil {
		respondDomainErr(w, err)
		return
	}
	respondOK(w, http.StatusOK, map[string]any{"subscription": toSubscriptionView(sub)})
}

func (s *Server) handleDowngradeSubscription(w http.ResponseWriter, r *http.Request) {
	var req subscriptionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	sub, err := s.subUC.Downgrade(r.Context(), model.UserID(req.UserID))
	if err != nil {
		respondDomainErr(w, err)
		return
	}
	respondOK(w, http.StatusOK, map[string]any{"subscription": toSubscriptionView(sub)})
}

func (s *Server) handleSubscriptionStatus(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		respondErr(w, http.StatusBadRequest, "userId is required")
		return
	}
	view, err := s.subUC.Status(r.Context(), model.UserID(userID))
	if err != nil {
		respondDomainErr(w, err)
		return
	}
	out := map[string]any{
		"hasSubscription": view.HasSubscription,
		"daysRemaining":   view.DaysRemaining,
	}
	if view.Subscription != nil {
		out["subscription"] = toSubscriptionView(view.Subscription)
	}
	if view.Plan != nil {
		out["plan"] = toPlanView(view.Plan)
	}
	if view.Mandate != nil {
		out["mandate"] = toMandateView(view.Mandate)
	}
	respondOK(w, http.StatusOK, out)
}

func (s *Server) handleListSubscriptions(w http.ResponseWriter, r *http.Request) {
	offset, limit := parsePage(r)
	subs, err := s.subUC.List(r.Context(), offset, limit)
	if err != nil {
		respondDomainErr(w, err)
		return
	}
	respondOK(w, http.StatusOK, map[string]any{"subscriptions": toSubscriptionViews(subs)})
}

func (s *Server) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Mobile   string `json:"mobile"`
		DeviceID string `json:"deviceId"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	user, err := s.userUC.Register(r.Context(), usecase.RegisterUserInput{
		Username: req.Username,
		Email:    req.Email,
		Mobile:   req.Mobile,
		DeviceID: req.DeviceID,
	})
	if err != nil {
		respondDomainErr(w, err)
		return
	}
	respondOK(w, http.StatusCreated, map[string]any{"user": toUserView(user)})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	offset, limit := parsePage(r)
	users, err := s.userUC.List(r.Context(), offset, limit)
	if err != nil {
		respondDomainErr(w, err)
		return
	}
	respondOK(w, http.StatusOK, map[string]any{"users": toUserViews(users)})
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user, err := s.userUC.Get(r.Context(), model.UserID(id))
	if err != nil {
		respondDomainErr(w, err)
		return
	}
	out := map[string]any{"user": toUserView(user)}
	if view, err := s.subUC.Status(r.Context(), user.ID); err == nil && view.Subscription != nil {
		out["subscription"] = toSubscriptionView(view.Subscription)
	}
	respondOK(w, http.StatusOK, out)
}

func (s *Server) handleUserTimeline(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	_, limit := parsePage(r)
	events, err := s.userUC.Timeline(r.Context(), model.UserID(id), limit)
	if err != nil {
		respondDomainErr(w, err)
		return
	}
	respondOK(w, http.StatusOK, map[string]any{"timeline": toTimelineViews(events)})
}

func (s *Server) handleAddTimelineEvent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID      string         `json:"userId"`
		EventType   string         `json:"eventType"`
		Title       string         `json:"title"`
		Description string         `json:"description"`
		Metadata    map[string]any `json:"metadata"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	e, err := s.userUC.AddTimelineEvent(r.Context(), model.UserID(req.UserID), req.EventType, req.Title, req.Description, req.Metadata)
	if err != nil {
		respondDomainErr(w, err)
		return
	}
	respondOK(w, http.StatusCreated, map[string]any{"event": toTimelineViews([]*model.TimelineEvent{e})[0]})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.statsUC.Dashboard(r.Context())
	if err != nil {
		respondDomainErr(w, err)
		return
	}
	respondOK(w, http.StatusOK, map[string]any{"stats": stats})
}
