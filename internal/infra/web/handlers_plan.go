// File: internal/infra/web/handlers_plan.go
package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"alertpe-admin/internal/domain/model"
	"alertpe-admin/internal/usecase"
)

type planRequest struct {
	Name         string   `json:"name"`
	MonthlyPrice int64    `json:"monthlyPrice"`
	YearlyPrice  int64    `json:"yearlyPrice"`
	Duration     string   `json:"duration"`
	Features     []string `json:"features"`
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := s.planUC.List(r.Context())
	if err != nil {
		respondDomainErr(w, err)
		return
	}
	views := make([]planView, 0, len(plans))
	for _, p := range plans {
		views = append(views, toPlanView(p))
	}
	respondOK(w, http.StatusOK, map[string]any{"plans": views})
}

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	plan, err := s.planUC.Create(r.Context(), usecase.PlanInput{
		Name:         req.Name,
		MonthlyPrice: req.MonthlyPrice,
		YearlyPrice:  req.YearlyPrice,
		Duration:     req.Duration,
		Features:     req.Features,
	})
	if err != nil {
		respondDomainErr(w, err)
		return
	}
	respondOK(w, http.StatusCreated, map[string]any{"plan": toPlanView(plan)})
}

func (s *Server) handleUpdatePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	plan, err := s.planUC.Update(r.Context(), model.PlanID(chi.URLParam(r, "id")), usecase.PlanInput{
		Name:         req.Name,
		MonthlyPrice: req.MonthlyPrice,
		YearlyPrice:  req.YearlyPrice,
		Duration:     req.Duration,
		Features:     req.Features,
	})
	if err != nil {
		respondDomainErr(w, err)
		return
	}
	respondOK(w, http.StatusOK, map[string]any{"plan": toPlanView(plan)})
}

func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	if err := s.planUC.Delete(r.Context(), model.PlanID(chi.URLParam(r, "id"))); err != nil {
		respondDomainErr(w, err)
		return
	}
	respondOK(w, http.StatusOK, nil)
}
