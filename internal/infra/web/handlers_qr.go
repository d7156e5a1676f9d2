// File: internal/infra/web/handlers_qr.go
package web

import (
	"net/http"

	"alertpe-admin/internal/domain/model"
	"alertpe-admin/internal/usecase"
)

func (s *Server) handleCreateQRCode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"userId"`
		UpiID  string `json:"upiId"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	code, err := s.qrUC.Create(r.Context(), model.UserID(req.UserID), req.UpiID)
	if err != nil {
		respondDomainErr(w, err)
		return
	}
	respondOK(w, http.StatusCreated, map[string]any{"qrCode": toQRCodeView(code)})
}

// handleListQRCodes lists a user's recent codes; userId=all is the dashboard
// view across every user.
func (s *Server) handleListQRCodes(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		respondErr(w, http.StatusBadRequest, "userId is required")
		return
	}

	var (
		codes []*model.QRCode
		err   error
	)
	if userID == "all" {
		codes, err = s.qrUC.ListAll(r.Context(), 0)
	} else {
		codes, err = s.qrUC.ListByUser(r.Context(), model.UserID(userID), 0)
	}
	if err != nil {
		respondDomainErr(w, err)
		return
	}
	respondOK(w, http.StatusOK, map[string]any{"qrCodes": toQRCodeViews(codes)})
}

func (s *Server) handleListUpiApps(w http.ResponseWriter, r *http.Request) {
	apps, err := s.upiAppUC.List(r.Context())
	if err != nil {
		respondDomainErr(w, err)
		return
	}
	respondOK(w, http.StatusOK, map[string]any{"upiApps": toUpiAppViews(apps)})
}

func (s *Server) handleCreateUpiApp(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		PackageName string `json:"packageName"`
		Icon        string `json:"icon"`
		Priority    int    `json:"priority"`
		Active      *bool  `json:"isActive"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	app, err := s.upiAppUC.Create(r.Context(), usecase.UpiAppInput{
		Name:        req.Name,
		PackageName: req.PackageName,
		Icon:        req.Icon,
		Priority:    req.Priority,
		Active:      req.Active,
	})
	if err != nil {
		respondDomainErr(w, err)
		return
	}
	respondOK(w, http.StatusCreated, map[string]any{"upiApp": toUpiAppViews([]*model.UpiApp{app})[0]})
}
