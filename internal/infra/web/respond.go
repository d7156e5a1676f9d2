// File: internal/infra/web/respond.go
package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"alertpe-admin/internal/domain"
)

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// parsePage reads offset/limit query params with sane defaults.
func parsePage(r *http.Request) (offset, limit int) {
	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = 50
	}
	return offset, limit
}

// Every JSON response carries a success flag; the mobile app branches on it
// rather than on status codes.

func respondJSON(w http.ResponseWriter, status int, payload map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondOK(w http.ResponseWriter, status int, fields map[string]any) {
	out := map[string]any{"success": true}
	for k, v := range fields {
		out[k] = v
	}
	respondJSON(w, status, out)
}

func respondErr(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]any{"success": false, "error": msg})
}

// respondDomainErr maps the error taxonomy: validation/duplicate 400,
// missing entities 404, everything else a generic 500.
func respondDomainErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrDuplicatePayment):
		respondErr(w, http.StatusBadRequest, "Duplicate payment detected")
	case errors.Is(err, domain.ErrMissingFields),
		errors.Is(err, domain.ErrInvalidUPIID),
		errors.Is(err, domain.ErrInvalidArgument),
		errors.Is(err, domain.ErrAlreadySubscribed),
		errors.Is(err, domain.ErrTrialDisabled):
		respondErr(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrBadSignature):
		respondErr(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrPlanNotFound),
		errors.Is(err, domain.ErrMandateNotFound),
		errors.Is(err, domain.ErrNoSubscription):
		respondErr(w, http.StatusNotFound, err.Error())
	default:
		respondErr(w, http.StatusInternalServerError, "Internal server error")
	}
}
