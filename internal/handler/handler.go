// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/weddingwander/weddingwander/internal/model"
	"github.com/weddingwander/weddingwander/internal/repository"
	"github.com/weddingwander/weddingwander/internal/service"
)

// WeddingHandler holds the catalog and ledger HTTP handlers.
type WeddingHandler struct {
	catalog *service.Catalog
	ledger  *service.Ledger
}

// NewWeddingHandler constructs a WeddingHandler.
func NewWeddingHandler(catalog *service.Catalog, ledger *service.Ledger) *WeddingHandler {
	return &WeddingHandler{catalog: catalog, ledger: ledger}
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeServiceError maps domain errors to HTTP statuses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs service.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "validation failed", Fields: verrs.Fields()})
	case errors.Is(err, service.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "wedding not found")
	case errors.Is(err, service.ErrRegistrationNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrAlreadyRegistered),
		errors.Is(err, service.ErrCapacityExceeded),
		errors.Is(err, service.ErrAlreadyCanceled),
		errors.Is(err, service.ErrAccountExists):
		writeError(w, http.StatusConflict, err.Error())
	default:
		logrus.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).WithError(err).Error("request failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// filterFromQuery reads the catalog predicates from the query string.
func filterFromQuery(r *http.Request) (model.Filter, error) {
	q := r.URL.Query()
	f := model.Filter{
		Search:  strings.TrimSpace(q.Get("search")),
		Country: strings.TrimSpace(q.Get("country")),
	}
	var verrs service.ValidationErrors
	for _, p := range []struct {
		name string
		dst  *model.Date
	}{
		{"fromDate", &f.FromDate},
		{"toDate", &f.ToDate},
	} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		d, err := model.ParseDate(raw)
		if err != nil {
			verrs = append(verrs, service.FieldError{Field: p.name, Message: "must be a date formatted YYYY-MM-DD"})
			continue
		}
		*p.dst = d
	}
	if len(verrs) > 0 {
		return f, verrs
	}
	return f, nil
}

// ─── Catalog ──────────────────────────────────────────────────────────────────

// ListWeddings handles GET /weddings
// Returns the weddings matching the optional search, country, fromDate and
// toDate query parameters.
func (h *WeddingHandler) ListWeddings(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	events, err := h.catalog.Filter(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// ListCountries handles GET /weddings/countries
func (h *WeddingHandler) ListCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.catalog.Countries(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, countries)
}

// GetWedding handles GET /weddings/{id}
func (h *WeddingHandler) GetWedding(w http.ResponseWriter, r *http.Request) {
	event, err := h.catalog.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// ─── Ledger ───────────────────────────────────────────────────────────────────

// Register handles POST /weddings/{id}/register
func (h *WeddingHandler) Register(w http.ResponseWriter, r *http.Request) {
	account := accountFrom(r.Context())

	var req model.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	reg, err := h.ledger.Register(r.Context(), account.ID, chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, reg)
}

// CancelRegistration handles POST /registrations/{id}/cancel
func (h *WeddingHandler) CancelRegistration(w http.ResponseWriter, r *http.Request) {
	account := accountFrom(r.Context())

	reg, err := h.ledger.Cancel(r.Context(), account.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reg)
}

// MyRegistrations handles GET /me/registrations
func (h *WeddingHandler) MyRegistrations(w http.ResponseWriter, r *http.Request) {
	regs, err := h.ledger.ListForUser(r.Context(), accountFrom(r.Context()).ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, regs)
}

// Dashboard handles GET /me/dashboard
func (h *WeddingHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.ledger.Dashboard(r.Context(), accountFrom(r.Context()).ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
