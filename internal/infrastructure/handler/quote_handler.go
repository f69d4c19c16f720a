package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shx/ptax-quote-service/internal/application/service"
	"github.com/shx/ptax-quote-service/internal/domain/entity"
	"github.com/shx/ptax-quote-service/internal/infrastructure/logger"
	"github.com/shx/ptax-quote-service/internal/infrastructure/middleware"
)

// QuoteHandler handles HTTP requests for quote lookups
type QuoteHandler struct {
	service *service.QuoteService
	logger  logger.Logger
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(service *service.QuoteService, log logger.Logger) *QuoteHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &QuoteHandler{
		service: service,
		logger:  log,
	}
}

// GetCurrent handles retrieving the current (most recent published) quote
func (h *QuoteHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	quote, err := h.service.GetCurrent(r.Context())
	if err != nil {
		h.sendError(w, err, requestID)
		return
	}

	h.sendJSON(w, http.StatusOK, toQuoteResponse(*quote))
}

// GetPeriod handles retrieving all quotes within a date range
func (h *QuoteHandler) GetPeriod(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	vars := mux.Vars(r)

	quotes, err := h.service.GetPeriod(r.Context(), vars["start"], vars["end"])
	if err != nil {
		h.sendError(w, err, requestID)
		return
	}

	h.sendJSON(w, http.StatusOK, toQuoteResponses(quotes))
}

// GetBelowCurrent handles retrieving the quotes in a range priced below the
// current quote
func (h *QuoteHandler) GetBelowCurrent(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	vars := mux.Vars(r)

	quotes, err := h.service.GetBelowCurrent(r.Context(), vars["start"], vars["end"])
	if err != nil {
		h.sendError(w, err, requestID)
		return
	}

	h.sendJSON(w, http.StatusOK, toQuoteResponses(quotes))
}

// GetAboveCurrent handles retrieving the quotes in a range priced above the
// current quote
func (h *QuoteHandler) GetAboveCurrent(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	vars := mux.Vars(r)

	quotes, err := h.service.GetAboveCurrent(r.Context(), vars["start"], vars["end"])
	if err != nil {
		h.sendError(w, err, requestID)
		return
	}

	h.sendJSON(w, http.StatusOK, toQuoteResponses(quotes))
}

// SavePeriod handles fetching a date range and persisting its quotes
func (h *QuoteHandler) SavePeriod(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	vars := mux.Vars(r)

	message, err := h.service.SavePeriod(r.Context(), vars["start"], vars["end"])
	if err != nil {
		h.sendError(w, err, requestID)
		return
	}

	h.sendJSON(w, http.StatusOK, StatusResponse{Message: message})
}

// GetSavedByDate handles retrieving a previously persisted quote by date
func (h *QuoteHandler) GetSavedByDate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	vars := mux.Vars(r)

	quote, err := h.service.GetSavedByDate(r.Context(), vars["date"])
	if err != nil {
		h.sendError(w, err, requestID)
		return
	}

	h.sendJSON(w, http.StatusOK, toQuoteResponse(quote.Quote))
}

// RegisterRoutes registers the quote handler routes
func (h *QuoteHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/quote/current", h.GetCurrent).Methods("GET")
	router.HandleFunc("/quote/saved-date/{date}", h.GetSavedByDate).Methods("GET")
	router.HandleFunc("/quote/{start}&{end}", h.GetPeriod).Methods("GET")
	router.HandleFunc("/quote/{start}&{end}/below-current", h.GetBelowCurrent).Methods("GET")
	router.HandleFunc("/quote/{start}&{end}/above-current", h.GetAboveCurrent).Methods("GET")
	router.HandleFunc("/quote/{start}&{end}/save", h.SavePeriod).Methods("GET")

	h.logger.Info("Quote routes registered", map[string]interface{}{
		"routes": []string{
			"GET /quote/current",
			"GET /quote/saved-date/{date}",
			"GET /quote/{start}&{end}",
			"GET /quote/{start}&{end}/below-current",
			"GET /quote/{start}&{end}/above-current",
			"GET /quote/{start}&{end}/save",
		},
	})
}

func (h *QuoteHandler) sendJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Failed to encode response", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// sendError maps domain errors onto HTTP statuses: invalid dates are the
// caller's fault, missing rows are 404, everything else is an upstream or
// internal failure.
func (h *QuoteHandler) sendError(w http.ResponseWriter, err error, requestID string) {
	var invalidDate *entity.InvalidDateError
	var notFound *entity.NotFoundError

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &invalidDate):
		status = http.StatusBadRequest
	case errors.As(err, &notFound):
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed", map[string]interface{}{
			"request_id": requestID,
			"status":     status,
			"error":      err.Error(),
		})
	} else {
		h.logger.Warn("Request rejected", map[string]interface{}{
			"request_id": requestID,
			"status":     status,
			"error":      err.Error(),
		})
	}

	h.sendJSON(w, status, ErrorResponse{
		Message:    err.Error(),
		StatusCode: status,
	})
}
