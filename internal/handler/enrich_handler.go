package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octobees/lead-intel/internal/dto"
	"github.com/octobees/lead-intel/internal/enrichment"
	"github.com/octobees/lead-intel/internal/entity"
	"github.com/octobees/lead-intel/internal/service"
)

// EnrichHandler runs company records through the enrichment pipeline.
type EnrichHandler struct {
	enricher     *enrichment.Service
	signals      *enrichment.SignalDetector
	leadsService *service.LeadsService
}

// NewEnrichHandler wires a new EnrichHandler instance. The signal detector
// may be nil when no language model backend is configured.
func NewEnrichHandler(enricher *enrichment.Service, signals *enrichment.SignalDetector, leadsService *service.LeadsService) *EnrichHandler {
	return &EnrichHandler{enricher: enricher, signals: signals, leadsService: leadsService}
}

// Enrich handles POST /enrich requests.
func (h *EnrichHandler) Enrich(c echo.Context) error {
	var payload dto.EnrichRequest
	if err := c.Bind(&payload); err != nil {
		return Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(payload.Record.CompanyName) == "" {
		return Error(c, http.StatusBadRequest, "record.company_name is required")
	}

	enriched := h.enricher.Enrich(c.Request().Context(), payload.Record)

	if payload.Persist && h.leadsService != nil {
		lead, err := entity.LeadFromRecord(enriched)
		if err != nil {
			return Error(c, http.StatusInternalServerError, "failed to encode lead")
		}
		if err := h.leadsService.UpsertLead(c.Request().Context(), lead); err != nil {
			return Error(c, http.StatusInternalServerError, "failed to persist lead")
		}
	}

	return Success(c, http.StatusOK, "record enriched", enriched)
}

// Signals handles POST /signals requests.
func (h *EnrichHandler) Signals(c echo.Context) error {
	var payload dto.SignalsRequest
	if err := c.Bind(&payload); err != nil {
		return Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(payload.Text) == "" {
		return Error(c, http.StatusBadRequest, "text is required")
	}
	if h.signals == nil {
		return Error(c, http.StatusServiceUnavailable, "signal detection is not configured")
	}

	signals := h.signals.Detect(c.Request().Context(), payload.Text)
	if signals == nil {
		signals = []entity.Signal{}
	}

	return Success(c, http.StatusOK, "signals detected", dto.SignalsResponse{Signals: signals})
}
