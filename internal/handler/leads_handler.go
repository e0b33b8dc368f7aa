package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/octobees/lead-intel/internal/dto"
	"github.com/octobees/lead-intel/internal/repository"
	"github.com/octobees/lead-intel/internal/service"
)

// LeadsHandler exposes lead catalogue endpoints.
type LeadsHandler struct {
	service *service.LeadsService
}

// NewLeadsHandler creates a new handler instance.
func NewLeadsHandler(service *service.LeadsService) *LeadsHandler {
	return &LeadsHandler{service: service}
}

// List handles GET /leads requests.
func (h *LeadsHandler) List(c echo.Context) error {
	filter := dto.LeadFilter{
		Q:       strings.TrimSpace(c.QueryParam("q")),
		Domain:  strings.TrimSpace(c.QueryParam("domain")),
		Sort:    strings.TrimSpace(c.QueryParam("sort")),
		Page:    parseIntDefault(c.QueryParam("page"), 1),
		PerPage: parseIntDefault(c.QueryParam("per_page"), 20),
	}

	if minScoreStr := strings.TrimSpace(c.QueryParam("min_score")); minScoreStr != "" {
		minScore, err := strconv.Atoi(minScoreStr)
		if err != nil {
			return Error(c, http.StatusBadRequest, "invalid min_score")
		}
		filter.MinScore = &minScore
	}

	if updatedSinceStr := strings.TrimSpace(c.QueryParam("updated_since")); updatedSinceStr != "" {
		parsed, err := time.Parse(time.RFC3339, updatedSinceStr)
		if err != nil {
			return Error(c, http.StatusBadRequest, "invalid updated_since (use RFC3339)")
		}
		filter.UpdatedSince = &parsed
	}

	leads, err := h.service.ListLeads(c.Request().Context(), filter)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to list leads")
	}

	return Success(c, http.StatusOK, "leads retrieved", leads)
}

// Get handles GET /leads/:company_name requests.
func (h *LeadsHandler) Get(c echo.Context) error {
	companyName := strings.TrimSpace(c.Param("company_name"))
	if companyName == "" {
		return Error(c, http.StatusBadRequest, "company_name is required")
	}

	lead, err := h.service.GetLead(c.Request().Context(), companyName)
	if err != nil {
		if errors.Is(err, repository.ErrLeadNotFound) {
			return Error(c, http.StatusNotFound, "lead not found")
		}
		return Error(c, http.StatusInternalServerError, "failed to fetch lead")
	}

	return Success(c, http.StatusOK, "lead retrieved", lead)
}

func parseIntDefault(input string, fallback int) int {
	if input == "" {
		return fallback
	}
	if value, err := strconv.Atoi(input); err == nil {
		return value
	}
	return fallback
}
