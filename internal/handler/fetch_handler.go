package handler

import (
	"log"
	"net/http"
	"sort"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octobees/lead-intel/internal/connector"
	"github.com/octobees/lead-intel/internal/dto"
	"github.com/octobees/lead-intel/internal/enrichment"
	"github.com/octobees/lead-intel/internal/entity"
	"github.com/octobees/lead-intel/internal/service"
)

// FetchHandler pulls a company through the source connectors and aggregates
// the partial records into one lead.
type FetchHandler struct {
	connectors   []connector.Connector
	enricher     *enrichment.Service
	leadsService *service.LeadsService
}

// NewFetchHandler wires a fetch handler. Connectors run in the given order;
// later sources overlay earlier ones.
func NewFetchHandler(connectors []connector.Connector, enricher *enrichment.Service, leadsService *service.LeadsService) *FetchHandler {
	return &FetchHandler{connectors: connectors, enricher: enricher, leadsService: leadsService}
}

// Fetch handles POST /leads/fetch requests.
func (h *FetchHandler) Fetch(c echo.Context) error {
	var req dto.FetchRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	req.CompanyName = strings.TrimSpace(req.CompanyName)
	if req.CompanyName == "" {
		return Error(c, http.StatusBadRequest, "company_name is required")
	}

	selected, err := h.selectConnectors(req.Sources)
	if err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	record := entity.CompanyRecord{CompanyName: req.CompanyName}
	hits := 0

	for _, conn := range selected {
		fetched, err := conn.FetchCompany(ctx, req.CompanyName)
		if err != nil {
			log.Printf("source=%s company=%q fetch failed: %v", conn.Name(), req.CompanyName, err)
			continue
		}
		if fetched == nil {
			continue
		}
		record.Merge(fetched)
		hits++
	}

	if hits == 0 {
		return Error(c, http.StatusNotFound, "no source returned data for company")
	}

	if req.Enrich && h.enricher != nil {
		record = h.enricher.Enrich(ctx, record)
	}

	if h.leadsService != nil {
		lead, err := entity.LeadFromRecord(record)
		if err != nil {
			return Error(c, http.StatusInternalServerError, "failed to encode lead")
		}
		if err := h.leadsService.UpsertLead(ctx, lead); err != nil {
			return Error(c, http.StatusInternalServerError, "failed to persist lead")
		}
	}

	return Success(c, http.StatusOK, "company fetched", record)
}

// selectConnectors filters the configured connectors by the requested source
// names, preserving configuration order. An empty request selects all.
func (h *FetchHandler) selectConnectors(sources []string) ([]connector.Connector, error) {
	if len(sources) == 0 {
		return h.connectors, nil
	}

	wanted := make(map[string]bool, len(sources))
	for _, s := range sources {
		wanted[strings.ToLower(strings.TrimSpace(s))] = true
	}

	var selected []connector.Connector
	for _, conn := range h.connectors {
		if wanted[conn.Name()] {
			selected = append(selected, conn)
			delete(wanted, conn.Name())
		}
	}
	if len(wanted) > 0 {
		unknown := make([]string, 0, len(wanted))
		for name := range wanted {
			unknown = append(unknown, name)
		}
		sort.Strings(unknown)
		return nil, &unknownSourceError{sources: unknown}
	}
	return selected, nil
}

type unknownSourceError struct {
	sources []string
}

func (e *unknownSourceError) Error() string {
	return "unknown sources: " + strings.Join(e.sources, ", ")
}
