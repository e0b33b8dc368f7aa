package dto

import "github.com/octobees/lead-intel/internal/entity"

// EnrichRequest carries the record to run through the enrichment pipeline.
// The record itself is open: unrecognized keys survive the round trip.
type EnrichRequest struct {
	Record  entity.CompanyRecord `json:"record"`
	Persist bool                 `json:"persist,omitempty"`
}

// SignalsRequest carries free text for signal extraction.
type SignalsRequest struct {
	Text string `json:"text"`
}

// SignalsResponse wraps the detected signals.
type SignalsResponse struct {
	Signals []entity.Signal `json:"signals"`
}

// FetchRequest names the company to pull through the source connectors.
type FetchRequest struct {
	CompanyName string   `json:"company_name"`
	Sources     []string `json:"sources,omitempty"`
	Enrich      bool     `json:"enrich,omitempty"`
}
