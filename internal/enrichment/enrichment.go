package enrichment

import (
	"context"
	"log"

	"github.com/octobees/lead-intel/internal/entity"
	"github.com/octobees/lead-intel/internal/enrichment/scoring"
)

// Service runs the enrichment pipeline: firmographic merge, summarization,
// then scoring, in that order. Scoring must come last because the rule set
// inspects the generated summary. Every stage is best effort; the returned
// record always carries a score.
type Service struct {
	firmographics FirmographicClient
	summarizer    *Summarizer
	engine        *scoring.Engine
}

// NewService composes the pipeline. A nil summarizer disables summarization
// (each skip is logged); a nil engine falls back to the default weights.
func NewService(firmographics FirmographicClient, summarizer *Summarizer, engine *scoring.Engine) *Service {
	if engine == nil {
		engine = scoring.NewDefaultEngine()
	}
	return &Service{
		firmographics: firmographics,
		summarizer:    summarizer,
		engine:        engine,
	}
}

// Engine exposes the scoring engine, mainly so callers can report the active
// weights.
func (s *Service) Engine() *scoring.Engine {
	return s.engine
}

// Enrich returns an enriched copy of the record. The input is never mutated.
func (s *Service) Enrich(ctx context.Context, record entity.CompanyRecord) entity.CompanyRecord {
	enriched := record.Clone()
	log.Printf("enrichment: starting company=%q", record.CompanyName)

	s.mergeFirmographics(ctx, &enriched)
	s.attachSummary(ctx, &enriched)

	score := s.engine.Score(enriched)
	enriched.Score = &score

	return enriched
}

// mergeFirmographics merges lookup fields into the record, overwriting on
// collision but never removing anything already present. NotFound and Failed
// both leave the record untouched.
func (s *Service) mergeFirmographics(ctx context.Context, record *entity.CompanyRecord) {
	if s.firmographics == nil {
		log.Printf("enrichment: no firmographic client configured company=%q", record.CompanyName)
		return
	}

	result := s.firmographics.Lookup(ctx, record.CompanyName)
	switch result.Outcome {
	case LookupFound:
		fields := result.Fields
		if fields.Funding != "" {
			record.Funding = &fields.Funding
		}
		if len(fields.TechStack) > 0 {
			record.TechStack = append([]string(nil), fields.TechStack...)
		}
		if fields.EmployeeCount > 0 {
			count := fields.EmployeeCount
			record.EmployeeCount = &count
		}
		if fields.Domain != "" {
			record.Domain = &fields.Domain
		}
		log.Printf("enrichment: firmographic merge succeeded company=%q", record.CompanyName)
	case LookupFailed:
		log.Printf("enrichment: firmographic lookup failed company=%q err=%v", record.CompanyName, result.Err)
	default:
		log.Printf("enrichment: no firmographic match company=%q", record.CompanyName)
	}
}

func (s *Service) attachSummary(ctx context.Context, record *entity.CompanyRecord) {
	if record.Description == nil || *record.Description == "" {
		log.Printf("enrichment: no description to summarize company=%q", record.CompanyName)
		return
	}
	if s.summarizer == nil {
		log.Printf("enrichment: summarizer not configured company=%q", record.CompanyName)
		return
	}

	summary, ok := s.summarizer.Summarize(ctx, *record.Description)
	if !ok {
		log.Printf("enrichment: summarization failed company=%q", record.CompanyName)
		return
	}
	record.Summary = &summary
}
