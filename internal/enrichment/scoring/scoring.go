package scoring

import (
	"strings"

	"github.com/octobees/lead-intel/internal/entity"
)

// Baseline points contributed by each rule before weighting.
const (
	fundingPoints       = 20
	employeeCountPoints = 20
	techStackPoints     = 20
	hasSummaryPoints    = 10
	domainPoints        = 10
	customRulePoints    = 20
)

// An employee count must exceed this threshold to count as a signal.
const employeeCountThreshold = 100

// Config holds the weight applied to each scoring rule. Weights are
// non-negative and deliberately not normalized: clamping, not weight
// normalization, enforces the 0-100 ceiling.
type Config struct {
	FundingWeight       float64
	EmployeeCountWeight float64
	TechStackWeight     float64
	HasSummaryWeight    float64
	DomainWeight        float64
	CustomRuleWeight    float64
}

// DefaultConfig returns the stock weights.
func DefaultConfig() Config {
	return Config{
		FundingWeight:       0.2,
		EmployeeCountWeight: 0.2,
		TechStackWeight:     0.2,
		HasSummaryWeight:    0.1,
		DomainWeight:        0.1,
		CustomRuleWeight:    0.2,
	}
}

// Engine computes a bounded lead score from a fixed rule set. The
// configuration is captured at construction and never changes afterwards, so
// an Engine is safe for concurrent use.
type Engine struct {
	cfg Config
}

// NewEngine builds an engine with the provided weights. Negative weights are
// treated as zero.
func NewEngine(cfg Config) *Engine {
	cfg.FundingWeight = nonNegative(cfg.FundingWeight)
	cfg.EmployeeCountWeight = nonNegative(cfg.EmployeeCountWeight)
	cfg.TechStackWeight = nonNegative(cfg.TechStackWeight)
	cfg.HasSummaryWeight = nonNegative(cfg.HasSummaryWeight)
	cfg.DomainWeight = nonNegative(cfg.DomainWeight)
	cfg.CustomRuleWeight = nonNegative(cfg.CustomRuleWeight)
	return &Engine{cfg: cfg}
}

// NewDefaultEngine builds an engine with DefaultConfig.
func NewDefaultEngine() *Engine {
	return NewEngine(DefaultConfig())
}

// Config returns a copy of the engine's weights.
func (e *Engine) Config() Config {
	return e.cfg
}

// Score evaluates the record against the rule set and returns an integer in
// [0,100]. The function is pure: no I/O, no side effects, deterministic for a
// given record and configuration.
func (e *Engine) Score(record entity.CompanyRecord) int {
	total := 0.0

	if present(record.Funding) {
		total += fundingPoints * e.cfg.FundingWeight
	}
	if record.EmployeeCount != nil && *record.EmployeeCount > employeeCountThreshold {
		total += employeeCountPoints * e.cfg.EmployeeCountWeight
	}
	if len(record.TechStack) > 0 {
		total += techStackPoints * e.cfg.TechStackWeight
	}
	if present(record.Summary) {
		total += hasSummaryPoints * e.cfg.HasSummaryWeight
	}
	if present(record.Domain) {
		total += domainPoints * e.cfg.DomainWeight
	}
	if hasAISignal(record) {
		total += customRulePoints * e.cfg.CustomRuleWeight
	}

	// Clamp first, then truncate toward zero.
	if total > 100 {
		total = 100
	}
	if total < 0 {
		total = 0
	}
	return int(total)
}

// hasAISignal reports whether "AI" appears in the summary or in any tech
// stack entry. The match is a case-sensitive substring check, so entries like
// "OpenAI" qualify while "PyTorch" does not.
func hasAISignal(record entity.CompanyRecord) bool {
	if record.Summary != nil && strings.Contains(*record.Summary, "AI") {
		return true
	}
	for _, tech := range record.TechStack {
		if strings.Contains(tech, "AI") {
			return true
		}
	}
	return false
}

func present(value *string) bool {
	return value != nil && *value != ""
}

func nonNegative(w float64) float64 {
	if w < 0 {
		return 0
	}
	return w
}
