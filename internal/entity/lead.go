package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Lead is a persisted company record together with its enrichment output.
type Lead struct {
	ID            uuid.UUID       `json:"id"`
	CompanyName   string          `json:"company_name"`
	Domain        *string         `json:"domain,omitempty"`
	Website       *string         `json:"website,omitempty"`
	Phone         *string         `json:"phone,omitempty"`
	Address       *string         `json:"address,omitempty"`
	Funding       *string         `json:"funding,omitempty"`
	TechStack     []string        `json:"tech_stack,omitempty"`
	EmployeeCount *int            `json:"employee_count,omitempty"`
	Summary       *string         `json:"summary,omitempty"`
	Score         *int            `json:"score,omitempty"`
	Raw           json.RawMessage `json:"raw"`
	EnrichedAt    *time.Time      `json:"enriched_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// LeadFromRecord flattens a company record into a persistable lead row. The
// full record, extras included, is kept in Raw.
func LeadFromRecord(record CompanyRecord) (*Lead, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}

	clone := record.Clone()
	lead := &Lead{
		CompanyName:   clone.CompanyName,
		Domain:        clone.Domain,
		Website:       clone.Website,
		Phone:         clone.Phone,
		Address:       clone.Address,
		Funding:       clone.Funding,
		TechStack:     clone.TechStack,
		EmployeeCount: clone.EmployeeCount,
		Summary:       clone.Summary,
		Score:         clone.Score,
		Raw:           raw,
	}
	if clone.Score != nil {
		now := time.Now().UTC()
		lead.EnrichedAt = &now
	}
	return lead, nil
}
