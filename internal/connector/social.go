package connector

import (
	"context"
	"fmt"
	"strings"

	"github.com/octobees/lead-intel/internal/entity"
)

// SocialConnector fetches social and people data from a social-data provider.
// The provider call is stubbed with a fixture payload.
type SocialConnector struct{}

// NewSocialConnector builds a social-data connector.
func NewSocialConnector() *SocialConnector {
	return &SocialConnector{}
}

// Name identifies the source in cache keys and logs.
func (c *SocialConnector) Name() string {
	return "social"
}

// FetchCompany returns the provider's company profile normalized onto the
// shared schema. Provider-specific fields land in the extension bag.
func (c *SocialConnector) FetchCompany(_ context.Context, companyName string) (*entity.CompanyRecord, error) {
	companyName = strings.TrimSpace(companyName)
	if companyName == "" {
		return nil, fmt.Errorf("company name is required")
	}

	count := 120
	record := &entity.CompanyRecord{
		CompanyName:   companyName,
		EmployeeCount: &count,
		Founders:      []string{"Alex Founder"},
	}
	record.SetExtra("linkedin_url", fmt.Sprintf("https://linkedin.com/company/%s", slugify(companyName)))
	record.SetExtra("industry", "Software")
	record.SetExtra("location", "London, UK")
	record.SetExtra("contacts", []map[string]string{
		{"name": "Jane Doe", "role": "CTO", "email": "jane@company.com"},
	})
	return record, nil
}
