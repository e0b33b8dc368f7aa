package connector

import (
	"context"
	"net/http"

	"github.com/octobees/lead-intel/internal/entity"
)

// Connector fetches and normalizes company data from one external source.
// A nil record with a nil error is a soft miss: the source completed the
// lookup but knows nothing about the company.
type Connector interface {
	Name() string
	FetchCompany(ctx context.Context, companyName string) (*entity.CompanyRecord, error)
}

// HTTPClient abstracts the outbound HTTP calls so tests can intercept them.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
