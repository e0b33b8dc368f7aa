package enrichment

import (
	"context"
)

// FirmographicFields is the set of fields a firmographic lookup can add to a
// company record.
type FirmographicFields struct {
	Funding       string
	TechStack     []string
	EmployeeCount int
	Domain        string
}

// LookupOutcome distinguishes a hit from a soft miss from a failed call.
type LookupOutcome int

const (
	// LookupFound means the provider returned firmographic data.
	LookupFound LookupOutcome = iota
	// LookupNotFound means the provider completed but knows nothing about
	// the company. Most lookups end here: absence must not abort anything.
	LookupNotFound
	// LookupFailed means the call itself failed (network, auth, provider).
	LookupFailed
)

// LookupResult is the tagged outcome of a firmographic lookup. The orchestrator
// folds NotFound and Failed into "no fields merged", but keeping them apart
// here leaves a seam for differentiated handling later.
type LookupResult struct {
	Outcome LookupOutcome
	Fields  FirmographicFields
	Err     error
}

// FirmographicClient looks up firmographic data for a company by exact name.
type FirmographicClient interface {
	Lookup(ctx context.Context, companyName string) LookupResult
}

// ApolloClient is the firmographic provider client. The real API call is
// stubbed with a fixture table; the key is carried but not yet validated.
type ApolloClient struct {
	apiKey string
}

// NewApolloClient builds a firmographic client.
func NewApolloClient(apiKey string) *ApolloClient {
	return &ApolloClient{apiKey: apiKey}
}

// Lookup returns firmographic fields for an exact company-name match.
func (c *ApolloClient) Lookup(_ context.Context, companyName string) LookupResult {
	if companyName == "Anthropic" {
		return LookupResult{
			Outcome: LookupFound,
			Fields: FirmographicFields{
				Funding:       "$1.5B",
				TechStack:     []string{"Go", "PyTorch"},
				EmployeeCount: 150,
				Domain:        "anthropic.com",
			},
		}
	}
	return LookupResult{Outcome: LookupNotFound}
}

var _ FirmographicClient = (*ApolloClient)(nil)
