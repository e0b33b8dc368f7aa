package dto

// PipelineJobRequest asks the worker fleet to run the full pipeline for a
// batch of companies.
type PipelineJobRequest struct {
	CompanyNames []string `json:"company_names"`
	Sources      []string `json:"sources,omitempty"`
}
