package dto

import "time"

// LeadFilter contains query parameters for lead listing endpoints.
type LeadFilter struct {
	Q            string
	Domain       string
	MinScore     *int
	UpdatedSince *time.Time
	Sort         string
	Page         int
	PerPage      int
}
