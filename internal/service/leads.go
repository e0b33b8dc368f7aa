package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/octobees/lead-intel/internal/dto"
	"github.com/octobees/lead-intel/internal/entity"
	"github.com/octobees/lead-intel/internal/repository"
)

// LeadsService exposes read/write operations for the lead catalogue.
type LeadsService struct {
	repo repository.LeadsRepository
}

// CSVValidationError indicates that the provided CSV payload is invalid.
type CSVValidationError struct {
	Message string
}

// Error implements the error interface.
func (e CSVValidationError) Error() string {
	return e.Message
}

// UploadSummary reports how many rows were inserted or updated during import.
type UploadSummary struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Total    int `json:"total"`
}

// NewLeadsService creates a new instance of LeadsService.
func NewLeadsService(repo repository.LeadsRepository) *LeadsService {
	return &LeadsService{repo: repo}
}

// ListLeads returns leads respecting pagination defaults.
func (s *LeadsService) ListLeads(ctx context.Context, filter dto.LeadFilter) ([]entity.Lead, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PerPage <= 0 {
		filter.PerPage = 20
	}
	if filter.PerPage > 100 {
		filter.PerPage = 100
	}
	return s.repo.List(ctx, filter)
}

// GetLead fetches a lead by company name.
func (s *LeadsService) GetLead(ctx context.Context, companyName string) (*entity.Lead, error) {
	return s.repo.GetByCompanyName(ctx, companyName)
}

// ImportLeadsCSV ingests lead data from a CSV reader.
func (s *LeadsService) ImportLeadsCSV(ctx context.Context, r io.Reader) (UploadSummary, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return UploadSummary{}, CSVValidationError{Message: "csv file is empty"}
		}
		return UploadSummary{}, fmt.Errorf("read csv header: %w", err)
	}

	indexMap, valErr := buildHeaderIndex(header)
	if valErr != nil {
		return UploadSummary{}, valErr
	}

	var (
		records []repository.BulkUpsertLeadInput
		rowNum  = 1
	)

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return UploadSummary{}, fmt.Errorf("read csv row: %w", err)
		}

		rowNum++

		companyName := strings.TrimSpace(row[indexMap["company_name"]])
		if companyName == "" {
			continue
		}

		employees, parseErr := parseOptionalInt(row[indexMap["employee_count"]])
		if parseErr != nil {
			return UploadSummary{}, CSVValidationError{Message: fmt.Sprintf("invalid employee_count value on row %d", rowNum)}
		}

		records = append(records, repository.BulkUpsertLeadInput{
			CompanyName:   companyName,
			Domain:        normalizeString(row[indexMap["domain"]]),
			Website:       normalizeString(row[indexMap["website"]]),
			Phone:         normalizeString(row[indexMap["phone"]]),
			Address:       normalizeString(row[indexMap["address"]]),
			Funding:       normalizeString(row[indexMap["funding"]]),
			EmployeeCount: employees,
		})
	}

	result, err := s.repo.BulkUpsertLeads(ctx, records)
	if err != nil {
		return UploadSummary{}, err
	}

	return UploadSummary{
		Inserted: result.Inserted,
		Updated:  result.Updated,
		Total:    result.Total,
	}, nil
}

// UpsertLead proxies to the repository to persist the record.
func (s *LeadsService) UpsertLead(ctx context.Context, lead *entity.Lead) error {
	return s.repo.Upsert(ctx, lead)
}

var requiredCSVHeaders = []string{"company_name", "domain", "website", "phone", "address", "funding", "employee_count"}

func buildHeaderIndex(header []string) (map[string]int, error) {
	index := make(map[string]int)
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}

	missing := make([]string, 0)
	for _, required := range requiredCSVHeaders {
		if _, ok := index[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, CSVValidationError{Message: fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", "))}
	}
	return index, nil
}

func parseOptionalInt(value string) (*int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func normalizeString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
