package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type stubLeadRow struct{}

func (s stubLeadRow) Scan(dest ...any) error {
	id := uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
	created := time.Now()
	updated := created
	domain := sql.NullString{String: "anthropic.com", Valid: true}
	website := sql.NullString{String: "https://anthropic.com", Valid: true}
	phone := sql.NullString{String: "+14155550100", Valid: true}
	address := sql.NullString{Valid: false}
	funding := sql.NullString{String: "$1.5B", Valid: true}
	techStack := []string{"Go", "PyTorch"}
	employees := sql.NullInt64{Int64: 150, Valid: true}
	summary := sql.NullString{String: "AI safety company.", Valid: true}
	score := sql.NullInt64{Int64: 13, Valid: true}
	raw := json.RawMessage(`{"foo":"bar"}`)
	enriched := sql.NullTime{Time: created, Valid: true}

	*dest[0].(*uuid.UUID) = id
	*dest[1].(*string) = "Anthropic"
	*dest[2].(*sql.NullString) = domain
	*dest[3].(*sql.NullString) = website
	*dest[4].(*sql.NullString) = phone
	*dest[5].(*sql.NullString) = address
	*dest[6].(*sql.NullString) = funding
	*dest[7].(*[]string) = techStack
	*dest[8].(*sql.NullInt64) = employees
	*dest[9].(*sql.NullString) = summary
	*dest[10].(*sql.NullInt64) = score
	*dest[11].(*json.RawMessage) = raw
	*dest[12].(*sql.NullTime) = enriched
	*dest[13].(*time.Time) = created
	*dest[14].(*time.Time) = updated
	return nil
}

type errLeadRow struct {
	err error
}

func (e errLeadRow) Scan(dest ...any) error { return e.err }

func TestPGXLeadsRepository_UpsertValidation(t *testing.T) {
	repo := &PGXLeadsRepository{}
	if err := repo.Upsert(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil lead")
	}
}

func TestPGXLeadsRepository_BulkUpsertEmpty(t *testing.T) {
	repo := &PGXLeadsRepository{}
	res, err := repo.BulkUpsertLeads(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 0 {
		t.Fatalf("expected zero summary, got %+v", res)
	}
}

func TestScanLead(t *testing.T) {
	lead, err := scanLead(stubLeadRow{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lead.CompanyName != "Anthropic" {
		t.Fatalf("unexpected company name: %q", lead.CompanyName)
	}
	if lead.Domain == nil || *lead.Domain != "anthropic.com" {
		t.Fatalf("expected domain set, got %+v", lead.Domain)
	}
	if lead.Address != nil {
		t.Fatalf("expected nil address for SQL NULL, got %q", *lead.Address)
	}
	if lead.Score == nil || *lead.Score != 13 {
		t.Fatalf("expected score 13, got %+v", lead.Score)
	}
	if lead.EmployeeCount == nil || *lead.EmployeeCount != 150 {
		t.Fatalf("expected employee count 150, got %+v", lead.EmployeeCount)
	}
	if len(lead.TechStack) != 2 || lead.TechStack[1] != "PyTorch" {
		t.Fatalf("unexpected tech stack: %+v", lead.TechStack)
	}
	if lead.EnrichedAt == nil {
		t.Fatalf("expected enriched_at set")
	}
	if string(lead.Raw) != `{"foo":"bar"}` {
		t.Fatalf("unexpected raw payload: %s", string(lead.Raw))
	}
}

func TestScanLead_NoRows(t *testing.T) {
	_, err := scanLead(errLeadRow{err: pgx.ErrNoRows})
	if !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("expected pgx.ErrNoRows passthrough, got %v", err)
	}
}

func TestNullableHelpers(t *testing.T) {
	if nullableString(sql.NullString{}) != nil {
		t.Fatalf("expected nil for invalid string")
	}
	s := nullableString(sql.NullString{String: "hello", Valid: true})
	if s == nil || *s != "hello" {
		t.Fatalf("expected string value, got %+v", s)
	}

	if nullableInt(sql.NullInt64{}) != nil {
		t.Fatalf("expected nil for invalid int")
	}
	i := nullableInt(sql.NullInt64{Int64: 42, Valid: true})
	if i == nil || *i != 42 {
		t.Fatalf("expected int value, got %+v", i)
	}
}
