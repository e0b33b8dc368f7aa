package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/lead-intel/internal/dto"
	"github.com/octobees/lead-intel/internal/entity"
)

// ErrLeadNotFound indicates there is no lead for the given company.
var ErrLeadNotFound = errors.New("lead not found")

// LeadsRepository describes persistence operations for leads.
type LeadsRepository interface {
	Upsert(ctx context.Context, lead *entity.Lead) error
	GetByCompanyName(ctx context.Context, companyName string) (*entity.Lead, error)
	List(ctx context.Context, filter dto.LeadFilter) ([]entity.Lead, error)
	BulkUpsertLeads(ctx context.Context, records []BulkUpsertLeadInput) (BulkUpsertResult, error)
}

// BulkUpsertLeadInput represents the minimal fields required for CSV ingestion.
type BulkUpsertLeadInput struct {
	CompanyName   string
	Domain        *string
	Website       *string
	Phone         *string
	Address       *string
	Funding       *string
	EmployeeCount *int
}

// BulkUpsertResult summarises the number of rows inserted or updated.
type BulkUpsertResult struct {
	Inserted int
	Updated  int
	Total    int
}

// PGXLeadsRepository implements LeadsRepository using pgx.
type PGXLeadsRepository struct {
	pool pgxPool
}

// NewPGXLeadsRepository wires a pgx backed repository.
func NewPGXLeadsRepository(pool *pgxpool.Pool) *PGXLeadsRepository {
	return &PGXLeadsRepository{pool: pool}
}

var _ pgxPool = (*pgxpool.Pool)(nil)

const leadColumns = `
            id,
            company_name,
            domain,
            website,
            phone,
            address,
            funding,
            tech_stack,
            employee_count,
            summary,
            score,
            raw,
            enriched_at,
            created_at,
            updated_at`

// Upsert inserts or updates a lead keyed by company name.
func (r *PGXLeadsRepository) Upsert(ctx context.Context, lead *entity.Lead) error {
	if lead == nil {
		return fmt.Errorf("lead payload is nil")
	}

	raw := lead.Raw
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}

	query := `
        INSERT INTO leads (
            company_name,
            domain,
            website,
            phone,
            address,
            funding,
            tech_stack,
            employee_count,
            summary,
            score,
            raw,
            enriched_at,
            updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
        ON CONFLICT (company_name) DO UPDATE SET
            domain = EXCLUDED.domain,
            website = EXCLUDED.website,
            phone = EXCLUDED.phone,
            address = EXCLUDED.address,
            funding = EXCLUDED.funding,
            tech_stack = EXCLUDED.tech_stack,
            employee_count = EXCLUDED.employee_count,
            summary = EXCLUDED.summary,
            score = EXCLUDED.score,
            raw = EXCLUDED.raw,
            enriched_at = COALESCE(EXCLUDED.enriched_at, leads.enriched_at),
            updated_at = NOW();
    `

	_, err := r.pool.Exec(ctx, query,
		lead.CompanyName,
		lead.Domain,
		lead.Website,
		lead.Phone,
		lead.Address,
		lead.Funding,
		lead.TechStack,
		lead.EmployeeCount,
		lead.Summary,
		lead.Score,
		raw,
		lead.EnrichedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert lead: %w", err)
	}

	return nil
}

// GetByCompanyName fetches a single lead by exact company name.
func (r *PGXLeadsRepository) GetByCompanyName(ctx context.Context, companyName string) (*entity.Lead, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+leadColumns+" FROM leads WHERE company_name = $1", companyName)

	lead, err := scanLead(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("query lead by company name: %w", err)
	}
	return lead, nil
}

const bulkUpsertLeadSQL = `
        INSERT INTO leads (company_name, domain, website, phone, address, funding, employee_count, raw, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8::jsonb,NOW())
        ON CONFLICT (company_name) DO UPDATE SET
            domain = COALESCE(EXCLUDED.domain, leads.domain),
            website = COALESCE(EXCLUDED.website, leads.website),
            phone = COALESCE(EXCLUDED.phone, leads.phone),
            address = COALESCE(EXCLUDED.address, leads.address),
            funding = COALESCE(EXCLUDED.funding, leads.funding),
            employee_count = COALESCE(EXCLUDED.employee_count, leads.employee_count),
            updated_at = NOW()
        RETURNING xmax = 0;
    `

// BulkUpsertLeads persists a batch of leads with idempotent semantics.
func (r *PGXLeadsRepository) BulkUpsertLeads(ctx context.Context, records []BulkUpsertLeadInput) (BulkUpsertResult, error) {
	var result BulkUpsertResult
	if len(records) == 0 {
		return result, nil
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return result, fmt.Errorf("start bulk upsert tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, record := range records {
		rows, err := tx.Query(ctx, bulkUpsertLeadSQL,
			record.CompanyName,
			record.Domain,
			record.Website,
			record.Phone,
			record.Address,
			record.Funding,
			record.EmployeeCount,
			"{}",
		)
		if err != nil {
			return result, fmt.Errorf("bulk upsert lead %q: %w", record.CompanyName, err)
		}

		var inserted bool
		if rows.Next() {
			if scanErr := rows.Scan(&inserted); scanErr != nil {
				rows.Close()
				return result, fmt.Errorf("scan bulk upsert result: %w", scanErr)
			}
		} else {
			err := rows.Err()
			rows.Close()
			if err != nil {
				return result, fmt.Errorf("bulk upsert lead %q: %w", record.CompanyName, err)
			}
			return result, fmt.Errorf("bulk upsert lead %q: no result returned", record.CompanyName)
		}
		rows.Close()

		if inserted {
			result.Inserted++
		} else {
			result.Updated++
		}
		result.Total++
	}

	if err := tx.Commit(ctx); err != nil {
		return result, fmt.Errorf("commit bulk upsert tx: %w", err)
	}

	return result, nil
}

// List retrieves leads matching the provided filter, ranked by score unless
// the caller asks for recency.
func (r *PGXLeadsRepository) List(ctx context.Context, filter dto.LeadFilter) ([]entity.Lead, error) {
	baseQuery := strings.Builder{}
	baseQuery.WriteString("SELECT " + leadColumns + " FROM leads")

	var (
		clauses []string
		args    []any
		idx     = 1
	)

	if filter.Q != "" {
		pattern := fmt.Sprintf("%%%s%%", filter.Q)
		clauses = append(clauses, fmt.Sprintf("(company_name ILIKE $%d OR domain ILIKE $%d)", idx, idx+1))
		args = append(args, pattern, pattern)
		idx += 2
	}
	if filter.Domain != "" {
		clauses = append(clauses, fmt.Sprintf("LOWER(domain) = LOWER($%d)", idx))
		args = append(args, filter.Domain)
		idx++
	}
	if filter.MinScore != nil {
		clauses = append(clauses, fmt.Sprintf("score >= $%d", idx))
		args = append(args, *filter.MinScore)
		idx++
	}
	if filter.UpdatedSince != nil {
		clauses = append(clauses, fmt.Sprintf("updated_at >= $%d", idx))
		args = append(args, *filter.UpdatedSince)
		idx++
	}

	if len(clauses) > 0 {
		baseQuery.WriteString(" WHERE ")
		baseQuery.WriteString(strings.Join(clauses, " AND "))
	}

	orderClause := "score DESC NULLS LAST, company_name ASC"
	if strings.EqualFold(filter.Sort, "recent") {
		orderClause = "updated_at DESC, score DESC NULLS LAST, company_name ASC"
	}
	baseQuery.WriteString(" ORDER BY ")
	baseQuery.WriteString(orderClause)

	perPage := filter.PerPage
	if perPage <= 0 {
		perPage = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	baseQuery.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", idx, idx+1))
	args = append(args, perPage, (page-1)*perPage)

	rows, err := r.pool.Query(ctx, baseQuery.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var leads []entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead row: %w", err)
		}
		leads = append(leads, *lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lead rows: %w", err)
	}

	return leads, nil
}

// scanLead maps one row onto the entity, folding SQL nulls into nil pointers.
func scanLead(row pgx.Row) (*entity.Lead, error) {
	var (
		lead          entity.Lead
		domain        sql.NullString
		website       sql.NullString
		phone         sql.NullString
		address       sql.NullString
		funding       sql.NullString
		employeeCount sql.NullInt64
		summary       sql.NullString
		score         sql.NullInt64
		enrichedAt    sql.NullTime
	)

	err := row.Scan(
		&lead.ID,
		&lead.CompanyName,
		&domain,
		&website,
		&phone,
		&address,
		&funding,
		&lead.TechStack,
		&employeeCount,
		&summary,
		&score,
		&lead.Raw,
		&enrichedAt,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	lead.Domain = nullableString(domain)
	lead.Website = nullableString(website)
	lead.Phone = nullableString(phone)
	lead.Address = nullableString(address)
	lead.Funding = nullableString(funding)
	lead.Summary = nullableString(summary)
	lead.EmployeeCount = nullableInt(employeeCount)
	lead.Score = nullableInt(score)
	if enrichedAt.Valid {
		ts := enrichedAt.Time
		lead.EnrichedAt = &ts
	}
	return &lead, nil
}

func nullableString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
