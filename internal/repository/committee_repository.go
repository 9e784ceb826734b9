package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/campuslabs/orgfee-api/internal/models"
	"github.com/campuslabs/orgfee-api/pkg/config"
)

// CommitteeRepository manages persistence for organization committees.
type CommitteeRepository struct {
	db    *sqlx.DB
	table string
	orgs  string
}

// NewCommitteeRepository constructs a CommitteeRepository.
func NewCommitteeRepository(db *sqlx.DB, tables config.TablesConfig) *CommitteeRepository {
	return &CommitteeRepository{db: db, table: tables.Committees, orgs: tables.Orgs}
}

func (r *CommitteeRepository) selectClause() string {
	return fmt.Sprintf(`SELECT c.committee_id, c.organization_id, c.committee_name, o.organization_name
        FROM %s c
        LEFT JOIN %s o ON o.organization_id = c.organization_id`, r.table, r.orgs)
}

// List returns every committee with its organization name.
func (r *CommitteeRepository) List(ctx context.Context) ([]models.CommitteeDetail, error) {
	query := r.selectClause() + " ORDER BY c.committee_id"
	var committees []models.CommitteeDetail
	if err := r.db.SelectContext(ctx, &committees, query); err != nil {
		return nil, fmt.Errorf("list committees: %w", err)
	}
	return committees, nil
}

// ListByOrganization returns committees belonging to one organization.
func (r *CommitteeRepository) ListByOrganization(ctx context.Context, organizationID string) ([]models.CommitteeDetail, error) {
	query := r.selectClause() + " WHERE c.organization_id = $1 ORDER BY c.committee_id"
	var committees []models.CommitteeDetail
	if err := r.db.SelectContext(ctx, &committees, query, organizationID); err != nil {
		return nil, fmt.Errorf("list committees by organization: %w", err)
	}
	return committees, nil
}

// FindByKey fetches a committee by its generated ID.
func (r *CommitteeRepository) FindByKey(ctx context.Context, committeeID int64) (*models.CommitteeDetail, error) {
	query := r.selectClause() + " WHERE c.committee_id = $1"
	var committee models.CommitteeDetail
	if err := r.db.GetContext(ctx, &committee, query, committeeID); err != nil {
		return nil, err
	}
	return &committee, nil
}

// Exists checks whether a committee with the given ID exists.
func (r *CommitteeRepository) Exists(ctx context.Context, committeeID int64) (bool, error) {
	query := fmt.Sprintf("SELECT 1 FROM %s WHERE committee_id = $1 LIMIT 1", r.table)
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, committeeID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check committee: %w", err)
	}
	return true, nil
}

// Create inserts a committee and fills in the generated ID.
func (r *CommitteeRepository) Create(ctx context.Context, committee *models.Committee) error {
	query := fmt.Sprintf(`INSERT INTO %s (organization_id, committee_name)
        VALUES ($1, $2) RETURNING committee_id`, r.table)
	if err := r.db.QueryRowContext(ctx, query, committee.OrganizationID, committee.CommitteeName).Scan(&committee.CommitteeID); err != nil {
		return fmt.Errorf("create committee: %w", err)
	}
	return nil
}

// Update modifies an existing committee.
func (r *CommitteeRepository) Update(ctx context.Context, committee *models.Committee) error {
	query := fmt.Sprintf(`UPDATE %s SET organization_id = :organization_id, committee_name = :committee_name
        WHERE committee_id = :committee_id`, r.table)
	if _, err := r.db.NamedExecContext(ctx, query, committee); err != nil {
		return fmt.Errorf("update committee: %w", err)
	}
	return nil
}

// Delete removes a committee by ID.
func (r *CommitteeRepository) Delete(ctx context.Context, committeeID int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE committee_id = $1", r.table)
	if _, err := r.db.ExecContext(ctx, query, committeeID); err != nil {
		return fmt.Errorf("delete committee: %w", err)
	}
	return nil
}
