package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/campuslabs/orgfee-api/internal/models"
	"github.com/campuslabs/orgfee-api/pkg/config"
)

// OrganizationRepository manages persistence for organizations.
type OrganizationRepository struct {
	db          *sqlx.DB
	table       string
	memberships string
}

// NewOrganizationRepository constructs an OrganizationRepository.
func NewOrganizationRepository(db *sqlx.DB, tables config.TablesConfig) *OrganizationRepository {
	return &OrganizationRepository{db: db, table: tables.Orgs, memberships: tables.Memberships}
}

// List returns every organization with its current member count.
func (r *OrganizationRepository) List(ctx context.Context) ([]models.OrganizationSummary, error) {
	query := fmt.Sprintf(`SELECT o.organization_id, o.organization_name, COUNT(m.student_number) AS member_count
        FROM %s o
        LEFT JOIN %s m ON m.organization_id = o.organization_id
        GROUP BY o.organization_id, o.organization_name
        ORDER BY o.organization_id`, r.table, r.memberships)

	var orgs []models.OrganizationSummary
	if err := r.db.SelectContext(ctx, &orgs, query); err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	return orgs, nil
}

// FindByKey fetches an organization by its ID.
func (r *OrganizationRepository) FindByKey(ctx context.Context, organizationID string) (*models.Organization, error) {
	query := fmt.Sprintf("SELECT organization_id, organization_name FROM %s WHERE organization_id = $1", r.table)
	var org models.Organization
	if err := r.db.GetContext(ctx, &org, query, organizationID); err != nil {
		return nil, err
	}
	return &org, nil
}

// Exists checks whether an organization with the given ID exists.
func (r *OrganizationRepository) Exists(ctx context.Context, organizationID string) (bool, error) {
	query := fmt.Sprintf("SELECT 1 FROM %s WHERE organization_id = $1 LIMIT 1", r.table)
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, organizationID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check organization: %w", err)
	}
	return true, nil
}

// Create inserts a new organization.
func (r *OrganizationRepository) Create(ctx context.Context, org *models.Organization) error {
	query := fmt.Sprintf(`INSERT INTO %s (organization_id, organization_name)
        VALUES (:organization_id, :organization_name)`, r.table)
	if _, err := r.db.NamedExecContext(ctx, query, org); err != nil {
		return fmt.Errorf("create organization: %w", err)
	}
	return nil
}

// Update modifies an existing organization.
func (r *OrganizationRepository) Update(ctx context.Context, org *models.Organization) error {
	query := fmt.Sprintf("UPDATE %s SET organization_name = :organization_name WHERE organization_id = :organization_id", r.table)
	if _, err := r.db.NamedExecContext(ctx, query, org); err != nil {
		return fmt.Errorf("update organization: %w", err)
	}
	return nil
}

// Delete removes an organization by ID.
func (r *OrganizationRepository) Delete(ctx context.Context, organizationID string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE organization_id = $1", r.table)
	if _, err := r.db.ExecContext(ctx, query, organizationID); err != nil {
		return fmt.Errorf("delete organization: %w", err)
	}
	return nil
}
