package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/campuslabs/orgfee-api/internal/models"
	"github.com/campuslabs/orgfee-api/pkg/config"
)

// MembershipRepository manages persistence for student-organization memberships.
type MembershipRepository struct {
	db         *sqlx.DB
	table      string
	students   string
	orgs       string
	committees string
}

// NewMembershipRepository constructs a MembershipRepository.
func NewMembershipRepository(db *sqlx.DB, tables config.TablesConfig) *MembershipRepository {
	return &MembershipRepository{
		db:         db,
		table:      tables.Memberships,
		students:   tables.Students,
		orgs:       tables.Orgs,
		committees: tables.Committees,
	}
}

func (r *MembershipRepository) selectClause() string {
	return fmt.Sprintf(`SELECT m.student_number, m.organization_id, m.committee_id, m.membership_date, m.status, m.role,
        TRIM(s.first_name || ' ' || s.last_name) AS student_name,
        o.organization_name, c.committee_name
        FROM %s m
        LEFT JOIN %s s ON s.student_number = m.student_number
        LEFT JOIN %s o ON o.organization_id = m.organization_id
        LEFT JOIN %s c ON c.committee_id = m.committee_id`, r.table, r.students, r.orgs, r.committees)
}

// List returns memberships matching the filter, enriched with display names.
func (r *MembershipRepository) List(ctx context.Context, filter models.MembershipFilter) ([]models.MembershipDetail, error) {
	var conditions []string
	var args []interface{}

	if filter.OrganizationID != "" {
		conditions = append(conditions, fmt.Sprintf("m.organization_id = $%d", len(args)+1))
		args = append(args, filter.OrganizationID)
	}
	if filter.StudentNumber != "" {
		conditions = append(conditions, fmt.Sprintf("m.student_number = $%d", len(args)+1))
		args = append(args, filter.StudentNumber)
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("m.status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}

	query := r.selectClause()
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY m.organization_id, m.student_number"

	var memberships []models.MembershipDetail
	if err := r.db.SelectContext(ctx, &memberships, query, args...); err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	return memberships, nil
}

// FindByKey fetches a membership by its composite key.
func (r *MembershipRepository) FindByKey(ctx context.Context, studentNumber, organizationID string) (*models.MembershipDetail, error) {
	query := r.selectClause() + " WHERE m.student_number = $1 AND m.organization_id = $2"
	var membership models.MembershipDetail
	if err := r.db.GetContext(ctx, &membership, query, studentNumber, organizationID); err != nil {
		return nil, err
	}
	return &membership, nil
}

// Exists checks whether the (student, organization) pair is already a membership.
func (r *MembershipRepository) Exists(ctx context.Context, studentNumber, organizationID string) (bool, error) {
	query := fmt.Sprintf("SELECT 1 FROM %s WHERE student_number = $1 AND organization_id = $2 LIMIT 1", r.table)
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, studentNumber, organizationID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check membership: %w", err)
	}
	return true, nil
}

// Create inserts a new membership row.
func (r *MembershipRepository) Create(ctx context.Context, membership *models.Membership) error {
	query := fmt.Sprintf(`INSERT INTO %s (student_number, organization_id, committee_id, membership_date, status, role)
        VALUES (:student_number, :organization_id, :committee_id, :membership_date, :status, :role)`, r.table)
	if _, err := r.db.NamedExecContext(ctx, query, membership); err != nil {
		return fmt.Errorf("create membership: %w", err)
	}
	return nil
}

// Update modifies the mutable fields of a membership identified by its composite key.
func (r *MembershipRepository) Update(ctx context.Context, membership *models.Membership) error {
	query := fmt.Sprintf(`UPDATE %s SET committee_id = :committee_id, membership_date = :membership_date,
        status = :status, role = :role
        WHERE student_number = :student_number AND organization_id = :organization_id`, r.table)
	if _, err := r.db.NamedExecContext(ctx, query, membership); err != nil {
		return fmt.Errorf("update membership: %w", err)
	}
	return nil
}

// UpdateStatus changes only the status column of a membership.
func (r *MembershipRepository) UpdateStatus(ctx context.Context, studentNumber, organizationID string, status models.MembershipStatus) error {
	query := fmt.Sprintf("UPDATE %s SET status = $3 WHERE student_number = $1 AND organization_id = $2", r.table)
	if _, err := r.db.ExecContext(ctx, query, studentNumber, organizationID, status); err != nil {
		return fmt.Errorf("update membership status: %w", err)
	}
	return nil
}

// Delete removes a membership by its composite key.
func (r *MembershipRepository) Delete(ctx context.Context, studentNumber, organizationID string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE student_number = $1 AND organization_id = $2", r.table)
	if _, err := r.db.ExecContext(ctx, query, studentNumber, organizationID); err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}
	return nil
}
