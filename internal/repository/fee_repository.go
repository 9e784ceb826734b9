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

// FeeRepository manages persistence for membership fees.
type FeeRepository struct {
	db       *sqlx.DB
	table    string
	students string
	orgs     string
}

// NewFeeRepository constructs a FeeRepository.
func NewFeeRepository(db *sqlx.DB, tables config.TablesConfig) *FeeRepository {
	return &FeeRepository{db: db, table: tables.Fees, students: tables.Students, orgs: tables.Orgs}
}

func (r *FeeRepository) selectClause() string {
	return fmt.Sprintf(`SELECT f.fee_id, f.label, f.status, f.amount, f.date_issue, f.due_date, f.organization_id, f.student_number,
        TRIM(s.first_name || ' ' || s.last_name) AS student_name,
        o.organization_name
        FROM %s f
        LEFT JOIN %s s ON s.student_number = f.student_number
        LEFT JOIN %s o ON o.organization_id = f.organization_id`, r.table, r.students, r.orgs)
}

// List returns fees matching the filter, enriched with display names.
func (r *FeeRepository) List(ctx context.Context, filter models.FeeFilter) ([]models.FeeDetail, error) {
	var conditions []string
	var args []interface{}

	if filter.StudentNumber != "" {
		conditions = append(conditions, fmt.Sprintf("f.student_number = $%d", len(args)+1))
		args = append(args, filter.StudentNumber)
	}
	if filter.OrganizationID != "" {
		conditions = append(conditions, fmt.Sprintf("f.organization_id = $%d", len(args)+1))
		args = append(args, filter.OrganizationID)
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("f.status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}

	query := r.selectClause()
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY f.fee_id"

	var fees []models.FeeDetail
	if err := r.db.SelectContext(ctx, &fees, query, args...); err != nil {
		return nil, fmt.Errorf("list fees: %w", err)
	}
	return fees, nil
}

// FindByKey fetches a fee by its ID.
func (r *FeeRepository) FindByKey(ctx context.Context, feeID string) (*models.FeeDetail, error) {
	query := r.selectClause() + " WHERE f.fee_id = $1"
	var fee models.FeeDetail
	if err := r.db.GetContext(ctx, &fee, query, feeID); err != nil {
		return nil, err
	}
	return &fee, nil
}

// Exists checks whether a fee with the given ID exists.
func (r *FeeRepository) Exists(ctx context.Context, feeID string) (bool, error) {
	query := fmt.Sprintf("SELECT 1 FROM %s WHERE fee_id = $1 LIMIT 1", r.table)
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, feeID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check fee: %w", err)
	}
	return true, nil
}

// Create inserts a new fee row.
func (r *FeeRepository) Create(ctx context.Context, fee *models.Fee) error {
	query := fmt.Sprintf(`INSERT INTO %s (fee_id, label, status, amount, date_issue, due_date, organization_id, student_number)
        VALUES (:fee_id, :label, :status, :amount, :date_issue, :due_date, :organization_id, :student_number)`, r.table)
	if _, err := r.db.NamedExecContext(ctx, query, fee); err != nil {
		return fmt.Errorf("create fee: %w", err)
	}
	return nil
}

// Update modifies every mutable field of a fee.
func (r *FeeRepository) Update(ctx context.Context, fee *models.Fee) error {
	query := fmt.Sprintf(`UPDATE %s SET label = :label, status = :status, amount = :amount,
        date_issue = :date_issue, due_date = :due_date, organization_id = :organization_id,
        student_number = :student_number
        WHERE fee_id = :fee_id`, r.table)
	if _, err := r.db.NamedExecContext(ctx, query, fee); err != nil {
		return fmt.Errorf("update fee: %w", err)
	}
	return nil
}

// UpdateStatus changes only the status column of a fee.
func (r *FeeRepository) UpdateStatus(ctx context.Context, feeID string, status models.FeeStatus) error {
	query := fmt.Sprintf("UPDATE %s SET status = $2 WHERE fee_id = $1", r.table)
	if _, err := r.db.ExecContext(ctx, query, feeID, status); err != nil {
		return fmt.Errorf("update fee status: %w", err)
	}
	return nil
}

// Delete removes a fee by ID.
func (r *FeeRepository) Delete(ctx context.Context, feeID string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE fee_id = $1", r.table)
	if _, err := r.db.ExecContext(ctx, query, feeID); err != nil {
		return fmt.Errorf("delete fee: %w", err)
	}
	return nil
}
