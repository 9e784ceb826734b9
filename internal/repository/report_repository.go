package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/campuslabs/orgfee-api/internal/models"
	"github.com/campuslabs/orgfee-api/pkg/config"
)

// ReportRepository persists report jobs and serves the report read models.
type ReportRepository struct {
	db          *sqlx.DB
	jobs        string
	balanceView string
	fees        string
	students    string
	orgs        string
	committees  string
	memberships string
}

// NewReportRepository constructs a ReportRepository.
func NewReportRepository(db *sqlx.DB, tables config.TablesConfig) *ReportRepository {
	return &ReportRepository{
		db:          db,
		jobs:        tables.ReportJobs,
		balanceView: tables.BalanceView,
		fees:        tables.Fees,
		students:    tables.Students,
		orgs:        tables.Orgs,
		committees:  tables.Committees,
		memberships: tables.Memberships,
	}
}

// CreateJob inserts a queued report job.
func (r *ReportRepository) CreateJob(ctx context.Context, job *models.ReportJob) error {
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	query := fmt.Sprintf(`INSERT INTO %s (id, type, params, status, progress, created_by, created_at)
        VALUES (:id, :type, :params, :status, :progress, :created_by, :created_at)`, r.jobs)
	if _, err := r.db.NamedExecContext(ctx, query, job); err != nil {
		return fmt.Errorf("create report job: %w", err)
	}
	return nil
}

// FindJob fetches a report job by ID.
func (r *ReportRepository) FindJob(ctx context.Context, id string) (*models.ReportJob, error) {
	query := fmt.Sprintf(`SELECT id, type, params, status, progress, result_url, created_by, created_at, finished_at, error_message
        FROM %s WHERE id = $1`, r.jobs)
	var job models.ReportJob
	if err := r.db.GetContext(ctx, &job, query, id); err != nil {
		return nil, err
	}
	return &job, nil
}

// MarkJobProcessing transitions a job into the processing state.
func (r *ReportRepository) MarkJobProcessing(ctx context.Context, id string) error {
	query := fmt.Sprintf("UPDATE %s SET status = $2, progress = 10 WHERE id = $1", r.jobs)
	if _, err := r.db.ExecContext(ctx, query, id, models.ReportStatusProcessing); err != nil {
		return fmt.Errorf("mark report job processing: %w", err)
	}
	return nil
}

// MarkJobFinished records a successful job with its download URL.
func (r *ReportRepository) MarkJobFinished(ctx context.Context, id, resultURL string) error {
	query := fmt.Sprintf(`UPDATE %s SET status = $2, progress = 100, result_url = $3, finished_at = $4
        WHERE id = $1`, r.jobs)
	if _, err := r.db.ExecContext(ctx, query, id, models.ReportStatusFinished, resultURL, time.Now().UTC()); err != nil {
		return fmt.Errorf("mark report job finished: %w", err)
	}
	return nil
}

// MarkJobFailed records a terminal failure with its cause.
func (r *ReportRepository) MarkJobFailed(ctx context.Context, id, message string) error {
	query := fmt.Sprintf(`UPDATE %s SET status = $2, finished_at = $3, error_message = $4 WHERE id = $1`, r.jobs)
	if _, err := r.db.ExecContext(ctx, query, id, models.ReportStatusFailed, time.Now().UTC(), message); err != nil {
		return fmt.Errorf("mark report job failed: %w", err)
	}
	return nil
}

// MarkJobExpired retires a finished job whose export has been purged.
func (r *ReportRepository) MarkJobExpired(ctx context.Context, id string) error {
	query := fmt.Sprintf("UPDATE %s SET status = $2, result_url = NULL WHERE id = $1", r.jobs)
	if _, err := r.db.ExecContext(ctx, query, id, models.ReportStatusExpired); err != nil {
		return fmt.Errorf("mark report job expired: %w", err)
	}
	return nil
}

// ListQueued returns jobs still waiting for a worker, oldest first.
func (r *ReportRepository) ListQueued(ctx context.Context, limit int) ([]models.ReportJob, error) {
	query := fmt.Sprintf(`SELECT id, type, params, status, progress, result_url, created_by, created_at, finished_at, error_message
        FROM %s WHERE status = $1 ORDER BY created_at LIMIT $2`, r.jobs)
	var queued []models.ReportJob
	if err := r.db.SelectContext(ctx, &queued, query, models.ReportStatusQueued, limit); err != nil {
		return nil, fmt.Errorf("list queued report jobs: %w", err)
	}
	return queued, nil
}

// ListFinishedBefore returns finished jobs whose completion predates the cutoff.
func (r *ReportRepository) ListFinishedBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.ReportJob, error) {
	query := fmt.Sprintf(`SELECT id, type, params, status, progress, result_url, created_by, created_at, finished_at, error_message
        FROM %s WHERE status = $1 AND finished_at < $2 ORDER BY finished_at LIMIT $3`, r.jobs)
	var finished []models.ReportJob
	if err := r.db.SelectContext(ctx, &finished, query, models.ReportStatusFinished, cutoff, limit); err != nil {
		return nil, fmt.Errorf("list finished report jobs: %w", err)
	}
	return finished, nil
}

// MembershipBalances reads the outstanding-balance view, optionally scoped
// to one organization.
func (r *ReportRepository) MembershipBalances(ctx context.Context, organizationID *string) ([]models.MembershipBalance, error) {
	query := fmt.Sprintf(`SELECT b.student_number, b.organization_id, b.status, b.role, b.balance,
        TRIM(s.first_name || ' ' || s.last_name) AS student_name,
        o.organization_name
        FROM %s b
        LEFT JOIN %s s ON s.student_number = b.student_number
        LEFT JOIN %s o ON o.organization_id = b.organization_id`, r.balanceView, r.students, r.orgs)
	var args []interface{}
	if organizationID != nil && *organizationID != "" {
		query += " WHERE b.organization_id = $1"
		args = append(args, *organizationID)
	}
	query += " ORDER BY b.organization_id, b.student_number"

	var balances []models.MembershipBalance
	if err := r.db.SelectContext(ctx, &balances, query, args...); err != nil {
		return nil, fmt.Errorf("membership balances: %w", err)
	}
	return balances, nil
}

// UnpaidFees returns fees still owed, optionally scoped to one organization.
func (r *ReportRepository) UnpaidFees(ctx context.Context, organizationID *string) ([]models.FeeDetail, error) {
	conditions := []string{fmt.Sprintf("f.status <> '%s'", models.FeeStatusPaid)}
	var args []interface{}
	if organizationID != nil && *organizationID != "" {
		conditions = append(conditions, fmt.Sprintf("f.organization_id = $%d", len(args)+1))
		args = append(args, *organizationID)
	}

	query := fmt.Sprintf(`SELECT f.fee_id, f.label, f.status, f.amount, f.date_issue, f.due_date, f.organization_id, f.student_number,
        TRIM(s.first_name || ' ' || s.last_name) AS student_name,
        o.organization_name
        FROM %s f
        LEFT JOIN %s s ON s.student_number = f.student_number
        LEFT JOIN %s o ON o.organization_id = f.organization_id
        WHERE %s ORDER BY f.due_date NULLS LAST, f.fee_id`, r.fees, r.students, r.orgs, strings.Join(conditions, " AND "))

	var fees []models.FeeDetail
	if err := r.db.SelectContext(ctx, &fees, query, args...); err != nil {
		return nil, fmt.Errorf("unpaid fees: %w", err)
	}
	return fees, nil
}

// CommitteeRoster returns memberships grouped under their committees,
// optionally scoped to one organization.
func (r *ReportRepository) CommitteeRoster(ctx context.Context, organizationID *string) ([]models.MembershipDetail, error) {
	query := fmt.Sprintf(`SELECT m.student_number, m.organization_id, m.committee_id, m.membership_date, m.status, m.role,
        TRIM(s.first_name || ' ' || s.last_name) AS student_name,
        o.organization_name, c.committee_name
        FROM %s m
        LEFT JOIN %s s ON s.student_number = m.student_number
        LEFT JOIN %s o ON o.organization_id = m.organization_id
        LEFT JOIN %s c ON c.committee_id = m.committee_id
        WHERE m.committee_id IS NOT NULL`, r.memberships, r.students, r.orgs, r.committees)
	var args []interface{}
	if organizationID != nil && *organizationID != "" {
		query += " AND m.organization_id = $1"
		args = append(args, *organizationID)
	}
	query += " ORDER BY m.organization_id, m.committee_id, m.student_number"

	var roster []models.MembershipDetail
	if err := r.db.SelectContext(ctx, &roster, query, args...); err != nil {
		return nil, fmt.Errorf("committee roster: %w", err)
	}
	return roster, nil
}
