package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/campuslabs/orgfee-api/internal/models"
	"github.com/campuslabs/orgfee-api/pkg/config"
)

// DashboardRepository aggregates the counts behind the dashboard summary.
type DashboardRepository struct {
	db     *sqlx.DB
	tables config.TablesConfig
}

// NewDashboardRepository constructs a DashboardRepository.
func NewDashboardRepository(db *sqlx.DB, tables config.TablesConfig) *DashboardRepository {
	return &DashboardRepository{db: db, tables: tables}
}

// Summary collects the top-level counts in a single round trip.
func (r *DashboardRepository) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	query := fmt.Sprintf(`SELECT
        (SELECT COUNT(*) FROM %s) AS students,
        (SELECT COUNT(*) FROM %s) AS organizations,
        (SELECT COUNT(*) FROM %s) AS committees,
        (SELECT COUNT(*) FROM %s WHERE status = '%s') AS active_memberships,
        (SELECT COUNT(*) FROM %s) AS events,
        (SELECT COALESCE(SUM(amount), 0) FROM %s WHERE status <> '%s') AS outstanding_fees`,
		r.tables.Students,
		r.tables.Orgs,
		r.tables.Committees,
		r.tables.Memberships, models.MembershipStatusActive,
		r.tables.Events,
		r.tables.Fees, models.FeeStatusPaid,
	)

	var summary models.DashboardSummary
	if err := r.db.GetContext(ctx, &summary, query); err != nil {
		return nil, fmt.Errorf("dashboard summary: %w", err)
	}
	return &summary, nil
}
