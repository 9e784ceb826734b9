package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/campuslabs/orgfee-api/internal/models"
	"github.com/campuslabs/orgfee-api/pkg/config"
)

// EventRepository manages persistence for organization events.
type EventRepository struct {
	db    *sqlx.DB
	table string
	orgs  string
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(db *sqlx.DB, tables config.TablesConfig) *EventRepository {
	return &EventRepository{db: db, table: tables.Events, orgs: tables.Orgs}
}

func (r *EventRepository) selectClause() string {
	return fmt.Sprintf(`SELECT e.event_id, e.organization_id, e.event_name, o.organization_name
        FROM %s e
        LEFT JOIN %s o ON o.organization_id = e.organization_id`, r.table, r.orgs)
}

// List returns every event with its organization name.
func (r *EventRepository) List(ctx context.Context) ([]models.EventDetail, error) {
	query := r.selectClause() + " ORDER BY e.event_id"
	var events []models.EventDetail
	if err := r.db.SelectContext(ctx, &events, query); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// ListByOrganization returns events hosted by one organization.
func (r *EventRepository) ListByOrganization(ctx context.Context, organizationID string) ([]models.EventDetail, error) {
	query := r.selectClause() + " WHERE e.organization_id = $1 ORDER BY e.event_id"
	var events []models.EventDetail
	if err := r.db.SelectContext(ctx, &events, query, organizationID); err != nil {
		return nil, fmt.Errorf("list events by organization: %w", err)
	}
	return events, nil
}

// FindByKey fetches an event by its generated ID.
func (r *EventRepository) FindByKey(ctx context.Context, eventID int64) (*models.EventDetail, error) {
	query := r.selectClause() + " WHERE e.event_id = $1"
	var event models.EventDetail
	if err := r.db.GetContext(ctx, &event, query, eventID); err != nil {
		return nil, err
	}
	return &event, nil
}

// Exists checks whether an event with the given ID exists.
func (r *EventRepository) Exists(ctx context.Context, eventID int64) (bool, error) {
	query := fmt.Sprintf("SELECT 1 FROM %s WHERE event_id = $1 LIMIT 1", r.table)
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, eventID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check event: %w", err)
	}
	return true, nil
}

// Create inserts an event and fills in the generated ID.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	query := fmt.Sprintf(`INSERT INTO %s (organization_id, event_name)
        VALUES ($1, $2) RETURNING event_id`, r.table)
	if err := r.db.QueryRowContext(ctx, query, event.OrganizationID, event.EventName).Scan(&event.EventID); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// Update modifies an existing event.
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	query := fmt.Sprintf(`UPDATE %s SET organization_id = :organization_id, event_name = :event_name
        WHERE event_id = :event_id`, r.table)
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

// Delete removes an event by ID.
func (r *EventRepository) Delete(ctx context.Context, eventID int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE event_id = $1", r.table)
	if _, err := r.db.ExecContext(ctx, query, eventID); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
