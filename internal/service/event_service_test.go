package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campuslabs/orgfee-api/internal/models"
	appErrors "github.com/campuslabs/orgfee-api/pkg/errors"
)

type mockEventRepo struct {
	events    map[int64]models.Event
	nextID    int64
	lastOrgID string
	createErr error
	deleted   []int64
}

func (m *mockEventRepo) List(ctx context.Context) ([]models.EventDetail, error) {
	out := make([]models.EventDetail, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, models.EventDetail{Event: e})
	}
	return out, nil
}

func (m *mockEventRepo) ListByOrganization(ctx context.Context, organizationID string) ([]models.EventDetail, error) {
	m.lastOrgID = organizationID
	var out []models.EventDetail
	for _, e := range m.events {
		if e.OrganizationID == organizationID {
			out = append(out, models.EventDetail{Event: e})
		}
	}
	return out, nil
}

func (m *mockEventRepo) FindByKey(ctx context.Context, eventID int64) (*models.EventDetail, error) {
	if e, ok := m.events[eventID]; ok {
		return &models.EventDetail{Event: e}, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockEventRepo) Exists(ctx context.Context, eventID int64) (bool, error) {
	_, ok := m.events[eventID]
	return ok, nil
}

func (m *mockEventRepo) Create(ctx context.Context, event *models.Event) error {
	if m.createErr != nil {
		return m.createErr
	}
	if m.events == nil {
		m.events = make(map[int64]models.Event)
	}
	m.nextID++
	event.EventID = m.nextID
	m.events[event.EventID] = *event
	return nil
}

func (m *mockEventRepo) Update(ctx context.Context, event *models.Event) error {
	m.events[event.EventID] = *event
	return nil
}

func (m *mockEventRepo) Delete(ctx context.Context, eventID int64) error {
	m.deleted = append(m.deleted, eventID)
	delete(m.events, eventID)
	return nil
}

func TestEventServiceCreateAssignsGeneratedID(t *testing.T) {
	repo := &mockEventRepo{}
	svc := NewEventService(repo, NewValidator(), zap.NewNop())

	event, err := svc.Create(context.Background(), CreateEventRequest{
		OrganizationID: "ORG-ACM",
		EventName:      "General Assembly",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), event.EventID)
	assert.Equal(t, "General Assembly", event.EventName)
}

func TestEventServiceCreateMissingFields(t *testing.T) {
	svc := NewEventService(&mockEventRepo{}, NewValidator(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateEventRequest{})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Contains(t, appErr.Message, "organization_id")
	assert.Contains(t, appErr.Message, "event_name")
}

func TestEventServiceCreateUnknownOrganization(t *testing.T) {
	repo := &mockEventRepo{createErr: &pq.Error{Code: "23503"}}
	svc := NewEventService(repo, NewValidator(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateEventRequest{
		OrganizationID: "ORG-NONE",
		EventName:      "General Assembly",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Contains(t, appErr.Message, "ORG-NONE")
}

func TestEventServiceListScopedToOrganization(t *testing.T) {
	repo := &mockEventRepo{events: map[int64]models.Event{
		1: {EventID: 1, OrganizationID: "ORG-ACM", EventName: "General Assembly"},
		2: {EventID: 2, OrganizationID: "ORG-IEEE", EventName: "Tech Talk"},
	}}
	svc := NewEventService(repo, NewValidator(), zap.NewNop())

	scoped, err := svc.List(context.Background(), "ORG-IEEE")
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "Tech Talk", scoped[0].EventName)
	assert.Equal(t, "ORG-IEEE", repo.lastOrgID)

	all, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestEventServiceUpdateOverlaysFields(t *testing.T) {
	repo := &mockEventRepo{events: map[int64]models.Event{
		3: {EventID: 3, OrganizationID: "ORG-ACM", EventName: "General Assembly"},
	}}
	svc := NewEventService(repo, NewValidator(), zap.NewNop())

	name := "Mid-Year Assembly"
	updated, err := svc.Update(context.Background(), UpdateEventRequest{
		EventID:   3,
		EventName: &name,
	})
	require.NoError(t, err)
	assert.Equal(t, "Mid-Year Assembly", updated.EventName)
	assert.Equal(t, "ORG-ACM", updated.OrganizationID)
}

func TestEventServiceUpdateNotFound(t *testing.T) {
	svc := NewEventService(&mockEventRepo{}, NewValidator(), zap.NewNop())

	_, err := svc.Update(context.Background(), UpdateEventRequest{EventID: 99})
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}

func TestEventServiceDelete(t *testing.T) {
	repo := &mockEventRepo{events: map[int64]models.Event{
		3: {EventID: 3, OrganizationID: "ORG-ACM"},
	}}
	svc := NewEventService(repo, NewValidator(), zap.NewNop())

	require.NoError(t, svc.Delete(context.Background(), 3))
	assert.Equal(t, []int64{3}, repo.deleted)
}

func TestEventServiceDeleteMissingKey(t *testing.T) {
	svc := NewEventService(&mockEventRepo{}, NewValidator(), zap.NewNop())

	err := svc.Delete(context.Background(), 0)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Contains(t, appErr.Message, "event_id")
}

func TestEventServiceDeleteNotFound(t *testing.T) {
	svc := NewEventService(&mockEventRepo{}, NewValidator(), zap.NewNop())

	err := svc.Delete(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}
