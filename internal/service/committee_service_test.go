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

type mockCommitteeRepo struct {
	committees map[int64]models.Committee
	nextID     int64
	lastOrgID  string
	createErr  error
	deleteErr  error
	deleted    []int64
}

func (m *mockCommitteeRepo) List(ctx context.Context) ([]models.CommitteeDetail, error) {
	out := make([]models.CommitteeDetail, 0, len(m.committees))
	for _, c := range m.committees {
		out = append(out, models.CommitteeDetail{Committee: c})
	}
	return out, nil
}

func (m *mockCommitteeRepo) ListByOrganization(ctx context.Context, organizationID string) ([]models.CommitteeDetail, error) {
	m.lastOrgID = organizationID
	var out []models.CommitteeDetail
	for _, c := range m.committees {
		if c.OrganizationID == organizationID {
			out = append(out, models.CommitteeDetail{Committee: c})
		}
	}
	return out, nil
}

func (m *mockCommitteeRepo) FindByKey(ctx context.Context, committeeID int64) (*models.CommitteeDetail, error) {
	if c, ok := m.committees[committeeID]; ok {
		return &models.CommitteeDetail{Committee: c}, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockCommitteeRepo) Exists(ctx context.Context, committeeID int64) (bool, error) {
	_, ok := m.committees[committeeID]
	return ok, nil
}

func (m *mockCommitteeRepo) Create(ctx context.Context, committee *models.Committee) error {
	if m.createErr != nil {
		return m.createErr
	}
	if m.committees == nil {
		m.committees = make(map[int64]models.Committee)
	}
	m.nextID++
	committee.CommitteeID = m.nextID
	m.committees[committee.CommitteeID] = *committee
	return nil
}

func (m *mockCommitteeRepo) Update(ctx context.Context, committee *models.Committee) error {
	m.committees[committee.CommitteeID] = *committee
	return nil
}

func (m *mockCommitteeRepo) Delete(ctx context.Context, committeeID int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, committeeID)
	delete(m.committees, committeeID)
	return nil
}

func TestCommitteeServiceCreateAssignsGeneratedID(t *testing.T) {
	repo := &mockCommitteeRepo{}
	svc := NewCommitteeService(repo, NewValidator(), zap.NewNop())

	committee, err := svc.Create(context.Background(), CreateCommitteeRequest{
		OrganizationID: "ORG-ACM",
		CommitteeName:  "Logistics",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), committee.CommitteeID)
	assert.Equal(t, "Logistics", committee.CommitteeName)

	second, err := svc.Create(context.Background(), CreateCommitteeRequest{
		OrganizationID: "ORG-ACM",
		CommitteeName:  "Finance",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.CommitteeID)
}

func TestCommitteeServiceCreateMissingOrganization(t *testing.T) {
	svc := NewCommitteeService(&mockCommitteeRepo{}, NewValidator(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateCommitteeRequest{CommitteeName: "Logistics"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Contains(t, appErr.Message, "organization_id")
}

func TestCommitteeServiceCreateUnknownOrganization(t *testing.T) {
	repo := &mockCommitteeRepo{createErr: &pq.Error{Code: "23503"}}
	svc := NewCommitteeService(repo, NewValidator(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateCommitteeRequest{OrganizationID: "ORG-NONE"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Contains(t, appErr.Message, "ORG-NONE")
}

func TestCommitteeServiceListScopedToOrganization(t *testing.T) {
	repo := &mockCommitteeRepo{committees: map[int64]models.Committee{
		1: {CommitteeID: 1, OrganizationID: "ORG-ACM", CommitteeName: "Logistics"},
		2: {CommitteeID: 2, OrganizationID: "ORG-IEEE", CommitteeName: "Programs"},
	}}
	svc := NewCommitteeService(repo, NewValidator(), zap.NewNop())

	scoped, err := svc.List(context.Background(), "ORG-ACM")
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "Logistics", scoped[0].CommitteeName)
	assert.Equal(t, "ORG-ACM", repo.lastOrgID)

	all, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCommitteeServiceUpdateOverlaysFields(t *testing.T) {
	repo := &mockCommitteeRepo{committees: map[int64]models.Committee{
		5: {CommitteeID: 5, OrganizationID: "ORG-ACM", CommitteeName: "Logistics"},
	}}
	svc := NewCommitteeService(repo, NewValidator(), zap.NewNop())

	name := "Logistics & Operations"
	updated, err := svc.Update(context.Background(), UpdateCommitteeRequest{
		CommitteeID:   5,
		CommitteeName: &name,
	})
	require.NoError(t, err)
	assert.Equal(t, "Logistics & Operations", updated.CommitteeName)
	assert.Equal(t, "ORG-ACM", updated.OrganizationID)
}

func TestCommitteeServiceUpdateNotFound(t *testing.T) {
	svc := NewCommitteeService(&mockCommitteeRepo{}, NewValidator(), zap.NewNop())

	_, err := svc.Update(context.Background(), UpdateCommitteeRequest{CommitteeID: 99})
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}

func TestCommitteeServiceUpdateMissingKey(t *testing.T) {
	svc := NewCommitteeService(&mockCommitteeRepo{}, NewValidator(), zap.NewNop())

	_, err := svc.Update(context.Background(), UpdateCommitteeRequest{})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Contains(t, appErr.Message, "committee_id")
}

func TestCommitteeServiceDelete(t *testing.T) {
	repo := &mockCommitteeRepo{committees: map[int64]models.Committee{
		5: {CommitteeID: 5, OrganizationID: "ORG-ACM"},
	}}
	svc := NewCommitteeService(repo, NewValidator(), zap.NewNop())

	require.NoError(t, svc.Delete(context.Background(), 5))
	assert.Equal(t, []int64{5}, repo.deleted)
}

func TestCommitteeServiceDeleteMissingKey(t *testing.T) {
	svc := NewCommitteeService(&mockCommitteeRepo{}, NewValidator(), zap.NewNop())

	err := svc.Delete(context.Background(), 0)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Contains(t, appErr.Message, "committee_id")
}

func TestCommitteeServiceDeleteNotFound(t *testing.T) {
	svc := NewCommitteeService(&mockCommitteeRepo{}, NewValidator(), zap.NewNop())

	err := svc.Delete(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}

func TestCommitteeServiceDeleteStillReferenced(t *testing.T) {
	repo := &mockCommitteeRepo{
		committees: map[int64]models.Committee{5: {CommitteeID: 5}},
		deleteErr:  &pq.Error{Code: "23503"},
	}
	svc := NewCommitteeService(repo, NewValidator(), zap.NewNop())

	err := svc.Delete(context.Background(), 5)
	require.Error(t, err)
	assert.Equal(t, 409, appErrors.FromError(err).Status)
}
