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

type mockOrganizationRepo struct {
	orgs      map[string]models.Organization
	createErr error
	deleteErr error
	deleted   []string
}

func (m *mockOrganizationRepo) List(ctx context.Context) ([]models.OrganizationSummary, error) {
	out := make([]models.OrganizationSummary, 0, len(m.orgs))
	for _, o := range m.orgs {
		out = append(out, models.OrganizationSummary{Organization: o})
	}
	return out, nil
}

func (m *mockOrganizationRepo) FindByKey(ctx context.Context, organizationID string) (*models.Organization, error) {
	if o, ok := m.orgs[organizationID]; ok {
		return &o, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockOrganizationRepo) Exists(ctx context.Context, organizationID string) (bool, error) {
	_, ok := m.orgs[organizationID]
	return ok, nil
}

func (m *mockOrganizationRepo) Create(ctx context.Context, org *models.Organization) error {
	if m.createErr != nil {
		return m.createErr
	}
	if m.orgs == nil {
		m.orgs = make(map[string]models.Organization)
	}
	m.orgs[org.OrganizationID] = *org
	return nil
}

func (m *mockOrganizationRepo) Update(ctx context.Context, org *models.Organization) error {
	m.orgs[org.OrganizationID] = *org
	return nil
}

func (m *mockOrganizationRepo) Delete(ctx context.Context, organizationID string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, organizationID)
	delete(m.orgs, organizationID)
	return nil
}

func TestOrganizationServiceCreate(t *testing.T) {
	repo := &mockOrganizationRepo{}
	svc := NewOrganizationService(repo, NewValidator(), zap.NewNop())

	org, err := svc.Create(context.Background(), CreateOrganizationRequest{
		OrganizationID:   "ORG-ACM",
		OrganizationName: "ACM Student Chapter",
	})
	require.NoError(t, err)
	assert.Equal(t, "ORG-ACM", org.OrganizationID)
	assert.Equal(t, "ACM Student Chapter", org.OrganizationName)
	assert.Len(t, repo.orgs, 1)
}

func TestOrganizationServiceCreateMissingKey(t *testing.T) {
	svc := NewOrganizationService(&mockOrganizationRepo{}, NewValidator(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateOrganizationRequest{OrganizationName: "No Key"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Contains(t, appErr.Message, "organization_id")
}

func TestOrganizationServiceCreateDuplicate(t *testing.T) {
	repo := &mockOrganizationRepo{}
	svc := NewOrganizationService(repo, NewValidator(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateOrganizationRequest{OrganizationID: "ORG-ACM"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateOrganizationRequest{OrganizationID: "ORG-ACM"})
	require.Error(t, err)
	assert.Equal(t, 409, appErrors.FromError(err).Status)
	assert.Len(t, repo.orgs, 1)
}

func TestOrganizationServiceCreateUniqueViolationFromStore(t *testing.T) {
	repo := &mockOrganizationRepo{createErr: &pq.Error{Code: "23505"}}
	svc := NewOrganizationService(repo, NewValidator(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateOrganizationRequest{OrganizationID: "ORG-ACM"})
	require.Error(t, err)
	assert.Equal(t, 409, appErrors.FromError(err).Status)
}

func TestOrganizationServiceUpdateOverlaysFields(t *testing.T) {
	repo := &mockOrganizationRepo{orgs: map[string]models.Organization{
		"ORG-ACM": {OrganizationID: "ORG-ACM", OrganizationName: "ACM"},
	}}
	svc := NewOrganizationService(repo, NewValidator(), zap.NewNop())

	name := "ACM Student Chapter"
	updated, err := svc.Update(context.Background(), UpdateOrganizationRequest{
		OrganizationID:   "ORG-ACM",
		OrganizationName: &name,
	})
	require.NoError(t, err)
	assert.Equal(t, "ACM Student Chapter", updated.OrganizationName)
	assert.Equal(t, "ORG-ACM", updated.OrganizationID)
}

func TestOrganizationServiceUpdateNotFound(t *testing.T) {
	svc := NewOrganizationService(&mockOrganizationRepo{}, NewValidator(), zap.NewNop())

	_, err := svc.Update(context.Background(), UpdateOrganizationRequest{OrganizationID: "ORG-NONE"})
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}

func TestOrganizationServiceDelete(t *testing.T) {
	repo := &mockOrganizationRepo{orgs: map[string]models.Organization{
		"ORG-ACM": {OrganizationID: "ORG-ACM"},
	}}
	svc := NewOrganizationService(repo, NewValidator(), zap.NewNop())

	require.NoError(t, svc.Delete(context.Background(), "ORG-ACM"))
	assert.Equal(t, []string{"ORG-ACM"}, repo.deleted)
}

func TestOrganizationServiceDeleteMissingKey(t *testing.T) {
	svc := NewOrganizationService(&mockOrganizationRepo{}, NewValidator(), zap.NewNop())

	err := svc.Delete(context.Background(), "")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Contains(t, appErr.Message, "organization_id")
}

func TestOrganizationServiceDeleteNotFound(t *testing.T) {
	svc := NewOrganizationService(&mockOrganizationRepo{}, NewValidator(), zap.NewNop())

	err := svc.Delete(context.Background(), "ORG-NONE")
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}

func TestOrganizationServiceDeleteStillReferenced(t *testing.T) {
	repo := &mockOrganizationRepo{
		orgs:      map[string]models.Organization{"ORG-ACM": {OrganizationID: "ORG-ACM"}},
		deleteErr: &pq.Error{Code: "23503"},
	}
	svc := NewOrganizationService(repo, NewValidator(), zap.NewNop())

	err := svc.Delete(context.Background(), "ORG-ACM")
	require.Error(t, err)
	assert.Equal(t, 409, appErrors.FromError(err).Status)
}
