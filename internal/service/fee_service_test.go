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

type mockFeeRepo struct {
	fees       map[string]models.Fee
	lastFilter models.FeeFilter
	createErr  error
}

func (m *mockFeeRepo) List(ctx context.Context, filter models.FeeFilter) ([]models.FeeDetail, error) {
	m.lastFilter = filter
	out := make([]models.FeeDetail, 0, len(m.fees))
	for _, f := range m.fees {
		if filter.Status != "" && f.Status != filter.Status {
			continue
		}
		out = append(out, models.FeeDetail{Fee: f})
	}
	return out, nil
}

func (m *mockFeeRepo) FindByKey(ctx context.Context, feeID string) (*models.FeeDetail, error) {
	if f, ok := m.fees[feeID]; ok {
		return &models.FeeDetail{Fee: f}, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockFeeRepo) Exists(ctx context.Context, feeID string) (bool, error) {
	_, ok := m.fees[feeID]
	return ok, nil
}

func (m *mockFeeRepo) Create(ctx context.Context, fee *models.Fee) error {
	if m.createErr != nil {
		return m.createErr
	}
	if m.fees == nil {
		m.fees = make(map[string]models.Fee)
	}
	m.fees[fee.FeeID] = *fee
	return nil
}

func (m *mockFeeRepo) Update(ctx context.Context, fee *models.Fee) error {
	m.fees[fee.FeeID] = *fee
	return nil
}

func (m *mockFeeRepo) UpdateStatus(ctx context.Context, feeID string, status models.FeeStatus) error {
	f := m.fees[feeID]
	f.Status = status
	m.fees[feeID] = f
	return nil
}

func (m *mockFeeRepo) Delete(ctx context.Context, feeID string) error {
	delete(m.fees, feeID)
	return nil
}

func floatPtr(v float64) *float64 { return &v }

func TestFeeServiceCreateDefaultsToUnpaid(t *testing.T) {
	repo := &mockFeeRepo{}
	svc := NewFeeService(repo, NewValidator(), zap.NewNop())

	created, err := svc.Create(context.Background(), CreateFeeRequest{
		FeeID:          "FEE-001",
		Label:          "Membership Fee",
		Amount:         floatPtr(150),
		OrganizationID: "ORG-001",
		StudentNumber:  "2021-00001",
	})
	require.NoError(t, err)
	assert.Equal(t, models.FeeStatusUnpaid, created.Status)
	assert.Equal(t, 150.0, created.Amount)
}

func TestFeeServiceCreateZeroAmountAllowed(t *testing.T) {
	repo := &mockFeeRepo{}
	svc := NewFeeService(repo, NewValidator(), zap.NewNop())

	created, err := svc.Create(context.Background(), CreateFeeRequest{
		FeeID:          "FEE-002",
		Amount:         floatPtr(0),
		OrganizationID: "ORG-001",
		StudentNumber:  "2021-00001",
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, created.Amount)
}

func TestFeeServiceCreateMissingFields(t *testing.T) {
	svc := NewFeeService(&mockFeeRepo{}, NewValidator(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateFeeRequest{Label: "No key"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Contains(t, appErr.Message, "fee_id")
	assert.Contains(t, appErr.Message, "amount")
	assert.Contains(t, appErr.Message, "organization_id")
	assert.Contains(t, appErr.Message, "student_number")
}

func TestFeeServiceCreateDuplicate(t *testing.T) {
	repo := &mockFeeRepo{fees: map[string]models.Fee{"FEE-001": {FeeID: "FEE-001"}}}
	svc := NewFeeService(repo, NewValidator(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateFeeRequest{
		FeeID:          "FEE-001",
		Amount:         floatPtr(100),
		OrganizationID: "ORG-001",
		StudentNumber:  "2021-00001",
	})
	require.Error(t, err)
	assert.Equal(t, 409, appErrors.FromError(err).Status)
}

func TestFeeServiceCreateUnknownParent(t *testing.T) {
	repo := &mockFeeRepo{createErr: &pq.Error{Code: "23503"}}
	svc := NewFeeService(repo, NewValidator(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateFeeRequest{
		FeeID:          "FEE-003",
		Amount:         floatPtr(100),
		OrganizationID: "ORG-404",
		StudentNumber:  "2021-00001",
	})
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}

func TestFeeServiceUpdateStatus(t *testing.T) {
	repo := &mockFeeRepo{fees: map[string]models.Fee{
		"FEE-001": {FeeID: "FEE-001", Status: models.FeeStatusUnpaid, Amount: 150},
	}}
	svc := NewFeeService(repo, NewValidator(), zap.NewNop())

	result, err := svc.UpdateStatus(context.Background(), UpdateFeeStatusRequest{
		FeeID:  "FEE-001",
		Status: models.FeeStatusPaid,
	})
	require.NoError(t, err)
	assert.Equal(t, models.FeeStatusPaid, result.Status)
	assert.Equal(t, models.FeeStatusPaid, repo.fees["FEE-001"].Status)
}

func TestFeeServiceUpdateStatusRejectsUnknownValue(t *testing.T) {
	svc := NewFeeService(&mockFeeRepo{}, NewValidator(), zap.NewNop())

	_, err := svc.UpdateStatus(context.Background(), UpdateFeeStatusRequest{
		FeeID:  "FEE-001",
		Status: "Waived",
	})
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}

func TestFeeServiceUpdateStatusNotFound(t *testing.T) {
	svc := NewFeeService(&mockFeeRepo{}, NewValidator(), zap.NewNop())

	_, err := svc.UpdateStatus(context.Background(), UpdateFeeStatusRequest{
		FeeID:  "FEE-404",
		Status: models.FeeStatusPaid,
	})
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}

func TestFeeServiceUnpaidExcludesPaid(t *testing.T) {
	repo := &mockFeeRepo{fees: map[string]models.Fee{
		"FEE-001": {FeeID: "FEE-001", Status: models.FeeStatusUnpaid},
		"FEE-002": {FeeID: "FEE-002", Status: models.FeeStatusPaid},
	}}
	svc := NewFeeService(repo, NewValidator(), zap.NewNop())

	unpaid, err := svc.Unpaid(context.Background())
	require.NoError(t, err)
	require.Len(t, unpaid, 1)
	assert.Equal(t, "FEE-001", unpaid[0].FeeID)
	assert.Equal(t, models.FeeStatusUnpaid, repo.lastFilter.Status)
}

func TestFeeServiceUpdateOverlaysFields(t *testing.T) {
	repo := &mockFeeRepo{fees: map[string]models.Fee{
		"FEE-001": {FeeID: "FEE-001", Label: "Old", Status: models.FeeStatusUnpaid, Amount: 100, OrganizationID: "ORG-001", StudentNumber: "2021-00001"},
	}}
	svc := NewFeeService(repo, NewValidator(), zap.NewNop())

	label := "Updated Fee"
	updated, err := svc.Update(context.Background(), UpdateFeeRequest{FeeID: "FEE-001", Label: &label})
	require.NoError(t, err)
	assert.Equal(t, "Updated Fee", updated.Label)
	assert.Equal(t, 100.0, updated.Amount)
	assert.Equal(t, "ORG-001", updated.OrganizationID)
}

func TestFeeServiceDeleteMissingKey(t *testing.T) {
	svc := NewFeeService(&mockFeeRepo{}, NewValidator(), zap.NewNop())

	err := svc.Delete(context.Background(), "")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Contains(t, appErr.Message, "fee_id")
}

func TestFeeServiceDelete(t *testing.T) {
	repo := &mockFeeRepo{fees: map[string]models.Fee{"FEE-001": {FeeID: "FEE-001"}}}
	svc := NewFeeService(repo, NewValidator(), zap.NewNop())

	require.NoError(t, svc.Delete(context.Background(), "FEE-001"))
	assert.Empty(t, repo.fees)
}
