package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuslabs/orgfee-api/internal/models"
	"github.com/campuslabs/orgfee-api/internal/service"
	appErrors "github.com/campuslabs/orgfee-api/pkg/errors"
)

type fakeFeeSrv struct {
	listResp   []models.FeeDetail
	lastFilter models.FeeFilter
	unpaidResp []models.FeeDetail
	createResp *models.FeeDetail
	createErr  error
	statusResp *service.FeeStatusResult
	statusErr  error
	deleteErr  error
}

func (f *fakeFeeSrv) List(_ context.Context, filter models.FeeFilter) ([]models.FeeDetail, error) {
	f.lastFilter = filter
	return f.listResp, nil
}

func (f *fakeFeeSrv) Unpaid(context.Context) ([]models.FeeDetail, error) {
	return f.unpaidResp, nil
}

func (f *fakeFeeSrv) Create(context.Context, service.CreateFeeRequest) (*models.FeeDetail, error) {
	return f.createResp, f.createErr
}

func (f *fakeFeeSrv) Update(context.Context, service.UpdateFeeRequest) (*models.FeeDetail, error) {
	return nil, nil
}

func (f *fakeFeeSrv) UpdateStatus(context.Context, service.UpdateFeeStatusRequest) (*service.FeeStatusResult, error) {
	return f.statusResp, f.statusErr
}

func (f *fakeFeeSrv) Delete(context.Context, string) error {
	return f.deleteErr
}

func TestFeeHandlerCreateAppliesDefaultStatus(t *testing.T) {
	srv := &fakeFeeSrv{createResp: &models.FeeDetail{
		Fee: models.Fee{FeeID: "F100", Status: models.FeeStatusUnpaid, Amount: 500},
	}}
	handler := NewFeeHandler(srv)

	rec := performJSON(t, handler.Create, http.MethodPost, "/fee", map[string]interface{}{
		"fee_id":          "F100",
		"amount":          500,
		"organization_id": "ORG1",
		"student_number":  "2021-00001",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	var envelope struct {
		Data models.FeeDetail `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, models.FeeStatusUnpaid, envelope.Data.Status)
}

func TestFeeHandlerCreateMissingFields(t *testing.T) {
	srv := &fakeFeeSrv{createErr: appErrors.Clone(appErrors.ErrValidation, "missing required field(s): fee_id, amount, organization_id, student_number")}
	handler := NewFeeHandler(srv)

	rec := performJSON(t, handler.Create, http.MethodPost, "/fee", map[string]interface{}{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "fee_id")
}

func TestFeeHandlerUnpaid(t *testing.T) {
	srv := &fakeFeeSrv{unpaidResp: []models.FeeDetail{
		{Fee: models.Fee{FeeID: "F100", Status: models.FeeStatusUnpaid}},
	}}
	handler := NewFeeHandler(srv)

	rec := performJSON(t, handler.Unpaid, http.MethodGet, "/fee/unpaid", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data []models.FeeDetail `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "F100", envelope.Data[0].FeeID)
}

func TestFeeHandlerUpdateStatus(t *testing.T) {
	srv := &fakeFeeSrv{statusResp: &service.FeeStatusResult{
		FeeID:   "F100",
		Status:  models.FeeStatusPaid,
		Message: "fee F100 status set to Paid",
	}}
	handler := NewFeeHandler(srv)

	rec := performJSON(t, handler.UpdateStatus, http.MethodPatch, "/fee/status", map[string]string{
		"fee_id": "F100",
		"status": "Paid",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data service.FeeStatusResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, models.FeeStatusPaid, envelope.Data.Status)
	assert.Contains(t, envelope.Data.Message, "F100")
}

func TestFeeHandlerUpdateStatusNotFound(t *testing.T) {
	srv := &fakeFeeSrv{statusErr: appErrors.Clone(appErrors.ErrNotFound, "fee F404 does not exist")}
	handler := NewFeeHandler(srv)

	rec := performJSON(t, handler.UpdateStatus, http.MethodPatch, "/fee/status", map[string]string{
		"fee_id": "F404",
		"status": "Paid",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFeeHandlerListByStudent(t *testing.T) {
	srv := &fakeFeeSrv{}
	handler := NewFeeHandler(srv)

	rec := performJSONWithParam(t, handler.ListByStudent, http.MethodGet, "/fee/2021-00001", "studentNumber", "2021-00001")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2021-00001", srv.lastFilter.StudentNumber)
}
