package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campuslabs/orgfee-api/internal/models"
	"github.com/campuslabs/orgfee-api/internal/repository"
	appErrors "github.com/campuslabs/orgfee-api/pkg/errors"
)

type feeRepository interface {
	List(ctx context.Context, filter models.FeeFilter) ([]models.FeeDetail, error)
	FindByKey(ctx context.Context, feeID string) (*models.FeeDetail, error)
	Exists(ctx context.Context, feeID string) (bool, error)
	Create(ctx context.Context, fee *models.Fee) error
	Update(ctx context.Context, fee *models.Fee) error
	UpdateStatus(ctx context.Context, feeID string, status models.FeeStatus) error
	Delete(ctx context.Context, feeID string) error
}

// CreateFeeRequest holds payload for issuing fees.
type CreateFeeRequest struct {
	FeeID          string           `json:"fee_id" validate:"required"`
	Label          string           `json:"label"`
	Status         models.FeeStatus `json:"status" validate:"omitempty,oneof=Unpaid Paid Late"`
	Amount         *float64         `json:"amount" validate:"required"`
	DateIssue      *time.Time       `json:"date_issue"`
	DueDate        *time.Time       `json:"due_date"`
	OrganizationID string           `json:"organization_id" validate:"required"`
	StudentNumber  string           `json:"student_number" validate:"required"`
}

// UpdateFeeRequest holds payload for updating fees. Only the key is
// required; omitted fields keep their stored values.
type UpdateFeeRequest struct {
	FeeID          string            `json:"fee_id" validate:"required"`
	Label          *string           `json:"label"`
	Status         *models.FeeStatus `json:"status" validate:"omitempty,oneof=Unpaid Paid Late"`
	Amount         *float64          `json:"amount"`
	DateIssue      *time.Time        `json:"date_issue"`
	DueDate        *time.Time        `json:"due_date"`
	OrganizationID *string           `json:"organization_id"`
	StudentNumber  *string           `json:"student_number"`
}

// UpdateFeeStatusRequest holds payload for the status-only path.
type UpdateFeeStatusRequest struct {
	FeeID  string           `json:"fee_id" validate:"required"`
	Status models.FeeStatus `json:"status" validate:"required,oneof=Unpaid Paid Late"`
}

// FeeStatusResult is the status-change response body.
type FeeStatusResult struct {
	FeeID   string           `json:"fee_id"`
	Status  models.FeeStatus `json:"status"`
	Message string           `json:"message"`
}

// FeeService handles fee use-cases.
type FeeService struct {
	repo      feeRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFeeService constructs the fee service.
func NewFeeService(repo feeRepository, validate *validator.Validate, logger *zap.Logger) *FeeService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeeService{repo: repo, validator: validate, logger: logger}
}

// List returns fees matching the filter.
func (s *FeeService) List(ctx context.Context, filter models.FeeFilter) ([]models.FeeDetail, error) {
	fees, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return fees, nil
}

// Unpaid returns fees whose status is Unpaid.
func (s *FeeService) Unpaid(ctx context.Context) ([]models.FeeDetail, error) {
	return s.List(ctx, models.FeeFilter{Status: models.FeeStatusUnpaid})
}

// Create issues a new fee, defaulting status to Unpaid when absent.
func (s *FeeService) Create(ctx context.Context, req CreateFeeRequest) (*models.FeeDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, payloadError(err)
	}
	exists, err := s.repo.Exists(ctx, req.FeeID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("fee %s already exists", req.FeeID))
	}
	fee := &models.Fee{
		FeeID:          req.FeeID,
		Label:          req.Label,
		Status:         req.Status,
		Amount:         *req.Amount,
		DateIssue:      req.DateIssue,
		DueDate:        req.DueDate,
		OrganizationID: req.OrganizationID,
		StudentNumber:  req.StudentNumber,
	}
	if fee.Status == "" {
		fee.Status = models.FeeStatusUnpaid
	}
	if err := s.repo.Create(ctx, fee); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("fee %s already exists", req.FeeID))
		}
		if repository.IsForeignKeyViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown organization_id or student_number reference")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return s.repo.FindByKey(ctx, fee.FeeID)
}

// Update overlays submitted fields and responds with the committed row.
func (s *FeeService) Update(ctx context.Context, req UpdateFeeRequest) (*models.FeeDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, payloadError(err)
	}
	detail, err := s.repo.FindByKey(ctx, req.FeeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("fee %s does not exist", req.FeeID))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	fee := detail.Fee
	if req.Label != nil {
		fee.Label = *req.Label
	}
	if req.Status != nil {
		fee.Status = *req.Status
	}
	if req.Amount != nil {
		fee.Amount = *req.Amount
	}
	if req.DateIssue != nil {
		fee.DateIssue = req.DateIssue
	}
	if req.DueDate != nil {
		fee.DueDate = req.DueDate
	}
	if req.OrganizationID != nil {
		fee.OrganizationID = *req.OrganizationID
	}
	if req.StudentNumber != nil {
		fee.StudentNumber = *req.StudentNumber
	}
	if err := s.repo.Update(ctx, &fee); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown organization_id or student_number reference")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return s.repo.FindByKey(ctx, req.FeeID)
}

// UpdateStatus changes only the fee status and reports the committed value.
func (s *FeeService) UpdateStatus(ctx context.Context, req UpdateFeeStatusRequest) (*FeeStatusResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, payloadError(err)
	}
	exists, err := s.repo.Exists(ctx, req.FeeID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	if !exists {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("fee %s does not exist", req.FeeID))
	}
	if err := s.repo.UpdateStatus(ctx, req.FeeID, req.Status); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	detail, err := s.repo.FindByKey(ctx, req.FeeID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return &FeeStatusResult{
		FeeID:   detail.FeeID,
		Status:  detail.Status,
		Message: fmt.Sprintf("fee %s status set to %s", detail.FeeID, detail.Status),
	}, nil
}

// Delete removes a fee by ID.
func (s *FeeService) Delete(ctx context.Context, feeID string) error {
	if feeID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "missing required field(s): fee_id")
	}
	exists, err := s.repo.Exists(ctx, feeID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	if !exists {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("fee %s does not exist", feeID))
	}
	if err := s.repo.Delete(ctx, feeID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return nil
}
