package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campuslabs/orgfee-api/internal/models"
	"github.com/campuslabs/orgfee-api/internal/repository"
	appErrors "github.com/campuslabs/orgfee-api/pkg/errors"
)

type committeeRepository interface {
	List(ctx context.Context) ([]models.CommitteeDetail, error)
	ListByOrganization(ctx context.Context, organizationID string) ([]models.CommitteeDetail, error)
	FindByKey(ctx context.Context, committeeID int64) (*models.CommitteeDetail, error)
	Exists(ctx context.Context, committeeID int64) (bool, error)
	Create(ctx context.Context, committee *models.Committee) error
	Update(ctx context.Context, committee *models.Committee) error
	Delete(ctx context.Context, committeeID int64) error
}

// CreateCommitteeRequest holds payload for creating committees.
type CreateCommitteeRequest struct {
	OrganizationID string `json:"organization_id" validate:"required"`
	CommitteeName  string `json:"committee_name"`
}

// UpdateCommitteeRequest holds payload for updating committees.
type UpdateCommitteeRequest struct {
	CommitteeID    int64   `json:"committee_id" validate:"required"`
	OrganizationID *string `json:"organization_id"`
	CommitteeName  *string `json:"committee_name"`
}

// CommitteeService handles committee use-cases.
type CommitteeService struct {
	repo      committeeRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCommitteeService constructs the committee service.
func NewCommitteeService(repo committeeRepository, validate *validator.Validate, logger *zap.Logger) *CommitteeService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommitteeService{repo: repo, validator: validate, logger: logger}
}

// List returns committees, optionally scoped to one organization.
func (s *CommitteeService) List(ctx context.Context, organizationID string) ([]models.CommitteeDetail, error) {
	var committees []models.CommitteeDetail
	var err error
	if organizationID != "" {
		committees, err = s.repo.ListByOrganization(ctx, organizationID)
	} else {
		committees, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return committees, nil
}

// Create registers a new committee and returns it with its generated ID.
// The key is store-generated, so there is no duplicate pre-check; a broken
// organization reference surfaces as a validation error.
func (s *CommitteeService) Create(ctx context.Context, req CreateCommitteeRequest) (*models.CommitteeDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, payloadError(err)
	}
	committee := &models.Committee{
		OrganizationID: req.OrganizationID,
		CommitteeName:  req.CommitteeName,
	}
	if err := s.repo.Create(ctx, committee); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown organization_id %s", req.OrganizationID))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return s.repo.FindByKey(ctx, committee.CommitteeID)
}

// Update overlays submitted fields and responds with the committed row.
func (s *CommitteeService) Update(ctx context.Context, req UpdateCommitteeRequest) (*models.CommitteeDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, payloadError(err)
	}
	detail, err := s.repo.FindByKey(ctx, req.CommitteeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("committee %d does not exist", req.CommitteeID))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	committee := detail.Committee
	if req.OrganizationID != nil {
		committee.OrganizationID = *req.OrganizationID
	}
	if req.CommitteeName != nil {
		committee.CommitteeName = *req.CommitteeName
	}
	if err := s.repo.Update(ctx, &committee); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown organization_id %s", committee.OrganizationID))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return s.repo.FindByKey(ctx, req.CommitteeID)
}

// Delete removes a committee by ID.
func (s *CommitteeService) Delete(ctx context.Context, committeeID int64) error {
	if committeeID == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "missing required field(s): committee_id")
	}
	exists, err := s.repo.Exists(ctx, committeeID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	if !exists {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("committee %d does not exist", committeeID))
	}
	if err := s.repo.Delete(ctx, committeeID); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("committee %d is still referenced by memberships", committeeID))
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return nil
}
