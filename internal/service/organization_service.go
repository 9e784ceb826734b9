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

type organizationRepository interface {
	List(ctx context.Context) ([]models.OrganizationSummary, error)
	FindByKey(ctx context.Context, organizationID string) (*models.Organization, error)
	Exists(ctx context.Context, organizationID string) (bool, error)
	Create(ctx context.Context, org *models.Organization) error
	Update(ctx context.Context, org *models.Organization) error
	Delete(ctx context.Context, organizationID string) error
}

// CreateOrganizationRequest holds payload for creating organizations.
type CreateOrganizationRequest struct {
	OrganizationID   string `json:"organization_id" validate:"required"`
	OrganizationName string `json:"organization_name"`
}

// UpdateOrganizationRequest holds payload for updating organizations.
type UpdateOrganizationRequest struct {
	OrganizationID   string  `json:"organization_id" validate:"required"`
	OrganizationName *string `json:"organization_name"`
}

// OrganizationService handles organization use-cases.
type OrganizationService struct {
	repo      organizationRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewOrganizationService constructs the organization service.
func NewOrganizationService(repo organizationRepository, validate *validator.Validate, logger *zap.Logger) *OrganizationService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrganizationService{repo: repo, validator: validate, logger: logger}
}

// List returns every organization with member counts.
func (s *OrganizationService) List(ctx context.Context) ([]models.OrganizationSummary, error) {
	orgs, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return orgs, nil
}

// Create registers a new organization.
func (s *OrganizationService) Create(ctx context.Context, req CreateOrganizationRequest) (*models.Organization, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, payloadError(err)
	}
	exists, err := s.repo.Exists(ctx, req.OrganizationID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("organization %s already exists", req.OrganizationID))
	}
	org := &models.Organization{
		OrganizationID:   req.OrganizationID,
		OrganizationName: req.OrganizationName,
	}
	if err := s.repo.Create(ctx, org); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("organization %s already exists", req.OrganizationID))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return s.repo.FindByKey(ctx, org.OrganizationID)
}

// Update overlays submitted fields and responds with the committed row.
func (s *OrganizationService) Update(ctx context.Context, req UpdateOrganizationRequest) (*models.Organization, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, payloadError(err)
	}
	org, err := s.repo.FindByKey(ctx, req.OrganizationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("organization %s does not exist", req.OrganizationID))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	if req.OrganizationName != nil {
		org.OrganizationName = *req.OrganizationName
	}
	if err := s.repo.Update(ctx, org); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return s.repo.FindByKey(ctx, req.OrganizationID)
}

// Delete removes an organization by ID.
func (s *OrganizationService) Delete(ctx context.Context, organizationID string) error {
	if organizationID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "missing required field(s): organization_id")
	}
	exists, err := s.repo.Exists(ctx, organizationID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	if !exists {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("organization %s does not exist", organizationID))
	}
	if err := s.repo.Delete(ctx, organizationID); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("organization %s is still referenced by committees, memberships, fees, or events", organizationID))
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return nil
}
