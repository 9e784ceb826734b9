package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campuslabs/orgfee-api/internal/models"
	"github.com/campuslabs/orgfee-api/internal/repository"
	appErrors "github.com/campuslabs/orgfee-api/pkg/errors"
)

type membershipRepository interface {
	List(ctx context.Context, filter models.MembershipFilter) ([]models.MembershipDetail, error)
	FindByKey(ctx context.Context, studentNumber, organizationID string) (*models.MembershipDetail, error)
	Exists(ctx context.Context, studentNumber, organizationID string) (bool, error)
	Create(ctx context.Context, membership *models.Membership) error
	Update(ctx context.Context, membership *models.Membership) error
	UpdateStatus(ctx context.Context, studentNumber, organizationID string, status models.MembershipStatus) error
	Delete(ctx context.Context, studentNumber, organizationID string) error
}

// CreateMembershipRequest holds payload for creating memberships.
type CreateMembershipRequest struct {
	StudentNumber  string                  `json:"student_number" validate:"required"`
	OrganizationID string                  `json:"organization_id" validate:"required"`
	CommitteeID    *int64                  `json:"committee_id"`
	MembershipDate *time.Time              `json:"membership_date"`
	Status         models.MembershipStatus `json:"status" validate:"omitempty,oneof=Active Inactive Alumni Expelled Suspended"`
	Role           string                  `json:"role"`
}

// UpdateMembershipRequest holds payload for updating memberships. Only the
// composite key is required; omitted fields keep their stored values.
type UpdateMembershipRequest struct {
	StudentNumber  string                   `json:"student_number" validate:"required"`
	OrganizationID string                   `json:"organization_id" validate:"required"`
	CommitteeID    *int64                   `json:"committee_id"`
	MembershipDate *time.Time               `json:"membership_date"`
	Status         *models.MembershipStatus `json:"status" validate:"omitempty,oneof=Active Inactive Alumni Expelled Suspended"`
	Role           *string                  `json:"role"`
}

// UpdateMembershipStatusRequest holds payload for the status-only path.
type UpdateMembershipStatusRequest struct {
	StudentNumber  string                  `json:"student_number" validate:"required"`
	OrganizationID string                  `json:"organization_id" validate:"required"`
	Status         models.MembershipStatus `json:"status" validate:"required,oneof=Active Inactive Alumni Expelled Suspended"`
}

// MembershipStatusResult is the status-change response body.
type MembershipStatusResult struct {
	StudentNumber  string                  `json:"student_number"`
	OrganizationID string                  `json:"organization_id"`
	Status         models.MembershipStatus `json:"status"`
	Message        string                  `json:"message"`
}

// MembershipService handles membership use-cases.
type MembershipService struct {
	repo      membershipRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMembershipService constructs the membership service.
func NewMembershipService(repo membershipRepository, validate *validator.Validate, logger *zap.Logger) *MembershipService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MembershipService{repo: repo, validator: validate, logger: logger}
}

// List returns memberships matching the filter.
func (s *MembershipService) List(ctx context.Context, filter models.MembershipFilter) ([]models.MembershipDetail, error) {
	memberships, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return memberships, nil
}

// ActiveMembers returns active memberships, optionally scoped to one
// organization. An empty organizationID means all organizations.
func (s *MembershipService) ActiveMembers(ctx context.Context, organizationID string) ([]models.MembershipDetail, error) {
	return s.List(ctx, models.MembershipFilter{
		OrganizationID: organizationID,
		Status:         models.MembershipStatusActive,
	})
}

func membershipKey(studentNumber, organizationID string) string {
	return fmt.Sprintf("(%s, %s)", studentNumber, organizationID)
}

// Create registers a membership, applying the documented defaults when
// status or role are absent.
func (s *MembershipService) Create(ctx context.Context, req CreateMembershipRequest) (*models.MembershipDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, payloadError(err)
	}
	exists, err := s.repo.Exists(ctx, req.StudentNumber, req.OrganizationID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("membership %s already exists", membershipKey(req.StudentNumber, req.OrganizationID)))
	}
	membership := &models.Membership{
		StudentNumber:  req.StudentNumber,
		OrganizationID: req.OrganizationID,
		CommitteeID:    req.CommitteeID,
		MembershipDate: req.MembershipDate,
		Status:         req.Status,
		Role:           req.Role,
	}
	if membership.Status == "" {
		membership.Status = models.MembershipStatusActive
	}
	if membership.Role == "" {
		membership.Role = models.DefaultMembershipRole
	}
	if err := s.repo.Create(ctx, membership); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("membership %s already exists", membershipKey(req.StudentNumber, req.OrganizationID)))
		}
		if repository.IsForeignKeyViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown student_number, organization_id, or committee_id reference")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return s.repo.FindByKey(ctx, membership.StudentNumber, membership.OrganizationID)
}

// Update overlays submitted fields and responds with the committed row.
func (s *MembershipService) Update(ctx context.Context, req UpdateMembershipRequest) (*models.MembershipDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, payloadError(err)
	}
	detail, err := s.repo.FindByKey(ctx, req.StudentNumber, req.OrganizationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("membership %s does not exist", membershipKey(req.StudentNumber, req.OrganizationID)))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	membership := detail.Membership
	if req.CommitteeID != nil {
		membership.CommitteeID = req.CommitteeID
	}
	if req.MembershipDate != nil {
		membership.MembershipDate = req.MembershipDate
	}
	if req.Status != nil {
		membership.Status = *req.Status
	}
	if req.Role != nil {
		membership.Role = *req.Role
	}
	if err := s.repo.Update(ctx, &membership); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown committee_id reference")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return s.repo.FindByKey(ctx, req.StudentNumber, req.OrganizationID)
}

// UpdateStatus changes only the membership status and reports the committed value.
func (s *MembershipService) UpdateStatus(ctx context.Context, req UpdateMembershipStatusRequest) (*MembershipStatusResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, payloadError(err)
	}
	exists, err := s.repo.Exists(ctx, req.StudentNumber, req.OrganizationID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	if !exists {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("membership %s does not exist", membershipKey(req.StudentNumber, req.OrganizationID)))
	}
	if err := s.repo.UpdateStatus(ctx, req.StudentNumber, req.OrganizationID, req.Status); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	detail, err := s.repo.FindByKey(ctx, req.StudentNumber, req.OrganizationID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return &MembershipStatusResult{
		StudentNumber:  detail.StudentNumber,
		OrganizationID: detail.OrganizationID,
		Status:         detail.Status,
		Message:        fmt.Sprintf("membership %s status set to %s", membershipKey(detail.StudentNumber, detail.OrganizationID), detail.Status),
	}, nil
}

// Delete removes one membership; other memberships of the same student or
// organization are untouched.
func (s *MembershipService) Delete(ctx context.Context, studentNumber, organizationID string) error {
	var missing []string
	if studentNumber == "" {
		missing = append(missing, "student_number")
	}
	if organizationID == "" {
		missing = append(missing, "organization_id")
	}
	if len(missing) > 0 {
		return appErrors.Clone(appErrors.ErrValidation, "missing required field(s): "+strings.Join(missing, ", "))
	}
	exists, err := s.repo.Exists(ctx, studentNumber, organizationID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	if !exists {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("membership %s does not exist", membershipKey(studentNumber, organizationID)))
	}
	if err := s.repo.Delete(ctx, studentNumber, organizationID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return nil
}
