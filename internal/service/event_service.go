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

type eventRepository interface {
	List(ctx context.Context) ([]models.EventDetail, error)
	ListByOrganization(ctx context.Context, organizationID string) ([]models.EventDetail, error)
	FindByKey(ctx context.Context, eventID int64) (*models.EventDetail, error)
	Exists(ctx context.Context, eventID int64) (bool, error)
	Create(ctx context.Context, event *models.Event) error
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, eventID int64) error
}

// CreateEventRequest holds payload for creating events.
type CreateEventRequest struct {
	OrganizationID string `json:"organization_id" validate:"required"`
	EventName      string `json:"event_name" validate:"required"`
}

// UpdateEventRequest holds payload for updating events.
type UpdateEventRequest struct {
	EventID        int64   `json:"event_id" validate:"required"`
	OrganizationID *string `json:"organization_id"`
	EventName      *string `json:"event_name"`
}

// EventService handles event use-cases.
type EventService struct {
	repo      eventRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEventService constructs the event service.
func NewEventService(repo eventRepository, validate *validator.Validate, logger *zap.Logger) *EventService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventService{repo: repo, validator: validate, logger: logger}
}

// List returns events, optionally scoped to one organization.
func (s *EventService) List(ctx context.Context, organizationID string) ([]models.EventDetail, error) {
	var events []models.EventDetail
	var err error
	if organizationID != "" {
		events, err = s.repo.ListByOrganization(ctx, organizationID)
	} else {
		events, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return events, nil
}

// Create registers a new event and returns it with its generated ID.
func (s *EventService) Create(ctx context.Context, req CreateEventRequest) (*models.EventDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, payloadError(err)
	}
	event := &models.Event{
		OrganizationID: req.OrganizationID,
		EventName:      req.EventName,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown organization_id %s", req.OrganizationID))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return s.repo.FindByKey(ctx, event.EventID)
}

// Update overlays submitted fields and responds with the committed row.
func (s *EventService) Update(ctx context.Context, req UpdateEventRequest) (*models.EventDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, payloadError(err)
	}
	detail, err := s.repo.FindByKey(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("event %d does not exist", req.EventID))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	event := detail.Event
	if req.OrganizationID != nil {
		event.OrganizationID = *req.OrganizationID
	}
	if req.EventName != nil {
		event.EventName = *req.EventName
	}
	if err := s.repo.Update(ctx, &event); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown organization_id %s", event.OrganizationID))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return s.repo.FindByKey(ctx, req.EventID)
}

// Delete removes an event by ID.
func (s *EventService) Delete(ctx context.Context, eventID int64) error {
	if eventID == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "missing required field(s): event_id")
	}
	exists, err := s.repo.Exists(ctx, eventID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	if !exists {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("event %d does not exist", eventID))
	}
	if err := s.repo.Delete(ctx, eventID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return nil
}
