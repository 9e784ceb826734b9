package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuslabs/orgfee-api/internal/models"
	"github.com/campuslabs/orgfee-api/internal/service"
	appErrors "github.com/campuslabs/orgfee-api/pkg/errors"
	"github.com/campuslabs/orgfee-api/pkg/response"
)

type eventService interface {
	List(ctx context.Context, organizationID string) ([]models.EventDetail, error)
	Create(ctx context.Context, req service.CreateEventRequest) (*models.EventDetail, error)
	Update(ctx context.Context, req service.UpdateEventRequest) (*models.EventDetail, error)
	Delete(ctx context.Context, eventID int64) error
}

// EventHandler exposes organization event endpoints.
type EventHandler struct {
	events eventService
}

// NewEventHandler constructs EventHandler.
func NewEventHandler(events eventService) *EventHandler {
	return &EventHandler{events: events}
}

// List godoc
// @Summary List events
// @Tags Events
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /organization-event [get]
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.events.List(c.Request.Context(), "")
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, events)
}

// ListByOrganization godoc
// @Summary List events hosted by one organization
// @Tags Events
// @Produce json
// @Param organizationId path string true "Organization ID"
// @Success 200 {object} response.Envelope
// @Router /organization-event/{organizationId} [get]
func (h *EventHandler) ListByOrganization(c *gin.Context) {
	events, err := h.events.List(c.Request.Context(), c.Param("organizationId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, events)
}

// Create godoc
// @Summary Register an event
// @Tags Events
// @Accept json
// @Produce json
// @Param payload body service.CreateEventRequest true "Event payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /organization-event [post]
func (h *EventHandler) Create(c *gin.Context) {
	var req service.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid JSON payload"))
		return
	}
	event, err := h.events.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, event)
}

// Update godoc
// @Summary Update an event
// @Tags Events
// @Accept json
// @Produce json
// @Param payload body service.UpdateEventRequest true "Event payload with key"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /organization-event [put]
func (h *EventHandler) Update(c *gin.Context) {
	var req service.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid JSON payload"))
		return
	}
	event, err := h.events.Update(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event)
}

// Delete godoc
// @Summary Delete an event
// @Tags Events
// @Accept json
// @Produce plain
// @Param payload body object{event_id=int} true "Key payload"
// @Success 200 {string} string "confirmation"
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /organization-event [delete]
func (h *EventHandler) Delete(c *gin.Context) {
	var req struct {
		EventID int64 `json:"event_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid JSON payload"))
		return
	}
	if err := h.events.Delete(c.Request.Context(), req.EventID); err != nil {
		response.Error(c, err)
		return
	}
	response.Text(c, http.StatusOK, fmt.Sprintf("event %d deleted", req.EventID))
}
