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

type committeeService interface {
	List(ctx context.Context, organizationID string) ([]models.CommitteeDetail, error)
	Create(ctx context.Context, req service.CreateCommitteeRequest) (*models.CommitteeDetail, error)
	Update(ctx context.Context, req service.UpdateCommitteeRequest) (*models.CommitteeDetail, error)
	Delete(ctx context.Context, committeeID int64) error
}

// CommitteeHandler exposes organization committee endpoints.
type CommitteeHandler struct {
	committees committeeService
}

// NewCommitteeHandler constructs CommitteeHandler.
func NewCommitteeHandler(committees committeeService) *CommitteeHandler {
	return &CommitteeHandler{committees: committees}
}

// List godoc
// @Summary List committees
// @Tags Committees
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /organization-committee [get]
func (h *CommitteeHandler) List(c *gin.Context) {
	committees, err := h.committees.List(c.Request.Context(), "")
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, committees)
}

// ListByOrganization godoc
// @Summary List committees of one organization
// @Tags Committees
// @Produce json
// @Param organizationId path string true "Organization ID"
// @Success 200 {object} response.Envelope
// @Router /organization-committee/{organizationId} [get]
func (h *CommitteeHandler) ListByOrganization(c *gin.Context) {
	committees, err := h.committees.List(c.Request.Context(), c.Param("organizationId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, committees)
}

// Create godoc
// @Summary Register a committee
// @Tags Committees
// @Accept json
// @Produce json
// @Param payload body service.CreateCommitteeRequest true "Committee payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /organization-committee [post]
func (h *CommitteeHandler) Create(c *gin.Context) {
	var req service.CreateCommitteeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid JSON payload"))
		return
	}
	committee, err := h.committees.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, committee)
}

// Update godoc
// @Summary Update a committee
// @Tags Committees
// @Accept json
// @Produce json
// @Param payload body service.UpdateCommitteeRequest true "Committee payload with key"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /organization-committee [put]
func (h *CommitteeHandler) Update(c *gin.Context) {
	var req service.UpdateCommitteeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid JSON payload"))
		return
	}
	committee, err := h.committees.Update(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, committee)
}

// Delete godoc
// @Summary Delete a committee
// @Tags Committees
// @Accept json
// @Produce plain
// @Param payload body object{committee_id=int} true "Key payload"
// @Success 200 {string} string "confirmation"
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /organization-committee [delete]
func (h *CommitteeHandler) Delete(c *gin.Context) {
	var req struct {
		CommitteeID int64 `json:"committee_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid JSON payload"))
		return
	}
	if err := h.committees.Delete(c.Request.Context(), req.CommitteeID); err != nil {
		response.Error(c, err)
		return
	}
	response.Text(c, http.StatusOK, fmt.Sprintf("committee %d deleted", req.CommitteeID))
}
