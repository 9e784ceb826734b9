package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuslabs/orgfee-api/internal/models"
	"github.com/campuslabs/orgfee-api/internal/service"
	appErrors "github.com/campuslabs/orgfee-api/pkg/errors"
	"github.com/campuslabs/orgfee-api/pkg/response"
)

type organizationService interface {
	List(ctx context.Context) ([]models.OrganizationSummary, error)
	Create(ctx context.Context, req service.CreateOrganizationRequest) (*models.Organization, error)
	Update(ctx context.Context, req service.UpdateOrganizationRequest) (*models.Organization, error)
	Delete(ctx context.Context, organizationID string) error
}

// OrganizationHandler exposes organization endpoints.
type OrganizationHandler struct {
	orgs organizationService
}

// NewOrganizationHandler constructs OrganizationHandler.
func NewOrganizationHandler(orgs organizationService) *OrganizationHandler {
	return &OrganizationHandler{orgs: orgs}
}

// List godoc
// @Summary List organizations with member counts
// @Tags Organizations
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /organization [get]
func (h *OrganizationHandler) List(c *gin.Context) {
	orgs, err := h.orgs.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, orgs)
}

// Create godoc
// @Summary Register an organization
// @Tags Organizations
// @Accept json
// @Produce json
// @Param payload body service.CreateOrganizationRequest true "Organization payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /organization [post]
func (h *OrganizationHandler) Create(c *gin.Context) {
	var req service.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid JSON payload"))
		return
	}
	org, err := h.orgs.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, org)
}

// Update godoc
// @Summary Update an organization
// @Tags Organizations
// @Accept json
// @Produce json
// @Param payload body service.UpdateOrganizationRequest true "Organization payload with key"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /organization [put]
func (h *OrganizationHandler) Update(c *gin.Context) {
	var req service.UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid JSON payload"))
		return
	}
	org, err := h.orgs.Update(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, org)
}

// Delete godoc
// @Summary Delete an organization
// @Tags Organizations
// @Accept json
// @Produce plain
// @Param payload body object{organization_id=string} true "Key payload"
// @Success 200 {string} string "confirmation"
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /organization [delete]
func (h *OrganizationHandler) Delete(c *gin.Context) {
	var req struct {
		OrganizationID string `json:"organization_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid JSON payload"))
		return
	}
	if err := h.orgs.Delete(c.Request.Context(), req.OrganizationID); err != nil {
		response.Error(c, err)
		return
	}
	response.Text(c, http.StatusOK, "organization "+req.OrganizationID+" deleted")
}
