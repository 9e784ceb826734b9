package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campuslabs/orgfee-api/internal/models"
	"github.com/campuslabs/orgfee-api/internal/service"
	appErrors "github.com/campuslabs/orgfee-api/pkg/errors"
	"github.com/campuslabs/orgfee-api/pkg/response"
)

type membershipService interface {
	List(ctx context.Context, filter models.MembershipFilter) ([]models.MembershipDetail, error)
	ActiveMembers(ctx context.Context, organizationID string) ([]models.MembershipDetail, error)
	Create(ctx context.Context, req service.CreateMembershipRequest) (*models.MembershipDetail, error)
	Update(ctx context.Context, req service.UpdateMembershipRequest) (*models.MembershipDetail, error)
	UpdateStatus(ctx context.Context, req service.UpdateMembershipStatusRequest) (*service.MembershipStatusResult, error)
	Delete(ctx context.Context, studentNumber, organizationID string) error
}

// MembershipHandler exposes membership endpoints keyed by the
// (student_number, organization_id) pair.
type MembershipHandler struct {
	memberships membershipService
}

// NewMembershipHandler constructs MembershipHandler.
func NewMembershipHandler(memberships membershipService) *MembershipHandler {
	return &MembershipHandler{memberships: memberships}
}

// List godoc
// @Summary List memberships
// @Tags Memberships
// @Produce json
// @Param organizationId query string false "Filter by organization"
// @Param studentNumber query string false "Filter by student"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Envelope
// @Router /membership [get]
func (h *MembershipHandler) List(c *gin.Context) {
	filter := models.MembershipFilter{
		OrganizationID: strings.TrimSpace(c.Query("organizationId")),
		StudentNumber:  strings.TrimSpace(c.Query("studentNumber")),
		Status:         models.MembershipStatus(strings.TrimSpace(c.Query("status"))),
	}
	memberships, err := h.memberships.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, memberships)
}

// ListByOrganization godoc
// @Summary List memberships of one organization
// @Tags Memberships
// @Produce json
// @Param organizationId path string true "Organization ID"
// @Success 200 {object} response.Envelope
// @Router /membership/{organizationId} [get]
func (h *MembershipHandler) ListByOrganization(c *gin.Context) {
	memberships, err := h.memberships.List(c.Request.Context(), models.MembershipFilter{
		OrganizationID: c.Param("organizationId"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, memberships)
}

// Active godoc
// @Summary List active members, optionally scoped to one organization
// @Tags Memberships
// @Produce json
// @Param organizationId query string false "Organization ID"
// @Success 200 {object} response.Envelope
// @Router /membership/active [get]
func (h *MembershipHandler) Active(c *gin.Context) {
	members, err := h.memberships.ActiveMembers(c.Request.Context(), strings.TrimSpace(c.Query("organizationId")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, members)
}

// Create godoc
// @Summary Register a membership
// @Tags Memberships
// @Accept json
// @Produce json
// @Param payload body service.CreateMembershipRequest true "Membership payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /membership [post]
func (h *MembershipHandler) Create(c *gin.Context) {
	var req service.CreateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid JSON payload"))
		return
	}
	membership, err := h.memberships.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, membership)
}

// Update godoc
// @Summary Update a membership
// @Tags Memberships
// @Accept json
// @Produce json
// @Param payload body service.UpdateMembershipRequest true "Membership payload with composite key"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /membership [put]
func (h *MembershipHandler) Update(c *gin.Context) {
	var req service.UpdateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid JSON payload"))
		return
	}
	membership, err := h.memberships.Update(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, membership)
}

// UpdateStatus godoc
// @Summary Change a membership's status
// @Tags Memberships
// @Accept json
// @Produce json
// @Param payload body service.UpdateMembershipStatusRequest true "Composite key and status"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /membership/status [patch]
func (h *MembershipHandler) UpdateStatus(c *gin.Context) {
	var req service.UpdateMembershipStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid JSON payload"))
		return
	}
	result, err := h.memberships.UpdateStatus(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Delete godoc
// @Summary Delete a membership
// @Tags Memberships
// @Accept json
// @Produce plain
// @Param payload body object{student_number=string,organization_id=string} true "Composite key payload"
// @Success 200 {string} string "confirmation"
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /membership [delete]
func (h *MembershipHandler) Delete(c *gin.Context) {
	var req struct {
		StudentNumber  string `json:"student_number"`
		OrganizationID string `json:"organization_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid JSON payload"))
		return
	}
	if err := h.memberships.Delete(c.Request.Context(), req.StudentNumber, req.OrganizationID); err != nil {
		response.Error(c, err)
		return
	}
	response.Text(c, http.StatusOK, "membership ("+req.StudentNumber+", "+req.OrganizationID+") deleted")
}
