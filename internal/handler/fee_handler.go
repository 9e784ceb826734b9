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

type feeService interface {
	List(ctx context.Context, filter models.FeeFilter) ([]models.FeeDetail, error)
	Unpaid(ctx context.Context) ([]models.FeeDetail, error)
	Create(ctx context.Context, req service.CreateFeeRequest) (*models.FeeDetail, error)
	Update(ctx context.Context, req service.UpdateFeeRequest) (*models.FeeDetail, error)
	UpdateStatus(ctx context.Context, req service.UpdateFeeStatusRequest) (*service.FeeStatusResult, error)
	Delete(ctx context.Context, feeID string) error
}

// FeeHandler exposes fee endpoints.
type FeeHandler struct {
	fees feeService
}

// NewFeeHandler constructs FeeHandler.
func NewFeeHandler(fees feeService) *FeeHandler {
	return &FeeHandler{fees: fees}
}

// List godoc
// @Summary List fees
// @Tags Fees
// @Produce json
// @Param organizationId query string false "Filter by organization"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Envelope
// @Router /fee [get]
func (h *FeeHandler) List(c *gin.Context) {
	filter := models.FeeFilter{
		OrganizationID: strings.TrimSpace(c.Query("organizationId")),
		Status:         models.FeeStatus(strings.TrimSpace(c.Query("status"))),
	}
	fees, err := h.fees.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, fees)
}

// ListByStudent godoc
// @Summary List fees issued to one student
// @Tags Fees
// @Produce json
// @Param studentNumber path string true "Student number"
// @Success 200 {object} response.Envelope
// @Router /fee/{studentNumber} [get]
func (h *FeeHandler) ListByStudent(c *gin.Context) {
	fees, err := h.fees.List(c.Request.Context(), models.FeeFilter{
		StudentNumber: c.Param("studentNumber"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, fees)
}

// Unpaid godoc
// @Summary List fees not yet paid
// @Tags Fees
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /fee/unpaid [get]
func (h *FeeHandler) Unpaid(c *gin.Context) {
	fees, err := h.fees.Unpaid(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, fees)
}

// Create godoc
// @Summary Issue a fee
// @Tags Fees
// @Accept json
// @Produce json
// @Param payload body service.CreateFeeRequest true "Fee payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /fee [post]
func (h *FeeHandler) Create(c *gin.Context) {
	var req service.CreateFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid JSON payload"))
		return
	}
	fee, err := h.fees.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, fee)
}

// Update godoc
// @Summary Update a fee
// @Tags Fees
// @Accept json
// @Produce json
// @Param payload body service.UpdateFeeRequest true "Fee payload with key"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /fee [put]
func (h *FeeHandler) Update(c *gin.Context) {
	var req service.UpdateFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid JSON payload"))
		return
	}
	fee, err := h.fees.Update(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, fee)
}

// UpdateStatus godoc
// @Summary Change a fee's payment status
// @Tags Fees
// @Accept json
// @Produce json
// @Param payload body service.UpdateFeeStatusRequest true "Key and status"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /fee/status [patch]
func (h *FeeHandler) UpdateStatus(c *gin.Context) {
	var req service.UpdateFeeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid JSON payload"))
		return
	}
	result, err := h.fees.UpdateStatus(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Delete godoc
// @Summary Delete a fee
// @Tags Fees
// @Accept json
// @Produce plain
// @Param payload body object{fee_id=string} true "Key payload"
// @Success 200 {string} string "confirmation"
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /fee [delete]
func (h *FeeHandler) Delete(c *gin.Context) {
	var req struct {
		FeeID string `json:"fee_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid JSON payload"))
		return
	}
	if err := h.fees.Delete(c.Request.Context(), req.FeeID); err != nil {
		response.Error(c, err)
		return
	}
	response.Text(c, http.StatusOK, "fee "+req.FeeID+" deleted")
}
