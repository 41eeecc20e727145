package handler

import (
	applead "github.com/RobertWLight/BSC/internal/application/lead"
	"github.com/gin-gonic/gin"
)

// LeadHandler handles the public lead form and the lead listing
type LeadHandler struct {
	BaseHandler
	leadService *applead.LeadService
}

// NewLeadHandler creates a new LeadHandler
func NewLeadHandler(leadService *applead.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// Capture godoc
// @ID           captureLead
// @Summary      Capture a lead from the public form
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        request body applead.CaptureLeadRequest true "Lead"
// @Success      201 {object} dto.Response{data=applead.LeadResponse}
// @Failure      400 {object} dto.Response
// @Router       /leads [post]
func (h *LeadHandler) Capture(c *gin.Context) {
	var req applead.CaptureLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	lead, err := h.leadService.Capture(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, lead)
}

// List godoc
// @ID           listLeads
// @Summary      List leads, newest first
// @Tags         leads
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(100) maximum(500)
// @Success      200 {object} dto.Response{data=[]applead.LeadResponse}
// @Failure      400 {object} dto.Response
// @Router       /leads [get]
func (h *LeadHandler) List(c *gin.Context) {
	var filter applead.LeadListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 100
	}

	leads, total, err := h.leadService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, leads, total, filter.Page, filter.PageSize)
}
