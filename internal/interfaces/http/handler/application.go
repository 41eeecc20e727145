package handler

import (
	"net/http"

	appenrollment "github.com/RobertWLight/BSC/internal/application/enrollment"
	"github.com/gin-gonic/gin"
)

// ApplicationHandler handles enrollment application endpoints
type ApplicationHandler struct {
	BaseHandler
	applicationService *appenrollment.ApplicationService
}

// NewApplicationHandler creates a new ApplicationHandler
func NewApplicationHandler(applicationService *appenrollment.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService}
}

// Create godoc
// @ID           createApplication
// @Summary      Open a draft application
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        request body appenrollment.CreateApplicationRequest true "Application"
// @Success      201 {object} dto.Response{data=appenrollment.ApplicationResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /applications [post]
func (h *ApplicationHandler) Create(c *gin.Context) {
	var req appenrollment.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	app, err := h.applicationService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, app)
}

// Update godoc
// @ID           updateApplication
// @Summary      Update an application
// @Description  Partial update. Moving to submitted stamps submitted_at once.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id path string true "Application ID" format(uuid)
// @Param        request body appenrollment.UpdateApplicationRequest true "Changes"
// @Success      200 {object} dto.Response{data=appenrollment.ApplicationResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /applications/{id} [put]
func (h *ApplicationHandler) Update(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id", "application")
	if !ok {
		return
	}

	var req appenrollment.UpdateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	app, err := h.applicationService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, app)
}

// ListByOwner godoc
// @ID           listApplicationsByOwner
// @Summary      List an owner's applications, newest first
// @Tags         applications
// @Produce      json
// @Param        ownerId path string true "Business owner ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]appenrollment.ApplicationResponse}
// @Failure      400 {object} dto.Response
// @Router       /applications/business/{ownerId} [get]
func (h *ApplicationHandler) ListByOwner(c *gin.Context) {
	ownerID, ok := h.parseIDParam(c, "ownerId", "business owner")
	if !ok {
		return
	}

	apps, err := h.applicationService.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, apps)
}

// Summary godoc
// @ID           getApplicationSummary
// @Summary      Download the application summary PDF
// @Tags         applications
// @Produce      application/pdf
// @Param        id path string true "Application ID" format(uuid)
// @Success      200 {file} binary
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      503 {object} dto.Response
// @Router       /applications/{id}/summary.pdf [get]
func (h *ApplicationHandler) Summary(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id", "application")
	if !ok {
		return
	}

	data, err := h.applicationService.RenderSummary(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="application-`+id.String()+`.pdf"`)
	c.Data(http.StatusOK, appenrollment.SummaryContentType, data)
}
