package handler

import (
	appenrollment "github.com/RobertWLight/BSC/internal/application/enrollment"
	"github.com/gin-gonic/gin"
)

// EligibilityHandler handles the eligibility check endpoint
type EligibilityHandler struct {
	BaseHandler
	eligibilityService *appenrollment.EligibilityService
}

// NewEligibilityHandler creates a new EligibilityHandler
func NewEligibilityHandler(eligibilityService *appenrollment.EligibilityService) *EligibilityHandler {
	return &EligibilityHandler{eligibilityService: eligibilityService}
}

// Check godoc
// @ID           checkEligibility
// @Summary      Check program eligibility
// @Description  Requires at least two employees, one year in business and a listed industry
// @Tags         eligibility
// @Produce      json
// @Param        ownerId path string true "Business owner ID" format(uuid)
// @Success      200 {object} dto.Response{data=appenrollment.EligibilityResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /eligibility-check/{ownerId} [get]
func (h *EligibilityHandler) Check(c *gin.Context) {
	ownerID, ok := h.parseIDParam(c, "ownerId", "business owner")
	if !ok {
		return
	}

	result, err := h.eligibilityService.Check(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// DashboardHandler handles the owner dashboard endpoint
type DashboardHandler struct {
	BaseHandler
	dashboardService *appenrollment.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *appenrollment.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Get godoc
// @ID           getDashboard
// @Summary      Summarise an owner's enrollment
// @Tags         dashboard
// @Produce      json
// @Param        ownerId path string true "Business owner ID" format(uuid)
// @Success      200 {object} dto.Response{data=appenrollment.DashboardResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /dashboard/{ownerId} [get]
func (h *DashboardHandler) Get(c *gin.Context) {
	ownerID, ok := h.parseIDParam(c, "ownerId", "business owner")
	if !ok {
		return
	}

	dashboard, err := h.dashboardService.Get(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dashboard)
}
