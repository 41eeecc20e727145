package handler

import (
	appenrollment "github.com/RobertWLight/BSC/internal/application/enrollment"
	"github.com/gin-gonic/gin"
)

// BenefitPlanHandler handles the benefit plan catalog endpoints
type BenefitPlanHandler struct {
	BaseHandler
	planService *appenrollment.BenefitPlanService
}

// NewBenefitPlanHandler creates a new BenefitPlanHandler
func NewBenefitPlanHandler(planService *appenrollment.BenefitPlanService) *BenefitPlanHandler {
	return &BenefitPlanHandler{planService: planService}
}

// ListActive godoc
// @ID           listBenefitPlans
// @Summary      List active benefit plans
// @Description  Returns the active catalog. The default plans are seeded on first read.
// @Tags         benefit-plans
// @Produce      json
// @Success      200 {object} dto.Response{data=[]appenrollment.BenefitPlanResponse}
// @Router       /benefit-plans [get]
func (h *BenefitPlanHandler) ListActive(c *gin.Context) {
	plans, err := h.planService.ListActive(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, plans)
}

// ListByType godoc
// @ID           listBenefitPlansByType
// @Summary      List active plans of one type
// @Tags         benefit-plans
// @Produce      json
// @Param        planType path string true "Plan type" Enums(health_basic, health_premium, life_basic, life_premium)
// @Success      200 {object} dto.Response{data=[]appenrollment.BenefitPlanResponse}
// @Failure      400 {object} dto.Response
// @Router       /benefit-plans/{planType} [get]
func (h *BenefitPlanHandler) ListByType(c *gin.Context) {
	plans, err := h.planService.ListByType(c.Request.Context(), c.Param("planType"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, plans)
}

// Create godoc
// @ID           createBenefitPlan
// @Summary      Add a plan to the catalog
// @Tags         benefit-plans
// @Accept       json
// @Produce      json
// @Param        request body appenrollment.CreateBenefitPlanRequest true "Benefit plan"
// @Success      201 {object} dto.Response{data=appenrollment.BenefitPlanResponse}
// @Failure      400 {object} dto.Response
// @Router       /benefit-plans [post]
func (h *BenefitPlanHandler) Create(c *gin.Context) {
	var req appenrollment.CreateBenefitPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	plan, err := h.planService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, plan)
}
