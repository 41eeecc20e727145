package handler

import (
	appenrollment "github.com/RobertWLight/BSC/internal/application/enrollment"
	"github.com/gin-gonic/gin"
)

// FicaHandler handles FICA savings calculation endpoints
type FicaHandler struct {
	BaseHandler
	ficaService *appenrollment.FicaService
}

// NewFicaHandler creates a new FicaHandler
func NewFicaHandler(ficaService *appenrollment.FicaService) *FicaHandler {
	return &FicaHandler{ficaService: ficaService}
}

// Calculate godoc
// @ID           calculateFica
// @Summary      Calculate and store a FICA savings estimate
// @Description  Prices the current roster against the selected plans. Unknown plan ids contribute zero cost.
// @Tags         fica
// @Produce      json
// @Param        ownerId path string true "Business owner ID" format(uuid)
// @Param        health_plan_id query string false "Health plan ID" format(uuid)
// @Param        life_plan_id query string false "Life plan ID" format(uuid)
// @Success      200 {object} dto.Response{data=appenrollment.FicaCalculationResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /fica-calculation/{ownerId} [post]
func (h *FicaHandler) Calculate(c *gin.Context) {
	ownerID, ok := h.parseIDParam(c, "ownerId", "business owner")
	if !ok {
		return
	}
	healthPlanID, ok := h.parseOptionalUUIDQuery(c, "health_plan_id")
	if !ok {
		return
	}
	lifePlanID, ok := h.parseOptionalUUIDQuery(c, "life_plan_id")
	if !ok {
		return
	}

	calc, err := h.ficaService.Calculate(c.Request.Context(), ownerID, appenrollment.CalculateFicaRequest{
		HealthPlanID: healthPlanID,
		LifePlanID:   lifePlanID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, calc)
}

// History godoc
// @ID           listFicaHistory
// @Summary      List an owner's calculations, newest first
// @Tags         fica
// @Produce      json
// @Param        ownerId path string true "Business owner ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]appenrollment.FicaCalculationResponse}
// @Failure      400 {object} dto.Response
// @Router       /fica-calculation/history/{ownerId} [get]
func (h *FicaHandler) History(c *gin.Context) {
	ownerID, ok := h.parseIDParam(c, "ownerId", "business owner")
	if !ok {
		return
	}

	history, err := h.ficaService.History(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, history)
}
