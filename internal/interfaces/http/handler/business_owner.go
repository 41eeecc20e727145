package handler

import (
	appenrollment "github.com/RobertWLight/BSC/internal/application/enrollment"
	"github.com/gin-gonic/gin"
)

// BusinessOwnerHandler handles business owner API endpoints
type BusinessOwnerHandler struct {
	BaseHandler
	ownerService *appenrollment.BusinessOwnerService
}

// NewBusinessOwnerHandler creates a new BusinessOwnerHandler
func NewBusinessOwnerHandler(ownerService *appenrollment.BusinessOwnerService) *BusinessOwnerHandler {
	return &BusinessOwnerHandler{ownerService: ownerService}
}

// Create godoc
// @ID           createBusinessOwner
// @Summary      Register a business owner
// @Tags         business-owners
// @Accept       json
// @Produce      json
// @Param        request body appenrollment.CreateBusinessOwnerRequest true "Business owner"
// @Success      201 {object} dto.Response{data=appenrollment.BusinessOwnerResponse}
// @Failure      400 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Router       /business-owners [post]
func (h *BusinessOwnerHandler) Create(c *gin.Context) {
	var req appenrollment.CreateBusinessOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	owner, err := h.ownerService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, owner)
}

// GetByID godoc
// @ID           getBusinessOwner
// @Summary      Get a business owner
// @Tags         business-owners
// @Produce      json
// @Param        id path string true "Business owner ID" format(uuid)
// @Success      200 {object} dto.Response{data=appenrollment.BusinessOwnerResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /business-owners/{id} [get]
func (h *BusinessOwnerHandler) GetByID(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id", "business owner")
	if !ok {
		return
	}

	owner, err := h.ownerService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, owner)
}

// List godoc
// @ID           listBusinessOwners
// @Summary      List business owners
// @Tags         business-owners
// @Produce      json
// @Param        search query string false "Search term (business name, owner name, email)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]appenrollment.BusinessOwnerResponse}
// @Failure      400 {object} dto.Response
// @Router       /business-owners [get]
func (h *BusinessOwnerHandler) List(c *gin.Context) {
	var filter appenrollment.BusinessOwnerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	owners, total, err := h.ownerService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, owners, total, filter.Page, filter.PageSize)
}
