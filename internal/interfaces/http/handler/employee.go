package handler

import (
	appenrollment "github.com/RobertWLight/BSC/internal/application/enrollment"
	"github.com/gin-gonic/gin"
)

// EmployeeHandler handles employee roster API endpoints
type EmployeeHandler struct {
	BaseHandler
	employeeService *appenrollment.EmployeeService
}

// NewEmployeeHandler creates a new EmployeeHandler
func NewEmployeeHandler(employeeService *appenrollment.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// Create godoc
// @ID           createEmployee
// @Summary      Add an employee to an owner's roster
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        request body appenrollment.CreateEmployeeRequest true "Employee"
// @Success      201 {object} dto.Response{data=appenrollment.EmployeeResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /employees [post]
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req appenrollment.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	employee, err := h.employeeService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, employee)
}

// ListByOwner godoc
// @ID           listEmployeesByOwner
// @Summary      List an owner's employees
// @Tags         employees
// @Produce      json
// @Param        ownerId path string true "Business owner ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]appenrollment.EmployeeResponse}
// @Failure      400 {object} dto.Response
// @Router       /employees/business/{ownerId} [get]
func (h *EmployeeHandler) ListByOwner(c *gin.Context) {
	ownerID, ok := h.parseIDParam(c, "ownerId", "business owner")
	if !ok {
		return
	}

	employees, err := h.employeeService.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, employees)
}

// GetByID godoc
// @ID           getEmployee
// @Summary      Get an employee
// @Tags         employees
// @Produce      json
// @Param        id path string true "Employee ID" format(uuid)
// @Success      200 {object} dto.Response{data=appenrollment.EmployeeResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /employees/{id} [get]
func (h *EmployeeHandler) GetByID(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id", "employee")
	if !ok {
		return
	}

	employee, err := h.employeeService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, employee)
}

// Delete godoc
// @ID           deleteEmployee
// @Summary      Remove an employee
// @Tags         employees
// @Param        id path string true "Employee ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id", "employee")
	if !ok {
		return
	}

	if err := h.employeeService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
