package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Rakibhasaniu/employee-schedule/internal/dto"
	"github.com/Rakibhasaniu/employee-schedule/internal/service"
	"github.com/Rakibhasaniu/employee-schedule/pkg/response"
)

// EmployeeHandler is the employee HTTP handler.
type EmployeeHandler struct {
	employeeSvc service.EmployeeService
}

// NewEmployeeHandler creates an EmployeeHandler.
func NewEmployeeHandler(employeeSvc service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeSvc: employeeSvc}
}

// CreateEmployee creates an employee with its identity record.
// POST /api/v1/employees
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	employee, err := h.employeeSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.Created(c, employee)
}

// GetEmployee returns one employee.
// GET /api/v1/employees/:id
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "employee id is required")
		return
	}

	employee, err := h.employeeSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.OK(c, employee)
}

// ListEmployees returns the filtered employee listing.
// GET /api/v1/employees
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	var req dto.EmployeeListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	employees, total, err := h.employeeSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, employees, total, req.GetPage(), req.GetPageSize())
}

// UpdateEmployee patches one employee.
// PUT /api/v1/employees/:id
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "employee id is required")
		return
	}

	var req dto.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	employee, err := h.employeeSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.OK(c, employee)
}

// DeleteEmployee soft-deletes one employee and its identity record.
// DELETE /api/v1/employees/:id
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "employee id is required")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.employeeSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.OK(c, nil)
}

// GetAvailability returns the employee's window for one calendar date.
// GET /api/v1/employees/:id/availability?date=YYYY-MM-DD
func (h *EmployeeHandler) GetAvailability(c *gin.Context) {
	id := c.Param("id")
	date := c.Query("date")
	if id == "" || date == "" {
		response.BadRequest(c, 10001, "employee id and date are required")
		return
	}

	availability, err := h.employeeSvc.AvailabilityForDate(c.Request.Context(), id, date)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.OK(c, availability)
}

// SearchBySkills returns active employees holding any requested skill.
// GET /api/v1/employees/search?skills=a&skills=b
func (h *EmployeeHandler) SearchBySkills(c *gin.Context) {
	var req dto.SkillSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "at least one skill is required")
		return
	}

	employees, err := h.employeeSvc.SearchBySkills(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": employees})
}

// handleEmployeeError maps employee business errors to responses.
func (h *EmployeeHandler) handleEmployeeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 12001, "employee not found")
	case errors.Is(err, service.ErrEmailExists):
		response.Conflict(c, 12002, "email is already in use")
	case errors.Is(err, service.ErrInvalidDateRange):
		response.BadRequest(c, 12003, "invalid date")
	default:
		response.InternalError(c)
	}
}
