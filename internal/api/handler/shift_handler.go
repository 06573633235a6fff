package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Rakibhasaniu/employee-schedule/internal/dto"
	"github.com/Rakibhasaniu/employee-schedule/internal/service"
	pkgerrors "github.com/Rakibhasaniu/employee-schedule/pkg/errors"
	"github.com/Rakibhasaniu/employee-schedule/pkg/response"
)

// ShiftHandler is the shift HTTP handler.
type ShiftHandler struct {
	shiftSvc service.ShiftService
}

// NewShiftHandler creates a ShiftHandler.
func NewShiftHandler(shiftSvc service.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftSvc: shiftSvc}
}

// CreateShift creates a shift after conflict validation.
// POST /api/v1/shifts
func (h *ShiftHandler) CreateShift(c *gin.Context) {
	var req dto.CreateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	shift, err := h.shiftSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.Created(c, shift)
}

// GetShift returns one shift.
// GET /api/v1/shifts/:id
func (h *ShiftHandler) GetShift(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "shift id is required")
		return
	}

	shift, err := h.shiftSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.OK(c, shift)
}

// ListShifts returns the filtered shift listing.
// GET /api/v1/shifts
func (h *ShiftHandler) ListShifts(c *gin.Context) {
	var req dto.ShiftListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	shifts, total, err := h.shiftSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.OKPage(c, shifts, total, req.GetPage(), req.GetPageSize())
}

// UpdateShift patches one shift, re-running conflict validation.
// PUT /api/v1/shifts/:id
func (h *ShiftHandler) UpdateShift(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "shift id is required")
		return
	}

	var req dto.UpdateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	shift, err := h.shiftSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.OK(c, shift)
}

// DeleteShift removes one shift.
// DELETE /api/v1/shifts/:id
func (h *ShiftHandler) DeleteShift(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "shift id is required")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.shiftSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.OK(c, nil)
}

// CoverageByRange returns the coverage analytics view.
// GET /api/v1/shifts/analytics/coverage
func (h *ShiftHandler) CoverageByRange(c *gin.Context) {
	var req dto.DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "start_date and end_date are required")
		return
	}

	coverage, err := h.shiftSvc.CoverageByRange(c.Request.Context(), &req)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.OK(c, coverage)
}

// WorkloadByEmployee returns the workload analytics view.
// GET /api/v1/shifts/analytics/workload
func (h *ShiftHandler) WorkloadByEmployee(c *gin.Context) {
	var req dto.DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "start_date and end_date are required")
		return
	}

	workload, err := h.shiftSvc.WorkloadByEmployee(c.Request.Context(), &req)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.OK(c, workload)
}

// ConflictScan returns the cross-schedule conflict scan.
// GET /api/v1/shifts/analytics/conflicts
func (h *ShiftHandler) ConflictScan(c *gin.Context) {
	var req dto.DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "start_date and end_date are required")
		return
	}

	conflicts, err := h.shiftSvc.ConflictScan(c.Request.Context(), &req)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.OK(c, conflicts)
}

// ListByEmployee returns one employee's shifts.
// GET /api/v1/employees/:id/shifts
func (h *ShiftHandler) ListByEmployee(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "employee id is required")
		return
	}

	var req dto.ShiftListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	shifts, total, err := h.shiftSvc.ListByEmployee(c.Request.Context(), id, &req)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}

	response.OKPage(c, shifts, total, req.GetPage(), req.GetPageSize())
}

// handleShiftError maps shift business errors to responses.
func (h *ShiftHandler) handleShiftError(c *gin.Context, err error) {
	var conflictErr *service.ConflictDetailsError
	switch {
	case errors.As(err, &conflictErr):
		response.ErrorWithDetails(c, http.StatusConflict, 13001, "shift conflicts detected",
			strings.Join(conflictErr.Descriptions(), "; "))
	case errors.Is(err, service.ErrShiftConflict):
		response.Conflict(c, 13001, "shift conflicts detected")
	case errors.Is(err, service.ErrShiftNotFound):
		response.NotFound(c, 13002, "shift not found")
	case errors.Is(err, service.ErrShiftCompleted):
		response.BadRequest(c, 13003, "completed shifts cannot be modified")
	case errors.Is(err, service.ErrShiftUndeletable):
		response.BadRequest(c, 13004, "in-progress and completed shifts cannot be deleted")
	case errors.Is(err, service.ErrInvalidTimeRange):
		response.BadRequest(c, 13005, "start time must be before end time")
	case errors.Is(err, service.ErrInvalidDateRange):
		response.BadRequest(c, 13006, "invalid date range")
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 13007, "employee not found")
	case errors.Is(err, service.ErrEmployeeInactive):
		response.BadRequest(c, 13008, "employee is not active")
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 13009, "schedule not found")
	case errors.Is(err, service.ErrScheduleNotDraft):
		response.BadRequest(c, 13010, "schedule is not in draft status")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 13011, "record was modified concurrently, retry")
	default:
		response.InternalError(c)
	}
}
