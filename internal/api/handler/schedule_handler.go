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

// ScheduleHandler is the weekly schedule HTTP handler.
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler creates a ScheduleHandler.
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// CreateSchedule creates a draft weekly schedule.
// POST /api/v1/schedules
func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	var req dto.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	schedule, err := h.scheduleSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.Created(c, schedule)
}

// GetSchedule returns one schedule with shifts, coverage and conflicts.
// GET /api/v1/schedules/:id
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "schedule id is required")
		return
	}

	schedule, err := h.scheduleSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, schedule)
}

// ListSchedules returns the filtered schedule listing.
// GET /api/v1/schedules
func (h *ScheduleHandler) ListSchedules(c *gin.Context) {
	var req dto.ScheduleListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	schedules, total, err := h.scheduleSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OKPage(c, schedules, total, req.GetPage(), req.GetPageSize())
}

// UpdateSchedule patches a draft schedule.
// PUT /api/v1/schedules/:id
func (h *ScheduleHandler) UpdateSchedule(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "schedule id is required")
		return
	}

	var req dto.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	schedule, err := h.scheduleSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, schedule)
}

// DeleteSchedule removes an unpublished schedule.
// DELETE /api/v1/schedules/:id
func (h *ScheduleHandler) DeleteSchedule(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "schedule id is required")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.scheduleSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, nil)
}

// AssignShift adds a shift to a draft schedule.
// POST /api/v1/schedules/:id/shifts
func (h *ScheduleHandler) AssignShift(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "schedule id is required")
		return
	}

	var req dto.AssignShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	schedule, err := h.scheduleSvc.AssignShift(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, schedule)
}

// RemoveShift removes a shift from a draft schedule.
// DELETE /api/v1/schedules/:id/shifts/:shiftId
func (h *ScheduleHandler) RemoveShift(c *gin.Context) {
	id := c.Param("id")
	shiftID := c.Param("shiftId")
	if id == "" || shiftID == "" {
		response.BadRequest(c, 10001, "schedule id and shift id are required")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	schedule, err := h.scheduleSvc.RemoveShift(c.Request.Context(), id, shiftID, callerID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, schedule)
}

// PublishSchedule publishes a conflict-free draft.
// POST /api/v1/schedules/:id/publish
func (h *ScheduleHandler) PublishSchedule(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "schedule id is required")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	schedule, err := h.scheduleSvc.Publish(c.Request.Context(), id, callerID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, schedule)
}

// CompleteSchedule marks a schedule week as finished.
// POST /api/v1/schedules/:id/complete
func (h *ScheduleHandler) CompleteSchedule(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "schedule id is required")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	schedule, err := h.scheduleSvc.Complete(c.Request.Context(), id, callerID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, schedule)
}

// ResolveConflict marks one stored conflict as handled.
// POST /api/v1/schedules/:id/conflicts/:conflictId/resolve
func (h *ScheduleHandler) ResolveConflict(c *gin.Context) {
	id := c.Param("id")
	conflictID := c.Param("conflictId")
	if id == "" || conflictID == "" {
		response.BadRequest(c, 10001, "schedule id and conflict id are required")
		return
	}

	var req dto.ResolveConflictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	conflict, err := h.scheduleSvc.ResolveConflict(c.Request.Context(), id, conflictID, &req, callerID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, conflict)
}

// EmployeeWeek returns one employee's slice of a schedule.
// GET /api/v1/schedules/:id/employees/:employeeId
func (h *ScheduleHandler) EmployeeWeek(c *gin.Context) {
	id := c.Param("id")
	employeeID := c.Param("employeeId")
	if id == "" || employeeID == "" {
		response.BadRequest(c, 10001, "schedule id and employee id are required")
		return
	}

	week, err := h.scheduleSvc.EmployeeWeek(c.Request.Context(), id, employeeID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, week)
}

// handleScheduleError maps schedule business errors to responses.
func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	var conflictErr *service.ConflictDetailsError
	switch {
	case errors.As(err, &conflictErr):
		response.ErrorWithDetails(c, http.StatusConflict, 14001, "shift conflicts detected",
			strings.Join(conflictErr.Descriptions(), "; "))
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 14002, "schedule not found")
	case errors.Is(err, service.ErrScheduleNotDraft):
		response.BadRequest(c, 14003, "schedule is not in draft status")
	case errors.Is(err, service.ErrScheduleCompleted):
		response.BadRequest(c, 14004, "schedule is already completed")
	case errors.Is(err, service.ErrUnresolvedConflicts):
		response.Conflict(c, 14005, "schedule has unresolved conflicts")
	case errors.Is(err, service.ErrConflictNotFound):
		response.NotFound(c, 14006, "conflict not found")
	case errors.Is(err, service.ErrConflictResolved):
		response.BadRequest(c, 14007, "conflict is already resolved")
	case errors.Is(err, service.ErrInvalidWeekRange):
		response.BadRequest(c, 14008, "invalid week range")
	case errors.Is(err, service.ErrInvalidDateRange):
		response.BadRequest(c, 14008, "invalid date range")
	case errors.Is(err, service.ErrEmployeeNotInSchedule):
		response.NotFound(c, 14009, "employee has no shifts in this schedule")
	case errors.Is(err, service.ErrShiftNotFound):
		response.NotFound(c, 14010, "shift not found")
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 14011, "employee not found")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 14012, "record was modified concurrently, retry")
	default:
		response.InternalError(c)
	}
}
