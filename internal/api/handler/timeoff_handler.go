package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Rakibhasaniu/employee-schedule/internal/dto"
	"github.com/Rakibhasaniu/employee-schedule/internal/service"
	pkgerrors "github.com/Rakibhasaniu/employee-schedule/pkg/errors"
	"github.com/Rakibhasaniu/employee-schedule/pkg/response"
)

// TimeOffHandler is the leave request and ledger HTTP handler.
type TimeOffHandler struct {
	timeOffSvc service.TimeOffService
}

// NewTimeOffHandler creates a TimeOffHandler.
func NewTimeOffHandler(timeOffSvc service.TimeOffService) *TimeOffHandler {
	return &TimeOffHandler{timeOffSvc: timeOffSvc}
}

// CreateTimeOff opens a leave request.
// POST /api/v1/time-off
func (h *TimeOffHandler) CreateTimeOff(c *gin.Context) {
	var req dto.CreateTimeOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	// non-managers can only file for themselves
	if req.EmployeeID != "" && req.EmployeeID != GetEmployeeID(c) && !IsManager(c) {
		response.Forbidden(c, 10003, "cannot file time off for another employee")
		return
	}

	request, err := h.timeOffSvc.Create(c.Request.Context(), &req, GetEmployeeID(c), callerID)
	if err != nil {
		h.handleTimeOffError(c, err)
		return
	}

	response.Created(c, request)
}

// GetTimeOff returns one leave request.
// GET /api/v1/time-off/:id
func (h *TimeOffHandler) GetTimeOff(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "request id is required")
		return
	}

	request, err := h.timeOffSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleTimeOffError(c, err)
		return
	}

	response.OK(c, request)
}

// ListTimeOff returns the filtered request listing.
// GET /api/v1/time-off
func (h *TimeOffHandler) ListTimeOff(c *gin.Context) {
	var req dto.TimeOffListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	// non-managers see only their own requests
	if !IsManager(c) {
		req.EmployeeID = GetEmployeeID(c)
	}

	requests, total, err := h.timeOffSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleTimeOffError(c, err)
		return
	}

	response.OKPage(c, requests, total, req.GetPage(), req.GetPageSize())
}

// UpdateTimeOff edits a pending request.
// PUT /api/v1/time-off/:id
func (h *TimeOffHandler) UpdateTimeOff(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "request id is required")
		return
	}

	var req dto.UpdateTimeOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	request, err := h.timeOffSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleTimeOffError(c, err)
		return
	}

	response.OK(c, request)
}

// ReviewTimeOff approves or rejects a pending request.
// POST /api/v1/time-off/:id/review
func (h *TimeOffHandler) ReviewTimeOff(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "request id is required")
		return
	}

	var req dto.ReviewTimeOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	reviewerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	request, err := h.timeOffSvc.Review(c.Request.Context(), id, &req, reviewerID)
	if err != nil {
		h.handleTimeOffError(c, err)
		return
	}

	response.OK(c, request)
}

// CancelTimeOff withdraws a pending request.
// POST /api/v1/time-off/:id/cancel
func (h *TimeOffHandler) CancelTimeOff(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "request id is required")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	request, err := h.timeOffSvc.Cancel(c.Request.Context(), id, GetEmployeeID(c), IsManager(c), callerID)
	if err != nil {
		h.handleTimeOffError(c, err)
		return
	}

	response.OK(c, request)
}

// DeleteTimeOff removes a non-approved request.
// DELETE /api/v1/time-off/:id
func (h *TimeOffHandler) DeleteTimeOff(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "request id is required")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.timeOffSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleTimeOffError(c, err)
		return
	}

	response.OK(c, nil)
}

// GetBalance returns one employee's yearly leave ledger.
// GET /api/v1/employees/:id/leave-balance?year=2026
func (h *TimeOffHandler) GetBalance(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "employee id is required")
		return
	}

	year := 0
	if y := c.Query("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			response.BadRequest(c, 10001, "year must be a number")
			return
		}
		year = parsed
	}

	balance, err := h.timeOffSvc.GetBalance(c.Request.Context(), id, year)
	if err != nil {
		h.handleTimeOffError(c, err)
		return
	}

	response.OK(c, balance)
}

// GetSummary returns one employee's leave summary.
// GET /api/v1/employees/:id/leave-summary
func (h *TimeOffHandler) GetSummary(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "employee id is required")
		return
	}

	summary, err := h.timeOffSvc.Summary(c.Request.Context(), id)
	if err != nil {
		h.handleTimeOffError(c, err)
		return
	}

	response.OK(c, summary)
}

// GetAnalytics returns organization-wide leave analytics.
// GET /api/v1/time-off/analytics
func (h *TimeOffHandler) GetAnalytics(c *gin.Context) {
	analytics, err := h.timeOffSvc.Analytics(c.Request.Context())
	if err != nil {
		h.handleTimeOffError(c, err)
		return
	}

	response.OK(c, analytics)
}

// UpsertPolicy creates or updates a department allocation policy.
// PUT /api/v1/leave-policies
func (h *TimeOffHandler) UpsertPolicy(c *gin.Context) {
	var req dto.UpsertLeavePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	policy, err := h.timeOffSvc.UpsertPolicy(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleTimeOffError(c, err)
		return
	}

	response.OK(c, policy)
}

// ListPolicies returns all department allocation policies.
// GET /api/v1/leave-policies
func (h *TimeOffHandler) ListPolicies(c *gin.Context) {
	policies, err := h.timeOffSvc.ListPolicies(c.Request.Context())
	if err != nil {
		h.handleTimeOffError(c, err)
		return
	}

	response.OK(c, gin.H{"list": policies})
}

// handleTimeOffError maps time-off business errors to responses.
func (h *TimeOffHandler) handleTimeOffError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTimeOffNotFound):
		response.NotFound(c, 16001, "time-off request not found")
	case errors.Is(err, service.ErrRequestNotPending):
		response.BadRequest(c, 16002, "only pending requests can be modified")
	case errors.Is(err, service.ErrInsufficientBalance):
		response.BadRequest(c, 16003, "insufficient leave balance")
	case errors.Is(err, service.ErrApprovedUndeletable):
		response.BadRequest(c, 16004, "approved requests cannot be deleted")
	case errors.Is(err, service.ErrNotRequestOwner):
		response.Forbidden(c, 16005, "request belongs to another employee")
	case errors.Is(err, service.ErrPolicyNotFound):
		response.NotFound(c, 16006, "leave policy not found")
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 16007, "employee not found")
	case errors.Is(err, service.ErrInvalidDateRange):
		response.BadRequest(c, 16008, "invalid date range")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 16009, "record was modified concurrently, retry")
	default:
		response.InternalError(c)
	}
}
