package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Rakibhasaniu/employee-schedule/internal/dto"
	"github.com/Rakibhasaniu/employee-schedule/internal/service"
	pkgerrors "github.com/Rakibhasaniu/employee-schedule/pkg/errors"
	"github.com/Rakibhasaniu/employee-schedule/pkg/response"
)

// TemplateHandler is the shift template HTTP handler.
type TemplateHandler struct {
	templateSvc service.TemplateService
}

// NewTemplateHandler creates a TemplateHandler.
func NewTemplateHandler(templateSvc service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateSvc: templateSvc}
}

// CreateTemplate creates a recurring shift template.
// POST /api/v1/templates
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	var req dto.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	template, err := h.templateSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleTemplateError(c, err)
		return
	}

	response.Created(c, template)
}

// GetTemplate returns one template.
// GET /api/v1/templates/:id
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "template id is required")
		return
	}

	template, err := h.templateSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleTemplateError(c, err)
		return
	}

	response.OK(c, template)
}

// ListTemplates returns the filtered template listing.
// GET /api/v1/templates
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	var req dto.TemplateListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	templates, total, err := h.templateSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleTemplateError(c, err)
		return
	}

	response.OKPage(c, templates, total, req.GetPage(), req.GetPageSize())
}

// UpdateTemplate patches one template.
// PUT /api/v1/templates/:id
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "template id is required")
		return
	}

	var req dto.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	template, err := h.templateSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleTemplateError(c, err)
		return
	}

	response.OK(c, template)
}

// DeleteTemplate removes a template without live shifts.
// DELETE /api/v1/templates/:id
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "template id is required")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.templateSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleTemplateError(c, err)
		return
	}

	response.OK(c, nil)
}

// ActivateTemplate re-activates a template.
// POST /api/v1/templates/:id/activate
func (h *TemplateHandler) ActivateTemplate(c *gin.Context) {
	h.setActive(c, true)
}

// DeactivateTemplate deactivates a template.
// POST /api/v1/templates/:id/deactivate
func (h *TemplateHandler) DeactivateTemplate(c *gin.Context) {
	h.setActive(c, false)
}

func (h *TemplateHandler) setActive(c *gin.Context, active bool) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "template id is required")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	template, err := h.templateSvc.SetActive(c.Request.Context(), id, active, callerID)
	if err != nil {
		h.handleTemplateError(c, err)
		return
	}

	response.OK(c, template)
}

// ExpandTemplate generates shifts from a template over a date range.
// POST /api/v1/templates/:id/expand
func (h *TemplateHandler) ExpandTemplate(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "template id is required")
		return
	}

	var req dto.ExpandTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.templateSvc.Expand(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleTemplateError(c, err)
		return
	}

	response.OK(c, result)
}

// TemplateUsage returns the usage analytics for one template.
// GET /api/v1/templates/:id/usage
func (h *TemplateHandler) TemplateUsage(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "template id is required")
		return
	}

	usage, err := h.templateSvc.Usage(c.Request.Context(), id)
	if err != nil {
		h.handleTemplateError(c, err)
		return
	}

	response.OK(c, usage)
}

// handleTemplateError maps template business errors to responses.
func (h *TemplateHandler) handleTemplateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTemplateNotFound):
		response.NotFound(c, 15001, "template not found")
	case errors.Is(err, service.ErrTemplateDuplicate):
		response.Conflict(c, 15002, "an active template with this name already exists for the department and location")
	case errors.Is(err, service.ErrTemplateInactive):
		response.BadRequest(c, 15003, "template is not active")
	case errors.Is(err, service.ErrTemplateInUse):
		response.BadRequest(c, 15004, "template has scheduled or in-progress shifts and cannot be deleted")
	case errors.Is(err, service.ErrInvalidTimeRange):
		response.BadRequest(c, 15005, "start time must be before end time")
	case errors.Is(err, service.ErrInvalidDateRange):
		response.BadRequest(c, 15006, "invalid date range")
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 15007, "schedule not found")
	case errors.Is(err, service.ErrScheduleNotDraft):
		response.BadRequest(c, 15008, "schedule is not in draft status")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 15009, "record was modified concurrently, retry")
	default:
		response.InternalError(c)
	}
}
