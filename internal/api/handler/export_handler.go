package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/Rakibhasaniu/employee-schedule/internal/service"
	"github.com/Rakibhasaniu/employee-schedule/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar"
)

// ExportHandler is the export HTTP handler.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportSchedule downloads a schedule week as an Excel workbook.
// GET /api/v1/export/schedules/:id
func (h *ExportHandler) ExportSchedule(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "schedule id is required")
		return
	}

	buf, filename, err := h.exportSvc.ExportSchedule(c.Request.Context(), id)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeDownload(c, contentTypeXLSX, filename, buf.Bytes())
}

// ExportEmployeeCalendar downloads an employee's shifts as an iCalendar feed.
// GET /api/v1/export/employees/:id/calendar?start_date=...&end_date=...
func (h *ExportHandler) ExportEmployeeCalendar(c *gin.Context) {
	id := c.Param("id")
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if id == "" || startDate == "" || endDate == "" {
		response.BadRequest(c, 10001, "employee id, start_date and end_date are required")
		return
	}

	buf, filename, err := h.exportSvc.ExportEmployeeCalendar(c.Request.Context(), id, startDate, endDate)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeDownload(c, contentTypeICS, filename, buf.Bytes())
}

func writeDownload(c *gin.Context, contentType, filename string, data []byte) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, contentType, data)
}

// handleExportError maps export business errors to responses.
func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 17001, "schedule not found")
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 17002, "employee not found")
	case errors.Is(err, service.ErrExportNoShifts):
		response.BadRequest(c, 17003, "no shifts to export")
	case errors.Is(err, service.ErrInvalidDateRange):
		response.BadRequest(c, 17004, "invalid date range")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
