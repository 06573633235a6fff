package handler

import "github.com/Rakibhasaniu/employee-schedule/internal/service"

// Handler is the aggregation entry point for all handlers.
type Handler struct {
	Auth     *AuthHandler
	Employee *EmployeeHandler
	Shift    *ShiftHandler
	Schedule *ScheduleHandler
	Template *TemplateHandler
	TimeOff  *TimeOffHandler
	Export   *ExportHandler
}

// NewHandler creates the Handler aggregation.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(svc.Auth),
		Employee: NewEmployeeHandler(svc.Employee),
		Shift:    NewShiftHandler(svc.Shift),
		Schedule: NewScheduleHandler(svc.Schedule),
		Template: NewTemplateHandler(svc.Template),
		TimeOff:  NewTimeOffHandler(svc.TimeOff),
		Export:   NewExportHandler(svc.Export),
	}
}
