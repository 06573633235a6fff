package dto

// ── shift template requests ──

// CreateTemplateRequest creates a recurring shift template.
type CreateTemplateRequest struct {
	Name               string   `json:"name"                binding:"required,min=1,max=100"`
	Description        string   `json:"description"         binding:"omitempty,max=500"`
	Department         string   `json:"department"          binding:"required,max=100"`
	Location           string   `json:"location"            binding:"required,max=100"`
	StartTime          string   `json:"start_time"          binding:"required,len=5"`
	EndTime            string   `json:"end_time"            binding:"required,len=5"`
	ShiftType          string   `json:"shift_type"          binding:"required,oneof=morning afternoon night full-day"`
	Role               string   `json:"role"                binding:"required,max=50"`
	RequiredSkills     []string `json:"required_skills"     binding:"omitempty,dive,min=1"`
	BreakDuration      int      `json:"break_duration"      binding:"omitempty,min=0,max=480"`
	RecurrenceType     string   `json:"recurrence_type"     binding:"required,oneof=daily weekly monthly"`
	RecurrenceDays     []string `json:"recurrence_days"     binding:"omitempty,dive,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	RecurrenceInterval int      `json:"recurrence_interval" binding:"omitempty,min=1"`
	RecurrenceEndDate  string   `json:"recurrence_end_date" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateTemplateRequest patches a template; nil fields are left unchanged.
type UpdateTemplateRequest struct {
	Name               *string  `json:"name"                binding:"omitempty,min=1,max=100"`
	Description        *string  `json:"description"         binding:"omitempty,max=500"`
	Department         *string  `json:"department"          binding:"omitempty,max=100"`
	Location           *string  `json:"location"            binding:"omitempty,max=100"`
	StartTime          *string  `json:"start_time"          binding:"omitempty,len=5"`
	EndTime            *string  `json:"end_time"            binding:"omitempty,len=5"`
	ShiftType          *string  `json:"shift_type"          binding:"omitempty,oneof=morning afternoon night full-day"`
	Role               *string  `json:"role"                binding:"omitempty,max=50"`
	RequiredSkills     []string `json:"required_skills"     binding:"omitempty,dive,min=1"`
	BreakDuration      *int     `json:"break_duration"      binding:"omitempty,min=0,max=480"`
	RecurrenceType     *string  `json:"recurrence_type"     binding:"omitempty,oneof=daily weekly monthly"`
	RecurrenceDays     []string `json:"recurrence_days"     binding:"omitempty,dive,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	RecurrenceInterval *int     `json:"recurrence_interval" binding:"omitempty,min=1"`
	RecurrenceEndDate  *string  `json:"recurrence_end_date" binding:"omitempty,datetime=2006-01-02"`
}

// TemplateListRequest filters the template listing.
type TemplateListRequest struct {
	PaginationRequest
	Department string `form:"department"`
	Location   string `form:"location"`
	IsActive   *bool  `form:"is_active"`
	Search     string `form:"search"`
}

// ExpandTemplateRequest generates shifts from a template over a date range.
type ExpandTemplateRequest struct {
	StartDate  string  `json:"start_date"  binding:"required,datetime=2006-01-02"`
	EndDate    string  `json:"end_date"    binding:"required,datetime=2006-01-02"`
	ScheduleID *string `json:"schedule_id" binding:"omitempty,uuid"`
}

// ── shift template responses ──

// TemplateResponse is the full template projection.
type TemplateResponse struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Description        string   `json:"description,omitempty"`
	Department         string   `json:"department"`
	Location           string   `json:"location"`
	StartTime          string   `json:"start_time"`
	EndTime            string   `json:"end_time"`
	ShiftType          string   `json:"shift_type"`
	Role               string   `json:"role"`
	RequiredSkills     []string `json:"required_skills,omitempty"`
	BreakDuration      int      `json:"break_duration"`
	RecurrenceType     string   `json:"recurrence_type"`
	RecurrenceDays     []string `json:"recurrence_days,omitempty"`
	RecurrenceInterval int      `json:"recurrence_interval"`
	RecurrenceEndDate  string   `json:"recurrence_end_date,omitempty"`
	IsActive           bool     `json:"is_active"`
	CreatedAt          string   `json:"created_at"`
	UpdatedAt          string   `json:"updated_at"`
}

// ExpandTemplateResponse reports the outcome of an expansion run.
type ExpandTemplateResponse struct {
	TemplateID string          `json:"template_id"`
	StartDate  string          `json:"start_date"`
	EndDate    string          `json:"end_date"`
	Generated  int             `json:"generated"`
	Assigned   int             `json:"assigned"`
	Unassigned int             `json:"unassigned"`
	Shifts     []ShiftResponse `json:"shifts"`
}

// WeekHours is one ISO week's accumulated hours.
type WeekHours struct {
	Week  string  `json:"week"` // e.g. 2026-W35
	Hours float64 `json:"hours"`
}

// TemplateUsageResponse is the template usage analytics view.
type TemplateUsageResponse struct {
	TemplateID      string      `json:"template_id"`
	Name            string      `json:"name"`
	TotalShifts     int         `json:"total_shifts"`
	AssignedShifts  int         `json:"assigned_shifts"`
	AssignmentRate  float64     `json:"assignment_rate"` // assigned / total, 0..1
	UniqueEmployees int         `json:"unique_employees"`
	HoursPerWeek    []WeekHours `json:"hours_per_week"`
}
