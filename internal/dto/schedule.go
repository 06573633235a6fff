package dto

// ── schedule requests ──

// CoverageRequirement declares required staffing for one location.
type CoverageRequirement struct {
	Location      string `json:"location"       binding:"required,max=100"`
	RequiredStaff int    `json:"required_staff" binding:"required,min=1"`
}

// CreateScheduleRequest creates a draft weekly schedule.
type CreateScheduleRequest struct {
	Title            string                `json:"title"             binding:"required,min=1,max=200"`
	WeekStartDate    string                `json:"week_start_date"   binding:"required,datetime=2006-01-02"`
	WeekEndDate      string                `json:"week_end_date"     binding:"required,datetime=2006-01-02"`
	RequiredCoverage []CoverageRequirement `json:"required_coverage" binding:"omitempty,dive"`
}

// UpdateScheduleRequest patches a draft schedule.
type UpdateScheduleRequest struct {
	Title            *string               `json:"title"             binding:"omitempty,min=1,max=200"`
	WeekStartDate    *string               `json:"week_start_date"   binding:"omitempty,datetime=2006-01-02"`
	WeekEndDate      *string               `json:"week_end_date"     binding:"omitempty,datetime=2006-01-02"`
	RequiredCoverage []CoverageRequirement `json:"required_coverage" binding:"omitempty,dive"`
}

// ScheduleListRequest filters the schedule listing.
type ScheduleListRequest struct {
	PaginationRequest
	Status    string `form:"status"     binding:"omitempty,oneof=draft published completed"`
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date"   binding:"omitempty,datetime=2006-01-02"`
	Search    string `form:"search"`
}

// AssignShiftRequest adds an existing or new shift to a draft schedule.
type AssignShiftRequest struct {
	EmployeeID     string   `json:"employee_id"     binding:"required,uuid"`
	Date           string   `json:"date"            binding:"required,datetime=2006-01-02"`
	StartTime      string   `json:"start_time"      binding:"required,len=5"`
	EndTime        string   `json:"end_time"        binding:"required,len=5"`
	ShiftType      string   `json:"shift_type"      binding:"required,oneof=morning afternoon night full-day"`
	Location       string   `json:"location"        binding:"required,max=100"`
	Role           string   `json:"role"            binding:"required,max=50"`
	RequiredSkills []string `json:"required_skills" binding:"omitempty,dive,min=1"`
	BreakDuration  int      `json:"break_duration"  binding:"omitempty,min=0,max=480"`
	Notes          string   `json:"notes"           binding:"omitempty,max=500"`
}

// ResolveConflictRequest marks a stored conflict as handled.
type ResolveConflictRequest struct {
	Resolution string `json:"resolution" binding:"omitempty,max=500"`
}

// ── schedule responses ──

// ScheduleResponse is the schedule header projection.
type ScheduleResponse struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	WeekStartDate  string  `json:"week_start_date"`
	WeekEndDate    string  `json:"week_end_date"`
	Status         string  `json:"status"`
	PublishedAt    string  `json:"published_at,omitempty"`
	TotalEmployees int     `json:"total_employees"`
	TotalHours     float64 `json:"total_hours"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

// CoverageResponse is one stored coverage entry.
type CoverageResponse struct {
	Location           string   `json:"location"`
	RequiredStaff      int      `json:"required_staff"`
	AssignedStaff      int      `json:"assigned_staff"`
	CoveragePercentage int      `json:"coverage_percentage"`
	ShiftIDs           []string `json:"shift_ids"`
}

// ConflictResponse is one stored conflict entry.
type ConflictResponse struct {
	ID           string   `json:"id"`
	Type         string   `json:"type"`
	EmployeeID   string   `json:"employee_id"`
	EmployeeName string   `json:"employee_name,omitempty"`
	Description  string   `json:"description"`
	ShiftIDs     []string `json:"shift_ids"`
	Resolved     bool     `json:"resolved"`
	ResolvedBy   string   `json:"resolved_by,omitempty"`
	ResolvedAt   string   `json:"resolved_at,omitempty"`
}

// ScheduleDetailResponse is the schedule with its shifts, coverage and
// conflicts.
type ScheduleDetailResponse struct {
	ScheduleResponse
	Shifts    []ShiftResponse    `json:"shifts"`
	Coverage  []CoverageResponse `json:"coverage"`
	Conflicts []ConflictResponse `json:"conflicts"`
}

// EmployeeWeekResponse is one employee's slice of a schedule week.
type EmployeeWeekResponse struct {
	ScheduleID   string          `json:"schedule_id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	Shifts       []ShiftResponse `json:"shifts"`
	TotalShifts  int             `json:"total_shifts"`
	TotalHours   float64         `json:"total_hours"`
}
