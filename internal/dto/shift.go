package dto

// ── shift requests ──

// CreateShiftRequest creates a shift, standalone or inside a schedule.
type CreateShiftRequest struct {
	ScheduleID     *string  `json:"schedule_id"     binding:"omitempty,uuid"`
	EmployeeID     string   `json:"employee_id"     binding:"required,uuid"`
	Date           string   `json:"date"            binding:"required,datetime=2006-01-02"`
	StartTime      string   `json:"start_time"      binding:"required,len=5"`
	EndTime        string   `json:"end_time"        binding:"required,len=5"`
	ShiftType      string   `json:"shift_type"      binding:"required,oneof=morning afternoon night full-day"`
	Location       string   `json:"location"        binding:"required,max=100"`
	Department     string   `json:"department"      binding:"omitempty,max=100"`
	Role           string   `json:"role"            binding:"required,max=50"`
	RequiredSkills []string `json:"required_skills" binding:"omitempty,dive,min=1"`
	BreakDuration  int      `json:"break_duration"  binding:"omitempty,min=0,max=480"`
	Notes          string   `json:"notes"           binding:"omitempty,max=500"`
}

// UpdateShiftRequest patches a shift; nil fields are left unchanged.
type UpdateShiftRequest struct {
	EmployeeID     *string  `json:"employee_id"     binding:"omitempty,uuid"`
	Date           *string  `json:"date"            binding:"omitempty,datetime=2006-01-02"`
	StartTime      *string  `json:"start_time"      binding:"omitempty,len=5"`
	EndTime        *string  `json:"end_time"        binding:"omitempty,len=5"`
	ShiftType      *string  `json:"shift_type"      binding:"omitempty,oneof=morning afternoon night full-day"`
	Location       *string  `json:"location"        binding:"omitempty,max=100"`
	Department     *string  `json:"department"      binding:"omitempty,max=100"`
	Role           *string  `json:"role"            binding:"omitempty,max=50"`
	RequiredSkills []string `json:"required_skills" binding:"omitempty,dive,min=1"`
	Status         *string  `json:"status"          binding:"omitempty,oneof=scheduled in-progress completed cancelled unassigned"`
	BreakDuration  *int     `json:"break_duration"  binding:"omitempty,min=0,max=480"`
	Notes          *string  `json:"notes"           binding:"omitempty,max=500"`
}

// ShiftListRequest filters the shift listing.
type ShiftListRequest struct {
	PaginationRequest
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	ScheduleID string `form:"schedule_id" binding:"omitempty,uuid"`
	Location   string `form:"location"`
	Department string `form:"department"`
	ShiftType  string `form:"shift_type"  binding:"omitempty,oneof=morning afternoon night full-day"`
	Status     string `form:"status"      binding:"omitempty,oneof=scheduled in-progress completed cancelled unassigned"`
	StartDate  string `form:"start_date"  binding:"omitempty,datetime=2006-01-02"`
	EndDate    string `form:"end_date"    binding:"omitempty,datetime=2006-01-02"`
}

// DateRangeRequest bounds the analytics queries.
type DateRangeRequest struct {
	StartDate  string `form:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate    string `form:"end_date"   binding:"required,datetime=2006-01-02"`
	Location   string `form:"location"`
	Department string `form:"department"`
}

// ── shift responses ──

// ShiftResponse is the full shift projection.
type ShiftResponse struct {
	ID             string   `json:"id"`
	ScheduleID     *string  `json:"schedule_id,omitempty"`
	TemplateID     *string  `json:"template_id,omitempty"`
	EmployeeID     *string  `json:"employee_id,omitempty"`
	EmployeeName   string   `json:"employee_name,omitempty"`
	Date           string   `json:"date"`
	StartTime      string   `json:"start_time"`
	EndTime        string   `json:"end_time"`
	ShiftType      string   `json:"shift_type"`
	Location       string   `json:"location"`
	Department     string   `json:"department,omitempty"`
	Role           string   `json:"role"`
	RequiredSkills []string `json:"required_skills,omitempty"`
	Status         string   `json:"status"`
	BreakDuration  int      `json:"break_duration"`
	IsTimeOff      bool     `json:"is_time_off"`
	Notes          string   `json:"notes,omitempty"`
	DurationHours  float64  `json:"duration_hours"`
	CreatedAt      string   `json:"created_at"`
	UpdatedAt      string   `json:"updated_at"`
}

// ── shift analytics responses ──

// LocationDateCoverage is one (location, date) coverage cell with its role
// breakdown.
type LocationDateCoverage struct {
	Location   string         `json:"location"`
	Date       string         `json:"date"`
	ShiftCount int            `json:"shift_count"`
	TotalHours float64        `json:"total_hours"`
	ByRole     map[string]int `json:"by_role"`
}

// CoverageByRangeResponse is the coverage-by-date-range analytics view.
type CoverageByRangeResponse struct {
	StartDate string                 `json:"start_date"`
	EndDate   string                 `json:"end_date"`
	Entries   []LocationDateCoverage `json:"entries"`
}

// EmployeeWorkload is one employee's aggregate load over a range.
type EmployeeWorkload struct {
	EmployeeID   string         `json:"employee_id"`
	EmployeeName string         `json:"employee_name"`
	TotalShifts  int            `json:"total_shifts"`
	TotalHours   float64        `json:"total_hours"`
	AvgHoursDay  float64        `json:"avg_hours_per_day"`
	ByShiftType  map[string]int `json:"by_shift_type"`
}

// WorkloadResponse is the workload-by-employee analytics view.
type WorkloadResponse struct {
	StartDate string             `json:"start_date"`
	EndDate   string             `json:"end_date"`
	Workloads []EmployeeWorkload `json:"workloads"`
}

// ConflictScanEntry is one overlapping shift pair found by the
// cross-schedule scan.
type ConflictScanEntry struct {
	EmployeeID   string   `json:"employee_id"`
	EmployeeName string   `json:"employee_name"`
	Date         string   `json:"date"`
	ShiftIDs     []string `json:"shift_ids"`
	Description  string   `json:"description"`
}

// ConflictScanResponse is the cross-schedule conflict scan view.
type ConflictScanResponse struct {
	StartDate string              `json:"start_date"`
	EndDate   string              `json:"end_date"`
	Conflicts []ConflictScanEntry `json:"conflicts"`
}
