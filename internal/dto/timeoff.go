package dto

// ── time-off requests ──

// CreateTimeOffRequest opens a leave request over an inclusive date span.
type CreateTimeOffRequest struct {
	EmployeeID  string `json:"employee_id"  binding:"omitempty,uuid"` // defaults to the caller
	Type        string `json:"type"         binding:"required,oneof=vacation sick personal emergency bereavement maternity paternity"`
	StartDate   string `json:"start_date"   binding:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date"     binding:"required,datetime=2006-01-02"`
	Reason      string `json:"reason"       binding:"required,min=1,max=500"`
	IsEmergency bool   `json:"is_emergency"`
}

// UpdateTimeOffRequest edits a pending request.
type UpdateTimeOffRequest struct {
	Type      *string `json:"type"       binding:"omitempty,oneof=vacation sick personal emergency bereavement maternity paternity"`
	StartDate *string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date"   binding:"omitempty,datetime=2006-01-02"`
	Reason    *string `json:"reason"     binding:"omitempty,min=1,max=500"`
}

// ReviewTimeOffRequest approves or rejects a pending request.
type ReviewTimeOffRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approved rejected"`
	Notes    string `json:"notes"    binding:"omitempty,max=500"`
}

// TimeOffListRequest filters the request listing.
type TimeOffListRequest struct {
	PaginationRequest
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Type       string `form:"type"        binding:"omitempty,oneof=vacation sick personal emergency bereavement maternity paternity"`
	Status     string `form:"status"      binding:"omitempty,oneof=pending approved rejected cancelled"`
	StartDate  string `form:"start_date"  binding:"omitempty,datetime=2006-01-02"`
	EndDate    string `form:"end_date"    binding:"omitempty,datetime=2006-01-02"`
}

// ── leave policy requests ──

// UpsertLeavePolicyRequest creates or updates a department allocation policy.
type UpsertLeavePolicyRequest struct {
	Department   string `json:"department"    binding:"required,max=100"`
	VacationDays int    `json:"vacation_days" binding:"required,min=0,max=365"`
	SickDays     int    `json:"sick_days"     binding:"required,min=0,max=365"`
	PersonalDays int    `json:"personal_days" binding:"required,min=0,max=365"`
}

// ── time-off responses ──

// TimeOffResponse is the full request projection.
type TimeOffResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	Type         string `json:"type"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	TotalDays    int    `json:"total_days"`
	Reason       string `json:"reason"`
	Status       string `json:"status"`
	IsEmergency  bool   `json:"is_emergency"`
	ReviewedBy   string `json:"reviewed_by,omitempty"`
	ReviewedAt   string `json:"reviewed_at,omitempty"`
	ReviewNotes  string `json:"review_notes,omitempty"`
	// Published shifts inside the leave span, captured at creation.
	ConflictingShiftIDs []string `json:"conflicting_shift_ids,omitempty"`
	CreatedAt           string   `json:"created_at"`
	UpdatedAt           string   `json:"updated_at"`
}

// CategoryBalanceResponse is one category's ledger slots.
type CategoryBalanceResponse struct {
	Allocated int `json:"allocated"`
	Used      int `json:"used"`
	Pending   int `json:"pending"`
	Remaining int `json:"remaining"`
}

// LeaveBalanceResponse is one employee's yearly ledger.
type LeaveBalanceResponse struct {
	EmployeeID string                  `json:"employee_id"`
	Year       int                     `json:"year"`
	Vacation   CategoryBalanceResponse `json:"vacation"`
	Sick       CategoryBalanceResponse `json:"sick"`
	Personal   CategoryBalanceResponse `json:"personal"`
	CarryOver  int                     `json:"carry_over"`
}

// TimeOffSummaryResponse is the per-employee leave summary.
type TimeOffSummaryResponse struct {
	EmployeeID       string               `json:"employee_id"`
	Balance          LeaveBalanceResponse `json:"balance"`
	RecentRequests   []TimeOffResponse    `json:"recent_requests"`   // last 90 days
	UpcomingApproved []TimeOffResponse    `json:"upcoming_approved"` // start date in the future
	ApprovedDaysYear int                  `json:"approved_days_this_year"`
}

// ── time-off analytics responses ──

// DepartmentApprovalRate is one department's review outcome ratio.
type DepartmentApprovalRate struct {
	Department   string  `json:"department"`
	Total        int     `json:"total"`
	Approved     int     `json:"approved"`
	ApprovalRate float64 `json:"approval_rate"` // approved / reviewed, 0..1
}

// MonthlyTrend is one calendar month's request volume.
type MonthlyTrend struct {
	Month    string `json:"month"` // YYYY-MM
	Requests int    `json:"requests"`
	Days     int    `json:"days"`
}

// TimeOffAnalyticsResponse is the organization-wide leave analytics view.
type TimeOffAnalyticsResponse struct {
	TotalByStatus      map[string]int           `json:"total_by_status"`
	AvgProcessingDays  float64                  `json:"avg_processing_days"`
	MostRequestedType  string                   `json:"most_requested_type"`
	DepartmentApproval []DepartmentApprovalRate `json:"department_approval"`
	MonthlyTrends      []MonthlyTrend           `json:"monthly_trends"`
}
