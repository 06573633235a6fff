package model

import "time"

// Leave request types. Balances are only tracked for vacation, sick and
// personal; the rest pass through review without touching the ledger.
const (
	LeaveVacation    = "vacation"
	LeaveSick        = "sick"
	LeavePersonal    = "personal"
	LeaveEmergency   = "emergency"
	LeaveBereavement = "bereavement"
	LeaveMaternity   = "maternity"
	LeavePaternity   = "paternity"
)

// TrackedLeaveType reports whether the request type participates in the
// leave balance ledger.
func TrackedLeaveType(t string) bool {
	return t == LeaveVacation || t == LeaveSick || t == LeavePersonal
}

// TimeOffRequest is an employee's petition for leave over an inclusive
// date span.
type TimeOffRequest struct {
	RequestID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"request_id"`
	EmployeeID  string    `gorm:"type:uuid;not null"                             json:"employee_id"`
	Type        string    `gorm:"type:varchar(20);not null"                      json:"type"`
	StartDate   time.Time `gorm:"type:date;not null"                             json:"start_date"`
	EndDate     time.Time `gorm:"type:date;not null"                             json:"end_date"`
	TotalDays   int       `gorm:"not null"                                       json:"total_days"` // inclusive day span
	Reason      string    `gorm:"type:varchar(500);not null"                     json:"reason"`
	Status      string    `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"` // pending | approved | rejected | cancelled
	IsEmergency bool      `gorm:"not null;default:false"                         json:"is_emergency"`

	ReviewedBy  *string    `gorm:"type:uuid"         json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	ReviewNotes string     `gorm:"type:varchar(500)" json:"review_notes,omitempty"`

	// Published shifts inside the leave span, captured at creation time.
	ConflictingShiftIDs StringArray `gorm:"type:text[]" json:"conflicting_shift_ids,omitempty"`
	ReplacementID       *string     `gorm:"type:uuid"   json:"replacement_id,omitempty"`
	SoftDeleteModel

	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
}

func (TimeOffRequest) TableName() string { return "time_off_requests" }

// CategoryBalance is one leave category's ledger slots, in days.
// Invariant: Remaining = Allocated - Used - Pending.
type CategoryBalance struct {
	Allocated int `json:"allocated"`
	Used      int `gorm:"not null;default:0" json:"used"`
	Pending   int `gorm:"not null;default:0" json:"pending"`
	Remaining int `json:"remaining"`
}

// LeaveBalance is one employee's per-year ledger across the tracked
// categories. Lazily seeded on first use from the department policy.
type LeaveBalance struct {
	BalanceID  string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"balance_id"`
	EmployeeID string `gorm:"type:uuid;not null;uniqueIndex:idx_balance_employee_year" json:"employee_id"`
	Year       int    `gorm:"not null;uniqueIndex:idx_balance_employee_year"           json:"year"`

	Vacation CategoryBalance `gorm:"embedded;embeddedPrefix:vacation_" json:"vacation"`
	Sick     CategoryBalance `gorm:"embedded;embeddedPrefix:sick_"     json:"sick"`
	Personal CategoryBalance `gorm:"embedded;embeddedPrefix:personal_" json:"personal"`

	CarryOver int `gorm:"not null;default:0" json:"carry_over"`
	VersionedModel
}

func (LeaveBalance) TableName() string { return "leave_balances" }

// Category returns the ledger slot for a tracked leave type, nil otherwise.
func (b *LeaveBalance) Category(leaveType string) *CategoryBalance {
	switch leaveType {
	case LeaveVacation:
		return &b.Vacation
	case LeaveSick:
		return &b.Sick
	case LeavePersonal:
		return &b.Personal
	default:
		return nil
	}
}

// LeavePolicy is a per-department annual allocation used to seed balances.
type LeavePolicy struct {
	PolicyID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"policy_id"`
	Department   string `gorm:"type:varchar(100);not null;uniqueIndex"         json:"department"`
	VacationDays int    `gorm:"not null;default:25"                            json:"vacation_days"`
	SickDays     int    `gorm:"not null;default:10"                            json:"sick_days"`
	PersonalDays int    `gorm:"not null;default:5"                             json:"personal_days"`
	VersionedModel
}

func (LeavePolicy) TableName() string { return "leave_policies" }

// Default annual allocations applied when no department policy exists.
const (
	DefaultVacationDays = 25
	DefaultSickDays     = 10
	DefaultPersonalDays = 5
)
