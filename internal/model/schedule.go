package model

import "time"

// Schedule is a named weekly container of shifts with derived coverage and
// conflict lists. Once published its shift set is immutable.
type Schedule struct {
	ScheduleID    string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"schedule_id"`
	Title         string     `gorm:"type:varchar(200);not null"                     json:"title"`
	WeekStartDate time.Time  `gorm:"type:date;not null"                             json:"week_start_date"`
	WeekEndDate   time.Time  `gorm:"type:date;not null"                             json:"week_end_date"`
	Status        string     `gorm:"type:varchar(20);not null;default:'draft'"      json:"status"` // draft | published | completed
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	PublishedBy   *string    `gorm:"type:uuid"                                      json:"published_by,omitempty"`
	// Derived, recomputed on every shift mutation.
	TotalEmployees int     `gorm:"not null;default:0" json:"total_employees"`
	TotalHours     float64 `gorm:"not null;default:0" json:"total_hours"`
	VersionedModel

	Shifts    []Shift         `gorm:"foreignKey:ScheduleID" json:"shifts,omitempty"`
	Coverage  []CoverageEntry `gorm:"foreignKey:ScheduleID" json:"coverage,omitempty"`
	Conflicts []Conflict      `gorm:"foreignKey:ScheduleID" json:"conflicts,omitempty"`
}

func (Schedule) TableName() string { return "schedules" }

// CoverageEntry is the denormalized required-vs-assigned staffing for one
// location on a schedule. Declared rows carry staffing requirements and
// survive recomputes; synthesized rows (Declared=false) come and go with
// the shift set.
type CoverageEntry struct {
	CoverageID         string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"coverage_id"`
	ScheduleID         string      `gorm:"type:uuid;not null"                             json:"schedule_id"`
	Location           string      `gorm:"type:varchar(100);not null"                     json:"location"`
	RequiredStaff      int         `gorm:"not null;default:1"                             json:"required_staff"`
	AssignedStaff      int         `gorm:"not null;default:0"                             json:"assigned_staff"`
	CoveragePercentage int         `gorm:"not null;default:0"                             json:"coverage_percentage"`
	ShiftIDs           StringArray `gorm:"type:text[]"                                    json:"shift_ids"`
	Declared           bool        `gorm:"not null;default:false"                         json:"declared"`
	CreatedAt          time.Time   `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

func (CoverageEntry) TableName() string { return "schedule_coverage" }

// Conflict is a detected rule violation attached to a schedule. Generated,
// never hand-authored; only the resolve action mutates it.
type Conflict struct {
	ConflictID   string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"conflict_id"`
	ScheduleID   string      `gorm:"type:uuid;not null"                             json:"schedule_id"`
	Type         string      `gorm:"type:varchar(30);not null"                      json:"type"` // overlap | double-booking | unavailable | overtime
	EmployeeID   string      `gorm:"type:uuid;not null"                             json:"employee_id"`
	EmployeeName string      `gorm:"type:varchar(200)"                              json:"employee_name"`
	Description  string      `gorm:"type:varchar(500);not null"                     json:"description"`
	ShiftIDs     StringArray `gorm:"type:text[]"                                    json:"shift_ids"`
	Resolved     bool        `gorm:"not null;default:false"                         json:"resolved"`
	ResolvedBy   *string     `gorm:"type:uuid"                                      json:"resolved_by,omitempty"`
	ResolvedAt   *time.Time  `json:"resolved_at,omitempty"`
	CreatedAt    time.Time   `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

func (Conflict) TableName() string { return "schedule_conflicts" }
