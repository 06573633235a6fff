package model

import "time"

// Shift is one worker's assignment to a time range on a calendar date.
// Invariant: start_time < end_time, same-day only.
type Shift struct {
	ShiftID        string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"shift_id"`
	ScheduleID     *string     `gorm:"type:uuid"                                      json:"schedule_id,omitempty"`
	TemplateID     *string     `gorm:"type:uuid"                                      json:"template_id,omitempty"`
	EmployeeID     *string     `gorm:"type:uuid"                                      json:"employee_id,omitempty"` // nil while unassigned
	Date           time.Time   `gorm:"type:date;not null"                             json:"date"`
	StartTime      string      `gorm:"type:varchar(5);not null"                       json:"start_time"` // HH:MM
	EndTime        string      `gorm:"type:varchar(5);not null"                       json:"end_time"`   // HH:MM
	ShiftType      string      `gorm:"type:varchar(20);not null"                      json:"shift_type"` // morning | afternoon | night | full-day
	Location       string      `gorm:"type:varchar(100);not null"                     json:"location"`
	Department     string      `gorm:"type:varchar(100)"                              json:"department,omitempty"`
	Role           string      `gorm:"type:varchar(50);not null"                      json:"role"`
	RequiredSkills StringArray `gorm:"type:text[]"                                    json:"required_skills,omitempty"`
	Status         string      `gorm:"type:varchar(20);not null;default:'scheduled'"  json:"status"` // scheduled | in-progress | completed | cancelled | unassigned
	BreakDuration  int         `gorm:"not null;default:0"                             json:"break_duration"` // minutes
	IsTimeOff      bool        `gorm:"not null;default:false"                         json:"is_time_off"`
	Notes          string      `gorm:"type:varchar(500)"                              json:"notes,omitempty"`
	VersionedModel

	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
	Schedule *Schedule `gorm:"foreignKey:ScheduleID;references:ScheduleID" json:"schedule,omitempty"`
}

func (Shift) TableName() string { return "shifts" }
