package model

import "time"

// ShiftTemplate describes a recurring shift shape. At most one active
// template may exist per (name, department, location).
type ShiftTemplate struct {
	TemplateID  string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"template_id"`
	Name        string `gorm:"type:varchar(100);not null"                     json:"name"`
	Description string `gorm:"type:varchar(500)"                              json:"description,omitempty"`
	Department  string `gorm:"type:varchar(100);not null"                     json:"department"`
	Location    string `gorm:"type:varchar(100);not null"                     json:"location"`

	// default shift shape
	StartTime      string      `gorm:"type:varchar(5);not null"  json:"start_time"` // HH:MM
	EndTime        string      `gorm:"type:varchar(5);not null"  json:"end_time"`   // HH:MM
	ShiftType      string      `gorm:"type:varchar(20);not null" json:"shift_type"` // morning | afternoon | night | full-day
	Role           string      `gorm:"type:varchar(50);not null" json:"role"`
	RequiredSkills StringArray `gorm:"type:text[]"               json:"required_skills,omitempty"`
	BreakDuration  int         `gorm:"not null;default:0"        json:"break_duration"` // minutes

	// recurrence pattern
	RecurrenceType     string      `gorm:"type:varchar(10);not null" json:"recurrence_type"`          // daily | weekly | monthly
	RecurrenceDays     StringArray `gorm:"type:text[]"               json:"recurrence_days,omitempty"` // weekday names, weekly only
	RecurrenceInterval int         `gorm:"not null;default:1"        json:"recurrence_interval"`
	RecurrenceEndDate  *time.Time  `gorm:"type:date"                 json:"recurrence_end_date,omitempty"`

	IsActive bool `gorm:"not null;default:true" json:"is_active"`
	VersionedModel
}

func (ShiftTemplate) TableName() string { return "shift_templates" }
