package dto

import "github.com/Rakibhasaniu/employee-schedule/internal/model"

// ── employee requests ──

// DayAvailabilityInput is one weekday's working window.
type DayAvailabilityInput struct {
	Start     string `json:"start"     binding:"omitempty,len=5"`
	End       string `json:"end"       binding:"omitempty,len=5"`
	Available bool   `json:"available"`
}

// CreateEmployeeRequest creates an employee and its identity record in one
// transaction.
type CreateEmployeeRequest struct {
	FirstName    string                          `json:"first_name"   binding:"required,min=1,max=100"`
	LastName     string                          `json:"last_name"    binding:"required,min=1,max=100"`
	Email        string                          `json:"email"        binding:"required,email"`
	Phone        string                          `json:"phone"        binding:"omitempty,max=30"`
	Role         string                          `json:"role"         binding:"required,max=50"`
	Department   string                          `json:"department"   binding:"required,max=100"`
	Location     string                          `json:"location"     binding:"required,max=100"`
	Skills       []string                        `json:"skills"       binding:"omitempty,dive,min=1"`
	Availability map[string]DayAvailabilityInput `json:"availability" binding:"omitempty"`
	UserRole     string                          `json:"user_role"    binding:"omitempty,oneof=admin manager employee"`
	Password     string                          `json:"password"     binding:"omitempty,min=8,max=72"`
}

// UpdateEmployeeRequest patches an employee; nil fields are left unchanged.
type UpdateEmployeeRequest struct {
	FirstName    *string                         `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName     *string                         `json:"last_name"  binding:"omitempty,min=1,max=100"`
	Email        *string                         `json:"email"      binding:"omitempty,email"`
	Phone        *string                         `json:"phone"      binding:"omitempty,max=30"`
	Role         *string                         `json:"role"       binding:"omitempty,max=50"`
	Department   *string                         `json:"department" binding:"omitempty,max=100"`
	Location     *string                         `json:"location"   binding:"omitempty,max=100"`
	Skills       []string                        `json:"skills"     binding:"omitempty,dive,min=1"`
	Availability map[string]DayAvailabilityInput `json:"availability"`
	Status       *string                         `json:"status"     binding:"omitempty,oneof=active inactive"`
	ProfileImg   *string                         `json:"profile_img"`
}

// EmployeeListRequest filters the employee listing.
type EmployeeListRequest struct {
	PaginationRequest
	Department string `form:"department"`
	Location   string `form:"location"`
	Role       string `form:"role"`
	Status     string `form:"status" binding:"omitempty,oneof=active inactive"`
	Skill      string `form:"skill"`
	Search     string `form:"search"`
}

// SkillSearchRequest finds employees holding any of the given skills.
type SkillSearchRequest struct {
	Skills   []string `form:"skills"   binding:"required,min=1"`
	Location string   `form:"location"`
}

// ── employee responses ──

// EmployeeResponse is the full employee projection.
type EmployeeResponse struct {
	ID           string                   `json:"id"`
	Code         string                   `json:"code"`
	FirstName    string                   `json:"first_name"`
	LastName     string                   `json:"last_name"`
	FullName     string                   `json:"full_name"`
	Email        string                   `json:"email"`
	Phone        string                   `json:"phone,omitempty"`
	Role         string                   `json:"role"`
	Department   string                   `json:"department"`
	Location     string                   `json:"location"`
	Skills       []string                 `json:"skills"`
	Availability model.WeeklyAvailability `json:"availability,omitempty"`
	Status       string                   `json:"status"`
	ProfileImg   string                   `json:"profile_img,omitempty"`
	UserID       string                   `json:"user_id"`
	CreatedAt    string                   `json:"created_at"`
	UpdatedAt    string                   `json:"updated_at"`
}

// DayAvailabilityResponse is the employee's window for one calendar date.
type DayAvailabilityResponse struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Weekday    string `json:"weekday"`
	Available  bool   `json:"available"`
	Start      string `json:"start,omitempty"`
	End        string `json:"end,omitempty"`
}
