package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Rakibhasaniu/employee-schedule/internal/dto"
	"github.com/Rakibhasaniu/employee-schedule/internal/model"
	"github.com/Rakibhasaniu/employee-schedule/internal/repository"
)

// ── shift template module business errors ──

var (
	ErrTemplateNotFound  = errors.New("shift template not found")
	ErrTemplateDuplicate = errors.New("an active template with this name already exists for the department and location")
	ErrTemplateInactive  = errors.New("shift template is not active")
	ErrTemplateInUse     = errors.New("template has scheduled or in-progress shifts and cannot be deleted")
)

// TemplateService is the shift template business interface.
type TemplateService interface {
	Create(ctx context.Context, req *dto.CreateTemplateRequest, callerID string) (*dto.TemplateResponse, error)
	GetByID(ctx context.Context, id string) (*dto.TemplateResponse, error)
	List(ctx context.Context, req *dto.TemplateListRequest) ([]dto.TemplateResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateTemplateRequest, callerID string) (*dto.TemplateResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
	SetActive(ctx context.Context, id string, active bool, callerID string) (*dto.TemplateResponse, error)

	Expand(ctx context.Context, id string, req *dto.ExpandTemplateRequest, callerID string) (*dto.ExpandTemplateResponse, error)
	Usage(ctx context.Context, id string) (*dto.TemplateUsageResponse, error)
}

type templateService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTemplateService creates a TemplateService.
func NewTemplateService(repo *repository.Repository, logger *zap.Logger) TemplateService {
	return &templateService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *templateService) Create(ctx context.Context, req *dto.CreateTemplateRequest, callerID string) (*dto.TemplateResponse, error) {
	if req.StartTime >= req.EndTime {
		return nil, ErrInvalidTimeRange
	}
	if err := s.guardUnique(ctx, req.Name, req.Department, req.Location, ""); err != nil {
		return nil, err
	}

	template := &model.ShiftTemplate{
		Name:               req.Name,
		Description:        req.Description,
		Department:         req.Department,
		Location:           req.Location,
		StartTime:          req.StartTime,
		EndTime:            req.EndTime,
		ShiftType:          req.ShiftType,
		Role:               req.Role,
		RequiredSkills:     req.RequiredSkills,
		BreakDuration:      req.BreakDuration,
		RecurrenceType:     req.RecurrenceType,
		RecurrenceDays:     req.RecurrenceDays,
		RecurrenceInterval: req.RecurrenceInterval,
		IsActive:           true,
	}
	if template.RecurrenceInterval == 0 {
		template.RecurrenceInterval = 1
	}
	if req.RecurrenceEndDate != "" {
		endDate, err := time.Parse(dateLayout, req.RecurrenceEndDate)
		if err != nil {
			return nil, ErrInvalidDateRange
		}
		template.RecurrenceEndDate = &endDate
	}
	template.CreatedBy = &callerID
	template.UpdatedBy = &callerID

	if err := s.repo.Template.Create(ctx, template); err != nil {
		s.logger.Error("failed to create template", zap.Error(err))
		return nil, err
	}
	return toTemplateResponse(template), nil
}

// guardUnique enforces at most one active template per (name, department,
// location).
func (s *templateService) guardUnique(ctx context.Context, name, department, location, excludeID string) error {
	_, err := s.repo.Template.FindActiveDuplicate(ctx, name, department, location, excludeID)
	if err == nil {
		return ErrTemplateDuplicate
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	s.logger.Error("failed to check template uniqueness", zap.Error(err))
	return err
}

// ────────────────────── GetByID ──────────────────────

func (s *templateService) GetByID(ctx context.Context, id string) (*dto.TemplateResponse, error) {
	template, err := s.repo.Template.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		s.logger.Error("failed to load template", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toTemplateResponse(template), nil
}

// ────────────────────── List ──────────────────────

func (s *templateService) List(ctx context.Context, req *dto.TemplateListRequest) ([]dto.TemplateResponse, int64, error) {
	templates, total, err := s.repo.Template.List(ctx, repository.TemplateFilter{
		Department: req.Department,
		Location:   req.Location,
		IsActive:   req.IsActive,
		Search:     req.Search,
	}, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("failed to list templates", zap.Error(err))
		return nil, 0, err
	}

	out := make([]dto.TemplateResponse, 0, len(templates))
	for i := range templates {
		out = append(out, *toTemplateResponse(&templates[i]))
	}
	return out, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *templateService) Update(ctx context.Context, id string, req *dto.UpdateTemplateRequest, callerID string) (*dto.TemplateResponse, error) {
	template, err := s.repo.Template.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		s.logger.Error("failed to load template", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		template.Name = *req.Name
	}
	if req.Description != nil {
		template.Description = *req.Description
	}
	if req.Department != nil {
		template.Department = *req.Department
	}
	if req.Location != nil {
		template.Location = *req.Location
	}
	if req.StartTime != nil {
		template.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		template.EndTime = *req.EndTime
	}
	if template.StartTime >= template.EndTime {
		return nil, ErrInvalidTimeRange
	}
	if req.ShiftType != nil {
		template.ShiftType = *req.ShiftType
	}
	if req.Role != nil {
		template.Role = *req.Role
	}
	if req.RequiredSkills != nil {
		template.RequiredSkills = req.RequiredSkills
	}
	if req.BreakDuration != nil {
		template.BreakDuration = *req.BreakDuration
	}
	if req.RecurrenceType != nil {
		template.RecurrenceType = *req.RecurrenceType
	}
	if req.RecurrenceDays != nil {
		template.RecurrenceDays = req.RecurrenceDays
	}
	if req.RecurrenceInterval != nil {
		template.RecurrenceInterval = *req.RecurrenceInterval
	}
	if req.RecurrenceEndDate != nil {
		if *req.RecurrenceEndDate == "" {
			template.RecurrenceEndDate = nil
		} else {
			endDate, err := time.Parse(dateLayout, *req.RecurrenceEndDate)
			if err != nil {
				return nil, ErrInvalidDateRange
			}
			template.RecurrenceEndDate = &endDate
		}
	}

	if template.IsActive {
		if err := s.guardUnique(ctx, template.Name, template.Department, template.Location, id); err != nil {
			return nil, err
		}
	}
	template.UpdatedBy = &callerID

	if err := s.repo.Template.Update(ctx, template); err != nil {
		s.logger.Error("failed to update template", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toTemplateResponse(template), nil
}

// ────────────────────── Delete ──────────────────────

func (s *templateService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Template.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTemplateNotFound
		}
		s.logger.Error("failed to load template", zap.String("id", id), zap.Error(err))
		return err
	}

	// deletion is blocked while live shifts still reference the template
	for _, status := range []string{"scheduled", "in-progress"} {
		shifts, err := s.repo.Shift.ListAll(ctx, repository.ShiftFilter{TemplateID: id, Status: status})
		if err != nil {
			s.logger.Error("failed to check template shifts", zap.String("id", id), zap.Error(err))
			return err
		}
		if len(shifts) > 0 {
			return ErrTemplateInUse
		}
	}

	if err := s.repo.Template.Delete(ctx, id, &callerID); err != nil {
		s.logger.Error("failed to delete template", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── SetActive ──────────────────────

func (s *templateService) SetActive(ctx context.Context, id string, active bool, callerID string) (*dto.TemplateResponse, error) {
	template, err := s.repo.Template.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	if template.IsActive == active {
		return toTemplateResponse(template), nil
	}
	if active {
		if err := s.guardUnique(ctx, template.Name, template.Department, template.Location, id); err != nil {
			return nil, err
		}
	}

	template.IsActive = active
	template.UpdatedBy = &callerID
	if err := s.repo.Template.Update(ctx, template); err != nil {
		s.logger.Error("failed to toggle template", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toTemplateResponse(template), nil
}

// ────────────────────── Expand ──────────────────────

func (s *templateService) Expand(ctx context.Context, id string, req *dto.ExpandTemplateRequest, callerID string) (*dto.ExpandTemplateResponse, error) {
	template, err := s.repo.Template.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		s.logger.Error("failed to load template", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if !template.IsActive {
		return nil, ErrTemplateInactive
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	if start.After(end) {
		return nil, ErrInvalidDateRange
	}

	if req.ScheduleID != nil {
		schedule, err := s.repo.Schedule.GetByID(ctx, *req.ScheduleID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrScheduleNotFound
			}
			return nil, err
		}
		if schedule.Status != "draft" {
			return nil, ErrScheduleNotDraft
		}
	}

	candidates, err := s.expansionCandidates(ctx, template)
	if err != nil {
		return nil, err
	}

	leaves, err := s.repo.TimeOff.ListApprovedInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	approvedLeave := make(map[string][]model.TimeOffRequest)
	for _, leave := range leaves {
		approvedLeave[leave.EmployeeID] = append(approvedLeave[leave.EmployeeID], leave)
	}

	shifts := s.expandDates(ctx, template, candidates, approvedLeave, start, end, req.ScheduleID, callerID)

	err = s.repo.RunInTx(ctx, func(tx *repository.Repository) error {
		if err := tx.Shift.BatchCreate(ctx, shifts); err != nil {
			return err
		}
		if req.ScheduleID != nil {
			return recomputeSchedule(ctx, tx, *req.ScheduleID)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to persist expanded shifts", zap.String("template_id", id), zap.Error(err))
		return nil, err
	}

	resp := &dto.ExpandTemplateResponse{
		TemplateID: id,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Generated:  len(shifts),
		Shifts:     toShiftResponses(shifts),
	}
	for _, shift := range shifts {
		if shift.EmployeeID != nil {
			resp.Assigned++
		} else {
			resp.Unassigned++
		}
	}
	s.logger.Info("template expanded",
		zap.String("template_id", id),
		zap.Int("generated", resp.Generated),
		zap.Int("assigned", resp.Assigned),
		zap.Int("unassigned", resp.Unassigned))
	return resp, nil
}

// expansionCandidates selects eligible workers: location match,
// case-insensitive role match, full required-skill subset, active status.
func (s *templateService) expansionCandidates(ctx context.Context, template *model.ShiftTemplate) ([]model.Employee, error) {
	pool, err := s.repo.Employee.ListAll(ctx, repository.EmployeeFilter{
		Location: template.Location,
		Status:   "active",
	})
	if err != nil {
		s.logger.Error("failed to list expansion candidates", zap.Error(err))
		return nil, err
	}

	candidates := make([]model.Employee, 0, len(pool))
	for _, employee := range pool {
		if !strings.EqualFold(employee.Role, template.Role) {
			continue
		}
		if !employee.Skills.ContainsAll(template.RequiredSkills) {
			continue
		}
		candidates = append(candidates, employee)
	}
	return candidates, nil
}

// expandDates enumerates the range, applies the recurrence rule and builds
// one draft shift per included date, first-fit assigned or unassigned.
func (s *templateService) expandDates(
	ctx context.Context,
	template *model.ShiftTemplate,
	candidates []model.Employee,
	approvedLeave map[string][]model.TimeOffRequest,
	start, end time.Time,
	scheduleID *string,
	callerID string,
) []model.Shift {
	var shifts []model.Shift
	// batch-local assignments, keyed by employee and date, so two generated
	// shifts never overlap before they reach the database
	assignedDates := make(map[string]bool)

	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		if template.RecurrenceEndDate != nil && date.After(*template.RecurrenceEndDate) {
			break
		}
		if !recurrenceIncludes(template, start, date) {
			continue
		}

		shift := model.Shift{
			ScheduleID:     scheduleID,
			TemplateID:     &template.TemplateID,
			Date:           date,
			StartTime:      template.StartTime,
			EndTime:        template.EndTime,
			ShiftType:      template.ShiftType,
			Location:       template.Location,
			Department:     template.Department,
			Role:           template.Role,
			RequiredSkills: template.RequiredSkills,
			Status:         "unassigned",
			BreakDuration:  template.BreakDuration,
		}
		shift.CreatedBy = &callerID
		shift.UpdatedBy = &callerID

		// first matching candidate in enumeration order wins
		for i := range candidates {
			employee := &candidates[i]
			if availabilityViolation(employee, date, template.StartTime, template.EndTime) != "" {
				continue
			}
			if s.candidateBlocked(ctx, employee, date, template, approvedLeave, assignedDates) {
				continue
			}
			shift.EmployeeID = &employee.EmployeeID
			shift.Status = "scheduled"
			assignedDates[employee.EmployeeID+"|"+date.Format(dateLayout)] = true
			break
		}

		shifts = append(shifts, shift)
	}
	return shifts
}

// candidateBlocked screens a tentative assignment against approved leave,
// existing shifts and earlier assignments in the same batch; blocked
// assignments degrade the generated shift to unassigned.
func (s *templateService) candidateBlocked(
	ctx context.Context,
	employee *model.Employee,
	date time.Time,
	template *model.ShiftTemplate,
	approvedLeave map[string][]model.TimeOffRequest,
	assignedDates map[string]bool,
) bool {
	for _, leave := range approvedLeave[employee.EmployeeID] {
		if coversDate(&leave, date) {
			return true
		}
	}
	if assignedDates[employee.EmployeeID+"|"+date.Format(dateLayout)] {
		return true
	}
	existing, err := s.repo.Shift.ListByEmployeeAndDate(ctx, employee.EmployeeID, date)
	if err != nil {
		s.logger.Warn("failed to screen existing shifts, skipping candidate",
			zap.String("employee_id", employee.EmployeeID), zap.Error(err))
		return true
	}
	for _, other := range existing {
		if other.Status == "cancelled" {
			continue
		}
		if timeOverlap(template.StartTime, template.EndTime, other.StartTime, other.EndTime) {
			return true
		}
	}
	return false
}

// recurrenceIncludes decides whether a date belongs to the expansion:
// daily always, weekly by declared weekday set, monthly by the range
// start's day-of-month.
func recurrenceIncludes(template *model.ShiftTemplate, rangeStart, date time.Time) bool {
	switch template.RecurrenceType {
	case "daily":
		return true
	case "weekly":
		return template.RecurrenceDays.Contains(weekdayName(date))
	case "monthly":
		return date.Day() == rangeStart.Day()
	default:
		return false
	}
}

// ────────────────────── Usage ──────────────────────

func (s *templateService) Usage(ctx context.Context, id string) (*dto.TemplateUsageResponse, error) {
	template, err := s.repo.Template.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}

	shifts, err := s.repo.Shift.ListAll(ctx, repository.ShiftFilter{TemplateID: id})
	if err != nil {
		s.logger.Error("failed to list template shifts", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	resp := &dto.TemplateUsageResponse{
		TemplateID: id,
		Name:       template.Name,
	}
	employees := make(map[string]bool)
	weekHours := make(map[string]float64)
	for _, shift := range shifts {
		resp.TotalShifts++
		if shift.EmployeeID != nil {
			resp.AssignedShifts++
			employees[*shift.EmployeeID] = true
		}
		year, week := shift.Date.ISOWeek()
		weekHours[fmt.Sprintf("%d-W%02d", year, week)] += shiftDuration(shift.StartTime, shift.EndTime, shift.BreakDuration)
	}
	resp.UniqueEmployees = len(employees)
	if resp.TotalShifts > 0 {
		resp.AssignmentRate = float64(resp.AssignedShifts) / float64(resp.TotalShifts)
	}

	weeks := make([]string, 0, len(weekHours))
	for week := range weekHours {
		weeks = append(weeks, week)
	}
	sort.Strings(weeks)
	for _, week := range weeks {
		resp.HoursPerWeek = append(resp.HoursPerWeek, dto.WeekHours{Week: week, Hours: weekHours[week]})
	}
	return resp, nil
}

// ────────────────────── converters ──────────────────────

func toTemplateResponse(template *model.ShiftTemplate) *dto.TemplateResponse {
	resp := &dto.TemplateResponse{
		ID:                 template.TemplateID,
		Name:               template.Name,
		Description:        template.Description,
		Department:         template.Department,
		Location:           template.Location,
		StartTime:          template.StartTime,
		EndTime:            template.EndTime,
		ShiftType:          template.ShiftType,
		Role:               template.Role,
		RequiredSkills:     template.RequiredSkills,
		BreakDuration:      template.BreakDuration,
		RecurrenceType:     template.RecurrenceType,
		RecurrenceDays:     template.RecurrenceDays,
		RecurrenceInterval: template.RecurrenceInterval,
		IsActive:           template.IsActive,
		CreatedAt:          template.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          template.UpdatedAt.Format(time.RFC3339),
	}
	if template.RecurrenceEndDate != nil {
		resp.RecurrenceEndDate = template.RecurrenceEndDate.Format(dateLayout)
	}
	return resp
}
