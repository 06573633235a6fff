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

// ── shift module business errors ──

var (
	ErrShiftNotFound    = errors.New("shift not found")
	ErrShiftCompleted   = errors.New("completed shifts cannot be modified")
	ErrShiftUndeletable = errors.New("in-progress and completed shifts cannot be deleted")
	ErrInvalidTimeRange = errors.New("start time must be before end time")
	ErrInvalidDateRange = errors.New("start date must not be after end date")
	ErrShiftConflict    = errors.New("shift conflicts detected")
	ErrEmployeeInactive = errors.New("employee is not active")
)

// ConflictDetailsError carries the detected conflict descriptions across the
// write boundary. Matches ErrShiftConflict under errors.Is.
type ConflictDetailsError struct {
	Conflicts []model.Conflict
}

func (e *ConflictDetailsError) Error() string {
	descriptions := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		descriptions = append(descriptions, c.Description)
	}
	return "shift conflicts detected: " + strings.Join(descriptions, "; ")
}

func (e *ConflictDetailsError) Is(target error) bool { return target == ErrShiftConflict }

// Descriptions returns the human-readable conflict list.
func (e *ConflictDetailsError) Descriptions() []string {
	out := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		out = append(out, c.Description)
	}
	return out
}

// ShiftService is the shift business interface.
type ShiftService interface {
	Create(ctx context.Context, req *dto.CreateShiftRequest, callerID string) (*dto.ShiftResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ShiftResponse, error)
	List(ctx context.Context, req *dto.ShiftListRequest) ([]dto.ShiftResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateShiftRequest, callerID string) (*dto.ShiftResponse, error)
	Delete(ctx context.Context, id string, callerID string) error

	// analytics: pure reducers over the shift set
	CoverageByRange(ctx context.Context, req *dto.DateRangeRequest) (*dto.CoverageByRangeResponse, error)
	WorkloadByEmployee(ctx context.Context, req *dto.DateRangeRequest) (*dto.WorkloadResponse, error)
	ConflictScan(ctx context.Context, req *dto.DateRangeRequest) (*dto.ConflictScanResponse, error)
	ListByEmployee(ctx context.Context, employeeID string, req *dto.ShiftListRequest) ([]dto.ShiftResponse, int64, error)
}

type shiftService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewShiftService creates a ShiftService.
func NewShiftService(repo *repository.Repository, logger *zap.Logger) ShiftService {
	return &shiftService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *shiftService) Create(ctx context.Context, req *dto.CreateShiftRequest, callerID string) (*dto.ShiftResponse, error) {
	if req.StartTime >= req.EndTime {
		return nil, ErrInvalidTimeRange
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, ErrInvalidDateRange
	}

	employee, err := s.repo.Employee.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("failed to load employee", zap.Error(err))
		return nil, err
	}
	if employee.Status != "active" {
		return nil, ErrEmployeeInactive
	}

	var schedule *model.Schedule
	if req.ScheduleID != nil {
		schedule, err = s.repo.Schedule.GetByID(ctx, *req.ScheduleID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrScheduleNotFound
			}
			s.logger.Error("failed to load schedule", zap.Error(err))
			return nil, err
		}
		if schedule.Status != "draft" {
			return nil, ErrScheduleNotDraft
		}
	}

	shift := &model.Shift{
		ScheduleID:     req.ScheduleID,
		EmployeeID:     &req.EmployeeID,
		Date:           date,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		ShiftType:      req.ShiftType,
		Location:       req.Location,
		Department:     req.Department,
		Role:           req.Role,
		RequiredSkills: req.RequiredSkills,
		Status:         "scheduled",
		BreakDuration:  req.BreakDuration,
		Notes:          req.Notes,
	}
	shift.CreatedBy = &callerID
	shift.UpdatedBy = &callerID

	if err := s.checkShiftConflicts(ctx, shift, ""); err != nil {
		return nil, err
	}

	err = s.repo.RunInTx(ctx, func(tx *repository.Repository) error {
		if err := tx.Shift.Create(ctx, shift); err != nil {
			return err
		}
		if schedule != nil {
			return recomputeSchedule(ctx, tx, schedule.ScheduleID)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to create shift", zap.Error(err))
		return nil, err
	}

	resp := toShiftResponse(shift)
	resp.EmployeeName = employee.FullName()
	return resp, nil
}

// checkShiftConflicts runs the write-boundary conflict gate for one shift.
func (s *shiftService) checkShiftConflicts(ctx context.Context, shift *model.Shift, excludeShiftID string) error {
	if shift.EmployeeID == nil {
		return nil
	}
	employee, err := s.repo.Employee.GetByID(ctx, *shift.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		return err
	}
	sameDate, err := s.repo.Shift.ListByEmployeeAndDate(ctx, *shift.EmployeeID, shift.Date)
	if err != nil {
		return err
	}
	approved, err := s.repo.TimeOff.ListOverlapping(ctx, *shift.EmployeeID, shift.Date, shift.Date, []string{"approved"})
	if err != nil {
		return err
	}
	conflicts := detectShiftConflicts(shift, employee, sameDate, approved, excludeShiftID)
	if len(conflicts) > 0 {
		return &ConflictDetailsError{Conflicts: conflicts}
	}
	return nil
}

// ────────────────────── GetByID ──────────────────────

func (s *shiftService) GetByID(ctx context.Context, id string) (*dto.ShiftResponse, error) {
	shift, err := s.repo.Shift.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftNotFound
		}
		s.logger.Error("failed to load shift", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toShiftResponse(shift), nil
}

// ────────────────────── List ──────────────────────

func (s *shiftService) List(ctx context.Context, req *dto.ShiftListRequest) ([]dto.ShiftResponse, int64, error) {
	filter, err := shiftFilterFromRequest(req)
	if err != nil {
		return nil, 0, err
	}
	shifts, total, err := s.repo.Shift.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("failed to list shifts", zap.Error(err))
		return nil, 0, err
	}
	return toShiftResponses(shifts), total, nil
}

func shiftFilterFromRequest(req *dto.ShiftListRequest) (repository.ShiftFilter, error) {
	filter := repository.ShiftFilter{
		EmployeeID: req.EmployeeID,
		ScheduleID: req.ScheduleID,
		Location:   req.Location,
		Department: req.Department,
		ShiftType:  req.ShiftType,
		Status:     req.Status,
	}
	if req.StartDate != "" {
		from, err := time.Parse(dateLayout, req.StartDate)
		if err != nil {
			return filter, ErrInvalidDateRange
		}
		filter.DateFrom = &from
	}
	if req.EndDate != "" {
		to, err := time.Parse(dateLayout, req.EndDate)
		if err != nil {
			return filter, ErrInvalidDateRange
		}
		filter.DateTo = &to
	}
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateFrom.After(*filter.DateTo) {
		return filter, ErrInvalidDateRange
	}
	return filter, nil
}

// ────────────────────── Update ──────────────────────

func (s *shiftService) Update(ctx context.Context, id string, req *dto.UpdateShiftRequest, callerID string) (*dto.ShiftResponse, error) {
	shift, err := s.repo.Shift.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftNotFound
		}
		s.logger.Error("failed to load shift", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if shift.Status == "completed" {
		return nil, ErrShiftCompleted
	}
	if err := s.guardScheduleMutable(ctx, shift.ScheduleID); err != nil {
		return nil, err
	}

	if req.EmployeeID != nil {
		employee, err := s.repo.Employee.GetByID(ctx, *req.EmployeeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrEmployeeNotFound
			}
			return nil, err
		}
		if employee.Status != "active" {
			return nil, ErrEmployeeInactive
		}
		shift.EmployeeID = req.EmployeeID
		if shift.Status == "unassigned" {
			shift.Status = "scheduled"
		}
	}
	if req.Date != nil {
		date, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			return nil, ErrInvalidDateRange
		}
		shift.Date = date
	}
	if req.StartTime != nil {
		shift.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		shift.EndTime = *req.EndTime
	}
	if shift.StartTime >= shift.EndTime {
		return nil, ErrInvalidTimeRange
	}
	if req.ShiftType != nil {
		shift.ShiftType = *req.ShiftType
	}
	if req.Location != nil {
		shift.Location = *req.Location
	}
	if req.Department != nil {
		shift.Department = *req.Department
	}
	if req.Role != nil {
		shift.Role = *req.Role
	}
	if req.RequiredSkills != nil {
		shift.RequiredSkills = req.RequiredSkills
	}
	if req.Status != nil {
		shift.Status = *req.Status
	}
	if req.BreakDuration != nil {
		shift.BreakDuration = *req.BreakDuration
	}
	if req.Notes != nil {
		shift.Notes = *req.Notes
	}
	shift.UpdatedBy = &callerID

	if shift.Status != "cancelled" {
		if err := s.checkShiftConflicts(ctx, shift, shift.ShiftID); err != nil {
			return nil, err
		}
	}

	err = s.repo.RunInTx(ctx, func(tx *repository.Repository) error {
		if err := tx.Shift.Update(ctx, shift); err != nil {
			return err
		}
		if shift.ScheduleID != nil {
			return recomputeSchedule(ctx, tx, *shift.ScheduleID)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to update shift", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toShiftResponse(shift), nil
}

// guardScheduleMutable rejects mutations on shifts belonging to a published
// or completed schedule.
func (s *shiftService) guardScheduleMutable(ctx context.Context, scheduleID *string) error {
	if scheduleID == nil {
		return nil
	}
	schedule, err := s.repo.Schedule.GetByID(ctx, *scheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if schedule.Status != "draft" {
		return ErrScheduleNotDraft
	}
	return nil
}

// ────────────────────── Delete ──────────────────────

func (s *shiftService) Delete(ctx context.Context, id string, callerID string) error {
	shift, err := s.repo.Shift.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrShiftNotFound
		}
		s.logger.Error("failed to load shift", zap.String("id", id), zap.Error(err))
		return err
	}
	if shift.Status == "in-progress" || shift.Status == "completed" {
		return ErrShiftUndeletable
	}
	if err := s.guardScheduleMutable(ctx, shift.ScheduleID); err != nil {
		return err
	}

	err = s.repo.RunInTx(ctx, func(tx *repository.Repository) error {
		if err := tx.Shift.Delete(ctx, id, &callerID); err != nil {
			return err
		}
		if shift.ScheduleID != nil {
			return recomputeSchedule(ctx, tx, *shift.ScheduleID)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to delete shift", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── analytics ──────────────────────

func (s *shiftService) rangeShifts(ctx context.Context, req *dto.DateRangeRequest) ([]model.Shift, time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	if start.After(end) {
		return nil, time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	shifts, err := s.repo.Shift.ListAll(ctx, repository.ShiftFilter{
		Location:   req.Location,
		Department: req.Department,
		DateFrom:   &start,
		DateTo:     &end,
	})
	if err != nil {
		s.logger.Error("failed to list shifts for analytics", zap.Error(err))
		return nil, time.Time{}, time.Time{}, err
	}
	return shifts, start, end, nil
}

// CoverageByRange groups shifts by (location, date) with a role breakdown.
func (s *shiftService) CoverageByRange(ctx context.Context, req *dto.DateRangeRequest) (*dto.CoverageByRangeResponse, error) {
	shifts, _, _, err := s.rangeShifts(ctx, req)
	if err != nil {
		return nil, err
	}

	type cellKey struct {
		location string
		date     string
	}
	cells := make(map[cellKey]*dto.LocationDateCoverage)
	for _, shift := range shifts {
		if shift.Status == "cancelled" {
			continue
		}
		key := cellKey{location: shift.Location, date: shift.Date.Format(dateLayout)}
		cell, ok := cells[key]
		if !ok {
			cell = &dto.LocationDateCoverage{
				Location: key.location,
				Date:     key.date,
				ByRole:   make(map[string]int),
			}
			cells[key] = cell
		}
		cell.ShiftCount++
		cell.TotalHours += shiftDuration(shift.StartTime, shift.EndTime, shift.BreakDuration)
		cell.ByRole[shift.Role]++
	}

	entries := make([]dto.LocationDateCoverage, 0, len(cells))
	for _, cell := range cells {
		entries = append(entries, *cell)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Location != entries[j].Location {
			return entries[i].Location < entries[j].Location
		}
		return entries[i].Date < entries[j].Date
	})

	return &dto.CoverageByRangeResponse{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Entries:   entries,
	}, nil
}

// WorkloadByEmployee aggregates hours and shift-type counts per employee.
func (s *shiftService) WorkloadByEmployee(ctx context.Context, req *dto.DateRangeRequest) (*dto.WorkloadResponse, error) {
	shifts, start, end, err := s.rangeShifts(ctx, req)
	if err != nil {
		return nil, err
	}
	rangeDays := inclusiveDays(start, end)

	loads := make(map[string]*dto.EmployeeWorkload)
	for _, shift := range shifts {
		if shift.EmployeeID == nil || shift.Status == "cancelled" {
			continue
		}
		load, ok := loads[*shift.EmployeeID]
		if !ok {
			load = &dto.EmployeeWorkload{
				EmployeeID:  *shift.EmployeeID,
				ByShiftType: make(map[string]int),
			}
			if shift.Employee != nil {
				load.EmployeeName = shift.Employee.FullName()
			}
			loads[*shift.EmployeeID] = load
		}
		load.TotalShifts++
		load.TotalHours += shiftDuration(shift.StartTime, shift.EndTime, shift.BreakDuration)
		load.ByShiftType[shift.ShiftType]++
	}

	workloads := make([]dto.EmployeeWorkload, 0, len(loads))
	for _, load := range loads {
		if rangeDays > 0 {
			load.AvgHoursDay = load.TotalHours / float64(rangeDays)
		}
		workloads = append(workloads, *load)
	}
	sort.Slice(workloads, func(i, j int) bool {
		return workloads[i].TotalHours > workloads[j].TotalHours
	})

	return &dto.WorkloadResponse{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Workloads: workloads,
	}, nil
}

// ConflictScan finds overlapping shift pairs across all schedules in range.
func (s *shiftService) ConflictScan(ctx context.Context, req *dto.DateRangeRequest) (*dto.ConflictScanResponse, error) {
	shifts, _, _, err := s.rangeShifts(ctx, req)
	if err != nil {
		return nil, err
	}

	byEmployee := make(map[string][]model.Shift)
	for _, shift := range shifts {
		if shift.EmployeeID == nil || shift.Status == "cancelled" {
			continue
		}
		byEmployee[*shift.EmployeeID] = append(byEmployee[*shift.EmployeeID], shift)
	}
	employeeIDs := make([]string, 0, len(byEmployee))
	for id := range byEmployee {
		employeeIDs = append(employeeIDs, id)
	}
	sort.Strings(employeeIDs)

	var entries []dto.ConflictScanEntry
	for _, empID := range employeeIDs {
		group := byEmployee[empID]
		for i := range group {
			for j := i + 1; j < len(group); j++ {
				if !group[i].Date.Equal(group[j].Date) {
					continue
				}
				if !timeOverlap(group[i].StartTime, group[i].EndTime, group[j].StartTime, group[j].EndTime) {
					continue
				}
				name := ""
				if group[i].Employee != nil {
					name = group[i].Employee.FullName()
				}
				entries = append(entries, dto.ConflictScanEntry{
					EmployeeID:   empID,
					EmployeeName: name,
					Date:         group[i].Date.Format(dateLayout),
					ShiftIDs:     []string{group[i].ShiftID, group[j].ShiftID},
					Description: fmt.Sprintf("overlapping shifts %s-%s and %s-%s",
						group[i].StartTime, group[i].EndTime, group[j].StartTime, group[j].EndTime),
				})
			}
		}
	}

	return &dto.ConflictScanResponse{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Conflicts: entries,
	}, nil
}

func (s *shiftService) ListByEmployee(ctx context.Context, employeeID string, req *dto.ShiftListRequest) ([]dto.ShiftResponse, int64, error) {
	if _, err := s.repo.Employee.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrEmployeeNotFound
		}
		return nil, 0, err
	}
	req.EmployeeID = employeeID
	return s.List(ctx, req)
}

// ────────────────────── converters ──────────────────────

func toShiftResponse(shift *model.Shift) *dto.ShiftResponse {
	resp := &dto.ShiftResponse{
		ID:             shift.ShiftID,
		ScheduleID:     shift.ScheduleID,
		TemplateID:     shift.TemplateID,
		EmployeeID:     shift.EmployeeID,
		Date:           shift.Date.Format(dateLayout),
		StartTime:      shift.StartTime,
		EndTime:        shift.EndTime,
		ShiftType:      shift.ShiftType,
		Location:       shift.Location,
		Department:     shift.Department,
		Role:           shift.Role,
		RequiredSkills: shift.RequiredSkills,
		Status:         shift.Status,
		BreakDuration:  shift.BreakDuration,
		IsTimeOff:      shift.IsTimeOff,
		Notes:          shift.Notes,
		DurationHours:  shiftDuration(shift.StartTime, shift.EndTime, shift.BreakDuration),
		CreatedAt:      shift.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      shift.UpdatedAt.Format(time.RFC3339),
	}
	if shift.Employee != nil {
		resp.EmployeeName = shift.Employee.FullName()
	}
	return resp
}

func toShiftResponses(shifts []model.Shift) []dto.ShiftResponse {
	out := make([]dto.ShiftResponse, 0, len(shifts))
	for i := range shifts {
		out = append(out, *toShiftResponse(&shifts[i]))
	}
	return out
}
