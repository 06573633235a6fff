package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Rakibhasaniu/employee-schedule/internal/dto"
	"github.com/Rakibhasaniu/employee-schedule/internal/model"
	"github.com/Rakibhasaniu/employee-schedule/internal/repository"
)

// ── schedule module business errors ──

var (
	ErrScheduleNotFound      = errors.New("schedule not found")
	ErrScheduleNotDraft      = errors.New("schedule is not in draft status")
	ErrScheduleCompleted     = errors.New("schedule is already completed")
	ErrUnresolvedConflicts   = errors.New("schedule has unresolved conflicts")
	ErrConflictNotFound      = errors.New("conflict not found")
	ErrConflictResolved      = errors.New("conflict is already resolved")
	ErrInvalidWeekRange      = errors.New("week start date must be before week end date")
	ErrEmployeeNotInSchedule = errors.New("employee has no shifts in this schedule")
)

// ScheduleService is the schedule business interface.
type ScheduleService interface {
	Create(ctx context.Context, req *dto.CreateScheduleRequest, callerID string) (*dto.ScheduleDetailResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ScheduleDetailResponse, error)
	List(ctx context.Context, req *dto.ScheduleListRequest) ([]dto.ScheduleResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateScheduleRequest, callerID string) (*dto.ScheduleDetailResponse, error)
	Delete(ctx context.Context, id string, callerID string) error

	AssignShift(ctx context.Context, id string, req *dto.AssignShiftRequest, callerID string) (*dto.ScheduleDetailResponse, error)
	RemoveShift(ctx context.Context, id, shiftID string, callerID string) (*dto.ScheduleDetailResponse, error)
	Publish(ctx context.Context, id string, callerID string) (*dto.ScheduleDetailResponse, error)
	Complete(ctx context.Context, id string, callerID string) (*dto.ScheduleDetailResponse, error)
	ResolveConflict(ctx context.Context, id, conflictID string, req *dto.ResolveConflictRequest, callerID string) (*dto.ConflictResponse, error)
	EmployeeWeek(ctx context.Context, id, employeeID string) (*dto.EmployeeWeekResponse, error)
}

type scheduleService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewScheduleService creates a ScheduleService.
func NewScheduleService(repo *repository.Repository, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *scheduleService) Create(ctx context.Context, req *dto.CreateScheduleRequest, callerID string) (*dto.ScheduleDetailResponse, error) {
	weekStart, err := time.Parse(dateLayout, req.WeekStartDate)
	if err != nil {
		return nil, ErrInvalidWeekRange
	}
	weekEnd, err := time.Parse(dateLayout, req.WeekEndDate)
	if err != nil {
		return nil, ErrInvalidWeekRange
	}
	if !weekStart.Before(weekEnd) {
		return nil, ErrInvalidWeekRange
	}

	schedule := &model.Schedule{
		Title:         req.Title,
		WeekStartDate: weekStart,
		WeekEndDate:   weekEnd,
		Status:        "draft",
	}
	schedule.CreatedBy = &callerID
	schedule.UpdatedBy = &callerID

	declared := make([]model.CoverageEntry, 0, len(req.RequiredCoverage))
	for _, c := range req.RequiredCoverage {
		declared = append(declared, model.CoverageEntry{
			Location:      c.Location,
			RequiredStaff: c.RequiredStaff,
			Declared:      true,
		})
	}

	err = s.repo.RunInTx(ctx, func(tx *repository.Repository) error {
		if err := tx.Schedule.Create(ctx, schedule); err != nil {
			return err
		}
		return tx.Schedule.ReplaceCoverage(ctx, schedule.ScheduleID, computeCoverage(declared, nil))
	})
	if err != nil {
		s.logger.Error("failed to create schedule", zap.Error(err))
		return nil, err
	}

	return s.GetByID(ctx, schedule.ScheduleID)
}

// ────────────────────── GetByID ──────────────────────

func (s *scheduleService) GetByID(ctx context.Context, id string) (*dto.ScheduleDetailResponse, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("failed to load schedule", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toScheduleDetailResponse(schedule), nil
}

// ────────────────────── List ──────────────────────

func (s *scheduleService) List(ctx context.Context, req *dto.ScheduleListRequest) ([]dto.ScheduleResponse, int64, error) {
	filter := repository.ScheduleFilter{
		Status: req.Status,
		Search: req.Search,
	}
	if req.StartDate != "" {
		from, err := time.Parse(dateLayout, req.StartDate)
		if err != nil {
			return nil, 0, ErrInvalidDateRange
		}
		filter.DateFrom = &from
	}
	if req.EndDate != "" {
		to, err := time.Parse(dateLayout, req.EndDate)
		if err != nil {
			return nil, 0, ErrInvalidDateRange
		}
		filter.DateTo = &to
	}

	schedules, total, err := s.repo.Schedule.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("failed to list schedules", zap.Error(err))
		return nil, 0, err
	}

	out := make([]dto.ScheduleResponse, 0, len(schedules))
	for i := range schedules {
		out = append(out, *toScheduleResponse(&schedules[i]))
	}
	return out, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *scheduleService) Update(ctx context.Context, id string, req *dto.UpdateScheduleRequest, callerID string) (*dto.ScheduleDetailResponse, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("failed to load schedule", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if schedule.Status != "draft" {
		return nil, ErrScheduleNotDraft
	}

	if req.Title != nil {
		schedule.Title = *req.Title
	}
	if req.WeekStartDate != nil {
		weekStart, err := time.Parse(dateLayout, *req.WeekStartDate)
		if err != nil {
			return nil, ErrInvalidWeekRange
		}
		schedule.WeekStartDate = weekStart
	}
	if req.WeekEndDate != nil {
		weekEnd, err := time.Parse(dateLayout, *req.WeekEndDate)
		if err != nil {
			return nil, ErrInvalidWeekRange
		}
		schedule.WeekEndDate = weekEnd
	}
	if !schedule.WeekStartDate.Before(schedule.WeekEndDate) {
		return nil, ErrInvalidWeekRange
	}
	schedule.UpdatedBy = &callerID

	err = s.repo.RunInTx(ctx, func(tx *repository.Repository) error {
		if err := tx.Schedule.Update(ctx, schedule); err != nil {
			return err
		}
		if req.RequiredCoverage != nil {
			declared := make([]model.CoverageEntry, 0, len(req.RequiredCoverage))
			for _, c := range req.RequiredCoverage {
				declared = append(declared, model.CoverageEntry{
					Location:      c.Location,
					RequiredStaff: c.RequiredStaff,
					Declared:      true,
				})
			}
			if err := tx.Schedule.ReplaceCoverage(ctx, id, declared); err != nil {
				return err
			}
		}
		return recomputeSchedule(ctx, tx, id)
	})
	if err != nil {
		s.logger.Error("failed to update schedule", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// ────────────────────── Delete ──────────────────────

func (s *scheduleService) Delete(ctx context.Context, id string, callerID string) error {
	schedule, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrScheduleNotFound
		}
		s.logger.Error("failed to load schedule", zap.String("id", id), zap.Error(err))
		return err
	}
	if schedule.Status == "published" {
		return ErrScheduleNotDraft
	}
	if err := s.repo.Schedule.Delete(ctx, id, &callerID); err != nil {
		s.logger.Error("failed to delete schedule", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── AssignShift ──────────────────────

func (s *scheduleService) AssignShift(ctx context.Context, id string, req *dto.AssignShiftRequest, callerID string) (*dto.ScheduleDetailResponse, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("failed to load schedule", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if schedule.Status != "draft" {
		return nil, ErrScheduleNotDraft
	}
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
		return nil, err
	}
	if employee.Status != "active" {
		return nil, ErrEmployeeInactive
	}

	shift := &model.Shift{
		ScheduleID:     &schedule.ScheduleID,
		EmployeeID:     &req.EmployeeID,
		Date:           date,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		ShiftType:      req.ShiftType,
		Location:       req.Location,
		Department:     employee.Department,
		Role:           req.Role,
		RequiredSkills: req.RequiredSkills,
		Status:         "scheduled",
		BreakDuration:  req.BreakDuration,
		Notes:          req.Notes,
	}
	shift.CreatedBy = &callerID
	shift.UpdatedBy = &callerID

	// write-boundary gate: a single new assignment producing conflicts is
	// rejected rather than stored for resolution
	sameDate, err := s.repo.Shift.ListByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil {
		return nil, err
	}
	approved, err := s.repo.TimeOff.ListOverlapping(ctx, req.EmployeeID, date, date, []string{"approved"})
	if err != nil {
		return nil, err
	}
	if conflicts := detectShiftConflicts(shift, employee, sameDate, approved, ""); len(conflicts) > 0 {
		return nil, &ConflictDetailsError{Conflicts: conflicts}
	}

	err = s.repo.RunInTx(ctx, func(tx *repository.Repository) error {
		if err := tx.Shift.Create(ctx, shift); err != nil {
			return err
		}
		return recomputeSchedule(ctx, tx, id)
	})
	if err != nil {
		s.logger.Error("failed to assign shift", zap.String("schedule_id", id), zap.Error(err))
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// ────────────────────── RemoveShift ──────────────────────

func (s *scheduleService) RemoveShift(ctx context.Context, id, shiftID string, callerID string) (*dto.ScheduleDetailResponse, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	if schedule.Status != "draft" {
		return nil, ErrScheduleNotDraft
	}

	shift, err := s.repo.Shift.GetByID(ctx, shiftID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, err
	}
	if shift.ScheduleID == nil || *shift.ScheduleID != id {
		return nil, ErrShiftNotFound
	}

	err = s.repo.RunInTx(ctx, func(tx *repository.Repository) error {
		if err := tx.Shift.Delete(ctx, shiftID, &callerID); err != nil {
			return err
		}
		return recomputeSchedule(ctx, tx, id)
	})
	if err != nil {
		s.logger.Error("failed to remove shift", zap.String("schedule_id", id), zap.Error(err))
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// ────────────────────── Publish ──────────────────────

func (s *scheduleService) Publish(ctx context.Context, id string, callerID string) (*dto.ScheduleDetailResponse, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("failed to load schedule", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if schedule.Status != "draft" {
		return nil, ErrScheduleNotDraft
	}
	for i := range schedule.Conflicts {
		if !schedule.Conflicts[i].Resolved {
			return nil, ErrUnresolvedConflicts
		}
	}

	now := time.Now()
	schedule.Status = "published"
	schedule.PublishedAt = &now
	schedule.PublishedBy = &callerID
	schedule.UpdatedBy = &callerID

	if err := s.repo.Schedule.Update(ctx, schedule); err != nil {
		s.logger.Error("failed to publish schedule", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// ────────────────────── Complete ──────────────────────

func (s *scheduleService) Complete(ctx context.Context, id string, callerID string) (*dto.ScheduleDetailResponse, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("failed to load schedule", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if schedule.Status == "completed" {
		return nil, ErrScheduleCompleted
	}

	schedule.Status = "completed"
	schedule.UpdatedBy = &callerID

	if err := s.repo.Schedule.Update(ctx, schedule); err != nil {
		s.logger.Error("failed to complete schedule", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// ────────────────────── ResolveConflict ──────────────────────

func (s *scheduleService) ResolveConflict(ctx context.Context, id, conflictID string, req *dto.ResolveConflictRequest, callerID string) (*dto.ConflictResponse, error) {
	if _, err := s.repo.Schedule.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}

	conflict, err := s.repo.Schedule.GetConflict(ctx, id, conflictID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConflictNotFound
		}
		s.logger.Error("failed to load conflict", zap.String("conflict_id", conflictID), zap.Error(err))
		return nil, err
	}
	if conflict.Resolved {
		return nil, ErrConflictResolved
	}

	now := time.Now()
	conflict.Resolved = true
	conflict.ResolvedBy = &callerID
	conflict.ResolvedAt = &now
	if req.Resolution != "" {
		conflict.Description = conflict.Description + " (resolution: " + req.Resolution + ")"
	}

	if err := s.repo.Schedule.SaveConflict(ctx, conflict); err != nil {
		s.logger.Error("failed to resolve conflict", zap.String("conflict_id", conflictID), zap.Error(err))
		return nil, err
	}

	return toConflictResponse(conflict), nil
}

// ────────────────────── EmployeeWeek ──────────────────────

func (s *scheduleService) EmployeeWeek(ctx context.Context, id, employeeID string) (*dto.EmployeeWeekResponse, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	employee, err := s.repo.Employee.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	var own []model.Shift
	for _, shift := range schedule.Shifts {
		if shift.EmployeeID != nil && *shift.EmployeeID == employeeID {
			own = append(own, shift)
		}
	}

	_, hours := scheduleTotals(own)
	return &dto.EmployeeWeekResponse{
		ScheduleID:   id,
		EmployeeID:   employeeID,
		EmployeeName: employee.FullName(),
		Shifts:       toShiftResponses(own),
		TotalShifts:  len(own),
		TotalHours:   hours,
	}, nil
}

// ────────────────────── converters ──────────────────────

func toScheduleResponse(schedule *model.Schedule) *dto.ScheduleResponse {
	resp := &dto.ScheduleResponse{
		ID:             schedule.ScheduleID,
		Title:          schedule.Title,
		WeekStartDate:  schedule.WeekStartDate.Format(dateLayout),
		WeekEndDate:    schedule.WeekEndDate.Format(dateLayout),
		Status:         schedule.Status,
		TotalEmployees: schedule.TotalEmployees,
		TotalHours:     schedule.TotalHours,
		CreatedAt:      schedule.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      schedule.UpdatedAt.Format(time.RFC3339),
	}
	if schedule.PublishedAt != nil {
		resp.PublishedAt = schedule.PublishedAt.Format(time.RFC3339)
	}
	return resp
}

func toScheduleDetailResponse(schedule *model.Schedule) *dto.ScheduleDetailResponse {
	detail := &dto.ScheduleDetailResponse{
		ScheduleResponse: *toScheduleResponse(schedule),
		Shifts:           toShiftResponses(schedule.Shifts),
		Coverage:         make([]dto.CoverageResponse, 0, len(schedule.Coverage)),
		Conflicts:        make([]dto.ConflictResponse, 0, len(schedule.Conflicts)),
	}
	for i := range schedule.Coverage {
		c := &schedule.Coverage[i]
		detail.Coverage = append(detail.Coverage, dto.CoverageResponse{
			Location:           c.Location,
			RequiredStaff:      c.RequiredStaff,
			AssignedStaff:      c.AssignedStaff,
			CoveragePercentage: c.CoveragePercentage,
			ShiftIDs:           c.ShiftIDs,
		})
	}
	for i := range schedule.Conflicts {
		detail.Conflicts = append(detail.Conflicts, *toConflictResponse(&schedule.Conflicts[i]))
	}
	return detail
}

func toConflictResponse(conflict *model.Conflict) *dto.ConflictResponse {
	resp := &dto.ConflictResponse{
		ID:           conflict.ConflictID,
		Type:         conflict.Type,
		EmployeeID:   conflict.EmployeeID,
		EmployeeName: conflict.EmployeeName,
		Description:  conflict.Description,
		ShiftIDs:     conflict.ShiftIDs,
		Resolved:     conflict.Resolved,
	}
	if conflict.ResolvedBy != nil {
		resp.ResolvedBy = *conflict.ResolvedBy
	}
	if conflict.ResolvedAt != nil {
		resp.ResolvedAt = conflict.ResolvedAt.Format(time.RFC3339)
	}
	return resp
}
