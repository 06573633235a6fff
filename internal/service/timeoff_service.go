package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Rakibhasaniu/employee-schedule/internal/dto"
	"github.com/Rakibhasaniu/employee-schedule/internal/model"
	"github.com/Rakibhasaniu/employee-schedule/internal/repository"
	pkgerrors "github.com/Rakibhasaniu/employee-schedule/pkg/errors"
)

// ── time-off module business errors ──

var (
	ErrTimeOffNotFound     = errors.New("time-off request not found")
	ErrRequestNotPending   = errors.New("only pending requests can be modified")
	ErrInsufficientBalance = errors.New("insufficient leave balance")
	ErrApprovedUndeletable = errors.New("approved requests cannot be deleted")
	ErrNotRequestOwner     = errors.New("request belongs to another employee")
	ErrPolicyNotFound      = errors.New("leave policy not found")
)

const balanceRetries = 3

// TimeOffService is the leave request and ledger business interface.
type TimeOffService interface {
	Create(ctx context.Context, req *dto.CreateTimeOffRequest, callerEmployeeID, callerID string) (*dto.TimeOffResponse, error)
	GetByID(ctx context.Context, id string) (*dto.TimeOffResponse, error)
	List(ctx context.Context, req *dto.TimeOffListRequest) ([]dto.TimeOffResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateTimeOffRequest, callerID string) (*dto.TimeOffResponse, error)
	Review(ctx context.Context, id string, req *dto.ReviewTimeOffRequest, reviewerID string) (*dto.TimeOffResponse, error)
	Cancel(ctx context.Context, id string, callerEmployeeID string, isAdmin bool, callerID string) (*dto.TimeOffResponse, error)
	Delete(ctx context.Context, id string, callerID string) error

	GetBalance(ctx context.Context, employeeID string, year int) (*dto.LeaveBalanceResponse, error)
	Summary(ctx context.Context, employeeID string) (*dto.TimeOffSummaryResponse, error)
	Analytics(ctx context.Context) (*dto.TimeOffAnalyticsResponse, error)

	UpsertPolicy(ctx context.Context, req *dto.UpsertLeavePolicyRequest, callerID string) (*model.LeavePolicy, error)
	ListPolicies(ctx context.Context) ([]model.LeavePolicy, error)
}

type timeOffService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTimeOffService creates a TimeOffService.
func NewTimeOffService(repo *repository.Repository, logger *zap.Logger) TimeOffService {
	return &timeOffService{repo: repo, logger: logger}
}

// ────────────────────── ledger primitives ──────────────────────

// normalize enforces the category invariant:
// remaining = max(0, allocated - used - pending).
func normalize(cat *model.CategoryBalance) {
	remaining := cat.Allocated - cat.Used - cat.Pending
	if remaining < 0 {
		remaining = 0
	}
	cat.Remaining = remaining
}

// loadOrSeedBalance returns the employee's ledger for a year, creating it on
// first use from the department policy or the hardwired defaults.
func (s *timeOffService) loadOrSeedBalance(ctx context.Context, repo *repository.Repository, employee *model.Employee, year int) (*model.LeaveBalance, error) {
	balance, err := repo.LeaveBalance.GetByEmployeeYear(ctx, employee.EmployeeID, year)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	vacation, sick, personal := model.DefaultVacationDays, model.DefaultSickDays, model.DefaultPersonalDays
	policy, err := repo.LeavePolicy.GetByDepartment(ctx, employee.Department)
	if err == nil {
		vacation, sick, personal = policy.VacationDays, policy.SickDays, policy.PersonalDays
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	balance = &model.LeaveBalance{
		EmployeeID: employee.EmployeeID,
		Year:       year,
		Vacation:   model.CategoryBalance{Allocated: vacation, Remaining: vacation},
		Sick:       model.CategoryBalance{Allocated: sick, Remaining: sick},
		Personal:   model.CategoryBalance{Allocated: personal, Remaining: personal},
	}
	if err := repo.LeaveBalance.Create(ctx, balance); err != nil {
		return nil, err
	}
	s.logger.Info("seeded leave balance",
		zap.String("employee_id", employee.EmployeeID), zap.Int("year", year))
	return balance, nil
}

// mutateBalance applies fn to the employee's ledger under the optimistic
// lock, retrying on version conflicts. Untracked leave types are a no-op.
func (s *timeOffService) mutateBalance(ctx context.Context, repo *repository.Repository, employee *model.Employee, year int, leaveType string, fn func(*model.CategoryBalance) error) error {
	if !model.TrackedLeaveType(leaveType) {
		return nil
	}
	var lastErr error
	for attempt := 0; attempt < balanceRetries; attempt++ {
		balance, err := s.loadOrSeedBalance(ctx, repo, employee, year)
		if err != nil {
			return err
		}
		cat := balance.Category(leaveType)
		if err := fn(cat); err != nil {
			return err
		}
		normalize(cat)
		if err := repo.LeaveBalance.Update(ctx, balance); err != nil {
			if errors.Is(err, pkgerrors.ErrOptimisticLock) {
				lastErr = err
				continue
			}
			return err
		}
		return nil
	}
	return lastErr
}

// ────────────────────── Create ──────────────────────

func (s *timeOffService) Create(ctx context.Context, req *dto.CreateTimeOffRequest, callerEmployeeID, callerID string) (*dto.TimeOffResponse, error) {
	employeeID := req.EmployeeID
	if employeeID == "" {
		employeeID = callerEmployeeID
	}
	employee, err := s.repo.Employee.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("failed to load employee", zap.Error(err))
		return nil, err
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
	days := inclusiveDays(start, end)

	// balance gate, bypassed for emergencies but still recorded as pending
	if model.TrackedLeaveType(req.Type) && !req.IsEmergency {
		balance, err := s.loadOrSeedBalance(ctx, s.repo, employee, start.Year())
		if err != nil {
			return nil, err
		}
		if balance.Category(req.Type).Remaining < days {
			return nil, ErrInsufficientBalance
		}
	}

	request := &model.TimeOffRequest{
		EmployeeID:  employeeID,
		Type:        req.Type,
		StartDate:   start,
		EndDate:     end,
		TotalDays:   days,
		Reason:      req.Reason,
		Status:      "pending",
		IsEmergency: req.IsEmergency,
	}
	request.CreatedBy = &callerID
	request.UpdatedBy = &callerID

	// capture published shifts falling inside the leave span
	shifts, err := s.repo.Shift.ListAll(ctx, repository.ShiftFilter{
		EmployeeID: employeeID,
		DateFrom:   &start,
		DateTo:     &end,
	})
	if err != nil {
		return nil, err
	}
	for _, shift := range shifts {
		if shift.Status == "cancelled" || shift.ScheduleID == nil {
			continue
		}
		schedule, err := s.repo.Schedule.GetByID(ctx, *shift.ScheduleID)
		if err != nil {
			continue
		}
		if schedule.Status == "published" {
			request.ConflictingShiftIDs = append(request.ConflictingShiftIDs, shift.ShiftID)
		}
	}

	err = s.repo.RunInTx(ctx, func(tx *repository.Repository) error {
		if err := tx.TimeOff.Create(ctx, request); err != nil {
			return err
		}
		return s.mutateBalance(ctx, tx, employee, start.Year(), req.Type, func(cat *model.CategoryBalance) error {
			cat.Pending += days
			return nil
		})
	})
	if err != nil {
		s.logger.Error("failed to create time-off request", zap.Error(err))
		return nil, err
	}

	resp := toTimeOffResponse(request)
	resp.EmployeeName = employee.FullName()
	return resp, nil
}

// ────────────────────── GetByID / List ──────────────────────

func (s *timeOffService) GetByID(ctx context.Context, id string) (*dto.TimeOffResponse, error) {
	request, err := s.repo.TimeOff.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimeOffNotFound
		}
		s.logger.Error("failed to load time-off request", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toTimeOffResponse(request), nil
}

func (s *timeOffService) List(ctx context.Context, req *dto.TimeOffListRequest) ([]dto.TimeOffResponse, int64, error) {
	filter := repository.TimeOffFilter{
		EmployeeID: req.EmployeeID,
		Type:       req.Type,
		Status:     req.Status,
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

	requests, total, err := s.repo.TimeOff.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("failed to list time-off requests", zap.Error(err))
		return nil, 0, err
	}

	out := make([]dto.TimeOffResponse, 0, len(requests))
	for i := range requests {
		out = append(out, *toTimeOffResponse(&requests[i]))
	}
	return out, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *timeOffService) Update(ctx context.Context, id string, req *dto.UpdateTimeOffRequest, callerID string) (*dto.TimeOffResponse, error) {
	request, err := s.repo.TimeOff.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimeOffNotFound
		}
		s.logger.Error("failed to load time-off request", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if request.Status != "pending" {
		return nil, ErrRequestNotPending
	}
	employee, err := s.repo.Employee.GetByID(ctx, request.EmployeeID)
	if err != nil {
		return nil, err
	}

	oldType := request.Type
	oldDays := request.TotalDays
	oldYear := request.StartDate.Year()

	if req.Type != nil {
		request.Type = *req.Type
	}
	if req.StartDate != nil {
		start, err := time.Parse(dateLayout, *req.StartDate)
		if err != nil {
			return nil, ErrInvalidDateRange
		}
		request.StartDate = start
	}
	if req.EndDate != nil {
		end, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			return nil, ErrInvalidDateRange
		}
		request.EndDate = end
	}
	if request.StartDate.After(request.EndDate) {
		return nil, ErrInvalidDateRange
	}
	if req.Reason != nil {
		request.Reason = *req.Reason
	}
	request.TotalDays = inclusiveDays(request.StartDate, request.EndDate)
	request.UpdatedBy = &callerID
	newYear := request.StartDate.Year()

	// re-gate the new span before moving the ledger
	if model.TrackedLeaveType(request.Type) && !request.IsEmergency {
		balance, err := s.loadOrSeedBalance(ctx, s.repo, employee, newYear)
		if err != nil {
			return nil, err
		}
		available := balance.Category(request.Type).Remaining
		if request.Type == oldType && newYear == oldYear {
			available += oldDays // the old hold is released below
		}
		if available < request.TotalDays {
			return nil, ErrInsufficientBalance
		}
	}

	err = s.repo.RunInTx(ctx, func(tx *repository.Repository) error {
		if err := s.mutateBalance(ctx, tx, employee, oldYear, oldType, func(cat *model.CategoryBalance) error {
			cat.Pending -= oldDays
			return nil
		}); err != nil {
			return err
		}
		if err := s.mutateBalance(ctx, tx, employee, newYear, request.Type, func(cat *model.CategoryBalance) error {
			cat.Pending += request.TotalDays
			return nil
		}); err != nil {
			return err
		}
		return tx.TimeOff.Update(ctx, request)
	})
	if err != nil {
		s.logger.Error("failed to update time-off request", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toTimeOffResponse(request), nil
}

// ────────────────────── Review ──────────────────────

func (s *timeOffService) Review(ctx context.Context, id string, req *dto.ReviewTimeOffRequest, reviewerID string) (*dto.TimeOffResponse, error) {
	request, err := s.repo.TimeOff.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimeOffNotFound
		}
		s.logger.Error("failed to load time-off request", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	// single-use: terminal requests cannot be reviewed again
	if request.Status != "pending" {
		return nil, ErrRequestNotPending
	}
	employee, err := s.repo.Employee.GetByID(ctx, request.EmployeeID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	request.Status = req.Decision
	request.ReviewedBy = &reviewerID
	request.ReviewedAt = &now
	request.ReviewNotes = req.Notes
	request.UpdatedBy = &reviewerID

	days := request.TotalDays
	year := request.StartDate.Year()
	err = s.repo.RunInTx(ctx, func(tx *repository.Repository) error {
		if err := tx.TimeOff.Update(ctx, request); err != nil {
			return err
		}
		return s.mutateBalance(ctx, tx, employee, year, request.Type, func(cat *model.CategoryBalance) error {
			cat.Pending -= days
			if req.Decision == "approved" {
				cat.Used += days
			}
			return nil
		})
	})
	if err != nil {
		s.logger.Error("failed to review time-off request", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toTimeOffResponse(request), nil
}

// ────────────────────── Cancel ──────────────────────

func (s *timeOffService) Cancel(ctx context.Context, id string, callerEmployeeID string, isAdmin bool, callerID string) (*dto.TimeOffResponse, error) {
	request, err := s.repo.TimeOff.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimeOffNotFound
		}
		s.logger.Error("failed to load time-off request", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if !isAdmin && request.EmployeeID != callerEmployeeID {
		return nil, ErrNotRequestOwner
	}
	if request.Status != "pending" {
		return nil, ErrRequestNotPending
	}
	employee, err := s.repo.Employee.GetByID(ctx, request.EmployeeID)
	if err != nil {
		return nil, err
	}

	request.Status = "cancelled"
	request.UpdatedBy = &callerID

	days := request.TotalDays
	year := request.StartDate.Year()
	err = s.repo.RunInTx(ctx, func(tx *repository.Repository) error {
		if err := tx.TimeOff.Update(ctx, request); err != nil {
			return err
		}
		return s.mutateBalance(ctx, tx, employee, year, request.Type, func(cat *model.CategoryBalance) error {
			cat.Pending -= days
			return nil
		})
	})
	if err != nil {
		s.logger.Error("failed to cancel time-off request", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toTimeOffResponse(request), nil
}

// ────────────────────── Delete ──────────────────────

func (s *timeOffService) Delete(ctx context.Context, id string, callerID string) error {
	request, err := s.repo.TimeOff.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTimeOffNotFound
		}
		s.logger.Error("failed to load time-off request", zap.String("id", id), zap.Error(err))
		return err
	}
	if request.Status == "approved" {
		return ErrApprovedUndeletable
	}

	err = s.repo.RunInTx(ctx, func(tx *repository.Repository) error {
		// deleting a pending request releases its ledger hold
		if request.Status == "pending" {
			employee, err := tx.Employee.GetByID(ctx, request.EmployeeID)
			if err != nil {
				return err
			}
			if err := s.mutateBalance(ctx, tx, employee, request.StartDate.Year(), request.Type, func(cat *model.CategoryBalance) error {
				cat.Pending -= request.TotalDays
				return nil
			}); err != nil {
				return err
			}
		}
		return tx.TimeOff.Delete(ctx, id, &callerID)
	})
	if err != nil {
		s.logger.Error("failed to delete time-off request", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── GetBalance ──────────────────────

func (s *timeOffService) GetBalance(ctx context.Context, employeeID string, year int) (*dto.LeaveBalanceResponse, error) {
	employee, err := s.repo.Employee.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	if year == 0 {
		year = time.Now().Year()
	}
	balance, err := s.loadOrSeedBalance(ctx, s.repo, employee, year)
	if err != nil {
		s.logger.Error("failed to load leave balance", zap.String("employee_id", employeeID), zap.Error(err))
		return nil, err
	}
	return toBalanceResponse(balance), nil
}

// ────────────────────── Summary ──────────────────────

func (s *timeOffService) Summary(ctx context.Context, employeeID string) (*dto.TimeOffSummaryResponse, error) {
	year := time.Now().Year()
	balance, err := s.GetBalance(ctx, employeeID, year)
	if err != nil {
		return nil, err
	}

	requests, err := s.repo.TimeOff.ListAll(ctx, repository.TimeOffFilter{EmployeeID: employeeID})
	if err != nil {
		s.logger.Error("failed to list requests for summary", zap.Error(err))
		return nil, err
	}

	now := time.Now()
	cutoff := now.AddDate(0, 0, -90)
	resp := &dto.TimeOffSummaryResponse{
		EmployeeID: employeeID,
		Balance:    *balance,
	}
	for i := range requests {
		request := &requests[i]
		if request.CreatedAt.After(cutoff) {
			resp.RecentRequests = append(resp.RecentRequests, *toTimeOffResponse(request))
		}
		if request.Status == "approved" {
			if request.StartDate.After(now) {
				resp.UpcomingApproved = append(resp.UpcomingApproved, *toTimeOffResponse(request))
			}
			if request.StartDate.Year() == year {
				resp.ApprovedDaysYear += request.TotalDays
			}
		}
	}
	return resp, nil
}

// ────────────────────── Analytics ──────────────────────

func (s *timeOffService) Analytics(ctx context.Context) (*dto.TimeOffAnalyticsResponse, error) {
	requests, err := s.repo.TimeOff.ListAll(ctx, repository.TimeOffFilter{})
	if err != nil {
		s.logger.Error("failed to list requests for analytics", zap.Error(err))
		return nil, err
	}

	resp := &dto.TimeOffAnalyticsResponse{
		TotalByStatus: make(map[string]int),
	}
	typeCounts := make(map[string]int)
	monthly := make(map[string]*dto.MonthlyTrend)
	deptStats := make(map[string]*dto.DepartmentApprovalRate)

	var processingDays float64
	var reviewed int
	for i := range requests {
		request := &requests[i]
		resp.TotalByStatus[request.Status]++
		typeCounts[request.Type]++

		if request.ReviewedAt != nil {
			processingDays += request.ReviewedAt.Sub(request.CreatedAt).Hours() / 24
			reviewed++
		}

		month := request.CreatedAt.Format("2006-01")
		trend, ok := monthly[month]
		if !ok {
			trend = &dto.MonthlyTrend{Month: month}
			monthly[month] = trend
		}
		trend.Requests++
		trend.Days += request.TotalDays

		department := ""
		if request.Employee != nil {
			department = request.Employee.Department
		}
		dept, ok := deptStats[department]
		if !ok {
			dept = &dto.DepartmentApprovalRate{Department: department}
			deptStats[department] = dept
		}
		dept.Total++
		if request.Status == "approved" {
			dept.Approved++
		}
	}

	if reviewed > 0 {
		resp.AvgProcessingDays = processingDays / float64(reviewed)
	}
	best := 0
	for leaveType, count := range typeCounts {
		if count > best {
			best = count
			resp.MostRequestedType = leaveType
		}
	}

	months := make([]string, 0, len(monthly))
	for month := range monthly {
		months = append(months, month)
	}
	sort.Strings(months)
	for _, month := range months {
		resp.MonthlyTrends = append(resp.MonthlyTrends, *monthly[month])
	}

	departments := make([]string, 0, len(deptStats))
	for department := range deptStats {
		departments = append(departments, department)
	}
	sort.Strings(departments)
	for _, department := range departments {
		dept := deptStats[department]
		reviewedInDept := 0
		for i := range requests {
			request := &requests[i]
			if request.Employee != nil && request.Employee.Department == department && request.ReviewedAt != nil {
				reviewedInDept++
			}
		}
		if reviewedInDept > 0 {
			dept.ApprovalRate = float64(dept.Approved) / float64(reviewedInDept)
		}
		resp.DepartmentApproval = append(resp.DepartmentApproval, *dept)
	}
	return resp, nil
}

// ────────────────────── policies ──────────────────────

func (s *timeOffService) UpsertPolicy(ctx context.Context, req *dto.UpsertLeavePolicyRequest, callerID string) (*model.LeavePolicy, error) {
	policy, err := s.repo.LeavePolicy.GetByDepartment(ctx, req.Department)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("failed to load leave policy", zap.Error(err))
			return nil, err
		}
		policy = &model.LeavePolicy{
			Department:   req.Department,
			VacationDays: req.VacationDays,
			SickDays:     req.SickDays,
			PersonalDays: req.PersonalDays,
		}
		policy.CreatedBy = &callerID
		policy.UpdatedBy = &callerID
		if err := s.repo.LeavePolicy.Create(ctx, policy); err != nil {
			s.logger.Error("failed to create leave policy", zap.Error(err))
			return nil, err
		}
		return policy, nil
	}

	policy.VacationDays = req.VacationDays
	policy.SickDays = req.SickDays
	policy.PersonalDays = req.PersonalDays
	policy.UpdatedBy = &callerID
	if err := s.repo.LeavePolicy.Update(ctx, policy); err != nil {
		s.logger.Error("failed to update leave policy", zap.Error(err))
		return nil, err
	}
	return policy, nil
}

func (s *timeOffService) ListPolicies(ctx context.Context) ([]model.LeavePolicy, error) {
	policies, err := s.repo.LeavePolicy.List(ctx)
	if err != nil {
		s.logger.Error("failed to list leave policies", zap.Error(err))
		return nil, err
	}
	return policies, nil
}

// ────────────────────── converters ──────────────────────

func toTimeOffResponse(request *model.TimeOffRequest) *dto.TimeOffResponse {
	resp := &dto.TimeOffResponse{
		ID:                  request.RequestID,
		EmployeeID:          request.EmployeeID,
		Type:                request.Type,
		StartDate:           request.StartDate.Format(dateLayout),
		EndDate:             request.EndDate.Format(dateLayout),
		TotalDays:           request.TotalDays,
		Reason:              request.Reason,
		Status:              request.Status,
		IsEmergency:         request.IsEmergency,
		ReviewNotes:         request.ReviewNotes,
		ConflictingShiftIDs: request.ConflictingShiftIDs,
		CreatedAt:           request.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           request.UpdatedAt.Format(time.RFC3339),
	}
	if request.Employee != nil {
		resp.EmployeeName = request.Employee.FullName()
	}
	if request.ReviewedBy != nil {
		resp.ReviewedBy = *request.ReviewedBy
	}
	if request.ReviewedAt != nil {
		resp.ReviewedAt = request.ReviewedAt.Format(time.RFC3339)
	}
	return resp
}

func toBalanceResponse(balance *model.LeaveBalance) *dto.LeaveBalanceResponse {
	toCat := func(cat model.CategoryBalance) dto.CategoryBalanceResponse {
		return dto.CategoryBalanceResponse{
			Allocated: cat.Allocated,
			Used:      cat.Used,
			Pending:   cat.Pending,
			Remaining: cat.Remaining,
		}
	}
	return &dto.LeaveBalanceResponse{
		EmployeeID: balance.EmployeeID,
		Year:       balance.Year,
		Vacation:   toCat(balance.Vacation),
		Sick:       toCat(balance.Sick),
		Personal:   toCat(balance.Personal),
		CarryOver:  balance.CarryOver,
	}
}
