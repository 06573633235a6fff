package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Rakibhasaniu/employee-schedule/internal/model"
	"github.com/Rakibhasaniu/employee-schedule/internal/repository"
	pkgerrors "github.com/Rakibhasaniu/employee-schedule/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users     map[string]*model.User
	idCounter int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.idCounter++
		user.UserID = fmt.Sprintf("user-%d", m.idCounter)
	}
	if user.Version == 0 {
		user.Version = 1
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.UserID]; !ok {
		return gorm.ErrRecordNotFound
	}
	user.Version++
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string, _ *string) error {
	delete(m.users, id)
	return nil
}

// ── Mock EmployeeRepository ──

// Slice-backed so listings keep insertion order, which the template
// expansion's first-fit assignment depends on.
type mockEmployeeRepo struct {
	employees []*model.Employee
	codes     []string
	idCounter int
}

func newMockEmployeeRepo() *mockEmployeeRepo {
	return &mockEmployeeRepo{}
}

func (m *mockEmployeeRepo) Create(_ context.Context, employee *model.Employee) error {
	if employee.EmployeeID == "" {
		m.idCounter++
		employee.EmployeeID = fmt.Sprintf("emp-%d", m.idCounter)
	}
	if employee.Version == 0 {
		employee.Version = 1
	}
	m.employees = append(m.employees, employee)
	m.codes = append(m.codes, employee.Code)
	return nil
}

func (m *mockEmployeeRepo) GetByID(_ context.Context, id string) (*model.Employee, error) {
	for _, e := range m.employees {
		if e.EmployeeID == id {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) GetByCode(_ context.Context, code string) (*model.Employee, error) {
	for _, e := range m.employees {
		if e.Code == code {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) GetByEmail(_ context.Context, email string) (*model.Employee, error) {
	for _, e := range m.employees {
		if e.Email == email {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) GetByUserID(_ context.Context, userID string) (*model.Employee, error) {
	for _, e := range m.employees {
		if e.UserID == userID {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) match(e *model.Employee, filter repository.EmployeeFilter) bool {
	if filter.Department != "" && e.Department != filter.Department {
		return false
	}
	if filter.Location != "" && e.Location != filter.Location {
		return false
	}
	if filter.Role != "" && e.Role != filter.Role {
		return false
	}
	if filter.Status != "" && e.Status != filter.Status {
		return false
	}
	if filter.Skill != "" && !e.Skills.Contains(filter.Skill) {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		haystack := strings.ToLower(e.FirstName + " " + e.LastName + " " + e.Email + " " + e.Code)
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}

func (m *mockEmployeeRepo) List(_ context.Context, filter repository.EmployeeFilter, offset, limit int) ([]model.Employee, int64, error) {
	var filtered []model.Employee
	for _, e := range m.employees {
		if m.match(e, filter) {
			filtered = append(filtered, *e)
		}
	}
	total := int64(len(filtered))
	if offset >= len(filtered) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], total, nil
}

func (m *mockEmployeeRepo) ListAll(_ context.Context, filter repository.EmployeeFilter) ([]model.Employee, error) {
	var result []model.Employee
	for _, e := range m.employees {
		if m.match(e, filter) {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockEmployeeRepo) ListByIDs(_ context.Context, ids []string) ([]model.Employee, error) {
	var result []model.Employee
	for _, e := range m.employees {
		for _, id := range ids {
			if e.EmployeeID == id {
				result = append(result, *e)
				break
			}
		}
	}
	return result, nil
}

func (m *mockEmployeeRepo) Update(_ context.Context, employee *model.Employee) error {
	for i, e := range m.employees {
		if e.EmployeeID == employee.EmployeeID {
			employee.Version++
			m.employees[i] = employee
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) Delete(_ context.Context, id string, _ *string) error {
	for i, e := range m.employees {
		if e.EmployeeID == id {
			m.employees = append(m.employees[:i], m.employees[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// Counts codes ever allocated, soft-deleted rows included.
func (m *mockEmployeeRepo) CountByCodePrefix(_ context.Context, prefix string) (int64, error) {
	var count int64
	for _, code := range m.codes {
		if strings.HasPrefix(code, prefix) {
			count++
		}
	}
	return count, nil
}

// ── Mock ShiftRepository ──

type mockShiftRepo struct {
	shifts    []model.Shift
	employees *mockEmployeeRepo
	idCounter int
}

func newMockShiftRepo(employees *mockEmployeeRepo) *mockShiftRepo {
	return &mockShiftRepo{employees: employees}
}

func (m *mockShiftRepo) attachEmployee(shift *model.Shift) {
	if shift.EmployeeID == nil {
		return
	}
	if e, err := m.employees.GetByID(context.Background(), *shift.EmployeeID); err == nil {
		shift.Employee = e
	}
}

func (m *mockShiftRepo) Create(_ context.Context, shift *model.Shift) error {
	if shift.ShiftID == "" {
		m.idCounter++
		shift.ShiftID = fmt.Sprintf("shift-%d", m.idCounter)
	}
	if shift.Version == 0 {
		shift.Version = 1
	}
	shift.CreatedAt = time.Now()
	shift.UpdatedAt = time.Now()
	m.shifts = append(m.shifts, *shift)
	return nil
}

func (m *mockShiftRepo) BatchCreate(_ context.Context, shifts []model.Shift) error {
	for i := range shifts {
		if shifts[i].ShiftID == "" {
			m.idCounter++
			shifts[i].ShiftID = fmt.Sprintf("shift-%d", m.idCounter)
		}
		if shifts[i].Version == 0 {
			shifts[i].Version = 1
		}
		shifts[i].CreatedAt = time.Now()
		shifts[i].UpdatedAt = time.Now()
		m.shifts = append(m.shifts, shifts[i])
	}
	return nil
}

func (m *mockShiftRepo) GetByID(_ context.Context, id string) (*model.Shift, error) {
	for i := range m.shifts {
		if m.shifts[i].ShiftID == id {
			cp := m.shifts[i]
			m.attachEmployee(&cp)
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftRepo) match(s *model.Shift, filter repository.ShiftFilter) bool {
	if filter.EmployeeID != "" && (s.EmployeeID == nil || *s.EmployeeID != filter.EmployeeID) {
		return false
	}
	if filter.ScheduleID != "" && (s.ScheduleID == nil || *s.ScheduleID != filter.ScheduleID) {
		return false
	}
	if filter.TemplateID != "" && (s.TemplateID == nil || *s.TemplateID != filter.TemplateID) {
		return false
	}
	if filter.Location != "" && s.Location != filter.Location {
		return false
	}
	if filter.Department != "" && s.Department != filter.Department {
		return false
	}
	if filter.ShiftType != "" && s.ShiftType != filter.ShiftType {
		return false
	}
	if filter.Status != "" && s.Status != filter.Status {
		return false
	}
	if filter.DateFrom != nil && s.Date.Before(*filter.DateFrom) {
		return false
	}
	if filter.DateTo != nil && s.Date.After(*filter.DateTo) {
		return false
	}
	return true
}

func (m *mockShiftRepo) filtered(filter repository.ShiftFilter) []model.Shift {
	var result []model.Shift
	for i := range m.shifts {
		if m.match(&m.shifts[i], filter) {
			cp := m.shifts[i]
			m.attachEmployee(&cp)
			result = append(result, cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].StartTime < result[j].StartTime
	})
	return result
}

func (m *mockShiftRepo) List(_ context.Context, filter repository.ShiftFilter, offset, limit int) ([]model.Shift, int64, error) {
	filtered := m.filtered(filter)
	total := int64(len(filtered))
	if offset >= len(filtered) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], total, nil
}

func (m *mockShiftRepo) ListAll(_ context.Context, filter repository.ShiftFilter) ([]model.Shift, error) {
	return m.filtered(filter), nil
}

func (m *mockShiftRepo) ListByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) ([]model.Shift, error) {
	var result []model.Shift
	for i := range m.shifts {
		s := &m.shifts[i]
		if s.EmployeeID != nil && *s.EmployeeID == employeeID && s.Date.Equal(date) {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartTime < result[j].StartTime })
	return result, nil
}

func (m *mockShiftRepo) CountByTemplate(_ context.Context, templateID string) (int64, error) {
	var count int64
	for i := range m.shifts {
		if m.shifts[i].TemplateID != nil && *m.shifts[i].TemplateID == templateID {
			count++
		}
	}
	return count, nil
}

func (m *mockShiftRepo) Update(_ context.Context, shift *model.Shift) error {
	for i := range m.shifts {
		if m.shifts[i].ShiftID == shift.ShiftID {
			if m.shifts[i].Version != shift.Version {
				return pkgerrors.ErrOptimisticLock
			}
			shift.Version++
			shift.UpdatedAt = time.Now()
			cp := *shift
			cp.Employee = nil
			m.shifts[i] = cp
			return nil
		}
	}
	return pkgerrors.ErrOptimisticLock
}

func (m *mockShiftRepo) Delete(_ context.Context, id string, _ *string) error {
	for i := range m.shifts {
		if m.shifts[i].ShiftID == id {
			m.shifts = append(m.shifts[:i], m.shifts[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Mock ScheduleRepository ──

// Holds the schedule header only; GetByID assembles Shifts, Coverage and
// Conflicts the way the GORM preloads do.
type mockScheduleRepo struct {
	schedules map[string]*model.Schedule
	coverage  map[string][]model.CoverageEntry
	conflicts map[string][]model.Conflict
	shifts    *mockShiftRepo

	idCounter       int
	conflictCounter int
}

func newMockScheduleRepo(shifts *mockShiftRepo) *mockScheduleRepo {
	return &mockScheduleRepo{
		schedules: make(map[string]*model.Schedule),
		coverage:  make(map[string][]model.CoverageEntry),
		conflicts: make(map[string][]model.Conflict),
		shifts:    shifts,
	}
}

func (m *mockScheduleRepo) Create(_ context.Context, schedule *model.Schedule) error {
	if schedule.ScheduleID == "" {
		m.idCounter++
		schedule.ScheduleID = fmt.Sprintf("sched-%d", m.idCounter)
	}
	if schedule.Version == 0 {
		schedule.Version = 1
	}
	schedule.CreatedAt = time.Now()
	schedule.UpdatedAt = time.Now()
	cp := *schedule
	cp.Shifts, cp.Coverage, cp.Conflicts = nil, nil, nil
	m.schedules[schedule.ScheduleID] = &cp
	return nil
}

func (m *mockScheduleRepo) GetByID(ctx context.Context, id string) (*model.Schedule, error) {
	stored, ok := m.schedules[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *stored
	out.Shifts, _ = m.shifts.ListAll(ctx, repository.ShiftFilter{ScheduleID: id})
	out.Coverage = append([]model.CoverageEntry(nil), m.coverage[id]...)
	out.Conflicts = append([]model.Conflict(nil), m.conflicts[id]...)
	return &out, nil
}

func (m *mockScheduleRepo) List(_ context.Context, filter repository.ScheduleFilter, offset, limit int) ([]model.Schedule, int64, error) {
	var filtered []model.Schedule
	for _, s := range m.schedules {
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		if filter.DateFrom != nil && s.WeekEndDate.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && s.WeekStartDate.After(*filter.DateTo) {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(s.Title), strings.ToLower(filter.Search)) {
			continue
		}
		filtered = append(filtered, *s)
	}
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].WeekStartDate.After(filtered[j].WeekStartDate)
	})
	total := int64(len(filtered))
	if offset >= len(filtered) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], total, nil
}

func (m *mockScheduleRepo) Update(_ context.Context, schedule *model.Schedule) error {
	stored, ok := m.schedules[schedule.ScheduleID]
	if !ok || stored.Version != schedule.Version {
		return pkgerrors.ErrOptimisticLock
	}
	stored.Title = schedule.Title
	stored.WeekStartDate = schedule.WeekStartDate
	stored.WeekEndDate = schedule.WeekEndDate
	stored.Status = schedule.Status
	stored.PublishedAt = schedule.PublishedAt
	stored.PublishedBy = schedule.PublishedBy
	stored.TotalEmployees = schedule.TotalEmployees
	stored.TotalHours = schedule.TotalHours
	stored.UpdatedBy = schedule.UpdatedBy
	stored.UpdatedAt = time.Now()
	stored.Version++
	schedule.Version = stored.Version
	return nil
}

func (m *mockScheduleRepo) Delete(_ context.Context, id string, _ *string) error {
	delete(m.schedules, id)
	delete(m.coverage, id)
	delete(m.conflicts, id)
	return nil
}

func (m *mockScheduleRepo) ReplaceCoverage(_ context.Context, scheduleID string, entries []model.CoverageEntry) error {
	stored := make([]model.CoverageEntry, len(entries))
	for i := range entries {
		entries[i].ScheduleID = scheduleID
		stored[i] = entries[i]
	}
	m.coverage[scheduleID] = stored
	return nil
}

func (m *mockScheduleRepo) ReplaceConflicts(_ context.Context, scheduleID string, conflicts []model.Conflict) error {
	stored := make([]model.Conflict, len(conflicts))
	for i := range conflicts {
		conflicts[i].ScheduleID = scheduleID
		if conflicts[i].ConflictID == "" {
			m.conflictCounter++
			conflicts[i].ConflictID = fmt.Sprintf("conflict-%d", m.conflictCounter)
		}
		stored[i] = conflicts[i]
	}
	m.conflicts[scheduleID] = stored
	return nil
}

func (m *mockScheduleRepo) GetConflict(_ context.Context, scheduleID, conflictID string) (*model.Conflict, error) {
	for i := range m.conflicts[scheduleID] {
		if m.conflicts[scheduleID][i].ConflictID == conflictID {
			cp := m.conflicts[scheduleID][i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) SaveConflict(_ context.Context, conflict *model.Conflict) error {
	group := m.conflicts[conflict.ScheduleID]
	for i := range group {
		if group[i].ConflictID == conflict.ConflictID {
			group[i] = *conflict
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Mock TemplateRepository ──

type mockTemplateRepo struct {
	templates map[string]*model.ShiftTemplate
	idCounter int
}

func newMockTemplateRepo() *mockTemplateRepo {
	return &mockTemplateRepo{templates: make(map[string]*model.ShiftTemplate)}
}

func (m *mockTemplateRepo) Create(_ context.Context, template *model.ShiftTemplate) error {
	if template.TemplateID == "" {
		m.idCounter++
		template.TemplateID = fmt.Sprintf("tmpl-%d", m.idCounter)
	}
	if template.Version == 0 {
		template.Version = 1
	}
	template.CreatedAt = time.Now()
	template.UpdatedAt = time.Now()
	m.templates[template.TemplateID] = template
	return nil
}

func (m *mockTemplateRepo) GetByID(_ context.Context, id string) (*model.ShiftTemplate, error) {
	if t, ok := m.templates[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTemplateRepo) List(_ context.Context, filter repository.TemplateFilter, offset, limit int) ([]model.ShiftTemplate, int64, error) {
	var filtered []model.ShiftTemplate
	for _, t := range m.templates {
		if filter.Department != "" && t.Department != filter.Department {
			continue
		}
		if filter.Location != "" && t.Location != filter.Location {
			continue
		}
		if filter.IsActive != nil && t.IsActive != *filter.IsActive {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(t.Name), strings.ToLower(filter.Search)) {
			continue
		}
		filtered = append(filtered, *t)
	}
	total := int64(len(filtered))
	if offset >= len(filtered) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], total, nil
}

func (m *mockTemplateRepo) FindActiveDuplicate(_ context.Context, name, department, location, excludeID string) (*model.ShiftTemplate, error) {
	for _, t := range m.templates {
		if t.TemplateID == excludeID {
			continue
		}
		if t.IsActive && t.Name == name && t.Department == department && t.Location == location {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTemplateRepo) Update(_ context.Context, template *model.ShiftTemplate) error {
	stored, ok := m.templates[template.TemplateID]
	if !ok || stored.Version != template.Version {
		return pkgerrors.ErrOptimisticLock
	}
	template.Version++
	template.UpdatedAt = time.Now()
	m.templates[template.TemplateID] = template
	return nil
}

func (m *mockTemplateRepo) Delete(_ context.Context, id string, _ *string) error {
	delete(m.templates, id)
	return nil
}

// ── Mock TimeOffRepository ──

type mockTimeOffRepo struct {
	requests  []model.TimeOffRequest
	employees *mockEmployeeRepo
	idCounter int
}

func newMockTimeOffRepo(employees *mockEmployeeRepo) *mockTimeOffRepo {
	return &mockTimeOffRepo{employees: employees}
}

func (m *mockTimeOffRepo) Create(_ context.Context, request *model.TimeOffRequest) error {
	if request.RequestID == "" {
		m.idCounter++
		request.RequestID = fmt.Sprintf("req-%d", m.idCounter)
	}
	request.CreatedAt = time.Now()
	request.UpdatedAt = time.Now()
	m.requests = append(m.requests, *request)
	return nil
}

func (m *mockTimeOffRepo) GetByID(_ context.Context, id string) (*model.TimeOffRequest, error) {
	for i := range m.requests {
		if m.requests[i].RequestID == id {
			cp := m.requests[i]
			if e, err := m.employees.GetByID(context.Background(), cp.EmployeeID); err == nil {
				cp.Employee = e
			}
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTimeOffRepo) match(r *model.TimeOffRequest, filter repository.TimeOffFilter) bool {
	if filter.EmployeeID != "" && r.EmployeeID != filter.EmployeeID {
		return false
	}
	if filter.Type != "" && r.Type != filter.Type {
		return false
	}
	if filter.Status != "" && r.Status != filter.Status {
		return false
	}
	if filter.DateFrom != nil && r.EndDate.Before(*filter.DateFrom) {
		return false
	}
	if filter.DateTo != nil && r.StartDate.After(*filter.DateTo) {
		return false
	}
	return true
}

func (m *mockTimeOffRepo) List(_ context.Context, filter repository.TimeOffFilter, offset, limit int) ([]model.TimeOffRequest, int64, error) {
	var filtered []model.TimeOffRequest
	for i := range m.requests {
		if m.match(&m.requests[i], filter) {
			cp := m.requests[i]
			if e, err := m.employees.GetByID(context.Background(), cp.EmployeeID); err == nil {
				cp.Employee = e
			}
			filtered = append(filtered, cp)
		}
	}
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})
	total := int64(len(filtered))
	if offset >= len(filtered) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], total, nil
}

func (m *mockTimeOffRepo) ListAll(_ context.Context, filter repository.TimeOffFilter) ([]model.TimeOffRequest, error) {
	var result []model.TimeOffRequest
	for i := range m.requests {
		if m.match(&m.requests[i], filter) {
			result = append(result, m.requests[i])
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartDate.Before(result[j].StartDate)
	})
	return result, nil
}

func (m *mockTimeOffRepo) ListOverlapping(_ context.Context, employeeID string, start, end time.Time, statuses []string) ([]model.TimeOffRequest, error) {
	var result []model.TimeOffRequest
	for i := range m.requests {
		r := &m.requests[i]
		if r.EmployeeID != employeeID {
			continue
		}
		inStatus := false
		for _, s := range statuses {
			if r.Status == s {
				inStatus = true
				break
			}
		}
		if !inStatus {
			continue
		}
		if r.StartDate.After(end) || r.EndDate.Before(start) {
			continue
		}
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockTimeOffRepo) ListApprovedInRange(_ context.Context, start, end time.Time) ([]model.TimeOffRequest, error) {
	var result []model.TimeOffRequest
	for i := range m.requests {
		r := &m.requests[i]
		if r.Status != "approved" {
			continue
		}
		if r.StartDate.After(end) || r.EndDate.Before(start) {
			continue
		}
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockTimeOffRepo) Update(_ context.Context, request *model.TimeOffRequest) error {
	for i := range m.requests {
		if m.requests[i].RequestID == request.RequestID {
			request.UpdatedAt = time.Now()
			cp := *request
			cp.Employee = nil
			m.requests[i] = cp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockTimeOffRepo) Delete(_ context.Context, id string, _ *string) error {
	for i := range m.requests {
		if m.requests[i].RequestID == id {
			m.requests = append(m.requests[:i], m.requests[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Mock LeaveBalanceRepository ──

type mockLeaveBalanceRepo struct {
	balances  map[string]*model.LeaveBalance // employeeID|year
	idCounter int

	// forceConflicts makes the next N updates fail with the optimistic
	// lock error, to exercise the retry loop.
	forceConflicts int
}

func newMockLeaveBalanceRepo() *mockLeaveBalanceRepo {
	return &mockLeaveBalanceRepo{balances: make(map[string]*model.LeaveBalance)}
}

func balanceKey(employeeID string, year int) string {
	return fmt.Sprintf("%s|%d", employeeID, year)
}

func (m *mockLeaveBalanceRepo) Create(_ context.Context, balance *model.LeaveBalance) error {
	if balance.BalanceID == "" {
		m.idCounter++
		balance.BalanceID = fmt.Sprintf("bal-%d", m.idCounter)
	}
	if balance.Version == 0 {
		balance.Version = 1
	}
	cp := *balance
	m.balances[balanceKey(balance.EmployeeID, balance.Year)] = &cp
	return nil
}

func (m *mockLeaveBalanceRepo) GetByEmployeeYear(_ context.Context, employeeID string, year int) (*model.LeaveBalance, error) {
	if b, ok := m.balances[balanceKey(employeeID, year)]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLeaveBalanceRepo) ListByYear(_ context.Context, year int) ([]model.LeaveBalance, error) {
	var result []model.LeaveBalance
	for _, b := range m.balances {
		if b.Year == year {
			result = append(result, *b)
		}
	}
	return result, nil
}

func (m *mockLeaveBalanceRepo) Update(_ context.Context, balance *model.LeaveBalance) error {
	if m.forceConflicts > 0 {
		m.forceConflicts--
		return pkgerrors.ErrOptimisticLock
	}
	stored, ok := m.balances[balanceKey(balance.EmployeeID, balance.Year)]
	if !ok || stored.Version != balance.Version {
		return pkgerrors.ErrOptimisticLock
	}
	balance.Version++
	cp := *balance
	m.balances[balanceKey(balance.EmployeeID, balance.Year)] = &cp
	return nil
}

// ── Mock LeavePolicyRepository ──

type mockLeavePolicyRepo struct {
	policies  map[string]*model.LeavePolicy // by department
	idCounter int
}

func newMockLeavePolicyRepo() *mockLeavePolicyRepo {
	return &mockLeavePolicyRepo{policies: make(map[string]*model.LeavePolicy)}
}

func (m *mockLeavePolicyRepo) Create(_ context.Context, policy *model.LeavePolicy) error {
	if policy.PolicyID == "" {
		m.idCounter++
		policy.PolicyID = fmt.Sprintf("pol-%d", m.idCounter)
	}
	if policy.Version == 0 {
		policy.Version = 1
	}
	m.policies[policy.Department] = policy
	return nil
}

func (m *mockLeavePolicyRepo) GetByDepartment(_ context.Context, department string) (*model.LeavePolicy, error) {
	if p, ok := m.policies[department]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLeavePolicyRepo) List(_ context.Context) ([]model.LeavePolicy, error) {
	departments := make([]string, 0, len(m.policies))
	for d := range m.policies {
		departments = append(departments, d)
	}
	sort.Strings(departments)
	result := make([]model.LeavePolicy, 0, len(departments))
	for _, d := range departments {
		result = append(result, *m.policies[d])
	}
	return result, nil
}

func (m *mockLeavePolicyRepo) Update(_ context.Context, policy *model.LeavePolicy) error {
	for _, p := range m.policies {
		if p.PolicyID == policy.PolicyID {
			policy.Version++
			m.policies[policy.Department] = policy
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── test repository aggregate ──

// testRepos bundles the mocks so tests can seed and inspect them directly.
type testRepos struct {
	user     *mockUserRepo
	employee *mockEmployeeRepo
	shift    *mockShiftRepo
	schedule *mockScheduleRepo
	template *mockTemplateRepo
	timeOff  *mockTimeOffRepo
	balance  *mockLeaveBalanceRepo
	policy   *mockLeavePolicyRepo
}

func newTestRepos() *testRepos {
	employee := newMockEmployeeRepo()
	shift := newMockShiftRepo(employee)
	return &testRepos{
		user:     newMockUserRepo(),
		employee: employee,
		shift:    shift,
		schedule: newMockScheduleRepo(shift),
		template: newMockTemplateRepo(),
		timeOff:  newMockTimeOffRepo(employee),
		balance:  newMockLeaveBalanceRepo(),
		policy:   newMockLeavePolicyRepo(),
	}
}

// toRepository wires the mocks behind the aggregate. The nil db makes
// RunInTx fall through to the callback.
func (r *testRepos) toRepository() *repository.Repository {
	return &repository.Repository{
		User:         r.user,
		Employee:     r.employee,
		Schedule:     r.schedule,
		Shift:        r.shift,
		Template:     r.template,
		TimeOff:      r.timeOff,
		LeaveBalance: r.balance,
		LeavePolicy:  r.policy,
	}
}

// mustDate parses a YYYY-MM-DD date for seeding.
func mustDate(s string) time.Time {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

// strPtr returns a pointer to s.
func strPtr(s string) *string {
	return &s
}

// weekdayAvailability builds a full always-available week between the
// given bounds.
func weekdayAvailability(start, end string) model.WeeklyAvailability {
	out := make(model.WeeklyAvailability, 7)
	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"} {
		out[day] = model.DayAvailability{Start: start, End: end, Available: true}
	}
	return out
}
