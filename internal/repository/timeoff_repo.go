package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Rakibhasaniu/employee-schedule/internal/model"
	pkgerrors "github.com/Rakibhasaniu/employee-schedule/pkg/errors"
)

// TimeOffFilter narrows time-off request listings.
type TimeOffFilter struct {
	EmployeeID string
	Type       string
	Status     string
	DateFrom   *time.Time
	DateTo     *time.Time
}

// TimeOffRepository is the leave-request data access interface.
type TimeOffRepository interface {
	Create(ctx context.Context, request *model.TimeOffRequest) error
	GetByID(ctx context.Context, id string) (*model.TimeOffRequest, error)
	List(ctx context.Context, filter TimeOffFilter, offset, limit int) ([]model.TimeOffRequest, int64, error)
	ListAll(ctx context.Context, filter TimeOffFilter) ([]model.TimeOffRequest, error)
	ListOverlapping(ctx context.Context, employeeID string, start, end time.Time, statuses []string) ([]model.TimeOffRequest, error)
	ListApprovedInRange(ctx context.Context, start, end time.Time) ([]model.TimeOffRequest, error)
	Update(ctx context.Context, request *model.TimeOffRequest) error
	Delete(ctx context.Context, id string, deletedBy *string) error
}

type timeOffRepo struct {
	db *gorm.DB
}

func NewTimeOffRepo(db *gorm.DB) TimeOffRepository {
	return &timeOffRepo{db: db}
}

func (r *timeOffRepo) Create(ctx context.Context, request *model.TimeOffRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *timeOffRepo) GetByID(ctx context.Context, id string) (*model.TimeOffRequest, error) {
	var request model.TimeOffRequest
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("request_id = ?", id).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *timeOffRepo) applyFilter(db *gorm.DB, filter TimeOffFilter) *gorm.DB {
	if filter.EmployeeID != "" {
		db = db.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Type != "" {
		db = db.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.DateFrom != nil {
		db = db.Where("end_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		db = db.Where("start_date <= ?", *filter.DateTo)
	}
	return db
}

func (r *timeOffRepo) List(ctx context.Context, filter TimeOffFilter, offset, limit int) ([]model.TimeOffRequest, int64, error) {
	var requests []model.TimeOffRequest
	var total int64

	db := r.applyFilter(r.db.WithContext(ctx).Model(&model.TimeOffRequest{}), filter)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Employee").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

func (r *timeOffRepo) ListAll(ctx context.Context, filter TimeOffFilter) ([]model.TimeOffRequest, error) {
	var requests []model.TimeOffRequest
	err := r.applyFilter(r.db.WithContext(ctx).Model(&model.TimeOffRequest{}), filter).
		Order("start_date ASC").
		Find(&requests).Error
	return requests, err
}

// ListOverlapping returns the employee's requests in the given statuses whose
// inclusive date span touches [start, end].
func (r *timeOffRepo) ListOverlapping(ctx context.Context, employeeID string, start, end time.Time, statuses []string) ([]model.TimeOffRequest, error) {
	var requests []model.TimeOffRequest
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND status IN ? AND start_date <= ? AND end_date >= ?",
			employeeID, statuses, end, start).
		Find(&requests).Error
	return requests, err
}

func (r *timeOffRepo) ListApprovedInRange(ctx context.Context, start, end time.Time) ([]model.TimeOffRequest, error) {
	var requests []model.TimeOffRequest
	err := r.db.WithContext(ctx).
		Where("status = ? AND start_date <= ? AND end_date >= ?",
			"approved", end, start).
		Find(&requests).Error
	return requests, err
}

func (r *timeOffRepo) Update(ctx context.Context, request *model.TimeOffRequest) error {
	return r.db.WithContext(ctx).
		Model(request).
		Where("request_id = ?", request.RequestID).
		Updates(map[string]interface{}{
			"type":                  request.Type,
			"start_date":            request.StartDate,
			"end_date":              request.EndDate,
			"total_days":            request.TotalDays,
			"reason":                request.Reason,
			"status":                request.Status,
			"is_emergency":          request.IsEmergency,
			"reviewed_by":           request.ReviewedBy,
			"reviewed_at":           request.ReviewedAt,
			"review_notes":          request.ReviewNotes,
			"conflicting_shift_ids": request.ConflictingShiftIDs,
			"replacement_id":        request.ReplacementID,
			"updated_by":            request.UpdatedBy,
		}).Error
}

func (r *timeOffRepo) Delete(ctx context.Context, id string, deletedBy *string) error {
	if err := r.db.WithContext(ctx).
		Model(&model.TimeOffRequest{}).
		Where("request_id = ?", id).
		Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("request_id = ?", id).
		Delete(&model.TimeOffRequest{}).Error
}

// ── LeaveBalance Repository ──

// LeaveBalanceRepository is the per-year leave ledger data access interface.
type LeaveBalanceRepository interface {
	Create(ctx context.Context, balance *model.LeaveBalance) error
	GetByEmployeeYear(ctx context.Context, employeeID string, year int) (*model.LeaveBalance, error)
	ListByYear(ctx context.Context, year int) ([]model.LeaveBalance, error)
	Update(ctx context.Context, balance *model.LeaveBalance) error
}

type leaveBalanceRepo struct {
	db *gorm.DB
}

func NewLeaveBalanceRepo(db *gorm.DB) LeaveBalanceRepository {
	return &leaveBalanceRepo{db: db}
}

func (r *leaveBalanceRepo) Create(ctx context.Context, balance *model.LeaveBalance) error {
	return r.db.WithContext(ctx).Create(balance).Error
}

func (r *leaveBalanceRepo) GetByEmployeeYear(ctx context.Context, employeeID string, year int) (*model.LeaveBalance, error) {
	var balance model.LeaveBalance
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND year = ?", employeeID, year).
		First(&balance).Error
	if err != nil {
		return nil, err
	}
	return &balance, nil
}

func (r *leaveBalanceRepo) ListByYear(ctx context.Context, year int) ([]model.LeaveBalance, error) {
	var balances []model.LeaveBalance
	err := r.db.WithContext(ctx).
		Where("year = ?", year).
		Find(&balances).Error
	return balances, err
}

// Update writes every ledger slot behind a version guard; concurrent ledger
// movements on the same balance retry at the service layer.
func (r *leaveBalanceRepo) Update(ctx context.Context, balance *model.LeaveBalance) error {
	oldVersion := balance.Version
	result := r.db.WithContext(ctx).
		Model(balance).
		Where("balance_id = ? AND version = ?", balance.BalanceID, oldVersion).
		Updates(map[string]interface{}{
			"vacation_allocated": balance.Vacation.Allocated,
			"vacation_used":      balance.Vacation.Used,
			"vacation_pending":   balance.Vacation.Pending,
			"vacation_remaining": balance.Vacation.Remaining,
			"sick_allocated":     balance.Sick.Allocated,
			"sick_used":          balance.Sick.Used,
			"sick_pending":       balance.Sick.Pending,
			"sick_remaining":     balance.Sick.Remaining,
			"personal_allocated": balance.Personal.Allocated,
			"personal_used":      balance.Personal.Used,
			"personal_pending":   balance.Personal.Pending,
			"personal_remaining": balance.Personal.Remaining,
			"carry_over":         balance.CarryOver,
			"updated_by":         balance.UpdatedBy,
			"version":            oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	balance.Version = oldVersion + 1
	return nil
}

// ── LeavePolicy Repository ──

// LeavePolicyRepository is the department allocation policy data access
// interface.
type LeavePolicyRepository interface {
	Create(ctx context.Context, policy *model.LeavePolicy) error
	GetByDepartment(ctx context.Context, department string) (*model.LeavePolicy, error)
	List(ctx context.Context) ([]model.LeavePolicy, error)
	Update(ctx context.Context, policy *model.LeavePolicy) error
}

type leavePolicyRepo struct {
	db *gorm.DB
}

func NewLeavePolicyRepo(db *gorm.DB) LeavePolicyRepository {
	return &leavePolicyRepo{db: db}
}

func (r *leavePolicyRepo) Create(ctx context.Context, policy *model.LeavePolicy) error {
	return r.db.WithContext(ctx).Create(policy).Error
}

func (r *leavePolicyRepo) GetByDepartment(ctx context.Context, department string) (*model.LeavePolicy, error) {
	var policy model.LeavePolicy
	err := r.db.WithContext(ctx).
		Where("department = ?", department).
		First(&policy).Error
	if err != nil {
		return nil, err
	}
	return &policy, nil
}

func (r *leavePolicyRepo) List(ctx context.Context) ([]model.LeavePolicy, error) {
	var policies []model.LeavePolicy
	err := r.db.WithContext(ctx).
		Order("department ASC").
		Find(&policies).Error
	return policies, err
}

func (r *leavePolicyRepo) Update(ctx context.Context, policy *model.LeavePolicy) error {
	oldVersion := policy.Version
	result := r.db.WithContext(ctx).
		Model(policy).
		Where("policy_id = ? AND version = ?", policy.PolicyID, oldVersion).
		Updates(map[string]interface{}{
			"vacation_days": policy.VacationDays,
			"sick_days":     policy.SickDays,
			"personal_days": policy.PersonalDays,
			"updated_by":    policy.UpdatedBy,
			"version":       oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	policy.Version = oldVersion + 1
	return nil
}
