package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Rakibhasaniu/employee-schedule/internal/model"
	pkgerrors "github.com/Rakibhasaniu/employee-schedule/pkg/errors"
)

// ShiftFilter narrows shift listings.
type ShiftFilter struct {
	EmployeeID string
	ScheduleID string
	TemplateID string
	Location   string
	Department string
	ShiftType  string
	Status     string
	DateFrom   *time.Time
	DateTo     *time.Time
}

// ShiftRepository is the shift data access interface.
type ShiftRepository interface {
	Create(ctx context.Context, shift *model.Shift) error
	BatchCreate(ctx context.Context, shifts []model.Shift) error
	GetByID(ctx context.Context, id string) (*model.Shift, error)
	List(ctx context.Context, filter ShiftFilter, offset, limit int) ([]model.Shift, int64, error)
	ListAll(ctx context.Context, filter ShiftFilter) ([]model.Shift, error)
	ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]model.Shift, error)
	CountByTemplate(ctx context.Context, templateID string) (int64, error)
	Update(ctx context.Context, shift *model.Shift) error
	Delete(ctx context.Context, id string, deletedBy *string) error
}

type shiftRepo struct {
	db *gorm.DB
}

func NewShiftRepo(db *gorm.DB) ShiftRepository {
	return &shiftRepo{db: db}
}

func (r *shiftRepo) Create(ctx context.Context, shift *model.Shift) error {
	return r.db.WithContext(ctx).Create(shift).Error
}

func (r *shiftRepo) BatchCreate(ctx context.Context, shifts []model.Shift) error {
	if len(shifts) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&shifts).Error
}

func (r *shiftRepo) GetByID(ctx context.Context, id string) (*model.Shift, error) {
	var shift model.Shift
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("shift_id = ?", id).
		First(&shift).Error
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepo) applyFilter(db *gorm.DB, filter ShiftFilter) *gorm.DB {
	if filter.EmployeeID != "" {
		db = db.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.ScheduleID != "" {
		db = db.Where("schedule_id = ?", filter.ScheduleID)
	}
	if filter.TemplateID != "" {
		db = db.Where("template_id = ?", filter.TemplateID)
	}
	if filter.Location != "" {
		db = db.Where("location = ?", filter.Location)
	}
	if filter.Department != "" {
		db = db.Where("department = ?", filter.Department)
	}
	if filter.ShiftType != "" {
		db = db.Where("shift_type = ?", filter.ShiftType)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.DateFrom != nil {
		db = db.Where("date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		db = db.Where("date <= ?", *filter.DateTo)
	}
	return db
}

func (r *shiftRepo) List(ctx context.Context, filter ShiftFilter, offset, limit int) ([]model.Shift, int64, error) {
	var shifts []model.Shift
	var total int64

	db := r.applyFilter(r.db.WithContext(ctx).Model(&model.Shift{}), filter)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Employee").
		Offset(offset).Limit(limit).
		Order("date ASC, start_time ASC").
		Find(&shifts).Error; err != nil {
		return nil, 0, err
	}

	return shifts, total, nil
}

func (r *shiftRepo) ListAll(ctx context.Context, filter ShiftFilter) ([]model.Shift, error) {
	var shifts []model.Shift
	err := r.applyFilter(r.db.WithContext(ctx).Model(&model.Shift{}), filter).
		Preload("Employee").
		Order("date ASC, start_time ASC").
		Find(&shifts).Error
	return shifts, err
}

func (r *shiftRepo) ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]model.Shift, error) {
	var shifts []model.Shift
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND date = ?", employeeID, date).
		Order("start_time ASC").
		Find(&shifts).Error
	return shifts, err
}

func (r *shiftRepo) CountByTemplate(ctx context.Context, templateID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Shift{}).
		Where("template_id = ?", templateID).
		Count(&count).Error
	return count, err
}

func (r *shiftRepo) Update(ctx context.Context, shift *model.Shift) error {
	oldVersion := shift.Version
	result := r.db.WithContext(ctx).
		Model(shift).
		Where("shift_id = ? AND version = ?", shift.ShiftID, oldVersion).
		Updates(map[string]interface{}{
			"schedule_id":     shift.ScheduleID,
			"employee_id":     shift.EmployeeID,
			"date":            shift.Date,
			"start_time":      shift.StartTime,
			"end_time":        shift.EndTime,
			"shift_type":      shift.ShiftType,
			"location":        shift.Location,
			"department":      shift.Department,
			"role":            shift.Role,
			"required_skills": shift.RequiredSkills,
			"status":          shift.Status,
			"break_duration":  shift.BreakDuration,
			"is_time_off":     shift.IsTimeOff,
			"notes":           shift.Notes,
			"updated_by":      shift.UpdatedBy,
			"version":         oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	shift.Version = oldVersion + 1
	return nil
}

func (r *shiftRepo) Delete(ctx context.Context, id string, deletedBy *string) error {
	if err := r.db.WithContext(ctx).
		Model(&model.Shift{}).
		Where("shift_id = ?", id).
		Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("shift_id = ?", id).
		Delete(&model.Shift{}).Error
}
