package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Rakibhasaniu/employee-schedule/internal/model"
	pkgerrors "github.com/Rakibhasaniu/employee-schedule/pkg/errors"
)

// ScheduleFilter narrows schedule listings.
type ScheduleFilter struct {
	Status   string
	DateFrom *time.Time // schedules whose week touches [DateFrom, DateTo]
	DateTo   *time.Time
	Search   string // matches title
}

// ScheduleRepository is the schedule data access interface, including the
// denormalized coverage and conflict child rows.
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *model.Schedule) error
	GetByID(ctx context.Context, id string) (*model.Schedule, error)
	List(ctx context.Context, filter ScheduleFilter, offset, limit int) ([]model.Schedule, int64, error)
	Update(ctx context.Context, schedule *model.Schedule) error
	Delete(ctx context.Context, id string, deletedBy *string) error

	ReplaceCoverage(ctx context.Context, scheduleID string, entries []model.CoverageEntry) error
	ReplaceConflicts(ctx context.Context, scheduleID string, conflicts []model.Conflict) error
	GetConflict(ctx context.Context, scheduleID, conflictID string) (*model.Conflict, error)
	SaveConflict(ctx context.Context, conflict *model.Conflict) error
}

type scheduleRepo struct {
	db *gorm.DB
}

func NewScheduleRepo(db *gorm.DB) ScheduleRepository {
	return &scheduleRepo{db: db}
}

func (r *scheduleRepo) Create(ctx context.Context, schedule *model.Schedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *scheduleRepo) GetByID(ctx context.Context, id string) (*model.Schedule, error) {
	var schedule model.Schedule
	err := r.db.WithContext(ctx).
		Preload("Shifts", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC, start_time ASC")
		}).
		Preload("Shifts.Employee").
		Preload("Coverage").
		Preload("Conflicts").
		Where("schedule_id = ?", id).
		First(&schedule).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepo) List(ctx context.Context, filter ScheduleFilter, offset, limit int) ([]model.Schedule, int64, error) {
	var schedules []model.Schedule
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Schedule{})
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.DateFrom != nil {
		db = db.Where("week_end_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		db = db.Where("week_start_date <= ?", *filter.DateTo)
	}
	if filter.Search != "" {
		db = db.Where("title ILIKE ?", "%"+filter.Search+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("week_start_date DESC").
		Find(&schedules).Error; err != nil {
		return nil, 0, err
	}

	return schedules, total, nil
}

func (r *scheduleRepo) Update(ctx context.Context, schedule *model.Schedule) error {
	oldVersion := schedule.Version
	result := r.db.WithContext(ctx).
		Model(schedule).
		Where("schedule_id = ? AND version = ?", schedule.ScheduleID, oldVersion).
		Updates(map[string]interface{}{
			"title":           schedule.Title,
			"week_start_date": schedule.WeekStartDate,
			"week_end_date":   schedule.WeekEndDate,
			"status":          schedule.Status,
			"published_at":    schedule.PublishedAt,
			"published_by":    schedule.PublishedBy,
			"total_employees": schedule.TotalEmployees,
			"total_hours":     schedule.TotalHours,
			"updated_by":      schedule.UpdatedBy,
			"version":         oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	schedule.Version = oldVersion + 1
	return nil
}

func (r *scheduleRepo) Delete(ctx context.Context, id string, deletedBy *string) error {
	if err := r.db.WithContext(ctx).
		Model(&model.Schedule{}).
		Where("schedule_id = ?", id).
		Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("schedule_id = ?", id).
		Delete(&model.Schedule{}).Error
}

// ReplaceCoverage swaps the schedule's coverage rows for a freshly computed
// set. Recomputes are wholesale; individual rows are never patched.
func (r *scheduleRepo) ReplaceCoverage(ctx context.Context, scheduleID string, entries []model.CoverageEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("schedule_id = ?", scheduleID).
			Delete(&model.CoverageEntry{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		for i := range entries {
			entries[i].ScheduleID = scheduleID
		}
		return tx.Create(&entries).Error
	})
}

// ReplaceConflicts swaps the schedule's conflict rows for a freshly detected
// set. Resolution carry-over for re-detected conflicts happens in the
// service layer before this is called.
func (r *scheduleRepo) ReplaceConflicts(ctx context.Context, scheduleID string, conflicts []model.Conflict) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("schedule_id = ?", scheduleID).
			Delete(&model.Conflict{}).Error; err != nil {
			return err
		}
		if len(conflicts) == 0 {
			return nil
		}
		for i := range conflicts {
			conflicts[i].ScheduleID = scheduleID
		}
		return tx.Create(&conflicts).Error
	})
}

func (r *scheduleRepo) GetConflict(ctx context.Context, scheduleID, conflictID string) (*model.Conflict, error) {
	var conflict model.Conflict
	err := r.db.WithContext(ctx).
		Where("schedule_id = ? AND conflict_id = ?", scheduleID, conflictID).
		First(&conflict).Error
	if err != nil {
		return nil, err
	}
	return &conflict, nil
}

func (r *scheduleRepo) SaveConflict(ctx context.Context, conflict *model.Conflict) error {
	return r.db.WithContext(ctx).Save(conflict).Error
}
