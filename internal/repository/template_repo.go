package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Rakibhasaniu/employee-schedule/internal/model"
	pkgerrors "github.com/Rakibhasaniu/employee-schedule/pkg/errors"
)

// TemplateFilter narrows template listings.
type TemplateFilter struct {
	Department string
	Location   string
	IsActive   *bool
	Search     string // matches name
}

// TemplateRepository is the shift-template data access interface.
type TemplateRepository interface {
	Create(ctx context.Context, template *model.ShiftTemplate) error
	GetByID(ctx context.Context, id string) (*model.ShiftTemplate, error)
	List(ctx context.Context, filter TemplateFilter, offset, limit int) ([]model.ShiftTemplate, int64, error)
	FindActiveDuplicate(ctx context.Context, name, department, location, excludeID string) (*model.ShiftTemplate, error)
	Update(ctx context.Context, template *model.ShiftTemplate) error
	Delete(ctx context.Context, id string, deletedBy *string) error
}

type templateRepo struct {
	db *gorm.DB
}

func NewTemplateRepo(db *gorm.DB) TemplateRepository {
	return &templateRepo{db: db}
}

func (r *templateRepo) Create(ctx context.Context, template *model.ShiftTemplate) error {
	return r.db.WithContext(ctx).Create(template).Error
}

func (r *templateRepo) GetByID(ctx context.Context, id string) (*model.ShiftTemplate, error) {
	var template model.ShiftTemplate
	err := r.db.WithContext(ctx).
		Where("template_id = ?", id).
		First(&template).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *templateRepo) List(ctx context.Context, filter TemplateFilter, offset, limit int) ([]model.ShiftTemplate, int64, error) {
	var templates []model.ShiftTemplate
	var total int64

	db := r.db.WithContext(ctx).Model(&model.ShiftTemplate{})
	if filter.Department != "" {
		db = db.Where("department = ?", filter.Department)
	}
	if filter.Location != "" {
		db = db.Where("location = ?", filter.Location)
	}
	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}
	if filter.Search != "" {
		db = db.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&templates).Error; err != nil {
		return nil, 0, err
	}

	return templates, total, nil
}

// FindActiveDuplicate returns an active template with the same name,
// department and location, excluding excludeID (pass "" on create).
// Returns gorm.ErrRecordNotFound when the slot is free.
func (r *templateRepo) FindActiveDuplicate(ctx context.Context, name, department, location, excludeID string) (*model.ShiftTemplate, error) {
	var template model.ShiftTemplate
	db := r.db.WithContext(ctx).
		Where("name = ? AND department = ? AND location = ? AND is_active = ?",
			name, department, location, true)
	if excludeID != "" {
		db = db.Where("template_id != ?", excludeID)
	}
	if err := db.First(&template).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *templateRepo) Update(ctx context.Context, template *model.ShiftTemplate) error {
	oldVersion := template.Version
	result := r.db.WithContext(ctx).
		Model(template).
		Where("template_id = ? AND version = ?", template.TemplateID, oldVersion).
		Updates(map[string]interface{}{
			"name":                template.Name,
			"description":         template.Description,
			"department":          template.Department,
			"location":            template.Location,
			"start_time":          template.StartTime,
			"end_time":            template.EndTime,
			"shift_type":          template.ShiftType,
			"role":                template.Role,
			"required_skills":     template.RequiredSkills,
			"break_duration":      template.BreakDuration,
			"recurrence_type":     template.RecurrenceType,
			"recurrence_days":     template.RecurrenceDays,
			"recurrence_interval": template.RecurrenceInterval,
			"recurrence_end_date": template.RecurrenceEndDate,
			"is_active":           template.IsActive,
			"updated_by":          template.UpdatedBy,
			"version":             oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	template.Version = oldVersion + 1
	return nil
}

func (r *templateRepo) Delete(ctx context.Context, id string, deletedBy *string) error {
	if err := r.db.WithContext(ctx).
		Model(&model.ShiftTemplate{}).
		Where("template_id = ?", id).
		Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("template_id = ?", id).
		Delete(&model.ShiftTemplate{}).Error
}
