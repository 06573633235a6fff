package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Rakibhasaniu/employee-schedule/internal/model"
	pkgerrors "github.com/Rakibhasaniu/employee-schedule/pkg/errors"
)

// EmployeeFilter narrows employee listings. Zero values mean "no filter".
type EmployeeFilter struct {
	Department string
	Location   string
	Role       string
	Status     string
	Skill      string
	Search     string // matches name, email or code
}

// EmployeeRepository is the employee data access interface.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *model.Employee) error
	GetByID(ctx context.Context, id string) (*model.Employee, error)
	GetByCode(ctx context.Context, code string) (*model.Employee, error)
	GetByEmail(ctx context.Context, email string) (*model.Employee, error)
	GetByUserID(ctx context.Context, userID string) (*model.Employee, error)
	List(ctx context.Context, filter EmployeeFilter, offset, limit int) ([]model.Employee, int64, error)
	ListAll(ctx context.Context, filter EmployeeFilter) ([]model.Employee, error)
	ListByIDs(ctx context.Context, ids []string) ([]model.Employee, error)
	Update(ctx context.Context, employee *model.Employee) error
	Delete(ctx context.Context, id string, deletedBy *string) error
	CountByCodePrefix(ctx context.Context, prefix string) (int64, error)
}

type employeeRepo struct {
	db *gorm.DB
}

func NewEmployeeRepo(db *gorm.DB) EmployeeRepository {
	return &employeeRepo{db: db}
}

func (r *employeeRepo) Create(ctx context.Context, employee *model.Employee) error {
	return r.db.WithContext(ctx).Create(employee).Error
}

func (r *employeeRepo) GetByID(ctx context.Context, id string) (*model.Employee, error) {
	var employee model.Employee
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("employee_id = ?", id).
		First(&employee).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepo) GetByCode(ctx context.Context, code string) (*model.Employee, error) {
	var employee model.Employee
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&employee).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepo) GetByEmail(ctx context.Context, email string) (*model.Employee, error) {
	var employee model.Employee
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&employee).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepo) GetByUserID(ctx context.Context, userID string) (*model.Employee, error) {
	var employee model.Employee
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&employee).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepo) applyFilter(db *gorm.DB, filter EmployeeFilter) *gorm.DB {
	if filter.Department != "" {
		db = db.Where("department = ?", filter.Department)
	}
	if filter.Location != "" {
		db = db.Where("location = ?", filter.Location)
	}
	if filter.Role != "" {
		db = db.Where("role = ?", filter.Role)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.Skill != "" {
		db = db.Where("? = ANY(skills)", filter.Skill)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		db = db.Where(
			"first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ? OR code ILIKE ?",
			like, like, like, like,
		)
	}
	return db
}

func (r *employeeRepo) List(ctx context.Context, filter EmployeeFilter, offset, limit int) ([]model.Employee, int64, error) {
	var employees []model.Employee
	var total int64

	db := r.applyFilter(r.db.WithContext(ctx).Model(&model.Employee{}), filter)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&employees).Error; err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

func (r *employeeRepo) ListAll(ctx context.Context, filter EmployeeFilter) ([]model.Employee, error) {
	var employees []model.Employee
	err := r.applyFilter(r.db.WithContext(ctx).Model(&model.Employee{}), filter).
		Order("created_at ASC").
		Find(&employees).Error
	return employees, err
}

func (r *employeeRepo) ListByIDs(ctx context.Context, ids []string) ([]model.Employee, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var employees []model.Employee
	err := r.db.WithContext(ctx).
		Where("employee_id IN ?", ids).
		Find(&employees).Error
	return employees, err
}

func (r *employeeRepo) Update(ctx context.Context, employee *model.Employee) error {
	oldVersion := employee.Version
	result := r.db.WithContext(ctx).
		Model(employee).
		Where("employee_id = ? AND version = ?", employee.EmployeeID, oldVersion).
		Updates(map[string]interface{}{
			"first_name":   employee.FirstName,
			"last_name":    employee.LastName,
			"email":        employee.Email,
			"phone":        employee.Phone,
			"role":         employee.Role,
			"department":   employee.Department,
			"location":     employee.Location,
			"skills":       employee.Skills,
			"availability": employee.Availability,
			"status":       employee.Status,
			"profile_img":  employee.ProfileImg,
			"updated_by":   employee.UpdatedBy,
			"version":      oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	employee.Version = oldVersion + 1
	return nil
}

func (r *employeeRepo) Delete(ctx context.Context, id string, deletedBy *string) error {
	if err := r.db.WithContext(ctx).
		Model(&model.Employee{}).
		Where("employee_id = ?", id).
		Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("employee_id = ?", id).
		Delete(&model.Employee{}).Error
}

// CountByCodePrefix counts live and soft-deleted employees whose code starts
// with prefix; used to allocate the next sequential employee code.
func (r *employeeRepo) CountByCodePrefix(ctx context.Context, prefix string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Unscoped().
		Model(&model.Employee{}).
		Where("code LIKE ?", fmt.Sprintf("%s%%", prefix)).
		Count(&count).Error
	return count, err
}
