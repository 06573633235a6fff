package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Rakibhasaniu/employee-schedule/internal/dto"
	"github.com/Rakibhasaniu/employee-schedule/internal/model"
	"github.com/Rakibhasaniu/employee-schedule/internal/repository"
)

// ── employee module business errors ──

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmailExists      = errors.New("email is already in use")
)

// EmployeeService is the employee business interface.
type EmployeeService interface {
	Create(ctx context.Context, req *dto.CreateEmployeeRequest, callerID string) (*dto.EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (*dto.EmployeeResponse, error)
	List(ctx context.Context, req *dto.EmployeeListRequest) ([]dto.EmployeeResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateEmployeeRequest, callerID string) (*dto.EmployeeResponse, error)
	Delete(ctx context.Context, id string, callerID string) error

	AvailabilityForDate(ctx context.Context, id string, date string) (*dto.DayAvailabilityResponse, error)
	SearchBySkills(ctx context.Context, req *dto.SkillSearchRequest) ([]dto.EmployeeResponse, error)
}

type employeeService struct {
	repo            *repository.Repository
	logger          *zap.Logger
	defaultPassword string
}

// NewEmployeeService creates an EmployeeService. defaultPassword is used
// for the identity record when the create request carries no password.
func NewEmployeeService(repo *repository.Repository, logger *zap.Logger, defaultPassword string) EmployeeService {
	return &employeeService{repo: repo, logger: logger, defaultPassword: defaultPassword}
}

// ────────────────────── Create ──────────────────────

// Create persists the employee and its identity record in one transaction;
// both commit or both roll back.
func (s *employeeService) Create(ctx context.Context, req *dto.CreateEmployeeRequest, callerID string) (*dto.EmployeeResponse, error) {
	if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("failed to check email uniqueness", zap.Error(err))
		return nil, err
	}

	password := req.Password
	if password == "" {
		password = s.defaultPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	code, err := s.nextCode(ctx)
	if err != nil {
		return nil, err
	}

	userRole := req.UserRole
	if userRole == "" {
		userRole = "employee"
	}
	user := &model.User{
		Email:              req.Email,
		PasswordHash:       string(hash),
		Role:               userRole,
		Status:             "active",
		MustChangePassword: req.Password == "",
	}
	user.CreatedBy = &callerID
	user.UpdatedBy = &callerID

	employee := &model.Employee{
		Code:         code,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		Role:         req.Role,
		Department:   req.Department,
		Location:     req.Location,
		Skills:       req.Skills,
		Availability: toAvailability(req.Availability),
		Status:       "active",
	}
	employee.CreatedBy = &callerID
	employee.UpdatedBy = &callerID

	err = s.repo.RunInTx(ctx, func(tx *repository.Repository) error {
		if err := tx.User.Create(ctx, user); err != nil {
			return err
		}
		employee.UserID = user.UserID
		return tx.Employee.Create(ctx, employee)
	})
	if err != nil {
		s.logger.Error("failed to create employee pair", zap.Error(err))
		return nil, err
	}

	s.logger.Info("employee created",
		zap.String("employee_id", employee.EmployeeID), zap.String("code", code))
	return toEmployeeResponse(employee), nil
}

// nextCode allocates the next EMP-YYYY-NNNN employee code.
func (s *employeeService) nextCode(ctx context.Context) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("EMP-%d-", year)
	count, err := s.repo.Employee.CountByCodePrefix(ctx, prefix)
	if err != nil {
		s.logger.Error("failed to count employee codes", zap.Error(err))
		return "", err
	}
	return fmt.Sprintf("%s%04d", prefix, count+1), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *employeeService) GetByID(ctx context.Context, id string) (*dto.EmployeeResponse, error) {
	employee, err := s.repo.Employee.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("failed to load employee", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

// ────────────────────── List ──────────────────────

func (s *employeeService) List(ctx context.Context, req *dto.EmployeeListRequest) ([]dto.EmployeeResponse, int64, error) {
	employees, total, err := s.repo.Employee.List(ctx, repository.EmployeeFilter{
		Department: req.Department,
		Location:   req.Location,
		Role:       req.Role,
		Status:     req.Status,
		Skill:      req.Skill,
		Search:     req.Search,
	}, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("failed to list employees", zap.Error(err))
		return nil, 0, err
	}

	out := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		out = append(out, *toEmployeeResponse(&employees[i]))
	}
	return out, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *employeeService) Update(ctx context.Context, id string, req *dto.UpdateEmployeeRequest, callerID string) (*dto.EmployeeResponse, error) {
	employee, err := s.repo.Employee.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("failed to load employee", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Email != nil && *req.Email != employee.Email {
		if _, err := s.repo.User.GetByEmail(ctx, *req.Email); err == nil {
			return nil, ErrEmailExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		employee.Email = *req.Email
	}
	if req.FirstName != nil {
		employee.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		employee.LastName = *req.LastName
	}
	if req.Phone != nil {
		employee.Phone = *req.Phone
	}
	if req.Role != nil {
		employee.Role = *req.Role
	}
	if req.Department != nil {
		employee.Department = *req.Department
	}
	if req.Location != nil {
		employee.Location = *req.Location
	}
	if req.Skills != nil {
		employee.Skills = req.Skills
	}
	if req.Availability != nil {
		employee.Availability = toAvailability(req.Availability)
	}
	if req.Status != nil {
		employee.Status = *req.Status
	}
	if req.ProfileImg != nil {
		employee.ProfileImg = *req.ProfileImg
	}
	employee.UpdatedBy = &callerID

	err = s.repo.RunInTx(ctx, func(tx *repository.Repository) error {
		if err := tx.Employee.Update(ctx, employee); err != nil {
			return err
		}
		// keep the identity record's email in sync
		if req.Email != nil {
			user, err := tx.User.GetByID(ctx, employee.UserID)
			if err != nil {
				return err
			}
			user.Email = employee.Email
			user.UpdatedBy = &callerID
			return tx.User.Update(ctx, user)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to update employee", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toEmployeeResponse(employee), nil
}

// ────────────────────── Delete ──────────────────────

// Delete soft-deletes the employee and its identity record atomically.
func (s *employeeService) Delete(ctx context.Context, id string, callerID string) error {
	employee, err := s.repo.Employee.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		s.logger.Error("failed to load employee", zap.String("id", id), zap.Error(err))
		return err
	}

	err = s.repo.RunInTx(ctx, func(tx *repository.Repository) error {
		if err := tx.Employee.Delete(ctx, id, &callerID); err != nil {
			return err
		}
		return tx.User.Delete(ctx, employee.UserID, &callerID)
	})
	if err != nil {
		s.logger.Error("failed to delete employee pair", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── AvailabilityForDate ──────────────────────

func (s *employeeService) AvailabilityForDate(ctx context.Context, id string, dateStr string) (*dto.DayAvailabilityResponse, error) {
	employee, err := s.repo.Employee.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return nil, ErrInvalidDateRange
	}

	resp := &dto.DayAvailabilityResponse{
		EmployeeID: id,
		Date:       dateStr,
		Weekday:    weekdayName(date),
	}
	if day, ok := employee.Availability.ForDate(date); ok && day.Available {
		resp.Available = true
		resp.Start = day.Start
		resp.End = day.End
	}
	return resp, nil
}

// ────────────────────── SearchBySkills ──────────────────────

// SearchBySkills returns active employees holding any of the requested
// skills, optionally narrowed to a location.
func (s *employeeService) SearchBySkills(ctx context.Context, req *dto.SkillSearchRequest) ([]dto.EmployeeResponse, error) {
	pool, err := s.repo.Employee.ListAll(ctx, repository.EmployeeFilter{
		Location: req.Location,
		Status:   "active",
	})
	if err != nil {
		s.logger.Error("failed to search employees", zap.Error(err))
		return nil, err
	}

	var out []dto.EmployeeResponse
	for i := range pool {
		for _, skill := range req.Skills {
			if pool[i].Skills.Contains(skill) {
				out = append(out, *toEmployeeResponse(&pool[i]))
				break
			}
		}
	}
	return out, nil
}

// ────────────────────── converters ──────────────────────

func toAvailability(in map[string]dto.DayAvailabilityInput) model.WeeklyAvailability {
	if in == nil {
		return nil
	}
	out := make(model.WeeklyAvailability, len(in))
	for day, window := range in {
		out[day] = model.DayAvailability{
			Start:     window.Start,
			End:       window.End,
			Available: window.Available,
		}
	}
	return out
}

func toEmployeeResponse(employee *model.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:           employee.EmployeeID,
		Code:         employee.Code,
		FirstName:    employee.FirstName,
		LastName:     employee.LastName,
		FullName:     employee.FullName(),
		Email:        employee.Email,
		Phone:        employee.Phone,
		Role:         employee.Role,
		Department:   employee.Department,
		Location:     employee.Location,
		Skills:       employee.Skills,
		Availability: employee.Availability,
		Status:       employee.Status,
		ProfileImg:   employee.ProfileImg,
		UserID:       employee.UserID,
		CreatedAt:    employee.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    employee.UpdatedAt.Format(time.RFC3339),
	}
}
