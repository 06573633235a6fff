package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregates every data-access interface behind one entry point.
type Repository struct {
	db *gorm.DB

	User         UserRepository
	Employee     EmployeeRepository
	Schedule     ScheduleRepository
	Shift        ShiftRepository
	Template     TemplateRepository
	TimeOff      TimeOffRepository
	LeaveBalance LeaveBalanceRepository
	LeavePolicy  LeavePolicyRepository
}

// NewRepository wires the GORM implementations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:           db,
		User:         NewUserRepo(db),
		Employee:     NewEmployeeRepo(db),
		Schedule:     NewScheduleRepo(db),
		Shift:        NewShiftRepo(db),
		Template:     NewTemplateRepo(db),
		TimeOff:      NewTimeOffRepo(db),
		LeaveBalance: NewLeaveBalanceRepo(db),
		LeavePolicy:  NewLeavePolicyRepo(db),
	}
}

// RunInTx executes fn against a Repository bound to a single database
// transaction. With no underlying DB (mock-backed repositories in tests)
// it falls through to fn on the receiver.
func (r *Repository) RunInTx(ctx context.Context, fn func(*Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
