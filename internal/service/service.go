package service

import (
	"go.uber.org/zap"

	"github.com/Rakibhasaniu/employee-schedule/config"
	"github.com/Rakibhasaniu/employee-schedule/internal/repository"
	"github.com/Rakibhasaniu/employee-schedule/pkg/jwt"
	"github.com/Rakibhasaniu/employee-schedule/pkg/redis"
)

// Service is the aggregation entry point for all services.
type Service struct {
	Auth     AuthService
	Employee EmployeeService
	Shift    ShiftService
	Schedule ScheduleService
	Template TemplateService
	TimeOff  TimeOffService
	Export   ExportService
}

// NewService wires every service. rdb may be nil when Redis is down;
// token revocation then degrades to expiry-only.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:     NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Employee: NewEmployeeService(repo, logger, cfg.Auth.DefaultPassword),
		Shift:    NewShiftService(repo, logger),
		Schedule: NewScheduleService(repo, logger),
		Template: NewTemplateService(repo, logger),
		TimeOff:  NewTimeOffService(repo, logger),
		Export:   NewExportService(repo, logger),
	}
}
