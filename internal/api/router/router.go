package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Rakibhasaniu/employee-schedule/config"
	"github.com/Rakibhasaniu/employee-schedule/internal/api/handler"
	"github.com/Rakibhasaniu/employee-schedule/internal/api/middleware"
	"github.com/Rakibhasaniu/employee-schedule/pkg/jwt"
	"github.com/Rakibhasaniu/employee-schedule/pkg/redis"
)

// Setup builds the Gin engine with the full route table.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// auth (no token required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// authenticated routes
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.POST("/auth/change-password", h.Auth.ChangePassword)

			// employees
			employees := authorized.Group("/employees")
			{
				employees.GET("", h.Employee.ListEmployees)
				employees.GET("/search", h.Employee.SearchBySkills)
				employees.GET("/:id", h.Employee.GetEmployee)
				employees.POST("", middleware.RoleAuth("admin", "manager"), h.Employee.CreateEmployee)
				employees.PUT("/:id", middleware.RoleAuth("admin", "manager"), h.Employee.UpdateEmployee)
				employees.DELETE("/:id", middleware.RoleAuth("admin"), h.Employee.DeleteEmployee)
				employees.GET("/:id/availability", h.Employee.GetAvailability)
				employees.GET("/:id/shifts", h.Shift.ListByEmployee)
				employees.GET("/:id/leave-balance", h.TimeOff.GetBalance)
				employees.GET("/:id/leave-summary", h.TimeOff.GetSummary)
			}

			// shifts
			shifts := authorized.Group("/shifts")
			{
				shifts.GET("", h.Shift.ListShifts)
				shifts.GET("/analytics/coverage", middleware.RoleAuth("admin", "manager"), h.Shift.CoverageByRange)
				shifts.GET("/analytics/workload", middleware.RoleAuth("admin", "manager"), h.Shift.WorkloadByEmployee)
				shifts.GET("/analytics/conflicts", middleware.RoleAuth("admin", "manager"), h.Shift.ConflictScan)
				shifts.GET("/:id", h.Shift.GetShift)
				shifts.POST("", middleware.RoleAuth("admin", "manager"), h.Shift.CreateShift)
				shifts.PUT("/:id", middleware.RoleAuth("admin", "manager"), h.Shift.UpdateShift)
				shifts.DELETE("/:id", middleware.RoleAuth("admin", "manager"), h.Shift.DeleteShift)
			}

			// weekly schedules
			schedules := authorized.Group("/schedules")
			{
				schedules.GET("", h.Schedule.ListSchedules)
				schedules.GET("/:id", h.Schedule.GetSchedule)
				schedules.POST("", middleware.RoleAuth("admin", "manager"), h.Schedule.CreateSchedule)
				schedules.PUT("/:id", middleware.RoleAuth("admin", "manager"), h.Schedule.UpdateSchedule)
				schedules.DELETE("/:id", middleware.RoleAuth("admin", "manager"), h.Schedule.DeleteSchedule)
				schedules.POST("/:id/shifts", middleware.RoleAuth("admin", "manager"), h.Schedule.AssignShift)
				schedules.DELETE("/:id/shifts/:shiftId", middleware.RoleAuth("admin", "manager"), h.Schedule.RemoveShift)
				schedules.POST("/:id/publish", middleware.RoleAuth("admin", "manager"), h.Schedule.PublishSchedule)
				schedules.POST("/:id/complete", middleware.RoleAuth("admin", "manager"), h.Schedule.CompleteSchedule)
				schedules.POST("/:id/conflicts/:conflictId/resolve", middleware.RoleAuth("admin", "manager"), h.Schedule.ResolveConflict)
				schedules.GET("/:id/employees/:employeeId", h.Schedule.EmployeeWeek)
			}

			// shift templates
			templates := authorized.Group("/templates")
			{
				templates.GET("", h.Template.ListTemplates)
				templates.GET("/:id", h.Template.GetTemplate)
				templates.POST("", middleware.RoleAuth("admin", "manager"), h.Template.CreateTemplate)
				templates.PUT("/:id", middleware.RoleAuth("admin", "manager"), h.Template.UpdateTemplate)
				templates.DELETE("/:id", middleware.RoleAuth("admin", "manager"), h.Template.DeleteTemplate)
				templates.POST("/:id/activate", middleware.RoleAuth("admin", "manager"), h.Template.ActivateTemplate)
				templates.POST("/:id/deactivate", middleware.RoleAuth("admin", "manager"), h.Template.DeactivateTemplate)
				templates.POST("/:id/expand", middleware.RoleAuth("admin", "manager"), h.Template.ExpandTemplate)
				templates.GET("/:id/usage", middleware.RoleAuth("admin", "manager"), h.Template.TemplateUsage)
			}

			// time off
			timeOff := authorized.Group("/time-off")
			{
				timeOff.GET("", h.TimeOff.ListTimeOff)
				timeOff.GET("/analytics", middleware.RoleAuth("admin", "manager"), h.TimeOff.GetAnalytics)
				timeOff.GET("/:id", h.TimeOff.GetTimeOff)
				timeOff.POST("", h.TimeOff.CreateTimeOff)
				timeOff.PUT("/:id", h.TimeOff.UpdateTimeOff)
				timeOff.POST("/:id/review", middleware.RoleAuth("admin", "manager"), h.TimeOff.ReviewTimeOff)
				timeOff.POST("/:id/cancel", h.TimeOff.CancelTimeOff)
				timeOff.DELETE("/:id", h.TimeOff.DeleteTimeOff)
			}

			// leave policies
			policies := authorized.Group("/leave-policies")
			{
				policies.GET("", middleware.RoleAuth("admin", "manager"), h.TimeOff.ListPolicies)
				policies.PUT("", middleware.RoleAuth("admin"), h.TimeOff.UpsertPolicy)
			}

			// export
			export := authorized.Group("/export")
			{
				export.GET("/schedules/:id", middleware.RoleAuth("admin", "manager"), h.Export.ExportSchedule)
				export.GET("/employees/:id/calendar", h.Export.ExportEmployeeCalendar)
			}
		}
	}

	return r
}
