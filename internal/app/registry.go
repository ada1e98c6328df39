package app

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"go-payroll/internal/analytics"
	"go-payroll/internal/attendance"
	"go-payroll/internal/audit"
	"go-payroll/internal/auth"
	"go-payroll/internal/employee"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/payroll"
	"go-payroll/internal/rbac"
	"go-payroll/internal/rbac/infra"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	auditRepo := audit.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer)

	// --- Services ---
	authService := auth.NewService(authRepo)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, outboxRepo)
	attendanceService := attendance.NewService(attendanceRepo, employeeRepo)
	payrollService := payroll.NewService(db, payrollRepo, employeeRepo, attendanceRepo, auditRepo, outboxRepo)
	analyticsService := analytics.NewService(payrollRepo, employeeRepo, rdb)
	auditService := audit.NewService(auditRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	payrollHandler := payroll.NewHandler(payrollService, rdb)
	analyticsHandler := analytics.NewHandler(analyticsService)
	auditHandler := audit.NewHandler(auditService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb)
		analytics.RegisterRoutes(api, analyticsHandler, rbacService)
		audit.RegisterRoutes(api, auditHandler, rbacService)
	}

	return nil
}
