package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"go-payroll/internal/attendance"
	"go-payroll/internal/audit"
	"go-payroll/internal/domain"
	"go-payroll/internal/employee"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/money"
)

const (
	// Overtime pay is derived from an hourly rate over a fixed 160-hour month.
	standardMonthlyHours = 160.0
	overtimeMultiplier   = 1.5
	taxRate              = 0.15

	minPayrollYear = 2000
	maxPayrollYear = 2100
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Generate(ctx context.Context, req GeneratePayrollRequest, performedBy string) (PayrollResponse, error)
	List(ctx context.Context, role, email string) ([]PayrollResponse, error)
	GetByEmployee(ctx context.Context, role, email, employeeID string) ([]PayrollResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	employees   employee.Repository
	attendances attendance.Repository
	auditRepo   audit.Repository
	outbox      kafka.OutboxRepository
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	attendances attendance.Repository,
	auditRepo audit.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		employees:   employees,
		attendances: attendances,
		auditRepo:   auditRepo,
		outbox:      outboxRepo,
		logger:      l,
	}
}

// Generate computes and persists one payroll record for (employee, month, year).
// The record, its audit entry and the mirror outbox row commit in a single
// transaction. Repeating the call for the same period returns Conflict and
// leaves the stored record untouched.
func (s *service) Generate(ctx context.Context, req GeneratePayrollRequest, performedBy string) (PayrollResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	month, err := NormalizeMonth(req.Month)
	if err != nil {
		return PayrollResponse{}, err
	}
	if req.Year < minPayrollYear || req.Year > maxPayrollYear {
		return PayrollResponse{}, payrollerrors.ErrInvalidYear
	}

	emp, err := s.employees.FindByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrEmployeeNotFound
		}
		return PayrollResponse{}, err
	}

	// Courtesy pre-check. The unique index is what actually guarantees
	// at-most-once per period under concurrency.
	if _, err := s.repo.FindByEmployeePeriod(ctx, req.EmployeeID, month, req.Year); err == nil {
		return PayrollResponse{}, payrollerrors.ErrPayrollAlreadyProcessed
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return PayrollResponse{}, err
	}

	overtimeHours, err := s.overtimeHoursForPeriod(ctx, req.EmployeeID, month, req.Year)
	if err != nil {
		return PayrollResponse{}, err
	}

	record := s.compute(emp, month, req.Year, overtimeHours, req.Bonuses, req.Deductions)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("generate payroll begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, record); err != nil {
		return PayrollResponse{}, mapRepositoryError(err)
	}

	if err := s.writeAuditEntry(ctx, tx, record, performedBy); err != nil {
		return PayrollResponse{}, err
	}

	if s.outbox != nil {
		if err := s.enqueuePayrollProcessed(ctx, tx, record, rid); err != nil {
			return PayrollResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("payroll generated",
		zap.String("request_id", rid),
		zap.String("employee_id", record.EmployeeID),
		zap.String("month", record.Month),
		zap.Int("year", record.Year),
		zap.Float64("net_salary", record.NetSalary),
	)

	return mapToResponse(*record), nil
}

// overtimeHoursForPeriod sums logged overtime inside [month-start,
// next-month-start). Multiple rows on one day are all counted; that is
// tolerated at ingest, so it is only flagged here.
func (s *service) overtimeHoursForPeriod(ctx context.Context, employeeID, month string, year int) (float64, error) {
	from, to := PeriodWindow(month, year)

	logs, err := s.attendances.FindByEmployeeAndRange(ctx, employeeID, from, to)
	if err != nil {
		return 0, err
	}

	var total float64
	seen := make(map[string]bool, len(logs))
	for _, l := range logs {
		day := l.Date.Format("2006-01-02")
		if seen[day] {
			s.logger.Warn("duplicate attendance rows in payroll period",
				zap.String("employee_id", employeeID),
				zap.String("date", day),
			)
		}
		seen[day] = true
		total += l.OvertimeHours
	}
	return total, nil
}

func (s *service) compute(emp *employee.Employee, month string, year int, overtimeHours, bonuses, deductions float64) *PayrollRecord {
	base := emp.BaseSalary

	var overtimePay float64
	if overtimeHours > 0 {
		hourlyRate := base / standardMonthlyHours
		overtimePay = money.Round2(overtimeHours * hourlyRate * overtimeMultiplier)
	}

	// Tax applies to the full gross before deductions. Intermediate values
	// stay unrounded; only the persisted fields are rounded.
	gross := base + overtimePay + bonuses
	tax := gross * taxRate
	net := gross - tax - deductions

	return &PayrollRecord{
		ID:           uuid.New(),
		EmployeeID:   emp.EmployeeID,
		EmployeeName: emp.Name,
		Month:        month,
		Year:         year,
		BaseSalary:   money.Round2(base),
		OvertimePay:  overtimePay,
		Bonuses:      money.Round2(bonuses),
		Deductions:   money.Round2(deductions),
		Tax:          money.Round2(tax),
		NetSalary:    money.Round2(net),
		Status:       StatusProcessed,
		CreatedAt:    time.Now().UTC(),
	}
}

func (s *service) writeAuditEntry(ctx context.Context, tx *sql.Tx, record *PayrollRecord, performedBy string) error {
	details, err := json.Marshal(map[string]any{
		"month":      record.Month,
		"year":       record.Year,
		"net_salary": record.NetSalary,
	})
	if err != nil {
		return err
	}

	return s.auditRepo.WithTx(tx).Create(ctx, &audit.Entry{
		ID:          uuid.New(),
		Action:      "payroll_processed",
		EmployeeID:  record.EmployeeID,
		PerformedBy: performedBy,
		Details:     datatypes.JSON(details),
		Timestamp:   time.Now().UTC(),
	})
}

func (s *service) enqueuePayrollProcessed(ctx context.Context, tx *sql.Tx, record *PayrollRecord, rid string) error {
	event := events.PayrollProcessedEvent{
		EventType:    "payroll_processed",
		EmployeeID:   record.EmployeeID,
		EmployeeName: record.EmployeeName,
		Month:        record.Month,
		Year:         record.Year,
		BaseSalary:   record.BaseSalary,
		Bonuses:      record.Bonuses,
		Deductions:   record.Deductions,
		Tax:          record.Tax,
		NetSalary:    record.NetSalary,
		OccurredAt:   time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     rid,
		AggregateType: "payroll",
		AggregateID:   record.EmployeeID,
		EventType:     event.EventType,
		Topic:         events.PayrollProcessedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

// List scopes results by role: employees see only their own records, matched
// through the directory email; admin and HR see everything.
func (s *service) List(ctx context.Context, role, email string) ([]PayrollResponse, error) {
	if role == domain.RoleEmployee {
		emp, err := s.employees.FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, payrollerrors.ErrEmployeeRecordNotFound
			}
			return nil, err
		}
		records, err := s.repo.FindByEmployee(ctx, emp.EmployeeID)
		if err != nil {
			return nil, err
		}
		return mapToListResponse(records), nil
	}

	records, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(records), nil
}

// GetByEmployee lets admin and HR read any employee's history. The employee
// role is pinned to its own business id, resolved through the directory email,
// regardless of which id the request names.
func (s *service) GetByEmployee(ctx context.Context, role, email, employeeID string) ([]PayrollResponse, error) {
	if role == domain.RoleEmployee {
		own, err := s.employees.FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, payrollerrors.ErrEmployeeRecordNotFound
			}
			return nil, err
		}
		if own.EmployeeID != employeeID {
			return nil, payrollerrors.ErrNotRecordOwner
		}
	}

	if _, err := s.employees.FindByEmployeeID(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payrollerrors.ErrEmployeeNotFound
		}
		return nil, err
	}

	records, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(records), nil
}
