package payroll_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"go-payroll/internal/attendance"
	"go-payroll/internal/audit"
	"go-payroll/internal/domain"
	"go-payroll/internal/employee"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/payroll"
	payrollerrors "go-payroll/internal/payroll/errors"
)

type fakePayrollRepository struct {
	withTxFn               func(tx *sql.Tx) payroll.Repository
	createFn               func(ctx context.Context, p *payroll.PayrollRecord) error
	findByEmployeePeriodFn func(ctx context.Context, employeeID, month string, year int) (*payroll.PayrollRecord, error)
	findAllFn              func(ctx context.Context) ([]payroll.PayrollRecord, error)
	findByEmployeeFn       func(ctx context.Context, employeeID string) ([]payroll.PayrollRecord, error)
	findByPeriodFn         func(ctx context.Context, month string, year int) ([]payroll.PayrollRecord, error)
	countFn                func(ctx context.Context) (int64, error)
}

func (f *fakePayrollRepository) WithTx(tx *sql.Tx) payroll.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakePayrollRepository) Create(ctx context.Context, p *payroll.PayrollRecord) error {
	if f.createFn != nil {
		return f.createFn(ctx, p)
	}
	return nil
}

func (f *fakePayrollRepository) FindByEmployeePeriod(ctx context.Context, employeeID, month string, year int) (*payroll.PayrollRecord, error) {
	if f.findByEmployeePeriodFn != nil {
		return f.findByEmployeePeriodFn(ctx, employeeID, month, year)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePayrollRepository) FindAll(ctx context.Context) ([]payroll.PayrollRecord, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakePayrollRepository) FindByEmployee(ctx context.Context, employeeID string) ([]payroll.PayrollRecord, error) {
	if f.findByEmployeeFn != nil {
		return f.findByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakePayrollRepository) FindByPeriod(ctx context.Context, month string, year int) ([]payroll.PayrollRecord, error) {
	if f.findByPeriodFn != nil {
		return f.findByPeriodFn(ctx, month, year)
	}
	return nil, nil
}

func (f *fakePayrollRepository) Count(ctx context.Context) (int64, error) {
	if f.countFn != nil {
		return f.countFn(ctx)
	}
	return 0, nil
}

type fakeEmployeeRepository struct {
	findByEmployeeIDFn func(ctx context.Context, employeeID string) (*employee.Employee, error)
	findByEmailFn      func(ctx context.Context, email string) (*employee.Employee, error)
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository { return f }
func (f *fakeEmployeeRepository) Create(ctx context.Context, emp *employee.Employee) error {
	return nil
}
func (f *fakeEmployeeRepository) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepository) FindAllActive(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByEmployeeID(ctx context.Context, employeeID string) (*employee.Employee, error) {
	if f.findByEmployeeIDFn != nil {
		return f.findByEmployeeIDFn(ctx, employeeID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	if f.findByEmailFn != nil {
		return f.findByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) CountActive(ctx context.Context) (int64, error) { return 0, nil }
func (f *fakeEmployeeRepository) Update(ctx context.Context, emp *employee.Employee) error {
	return nil
}
func (f *fakeEmployeeRepository) Delete(ctx context.Context, employeeID string) (int64, error) {
	return 0, nil
}

type fakeAttendanceRepository struct {
	findByEmployeeAndRangeFn func(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.AttendanceLog, error)
}

func (f *fakeAttendanceRepository) WithTx(tx *sql.Tx) attendance.Repository { return f }
func (f *fakeAttendanceRepository) Create(ctx context.Context, a *attendance.AttendanceLog) error {
	return nil
}
func (f *fakeAttendanceRepository) FindAll(ctx context.Context) ([]attendance.AttendanceLog, error) {
	return nil, nil
}
func (f *fakeAttendanceRepository) FindByEmployee(ctx context.Context, employeeID string) ([]attendance.AttendanceLog, error) {
	return nil, nil
}

func (f *fakeAttendanceRepository) FindByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.AttendanceLog, error) {
	if f.findByEmployeeAndRangeFn != nil {
		return f.findByEmployeeAndRangeFn(ctx, employeeID, from, to)
	}
	return nil, nil
}

type fakeAuditRepository struct {
	createFn func(ctx context.Context, entry *audit.Entry) error
}

func (f *fakeAuditRepository) WithTx(tx *sql.Tx) audit.Repository { return f }
func (f *fakeAuditRepository) Create(ctx context.Context, entry *audit.Entry) error {
	if f.createFn != nil {
		return f.createFn(ctx, entry)
	}
	return nil
}
func (f *fakeAuditRepository) FindRecent(ctx context.Context, limit int) ([]audit.Entry, error) {
	return nil, nil
}

type fakeOutboxRepository struct {
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}
func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }
func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type payrollServiceDeps struct {
	db          *sql.DB
	sqlMock     sqlmock.Sqlmock
	service     payroll.Service
	repo        *fakePayrollRepository
	employees   *fakeEmployeeRepository
	attendances *fakeAttendanceRepository
	auditRepo   *fakeAuditRepository
	outbox      *fakeOutboxRepository
}

func setupPayrollServiceTest(t *testing.T) *payrollServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	deps := &payrollServiceDeps{
		db:          db,
		sqlMock:     sqlMock,
		repo:        &fakePayrollRepository{},
		employees:   &fakeEmployeeRepository{},
		attendances: &fakeAttendanceRepository{},
		auditRepo:   &fakeAuditRepository{},
		outbox:      &fakeOutboxRepository{},
	}
	deps.service = payroll.NewService(db, deps.repo, deps.employees, deps.attendances, deps.auditRepo, deps.outbox)
	return deps
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func activeEmployee(employeeID string, baseSalary float64) *employee.Employee {
	return &employee.Employee{
		EmployeeID: employeeID,
		Name:       "Dana Whitfield",
		Email:      "dana@example.com",
		Department: "Engineering",
		BaseSalary: baseSalary,
		Status:     employee.StatusActive,
	}
}

func TestPayrollService_Generate(t *testing.T) {
	ctx := context.Background()

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)

	deps.employees.findByEmployeeIDFn = func(ctx context.Context, employeeID string) (*employee.Employee, error) {
		assert.Equal(t, "EMP-001", employeeID)
		return activeEmployee(employeeID, 4000), nil
	}
	deps.attendances.findByEmployeeAndRangeFn = func(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.AttendanceLog, error) {
		assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), from)
		assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), to)
		return []attendance.AttendanceLog{
			{EmployeeID: employeeID, Date: time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), HoursWorked: 8, OvertimeHours: 6},
			{EmployeeID: employeeID, Date: time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), HoursWorked: 8, OvertimeHours: 4},
		}, nil
	}

	var created *payroll.PayrollRecord
	deps.repo.createFn = func(ctx context.Context, p *payroll.PayrollRecord) error {
		created = p
		return nil
	}

	var auditEntry *audit.Entry
	deps.auditRepo.createFn = func(ctx context.Context, entry *audit.Entry) error {
		auditEntry = entry
		return nil
	}

	var outboxEvent *kafka.OutboxEvent
	deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
		outboxEvent = &event
		return nil
	}

	// Month arrives unpadded and must be stored zero-padded.
	req := payroll.GeneratePayrollRequest{
		EmployeeID: "EMP-001",
		Month:      "3",
		Year:       2026,
		Bonuses:    100,
		Deductions: 50,
	}

	resp, err := deps.service.Generate(ctx, req, "hr@example.com")

	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.Equal(t, "03", created.Month)
	assert.Equal(t, 2026, created.Year)

	// base 4000, hourly rate 25, 10 overtime hours at 1.5x.
	assert.Equal(t, 375.00, created.OvertimePay)
	assert.Equal(t, 671.25, created.Tax)
	assert.Equal(t, 3753.75, created.NetSalary)
	assert.Equal(t, payroll.StatusProcessed, created.Status)

	assert.Equal(t, 3753.75, resp.NetSalary)
	assert.Equal(t, "03", resp.Month)

	assert.NotNil(t, auditEntry)
	assert.Equal(t, "payroll_processed", auditEntry.Action)
	assert.Equal(t, "hr@example.com", auditEntry.PerformedBy)
	var details map[string]any
	assert.NoError(t, json.Unmarshal(auditEntry.Details, &details))
	assert.Equal(t, "03", details["month"])
	assert.Equal(t, 3753.75, details["net_salary"])

	assert.NotNil(t, outboxEvent)
	assert.Equal(t, events.PayrollProcessedTopic, outboxEvent.Topic)
	assert.Equal(t, "payroll_processed", outboxEvent.EventType)
	var event events.PayrollProcessedEvent
	assert.NoError(t, json.Unmarshal(outboxEvent.Payload, &event))
	assert.Equal(t, 3753.75, event.NetSalary)

	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_Generate_NoAttendance(t *testing.T) {
	ctx := context.Background()

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)

	deps.employees.findByEmployeeIDFn = func(ctx context.Context, employeeID string) (*employee.Employee, error) {
		return activeEmployee(employeeID, 5000), nil
	}

	var created *payroll.PayrollRecord
	deps.repo.createFn = func(ctx context.Context, p *payroll.PayrollRecord) error {
		created = p
		return nil
	}

	resp, err := deps.service.Generate(ctx, payroll.GeneratePayrollRequest{
		EmployeeID: "EMP-002",
		Month:      "07",
		Year:       2026,
	}, "admin@example.com")

	assert.NoError(t, err)
	assert.Equal(t, 0.0, created.OvertimePay)
	assert.Equal(t, 750.00, created.Tax)
	assert.Equal(t, 4250.00, resp.NetSalary)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_Generate_InvalidPeriod(t *testing.T) {
	ctx := context.Background()

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.Generate(ctx, payroll.GeneratePayrollRequest{
		EmployeeID: "EMP-001", Month: "13", Year: 2026,
	}, "hr@example.com")
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidMonth)

	_, err = deps.service.Generate(ctx, payroll.GeneratePayrollRequest{
		EmployeeID: "EMP-001", Month: "3", Year: 1890,
	}, "hr@example.com")
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidYear)
}

func TestPayrollService_Generate_EmployeeNotFound(t *testing.T) {
	ctx := context.Background()

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.Generate(ctx, payroll.GeneratePayrollRequest{
		EmployeeID: "EMP-404", Month: "3", Year: 2026,
	}, "hr@example.com")

	assert.ErrorIs(t, err, payrollerrors.ErrEmployeeNotFound)
}

func TestPayrollService_Generate_ConflictOnPrecheck(t *testing.T) {
	ctx := context.Background()

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	deps.employees.findByEmployeeIDFn = func(ctx context.Context, employeeID string) (*employee.Employee, error) {
		return activeEmployee(employeeID, 4000), nil
	}
	deps.repo.findByEmployeePeriodFn = func(ctx context.Context, employeeID, month string, year int) (*payroll.PayrollRecord, error) {
		return &payroll.PayrollRecord{EmployeeID: employeeID, Month: month, Year: year}, nil
	}

	_, err := deps.service.Generate(ctx, payroll.GeneratePayrollRequest{
		EmployeeID: "EMP-001", Month: "3", Year: 2026,
	}, "hr@example.com")

	assert.ErrorIs(t, err, payrollerrors.ErrPayrollAlreadyProcessed)
}

func TestPayrollService_Generate_ConflictOnInsert(t *testing.T) {
	ctx := context.Background()

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, false)

	deps.employees.findByEmployeeIDFn = func(ctx context.Context, employeeID string) (*employee.Employee, error) {
		return activeEmployee(employeeID, 4000), nil
	}
	// Pre-check saw nothing, but a concurrent request won the insert.
	deps.repo.createFn = func(ctx context.Context, p *payroll.PayrollRecord) error {
		return &pgconn.PgError{Code: "23505", ConstraintName: "uq_payroll_employee_period"}
	}

	_, err := deps.service.Generate(ctx, payroll.GeneratePayrollRequest{
		EmployeeID: "EMP-001", Month: "3", Year: 2026,
	}, "hr@example.com")

	assert.ErrorIs(t, err, payrollerrors.ErrPayrollAlreadyProcessed)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_List_RoleScoping(t *testing.T) {
	ctx := context.Background()

	t.Run("admin sees all", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAllFn = func(ctx context.Context) ([]payroll.PayrollRecord, error) {
			return []payroll.PayrollRecord{
				{EmployeeID: "EMP-001", Month: "01", Year: 2026},
				{EmployeeID: "EMP-002", Month: "01", Year: 2026},
			}, nil
		}

		resp, err := deps.service.List(ctx, domain.RoleAdmin, "admin@example.com")
		assert.NoError(t, err)
		assert.Len(t, resp, 2)
	})

	t.Run("employee sees own records only", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		deps.employees.findByEmailFn = func(ctx context.Context, email string) (*employee.Employee, error) {
			assert.Equal(t, "dana@example.com", email)
			return activeEmployee("EMP-001", 4000), nil
		}
		deps.repo.findByEmployeeFn = func(ctx context.Context, employeeID string) ([]payroll.PayrollRecord, error) {
			assert.Equal(t, "EMP-001", employeeID)
			return []payroll.PayrollRecord{{EmployeeID: employeeID, Month: "02", Year: 2026}}, nil
		}

		resp, err := deps.service.List(ctx, domain.RoleEmployee, "dana@example.com")
		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "EMP-001", resp[0].EmployeeID)
	})

	t.Run("employee without directory row", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.List(ctx, domain.RoleEmployee, "ghost@example.com")
		assert.ErrorIs(t, err, payrollerrors.ErrEmployeeRecordNotFound)
	})
}

func TestPayrollService_GetByEmployee_OwnershipScoping(t *testing.T) {
	ctx := context.Background()

	t.Run("employee denied another employee's records", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		deps.employees.findByEmailFn = func(ctx context.Context, email string) (*employee.Employee, error) {
			return activeEmployee("EMP-001", 4000), nil
		}
		deps.repo.findByEmployeeFn = func(ctx context.Context, employeeID string) ([]payroll.PayrollRecord, error) {
			t.Fatal("repository must not be queried for a denied request")
			return nil, nil
		}

		_, err := deps.service.GetByEmployee(ctx, domain.RoleEmployee, "dana@example.com", "EMP-002")
		assert.ErrorIs(t, err, payrollerrors.ErrNotRecordOwner)
	})

	t.Run("employee reads own records", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		deps.employees.findByEmailFn = func(ctx context.Context, email string) (*employee.Employee, error) {
			return activeEmployee("EMP-001", 4000), nil
		}
		deps.employees.findByEmployeeIDFn = func(ctx context.Context, employeeID string) (*employee.Employee, error) {
			return activeEmployee(employeeID, 4000), nil
		}
		deps.repo.findByEmployeeFn = func(ctx context.Context, employeeID string) ([]payroll.PayrollRecord, error) {
			assert.Equal(t, "EMP-001", employeeID)
			return []payroll.PayrollRecord{{EmployeeID: employeeID, Month: "02", Year: 2026}}, nil
		}

		resp, err := deps.service.GetByEmployee(ctx, domain.RoleEmployee, "dana@example.com", "EMP-001")
		assert.NoError(t, err)
		assert.Len(t, resp, 1)
	})

	t.Run("admin reads any employee", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		deps.employees.findByEmployeeIDFn = func(ctx context.Context, employeeID string) (*employee.Employee, error) {
			return activeEmployee(employeeID, 4000), nil
		}
		deps.repo.findByEmployeeFn = func(ctx context.Context, employeeID string) ([]payroll.PayrollRecord, error) {
			return []payroll.PayrollRecord{{EmployeeID: employeeID, Month: "01", Year: 2026}}, nil
		}

		resp, err := deps.service.GetByEmployee(ctx, domain.RoleAdmin, "admin@example.com", "EMP-007")
		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "EMP-007", resp[0].EmployeeID)
	})
}
