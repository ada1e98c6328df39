package analytics_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"go-payroll/internal/analytics"
	analyticserrors "go-payroll/internal/analytics/errors"
	"go-payroll/internal/domain"
	"go-payroll/internal/employee"
	"go-payroll/internal/payroll"
)

type fakePayrollRepository struct {
	findAllFn        func(ctx context.Context) ([]payroll.PayrollRecord, error)
	findByEmployeeFn func(ctx context.Context, employeeID string) ([]payroll.PayrollRecord, error)
	findByPeriodFn   func(ctx context.Context, month string, year int) ([]payroll.PayrollRecord, error)
	countFn          func(ctx context.Context) (int64, error)
}

func (f *fakePayrollRepository) WithTx(tx *sql.Tx) payroll.Repository { return f }
func (f *fakePayrollRepository) Create(ctx context.Context, p *payroll.PayrollRecord) error {
	return nil
}
func (f *fakePayrollRepository) FindByEmployeePeriod(ctx context.Context, employeeID, month string, year int) (*payroll.PayrollRecord, error) {
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
	findAllActiveFn func(ctx context.Context) ([]employee.Employee, error)
	findByEmailFn   func(ctx context.Context, email string) (*employee.Employee, error)
	countActiveFn   func(ctx context.Context) (int64, error)
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository { return f }
func (f *fakeEmployeeRepository) Create(ctx context.Context, emp *employee.Employee) error {
	return nil
}
func (f *fakeEmployeeRepository) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepository) FindAllActive(ctx context.Context) ([]employee.Employee, error) {
	if f.findAllActiveFn != nil {
		return f.findAllActiveFn(ctx)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByEmployeeID(ctx context.Context, employeeID string) (*employee.Employee, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	if f.findByEmailFn != nil {
		return f.findByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) CountActive(ctx context.Context) (int64, error) {
	if f.countActiveFn != nil {
		return f.countActiveFn(ctx)
	}
	return 0, nil
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, emp *employee.Employee) error {
	return nil
}
func (f *fakeEmployeeRepository) Delete(ctx context.Context, employeeID string) (int64, error) {
	return 0, nil
}

func setupAnalyticsService() (analytics.Service, *fakePayrollRepository, *fakeEmployeeRepository) {
	payrolls := &fakePayrollRepository{}
	employees := &fakeEmployeeRepository{}
	svc := analytics.NewService(payrolls, employees, nil)
	return svc, payrolls, employees
}

func TestAnalyticsService_Dashboard_UnknownRole(t *testing.T) {
	svc, _, _ := setupAnalyticsService()

	_, err := svc.Dashboard(context.Background(), "contractor", "x@example.com")
	assert.ErrorIs(t, err, analyticserrors.ErrUnknownRole)
}

func TestAnalyticsService_Dashboard_OrgView(t *testing.T) {
	svc, payrolls, employees := setupAnalyticsService()

	employees.countActiveFn = func(ctx context.Context) (int64, error) { return 3, nil }
	employees.findAllActiveFn = func(ctx context.Context) ([]employee.Employee, error) {
		return []employee.Employee{
			{EmployeeID: "EMP-001", Department: "Engineering"},
			{EmployeeID: "EMP-002", Department: "Engineering"},
			{EmployeeID: "EMP-003", Department: "Finance"},
		}, nil
	}
	payrolls.countFn = func(ctx context.Context) (int64, error) { return 42, nil }
	payrolls.findByPeriodFn = func(ctx context.Context, month string, year int) ([]payroll.PayrollRecord, error) {
		assert.Len(t, month, 2)
		return []payroll.PayrollRecord{
			{NetSalary: 3753.754, OvertimePay: 375.001},
			{NetSalary: 4250.0, OvertimePay: 0},
		}, nil
	}

	resp, err := svc.Dashboard(context.Background(), domain.RoleHR, "hr@example.com")
	assert.NoError(t, err)

	assert.Equal(t, domain.RoleHR, resp.Role)
	assert.Equal(t, int64(3), resp.TotalEmployees)
	assert.Equal(t, int64(42), resp.TotalPayrollRecords)
	assert.Equal(t, 8003.75, resp.MonthlyPayrollCost)
	assert.Equal(t, 375.00, resp.TotalOvertimePay)
	assert.Equal(t, map[string]int{"Engineering": 2, "Finance": 1}, resp.DepartmentDistribution)
}

func TestAnalyticsService_Dashboard_SelfView(t *testing.T) {
	svc, payrolls, employees := setupAnalyticsService()

	employees.findByEmailFn = func(ctx context.Context, email string) (*employee.Employee, error) {
		return &employee.Employee{EmployeeID: "EMP-001", Department: "Finance", Email: email}, nil
	}

	now := time.Now().UTC()
	payrolls.findByEmployeeFn = func(ctx context.Context, employeeID string) ([]payroll.PayrollRecord, error) {
		return []payroll.PayrollRecord{
			{EmployeeID: employeeID, Month: "01", Year: 2020, NetSalary: 3000, OvertimePay: 80},
			{EmployeeID: employeeID, Month: now.Format("01"), Year: now.Year(), NetSalary: 3500, OvertimePay: 120},
		}, nil
	}

	resp, err := svc.Dashboard(context.Background(), domain.RoleEmployee, "dana@example.com")
	assert.NoError(t, err)

	assert.Equal(t, int64(1), resp.TotalEmployees)
	assert.Equal(t, int64(2), resp.TotalPayrollRecords)
	assert.Equal(t, 6500.0, resp.MonthlyPayrollCost)
	assert.Equal(t, 200.0, resp.TotalOvertimePay)
	assert.Equal(t, map[string]int{"Finance": 1}, resp.DepartmentDistribution)
}

// The self view totals the whole payroll history, so a record from years ago
// still counts even when nothing exists for the current month.
func TestAnalyticsService_Dashboard_SelfView_SumsAllHistory(t *testing.T) {
	svc, payrolls, employees := setupAnalyticsService()

	employees.findByEmailFn = func(ctx context.Context, email string) (*employee.Employee, error) {
		return &employee.Employee{EmployeeID: "EMP-001", Department: "Finance", Email: email}, nil
	}
	payrolls.findByEmployeeFn = func(ctx context.Context, employeeID string) ([]payroll.PayrollRecord, error) {
		return []payroll.PayrollRecord{
			{EmployeeID: employeeID, Month: "01", Year: 2020, NetSalary: 3000, OvertimePay: 150},
		}, nil
	}

	resp, err := svc.Dashboard(context.Background(), domain.RoleEmployee, "dana@example.com")
	assert.NoError(t, err)

	assert.Equal(t, 3000.0, resp.MonthlyPayrollCost)
	assert.Equal(t, 150.0, resp.TotalOvertimePay)
}

func TestAnalyticsService_Dashboard_SelfView_NoDirectoryRow(t *testing.T) {
	svc, _, _ := setupAnalyticsService()

	_, err := svc.Dashboard(context.Background(), domain.RoleEmployee, "ghost@example.com")
	assert.ErrorIs(t, err, analyticserrors.ErrEmployeeRecordNotFound)
}

func TestAnalyticsService_Forecast_SoftFailsOnThinHistory(t *testing.T) {
	svc, payrolls, _ := setupAnalyticsService()

	payrolls.findAllFn = func(ctx context.Context) ([]payroll.PayrollRecord, error) {
		return []payroll.PayrollRecord{record("01", 2026, 1000)}, nil
	}

	resp, err := svc.Forecast(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, resp.Forecast)
	assert.NotEmpty(t, resp.Message)
}

func TestAnalyticsService_Forecast_FitsMinimumHistory(t *testing.T) {
	svc, payrolls, _ := setupAnalyticsService()

	payrolls.findAllFn = func(ctx context.Context) ([]payroll.PayrollRecord, error) {
		return []payroll.PayrollRecord{
			record("01", 2026, 5000),
			record("02", 2026, 5100),
			record("03", 2026, 5200),
			record("04", 2026, 5300),
			record("05", 2026, 5400),
		}, nil
	}

	resp, err := svc.Forecast(context.Background())
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Forecast)
	assert.Empty(t, resp.Message)
}

func TestAnalyticsService_Forecast_ReturnsWindow(t *testing.T) {
	svc, payrolls, _ := setupAnalyticsService()

	payrolls.findAllFn = func(ctx context.Context) ([]payroll.PayrollRecord, error) {
		records := make([]payroll.PayrollRecord, 0, 24)
		for i := 0; i < 24; i++ {
			m := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, i, 0)
			records = append(records, record(fmt.Sprintf("%02d", int(m.Month())), m.Year(), 10000+float64(i)*100))
		}
		return records, nil
	}

	resp, err := svc.Forecast(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, resp.Message)
	assert.Len(t, resp.Forecast, 12)

	for _, p := range resp.Forecast {
		assert.Len(t, p.Month, 2)
		assert.GreaterOrEqual(t, p.Predicted, 0.0)
	}
}

func TestAnalyticsService_Anomalies_SoftFailsOnThinHistory(t *testing.T) {
	svc, payrolls, _ := setupAnalyticsService()

	payrolls.findAllFn = func(ctx context.Context) ([]payroll.PayrollRecord, error) {
		return []payroll.PayrollRecord{record("01", 2026, 1000)}, nil
	}

	resp, err := svc.Anomalies(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, resp.Anomalies)
	assert.NotEmpty(t, resp.Message)
}
