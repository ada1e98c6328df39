package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	analyticserrors "go-payroll/internal/analytics/errors"
	"go-payroll/internal/domain"
	"go-payroll/internal/employee"
	"go-payroll/internal/payroll"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/money"
)

const (
	forecastCacheKey = "analytics:forecast"
	forecastCacheTTL = 5 * time.Minute

	insufficientDataMessage = "Not enough payroll history for analytics"
	degenerateFitMessage    = "Payroll history is too irregular to forecast"
)

//go:generate mockgen -source=analytics_service.go -destination=mock/analytics_service_mock.go -package=mock
type Service interface {
	Dashboard(ctx context.Context, role, email string) (DashboardResponse, error)
	Forecast(ctx context.Context) (ForecastResponse, error)
	Anomalies(ctx context.Context) (AnomalyResponse, error)
}

type service struct {
	payrolls  payroll.Repository
	employees employee.Repository
	rdb       *redis.Client
	sf        singleflight.Group
	logger    *zap.Logger
}

func NewService(
	payrolls payroll.Repository,
	employees employee.Repository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("analytics.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("analytics.service")
	}
	return &service{
		payrolls:  payrolls,
		employees: employees,
		rdb:       rdb,
		logger:    l,
	}
}

// Dashboard branches on role: admin and hr get the org-wide view, employees
// get a view scoped to their own records. Any other role is refused.
func (s *service) Dashboard(ctx context.Context, role, email string) (DashboardResponse, error) {
	switch role {
	case domain.RoleAdmin, domain.RoleHR:
		return s.orgDashboard(ctx, role)
	case domain.RoleEmployee:
		return s.selfDashboard(ctx, email)
	default:
		return DashboardResponse{}, analyticserrors.ErrUnknownRole
	}
}

func (s *service) orgDashboard(ctx context.Context, role string) (DashboardResponse, error) {
	month, year := currentPeriod()

	activeCount, err := s.employees.CountActive(ctx)
	if err != nil {
		return DashboardResponse{}, err
	}
	recordCount, err := s.payrolls.Count(ctx)
	if err != nil {
		return DashboardResponse{}, err
	}
	current, err := s.payrolls.FindByPeriod(ctx, month, year)
	if err != nil {
		return DashboardResponse{}, err
	}
	active, err := s.employees.FindAllActive(ctx)
	if err != nil {
		return DashboardResponse{}, err
	}

	netCost, overtime := sumNetAndOvertime(current)
	departments := make(map[string]int, 8)
	for _, e := range active {
		departments[e.Department]++
	}

	return DashboardResponse{
		Role:                   role,
		TotalEmployees:         activeCount,
		TotalPayrollRecords:    recordCount,
		CurrentMonth:           month,
		CurrentYear:            year,
		MonthlyPayrollCost:     money.Round2(netCost),
		TotalOvertimePay:       money.Round2(overtime),
		DepartmentDistribution: departments,
	}, nil
}

func (s *service) selfDashboard(ctx context.Context, email string) (DashboardResponse, error) {
	emp, err := s.employees.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DashboardResponse{}, analyticserrors.ErrEmployeeRecordNotFound
		}
		return DashboardResponse{}, err
	}

	records, err := s.payrolls.FindByEmployee(ctx, emp.EmployeeID)
	if err != nil {
		return DashboardResponse{}, err
	}

	// Unlike the org view, the self view totals the employee's entire payroll
	// history, not just the current month.
	netCost, overtime := sumNetAndOvertime(records)

	month, year := currentPeriod()
	return DashboardResponse{
		Role:                   domain.RoleEmployee,
		TotalEmployees:         1,
		TotalPayrollRecords:    int64(len(records)),
		CurrentMonth:           month,
		CurrentYear:            year,
		MonthlyPayrollCost:     money.Round2(netCost),
		TotalOvertimePay:       money.Round2(overtime),
		DepartmentDistribution: map[string]int{emp.Department: 1},
	}, nil
}

// Forecast serves from Redis when fresh, collapses concurrent misses through
// singleflight, and degrades to an empty forecast with a message on thin or
// degenerate history. It never returns an analytics failure to the caller.
func (s *service) Forecast(ctx context.Context) (ForecastResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, forecastCacheKey).Result(); err == nil {
			var resp ForecastResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(forecastCacheKey, func() (any, error) {
		return s.computeForecast(ctx)
	})
	if err != nil {
		return ForecastResponse{}, err
	}
	resp := v.(ForecastResponse)

	if s.rdb != nil {
		if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
			if err := s.rdb.Set(ctx, forecastCacheKey, payload, forecastCacheTTL).Err(); err != nil {
				s.logger.Warn("forecast cache write failed", zap.Error(err))
			}
		}
	}

	return resp, nil
}

func (s *service) computeForecast(ctx context.Context) (ForecastResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	records, err := s.payrolls.FindAll(ctx)
	if err != nil {
		return ForecastResponse{}, err
	}

	series, err := AggregateMonthly(records)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == apperror.CodeInsufficientData {
			s.logger.Info("forecast skipped, insufficient history",
				zap.String("request_id", rid),
				zap.Int("records", len(records)),
			)
			return ForecastResponse{Forecast: []ForecastPointResponse{}, Message: insufficientDataMessage}, nil
		}
		return ForecastResponse{}, err
	}

	points, err := Forecast(series)
	if err != nil {
		s.logger.Warn("forecast fit degenerated",
			zap.String("request_id", rid),
			zap.Int("series_length", len(series)),
			zap.Error(err),
		)
		return ForecastResponse{Forecast: []ForecastPointResponse{}, Message: degenerateFitMessage}, nil
	}

	return ForecastResponse{Forecast: mapForecastPoints(points)}, nil
}

// Anomalies soft-fails exactly like Forecast: thin history yields an empty
// list plus a message, not an error.
func (s *service) Anomalies(ctx context.Context) (AnomalyResponse, error) {
	records, err := s.payrolls.FindAll(ctx)
	if err != nil {
		return AnomalyResponse{}, err
	}

	flags, err := DetectAnomalies(records)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == apperror.CodeInsufficientData {
			return AnomalyResponse{Anomalies: []AnomalyFlagResponse{}, Message: insufficientDataMessage}, nil
		}
		return AnomalyResponse{}, err
	}

	return AnomalyResponse{Anomalies: mapAnomalyFlags(flags)}, nil
}

func currentPeriod() (string, int) {
	now := time.Now().UTC()
	return now.Format("01"), now.Year()
}

func sumNetAndOvertime(records []payroll.PayrollRecord) (netCost, overtime float64) {
	for _, r := range records {
		netCost += r.NetSalary
		overtime += r.OvertimePay
	}
	return netCost, overtime
}
