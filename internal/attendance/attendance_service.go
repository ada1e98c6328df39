package attendance

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	attendanceerrors "go-payroll/internal/attendance/errors"
	"go-payroll/internal/employee"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error)
	GetAll(ctx context.Context, employeeID string) ([]AttendanceResponse, error)
}

type service struct {
	repo         Repository
	employeeRepo employee.Repository
	logger       *zap.Logger
}

func NewService(repo Repository, employeeRepo employee.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{repo: repo, employeeRepo: employeeRepo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidDateFormat
	}

	if _, err := s.employeeRepo.FindByEmployeeID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrEmployeeNotFound
		}
		return AttendanceResponse{}, err
	}

	log := &AttendanceLog{
		EmployeeID:    req.EmployeeID,
		Date:          date,
		HoursWorked:   req.HoursWorked,
		OvertimeHours: req.OvertimeHours,
		Leaves:        req.Leaves,
	}

	if err := s.repo.Create(ctx, log); err != nil {
		return AttendanceResponse{}, err
	}

	return mapToResponse(*log), nil
}

func (s *service) GetAll(ctx context.Context, employeeID string) ([]AttendanceResponse, error) {
	var (
		rows []AttendanceLog
		err  error
	)

	if employeeID != "" {
		rows, err = s.repo.FindByEmployee(ctx, employeeID)
	} else {
		rows, err = s.repo.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	return mapToListResponse(rows), nil
}
