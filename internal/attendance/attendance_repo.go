package attendance

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *AttendanceLog) error
	FindAll(ctx context.Context) ([]AttendanceLog, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]AttendanceLog, error)
	FindByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]AttendanceLog, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, a *AttendanceLog) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindAll(ctx context.Context) ([]AttendanceLog, error) {
	var rows []AttendanceLog
	err := r.db.WithContext(ctx).
		Order("date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]AttendanceLog, error) {
	var rows []AttendanceLog
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("date DESC").
		Find(&rows).Error
	return rows, err
}

// FindByEmployeeAndRange matches [from, to); to is the first excluded day.
func (r *repository) FindByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]AttendanceLog, error) {
	var rows []AttendanceLog
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("date >= ? AND date < ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("date ASC").
		Find(&rows).Error
	return rows, err
}
