package payroll

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *PayrollRecord) error
	FindByEmployeePeriod(ctx context.Context, employeeID, month string, year int) (*PayrollRecord, error)
	FindAll(ctx context.Context) ([]PayrollRecord, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]PayrollRecord, error)
	FindByPeriod(ctx context.Context, month string, year int) ([]PayrollRecord, error)
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

// Create joins the caller's transaction when one is attached, so the record,
// the audit entry and the mirror outbox row commit atomically.
func (r *repository) Create(ctx context.Context, p *PayrollRecord) error {
	if r.tx != nil {
		query := `
            INSERT INTO payroll_records (
                id, employee_id, employee_name, month, year,
                base_salary, overtime_pay, bonuses, deductions, tax, net_salary,
                status, created_at
            ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
        `
		_, err := r.tx.ExecContext(
			ctx, query,
			p.ID, p.EmployeeID, p.EmployeeName, p.Month, p.Year,
			p.BaseSalary, p.OvertimePay, p.Bonuses, p.Deductions, p.Tax, p.NetSalary,
			p.Status, p.CreatedAt,
		)
		return err
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindByEmployeePeriod(ctx context.Context, employeeID, month string, year int) (*PayrollRecord, error) {
	var p PayrollRecord
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("month = ?", month).
		Where("year = ?", year).
		First(&p).Error
	return &p, err
}

func (r *repository) FindAll(ctx context.Context) ([]PayrollRecord, error) {
	var records []PayrollRecord
	err := r.db.WithContext(ctx).
		Order("year ASC, month ASC").
		Find(&records).Error
	return records, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]PayrollRecord, error) {
	var records []PayrollRecord
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("year ASC, month ASC").
		Find(&records).Error
	return records, err
}

func (r *repository) FindByPeriod(ctx context.Context, month string, year int) ([]PayrollRecord, error) {
	var records []PayrollRecord
	err := r.db.WithContext(ctx).
		Where("month = ?", month).
		Where("year = ?", year).
		Find(&records).Error
	return records, err
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&PayrollRecord{}).
		Count(&count).Error
	return count, err
}
