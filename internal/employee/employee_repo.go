package employee

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, emp *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindAllActive(ctx context.Context) ([]Employee, error)
	FindByEmployeeID(ctx context.Context, employeeID string) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	CountActive(ctx context.Context) (int64, error)
	Update(ctx context.Context, emp *Employee) error
	Delete(ctx context.Context, employeeID string) (int64, error)
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

// Create joins the caller's transaction when one is attached, so the outbox
// row for the graph mirror commits atomically with the employee.
func (r *repository) Create(ctx context.Context, emp *Employee) error {
	if r.tx != nil {
		query := `
            INSERT INTO employees (
                id, employee_id, name, email, department, designation,
                base_salary, joining_date, status, created_at, updated_at
            ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
        `
		_, err := r.tx.ExecContext(
			ctx, query,
			emp.ID, emp.EmployeeID, emp.Name, emp.Email, emp.Department,
			emp.Designation, emp.BaseSalary, emp.JoiningDate, emp.Status,
		)
		return err
	}
	return r.db.WithContext(ctx).Create(emp).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Order("employee_id ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindAllActive(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusActive).
		Order("employee_id ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindByEmployeeID(ctx context.Context, employeeID string) (*Employee, error) {
	var emp Employee
	err := r.db.WithContext(ctx).
		First(&emp, "employee_id = ?", employeeID).Error
	return &emp, err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	var emp Employee
	err := r.db.WithContext(ctx).
		First(&emp, "email = ?", email).Error
	return &emp, err
}

func (r *repository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("status = ?", StatusActive).
		Count(&count).Error
	return count, err
}

func (r *repository) Update(ctx context.Context, emp *Employee) error {
	return r.db.WithContext(ctx).Save(emp).Error
}

func (r *repository) Delete(ctx context.Context, employeeID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Delete(&Employee{}, "employee_id = ?", employeeID)
	return res.RowsAffected, res.Error
}
