package employee

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Employee is keyed by the business employee id, not the row id. Payroll and
// attendance reference EmployeeID so their history stays valid after a delete.
type Employee struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID  string    `gorm:"type:varchar(60);not null;uniqueIndex:uq_employee_business_id"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Email       string    `gorm:"type:varchar(255);not null"`
	Department  string    `gorm:"type:varchar(120);not null;index"`
	Designation string    `gorm:"type:varchar(120);not null"`
	BaseSalary  float64   `gorm:"type:numeric(14,2);not null"`
	JoiningDate time.Time `gorm:"type:date;not null"`
	Status      string    `gorm:"type:varchar(20);not null;default:'active';index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Employee) TableName() string {
	return "employees"
}
