package payroll

import (
	"time"

	"github.com/google/uuid"
)

const StatusProcessed = "processed"

// PayrollRecord is immutable once created: there is no update or delete path.
// The unique index on (employee_id, month, year) is the idempotency contract:
// a concurrent duplicate insert fails at the storage layer, not via a prior
// read.
type PayrollRecord struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID   string    `gorm:"type:varchar(60);not null;uniqueIndex:uq_payroll_employee_period"`
	EmployeeName string    `gorm:"type:varchar(255);not null"`
	Month        string    `gorm:"type:varchar(2);not null;uniqueIndex:uq_payroll_employee_period"`
	Year         int       `gorm:"not null;uniqueIndex:uq_payroll_employee_period"`
	BaseSalary   float64   `gorm:"type:numeric(14,2);not null"`
	OvertimePay  float64   `gorm:"type:numeric(14,2);not null"`
	Bonuses      float64   `gorm:"type:numeric(14,2);not null"`
	Deductions   float64   `gorm:"type:numeric(14,2);not null"`
	Tax          float64   `gorm:"type:numeric(14,2);not null"`
	NetSalary    float64   `gorm:"type:numeric(14,2);not null"`
	Status       string    `gorm:"type:varchar(20);not null;default:'processed'"`
	CreatedAt    time.Time
}

func (PayrollRecord) TableName() string {
	return "payroll_records"
}
