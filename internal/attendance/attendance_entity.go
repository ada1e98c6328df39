package attendance

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceLog is one day of attendance facts for one employee. Uniqueness
// per (employee_id, date) is deliberately NOT enforced here: duplicates are
// accepted and the payroll generator flags them instead of rejecting input.
type AttendanceLog struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID    string    `gorm:"type:varchar(60);not null;index:idx_attendance_employee_date"`
	Date          time.Time `gorm:"type:date;not null;index:idx_attendance_employee_date"`
	HoursWorked   float64   `gorm:"type:numeric(5,2);not null;default:0"`
	OvertimeHours float64   `gorm:"type:numeric(5,2);not null;default:0"`
	Leaves        int       `gorm:"not null;default:0"`
	CreatedAt     time.Time
}

func (AttendanceLog) TableName() string {
	return "attendance_logs"
}
