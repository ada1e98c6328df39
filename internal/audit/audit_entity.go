package audit

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Entry is append-only: exactly one row per successful payroll generation,
// never updated or deleted.
type Entry struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Action      string         `gorm:"type:varchar(60);not null;index"`
	EmployeeID  string         `gorm:"type:varchar(60);not null;index"`
	PerformedBy string         `gorm:"type:varchar(255);not null"`
	Details     datatypes.JSON `gorm:"type:jsonb"`
	Timestamp   time.Time      `gorm:"not null;index"`
}

func (Entry) TableName() string {
	return "audit_trail"
}
