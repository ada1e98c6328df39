package events

import "time"

const PayrollProcessedTopic = "payroll.lifecycle.v1"

// PayrollProcessedEvent asks the mirror consumer to upsert the employee and
// payroll nodes in the graph store after the primary write has committed.
type PayrollProcessedEvent struct {
	EventType    string    `json:"event_type"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Month        string    `json:"month"`
	Year         int       `json:"year"`
	BaseSalary   float64   `json:"base_salary"`
	Bonuses      float64   `json:"bonuses"`
	Deductions   float64   `json:"deductions"`
	Tax          float64   `json:"tax"`
	NetSalary    float64   `json:"net_salary"`
	OccurredAt   time.Time `json:"occurred_at"`
}
