package events

import "time"

const EmployeeCreatedTopic = "hr.employee.lifecycle.v1"

type EmployeeCreatedEvent struct {
	EventType   string    `json:"event_type"`
	EmployeeID  string    `json:"employee_id"`
	Name        string    `json:"name"`
	Department  string    `json:"department"`
	Designation string    `json:"designation"`
	OccurredAt  time.Time `json:"occurred_at"`
}
