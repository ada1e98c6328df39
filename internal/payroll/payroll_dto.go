package payroll

import "time"

type GeneratePayrollRequest struct {
	EmployeeID string  `json:"employee_id" binding:"required"`
	Month      string  `json:"month" binding:"required"`
	Year       int     `json:"year" binding:"required"`
	Bonuses    float64 `json:"bonuses" binding:"gte=0"`
	Deductions float64 `json:"deductions" binding:"gte=0"`
}

type PayrollResponse struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Month        string    `json:"month"`
	Year         int       `json:"year"`
	BaseSalary   float64   `json:"base_salary"`
	OvertimePay  float64   `json:"overtime_pay"`
	Bonuses      float64   `json:"bonuses"`
	Deductions   float64   `json:"deductions"`
	Tax          float64   `json:"tax"`
	NetSalary    float64   `json:"net_salary"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

func mapToResponse(p PayrollRecord) PayrollResponse {
	return PayrollResponse{
		ID:           p.ID.String(),
		EmployeeID:   p.EmployeeID,
		EmployeeName: p.EmployeeName,
		Month:        p.Month,
		Year:         p.Year,
		BaseSalary:   p.BaseSalary,
		OvertimePay:  p.OvertimePay,
		Bonuses:      p.Bonuses,
		Deductions:   p.Deductions,
		Tax:          p.Tax,
		NetSalary:    p.NetSalary,
		Status:       p.Status,
		CreatedAt:    p.CreatedAt,
	}
}

func mapToListResponse(records []PayrollRecord) []PayrollResponse {
	resp := make([]PayrollResponse, len(records))
	for i, p := range records {
		resp[i] = mapToResponse(p)
	}
	return resp
}
