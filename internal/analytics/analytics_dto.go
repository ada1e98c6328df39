package analytics

type DashboardResponse struct {
	Role                   string         `json:"role"`
	TotalEmployees         int64          `json:"total_employees"`
	TotalPayrollRecords    int64          `json:"total_payroll_records"`
	CurrentMonth           string         `json:"current_month"`
	CurrentYear            int            `json:"current_year"`
	MonthlyPayrollCost     float64        `json:"monthly_payroll_cost"`
	TotalOvertimePay       float64        `json:"total_overtime_pay"`
	DepartmentDistribution map[string]int `json:"department_distribution"`
}

type ForecastPointResponse struct {
	Month     string  `json:"month"`
	Year      int     `json:"year"`
	Predicted float64 `json:"predicted"`
	Lower     float64 `json:"lower"`
	Upper     float64 `json:"upper"`
}

// ForecastResponse carries Message instead of an error when the history is
// too thin or the fit degenerates. The HTTP status stays 200 either way.
type ForecastResponse struct {
	Forecast []ForecastPointResponse `json:"forecast"`
	Message  string                  `json:"message,omitempty"`
}

type AnomalyFlagResponse struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Month        string  `json:"month"`
	Year         int     `json:"year"`
	NetSalary    float64 `json:"net_salary"`
	AnomalyScore float64 `json:"anomaly_score"`
	DeviationPct float64 `json:"deviation_percent"`
	Reason       string  `json:"reason"`
}

type AnomalyResponse struct {
	Anomalies []AnomalyFlagResponse `json:"anomalies"`
	Message   string                `json:"message,omitempty"`
}

func mapForecastPoints(points []ForecastPoint) []ForecastPointResponse {
	resp := make([]ForecastPointResponse, len(points))
	for i, p := range points {
		resp[i] = ForecastPointResponse{
			Month:     p.Month.Format("01"),
			Year:      p.Month.Year(),
			Predicted: p.Predicted,
			Lower:     p.Lower,
			Upper:     p.Upper,
		}
	}
	return resp
}

func mapAnomalyFlags(flags []AnomalyFlag) []AnomalyFlagResponse {
	resp := make([]AnomalyFlagResponse, len(flags))
	for i, f := range flags {
		resp[i] = AnomalyFlagResponse{
			EmployeeID:   f.EmployeeID,
			EmployeeName: f.EmployeeName,
			Month:        f.Month,
			Year:         f.Year,
			NetSalary:    f.NetSalary,
			AnomalyScore: f.Score,
			DeviationPct: f.DeviationPct,
			Reason:       f.Reason,
		}
	}
	return resp
}
