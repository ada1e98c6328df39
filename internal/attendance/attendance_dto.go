package attendance

type CreateAttendanceRequest struct {
	EmployeeID    string  `json:"employee_id" binding:"required"`
	Date          string  `json:"date" binding:"required"`
	HoursWorked   float64 `json:"hours_worked" binding:"gte=0"`
	OvertimeHours float64 `json:"overtime_hours" binding:"gte=0"`
	Leaves        int     `json:"leaves" binding:"gte=0"`
}

type AttendanceResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	Date          string  `json:"date"`
	HoursWorked   float64 `json:"hours_worked"`
	OvertimeHours float64 `json:"overtime_hours"`
	Leaves        int     `json:"leaves"`
}

func mapToResponse(a AttendanceLog) AttendanceResponse {
	return AttendanceResponse{
		ID:            a.ID.String(),
		EmployeeID:    a.EmployeeID,
		Date:          a.Date.Format("2006-01-02"),
		HoursWorked:   a.HoursWorked,
		OvertimeHours: a.OvertimeHours,
		Leaves:        a.Leaves,
	}
}

func mapToListResponse(logs []AttendanceLog) []AttendanceResponse {
	resp := make([]AttendanceResponse, len(logs))
	for i, a := range logs {
		resp[i] = mapToResponse(a)
	}
	return resp
}
