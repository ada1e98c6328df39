package employee

type CreateEmployeeRequest struct {
	EmployeeID  string  `json:"employee_id" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Email       string  `json:"email" binding:"required,email"`
	Department  string  `json:"department" binding:"required"`
	Designation string  `json:"designation" binding:"required"`
	BaseSalary  float64 `json:"base_salary" binding:"required,gte=0"`
	JoiningDate string  `json:"joining_date" binding:"required"`
}

type UpdateEmployeeRequest struct {
	Name        string  `json:"name" binding:"required"`
	Email       string  `json:"email" binding:"required,email"`
	Department  string  `json:"department" binding:"required"`
	Designation string  `json:"designation" binding:"required"`
	BaseSalary  float64 `json:"base_salary" binding:"required,gte=0"`
	JoiningDate string  `json:"joining_date" binding:"required"`
	Status      string  `json:"status" binding:"required,oneof=active inactive"`
}

type EmployeeResponse struct {
	ID          string  `json:"id"`
	EmployeeID  string  `json:"employee_id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Department  string  `json:"department"`
	Designation string  `json:"designation"`
	BaseSalary  float64 `json:"base_salary"`
	JoiningDate string  `json:"joining_date"`
	Status      string  `json:"status"`
}

func mapToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:          e.ID.String(),
		EmployeeID:  e.EmployeeID,
		Name:        e.Name,
		Email:       e.Email,
		Department:  e.Department,
		Designation: e.Designation,
		BaseSalary:  e.BaseSalary,
		JoiningDate: e.JoiningDate.Format("2006-01-02"),
		Status:      e.Status,
	}
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		resp[i] = mapToResponse(e)
	}
	return resp
}
