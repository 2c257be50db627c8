package assistant

type DraftEmailRequest struct {
	LeaveTypeName string `json:"leave_type_name" binding:"required,max=50"`
	StartDate     string `json:"start_date" binding:"required"`
	EndDate       string `json:"end_date" binding:"required"`
	Reason        string `json:"reason" binding:"max=2000"`
	EmployeeName  string `json:"employee_name" binding:"required,max=100"`
	ManagerName   string `json:"manager_name" binding:"max=100"`
}

type DraftEmailResponse struct {
	Email string `json:"email"`
	// Source is "assistant" when the model produced the draft, "template"
	// when the deterministic fallback did.
	Source string `json:"source"`
}
