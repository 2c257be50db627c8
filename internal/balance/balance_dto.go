package balance

type AdjustBalanceRequest struct {
	AvailableDays string `json:"available_days" binding:"required"`
}

type BalanceResponse struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employee_id"`
	LeaveTypeID   string `json:"leave_type_id"`
	LeaveTypeName string `json:"leave_type_name,omitempty"`
	AvailableDays string `json:"available_days"`
}

func mapToResponse(b LeaveBalance, typeName string) BalanceResponse {
	return BalanceResponse{
		ID:            b.ID.String(),
		EmployeeID:    b.EmployeeID.String(),
		LeaveTypeID:   b.LeaveTypeID.String(),
		LeaveTypeName: typeName,
		AvailableDays: b.AvailableDays.StringFixed(2),
	}
}
