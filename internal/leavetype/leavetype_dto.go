package leavetype

type CreateLeaveTypeRequest struct {
	Name              string `json:"name" binding:"required,max=50"`
	DefaultAllocation int    `json:"default_allocation" binding:"min=0,max=366"`
}

type SetPolicyRequest struct {
	DaysPerYear int `json:"days_per_year" binding:"min=0,max=366"`
}

type LeaveTypeResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	DefaultAllocation int    `json:"default_allocation"`
	// DaysPerYear is the allocation effective for the requesting company.
	DaysPerYear int `json:"days_per_year"`
}
