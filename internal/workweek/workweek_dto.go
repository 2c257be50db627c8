package workweek

type PutWorkWeekRequest struct {
	WorkingDays []int `json:"working_days" binding:"required,min=1,max=7,dive,min=1,max=7"`
}

type WorkWeekResponse struct {
	CompanyID   string `json:"company_id"`
	WorkingDays []int  `json:"working_days"`
}
