package holiday

type CreateHolidayRequest struct {
	Date      string `json:"date" binding:"required"`
	Name      string `json:"name" binding:"required,max=100"`
	Optional  bool   `json:"optional"`
	Recurring bool   `json:"recurring"`
}

// ImportHolidaysRequest carries rows already extracted from an uploaded file.
// Parsing XLSX/PDF happens in the upload tooling, not here.
type ImportHolidaysRequest struct {
	Rows []HolidayRow `json:"rows" binding:"required,dive"`
}

type HolidayRow struct {
	Date string `json:"date" binding:"required"`
	Name string `json:"name" binding:"required,max=100"`
}

type ImportHolidaysResponse struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

type HolidayResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Date      string `json:"date"`
	Name      string `json:"name"`
	Optional  bool   `json:"optional"`
	Recurring bool   `json:"recurring"`
}
