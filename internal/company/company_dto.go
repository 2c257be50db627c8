package company

type RegisterCompanyRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Domain   string `json:"domain" binding:"required,fqdn"`
	Location string `json:"location" binding:"max=100"`
}

type CompanyResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Domain       string `json:"domain"`
	Location     string `json:"location"`
	Verified     bool   `json:"verified"`
	RegisteredBy string `json:"registered_by"`
}
