package models

// Company represents an employer that posts jobs
type Company struct {
	Handle       string  `json:"handle" db:"handle"`
	Name         string  `json:"name" db:"name"`
	Description  string  `json:"description" db:"description"`
	NumEmployees *int    `json:"numEmployees" db:"num_employees"`
	LogoURL      *string `json:"logoUrl" db:"logo_url"`
}

// TableName returns the table name for the Company model
func (Company) TableName() string {
	return "companies"
}

// CompanyDetail is a company together with its jobs
type CompanyDetail struct {
	Company
	Jobs []Job `json:"jobs"`
}
