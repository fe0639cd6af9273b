package models

// Job represents a position posted by a company.
// Equity is kept in the database's NUMERIC text form, e.g. "0.03".
type Job struct {
	ID            int     `json:"id" db:"id"`
	Title         string  `json:"title" db:"title"`
	Salary        *int    `json:"salary" db:"salary"`
	Equity        *string `json:"equity" db:"equity"`
	CompanyHandle string  `json:"companyHandle" db:"company_handle"`
}

// TableName returns the table name for the Job model
func (Job) TableName() string {
	return "jobs"
}

// JobDetail is a job together with the company that posted it
type JobDetail struct {
	ID      int     `json:"id" db:"id"`
	Title   string  `json:"title" db:"title"`
	Salary  *int    `json:"salary" db:"salary"`
	Equity  *string `json:"equity" db:"equity"`
	Company Company `json:"company" db:"company"`
}
