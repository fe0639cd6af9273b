package models

// Application records that a user applied to a job
type Application struct {
	Username string `json:"username" db:"username"`
	JobID    int    `json:"jobId" db:"job_id"`
}

// TableName returns the table name for the Application model
func (Application) TableName() string {
	return "applications"
}
