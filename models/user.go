package models

// User represents an account that can log in and apply to jobs.
// The password hash is never part of this type.
type User struct {
	Username  string `json:"username" db:"username"`
	FirstName string `json:"firstName" db:"first_name"`
	LastName  string `json:"lastName" db:"last_name"`
	Email     string `json:"email" db:"email"`
	IsAdmin   bool   `json:"isAdmin" db:"is_admin"`
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// UserDetail is a user together with the ids of the jobs they applied to
type UserDetail struct {
	User
	Jobs []int `json:"jobs"`
}

// Credentials holds what is needed to check a login
type Credentials struct {
	Username     string `db:"username"`
	PasswordHash string `db:"password"`
	IsAdmin      bool   `db:"is_admin"`
}
