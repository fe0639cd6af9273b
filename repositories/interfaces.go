package repositories

import (
	"context"

	"github.com/upb/jobly/internal/sqlbuilder"
	"github.com/upb/jobly/models"
)

// TransactionManager manages database transactions
type TransactionManager interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) (Transaction, error)

	// InTransaction executes a function within a transaction
	// Automatically commits if function succeeds, rolls back on error
	InTransaction(ctx context.Context, fn func(ctx context.Context, tx Transaction) error) error
}

// Transaction represents a database transaction
type Transaction interface {
	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Context returns a context carrying the transaction.
	// Repositories called with it run inside the transaction.
	Context() context.Context
}

// CompanyRepository handles company data operations
type CompanyRepository interface {
	// Create inserts a company. A taken handle is a conflict.
	Create(ctx context.Context, company *models.Company) error

	// FindAll lists every company ordered by name
	FindAll(ctx context.Context) ([]*models.Company, error)

	// FindFiltered lists companies matching filters (see sqlbuilder.CompanyFilters)
	FindFiltered(ctx context.Context, filters sqlbuilder.Filters) ([]*models.Company, error)

	// GetByHandle retrieves a company and its jobs
	GetByHandle(ctx context.Context, handle string) (*models.CompanyDetail, error)

	// Update applies a partial update and returns the updated company
	Update(ctx context.Context, handle string, update sqlbuilder.Update) (*models.Company, error)

	// Remove deletes a company and, by cascade, its jobs
	Remove(ctx context.Context, handle string) error
}

// JobRepository handles job data operations
type JobRepository interface {
	// Create inserts a job and fills in its generated ID
	Create(ctx context.Context, job *models.Job) error

	// FindAll lists every job ordered by title
	FindAll(ctx context.Context) ([]*models.Job, error)

	// FindFiltered lists jobs matching filters (see sqlbuilder.JobFilters)
	FindFiltered(ctx context.Context, filters sqlbuilder.Filters) ([]*models.Job, error)

	// GetByID retrieves a job and its company
	GetByID(ctx context.Context, id int) (*models.JobDetail, error)

	// Update applies a partial update and returns the updated job
	Update(ctx context.Context, id int, update sqlbuilder.Update) (*models.Job, error)

	// Remove deletes a job
	Remove(ctx context.Context, id int) error
}

// UserRepository handles user data operations
type UserRepository interface {
	// Create inserts a user with an already hashed password
	Create(ctx context.Context, user *models.User, passwordHash string) error

	// FindAll lists every user ordered by username
	FindAll(ctx context.Context) ([]*models.User, error)

	// GetByUsername retrieves a user and the ids of the jobs they applied to
	GetByUsername(ctx context.Context, username string) (*models.UserDetail, error)

	// GetCredentials retrieves the password hash used to check a login
	GetCredentials(ctx context.Context, username string) (*models.Credentials, error)

	// ExistsByUsername reports whether the username is taken
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// Update applies a partial update and returns the updated user.
	// A password field must already be hashed.
	Update(ctx context.Context, username string, update sqlbuilder.Update) (*models.User, error)

	// Remove deletes a user
	Remove(ctx context.Context, username string) error

	// ApplyToJob records an application of username to jobID
	ApplyToJob(ctx context.Context, username string, jobID int) (*models.Application, error)
}

// Repositories holds all repository instances
type Repositories struct {
	Companies CompanyRepository
	Jobs      JobRepository
	Users     UserRepository
}
