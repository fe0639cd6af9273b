// Package mocks holds testify mocks of the repository interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/upb/jobly/internal/sqlbuilder"
	"github.com/upb/jobly/models"
	"github.com/upb/jobly/repositories"
)

// CompanyRepository is a mock implementation of repositories.CompanyRepository
type CompanyRepository struct {
	mock.Mock
}

func (m *CompanyRepository) Create(ctx context.Context, company *models.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *CompanyRepository) FindAll(ctx context.Context) ([]*models.Company, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*models.Company), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CompanyRepository) FindFiltered(ctx context.Context, filters sqlbuilder.Filters) ([]*models.Company, error) {
	args := m.Called(ctx, filters)
	if v := args.Get(0); v != nil {
		return v.([]*models.Company), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CompanyRepository) GetByHandle(ctx context.Context, handle string) (*models.CompanyDetail, error) {
	args := m.Called(ctx, handle)
	if v := args.Get(0); v != nil {
		return v.(*models.CompanyDetail), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CompanyRepository) Update(ctx context.Context, handle string, update sqlbuilder.Update) (*models.Company, error) {
	args := m.Called(ctx, handle, update)
	if v := args.Get(0); v != nil {
		return v.(*models.Company), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CompanyRepository) Remove(ctx context.Context, handle string) error {
	args := m.Called(ctx, handle)
	return args.Error(0)
}

// JobRepository is a mock implementation of repositories.JobRepository
type JobRepository struct {
	mock.Mock
}

func (m *JobRepository) Create(ctx context.Context, job *models.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *JobRepository) FindAll(ctx context.Context) ([]*models.Job, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*models.Job), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *JobRepository) FindFiltered(ctx context.Context, filters sqlbuilder.Filters) ([]*models.Job, error) {
	args := m.Called(ctx, filters)
	if v := args.Get(0); v != nil {
		return v.([]*models.Job), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *JobRepository) GetByID(ctx context.Context, id int) (*models.JobDetail, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.JobDetail), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *JobRepository) Update(ctx context.Context, id int, update sqlbuilder.Update) (*models.Job, error) {
	args := m.Called(ctx, id, update)
	if v := args.Get(0); v != nil {
		return v.(*models.Job), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *JobRepository) Remove(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// UserRepository is a mock implementation of repositories.UserRepository
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *models.User, passwordHash string) error {
	args := m.Called(ctx, user, passwordHash)
	return args.Error(0)
}

func (m *UserRepository) FindAll(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) GetByUsername(ctx context.Context, username string) (*models.UserDetail, error) {
	args := m.Called(ctx, username)
	if v := args.Get(0); v != nil {
		return v.(*models.UserDetail), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) GetCredentials(ctx context.Context, username string) (*models.Credentials, error) {
	args := m.Called(ctx, username)
	if v := args.Get(0); v != nil {
		return v.(*models.Credentials), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepository) Update(ctx context.Context, username string, update sqlbuilder.Update) (*models.User, error) {
	args := m.Called(ctx, username, update)
	if v := args.Get(0); v != nil {
		return v.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) Remove(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

func (m *UserRepository) ApplyToJob(ctx context.Context, username string, jobID int) (*models.Application, error) {
	args := m.Called(ctx, username, jobID)
	if v := args.Get(0); v != nil {
		return v.(*models.Application), args.Error(1)
	}
	return nil, args.Error(1)
}

// TransactionManager is a mock implementation of repositories.TransactionManager.
// InTransaction runs fn against the transaction Begin returns.
type TransactionManager struct {
	mock.Mock
}

func (m *TransactionManager) Begin(ctx context.Context) (repositories.Transaction, error) {
	args := m.Called(ctx)
	if tx := args.Get(0); tx != nil {
		return tx.(repositories.Transaction), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TransactionManager) InTransaction(ctx context.Context, fn func(ctx context.Context, tx repositories.Transaction) error) error {
	return repositories.WithTransaction(ctx, m, fn)
}

// Transaction is a mock implementation of repositories.Transaction
type Transaction struct {
	mock.Mock
}

func (m *Transaction) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *Transaction) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *Transaction) Context() context.Context {
	return context.Background()
}

var (
	_ repositories.CompanyRepository  = (*CompanyRepository)(nil)
	_ repositories.JobRepository      = (*JobRepository)(nil)
	_ repositories.UserRepository     = (*UserRepository)(nil)
	_ repositories.TransactionManager = (*TransactionManager)(nil)
	_ repositories.Transaction        = (*Transaction)(nil)
)
