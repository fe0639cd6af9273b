package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/upb/jobly/internal/sqlbuilder"
	"github.com/upb/jobly/models"
	"github.com/upb/jobly/repositories"
	"github.com/upb/jobly/services"
	"go.uber.org/zap"
)

const companyColumns = `handle, name, description, num_employees, logo_url`

// companyUpdateColumns lists the updatable fields and their columns
var companyUpdateColumns = map[string]string{
	"name":         "name",
	"description":  "description",
	"numEmployees": "num_employees",
	"logoUrl":      "logo_url",
}

// CompanyRepository implements the repositories.CompanyRepository interface
type CompanyRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *DB, logger *zap.Logger) repositories.CompanyRepository {
	return &CompanyRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new company
func (r *CompanyRepository) Create(ctx context.Context, company *models.Company) error {
	query := `
		INSERT INTO companies (handle, name, description, num_employees, logo_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + companyColumns

	executor := GetExecutor(ctx, r.db)
	err := sqlx.GetContext(ctx, executor, company, query,
		company.Handle,
		company.Name,
		company.Description,
		company.NumEmployees,
		company.LogoURL,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return services.ErrDuplicateCompany.
				WithMessage(fmt.Sprintf("Duplicate company: %s", company.Handle)).
				WithDetail("constraint", violatedConstraint(err))
		}
		return services.WrapInternal("failed to create company", err)
	}

	r.logger.Debug("company created", zap.String("handle", company.Handle))
	return nil
}

// FindAll lists all companies ordered by name
func (r *CompanyRepository) FindAll(ctx context.Context) ([]*models.Company, error) {
	return r.find(ctx, sqlbuilder.Fragment{})
}

// FindFiltered lists the companies matching filters
func (r *CompanyRepository) FindFiltered(ctx context.Context, filters sqlbuilder.Filters) ([]*models.Company, error) {
	where, err := sqlbuilder.BuildFilterClause(sqlbuilder.CompanyFilters, filters)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, where)
}

func (r *CompanyRepository) find(ctx context.Context, where sqlbuilder.Fragment) ([]*models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies` + where.Where() + ` ORDER BY name`

	executor := GetExecutor(ctx, r.db)
	companies := []*models.Company{}
	if err := sqlx.SelectContext(ctx, executor, &companies, query, where.Values...); err != nil {
		return nil, services.WrapInternal("failed to list companies", err)
	}

	return companies, nil
}

// GetByHandle retrieves a company with its jobs
func (r *CompanyRepository) GetByHandle(ctx context.Context, handle string) (*models.CompanyDetail, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE handle = $1`

	executor := GetExecutor(ctx, r.db)
	detail := &models.CompanyDetail{Jobs: []models.Job{}}

	if err := sqlx.GetContext(ctx, executor, &detail.Company, query, handle); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, companyNotFound(handle)
		}
		return nil, services.WrapInternal("failed to get company", err)
	}

	jobsQuery := `
		SELECT id, title, salary, equity, company_handle
		FROM jobs
		WHERE company_handle = $1
		ORDER BY id
	`
	if err := sqlx.SelectContext(ctx, executor, &detail.Jobs, jobsQuery, handle); err != nil {
		return nil, services.WrapInternal("failed to get company jobs", err)
	}

	return detail, nil
}

// Update applies a partial update to a company
func (r *CompanyRepository) Update(ctx context.Context, handle string, update sqlbuilder.Update) (*models.Company, error) {
	if err := checkUpdatable(update, companyUpdateColumns); err != nil {
		return nil, err
	}
	set, err := sqlbuilder.BuildSetClause(update, companyUpdateColumns)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`UPDATE companies SET %s WHERE handle = $%d RETURNING %s`,
		set.Clause, set.NextPlaceholder(), companyColumns)
	args := append(set.Values, handle)

	executor := GetExecutor(ctx, r.db)
	company := &models.Company{}
	if err := sqlx.GetContext(ctx, executor, company, query, args...); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, companyNotFound(handle)
		case isUniqueViolation(err):
			return nil, services.ErrDuplicateCompany.WithMessage("Duplicate company name")
		}
		return nil, services.WrapInternal("failed to update company", err)
	}

	r.logger.Debug("company updated",
		zap.String("handle", handle),
		zap.Strings("fields", update.Names()))
	return company, nil
}

// Remove deletes a company
func (r *CompanyRepository) Remove(ctx context.Context, handle string) error {
	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, `DELETE FROM companies WHERE handle = $1`, handle)
	if err != nil {
		return services.WrapInternal("failed to delete company", err)
	}

	if err := expectAffected(result, companyNotFound(handle)); err != nil {
		return err
	}

	r.logger.Debug("company deleted", zap.String("handle", handle))
	return nil
}

func companyNotFound(handle string) error {
	return services.ErrCompanyNotFound.WithMessage(fmt.Sprintf("No company: %s", handle))
}

// checkUpdatable rejects fields outside the allowed column table
func checkUpdatable(update sqlbuilder.Update, columns map[string]string) error {
	for _, f := range update {
		if _, ok := columns[f.Name]; !ok {
			return services.ErrInvalidInput.
				WithMessage(fmt.Sprintf("field %q cannot be updated", f.Name)).
				WithDetail("field", f.Name)
		}
	}
	return nil
}

// expectAffected returns notFound when result touched no rows
func expectAffected(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return services.WrapInternal("failed to get rows affected", err)
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
