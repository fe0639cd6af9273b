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

const jobColumns = `id, title, salary, equity, company_handle`

// jobUpdateColumns lists the updatable fields. A job cannot move to another company.
var jobUpdateColumns = map[string]string{
	"title":  "title",
	"salary": "salary",
	"equity": "equity",
}

// JobRepository implements the repositories.JobRepository interface
type JobRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *DB, logger *zap.Logger) repositories.JobRepository {
	return &JobRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new job
func (r *JobRepository) Create(ctx context.Context, job *models.Job) error {
	query := `
		INSERT INTO jobs (title, salary, equity, company_handle)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + jobColumns

	executor := GetExecutor(ctx, r.db)
	err := sqlx.GetContext(ctx, executor, job, query,
		job.Title,
		job.Salary,
		job.Equity,
		job.CompanyHandle,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return companyNotFound(job.CompanyHandle)
		}
		return services.WrapInternal("failed to create job", err)
	}

	r.logger.Debug("job created",
		zap.Int("id", job.ID),
		zap.String("company_handle", job.CompanyHandle))
	return nil
}

// FindAll lists all jobs ordered by title
func (r *JobRepository) FindAll(ctx context.Context) ([]*models.Job, error) {
	return r.find(ctx, sqlbuilder.Fragment{})
}

// FindFiltered lists the jobs matching filters
func (r *JobRepository) FindFiltered(ctx context.Context, filters sqlbuilder.Filters) ([]*models.Job, error) {
	where, err := sqlbuilder.BuildFilterClause(sqlbuilder.JobFilters, filters)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, where)
}

func (r *JobRepository) find(ctx context.Context, where sqlbuilder.Fragment) ([]*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs` + where.Where() + ` ORDER BY title, id`

	executor := GetExecutor(ctx, r.db)
	jobs := []*models.Job{}
	if err := sqlx.SelectContext(ctx, executor, &jobs, query, where.Values...); err != nil {
		return nil, services.WrapInternal("failed to list jobs", err)
	}

	return jobs, nil
}

// GetByID retrieves a job with its company
func (r *JobRepository) GetByID(ctx context.Context, id int) (*models.JobDetail, error) {
	query := `
		SELECT j.id,
		       j.title,
		       j.salary,
		       j.equity,
		       c.handle AS "company.handle",
		       c.name AS "company.name",
		       c.description AS "company.description",
		       c.num_employees AS "company.num_employees",
		       c.logo_url AS "company.logo_url"
		FROM jobs AS j
		JOIN companies AS c ON j.company_handle = c.handle
		WHERE j.id = $1
	`

	executor := GetExecutor(ctx, r.db)
	job := &models.JobDetail{}
	if err := sqlx.GetContext(ctx, executor, job, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, jobNotFound(id)
		}
		return nil, services.WrapInternal("failed to get job", err)
	}

	return job, nil
}

// Update applies a partial update to a job
func (r *JobRepository) Update(ctx context.Context, id int, update sqlbuilder.Update) (*models.Job, error) {
	if err := checkUpdatable(update, jobUpdateColumns); err != nil {
		return nil, err
	}
	set, err := sqlbuilder.BuildSetClause(update, jobUpdateColumns)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`UPDATE jobs SET %s WHERE id = $%d RETURNING %s`,
		set.Clause, set.NextPlaceholder(), jobColumns)
	args := append(set.Values, id)

	executor := GetExecutor(ctx, r.db)
	job := &models.Job{}
	if err := sqlx.GetContext(ctx, executor, job, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, jobNotFound(id)
		}
		return nil, services.WrapInternal("failed to update job", err)
	}

	r.logger.Debug("job updated",
		zap.Int("id", id),
		zap.Strings("fields", update.Names()))
	return job, nil
}

// Remove deletes a job
func (r *JobRepository) Remove(ctx context.Context, id int) error {
	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return services.WrapInternal("failed to delete job", err)
	}

	if err := expectAffected(result, jobNotFound(id)); err != nil {
		return err
	}

	r.logger.Debug("job deleted", zap.Int("id", id))
	return nil
}

func jobNotFound(id int) error {
	return services.ErrJobNotFound.WithMessage(fmt.Sprintf("No job: %d", id))
}
