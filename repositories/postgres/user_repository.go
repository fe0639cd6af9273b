package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/upb/jobly/internal/sqlbuilder"
	"github.com/upb/jobly/models"
	"github.com/upb/jobly/repositories"
	"github.com/upb/jobly/services"
	"go.uber.org/zap"
)

const userColumns = `username, first_name, last_name, email, is_admin`

// userUpdateColumns lists the updatable fields. Username and admin flag are fixed.
var userUpdateColumns = map[string]string{
	"firstName": "first_name",
	"lastName":  "last_name",
	"email":     "email",
	"password":  "password",
}

// UserRepository implements the repositories.UserRepository interface
type UserRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB, logger *zap.Logger) repositories.UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User, passwordHash string) error {
	query := `
		INSERT INTO users (username, password, first_name, last_name, email, is_admin)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns

	executor := GetExecutor(ctx, r.db)
	err := sqlx.GetContext(ctx, executor, user, query,
		user.Username,
		passwordHash,
		user.FirstName,
		user.LastName,
		user.Email,
		user.IsAdmin,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return duplicateUsername(user.Username)
		}
		return services.WrapInternal("failed to create user", err)
	}

	r.logger.Debug("user created",
		zap.String("username", user.Username),
		zap.Bool("is_admin", user.IsAdmin))
	return nil
}

// FindAll lists all users ordered by username
func (r *UserRepository) FindAll(ctx context.Context) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY username`

	executor := GetExecutor(ctx, r.db)
	users := []*models.User{}
	if err := sqlx.SelectContext(ctx, executor, &users, query); err != nil {
		return nil, services.WrapInternal("failed to list users", err)
	}

	return users, nil
}

// GetByUsername retrieves a user with the ids of the jobs they applied to
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.UserDetail, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	executor := GetExecutor(ctx, r.db)
	detail := &models.UserDetail{Jobs: []int{}}
	if err := sqlx.GetContext(ctx, executor, &detail.User, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, userNotFound(username)
		}
		return nil, services.WrapInternal("failed to get user", err)
	}

	jobsQuery := `SELECT job_id FROM applications WHERE username = $1 ORDER BY job_id`
	if err := sqlx.SelectContext(ctx, executor, &detail.Jobs, jobsQuery, username); err != nil {
		return nil, services.WrapInternal("failed to get user applications", err)
	}

	return detail, nil
}

// GetCredentials retrieves the stored password hash for username
func (r *UserRepository) GetCredentials(ctx context.Context, username string) (*models.Credentials, error) {
	query := `SELECT username, password, is_admin FROM users WHERE username = $1`

	executor := GetExecutor(ctx, r.db)
	creds := &models.Credentials{}
	if err := sqlx.GetContext(ctx, executor, creds, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, userNotFound(username)
		}
		return nil, services.WrapInternal("failed to get credentials", err)
	}

	return creds, nil
}

// ExistsByUsername reports whether username is taken
func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	executor := GetExecutor(ctx, r.db)

	var exists bool
	err := sqlx.GetContext(ctx, executor, &exists,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username)
	if err != nil {
		return false, services.WrapInternal("failed to check username", err)
	}

	return exists, nil
}

// Update applies a partial update to a user
func (r *UserRepository) Update(ctx context.Context, username string, update sqlbuilder.Update) (*models.User, error) {
	if err := checkUpdatable(update, userUpdateColumns); err != nil {
		return nil, err
	}
	set, err := sqlbuilder.BuildSetClause(update, userUpdateColumns)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`UPDATE users SET %s WHERE username = $%d RETURNING %s`,
		set.Clause, set.NextPlaceholder(), userColumns)
	args := append(set.Values, username)

	executor := GetExecutor(ctx, r.db)
	user := &models.User{}
	if err := sqlx.GetContext(ctx, executor, user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, userNotFound(username)
		}
		return nil, services.WrapInternal("failed to update user", err)
	}

	r.logger.Debug("user updated",
		zap.String("username", username),
		zap.Strings("fields", update.Names()))
	return user, nil
}

// Remove deletes a user
func (r *UserRepository) Remove(ctx context.Context, username string) error {
	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return services.WrapInternal("failed to delete user", err)
	}

	if err := expectAffected(result, userNotFound(username)); err != nil {
		return err
	}

	r.logger.Debug("user deleted", zap.String("username", username))
	return nil
}

// ApplyToJob records that username applied to jobID
func (r *UserRepository) ApplyToJob(ctx context.Context, username string, jobID int) (*models.Application, error) {
	query := `
		INSERT INTO applications (username, job_id)
		VALUES ($1, $2)
		RETURNING username, job_id
	`

	executor := GetExecutor(ctx, r.db)
	app := &models.Application{}
	if err := sqlx.GetContext(ctx, executor, app, query, username, jobID); err != nil {
		switch {
		case isUniqueViolation(err):
			return nil, services.ErrDuplicateApply.
				WithMessage(fmt.Sprintf("%s already applied to job %d", username, jobID))
		case isForeignKeyViolation(err):
			if strings.Contains(violatedConstraint(err), "job_id") {
				return nil, jobNotFound(jobID)
			}
			return nil, userNotFound(username)
		}
		return nil, services.WrapInternal("failed to apply to job", err)
	}

	r.logger.Debug("application recorded",
		zap.String("username", username),
		zap.Int("job_id", jobID))
	return app, nil
}

func userNotFound(username string) error {
	return services.ErrUserNotFound.WithMessage(fmt.Sprintf("No user: %s", username))
}

func duplicateUsername(username string) error {
	return services.ErrDuplicateUsername.WithMessage(fmt.Sprintf("Duplicate username: %s", username))
}
