package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/upb/jobly/config"
	"go.uber.org/zap"
)

// DB wraps the sqlx connection pool
type DB struct {
	*sqlx.DB
	logger *zap.Logger
}

// NewDB creates a new database connection pool
func NewDB(cfg config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	db, err := sqlx.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established",
		zap.String("connection", cfg.LogString()))

	return &DB{
		DB:     db,
		logger: logger,
	}, nil
}

// WrapDB wraps an existing pool, e.g. one backed by sqlmock in tests
func WrapDB(db *sqlx.DB, logger *zap.Logger) *DB {
	return &DB{DB: db, logger: logger}
}

// Close closes the database connection pool
func (db *DB) Close() error {
	db.logger.Info("closing database connection")
	return db.DB.Close()
}

// HealthCheck performs a health check on the database
func (db *DB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	var result int
	if err := db.GetContext(ctx, &result, "SELECT 1"); err != nil {
		return fmt.Errorf("database query check failed: %w", err)
	}

	return nil
}

const schema = `
	CREATE TABLE IF NOT EXISTS companies (
		handle VARCHAR(25) PRIMARY KEY CHECK (handle = lower(handle)),
		name TEXT UNIQUE NOT NULL,
		num_employees INTEGER CHECK (num_employees >= 0),
		description TEXT NOT NULL,
		logo_url TEXT
	);

	CREATE TABLE IF NOT EXISTS jobs (
		id SERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		salary INTEGER CHECK (salary >= 0),
		equity NUMERIC CHECK (equity <= 1.0),
		company_handle VARCHAR(25) NOT NULL
			REFERENCES companies ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS users (
		username VARCHAR(25) PRIMARY KEY,
		password TEXT NOT NULL,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL CHECK (position('@' IN email) > 1),
		is_admin BOOLEAN NOT NULL DEFAULT FALSE
	);

	CREATE TABLE IF NOT EXISTS applications (
		username VARCHAR(25)
			REFERENCES users ON DELETE CASCADE,
		job_id INTEGER
			REFERENCES jobs ON DELETE CASCADE,
		PRIMARY KEY (username, job_id)
	);

	CREATE INDEX IF NOT EXISTS idx_jobs_company_handle ON jobs(company_handle);
	CREATE INDEX IF NOT EXISTS idx_applications_job_id ON applications(job_id);
`

// InitSchema creates the tables if they do not exist. Development only.
func (db *DB) InitSchema(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	db.logger.Info("database schema initialized successfully")
	return nil
}
