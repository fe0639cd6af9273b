package app

import (
	"context"
	"fmt"

	"github.com/upb/jobly/config"
	"github.com/upb/jobly/handlers"
	"github.com/upb/jobly/internal/auth"
	"github.com/upb/jobly/middleware"
	"github.com/upb/jobly/repositories"
	"github.com/upb/jobly/repositories/postgres"
	"github.com/upb/jobly/services/account"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB
	Logger *zap.Logger

	// Repository Factory
	RepoFactory *postgres.RepositoryFactory

	// Repositories
	Companies repositories.CompanyRepository
	Jobs      repositories.JobRepository
	Users     repositories.UserRepository
	TxManager repositories.TransactionManager

	// Auth
	Tokens         *auth.TokenService
	Accounts       *account.Service
	AuthMiddleware *middleware.AuthMiddleware

	// Handlers
	AuthHandler    *handlers.AuthHandler
	CompanyHandler *handlers.CompanyHandler
	JobHandler     *handlers.JobHandler
	UserHandler    *handlers.UserHandler
	HealthHandler  *handlers.HealthHandler
}

// NewDependencies connects to the database and wires up all application
// dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	// Initialize PostgreSQL
	if err := deps.initDatabase(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	deps.initRepositories()

	if err := deps.initServices(); err != nil {
		_ = deps.RepoFactory.Close()
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// NewDependenciesWithRepositories wires the application over the given
// repositories. health may be nil.
func NewDependenciesWithRepositories(
	cfg *config.Config,
	repos *repositories.Repositories,
	txMgr repositories.TransactionManager,
	health handlers.HealthChecker,
	logger *zap.Logger,
) (*Dependencies, error) {
	deps := &Dependencies{
		Config:    cfg,
		Logger:    logger,
		Companies: repos.Companies,
		Jobs:      repos.Jobs,
		Users:     repos.Users,
		TxManager: txMgr,
	}

	if err := deps.initServices(); err != nil {
		return nil, err
	}
	deps.HealthHandler = handlers.NewHealthHandler(health, logger)
	return deps, nil
}

// initDatabase initializes the PostgreSQL database connection and factory
func (d *Dependencies) initDatabase(ctx context.Context, cfg *config.Config) error {
	factory, err := postgres.NewRepositoryFactory(cfg, d.Logger)
	if err != nil {
		return fmt.Errorf("failed to create repository factory: %w", err)
	}

	d.RepoFactory = factory
	d.DB = factory.GetDB()

	// Test the connection
	if err := d.DB.PingContext(ctx); err != nil {
		_ = factory.Close()
		return fmt.Errorf("database ping failed: %w", err)
	}

	if cfg.Database.InitSchema {
		if err := d.DB.InitSchema(ctx); err != nil {
			_ = factory.Close()
			return err
		}
		d.Logger.Info("database schema initialized")
	}

	return nil
}

// initRepositories initializes all repository instances
func (d *Dependencies) initRepositories() {
	repos := d.RepoFactory.NewRepositories()

	d.Companies = repos.Companies
	d.Jobs = repos.Jobs
	d.Users = repos.Users
	d.TxManager = d.RepoFactory.GetTransactionManager()
	d.HealthHandler = handlers.NewHealthHandler(d.DB, d.Logger)

	d.Logger.Info("repositories initialized")
}

// initServices builds the token service, account service, middleware and handlers
func (d *Dependencies) initServices() error {
	var opts []auth.TokenOption
	if d.Config.Auth.TokenTTL > 0 {
		opts = append(opts, auth.WithTTL(d.Config.Auth.TokenTTL))
	}
	d.Tokens = auth.NewTokenService([]byte(d.Config.Auth.SecretKey), opts...)

	accounts, err := account.NewService(d.Users, d.TxManager, d.Tokens, d.Config.Auth.BcryptWorkFactor, d.Logger)
	if err != nil {
		return err
	}
	d.Accounts = accounts

	d.AuthMiddleware = middleware.NewAuthMiddleware(d.Tokens, d.Logger)

	d.AuthHandler = handlers.NewAuthHandler(d.Accounts, d.Logger)
	d.CompanyHandler = handlers.NewCompanyHandler(d.Companies, d.Logger)
	d.JobHandler = handlers.NewJobHandler(d.Jobs, d.Logger)
	d.UserHandler = handlers.NewUserHandler(d.Users, d.Accounts, d.Logger)

	d.Logger.Info("services initialized",
		zap.Bool("token_expiry", d.Config.Auth.TokenTTL > 0))
	return nil
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	// Close database connection
	if d.RepoFactory != nil {
		if err := d.RepoFactory.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		} else {
			d.Logger.Info("database connection closed")
		}
	}

	// Sync logger
	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}

	return nil
}
