// Package account registers users, checks their passwords and issues their
// tokens.
package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/upb/jobly/internal/auth"
	"github.com/upb/jobly/internal/sqlbuilder"
	"github.com/upb/jobly/models"
	"github.com/upb/jobly/repositories"
	"github.com/upb/jobly/services"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer signs tokens for authenticated identities
type TokenIssuer interface {
	Issue(id auth.Identity) (string, error)
}

// NewUser is the data needed to create an account
type NewUser struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
	IsAdmin   bool
}

// Service handles account creation, login and password changes
type Service struct {
	users      repositories.UserRepository
	txMgr      repositories.TransactionManager
	tokens     TokenIssuer
	workFactor int
	logger     *zap.Logger

	// compared against when the user does not exist, so unknown usernames
	// cost the same as wrong passwords
	dummyHash []byte
}

// NewService creates a new account Service
func NewService(
	users repositories.UserRepository,
	txMgr repositories.TransactionManager,
	tokens TokenIssuer,
	workFactor int,
	logger *zap.Logger,
) (*Service, error) {
	dummy, err := bcrypt.GenerateFromPassword([]byte("jobly-dummy-password"), workFactor)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare password hashing: %w", err)
	}

	return &Service{
		users:      users,
		txMgr:      txMgr,
		tokens:     tokens,
		workFactor: workFactor,
		logger:     logger,
		dummyHash:  dummy,
	}, nil
}

// Register creates a non-admin account and returns a token for it
func (s *Service) Register(ctx context.Context, in NewUser) (string, error) {
	in.IsAdmin = false

	user, err := s.create(ctx, in)
	if err != nil {
		return "", err
	}

	s.logger.Info("user registered", zap.String("username", user.Username))
	return s.issue(user.Username, user.IsAdmin)
}

// CreateUser creates an account that may be an admin, returning the user
// and a token for it
func (s *Service) CreateUser(ctx context.Context, in NewUser) (*models.User, string, error) {
	user, err := s.create(ctx, in)
	if err != nil {
		return nil, "", err
	}

	token, err := s.issue(user.Username, user.IsAdmin)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("user created",
		zap.String("username", user.Username),
		zap.Bool("is_admin", user.IsAdmin))
	return user, token, nil
}

// Authenticate checks a username and password and returns a token.
// Unknown users and wrong passwords fail the same way.
func (s *Service) Authenticate(ctx context.Context, username, password string) (string, error) {
	creds, err := s.users.GetCredentials(ctx, username)
	if err != nil {
		if !errors.Is(err, services.ErrUserNotFound) {
			return "", err
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return "", services.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password)); err != nil {
		s.logger.Debug("password mismatch", zap.String("username", username))
		return "", services.ErrInvalidCredentials
	}

	return s.issue(creds.Username, creds.IsAdmin)
}

// UpdateUser applies a partial update, hashing a new password first
func (s *Service) UpdateUser(ctx context.Context, username string, update sqlbuilder.Update) (*models.User, error) {
	hashed := make(sqlbuilder.Update, 0, len(update))
	for _, f := range update {
		if f.Name == "password" {
			password, ok := f.Value.(string)
			if !ok {
				return nil, services.ErrInvalidInput.
					WithMessage("password must be a string").
					WithDetail("field", "password")
			}
			hash, err := s.hash(password)
			if err != nil {
				return nil, err
			}
			f.Value = hash
		}
		hashed = append(hashed, f)
	}

	return s.users.Update(ctx, username, hashed)
}

func (s *Service) create(ctx context.Context, in NewUser) (*models.User, error) {
	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}

	return repositories.WithTransactionResult(ctx, s.txMgr, func(ctx context.Context, _ repositories.Transaction) (*models.User, error) {
		exists, err := s.users.ExistsByUsername(ctx, in.Username)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, services.ErrDuplicateUsername.
				WithMessage(fmt.Sprintf("Duplicate username: %s", in.Username))
		}

		user := &models.User{
			Username:  in.Username,
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Email:     in.Email,
			IsAdmin:   in.IsAdmin,
		}
		if err := s.users.Create(ctx, user, hash); err != nil {
			return nil, err
		}
		return user, nil
	})
}

func (s *Service) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.workFactor)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", services.ErrInvalidInput.
				WithMessage("password is too long").
				WithDetail("field", "password")
		}
		return "", services.WrapInternal("failed to hash password", err)
	}
	return string(hash), nil
}

func (s *Service) issue(username string, isAdmin bool) (string, error) {
	token, err := s.tokens.Issue(auth.Identity{Username: username, IsAdmin: isAdmin})
	if err != nil {
		return "", services.WrapInternal("failed to issue token", err)
	}
	return token, nil
}
