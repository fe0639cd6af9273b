package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/upb/jobly/internal/sqlbuilder"
	"github.com/upb/jobly/middleware"
	"github.com/upb/jobly/models"
	"github.com/upb/jobly/repositories"
	"github.com/upb/jobly/services/account"
	"github.com/upb/jobly/utils"
	"go.uber.org/zap"
)

// AccountService defines the account operations handlers rely on
type AccountService interface {
	// Register creates a non-admin user and returns a token for it
	Register(ctx context.Context, in account.NewUser) (string, error)

	// CreateUser creates a user that may be an admin
	CreateUser(ctx context.Context, in account.NewUser) (*models.User, string, error)

	// Authenticate checks a password and returns a token
	Authenticate(ctx context.Context, username, password string) (string, error)

	// UpdateUser applies a partial update, hashing any new password
	UpdateUser(ctx context.Context, username string, update sqlbuilder.Update) (*models.User, error)
}

// CreateUserRequest represents an admin's request to create a user
type CreateUserRequest struct {
	Username  string `json:"username" validate:"required,max=25"`
	Password  string `json:"password" validate:"required,min=5,max=20"`
	FirstName string `json:"firstName" validate:"required,max=30"`
	LastName  string `json:"lastName" validate:"required,max=30"`
	Email     string `json:"email" validate:"required,email,min=6,max=60"`
	IsAdmin   bool   `json:"isAdmin"`
}

func (req *CreateUserRequest) toNewUser() account.NewUser {
	return account.NewUser{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		IsAdmin:   req.IsAdmin,
	}
}

// UpdateUserRequest represents a partial update of a user.
// Username and admin flag cannot be changed here.
type UpdateUserRequest struct {
	FirstName models.Nullable[string] `json:"firstName" validate:"omitempty,min=1,max=30"`
	LastName  models.Nullable[string] `json:"lastName" validate:"omitempty,min=1,max=30"`
	Password  models.Nullable[string] `json:"password" validate:"omitempty,min=5,max=20"`
	Email     models.Nullable[string] `json:"email" validate:"omitempty,email,min=6,max=60"`
}

func (req *UpdateUserRequest) toUpdate() (sqlbuilder.Update, error) {
	if err := rejectNull(
		notNull{"firstName", req.FirstName.IsNull()},
		notNull{"lastName", req.LastName.IsNull()},
		notNull{"password", req.Password.IsNull()},
		notNull{"email", req.Email.IsNull()},
	); err != nil {
		return nil, err
	}

	var update sqlbuilder.Update
	update = setField(update, "firstName", req.FirstName)
	update = setField(update, "lastName", req.LastName)
	update = setField(update, "password", req.Password)
	update = setField(update, "email", req.Email)
	return update, nil
}

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	users    repositories.UserRepository
	accounts AccountService
	logger   *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users repositories.UserRepository, accounts AccountService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		users:    users,
		accounts: accounts,
		logger:   logger,
	}
}

// HandleCreate handles POST /users. Unlike registration, it can create admins.
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateUserRequest
	if !decodeAndValidate(w, r, &req, h.logger) {
		return
	}

	user, token, err := h.accounts.CreateUser(ctx, req.toNewUser())
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("user created by admin",
		zap.String("request_id", middleware.GetRequestIDFromContext(ctx)),
		zap.String("username", user.Username),
		zap.Bool("is_admin", user.IsAdmin))

	_ = utils.WriteCreated(w, utils.Envelope{"user": user, "token": token})
}

// HandleList handles GET /users
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.FindAll(r.Context())
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, utils.Envelope{"users": users})
}

// HandleGet handles GET /users/{username}
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, utils.Envelope{"user": user})
}

// HandleUpdate handles PATCH /users/{username}
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := chi.URLParam(r, "username")

	var req UpdateUserRequest
	if !decodeAndValidate(w, r, &req, h.logger) {
		return
	}
	update, err := req.toUpdate()
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	user, err := h.accounts.UpdateUser(ctx, username, update)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("user updated",
		zap.String("request_id", middleware.GetRequestIDFromContext(ctx)),
		zap.String("username", username),
		zap.Strings("fields", update.Names()))

	_ = utils.WriteOK(w, utils.Envelope{"user": user})
}

// HandleDelete handles DELETE /users/{username}
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := chi.URLParam(r, "username")

	if err := h.users.Remove(ctx, username); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("user deleted",
		zap.String("request_id", middleware.GetRequestIDFromContext(ctx)),
		zap.String("username", username))

	_ = utils.WriteOK(w, utils.Envelope{"deleted": username})
}

// HandleApply handles POST /users/{username}/jobs/{id}
func (h *UserHandler) HandleApply(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := chi.URLParam(r, "username")

	jobID, err := jobIDParam(r)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	app, err := h.users.ApplyToJob(ctx, username, jobID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("applied to job",
		zap.String("request_id", middleware.GetRequestIDFromContext(ctx)),
		zap.String("username", app.Username),
		zap.Int("job_id", app.JobID))

	_ = utils.WriteCreated(w, utils.Envelope{"applied": app.JobID})
}
