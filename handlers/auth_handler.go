package handlers

import (
	"net/http"

	"github.com/upb/jobly/middleware"
	"github.com/upb/jobly/services/account"
	"github.com/upb/jobly/utils"
	"go.uber.org/zap"
)

// TokenRequest represents a login request
type TokenRequest struct {
	Username string `json:"username" validate:"required,max=25"`
	Password string `json:"password" validate:"required,max=72"`
}

// RegisterRequest represents a self-service signup. It cannot make admins.
type RegisterRequest struct {
	Username  string `json:"username" validate:"required,max=25"`
	Password  string `json:"password" validate:"required,min=5,max=20"`
	FirstName string `json:"firstName" validate:"required,max=30"`
	LastName  string `json:"lastName" validate:"required,max=30"`
	Email     string `json:"email" validate:"required,email,min=6,max=60"`
}

// AuthHandler handles login and registration
type AuthHandler struct {
	accounts AccountService
	logger   *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(accounts AccountService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		logger:   logger,
	}
}

// HandleToken handles POST /auth/token
func (h *AuthHandler) HandleToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req TokenRequest
	if !decodeAndValidate(w, r, &req, h.logger) {
		return
	}

	token, err := h.accounts.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		h.logger.Debug("login failed",
			zap.String("request_id", middleware.GetRequestIDFromContext(ctx)),
			zap.String("username", req.Username))
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, utils.Envelope{"token": token})
}

// HandleRegister handles POST /auth/register
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RegisterRequest
	if !decodeAndValidate(w, r, &req, h.logger) {
		return
	}

	token, err := h.accounts.Register(ctx, account.NewUser{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("user registered",
		zap.String("request_id", middleware.GetRequestIDFromContext(ctx)),
		zap.String("username", req.Username))

	_ = utils.WriteCreated(w, utils.Envelope{"token": token})
}
