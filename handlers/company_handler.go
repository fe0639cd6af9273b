package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/upb/jobly/internal/sqlbuilder"
	"github.com/upb/jobly/middleware"
	"github.com/upb/jobly/models"
	"github.com/upb/jobly/repositories"
	"github.com/upb/jobly/utils"
	"go.uber.org/zap"
)

// CreateCompanyRequest represents a request to create a company
type CreateCompanyRequest struct {
	Handle       string  `json:"handle" validate:"required,max=25,lowercase"`
	Name         string  `json:"name" validate:"required"`
	Description  string  `json:"description" validate:"required"`
	NumEmployees *int    `json:"numEmployees" validate:"omitempty,min=0"`
	LogoURL      *string `json:"logoUrl" validate:"omitempty,url"`
}

// UpdateCompanyRequest represents a partial update of a company.
// The handle cannot be changed.
type UpdateCompanyRequest struct {
	Name         models.Nullable[string] `json:"name" validate:"omitempty,min=1"`
	Description  models.Nullable[string] `json:"description"`
	NumEmployees models.Nullable[int]    `json:"numEmployees" validate:"omitempty,min=0"`
	LogoURL      models.Nullable[string] `json:"logoUrl" validate:"omitempty,url"`
}

func (req *UpdateCompanyRequest) toUpdate() (sqlbuilder.Update, error) {
	if err := rejectNull(
		notNull{"name", req.Name.IsNull()},
		notNull{"description", req.Description.IsNull()},
	); err != nil {
		return nil, err
	}

	var update sqlbuilder.Update
	update = setField(update, "name", req.Name)
	update = setField(update, "description", req.Description)
	update = setField(update, "numEmployees", req.NumEmployees)
	update = setField(update, "logoUrl", req.LogoURL)
	return update, nil
}

// CompanyHandler handles company-related HTTP requests
type CompanyHandler struct {
	companies repositories.CompanyRepository
	logger    *zap.Logger
}

// NewCompanyHandler creates a new CompanyHandler
func NewCompanyHandler(companies repositories.CompanyRepository, logger *zap.Logger) *CompanyHandler {
	return &CompanyHandler{
		companies: companies,
		logger:    logger,
	}
}

// HandleCreate handles POST /companies
func (h *CompanyHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	var req CreateCompanyRequest
	if !decodeAndValidate(w, r, &req, h.logger) {
		return
	}

	company := &models.Company{
		Handle:       req.Handle,
		Name:         req.Name,
		Description:  req.Description,
		NumEmployees: req.NumEmployees,
		LogoURL:      req.LogoURL,
	}
	if err := h.companies.Create(ctx, company); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("company created",
		zap.String("request_id", requestID),
		zap.String("handle", company.Handle))

	_ = utils.WriteCreated(w, utils.Envelope{"company": company})
}

// HandleList handles GET /companies, filtered by name, minEmployees and maxEmployees
func (h *CompanyHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		companies []*models.Company
		err       error
	)
	if filters := queryFilters(r); len(filters) > 0 {
		companies, err = h.companies.FindFiltered(ctx, filters)
	} else {
		companies, err = h.companies.FindAll(ctx)
	}
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, utils.Envelope{"companies": companies})
}

// HandleGet handles GET /companies/{handle}
func (h *CompanyHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	company, err := h.companies.GetByHandle(r.Context(), chi.URLParam(r, "handle"))
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, utils.Envelope{"company": company})
}

// HandleUpdate handles PATCH /companies/{handle}
func (h *CompanyHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)
	handle := chi.URLParam(r, "handle")

	var req UpdateCompanyRequest
	if !decodeAndValidate(w, r, &req, h.logger) {
		return
	}
	update, err := req.toUpdate()
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	company, err := h.companies.Update(ctx, handle, update)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("company updated",
		zap.String("request_id", requestID),
		zap.String("handle", handle),
		zap.Strings("fields", update.Names()))

	_ = utils.WriteOK(w, utils.Envelope{"company": company})
}

// HandleDelete handles DELETE /companies/{handle}
func (h *CompanyHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	handle := chi.URLParam(r, "handle")

	if err := h.companies.Remove(ctx, handle); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("company deleted",
		zap.String("request_id", middleware.GetRequestIDFromContext(ctx)),
		zap.String("handle", handle))

	_ = utils.WriteOK(w, utils.Envelope{"deleted": handle})
}
