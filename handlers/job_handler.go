package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/upb/jobly/internal/sqlbuilder"
	"github.com/upb/jobly/middleware"
	"github.com/upb/jobly/models"
	"github.com/upb/jobly/repositories"
	"github.com/upb/jobly/services"
	"github.com/upb/jobly/utils"
	"go.uber.org/zap"
)

// CreateJobRequest represents a request to create a job.
// Equity accepts a number or a numeric string between 0 and 1.
type CreateJobRequest struct {
	Title         string       `json:"title" validate:"required"`
	Salary        *int         `json:"salary" validate:"omitempty,min=0"`
	Equity        *json.Number `json:"equity" validate:"omitempty,equity"`
	CompanyHandle string       `json:"companyHandle" validate:"required,max=25"`
}

// UpdateJobRequest represents a partial update of a job.
// Salary and equity may be set to null; id and companyHandle cannot change.
type UpdateJobRequest struct {
	Title  models.Nullable[string]      `json:"title" validate:"omitempty,min=1"`
	Salary models.Nullable[int]         `json:"salary" validate:"omitempty,min=0"`
	Equity models.Nullable[json.Number] `json:"equity" validate:"omitempty,equity"`
}

func (req *UpdateJobRequest) toUpdate() (sqlbuilder.Update, error) {
	if err := rejectNull(notNull{"title", req.Title.IsNull()}); err != nil {
		return nil, err
	}

	var update sqlbuilder.Update
	update = setField(update, "title", req.Title)
	update = setField(update, "salary", req.Salary)
	if req.Equity.Set {
		var equity any
		if req.Equity.Valid {
			equity = req.Equity.Value.String()
		}
		update = update.Set("equity", equity)
	}
	return update, nil
}

// JobHandler handles job-related HTTP requests
type JobHandler struct {
	jobs   repositories.JobRepository
	logger *zap.Logger
}

// NewJobHandler creates a new JobHandler
func NewJobHandler(jobs repositories.JobRepository, logger *zap.Logger) *JobHandler {
	return &JobHandler{
		jobs:   jobs,
		logger: logger,
	}
}

// HandleCreate handles POST /jobs
func (h *JobHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	var req CreateJobRequest
	if !decodeAndValidate(w, r, &req, h.logger) {
		return
	}

	job := &models.Job{
		Title:         req.Title,
		Salary:        req.Salary,
		CompanyHandle: req.CompanyHandle,
	}
	if req.Equity != nil {
		equity := req.Equity.String()
		job.Equity = &equity
	}

	if err := h.jobs.Create(ctx, job); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("job created",
		zap.String("request_id", requestID),
		zap.Int("id", job.ID),
		zap.String("company_handle", job.CompanyHandle))

	_ = utils.WriteCreated(w, utils.Envelope{"job": job})
}

// HandleList handles GET /jobs, filtered by title, minSalary and hasEquity
func (h *JobHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		jobs []*models.Job
		err  error
	)
	if filters := queryFilters(r); len(filters) > 0 {
		jobs, err = h.jobs.FindFiltered(ctx, filters)
	} else {
		jobs, err = h.jobs.FindAll(ctx)
	}
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, utils.Envelope{"jobs": jobs})
}

// HandleGet handles GET /jobs/{id}
func (h *JobHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := jobIDParam(r)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	job, err := h.jobs.GetByID(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, utils.Envelope{"job": job})
}

// HandleUpdate handles PATCH /jobs/{id}
func (h *JobHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := jobIDParam(r)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	var req UpdateJobRequest
	if !decodeAndValidate(w, r, &req, h.logger) {
		return
	}
	update, err := req.toUpdate()
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	job, err := h.jobs.Update(ctx, id, update)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("job updated",
		zap.String("request_id", middleware.GetRequestIDFromContext(ctx)),
		zap.Int("id", id),
		zap.Strings("fields", update.Names()))

	_ = utils.WriteOK(w, utils.Envelope{"job": job})
}

// HandleDelete handles DELETE /jobs/{id}
func (h *JobHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := jobIDParam(r)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	if err := h.jobs.Remove(ctx, id); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("job deleted",
		zap.String("request_id", middleware.GetRequestIDFromContext(ctx)),
		zap.Int("id", id))

	_ = utils.WriteOK(w, utils.Envelope{"deleted": strconv.Itoa(id)})
}

// jobIDParam parses the {id} route parameter. A non-numeric id names no job.
func jobIDParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, services.ErrJobNotFound.WithMessage(fmt.Sprintf("No job: %s", raw))
	}
	return id, nil
}
