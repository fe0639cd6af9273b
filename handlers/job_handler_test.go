package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/upb/jobly/internal/sqlbuilder"
	"github.com/upb/jobly/models"
	"github.com/upb/jobly/repositories/mocks"
	"github.com/upb/jobly/services"
	"go.uber.org/zap"
)

func TestJobHandleCreate(t *testing.T) {
	logger := zap.NewNop()

	t.Run("successful creation", func(t *testing.T) {
		repo := new(mocks.JobRepository)
		handler := NewJobHandler(repo, logger)

		repo.On("Create", mock.Anything, mock.MatchedBy(func(j *models.Job) bool {
			return j.Title == "J-new" && *j.Salary == 10 && *j.Equity == "0.2" && j.CompanyHandle == "c1"
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Job).ID = 7
		}).Return(nil)

		w := serve(t, http.MethodPost, "/jobs", "/jobs",
			`{"title":"J-new","salary":10,"equity":"0.2","companyHandle":"c1"}`, handler.HandleCreate)

		assert.Equal(t, http.StatusCreated, w.Code)
		job := decodeBody(t, w)["job"].(map[string]interface{})
		assert.Equal(t, float64(7), job["id"])
		assert.Equal(t, "0.2", job["equity"])
		repo.AssertExpectations(t)
	})

	t.Run("numeric equity is kept as written", func(t *testing.T) {
		repo := new(mocks.JobRepository)
		handler := NewJobHandler(repo, logger)

		repo.On("Create", mock.Anything, mock.MatchedBy(func(j *models.Job) bool {
			return j.Equity != nil && *j.Equity == "0.05"
		})).Return(nil)

		w := serve(t, http.MethodPost, "/jobs", "/jobs",
			`{"title":"J","equity":0.05,"companyHandle":"c1"}`, handler.HandleCreate)

		assert.Equal(t, http.StatusCreated, w.Code)
		repo.AssertExpectations(t)
	})

	t.Run("bad requests", func(t *testing.T) {
		cases := map[string]string{
			"missing title":          `{"salary":10,"companyHandle":"c1"}`,
			"negative salary":        `{"title":"J","salary":-56,"companyHandle":"c1"}`,
			"equity above one":       `{"title":"J","equity":"1.5","companyHandle":"c1"}`,
			"non numeric equity":     `{"title":"J","equity":"lots","companyHandle":"c1"}`,
			"numeric company handle": `{"title":"J","companyHandle":45}`,
			"string salary":          `{"title":"J","salary":"kittens","companyHandle":"c1"}`,
		}
		for name, body := range cases {
			t.Run(name, func(t *testing.T) {
				repo := new(mocks.JobRepository)
				handler := NewJobHandler(repo, logger)

				w := serve(t, http.MethodPost, "/jobs", "/jobs", body, handler.HandleCreate)

				assert.Equal(t, http.StatusBadRequest, w.Code)
				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("unknown company", func(t *testing.T) {
		repo := new(mocks.JobRepository)
		handler := NewJobHandler(repo, logger)
		repo.On("Create", mock.Anything, mock.Anything).Return(services.ErrCompanyNotFound)

		w := serve(t, http.MethodPost, "/jobs", "/jobs", `{"title":"J","companyHandle":"nope"}`, handler.HandleCreate)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestJobHandleList(t *testing.T) {
	logger := zap.NewNop()
	jobs := []*models.Job{
		{ID: 1, Title: "J1", Salary: intPtr(1), Equity: strPtr("0.1"), CompanyHandle: "c1"},
		{ID: 2, Title: "J2", Salary: intPtr(2), Equity: strPtr("0.2"), CompanyHandle: "c1"},
		{ID: 3, Title: "J3", Salary: intPtr(3), CompanyHandle: "c1"},
	}

	t.Run("no filters lists all", func(t *testing.T) {
		repo := new(mocks.JobRepository)
		handler := NewJobHandler(repo, logger)
		repo.On("FindAll", mock.Anything).Return(jobs, nil)

		w := serve(t, http.MethodGet, "/jobs", "/jobs", "", handler.HandleList)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeBody(t, w)["jobs"], 3)
	})

	t.Run("filters are passed through", func(t *testing.T) {
		repo := new(mocks.JobRepository)
		handler := NewJobHandler(repo, logger)
		repo.On("FindFiltered", mock.Anything, sqlbuilder.Filters{"minSalary": "2", "hasEquity": "true"}).
			Return(jobs[1:2], nil)

		w := serve(t, http.MethodGet, "/jobs", "/jobs?minSalary=2&hasEquity=true", "", handler.HandleList)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeBody(t, w)["jobs"], 1)
		repo.AssertExpectations(t)
	})

	t.Run("bad filters", func(t *testing.T) {
		for target, err := range map[string]error{
			"/jobs?cats=5":        services.ErrUnrecognizedFilterKey,
			"/jobs?minSalary=dog":  services.ErrInvalidType,
		} {
			t.Run(target, func(t *testing.T) {
				repo := new(mocks.JobRepository)
				handler := NewJobHandler(repo, logger)
				repo.On("FindFiltered", mock.Anything, mock.Anything).Return(nil, err)

				w := serve(t, http.MethodGet, "/jobs", target, "", handler.HandleList)

				assert.Equal(t, http.StatusBadRequest, w.Code)
			})
		}
	})
}

func TestJobHandleGet(t *testing.T) {
	logger := zap.NewNop()

	t.Run("job with company", func(t *testing.T) {
		repo := new(mocks.JobRepository)
		handler := NewJobHandler(repo, logger)
		repo.On("GetByID", mock.Anything, 1).Return(&models.JobDetail{
			ID: 1, Title: "J1", Salary: intPtr(1), Equity: strPtr("0.1"),
			Company: models.Company{Handle: "c1", Name: "C1", Description: "Desc1"},
		}, nil)

		w := serve(t, http.MethodGet, "/jobs/{id}", "/jobs/1", "", handler.HandleGet)

		assert.Equal(t, http.StatusOK, w.Code)
		job := decodeBody(t, w)["job"].(map[string]interface{})
		assert.Equal(t, "c1", job["company"].(map[string]interface{})["handle"])
		assert.NotContains(t, job, "companyHandle")
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(mocks.JobRepository)
		handler := NewJobHandler(repo, logger)
		repo.On("GetByID", mock.Anything, 99999).Return(nil, services.ErrJobNotFound)

		w := serve(t, http.MethodGet, "/jobs/{id}", "/jobs/99999", "", handler.HandleGet)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("non numeric id is not found", func(t *testing.T) {
		repo := new(mocks.JobRepository)
		handler := NewJobHandler(repo, logger)

		w := serve(t, http.MethodGet, "/jobs/{id}", "/jobs/abc", "", handler.HandleGet)

		assert.Equal(t, http.StatusNotFound, w.Code)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestJobHandleUpdate(t *testing.T) {
	logger := zap.NewNop()

	t.Run("title and nulled equity", func(t *testing.T) {
		repo := new(mocks.JobRepository)
		handler := NewJobHandler(repo, logger)

		want := sqlbuilder.Update{
			{Name: "title", Value: "J-New"},
			{Name: "equity", Value: nil},
		}
		repo.On("Update", mock.Anything, 1, want).
			Return(&models.Job{ID: 1, Title: "J-New", Salary: intPtr(1), CompanyHandle: "c1"}, nil)

		w := serve(t, http.MethodPatch, "/jobs/{id}", "/jobs/1", `{"title":"J-New","equity":null}`, handler.HandleUpdate)

		assert.Equal(t, http.StatusOK, w.Code)
		job := decodeBody(t, w)["job"].(map[string]interface{})
		assert.Equal(t, "J-New", job["title"])
		assert.Nil(t, job["equity"])
		repo.AssertExpectations(t)
	})

	t.Run("equity binds as text", func(t *testing.T) {
		repo := new(mocks.JobRepository)
		handler := NewJobHandler(repo, logger)

		want := sqlbuilder.Update{{Name: "equity", Value: "0.5"}}
		repo.On("Update", mock.Anything, 1, want).Return(&models.Job{ID: 1}, nil)

		w := serve(t, http.MethodPatch, "/jobs/{id}", "/jobs/1", `{"equity":0.5}`, handler.HandleUpdate)

		assert.Equal(t, http.StatusOK, w.Code)
		repo.AssertExpectations(t)
	})

	t.Run("bad requests", func(t *testing.T) {
		cases := map[string]string{
			"id change":            `{"id":5}`,
			"company handle":       `{"companyHandle":"c2"}`,
			"null title":           `{"title":null}`,
			"string salary":        `{"salary":"kittens"}`,
			"negative salary":      `{"salary":-56}`,
			"equity out of bounds": `{"equity":"2"}`,
			"empty title":          `{"title":""}`,
		}
		for name, body := range cases {
			t.Run(name, func(t *testing.T) {
				repo := new(mocks.JobRepository)
				handler := NewJobHandler(repo, logger)

				w := serve(t, http.MethodPatch, "/jobs/{id}", "/jobs/1", body, handler.HandleUpdate)

				assert.Equal(t, http.StatusBadRequest, w.Code)
				repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("zero id is not found", func(t *testing.T) {
		repo := new(mocks.JobRepository)
		handler := NewJobHandler(repo, logger)

		w := serve(t, http.MethodPatch, "/jobs/{id}", "/jobs/0", `{"title":"x"}`, handler.HandleUpdate)

		assert.Equal(t, http.StatusNotFound, w.Code)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestJobHandleDelete(t *testing.T) {
	logger := zap.NewNop()

	t.Run("deleted id is a string", func(t *testing.T) {
		repo := new(mocks.JobRepository)
		handler := NewJobHandler(repo, logger)
		repo.On("Remove", mock.Anything, 3).Return(nil)

		w := serve(t, http.MethodDelete, "/jobs/{id}", "/jobs/3", "", handler.HandleDelete)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"deleted":"3"}`, w.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(mocks.JobRepository)
		handler := NewJobHandler(repo, logger)
		repo.On("Remove", mock.Anything, 99999).Return(services.ErrJobNotFound)

		w := serve(t, http.MethodDelete, "/jobs/{id}", "/jobs/99999", "", handler.HandleDelete)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
