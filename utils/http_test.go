package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	t.Run("successful write", func(t *testing.T) {
		w := httptest.NewRecorder()
		data := map[string]string{"message": "test"}

		err := WriteJSON(w, http.StatusOK, data)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var response map[string]string
		err = json.NewDecoder(w.Body).Decode(&response)
		require.NoError(t, err)
		assert.Equal(t, "test", response["message"])
	})

	t.Run("nil data", func(t *testing.T) {
		w := httptest.NewRecorder()

		err := WriteJSON(w, http.StatusNoContent, nil)
		require.NoError(t, err)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})
}

func TestWriteOK(t *testing.T) {
	w := httptest.NewRecorder()

	err := WriteOK(w, Envelope{"company": map[string]string{"handle": "c1"}})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"company":{"handle":"c1"}}`, w.Body.String())
}

func TestWriteCreated(t *testing.T) {
	w := httptest.NewRecorder()

	err := WriteCreated(w, Envelope{"token": "abc"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"token":"abc"}`, w.Body.String())
}

func TestWriteBadRequest(t *testing.T) {
	w := httptest.NewRecorder()
	details := map[string]interface{}{"key": "minSalary"}

	err := WriteBadRequest(w, "minSalary must be a number", details)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "bad_request", response.Error)
	assert.Equal(t, "minSalary must be a number", response.Message)
	assert.Equal(t, "minSalary", response.Details["key"])
}

func TestWriteUnauthorized(t *testing.T) {
	tests := []struct {
		name        string
		message     string
		wantMessage string
	}{
		{"custom message", "Unauthorized", "Unauthorized"},
		{"default message", "", "Authentication required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			require.NoError(t, WriteUnauthorized(w, tt.message))

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			var response ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
			assert.Equal(t, "unauthorized", response.Error)
			assert.Equal(t, tt.wantMessage, response.Message)
		})
	}
}

func TestWriteNotFound(t *testing.T) {
	tests := []struct {
		name        string
		message     string
		wantMessage string
	}{
		{"custom message", "No job: 0", "No job: 0"},
		{"default message", "", "Resource not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			require.NoError(t, WriteNotFound(w, tt.message))

			assert.Equal(t, http.StatusNotFound, w.Code)
			var response ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
			assert.Equal(t, "not_found", response.Error)
			assert.Equal(t, tt.wantMessage, response.Message)
		})
	}
}

func TestWriteConflict(t *testing.T) {
	w := httptest.NewRecorder()

	require.NoError(t, WriteConflict(w, "Duplicate username: u1", nil))

	assert.Equal(t, http.StatusConflict, w.Code)
	var response ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "conflict", response.Error)
	assert.Nil(t, response.Details)
}

func TestWriteInternalServerError(t *testing.T) {
	w := httptest.NewRecorder()

	require.NoError(t, WriteInternalServerError(w, ""))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var response ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "internal_error", response.Error)
	assert.Equal(t, "Internal server error", response.Message)
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		status    int
		wantError string
	}{
		{http.StatusBadRequest, "bad_request"},
		{http.StatusUnauthorized, "unauthorized"},
		{http.StatusNotFound, "not_found"},
		{http.StatusMethodNotAllowed, "method_not_allowed"},
		{http.StatusConflict, "conflict"},
		{http.StatusInternalServerError, "internal_error"},
		{http.StatusTeapot, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			w := httptest.NewRecorder()

			require.NoError(t, WriteError(w, tt.status, "msg", nil))

			assert.Equal(t, tt.status, w.Code)
			var response ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
			assert.Equal(t, tt.wantError, response.Error)
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Title  string `json:"title"`
		Salary *int   `json:"salary"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "valid", body: `{"title":"dev","salary":10}`},
		{name: "unknown field", body: `{"title":"dev","companyHandle":"c1"}`, wantErr: "unknown field"},
		{name: "empty body", body: ``, wantErr: "must not be empty"},
		{name: "trailing data", body: `{"title":"dev"}{"title":"x"}`, wantErr: "single JSON object"},
		{name: "wrong type", body: `{"salary":"lots"}`, wantErr: "cannot unmarshal"},
		{name: "too large", body: `{"title":"` + strings.Repeat("a", MaxBodyBytes) + `"}`, wantErr: "larger than"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/jobs", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			var dst payload
			err := DecodeJSON(w, req, &dst)

			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "dev", dst.Title)
				require.NotNil(t, dst.Salary)
				assert.Equal(t, 10, *dst.Salary)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
