package sqlbuilder

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/jobly/services"
)

func TestBuildFilterClause_Companies(t *testing.T) {
	tests := []struct {
		name       string
		filters    Filters
		wantClause string
		wantValues []any
	}{
		{
			name:       "all filters",
			filters:    Filters{"name": "net", "minEmployees": 100, "maxEmployees": 200},
			wantClause: "name ILIKE '%' || $1 || '%' AND num_employees >= $2 AND num_employees <= $3",
			wantValues: []any{"net", int64(100), int64(200)},
		},
		{
			name:       "query string values",
			filters:    Filters{"maxEmployees": "200", "minEmployees": "100"},
			wantClause: "num_employees >= $1 AND num_employees <= $2",
			wantValues: []any{int64(100), int64(200)},
		},
		{
			name:       "name only",
			filters:    Filters{"name": "c"},
			wantClause: "name ILIKE '%' || $1 || '%'",
			wantValues: []any{"c"},
		},
		{
			name:       "max only",
			filters:    Filters{"maxEmployees": 2},
			wantClause: "num_employees <= $1",
			wantValues: []any{int64(2)},
		},
		{
			name:       "equal bounds",
			filters:    Filters{"minEmployees": 5, "maxEmployees": "5"},
			wantClause: "num_employees >= $1 AND num_employees <= $2",
			wantValues: []any{int64(5), int64(5)},
		},
		{
			name:       "no filters",
			filters:    Filters{},
			wantClause: "",
			wantValues: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frag, err := BuildFilterClause(CompanyFilters, tt.filters)

			require.NoError(t, err)
			assert.Equal(t, tt.wantClause, frag.Clause)
			assert.Equal(t, tt.wantValues, frag.Values)
		})
	}
}

func TestBuildFilterClause_Jobs(t *testing.T) {
	tests := []struct {
		name       string
		filters    Filters
		wantClause string
		wantValues []any
	}{
		{
			name:       "all filters",
			filters:    Filters{"title": "law", "minSalary": 90000, "hasEquity": "true"},
			wantClause: "title ILIKE '%' || $1 || '%' AND salary >= $2 AND equity IS NOT NULL AND equity > 0",
			wantValues: []any{"law", int64(90000)},
		},
		{
			name:       "flag alone takes no placeholder",
			filters:    Filters{"hasEquity": "TRUE"},
			wantClause: "equity IS NOT NULL AND equity > 0",
			wantValues: nil,
		},
		{
			name:       "flag as bool",
			filters:    Filters{"hasEquity": true, "minSalary": "150"},
			wantClause: "salary >= $1 AND equity IS NOT NULL AND equity > 0",
			wantValues: []any{int64(150)},
		},
		{
			name:       "flag false contributes nothing",
			filters:    Filters{"title": "eng", "hasEquity": "false"},
			wantClause: "title ILIKE '%' || $1 || '%'",
			wantValues: []any{"eng"},
		},
		{
			name:       "flag with any other value contributes nothing",
			filters:    Filters{"hasEquity": "yes"},
			wantClause: "",
			wantValues: nil,
		},
		{
			name:       "fractional salary stays a float",
			filters:    Filters{"minSalary": "1000.5"},
			wantClause: "salary >= $1",
			wantValues: []any{1000.5},
		},
		{
			name:       "json number",
			filters:    Filters{"minSalary": json.Number("200")},
			wantClause: "salary >= $1",
			wantValues: []any{int64(200)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frag, err := BuildFilterClause(JobFilters, tt.filters)

			require.NoError(t, err)
			assert.Equal(t, tt.wantClause, frag.Clause)
			assert.Equal(t, tt.wantValues, frag.Values)
		})
	}
}

func TestBuildFilterClause_Errors(t *testing.T) {
	tests := []struct {
		name    string
		domain  FilterDomain
		filters Filters
		wantErr error
		wantKey string
	}{
		{
			name:    "min above max",
			domain:  CompanyFilters,
			filters: Filters{"minEmployees": 300, "maxEmployees": 200},
			wantErr: services.ErrInvalidRange,
		},
		{
			name:    "min above max from strings",
			domain:  CompanyFilters,
			filters: Filters{"minEmployees": "10", "maxEmployees": "9"},
			wantErr: services.ErrInvalidRange,
		},
		{
			name:    "non-numeric salary",
			domain:  JobFilters,
			filters: Filters{"minSalary": "dog"},
			wantErr: services.ErrInvalidType,
			wantKey: "minSalary",
		},
		{
			name:    "non-numeric employees",
			domain:  CompanyFilters,
			filters: Filters{"maxEmployees": "lots"},
			wantErr: services.ErrInvalidType,
			wantKey: "maxEmployees",
		},
		{
			name:    "empty bound",
			domain:  CompanyFilters,
			filters: Filters{"minEmployees": ""},
			wantErr: services.ErrInvalidType,
			wantKey: "minEmployees",
		},
		{
			name:    "boolean bound",
			domain:  JobFilters,
			filters: Filters{"minSalary": true},
			wantErr: services.ErrInvalidType,
			wantKey: "minSalary",
		},
		{
			name:    "type is checked before range",
			domain:  CompanyFilters,
			filters: Filters{"minEmployees": "x", "maxEmployees": 1},
			wantErr: services.ErrInvalidType,
			wantKey: "minEmployees",
		},
		{
			name:    "unknown key",
			domain:  CompanyFilters,
			filters: Filters{"nope": "nope"},
			wantErr: services.ErrUnrecognizedFilterKey,
			wantKey: "nope",
		},
		{
			name:    "key from the other domain",
			domain:  JobFilters,
			filters: Filters{"title": "a", "maxEmployees": 3},
			wantErr: services.ErrUnrecognizedFilterKey,
			wantKey: "maxEmployees",
		},
		{
			name:    "unknown key is checked before type",
			domain:  JobFilters,
			filters: Filters{"minSalary": "dog", "color": "red"},
			wantErr: services.ErrUnrecognizedFilterKey,
			wantKey: "color",
		},
		{
			name:    "first unknown key in sorted order",
			domain:  CompanyFilters,
			filters: Filters{"dogs": 1, "zebra": 2, "cats": 3, "name": "a", "birds": 4},
			wantErr: services.ErrUnrecognizedFilterKey,
			wantKey: "birds",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frag, err := BuildFilterClause(tt.domain, tt.filters)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, services.IsValidationError(err))
			assert.True(t, frag.IsEmpty())
			if tt.wantKey != "" {
				assert.Equal(t, tt.wantKey, services.GetErrorDetails(err)["key"])
			}
		})
	}
}

func TestBuildFilterClause_UnknownKeyIsStable(t *testing.T) {
	filters := Filters{"size": 1, "color": "red", "age": 3, "weight": 4}

	for i := 0; i < 20; i++ {
		_, err := BuildFilterClause(JobFilters, filters)

		require.Error(t, err)
		assert.Equal(t, "age", services.GetErrorDetails(err)["key"])
		assert.Equal(t, `unrecognized filter "age" for jobs`, services.PublicMessage(err))
	}
}

func TestFilterDomain_Keys(t *testing.T) {
	assert.Equal(t, []string{"name", "minEmployees", "maxEmployees"}, CompanyFilters.Keys())
	assert.Equal(t, []string{"title", "minSalary", "hasEquity"}, JobFilters.Keys())
}

func TestFilterKind_String(t *testing.T) {
	assert.Equal(t, "substring", KindSubstring.String())
	assert.Equal(t, "flag", KindPresenceFlag.String())
	assert.Equal(t, "unknown", FilterKind(42).String())
}
