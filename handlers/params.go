package handlers

import (
	"fmt"
	"net/http"

	"github.com/upb/jobly/internal/sqlbuilder"
	"github.com/upb/jobly/models"
	"github.com/upb/jobly/services"
)

// queryFilters collects the query string into filters. A repeated key keeps
// its first value.
func queryFilters(r *http.Request) sqlbuilder.Filters {
	query := r.URL.Query()
	filters := make(sqlbuilder.Filters, len(query))
	for key, values := range query {
		if len(values) > 0 {
			filters[key] = values[0]
		}
	}
	return filters
}

// setField appends a present field to update; null binds as SQL NULL
func setField[T any](update sqlbuilder.Update, name string, v models.Nullable[T]) sqlbuilder.Update {
	if !v.Set {
		return update
	}
	return update.Set(name, v.Any())
}

// notNull pairs a field name with whether it was sent as null
type notNull struct {
	field  string
	isNull bool
}

// rejectNull fails on the first field that cannot be null but was sent as null
func rejectNull(checks ...notNull) error {
	for _, c := range checks {
		if c.isNull {
			return services.ErrInvalidInput.
				WithMessage(fmt.Sprintf("%s cannot be null", c.field)).
				WithDetail("field", c.field)
		}
	}
	return nil
}
