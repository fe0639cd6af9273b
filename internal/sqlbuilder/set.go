package sqlbuilder

import (
	"github.com/upb/jobly/services"
)

// Field is one assignment of a partial update
type Field struct {
	Name  string
	Value any
}

// Update is an ordered partial update. Field order decides placeholder order.
type Update []Field

// Set appends a field and returns the update for chaining
func (u Update) Set(name string, value any) Update {
	return append(u, Field{Name: name, Value: value})
}

// Names returns the field names in order
func (u Update) Names() []string {
	names := make([]string, len(u))
	for i, f := range u {
		names[i] = f.Name
	}
	return names
}

// BuildSetClause renders update as "<col>=$1, <col>=$2, ...".
//
// columns translates field names to column names; a field without an entry
// is used as its own column name. An empty update fails with
// services.ErrEmptyUpdate.
func BuildSetClause(update Update, columns map[string]string) (Fragment, error) {
	if len(update) == 0 {
		return Fragment{}, services.ErrEmptyUpdate
	}

	w := &clauseWriter{}
	for _, f := range update {
		col, ok := columns[f.Name]
		if !ok {
			col = f.Name
		}
		w.add(col + "=" + w.bind(f.Value))
	}
	return w.fragment(", "), nil
}
