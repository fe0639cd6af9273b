package sqlbuilder

import (
	"fmt"
	"strings"
)

// Fragment is a SQL clause and the values bound to its placeholders.
// Values[i] is bound to $<i+1>.
type Fragment struct {
	Clause string
	Values []any
}

// IsEmpty reports whether the fragment carries no clause
func (f Fragment) IsEmpty() bool {
	return f.Clause == ""
}

// NextPlaceholder returns the ordinal the next appended value will bind to
func (f Fragment) NextPlaceholder() int {
	return len(f.Values) + 1
}

// Where renders the fragment as a WHERE clause, or "" when empty
func (f Fragment) Where() string {
	if f.IsEmpty() {
		return ""
	}
	return " WHERE " + f.Clause
}

func placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

type clauseWriter struct {
	parts  []string
	values []any
}

// bind appends a value and returns its placeholder
func (w *clauseWriter) bind(v any) string {
	w.values = append(w.values, v)
	return placeholder(len(w.values))
}

func (w *clauseWriter) add(part string) {
	w.parts = append(w.parts, part)
}

func (w *clauseWriter) fragment(sep string) Fragment {
	if len(w.parts) == 0 {
		return Fragment{}
	}
	return Fragment{Clause: strings.Join(w.parts, sep), Values: w.values}
}
