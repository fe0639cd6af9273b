// Package sqlbuilder turns partial updates and filter parameters into
// parameterized SQL fragments for PostgreSQL.
//
// The builder never executes SQL and never inlines values: every value is
// bound through a positional placeholder ($1, $2, ...) and returned in
// Fragment.Values in placeholder order. Column identifiers come from
// developer-provided tables only.
package sqlbuilder
