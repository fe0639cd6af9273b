package postgres

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return WrapDB(sqlx.NewDb(sqlDB, "sqlmock"), zap.NewNop()), mock
}

// q escapes query so sqlmock matches it literally
func q(query string) string {
	return regexp.QuoteMeta(query)
}

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }
