package db

import (
	"context"
	"errors"
	"regexp"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnString(t *testing.T) {
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_NAME", "")
	assert.Equal(t, "postgres://u@h/db", ConnString("postgres://u@h/db"))
	assert.Empty(t, ConnString(""))

	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "deck")
	t.Setenv("DB_NAME", "decks")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_SSLMODE", "")
	assert.Equal(t, "host=localhost port=5432 user=deck password=pw dbname=decks sslmode=disable", ConnString(""))
}

func TestEnsureSchema(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS decks")).
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	require.NoError(t, EnsureSchema(context.Background(), mock))

	mock.ExpectExec("CREATE TABLE").WillReturnError(errors.New("permission denied"))
	err = EnsureSchema(context.Background(), mock)
	require.ErrorContains(t, err, "permission denied")

	require.NoError(t, mock.ExpectationsWereMet())
}
