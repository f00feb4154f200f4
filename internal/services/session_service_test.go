package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gdb, mock
}

func TestCountActiveRejectsBlankUsername(t *testing.T) {
	gdb, mock := setupMockDB(t)
	svc := NewSessionService(gdb, testConfig())

	for _, username := range []string{"", "   ", "\t\n"} {
		count, err := svc.CountActive(username)

		assert.Zero(t, count)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
	}
	require.NoError(t, mock.ExpectationsWereMet(), "no query may run for blank input")
}

func TestCountActiveOnlyCountsNonRevoked(t *testing.T) {
	gdb, mock := setupMockDB(t)
	svc := NewSessionService(gdb, testConfig())

	mock.ExpectQuery(`SELECT count\(\*\) FROM "refresh_tokens"`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := svc.CountActive("alice")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCountActiveDecreasesAfterRevoke(t *testing.T) {
	gdb, mock := setupMockDB(t)
	svc := NewSessionService(gdb, testConfig())

	mock.ExpectQuery(`SELECT count\(\*\) FROM "refresh_tokens"`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "refresh_tokens" SET "revoked"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "refresh_tokens"`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	before, err := svc.CountActive("alice")
	require.NoError(t, err)

	require.NoError(t, svc.Revoke("some-raw-token"))

	after, err := svc.CountActive("alice")
	require.NoError(t, err)

	assert.Equal(t, before-1, after)
	assert.GreaterOrEqual(t, after, int64(0))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCountActiveStorageFailure(t *testing.T) {
	gdb, mock := setupMockDB(t)
	svc := NewSessionService(gdb, testConfig())

	mock.ExpectQuery(`SELECT count\(\*\) FROM "refresh_tokens"`).
		WillReturnError(sqlmock.ErrCancelled)

	count, err := svc.CountActive("alice")

	assert.Zero(t, count)
	var dae *DataAccessError
	require.ErrorAs(t, err, &dae)
}

func TestIssueStoresHashedToken(t *testing.T) {
	gdb, mock := setupMockDB(t)
	svc := NewSessionService(gdb, testConfig())

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "refresh_tokens"`).
		WillReturnRows(sqlmock.NewRows([]string{"revoked"}).AddRow(false))
	mock.ExpectCommit()

	raw, err := svc.Issue("alice")
	require.NoError(t, err)
	assert.NotEmpty(t, raw)
	assert.NotContains(t, raw, " ")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIssueRejectsBlankUsername(t *testing.T) {
	gdb, mock := setupMockDB(t)
	svc := NewSessionService(gdb, testConfig())

	raw, err := svc.Issue("  ")

	assert.Empty(t, raw)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRevokeUpdatesFlagOnly(t *testing.T) {
	gdb, mock := setupMockDB(t)
	svc := NewSessionService(gdb, testConfig())

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "refresh_tokens" SET "revoked"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.Revoke("raw-token"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRevokeRejectsBlankToken(t *testing.T) {
	gdb, _ := setupMockDB(t)
	svc := NewSessionService(gdb, testConfig())

	err := svc.Revoke("")

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestLookupUnknownToken(t *testing.T) {
	gdb, mock := setupMockDB(t)
	svc := NewSessionService(gdb, testConfig())

	mock.ExpectQuery(`SELECT \* FROM "refresh_tokens"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "token_hash", "expires_at", "revoked", "created_at"}))

	stored, err := svc.Lookup("never-issued")

	assert.Nil(t, stored)
	require.ErrorIs(t, err, ErrInvalidToken)
}
