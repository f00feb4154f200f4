package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func credentialRows(t *testing.T, username, secret string) *sqlmock.Rows {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.MinCost)
	require.NoError(t, err)
	return sqlmock.NewRows([]string{"id", "username", "secret_hash", "created_at", "updated_at"}).
		AddRow(uuid.New(), username, string(hash), time.Now(), time.Now())
}

func TestAuthorizeValidSecret(t *testing.T) {
	gdb, mock := setupMockDB(t)
	store := NewCredentialStore(gdb)

	mock.ExpectQuery(`SELECT \* FROM "credentials"`).
		WithArgs("alice", 1).
		WillReturnRows(credentialRows(t, "alice", "secret"))

	ok, err := store.Authorize("alice", "secret")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAuthorizeWrongSecret(t *testing.T) {
	gdb, mock := setupMockDB(t)
	store := NewCredentialStore(gdb)

	mock.ExpectQuery(`SELECT \* FROM "credentials"`).
		WithArgs("alice", 1).
		WillReturnRows(credentialRows(t, "alice", "secret"))

	ok, err := store.Authorize("alice", "wrong")
	require.NoError(t, err, "a rejected secret is not an error")
	assert.False(t, ok)
}

func TestAuthorizeUnknownUser(t *testing.T) {
	gdb, mock := setupMockDB(t)
	store := NewCredentialStore(gdb)

	mock.ExpectQuery(`SELECT \* FROM "credentials"`).
		WithArgs("mallory", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "secret_hash", "created_at", "updated_at"}))

	ok, err := store.Authorize("mallory", "anything")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuthorizeStorageFailure(t *testing.T) {
	gdb, mock := setupMockDB(t)
	store := NewCredentialStore(gdb)

	mock.ExpectQuery(`SELECT \* FROM "credentials"`).
		WillReturnError(sqlmock.ErrCancelled)

	ok, err := store.Authorize("alice", "secret")

	assert.False(t, ok)
	var dae *DataAccessError
	require.ErrorAs(t, err, &dae)
}
