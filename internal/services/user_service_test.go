package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/chenglu1/admin-console/internal/models"
)

func newMockedUserService(t *testing.T) (*UserService, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return NewUserService(db), mock
}

// expectAdminLookup satisfies the Get() issued before the guard check: the
// user row plus an empty role join.
func expectAdminLookup(mock sqlmock.Sqlmock, id uuid.UUID) {
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "status"}).
			AddRow(id.String(), ProtectedUsername, models.UserStatusActive))
	mock.ExpectQuery(`SELECT (.+) FROM "user_roles"`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "role_id"}))
}

func TestDelete_RefusesSeededAdmin(t *testing.T) {
	svc, mock := newMockedUserService(t)
	id := uuid.New()
	expectAdminLookup(mock, id)

	err := svc.Delete(id)
	require.ErrorIs(t, err, ErrProtectedUser)
	// No DELETE ever reaches the database.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChangeStatus_RefusesDisablingSeededAdmin(t *testing.T) {
	svc, mock := newMockedUserService(t)
	id := uuid.New()
	expectAdminLookup(mock, id)

	err := svc.ChangeStatus(id, models.UserStatusDisabled)
	require.ErrorIs(t, err, ErrProtectedUser)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChangeStatus_RejectsUnknownStatus(t *testing.T) {
	svc, mock := newMockedUserService(t)

	err := svc.ChangeStatus(uuid.New(), "frozen")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrProtectedUser)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_UnknownUser(t *testing.T) {
	svc, mock := newMockedUserService(t)
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "status"}))

	err := svc.Delete(uuid.New())
	require.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
