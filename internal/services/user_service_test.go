package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"identity/internal/models/db_models"
	"identity/internal/repositories"
	mem "identity/pkg/memcache"
	"identity/pkg/utils"
)

func newUserServiceWithMock(t *testing.T) (UserServiceInterface, sqlmock.Sqlmock) {
	t.Helper()
	service, mock, _ := newUserServiceWithCache(t)
	return service, mock
}

func newUserServiceWithCache(t *testing.T) (UserServiceInterface, sqlmock.Sqlmock, *mem.RoleEntries) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	cache := mem.NewRoleEntries()
	return NewUserService(repositories.NewCrudRepository[db_models.User](db), cache), mock, cache
}

func TestUserService_ListUsers(t *testing.T) {
	service, mock := newUserServiceWithMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "user"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "user"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "first_name", "last_name", "created_at", "updated_at"}).
			AddRow(uuid.NewString(), "grace@example.com", "Grace", "", now, now).
			AddRow(uuid.NewString(), "ada@example.com", "Ada", "Lovelace", now, now))

	page, err := service.ListUsers(context.Background(), 1, 2)
	require.NoError(t, err)

	require.Len(t, page.Result, 2)
	assert.Equal(t, "grace@example.com", page.Result[0].Email)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	assert.Equal(t, int64(3), page.Pagination.TotalItems)
	require.NotNil(t, page.Pagination.NextPage)
	assert.Equal(t, 2, *page.Pagination.NextPage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_ListUsersRejectsBadPage(t *testing.T) {
	service, mock := newUserServiceWithMock(t)

	_, err := service.ListUsers(context.Background(), 0, 5)
	assert.ErrorIs(t, err, utils.ErrValidation)

	_, err = service.ListUsers(context.Background(), 1, utils.MaxLimit+1)
	assert.ErrorIs(t, err, utils.ErrValidation)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_GetUser(t *testing.T) {
	service, mock := newUserServiceWithMock(t)
	now := time.Now()
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "user" WHERE id = $1`)).
		WithArgs(id, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "first_name", "last_name", "created_at", "updated_at"}).
			AddRow(id.String(), "ada@example.com", "Ada", "Lovelace", now, now))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "user" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	user, err := service.GetUser(context.Background(), id.String())
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)

	_, err = service.GetUser(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, utils.ErrNotFound)

	_, err = service.GetUser(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, utils.ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_DeleteUserDropsCachedRole(t *testing.T) {
	service, mock, cache := newUserServiceWithCache(t)
	id := uuid.New()
	cache.Set(id.String(), db_models.RoleSuperAdmin, time.Minute)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "user" SET "deleted_at"=$1 WHERE id = $2`)).
		WithArgs(sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, service.DeleteUser(context.Background(), id.String()))

	_, ok := cache.Get(id.String())
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_DeleteUserMissing(t *testing.T) {
	service, mock, cache := newUserServiceWithCache(t)
	id := uuid.New()
	cache.Set(id.String(), db_models.RoleCustomer, time.Minute)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "user" SET "deleted_at"=$1 WHERE id = $2`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := service.DeleteUser(context.Background(), id.String())
	assert.ErrorIs(t, err, utils.ErrNotFound)

	_, ok := cache.Get(id.String())
	assert.True(t, ok)

	assert.ErrorIs(t, service.DeleteUser(context.Background(), "42"), utils.ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}
