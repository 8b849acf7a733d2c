package adminapi

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestResolveCategoryIDReusesExistingRow(t *testing.T) {
	db, mock := newMockDB(t)

	now := time.Now()
	mock.ExpectQuery(`SELECT .* FROM "categories" WHERE name = \$1`).
		WithArgs("Cafea", 1).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "name", "description", "image_url", "is_active", "created_at", "updated_at"}).
			AddRow(int64(77), "Cafea", "", "", true, now, now))

	id, err := resolveCategoryID(db, "Cafea")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, int64(77), *id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveCategoryIDEmptyNameIsNil(t *testing.T) {
	db, mock := newMockDB(t)

	id, err := resolveCategoryID(db, "   ")
	require.NoError(t, err)
	assert.Nil(t, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}
