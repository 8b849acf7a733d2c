package adminapi

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cafeteca/cafeteca-server/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db
}

func TestWhereTextMatchPostgres(t *testing.T) {
	db := newDryRunDB(t)

	var rows []domain.Category
	stmt := whereTextMatch(db.Model(&domain.Category{}), "latte", "name", "description").
		Find(&rows).Statement

	sql := stmt.SQL.String()
	assert.Contains(t, sql, "name ILIKE ?")
	assert.Contains(t, sql, "description ILIKE ?")
	assert.Contains(t, sql, " OR ")
	assert.Contains(t, stmt.Vars, "%latte%")
}

func TestWhereTextMatchEmptyQueryIsNoop(t *testing.T) {
	db := newDryRunDB(t)

	var rows []domain.Category
	stmt := whereTextMatch(db.Model(&domain.Category{}), "", "name").
		Find(&rows).Statement

	assert.NotContains(t, stmt.SQL.String(), "LIKE")
}
