package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/chronotes/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDB creates a GORM DB backed by a mocked SQL connection
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestGormCategoryRepository_FindByIDForUser(t *testing.T) {
	t.Run("finds category owned by user", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormCategoryRepository(gormDB)

		userID := uuid.New()
		categoryID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "user_id", "name", "color"}).
			AddRow(categoryID, userID, "Deep Work", "#3b82f6")

		mock.ExpectQuery(`SELECT \* FROM "categories" WHERE user_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(userID, categoryID, 1).
			WillReturnRows(rows)

		category, err := repo.FindByIDForUser(context.Background(), userID, categoryID)

		assert.NoError(t, err)
		require.NotNil(t, category)
		assert.Equal(t, "Deep Work", category.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for another user's category", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormCategoryRepository(gormDB)

		userID := uuid.New()
		categoryID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "categories" WHERE user_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(userID, categoryID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		category, err := repo.FindByIDForUser(context.Background(), userID, categoryID)

		assert.Nil(t, category)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCategoryRepository_ExistsByName(t *testing.T) {
	t.Run("matches names case-insensitively", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormCategoryRepository(gormDB)

		userID := uuid.New()

		rows := sqlmock.NewRows([]string{"count"}).AddRow(1)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "categories" WHERE user_id = \$1 AND LOWER\(name\) = LOWER\(\$2\)`).
			WithArgs(userID, "WORK").
			WillReturnRows(rows)

		exists, err := repo.ExistsByName(context.Background(), userID, "WORK")

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports missing name", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormCategoryRepository(gormDB)

		userID := uuid.New()

		rows := sqlmock.NewRows([]string{"count"}).AddRow(0)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "categories" WHERE user_id = \$1 AND LOWER\(name\) = LOWER\(\$2\)`).
			WithArgs(userID, "idle").
			WillReturnRows(rows)

		exists, err := repo.ExistsByName(context.Background(), userID, "idle")

		assert.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCategoryRepository_Delete(t *testing.T) {
	t.Run("returns not found when nothing deleted", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormCategoryRepository(gormDB)

		userID := uuid.New()
		categoryID := uuid.New()

		mock.ExpectExec(`DELETE FROM "categories" WHERE user_id = \$1 AND id = \$2`).
			WithArgs(userID, categoryID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), userID, categoryID)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
