package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/chronotes/backend/internal/domain/shared"
	"github.com/chronotes/backend/internal/domain/social"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormFriendshipRepository_FindBetween(t *testing.T) {
	t.Run("finds the pair row in either direction", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormFriendshipRepository(gormDB)

		userA := uuid.New()
		userB := uuid.New()
		rowID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "requester_id", "addressee_id", "status"}).
			AddRow(rowID, userB, userA, "PENDING")

		mock.ExpectQuery(`SELECT \* FROM "friendships" WHERE \(requester_id = \$1 AND addressee_id = \$2\) OR \(requester_id = \$3 AND addressee_id = \$4\) ORDER BY .* LIMIT .*`).
			WithArgs(userA, userB, userB, userA, 1).
			WillReturnRows(rows)

		friendship, err := repo.FindBetween(context.Background(), userA, userB)

		assert.NoError(t, err)
		require.NotNil(t, friendship)
		assert.Equal(t, social.FriendshipStatusPending, friendship.Status)
		assert.True(t, friendship.Involves(userA))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when no row exists", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormFriendshipRepository(gormDB)

		userA := uuid.New()
		userB := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "friendships"`).
			WithArgs(userA, userB, userB, userA, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		friendship, err := repo.FindBetween(context.Background(), userA, userB)

		assert.Nil(t, friendship)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
