package tracking

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeEntry(t *testing.T) {
	userID := uuid.New()
	categoryID := uuid.New()
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	t.Run("creates entry with valid inputs", func(t *testing.T) {
		entry, err := NewTimeEntry(userID, categoryID, "Morning review", "inbox and planning", start, end)
		require.NoError(t, err)
		require.NotNil(t, entry)

		assert.Equal(t, userID, entry.UserID)
		assert.Equal(t, categoryID, entry.CategoryID)
		assert.Equal(t, "Morning review", entry.Title)
		assert.Equal(t, time.Hour, entry.Duration())
	})

	t.Run("fails when end is not after start", func(t *testing.T) {
		_, err := NewTimeEntry(userID, categoryID, "x", "", start, start)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "after start")

		_, err = NewTimeEntry(userID, categoryID, "x", "", end, start)
		require.Error(t, err)
	})

	t.Run("fails with empty title", func(t *testing.T) {
		_, err := NewTimeEntry(userID, categoryID, "  ", "", start, end)
		require.Error(t, err)
	})

	t.Run("fails with missing category", func(t *testing.T) {
		_, err := NewTimeEntry(userID, uuid.Nil, "x", "", start, end)
		require.Error(t, err)
	})

	t.Run("fails with zero times", func(t *testing.T) {
		_, err := NewTimeEntry(userID, categoryID, "x", "", time.Time{}, end)
		require.Error(t, err)
	})
}

func TestTimeEntryUpdate(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	entry, err := NewTimeEntry(uuid.New(), uuid.New(), "draft", "", start, start.Add(time.Hour))
	require.NoError(t, err)

	t.Run("moves the entry to a new interval", func(t *testing.T) {
		newCategory := uuid.New()
		newStart := start.Add(2 * time.Hour)
		require.NoError(t, entry.Update(newCategory, "revised", "notes", newStart, newStart.Add(30*time.Minute)))

		assert.Equal(t, newCategory, entry.CategoryID)
		assert.Equal(t, "revised", entry.Title)
		assert.Equal(t, 30*time.Minute, entry.Duration())
	})

	t.Run("rejects inverted interval", func(t *testing.T) {
		require.Error(t, entry.Update(entry.CategoryID, "revised", "", start.Add(time.Hour), start))
	})
}
