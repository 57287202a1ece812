package tracking

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	userID := uuid.New()

	t.Run("creates category with valid inputs", func(t *testing.T) {
		category, err := NewCategory(userID, "Deep Work", "#3b82f6")
		require.NoError(t, err)
		require.NotNil(t, category)

		assert.Equal(t, userID, category.UserID)
		assert.Equal(t, "Deep Work", category.Name)
		assert.Equal(t, "#3b82f6", category.Color)
		assert.NotEmpty(t, category.ID)
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		category, err := NewCategory(userID, "  Reading  ", "")
		require.NoError(t, err)
		assert.Equal(t, "Reading", category.Name)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewCategory(userID, "   ", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be empty")
	})

	t.Run("fails with missing user", func(t *testing.T) {
		_, err := NewCategory(uuid.Nil, "Reading", "")
		require.Error(t, err)
	})

	t.Run("fails with malformed color", func(t *testing.T) {
		_, err := NewCategory(userID, "Reading", "blue")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "hex value")
	})

	t.Run("accepts short hex color", func(t *testing.T) {
		_, err := NewCategory(userID, "Reading", "#abc")
		require.NoError(t, err)
	})
}

func TestCategoryUpdate(t *testing.T) {
	category, err := NewCategory(uuid.New(), "Work", "#111111")
	require.NoError(t, err)

	t.Run("updates name and color", func(t *testing.T) {
		require.NoError(t, category.Update("Focus", "#222222"))
		assert.Equal(t, "Focus", category.Name)
		assert.Equal(t, "#222222", category.Color)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		require.Error(t, category.Update("", "#222222"))
		assert.Equal(t, "Focus", category.Name)
	})
}

func TestNormalizeCategoryName(t *testing.T) {
	t.Run("case folds for comparison", func(t *testing.T) {
		assert.Equal(t, NormalizeCategoryName("WORK"), NormalizeCategoryName("work"))
		assert.Equal(t, NormalizeCategoryName("  Straße "), NormalizeCategoryName("STRASSE"))
	})

	t.Run("distinct names stay distinct", func(t *testing.T) {
		assert.NotEqual(t, NormalizeCategoryName("work"), NormalizeCategoryName("workout"))
	})
}
