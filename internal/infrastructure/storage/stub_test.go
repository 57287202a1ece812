package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubObjectStorage(t *testing.T) {
	ctx := context.Background()
	stub := NewStubObjectStorage()

	t.Run("upload then exists", func(t *testing.T) {
		require.NoError(t, stub.Upload(ctx, "notes/1/a.png", []byte("png"), "image/png"))

		exists, err := stub.ObjectExists(ctx, "notes/1/a.png")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("delete removes the object", func(t *testing.T) {
		require.NoError(t, stub.Upload(ctx, "notes/1/b.png", []byte("png"), "image/png"))
		require.NoError(t, stub.DeleteObject(ctx, "notes/1/b.png"))

		exists, err := stub.ObjectExists(ctx, "notes/1/b.png")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("download url embeds the key", func(t *testing.T) {
		url, expiresAt, err := stub.GenerateDownloadURL(ctx, "notes/1/a.png", time.Minute)
		require.NoError(t, err)
		assert.Contains(t, url, "notes/1/a.png")
		assert.True(t, expiresAt.After(time.Now()))
	})

	t.Run("empty key is rejected", func(t *testing.T) {
		assert.Error(t, stub.Upload(ctx, "", nil, ""))
		assert.Error(t, stub.DeleteObject(ctx, ""))
		_, err := stub.ObjectExists(ctx, "")
		assert.Error(t, err)
	})
}
