package auth

import (
	"context"
	"testing"
	"time"

	"github.com/chronotes/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-that-is-long-enough-123",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 168 * time.Hour,
		Issuer:                 "chronotes-test",
	})
}

func TestGenerateTokenPair(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		UserID: userID,
		Email:  "ada@example.com",
		Name:   "Ada",
	})
	require.NoError(t, err)
	require.NotNil(t, pair)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)

	t.Run("access token carries identity claims", func(t *testing.T) {
		claims, err := svc.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)

		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, "ada@example.com", claims.Email)
		assert.Equal(t, TokenTypeAccess, claims.TokenType)

		parsed, err := claims.GetUserUUID()
		require.NoError(t, err)
		assert.Equal(t, userID, parsed)
	})

	t.Run("refresh token validates as refresh only", func(t *testing.T) {
		_, err := svc.ValidateAccessToken(pair.RefreshToken)
		assert.ErrorIs(t, err, ErrInvalidTokenType)

		claims, err := svc.ValidateRefreshToken(pair.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, TokenTypeRefresh, claims.TokenType)
	})
}

func TestValidateAccessToken(t *testing.T) {
	svc := newTestJWTService()

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects token signed with another secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                 "another-secret-entirely-0123456789",
			AccessTokenExpiration:  15 * time.Minute,
			RefreshTokenExpiration: time.Hour,
			Issuer:                 "chronotes-test",
		})
		pair, err := other.GenerateTokenPair(GenerateTokenInput{UserID: uuid.New()})
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		expired := NewJWTService(config.JWTConfig{
			Secret:                 "test-secret-that-is-long-enough-123",
			AccessTokenExpiration:  -time.Minute,
			RefreshTokenExpiration: time.Hour,
			Issuer:                 "chronotes-test",
		})
		pair, err := expired.GenerateTokenPair(GenerateTokenInput{UserID: uuid.New()})
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}

func TestRefreshTokenPair(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{UserID: userID, Email: "ada@example.com"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshTokenPair(pair.RefreshToken)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)

	t.Run("access token cannot be used for refresh", func(t *testing.T) {
		_, err := svc.RefreshTokenPair(pair.AccessToken)
		require.Error(t, err)
	})
}

func TestInMemoryTokenBlacklist(t *testing.T) {
	ctx := context.Background()
	blacklist := NewInMemoryTokenBlacklist()

	t.Run("unknown jti is not blacklisted", func(t *testing.T) {
		blocked, err := blacklist.IsBlacklisted(ctx, "jti-1")
		require.NoError(t, err)
		assert.False(t, blocked)
	})

	t.Run("added jti is blacklisted until ttl passes", func(t *testing.T) {
		require.NoError(t, blacklist.AddToBlacklist(ctx, "jti-2", time.Minute))
		blocked, err := blacklist.IsBlacklisted(ctx, "jti-2")
		require.NoError(t, err)
		assert.True(t, blocked)
	})

	t.Run("expired entry is dropped", func(t *testing.T) {
		require.NoError(t, blacklist.AddToBlacklist(ctx, "jti-3", -time.Second))
		blocked, err := blacklist.IsBlacklisted(ctx, "jti-3")
		require.NoError(t, err)
		assert.False(t, blocked)
	})
}
