package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chronotes/backend/internal/domain/identity"
	"github.com/chronotes/backend/internal/domain/shared"
	"github.com/chronotes/backend/internal/infrastructure/auth"
	"github.com/chronotes/backend/internal/infrastructure/config"
)

// ============================================================================
// Mocks
// ============================================================================

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByIdentifier(ctx context.Context, identifier string) (*identity.User, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, username, excludeID)
	return args.Bool(0), args.Error(1)
}

// ============================================================================
// Helpers
// ============================================================================

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-that-is-long-enough",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "chronotes-test",
	})
}

func newTestAuthService(userRepo identity.UserRepository) *AuthService {
	return NewAuthService(userRepo, newTestJWTService(), auth.NewInMemoryTokenBlacklist(), zap.NewNop())
}

func testUser(t *testing.T) *identity.User {
	t.Helper()
	user, err := identity.NewUser("Ada Lovelace", "ada@example.com", "password123")
	require.NoError(t, err)
	return user
}

// ============================================================================
// Tests
// ============================================================================

func TestAuthServiceRegister(t *testing.T) {
	t.Run("creates account and returns tokens", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newTestAuthService(userRepo)

		userRepo.On("ExistsByEmail", mock.Anything, "ada@example.com").Return(false, nil)
		userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *identity.User) bool {
			return u.Email == "ada@example.com" && u.Name == "Ada Lovelace"
		})).Return(nil)

		resp, err := service.Register(context.Background(), RegisterRequest{
			Name:     "Ada Lovelace",
			Email:    "Ada@Example.com",
			Password: "password123",
		})

		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", resp.User.Email)
		assert.NotEmpty(t, resp.Tokens.AccessToken)
		assert.NotEmpty(t, resp.Tokens.RefreshToken)
		userRepo.AssertExpectations(t)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newTestAuthService(userRepo)

		userRepo.On("ExistsByEmail", mock.Anything, "ada@example.com").Return(true, nil)

		_, err := service.Register(context.Background(), RegisterRequest{
			Name:     "Ada Lovelace",
			Email:    "ada@example.com",
			Password: "password123",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EMAIL_TAKEN", domainErr.Code)
		userRepo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects weak password", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newTestAuthService(userRepo)
		userRepo.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)

		_, err := service.Register(context.Background(), RegisterRequest{
			Name:     "Ada Lovelace",
			Email:    "ada@example.com",
			Password: "short",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PASSWORD", domainErr.Code)
	})
}

func TestAuthServiceLogin(t *testing.T) {
	t.Run("valid credentials", func(t *testing.T) {
		user := testUser(t)
		userRepo := new(MockUserRepository)
		service := newTestAuthService(userRepo)
		userRepo.On("FindByEmail", mock.Anything, "ada@example.com").Return(user, nil)

		resp, err := service.Login(context.Background(), LoginRequest{
			Email:    "ada@example.com",
			Password: "password123",
		})

		require.NoError(t, err)
		assert.Equal(t, user.ID, resp.User.ID)
		assert.NotEmpty(t, resp.Tokens.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		user := testUser(t)
		userRepo := new(MockUserRepository)
		service := newTestAuthService(userRepo)
		userRepo.On("FindByEmail", mock.Anything, "ada@example.com").Return(user, nil)

		_, err := service.Login(context.Background(), LoginRequest{
			Email:    "ada@example.com",
			Password: "wrong-password",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})

	t.Run("unknown email yields the same error as wrong password", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newTestAuthService(userRepo)
		userRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, shared.ErrNotFound)

		_, err := service.Login(context.Background(), LoginRequest{
			Email:    "nobody@example.com",
			Password: "password123",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})
}

func TestAuthServiceLogoutAndRefresh(t *testing.T) {
	t.Run("logout revokes the token", func(t *testing.T) {
		user := testUser(t)
		jwtService := newTestJWTService()
		blacklist := auth.NewInMemoryTokenBlacklist()
		service := NewAuthService(new(MockUserRepository), jwtService, blacklist, zap.NewNop())

		tokens, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
			UserID: user.ID,
			Email:  user.Email,
			Name:   user.Name,
		})
		require.NoError(t, err)

		claims, err := jwtService.ValidateAccessToken(tokens.AccessToken)
		require.NoError(t, err)

		require.NoError(t, service.Logout(context.Background(), claims))

		blacklisted, err := blacklist.IsBlacklisted(context.Background(), claims.ID)
		require.NoError(t, err)
		assert.True(t, blacklisted)
	})

	t.Run("refresh issues a new pair", func(t *testing.T) {
		user := testUser(t)
		userRepo := new(MockUserRepository)
		jwtService := newTestJWTService()
		service := NewAuthService(userRepo, jwtService, auth.NewInMemoryTokenBlacklist(), zap.NewNop())

		tokens, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
			UserID: user.ID,
			Email:  user.Email,
			Name:   user.Name,
		})
		require.NoError(t, err)

		userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		resp, err := service.Refresh(context.Background(), tokens.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID, resp.User.ID)
		assert.NotEmpty(t, resp.Tokens.AccessToken)
	})

	t.Run("refresh rejects an access token", func(t *testing.T) {
		user := testUser(t)
		jwtService := newTestJWTService()
		service := NewAuthService(new(MockUserRepository), jwtService, auth.NewInMemoryTokenBlacklist(), zap.NewNop())

		tokens, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
			UserID: user.ID,
			Email:  user.Email,
			Name:   user.Name,
		})
		require.NoError(t, err)

		_, err = service.Refresh(context.Background(), tokens.AccessToken)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_REFRESH_TOKEN", domainErr.Code)
	})
}

func TestProfileServiceUpdate(t *testing.T) {
	t.Run("changes username when free", func(t *testing.T) {
		user := testUser(t)
		userRepo := new(MockUserRepository)
		service := NewProfileService(userRepo, nil, time.Hour, zap.NewNop())

		userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
		userRepo.On("ExistsByUsername", mock.Anything, "ada", user.ID).Return(false, nil)
		userRepo.On("Update", mock.Anything, user).Return(nil)

		username := "Ada"
		resp, err := service.Update(context.Background(), user.ID, UpdateProfileRequest{Username: &username})

		require.NoError(t, err)
		assert.Equal(t, "ada", resp.Username)
	})

	t.Run("rejects a taken username", func(t *testing.T) {
		user := testUser(t)
		userRepo := new(MockUserRepository)
		service := NewProfileService(userRepo, nil, time.Hour, zap.NewNop())

		userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
		userRepo.On("ExistsByUsername", mock.Anything, "taken", user.ID).Return(true, nil)

		username := "taken"
		_, err := service.Update(context.Background(), user.ID, UpdateProfileRequest{Username: &username})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "USERNAME_TAKEN", domainErr.Code)
		userRepo.AssertNotCalled(t, "Update")
	})

	t.Run("change password verifies the current one", func(t *testing.T) {
		user := testUser(t)
		userRepo := new(MockUserRepository)
		service := NewProfileService(userRepo, nil, time.Hour, zap.NewNop())
		userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		err := service.ChangePassword(context.Background(), user.ID, ChangePasswordRequest{
			CurrentPassword: "wrong",
			NewPassword:     "newpassword456",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})
}
