package identity

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	notesapp "github.com/chronotes/backend/internal/application/notes"
	"github.com/chronotes/backend/internal/domain/identity"
	"github.com/chronotes/backend/internal/domain/shared"
)

// maxAvatarSize is the maximum accepted avatar upload in bytes
const maxAvatarSize = 2 << 20

// ProfileService handles profile reads and updates
type ProfileService struct {
	userRepo  identity.UserRepository
	storage   notesapp.ObjectStorageService
	urlExpiry time.Duration
	logger    *zap.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(
	userRepo identity.UserRepository,
	storage notesapp.ObjectStorageService,
	urlExpiry time.Duration,
	logger *zap.Logger,
) *ProfileService {
	if urlExpiry <= 0 {
		urlExpiry = time.Hour
	}
	return &ProfileService{
		userRepo:  userRepo,
		storage:   storage,
		urlExpiry: urlExpiry,
		logger:    logger,
	}
}

// Get returns the user's profile
func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// Update applies the provided profile fields. The username must be unique
// across other accounts.
func (s *ProfileService) Update(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := user.SetName(*req.Name); err != nil {
			return nil, err
		}
	}

	if req.Username != nil {
		username := strings.ToLower(strings.TrimSpace(*req.Username))
		if username != "" && username != user.Username {
			taken, err := s.userRepo.ExistsByUsername(ctx, username, user.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, shared.NewDomainError("USERNAME_TAKEN", "Username already taken")
			}
		}
		if err := user.SetUsername(username); err != nil {
			return nil, err
		}
	}

	if req.Phone != nil {
		if err := user.SetPhone(*req.Phone); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// ChangePassword rotates the password after verifying the current one
func (s *ProfileService) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := user.ChangePassword(req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info("Password changed", zap.String("user_id", userID.String()))
	return nil
}

// UploadAvatar stores a new avatar image and updates the profile. The old
// avatar object, if any, is deleted best effort.
func (s *ProfileService) UploadAvatar(ctx context.Context, userID uuid.UUID, fileName, contentType string, data []byte) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, shared.NewDomainError("INVALID_IMAGE", "Image data is empty")
	}
	if len(data) > maxAvatarSize {
		return nil, shared.NewDomainError("IMAGE_TOO_LARGE",
			fmt.Sprintf("Avatar exceeds the maximum size of %d bytes", maxAvatarSize))
	}
	if !notesapp.AllowedImageContentTypes[strings.ToLower(contentType)] {
		return nil, shared.NewDomainError("DISALLOWED_CONTENT_TYPE",
			fmt.Sprintf("Content type '%s' is not allowed for avatars", contentType))
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	storageKey := fmt.Sprintf("users/%s/avatar/%s%s", userID.String(), uuid.New().String(), ext)

	if err := s.storage.Upload(ctx, storageKey, data, contentType); err != nil {
		return nil, shared.NewDomainError("UPLOAD_FAILED", "Failed to store the avatar")
	}

	url, _, err := s.storage.GenerateDownloadURL(ctx, storageKey, s.urlExpiry)
	if err != nil {
		_ = s.storage.DeleteObject(ctx, storageKey)
		return nil, shared.NewDomainError("UPLOAD_FAILED", "Failed to generate the avatar URL")
	}

	if err := user.SetImage(url); err != nil {
		_ = s.storage.DeleteObject(ctx, storageKey)
		return nil, err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		_ = s.storage.DeleteObject(ctx, storageKey)
		return nil, err
	}

	resp := ToUserResponse(user)
	return &resp, nil
}
