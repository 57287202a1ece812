package persistence

import (
	"context"
	"errors"

	"github.com/chronotes/backend/internal/domain/notes"
	"github.com/chronotes/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCollaboratorRepository implements notes.CollaboratorRepository using GORM
type GormCollaboratorRepository struct {
	db *gorm.DB
}

// NewGormCollaboratorRepository creates a new GormCollaboratorRepository
func NewGormCollaboratorRepository(db *gorm.DB) *GormCollaboratorRepository {
	return &GormCollaboratorRepository{db: db}
}

// Create adds a collaborator to a note
func (r *GormCollaboratorRepository) Create(ctx context.Context, collaborator *notes.Collaborator) error {
	return r.db.WithContext(ctx).Omit("User").Create(collaborator).Error
}

// Delete removes a collaborator row
func (r *GormCollaboratorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&notes.Collaborator{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByNote returns all collaborators of a note with their users
func (r *GormCollaboratorRepository) FindByNote(ctx context.Context, noteID uuid.UUID) ([]*notes.Collaborator, error) {
	var collaborators []*notes.Collaborator
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("note_id = ?", noteID).
		Order("created_at ASC").
		Find(&collaborators).Error; err != nil {
		return nil, err
	}
	return collaborators, nil
}

// FindByNoteAndUser finds a user's membership row on a note
func (r *GormCollaboratorRepository) FindByNoteAndUser(ctx context.Context, noteID, userID uuid.UUID) (*notes.Collaborator, error) {
	var collaborator notes.Collaborator
	if err := r.db.WithContext(ctx).
		Where("note_id = ? AND user_id = ?", noteID, userID).
		First(&collaborator).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &collaborator, nil
}

// Exists checks whether the user is already a collaborator
func (r *GormCollaboratorRepository) Exists(ctx context.Context, noteID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&notes.Collaborator{}).
		Where("note_id = ? AND user_id = ?", noteID, userID).
		Count(&count).Error
	return count > 0, err
}

var _ notes.CollaboratorRepository = (*GormCollaboratorRepository)(nil)

// GormNoteHistoryRepository implements notes.NoteHistoryRepository using GORM
type GormNoteHistoryRepository struct {
	db *gorm.DB
}

// NewGormNoteHistoryRepository creates a new GormNoteHistoryRepository
func NewGormNoteHistoryRepository(db *gorm.DB) *GormNoteHistoryRepository {
	return &GormNoteHistoryRepository{db: db}
}

// FindByNote returns snapshots for a note, newest first
func (r *GormNoteHistoryRepository) FindByNote(ctx context.Context, noteID uuid.UUID) ([]*notes.NoteHistory, error) {
	var history []*notes.NoteHistory
	if err := r.db.WithContext(ctx).
		Preload("Editor").
		Where("note_id = ?", noteID).
		Order("created_at DESC").
		Find(&history).Error; err != nil {
		return nil, err
	}
	return history, nil
}

var _ notes.NoteHistoryRepository = (*GormNoteHistoryRepository)(nil)

// GormNoteImageRepository implements notes.NoteImageRepository using GORM
type GormNoteImageRepository struct {
	db *gorm.DB
}

// NewGormNoteImageRepository creates a new GormNoteImageRepository
func NewGormNoteImageRepository(db *gorm.DB) *GormNoteImageRepository {
	return &GormNoteImageRepository{db: db}
}

// Create records an uploaded image
func (r *GormNoteImageRepository) Create(ctx context.Context, image *notes.NoteImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

// Delete removes an image record
func (r *GormNoteImageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&notes.NoteImage{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByIDForNote finds an image scoped to its note
func (r *GormNoteImageRepository) FindByIDForNote(ctx context.Context, noteID, id uuid.UUID) (*notes.NoteImage, error) {
	var image notes.NoteImage
	if err := r.db.WithContext(ctx).
		Where("note_id = ? AND id = ?", noteID, id).
		First(&image).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &image, nil
}

// FindByNote returns all images of a note
func (r *GormNoteImageRepository) FindByNote(ctx context.Context, noteID uuid.UUID) ([]*notes.NoteImage, error) {
	var images []*notes.NoteImage
	if err := r.db.WithContext(ctx).
		Where("note_id = ?", noteID).
		Order("created_at ASC").
		Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

var _ notes.NoteImageRepository = (*GormNoteImageRepository)(nil)
