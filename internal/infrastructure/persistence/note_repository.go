package persistence

import (
	"context"
	"errors"

	"github.com/chronotes/backend/internal/domain/notes"
	"github.com/chronotes/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormNoteRepository implements notes.NoteRepository using GORM
type GormNoteRepository struct {
	db *gorm.DB
}

// NewGormNoteRepository creates a new GormNoteRepository
func NewGormNoteRepository(db *gorm.DB) *GormNoteRepository {
	return &GormNoteRepository{db: db}
}

// visibleTo narrows a note query to notes the user owns or collaborates on
func (r *GormNoteRepository) visibleTo(query *gorm.DB, userID uuid.UUID) *gorm.DB {
	return query.Where(
		"user_id = ? OR id IN (?)",
		userID,
		r.db.Model(&notes.Collaborator{}).Select("note_id").Where("user_id = ?", userID),
	)
}

// CreateWithOwner creates the note and its owner collaborator row in a
// single transaction
func (r *GormNoteRepository) CreateWithOwner(ctx context.Context, note *notes.Note, owner *notes.Collaborator) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Owner", "Collaborators", "Images").Create(note).Error; err != nil {
			return err
		}
		return tx.Omit("User").Create(owner).Error
	})
}

// UpdateWithHistory writes the pre-edit snapshot and the updated note in a
// single transaction
func (r *GormNoteRepository) UpdateWithHistory(ctx context.Context, note *notes.Note, snapshot *notes.NoteHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Editor").Create(snapshot).Error; err != nil {
			return err
		}
		return tx.Omit("Owner", "Collaborators", "Images").Save(note).Error
	})
}

// Update updates the note without recording history, used for pin state
func (r *GormNoteRepository) Update(ctx context.Context, note *notes.Note) error {
	return r.db.WithContext(ctx).Omit("Owner", "Collaborators", "Images").Save(note).Error
}

// Delete removes the note and its collaborators, history and images
func (r *GormNoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("note_id = ?", id).Delete(&notes.Collaborator{}).Error; err != nil {
			return err
		}
		if err := tx.Where("note_id = ?", id).Delete(&notes.NoteHistory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("note_id = ?", id).Delete(&notes.NoteImage{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&notes.Note{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// FindByID loads a note with its owner, collaborators and images
func (r *GormNoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*notes.Note, error) {
	var note notes.Note
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Collaborators").
		Preload("Collaborators.User").
		Preload("Images").
		First(&note, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &note, nil
}

// FindVisibleToUser returns a feed page of notes the user owns or
// collaborates on, pinned first and most recently updated next, plus the
// total count
func (r *GormNoteRepository) FindVisibleToUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]*notes.Note, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	base := r.visibleTo(r.db.WithContext(ctx).Model(&notes.Note{}), userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var result []*notes.Note
	if err := base.
		Preload("Owner").
		Preload("Collaborators").
		Preload("Collaborators.User").
		Preload("Images").
		Order("pinned DESC, updated_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&result).Error; err != nil {
		return nil, 0, err
	}

	return result, total, nil
}

// FindUnpinnedForUser returns all visible unpinned notes ordered by creation
// time descending
func (r *GormNoteRepository) FindUnpinnedForUser(ctx context.Context, userID uuid.UUID) ([]*notes.Note, error) {
	var result []*notes.Note
	if err := r.visibleTo(r.db.WithContext(ctx).Model(&notes.Note{}), userID).
		Where("pinned = ?", false).
		Order("created_at DESC").
		Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

var _ notes.NoteRepository = (*GormNoteRepository)(nil)
