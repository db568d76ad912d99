// Package notes persists notes. Every lookup and mutation is scoped to the
// owning user, so a note of another user behaves exactly like a missing one.
package notes

import (
	"context"

	"github.com/dmitrijs2005/gophnotes/internal/server/models"
)

type Repository interface {
	// Create stores a new note for note.UserID and returns its id.
	Create(ctx context.Context, note *models.Note) (int64, error)
	ListByOwner(ctx context.Context, userID int64) ([]models.Note, error)
	// GetByID returns common.ErrNotFound when the note does not exist or
	// belongs to someone else.
	GetByID(ctx context.Context, id, userID int64) (*models.Note, error)
	// Update and Delete report the number of affected rows (0 or 1).
	Update(ctx context.Context, note *models.Note) (int64, error)
	Delete(ctx context.Context, id, userID int64) (int64, error)
	// Search matches term case-insensitively against title and content.
	// A nil or empty term matches every note of the user.
	Search(ctx context.Context, userID int64, term *string) ([]models.Note, error)
}
