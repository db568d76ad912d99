// Package users persists credential records.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophnotes/internal/server/models"
)

// Repository is the user store. Create fails with common.ErrAlreadyExists
// when the email is taken; lookups fail with common.ErrNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}
