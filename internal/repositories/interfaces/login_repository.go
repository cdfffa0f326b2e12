package interfaces

import (
	"context"

	"spinwin/internal/models"
)

type LoginRepository interface {
	// FindByCredentials returns ErrNotFound when no account matches.
	FindByCredentials(ctx context.Context, username, password string) (*models.Login, error)
}
