package memory

import (
	"context"

	"spinwin/internal/models"
	"spinwin/internal/repositories/interfaces"
)

type loginRepository struct {
	store *Store
}

func NewLoginRepository(store *Store) interfaces.LoginRepository {
	return &loginRepository{store: store}
}

func (r *loginRepository) FindByCredentials(ctx context.Context, username, password string) (*models.Login, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, login := range r.store.logins {
		if login.Username == username && login.Password == password {
			found := login
			return &found, nil
		}
	}
	return nil, interfaces.ErrNotFound
}
