package memory

import (
	"context"

	"spinwin/internal/models"
	"spinwin/internal/repositories/interfaces"
)

type spinRepository struct {
	store *Store
}

func NewSpinRepository(store *Store) interfaces.SpinRepository {
	return &spinRepository{store: store}
}

func (r *spinRepository) FindEligible(ctx context.Context, filter interfaces.SpinFilter) ([]*models.Spin, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	spins := make([]*models.Spin, 0, len(r.store.spins))
	for _, doc := range r.store.spins {
		spin := models.SpinFromDocument(doc)
		if !filter.Admits(spin) || !r.store.hasRoute(spin.Route) {
			continue
		}
		spins = append(spins, spin)
	}

	interfaces.SortChronologically(spins)
	return filter.KeepNewest(spins), nil
}
