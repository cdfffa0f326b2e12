package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"spinwin/internal/models"
	"spinwin/internal/repositories/interfaces"
	"spinwin/pkg/logger"
)

type spinRepository struct {
	collection      *mongo.Collection
	loginCollection string
	queryTimeout    time.Duration
	logger          *logger.Logger
}

func NewSpinRepository(db *mongo.Database, spinCollection, loginCollection string, queryTimeout time.Duration, log *logger.Logger) interfaces.SpinRepository {
	return &spinRepository{
		collection:      db.Collection(spinCollection),
		loginCollection: loginCollection,
		queryTimeout:    queryTimeout,
		logger:          log,
	}
}

func (r *spinRepository) FindEligible(ctx context.Context, filter interfaces.SpinFilter) ([]*models.Spin, error) {
	if r.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.queryTimeout)
		defer cancel()
	}

	opts := options.Aggregate().SetAllowDiskUse(true)
	cursor, err := r.collection.Aggregate(ctx, eligiblePipeline(r.loginCollection, filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate spin results: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode spin results: %w", err)
	}

	spins := make([]*models.Spin, 0, len(docs))
	dropped := 0
	for _, doc := range docs {
		spin := models.SpinFromDocument(doc)
		if !filter.Admits(spin) {
			dropped++
			continue
		}
		spins = append(spins, spin)
	}

	if dropped > 0 {
		r.logger.WithFields(map[string]interface{}{
			"dropped": dropped,
			"route":   filter.Route,
		}).Debug("Spin results dropped after normalization")
	}

	interfaces.SortChronologically(spins)
	return filter.KeepNewest(spins), nil
}
