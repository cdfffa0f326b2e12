package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"spinwin/internal/models"
	"spinwin/internal/repositories/interfaces"
)

type loginRepository struct {
	collection   *mongo.Collection
	queryTimeout time.Duration
}

func NewLoginRepository(db *mongo.Database, loginCollection string, queryTimeout time.Duration) interfaces.LoginRepository {
	return &loginRepository{
		collection:   db.Collection(loginCollection),
		queryTimeout: queryTimeout,
	}
}

func (r *loginRepository) FindByCredentials(ctx context.Context, username, password string) (*models.Login, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var login models.Login
	err := r.collection.FindOne(ctx, bson.M{"username": username, "password": password}).Decode(&login)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find login: %w", err)
	}

	return &login, nil
}

func (r *loginRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}
