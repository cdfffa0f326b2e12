package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IndexSet names the collections that receive read-path indexes.
type IndexSet struct {
	SpinCollection  string
	LoginCollection string
}

// EnsureIndexes creates the indexes the analytics pipelines lean on. It only
// creates indexes and never touches documents, so running it repeatedly is
// safe.
func EnsureIndexes(ctx context.Context, db *mongo.Database, set IndexSet) error {
	if err := createSpinResultIndexes(ctx, db.Collection(set.SpinCollection)); err != nil {
		return fmt.Errorf("spin result indexes: %w", err)
	}
	if err := createLoginIndexes(ctx, db.Collection(set.LoginCollection)); err != nil {
		return fmt.Errorf("login indexes: %w", err)
	}
	return nil
}

func spinResultIndexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "routeName", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("route_created"),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("created"),
		},
		{
			Keys:    bson.D{{Key: "sessionId", Value: 1}},
			Options: options.Index().SetName("session").SetSparse(true),
		},
	}
}

func loginIndexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetName("username"),
		},
		{
			Keys:    bson.D{{Key: "routeName", Value: 1}},
			Options: options.Index().SetName("route"),
		},
	}
}

func createSpinResultIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateMany(ctx, spinResultIndexModels())
	return err
}

func createLoginIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateMany(ctx, loginIndexModels())
	return err
}
