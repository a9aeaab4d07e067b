package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	voyagesColl        = "voyages"
	configurationsColl = "configurations"
	usersColl          = "users"
)

// Sentinel errors surfaced by the repositories.
var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("document already exists")
)

// Store bundles the MongoDB connection and the typed repositories over it.
type Store struct {
	client *mongo.Client
	db     *mongo.Database

	Voyages        *VoyageRepository
	Configurations *ConfigurationRepository
	Users          *UserRepository
}

// NewStore connects to MongoDB, verifies the connection and wires the typed
// repositories.
func NewStore(ctx context.Context, uri string, dbName string) (*Store, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	db := client.Database(dbName)
	return &Store{
		client:         client,
		db:             db,
		Voyages:        &VoyageRepository{coll: db.Collection(voyagesColl)},
		Configurations: &ConfigurationRepository{coll: db.Collection(configurationsColl)},
		Users:          &UserRepository{coll: db.Collection(usersColl)},
	}, nil
}

// EnsureIndexes creates the indexes the query patterns rely on. Safe to call
// on every startup.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(voyagesColl).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "destination", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "status", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create voyage indexes: %w", err)
	}

	_, err = s.db.Collection(configurationsColl).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "type", Value: 1}, {Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create configuration index: %w", err)
	}

	_, err = s.db.Collection(usersColl).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create user index: %w", err)
	}

	return nil
}

// Close closes the MongoDB connection.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
