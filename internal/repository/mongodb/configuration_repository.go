package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aminedz/microimport/internal/domain/models"
)

// ConfigurationRepository persists the user-editable named settings (exchange
// rates, margins, fixed-cost presets).
type ConfigurationRepository struct {
	coll *mongo.Collection
}

// Upsert creates the configuration entry or updates its value/description
// when an entry with the same (user, type, name) already exists. Returns the
// stored document.
func (r *ConfigurationRepository) Upsert(ctx context.Context, cfg models.Configuration) (*models.Configuration, error) {
	now := time.Now()
	filter := bson.M{"user_id": cfg.UserID, "type": cfg.Type, "name": cfg.Name}
	update := bson.M{
		"$set": bson.M{
			"value":       cfg.Value,
			"description": cfg.Description,
			"updated_at":  now,
		},
		"$setOnInsert": bson.M{
			"user_id":    cfg.UserID,
			"type":       cfg.Type,
			"name":       cfg.Name,
			"created_at": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var stored models.Configuration
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored); err != nil {
		return nil, fmt.Errorf("upsert configuration: %w", err)
	}
	return &stored, nil
}

// ListByUser returns the user's configuration entries, optionally restricted
// to one type, sorted by type then name.
func (r *ConfigurationRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, cfgType models.ConfigurationType) ([]models.Configuration, error) {
	filter := bson.M{"user_id": userID}
	if cfgType != "" {
		filter["type"] = cfgType
	}

	opts := options.Find().SetSort(bson.D{{Key: "type", Value: 1}, {Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list configurations: %w", err)
	}
	defer cursor.Close(ctx)

	configs := []models.Configuration{}
	if err := cursor.All(ctx, &configs); err != nil {
		return nil, fmt.Errorf("decode configurations: %w", err)
	}
	return configs, nil
}

// Update modifies one configuration entry owned by the user.
func (r *ConfigurationRepository) Update(ctx context.Context, userID, id primitive.ObjectID, cfg models.Configuration) error {
	update := bson.M{"$set": bson.M{
		"name":        cfg.Name,
		"value":       cfg.Value,
		"type":        cfg.Type,
		"description": cfg.Description,
		"updated_at":  time.Now(),
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id, "user_id": userID}, update)
	if err != nil {
		return fmt.Errorf("update configuration: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID fetches one configuration entry owned by the user.
func (r *ConfigurationRepository) GetByID(ctx context.Context, userID, id primitive.ObjectID) (*models.Configuration, error) {
	var cfg models.Configuration
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&cfg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find configuration: %w", err)
	}
	return &cfg, nil
}

// Delete removes one configuration entry owned by the user.
func (r *ConfigurationRepository) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("delete configuration: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
