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

// VoyageRepository persists voyages. All reads and writes are scoped to the
// owning user; there is no cross-tenant access path.
type VoyageRepository struct {
	coll *mongo.Collection
}

// Create inserts a voyage and returns its generated id.
func (r *VoyageRepository) Create(ctx context.Context, voyage *models.Voyage) (primitive.ObjectID, error) {
	now := time.Now()
	voyage.ID = primitive.NewObjectID()
	voyage.CreatedAt = now
	voyage.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, voyage); err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert voyage: %w", err)
	}
	return voyage.ID, nil
}

// GetByID fetches one voyage owned by the user.
func (r *VoyageRepository) GetByID(ctx context.Context, userID, id primitive.ObjectID) (*models.Voyage, error) {
	var voyage models.Voyage
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&voyage)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find voyage: %w", err)
	}
	return &voyage, nil
}

// ListByUser returns the user's voyages, most recent trip first.
func (r *VoyageRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Voyage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list voyages: %w", err)
	}
	defer cursor.Close(ctx)

	voyages := []models.Voyage{}
	if err := cursor.All(ctx, &voyages); err != nil {
		return nil, fmt.Errorf("decode voyages: %w", err)
	}
	return voyages, nil
}

// ListByDateRange returns every voyage dated inside [from, to), across all
// users. Used by the compliance sweep.
func (r *VoyageRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]models.Voyage, error) {
	filter := bson.M{"date": bson.M{"$gte": from, "$lt": to}}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list voyages by date range: %w", err)
	}
	defer cursor.Close(ctx)

	voyages := []models.Voyage{}
	if err := cursor.All(ctx, &voyages); err != nil {
		return nil, fmt.Errorf("decode voyages: %w", err)
	}
	return voyages, nil
}

// Update replaces the mutable fields of a voyage owned by the user.
func (r *VoyageRepository) Update(ctx context.Context, userID, id primitive.ObjectID, voyage *models.Voyage) error {
	update := bson.M{"$set": bson.M{
		"destination":        voyage.Destination,
		"date":               voyage.Date,
		"currency":           voyage.Currency,
		"status":             voyage.Status,
		"merchandise":        voyage.Merchandise,
		"fixed_costs":        voyage.FixedCosts,
		"supplementary_fees": voyage.SupplementaryFees,
		"rate_snapshot":      voyage.RateSnapshot,
		"calculation":        voyage.Calculation,
		"updated_at":         time.Now(),
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id, "user_id": userID}, update)
	if err != nil {
		return fmt.Errorf("update voyage: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a voyage owned by the user.
func (r *VoyageRepository) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("delete voyage: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
