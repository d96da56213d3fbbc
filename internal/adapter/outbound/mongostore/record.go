// Package mongostore implements the durable record store on MongoDB. Expiry
// is owned by a TTL index on expiresAt; finalized records carry a null
// expiresAt and are never touched by it.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anthanhphan/go-dataset-preview/internal/domain"
	"github.com/anthanhphan/go-dataset-preview/internal/port"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const datasetCollectionName = "datasets"

type Store struct {
	collection *mongo.Collection
}

var _ port.RecordStore = (*Store)(nil)

func New(db *mongo.Database) *Store {
	return &Store{collection: db.Collection(datasetCollectionName)}
}

// EnsureIndexes creates the TTL index driving record expiry plus the lookup
// indexes. Call once during startup.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			// Documents are deleted as soon as expiresAt is in the past.
			Keys:    bson.D{{Key: "expiresAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
		{
			Keys: bson.D{{Key: "redisUploadId", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
	}

	if _, err := s.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create dataset indexes: %w", err)
	}
	return nil
}

func (s *Store) Create(ctx context.Context, dataset *domain.Dataset) (primitive.ObjectID, error) {
	now := time.Now().UTC()
	if dataset.ID.IsZero() {
		dataset.ID = primitive.NewObjectID()
	}
	dataset.CreatedAt = now
	dataset.UpdatedAt = now

	result, err := s.collection.InsertOne(ctx, dataset)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert dataset: %w", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Dataset, error) {
	var dataset domain.Dataset
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&dataset)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, port.ErrDatasetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	return &dataset, nil
}

func (s *Store) Save(ctx context.Context, dataset *domain.Dataset) error {
	dataset.UpdatedAt = time.Now().UTC()

	result, err := s.collection.ReplaceOne(ctx, bson.M{"_id": dataset.ID}, dataset)
	if err != nil {
		return fmt.Errorf("failed to save dataset: %w", err)
	}
	if result.MatchedCount == 0 {
		return port.ErrDatasetNotFound
	}
	return nil
}
