package mongodb

import (
	"context"
	"time"

	"curiovault/internal/catalogue/domain/model"
	"curiovault/internal/catalogue/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCollectionRepository implements CollectionRepository using MongoDB
type MongoCollectionRepository struct {
	collections *mongo.Collection
}

// NewMongoCollectionRepository creates the repository and its indexes
func NewMongoCollectionRepository(db *mongo.Database) (*MongoCollectionRepository, error) {
	repo := &MongoCollectionRepository{
		collections: db.Collection("collections"),
	}

	ctx := context.Background()

	ownerIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}},
	}
	if _, err := repo.collections.Indexes().CreateOne(ctx, ownerIndex); err != nil {
		return nil, err
	}

	featuredIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "is_featured", Value: 1}},
		Options: options.Index().SetPartialFilterExpression(bson.M{"is_featured": true}),
	}
	if _, err := repo.collections.Indexes().CreateOne(ctx, featuredIndex); err != nil {
		return nil, err
	}

	return repo, nil
}

// Create inserts a new collection
func (r *MongoCollectionRepository) Create(ctx context.Context, collection *model.Collection) error {
	now := time.Now()
	collection.CreatedAt = now
	collection.UpdatedAt = now

	if collection.ObjectID.IsZero() {
		collection.ObjectID = primitive.NewObjectID()
	}
	collection.ID = collection.ObjectID.Hex()

	_, err := r.collections.InsertOne(ctx, collection)
	return err
}

// GetByID retrieves a collection by ID
func (r *MongoCollectionRepository) GetByID(ctx context.Context, id string) (*model.Collection, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.ErrCollectionNotFound
	}

	var collection model.Collection
	err = r.collections.FindOne(ctx, bson.M{"_id": objectID}).Decode(&collection)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, model.ErrCollectionNotFound
		}
		return nil, err
	}

	collection.ID = collection.ObjectID.Hex()
	return &collection, nil
}

// ListByOwner returns all collections the user owns, newest first
func (r *MongoCollectionRepository) ListByOwner(ctx context.Context, ownerID string) ([]*model.Collection, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collections.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeCollections(ctx, cursor)
}

// ListAll pages through every collection, newest first
func (r *MongoCollectionRepository) ListAll(ctx context.Context, offset, limit int) ([]*model.Collection, int64, error) {
	total, err := r.collections.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := r.collections.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	collections, err := decodeCollections(ctx, cursor)
	if err != nil {
		return nil, 0, err
	}
	return collections, total, nil
}

// Update persists mutable collection fields
func (r *MongoCollectionRepository) Update(ctx context.Context, collection *model.Collection) error {
	objectID, err := primitive.ObjectIDFromHex(collection.ID)
	if err != nil {
		return model.ErrCollectionNotFound
	}

	collection.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"name":        collection.Name,
		"description": collection.Description,
		"is_public":   collection.IsPublic,
		"is_featured": collection.IsFeatured,
		"updated_at":  collection.UpdatedAt,
	}}

	result, err := r.collections.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return model.ErrCollectionNotFound
	}

	return nil
}

// Delete removes a collection document
func (r *MongoCollectionRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.ErrCollectionNotFound
	}

	result, err := r.collections.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return model.ErrCollectionNotFound
	}

	return nil
}

// Count returns the total number of collections
func (r *MongoCollectionRepository) Count(ctx context.Context) (int64, error) {
	return r.collections.CountDocuments(ctx, bson.M{})
}

// GetFeatured returns the featured collection, if any
func (r *MongoCollectionRepository) GetFeatured(ctx context.Context) (*model.Collection, error) {
	var collection model.Collection
	err := r.collections.FindOne(ctx, bson.M{"is_featured": true}).Decode(&collection)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, model.ErrCollectionNotFound
		}
		return nil, err
	}

	collection.ID = collection.ObjectID.Hex()
	return &collection, nil
}

// ClearFeatured unsets the featured flag everywhere
func (r *MongoCollectionRepository) ClearFeatured(ctx context.Context) error {
	_, err := r.collections.UpdateMany(ctx,
		bson.M{"is_featured": true},
		bson.M{"$set": bson.M{"is_featured": false}})
	return err
}

// DeleteByOwner removes every collection the user owns and returns their IDs
func (r *MongoCollectionRepository) DeleteByOwner(ctx context.Context, ownerID string) ([]string, error) {
	cursor, err := r.collections.Find(ctx, bson.M{"owner_id": ownerID},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	ids := make([]string, 0)
	for cursor.Next(ctx) {
		var doc struct {
			ObjectID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.ObjectID.Hex())
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	if _, err := r.collections.DeleteMany(ctx, bson.M{"owner_id": ownerID}); err != nil {
		return nil, err
	}
	return ids, nil
}

func decodeCollections(ctx context.Context, cursor *mongo.Cursor) ([]*model.Collection, error) {
	collections := make([]*model.Collection, 0)
	for cursor.Next(ctx) {
		var collection model.Collection
		if err := cursor.Decode(&collection); err != nil {
			return nil, err
		}
		collection.ID = collection.ObjectID.Hex()
		collections = append(collections, &collection)
	}
	return collections, cursor.Err()
}

var _ repository.CollectionRepository = (*MongoCollectionRepository)(nil)
