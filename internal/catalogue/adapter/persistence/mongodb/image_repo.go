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

// MongoImageRepository implements ImageRepository using MongoDB
type MongoImageRepository struct {
	images *mongo.Collection
}

// NewMongoImageRepository creates the repository and its indexes
func NewMongoImageRepository(db *mongo.Database) (*MongoImageRepository, error) {
	repo := &MongoImageRepository{
		images: db.Collection("item_images"),
	}

	ctx := context.Background()

	itemIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "item_id", Value: 1}, {Key: "position", Value: 1}},
	}
	if _, err := repo.images.Indexes().CreateOne(ctx, itemIndex); err != nil {
		return nil, err
	}

	return repo, nil
}

// Create inserts a new image record
func (r *MongoImageRepository) Create(ctx context.Context, image *model.ItemImage) error {
	image.CreatedAt = time.Now()

	if image.ObjectID.IsZero() {
		image.ObjectID = primitive.NewObjectID()
	}
	image.ID = image.ObjectID.Hex()

	_, err := r.images.InsertOne(ctx, image)
	return err
}

// GetByID retrieves an image record by ID
func (r *MongoImageRepository) GetByID(ctx context.Context, id string) (*model.ItemImage, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.ErrImageNotFound
	}

	var image model.ItemImage
	err = r.images.FindOne(ctx, bson.M{"_id": objectID}).Decode(&image)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, model.ErrImageNotFound
		}
		return nil, err
	}

	image.ID = image.ObjectID.Hex()
	return &image, nil
}

// ListByItem returns an item's images, position then id ascending
func (r *MongoImageRepository) ListByItem(ctx context.Context, itemID string) ([]*model.ItemImage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.images.Find(ctx, bson.M{"item_id": itemID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeImages(ctx, cursor)
}

// Delete removes an image record
func (r *MongoImageRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.ErrImageNotFound
	}

	result, err := r.images.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return model.ErrImageNotFound
	}

	return nil
}

// SetPositions renumbers the item's images 0..n-1 following orderedIDs
func (r *MongoImageRepository) SetPositions(ctx context.Context, itemID string, orderedIDs []string) error {
	writes := make([]mongo.WriteModel, 0, len(orderedIDs))
	for i, id := range orderedIDs {
		objectID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return model.ErrImageNotFound
		}
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": objectID, "item_id": itemID}).
			SetUpdate(bson.M{"$set": bson.M{"position": i}}))
	}
	if len(writes) == 0 {
		return nil
	}

	_, err := r.images.BulkWrite(ctx, writes)
	return err
}

// DeleteByItem removes every image of an item and returns the deleted records
func (r *MongoImageRepository) DeleteByItem(ctx context.Context, itemID string) ([]*model.ItemImage, error) {
	images, err := r.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return images, nil
	}

	if _, err := r.images.DeleteMany(ctx, bson.M{"item_id": itemID}); err != nil {
		return nil, err
	}
	return images, nil
}

// CountByItems returns the number of images across the given items
func (r *MongoImageRepository) CountByItems(ctx context.Context, itemIDs []string) (int64, error) {
	if len(itemIDs) == 0 {
		return 0, nil
	}
	return r.images.CountDocuments(ctx, bson.M{"item_id": bson.M{"$in": itemIDs}})
}

// Count returns the total number of image records
func (r *MongoImageRepository) Count(ctx context.Context) (int64, error) {
	return r.images.CountDocuments(ctx, bson.M{})
}

func decodeImages(ctx context.Context, cursor *mongo.Cursor) ([]*model.ItemImage, error) {
	images := make([]*model.ItemImage, 0)
	for cursor.Next(ctx) {
		var image model.ItemImage
		if err := cursor.Decode(&image); err != nil {
			return nil, err
		}
		image.ID = image.ObjectID.Hex()
		images = append(images, &image)
	}
	return images, cursor.Err()
}

var _ repository.ImageRepository = (*MongoImageRepository)(nil)
