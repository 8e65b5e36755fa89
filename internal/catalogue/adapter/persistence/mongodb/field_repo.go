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

// MongoFieldRepository implements FieldRepository using MongoDB
type MongoFieldRepository struct {
	fields *mongo.Collection
}

// NewMongoFieldRepository creates the repository and its indexes
func NewMongoFieldRepository(db *mongo.Database) (*MongoFieldRepository, error) {
	repo := &MongoFieldRepository{
		fields: db.Collection("fields"),
	}

	ctx := context.Background()

	nameIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "collection_id", Value: 1}, {Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := repo.fields.Indexes().CreateOne(ctx, nameIndex); err != nil {
		return nil, err
	}

	positionIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "collection_id", Value: 1}, {Key: "position", Value: 1}},
	}
	if _, err := repo.fields.Indexes().CreateOne(ctx, positionIndex); err != nil {
		return nil, err
	}

	return repo, nil
}

// Create inserts a new field definition
func (r *MongoFieldRepository) Create(ctx context.Context, field *model.FieldDefinition) error {
	now := time.Now()
	field.CreatedAt = now
	field.UpdatedAt = now

	if field.ObjectID.IsZero() {
		field.ObjectID = primitive.NewObjectID()
	}
	field.ID = field.ObjectID.Hex()

	_, err := r.fields.InsertOne(ctx, field)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.ErrFieldNameTaken
		}
		return err
	}

	return nil
}

// GetByID retrieves a field definition by ID
func (r *MongoFieldRepository) GetByID(ctx context.Context, id string) (*model.FieldDefinition, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.ErrFieldNotFound
	}

	var field model.FieldDefinition
	err = r.fields.FindOne(ctx, bson.M{"_id": objectID}).Decode(&field)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, model.ErrFieldNotFound
		}
		return nil, err
	}

	field.ID = field.ObjectID.Hex()
	return &field, nil
}

// ListByCollection returns a collection's fields in position order
func (r *MongoFieldRepository) ListByCollection(ctx context.Context, collectionID string) ([]*model.FieldDefinition, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cursor, err := r.fields.Find(ctx, bson.M{"collection_id": collectionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	fields := make([]*model.FieldDefinition, 0)
	for cursor.Next(ctx) {
		var field model.FieldDefinition
		if err := cursor.Decode(&field); err != nil {
			return nil, err
		}
		field.ID = field.ObjectID.Hex()
		fields = append(fields, &field)
	}
	return fields, cursor.Err()
}

// Update persists mutable field attributes
func (r *MongoFieldRepository) Update(ctx context.Context, field *model.FieldDefinition) error {
	objectID, err := primitive.ObjectIDFromHex(field.ID)
	if err != nil {
		return model.ErrFieldNotFound
	}

	field.UpdatedAt = time.Now()
	set := bson.M{
		"name":        field.Name,
		"type":        field.Type,
		"is_required": field.IsRequired,
		"is_private":  field.IsPrivate,
		"position":    field.Position,
		"updated_at":  field.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if field.Options != nil {
		set["options"] = field.Options
	} else {
		update["$unset"] = bson.M{"options": ""}
	}

	result, err := r.fields.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.ErrFieldNameTaken
		}
		return err
	}
	if result.MatchedCount == 0 {
		return model.ErrFieldNotFound
	}

	return nil
}

// Delete removes a field definition
func (r *MongoFieldRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.ErrFieldNotFound
	}

	result, err := r.fields.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return model.ErrFieldNotFound
	}

	return nil
}

// SetPositions renumbers the collection's fields 1..n following orderedIDs
func (r *MongoFieldRepository) SetPositions(ctx context.Context, collectionID string, orderedIDs []string) error {
	writes := make([]mongo.WriteModel, 0, len(orderedIDs))
	now := time.Now()
	for i, id := range orderedIDs {
		objectID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return model.ErrFieldNotFound
		}
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": objectID, "collection_id": collectionID}).
			SetUpdate(bson.M{"$set": bson.M{"position": i + 1, "updated_at": now}}))
	}
	if len(writes) == 0 {
		return nil
	}

	_, err := r.fields.BulkWrite(ctx, writes)
	return err
}

// DeleteByCollection removes every field of a collection
func (r *MongoFieldRepository) DeleteByCollection(ctx context.Context, collectionID string) error {
	_, err := r.fields.DeleteMany(ctx, bson.M{"collection_id": collectionID})
	return err
}

var _ repository.FieldRepository = (*MongoFieldRepository)(nil)
