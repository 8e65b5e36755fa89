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

// MongoTemplateRepository implements TemplateRepository using MongoDB
type MongoTemplateRepository struct {
	templates *mongo.Collection
	fields    *mongo.Collection
}

// NewMongoTemplateRepository creates the repository and its indexes
func NewMongoTemplateRepository(db *mongo.Database) (*MongoTemplateRepository, error) {
	repo := &MongoTemplateRepository{
		templates: db.Collection("schema_templates"),
		fields:    db.Collection("schema_template_fields"),
	}

	ctx := context.Background()

	nameIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := repo.templates.Indexes().CreateOne(ctx, nameIndex); err != nil {
		return nil, err
	}

	fieldNameIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "template_id", Value: 1}, {Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := repo.fields.Indexes().CreateOne(ctx, fieldNameIndex); err != nil {
		return nil, err
	}

	fieldPosIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "template_id", Value: 1}, {Key: "position", Value: 1}},
	}
	if _, err := repo.fields.Indexes().CreateOne(ctx, fieldPosIndex); err != nil {
		return nil, err
	}

	return repo, nil
}

// Create inserts a new template
func (r *MongoTemplateRepository) Create(ctx context.Context, template *model.SchemaTemplate) error {
	now := time.Now()
	template.CreatedAt = now
	template.UpdatedAt = now

	if template.ObjectID.IsZero() {
		template.ObjectID = primitive.NewObjectID()
	}
	template.ID = template.ObjectID.Hex()

	_, err := r.templates.InsertOne(ctx, template)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.ErrTemplateNameTaken
		}
		return err
	}

	return nil
}

// GetByID retrieves a template by ID
func (r *MongoTemplateRepository) GetByID(ctx context.Context, id string) (*model.SchemaTemplate, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.ErrTemplateNotFound
	}

	var template model.SchemaTemplate
	err = r.templates.FindOne(ctx, bson.M{"_id": objectID}).Decode(&template)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, model.ErrTemplateNotFound
		}
		return nil, err
	}

	template.ID = template.ObjectID.Hex()
	return &template, nil
}

// ListByOwner returns the user's templates, newest first
func (r *MongoTemplateRepository) ListByOwner(ctx context.Context, ownerID string) ([]*model.SchemaTemplate, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.templates.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	templates := make([]*model.SchemaTemplate, 0)
	for cursor.Next(ctx) {
		var template model.SchemaTemplate
		if err := cursor.Decode(&template); err != nil {
			return nil, err
		}
		template.ID = template.ObjectID.Hex()
		templates = append(templates, &template)
	}
	return templates, cursor.Err()
}

// Update persists mutable template fields
func (r *MongoTemplateRepository) Update(ctx context.Context, template *model.SchemaTemplate) error {
	objectID, err := primitive.ObjectIDFromHex(template.ID)
	if err != nil {
		return model.ErrTemplateNotFound
	}

	template.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"name":        template.Name,
		"description": template.Description,
		"updated_at":  template.UpdatedAt,
	}}

	result, err := r.templates.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.ErrTemplateNameTaken
		}
		return err
	}
	if result.MatchedCount == 0 {
		return model.ErrTemplateNotFound
	}

	return nil
}

// Delete removes a template and all its fields
func (r *MongoTemplateRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.ErrTemplateNotFound
	}

	result, err := r.templates.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return model.ErrTemplateNotFound
	}

	_, err = r.fields.DeleteMany(ctx, bson.M{"template_id": id})
	return err
}

// CreateField inserts a new template field
func (r *MongoTemplateRepository) CreateField(ctx context.Context, field *model.SchemaTemplateField) error {
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
			return model.ErrTemplateFieldTaken
		}
		return err
	}

	return nil
}

// GetFieldByID retrieves a template field by ID
func (r *MongoTemplateRepository) GetFieldByID(ctx context.Context, id string) (*model.SchemaTemplateField, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.ErrFieldNotFound
	}

	var field model.SchemaTemplateField
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

// ListFields returns a template's fields in position order
func (r *MongoTemplateRepository) ListFields(ctx context.Context, templateID string) ([]*model.SchemaTemplateField, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cursor, err := r.fields.Find(ctx, bson.M{"template_id": templateID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	fields := make([]*model.SchemaTemplateField, 0)
	for cursor.Next(ctx) {
		var field model.SchemaTemplateField
		if err := cursor.Decode(&field); err != nil {
			return nil, err
		}
		field.ID = field.ObjectID.Hex()
		fields = append(fields, &field)
	}
	return fields, cursor.Err()
}

// UpdateField persists mutable template field attributes
func (r *MongoTemplateRepository) UpdateField(ctx context.Context, field *model.SchemaTemplateField) error {
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
			return model.ErrTemplateFieldTaken
		}
		return err
	}
	if result.MatchedCount == 0 {
		return model.ErrFieldNotFound
	}

	return nil
}

// DeleteField removes a template field
func (r *MongoTemplateRepository) DeleteField(ctx context.Context, id string) error {
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

// ReplaceFields swaps the template's field set wholesale
func (r *MongoTemplateRepository) ReplaceFields(ctx context.Context, templateID string, fields []*model.SchemaTemplateField) error {
	if _, err := r.fields.DeleteMany(ctx, bson.M{"template_id": templateID}); err != nil {
		return err
	}

	for _, field := range fields {
		field.TemplateID = templateID
		if err := r.CreateField(ctx, field); err != nil {
			return err
		}
	}
	return nil
}

// SetFieldPositions renumbers the template's fields 1..n following orderedIDs
func (r *MongoTemplateRepository) SetFieldPositions(ctx context.Context, templateID string, orderedIDs []string) error {
	writes := make([]mongo.WriteModel, 0, len(orderedIDs))
	now := time.Now()
	for i, id := range orderedIDs {
		objectID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return model.ErrFieldNotFound
		}
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": objectID, "template_id": templateID}).
			SetUpdate(bson.M{"$set": bson.M{"position": i + 1, "updated_at": now}}))
	}
	if len(writes) == 0 {
		return nil
	}

	_, err := r.fields.BulkWrite(ctx, writes)
	return err
}

var _ repository.TemplateRepository = (*MongoTemplateRepository)(nil)
