package mongodb

import (
	"context"
	"regexp"
	"strings"
	"time"

	"curiovault/internal/catalogue/domain/model"
	"curiovault/internal/catalogue/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoItemRepository implements ItemRepository using MongoDB
type MongoItemRepository struct {
	items *mongo.Collection
}

// NewMongoItemRepository creates the repository and its indexes
func NewMongoItemRepository(db *mongo.Database) (*MongoItemRepository, error) {
	repo := &MongoItemRepository{
		items: db.Collection("items"),
	}

	ctx := context.Background()

	collectionIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "collection_id", Value: 1}, {Key: "created_at", Value: -1}},
	}
	if _, err := repo.items.Indexes().CreateOne(ctx, collectionIndex); err != nil {
		return nil, err
	}

	nameIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "collection_id", Value: 1}, {Key: "name", Value: 1}},
	}
	if _, err := repo.items.Indexes().CreateOne(ctx, nameIndex); err != nil {
		return nil, err
	}

	return repo, nil
}

// Create inserts a new item
func (r *MongoItemRepository) Create(ctx context.Context, item *model.Item) error {
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	if item.ObjectID.IsZero() {
		item.ObjectID = primitive.NewObjectID()
	}
	item.ID = item.ObjectID.Hex()

	if item.Metadata == nil {
		item.Metadata = map[string]interface{}{}
	}

	_, err := r.items.InsertOne(ctx, item)
	return err
}

// GetByID retrieves an item by ID
func (r *MongoItemRepository) GetByID(ctx context.Context, id string) (*model.Item, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.ErrItemNotFound
	}

	var item model.Item
	err = r.items.FindOne(ctx, bson.M{"_id": objectID}).Decode(&item)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, model.ErrItemNotFound
		}
		return nil, err
	}

	item.ID = item.ObjectID.Hex()
	return &item, nil
}

// List pages a collection's items applying search, metadata filters and sort
func (r *MongoItemRepository) List(ctx context.Context, collectionID string, q model.ItemQuery) (*model.ItemPage, error) {
	filter := bson.M{"collection_id": collectionID}
	if !q.IncludeDrafts {
		filter["is_draft"] = false
	}
	if q.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"notes": pattern},
		}
	}
	for field, value := range q.Filters {
		filter["metadata."+field] = value
	}

	total, err := r.items.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(itemSort(q.Sort, q.Desc)).
		SetSkip(int64(q.Offset)).
		SetLimit(int64(q.Limit))

	cursor, err := r.items.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items, err := decodeItems(ctx, cursor)
	if err != nil {
		return nil, err
	}

	return &model.ItemPage{Items: items, Total: total, Offset: q.Offset, Limit: q.Limit}, nil
}

func itemSort(sort string, desc bool) bson.D {
	dir := 1
	if desc {
		dir = -1
	}

	key := "created_at"
	switch {
	case sort == "name":
		key = "name"
	case sort == "created_at" || sort == "":
		key = "created_at"
	case strings.HasPrefix(sort, "metadata:"):
		key = "metadata." + strings.TrimPrefix(sort, "metadata:")
	}

	// _id tiebreaker keeps paging stable
	return bson.D{{Key: key, Value: dir}, {Key: "_id", Value: dir}}
}

// SearchAcross matches name or notes over the given collections, drafts excluded
func (r *MongoItemRepository) SearchAcross(ctx context.Context, collectionIDs []string, search string, offset, limit int) (*model.ItemPage, error) {
	if len(collectionIDs) == 0 {
		return &model.ItemPage{Items: []*model.Item{}, Offset: offset, Limit: limit}, nil
	}

	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
	filter := bson.M{
		"collection_id": bson.M{"$in": collectionIDs},
		"is_draft":      false,
		"$or": bson.A{
			bson.M{"name": pattern},
			bson.M{"notes": pattern},
		},
	}

	total, err := r.items.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := r.items.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items, err := decodeItems(ctx, cursor)
	if err != nil {
		return nil, err
	}

	return &model.ItemPage{Items: items, Total: total, Offset: offset, Limit: limit}, nil
}

// Update persists mutable item fields
func (r *MongoItemRepository) Update(ctx context.Context, item *model.Item) error {
	objectID, err := primitive.ObjectIDFromHex(item.ID)
	if err != nil {
		return model.ErrItemNotFound
	}

	item.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"name":         item.Name,
		"metadata":     item.Metadata,
		"notes":        item.Notes,
		"is_featured":  item.IsFeatured,
		"is_highlight": item.IsHighlight,
		"is_draft":     item.IsDraft,
		"updated_at":   item.UpdatedAt,
	}}

	result, err := r.items.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return model.ErrItemNotFound
	}

	return nil
}

// Delete removes an item document
func (r *MongoItemRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.ErrItemNotFound
	}

	result, err := r.items.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return model.ErrItemNotFound
	}

	return nil
}

// DeleteByCollection removes every item in a collection and returns their IDs
func (r *MongoItemRepository) DeleteByCollection(ctx context.Context, collectionID string) ([]string, error) {
	cursor, err := r.items.Find(ctx, bson.M{"collection_id": collectionID},
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

	if _, err := r.items.DeleteMany(ctx, bson.M{"collection_id": collectionID}); err != nil {
		return nil, err
	}
	return ids, nil
}

// Count returns the total number of items
func (r *MongoItemRepository) Count(ctx context.Context) (int64, error) {
	return r.items.CountDocuments(ctx, bson.M{})
}

// CountDrafts returns the number of drafts in a collection
func (r *MongoItemRepository) CountDrafts(ctx context.Context, collectionID string) (int64, error) {
	return r.items.CountDocuments(ctx, bson.M{"collection_id": collectionID, "is_draft": true})
}

// DraftIDs returns the IDs of a collection's draft items
func (r *MongoItemRepository) DraftIDs(ctx context.Context, collectionID string) ([]string, error) {
	cursor, err := r.items.Find(ctx,
		bson.M{"collection_id": collectionID, "is_draft": true},
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
	return ids, cursor.Err()
}

// ClearFeatured unsets the featured flag on every item
func (r *MongoItemRepository) ClearFeatured(ctx context.Context) error {
	_, err := r.items.UpdateMany(ctx,
		bson.M{"is_featured": true},
		bson.M{"$set": bson.M{"is_featured": false}})
	return err
}

// SetFeatured marks exactly itemIDs featured within the collection
func (r *MongoItemRepository) SetFeatured(ctx context.Context, collectionID string, itemIDs []string) error {
	objectIDs := make([]primitive.ObjectID, 0, len(itemIDs))
	for _, id := range itemIDs {
		objectID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return model.ErrItemNotFound
		}
		objectIDs = append(objectIDs, objectID)
	}

	if _, err := r.items.UpdateMany(ctx,
		bson.M{"collection_id": collectionID, "is_featured": true},
		bson.M{"$set": bson.M{"is_featured": false}}); err != nil {
		return err
	}
	if len(objectIDs) == 0 {
		return nil
	}

	_, err := r.items.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": objectIDs}, "collection_id": collectionID},
		bson.M{"$set": bson.M{"is_featured": true}})
	return err
}

// ListFeatured returns the featured items of a collection in creation order
func (r *MongoItemRepository) ListFeatured(ctx context.Context, collectionID string) ([]*model.Item, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.items.Find(ctx,
		bson.M{"collection_id": collectionID, "is_featured": true, "is_draft": false}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeItems(ctx, cursor)
}

// NewestNonDrafts returns up to limit published items, newest first
func (r *MongoItemRepository) NewestNonDrafts(ctx context.Context, collectionID string, limit int) ([]*model.Item, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.items.Find(ctx,
		bson.M{"collection_id": collectionID, "is_draft": false}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeItems(ctx, cursor)
}

func decodeItems(ctx context.Context, cursor *mongo.Cursor) ([]*model.Item, error) {
	items := make([]*model.Item, 0)
	for cursor.Next(ctx) {
		var item model.Item
		if err := cursor.Decode(&item); err != nil {
			return nil, err
		}
		item.ID = item.ObjectID.Hex()
		items = append(items, &item)
	}
	return items, cursor.Err()
}

var _ repository.ItemRepository = (*MongoItemRepository)(nil)
