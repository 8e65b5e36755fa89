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

// MongoStarRepository implements StarRepository using MongoDB
type MongoStarRepository struct {
	stars *mongo.Collection
}

// NewMongoStarRepository creates the repository and its indexes
func NewMongoStarRepository(db *mongo.Database) (*MongoStarRepository, error) {
	repo := &MongoStarRepository{
		stars: db.Collection("stars"),
	}

	ctx := context.Background()

	uniqueIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "target_type", Value: 1},
			{Key: "target_id", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	}
	if _, err := repo.stars.Indexes().CreateOne(ctx, uniqueIndex); err != nil {
		return nil, err
	}

	targetIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "target_type", Value: 1}, {Key: "target_id", Value: 1}},
	}
	if _, err := repo.stars.Indexes().CreateOne(ctx, targetIndex); err != nil {
		return nil, err
	}

	ownerIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}},
	}
	if _, err := repo.stars.Indexes().CreateOne(ctx, ownerIndex); err != nil {
		return nil, err
	}

	return repo, nil
}

// Add inserts a star unless one already exists for (user, target)
func (r *MongoStarRepository) Add(ctx context.Context, star *model.Star) (bool, error) {
	star.CreatedAt = time.Now()
	if star.ObjectID.IsZero() {
		star.ObjectID = primitive.NewObjectID()
	}
	star.ID = star.ObjectID.Hex()

	_, err := r.stars.InsertOne(ctx, star)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Remove deletes a star if present
func (r *MongoStarRepository) Remove(ctx context.Context, userID string, targetType model.StarTargetType, targetID string) (bool, error) {
	result, err := r.stars.DeleteOne(ctx, bson.M{
		"user_id":     userID,
		"target_type": targetType,
		"target_id":   targetID,
	})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

// Exists reports whether the user has starred the target
func (r *MongoStarRepository) Exists(ctx context.Context, userID string, targetType model.StarTargetType, targetID string) (bool, error) {
	count, err := r.stars.CountDocuments(ctx, bson.M{
		"user_id":     userID,
		"target_type": targetType,
		"target_id":   targetID,
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count returns the total stars on a target
func (r *MongoStarRepository) Count(ctx context.Context, targetType model.StarTargetType, targetID string) (int64, error) {
	return r.stars.CountDocuments(ctx, bson.M{
		"target_type": targetType,
		"target_id":   targetID,
	})
}

// CountByOwner totals stars earned on an owner's content
func (r *MongoStarRepository) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	return r.stars.CountDocuments(ctx, bson.M{
		"owner_id": ownerID,
		"user_id":  bson.M{"$ne": ownerID},
	})
}

// RankByOwner ranks the owner among all owners by earned stars, most
// starred first with owner ID breaking ties. Owners absent from the
// leaderboard rank directly after its last entry.
func (r *MongoStarRepository) RankByOwner(ctx context.Context, ownerID string) (int64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"$expr": bson.M{"$ne": bson.A{"$user_id", "$owner_id"}},
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$owner_id",
			"stars": bson.M{"$sum": 1},
		}}},
		bson.D{{Key: "$setWindowFields", Value: bson.M{
			"sortBy": bson.D{{Key: "stars", Value: -1}, {Key: "_id", Value: 1}},
			"output": bson.M{"rank": bson.M{"$rank": bson.M{}}},
		}}},
		bson.D{{Key: "$facet", Value: bson.M{
			"owner": bson.A{bson.M{"$match": bson.M{"_id": ownerID}}},
			"total": bson.A{bson.M{"$count": "owners"}},
		}}},
	}

	cursor, err := r.stars.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Owner []struct {
			Rank int64 `bson:"rank"`
		} `bson:"owner"`
		Total []struct {
			Owners int64 `bson:"owners"`
		} `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 1, nil
	}
	if len(results[0].Owner) > 0 {
		return results[0].Owner[0].Rank, nil
	}
	if len(results[0].Total) > 0 {
		return results[0].Total[0].Owners + 1, nil
	}
	return 1, nil
}

// DeleteByTarget removes every star on a target
func (r *MongoStarRepository) DeleteByTarget(ctx context.Context, targetType model.StarTargetType, targetID string) error {
	_, err := r.stars.DeleteMany(ctx, bson.M{
		"target_type": targetType,
		"target_id":   targetID,
	})
	return err
}

// DeleteByUser removes every star the user has given
func (r *MongoStarRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.stars.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}

var _ repository.StarRepository = (*MongoStarRepository)(nil)
