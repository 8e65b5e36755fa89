package mongodb

import (
	"context"
	"time"

	"curiovault/internal/auth/domain/model"
	"curiovault/internal/auth/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoEmailTokenRepository implements EmailTokenRepository using MongoDB
type MongoEmailTokenRepository struct {
	tokensCollection *mongo.Collection
}

// NewMongoEmailTokenRepository creates a new MongoDB email token repository
func NewMongoEmailTokenRepository(db *mongo.Database) (*MongoEmailTokenRepository, error) {
	repo := &MongoEmailTokenRepository{
		tokensCollection: db.Collection("email_tokens"),
	}

	ctx := context.Background()

	tokenIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "token", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := repo.tokensCollection.Indexes().CreateOne(ctx, tokenIndex); err != nil {
		return nil, err
	}

	userPurposeIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "purpose", Value: 1}},
	}
	if _, err := repo.tokensCollection.Indexes().CreateOne(ctx, userPurposeIndex); err != nil {
		return nil, err
	}

	// Expired tokens are swept 30 days after expiry; usable checks happen in code.
	ttlIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(30 * 24 * 3600),
	}
	if _, err := repo.tokensCollection.Indexes().CreateOne(ctx, ttlIndex); err != nil {
		return nil, err
	}

	return repo, nil
}

// CreateToken stores a new email token
func (r *MongoEmailTokenRepository) CreateToken(ctx context.Context, token *model.EmailToken) error {
	if token.ObjectID.IsZero() {
		token.ObjectID = primitive.NewObjectID()
	}
	token.ID = token.ObjectID.Hex()
	token.CreatedAt = time.Now()

	_, err := r.tokensCollection.InsertOne(ctx, token)
	return err
}

// GetByToken looks up a token by its value and purpose
func (r *MongoEmailTokenRepository) GetByToken(ctx context.Context, token string, purpose model.TokenPurpose) (*model.EmailToken, error) {
	var t model.EmailToken
	err := r.tokensCollection.FindOne(ctx, bson.M{"token": token, "purpose": purpose}).Decode(&t)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, model.ErrTokenNotFound
		}
		return nil, err
	}

	t.ID = t.ObjectID.Hex()
	return &t, nil
}

// MarkUsed stamps a token as consumed
func (r *MongoEmailTokenRepository) MarkUsed(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.ErrTokenNotFound
	}

	now := time.Now()
	result, err := r.tokensCollection.UpdateOne(ctx,
		bson.M{"_id": objectID, "used_at": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"used_at": now}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return model.ErrTokenUsed
	}

	return nil
}

// CountOutstanding counts unconsumed, unexpired tokens for a user and purpose
func (r *MongoEmailTokenRepository) CountOutstanding(ctx context.Context, userID string, purpose model.TokenPurpose) (int64, error) {
	filter := bson.M{
		"user_id":    userID,
		"purpose":    purpose,
		"used_at":    bson.M{"$exists": false},
		"expires_at": bson.M{"$gt": time.Now()},
	}
	return r.tokensCollection.CountDocuments(ctx, filter)
}

var _ repository.EmailTokenRepository = (*MongoEmailTokenRepository)(nil)
