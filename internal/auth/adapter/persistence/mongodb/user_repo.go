package mongodb

import (
	"context"
	"regexp"
	"time"

	"curiovault/internal/auth/domain/model"
	"curiovault/internal/auth/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAuthRepository implements the AuthRepository interface using MongoDB
type MongoAuthRepository struct {
	usersCollection *mongo.Collection
}

// NewMongoAuthRepository creates a new MongoDB auth repository
func NewMongoAuthRepository(db *mongo.Database) (*MongoAuthRepository, error) {
	repo := &MongoAuthRepository{
		usersCollection: db.Collection("users"),
	}

	ctx := context.Background()

	emailIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := repo.usersCollection.Indexes().CreateOne(ctx, emailIndex); err != nil {
		return nil, err
	}

	usernameIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true).SetSparse(true),
	}
	if _, err := repo.usersCollection.Indexes().CreateOne(ctx, usernameIndex); err != nil {
		return nil, err
	}

	return repo, nil
}

// CreateUser creates a new user in the database
func (r *MongoAuthRepository) CreateUser(ctx context.Context, user *model.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	if user.ObjectID.IsZero() {
		user.ObjectID = primitive.NewObjectID()
	}
	user.ID = user.ObjectID.Hex()

	_, err := r.usersCollection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.ErrUserExists
		}
		return err
	}

	return nil
}

// GetUserByID retrieves a user by ID
func (r *MongoAuthRepository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.ErrUserNotFound
	}

	var user model.User
	err = r.usersCollection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	user.ID = user.ObjectID.Hex()
	return &user, nil
}

// GetUserByEmail retrieves a user by email
func (r *MongoAuthRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.usersCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	user.ID = user.ObjectID.Hex()
	return &user, nil
}

// GetUserByUsername retrieves a user by username
func (r *MongoAuthRepository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.usersCollection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	user.ID = user.ObjectID.Hex()
	return &user, nil
}

// UpdateUser persists mutable user fields
func (r *MongoAuthRepository) UpdateUser(ctx context.Context, user *model.User) error {
	objectID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return model.ErrUserNotFound
	}

	user.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"username":        user.Username,
		"hashed_password": user.HashedPassword,
		"avatar_filename": user.AvatarFilename,
		"is_active":       user.IsActive,
		"is_verified":     user.IsVerified,
		"updated_at":      user.UpdatedAt,
	}}

	result, err := r.usersCollection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.ErrUsernameTaken
		}
		return err
	}
	if result.MatchedCount == 0 {
		return model.ErrUserNotFound
	}

	return nil
}

// DeleteUser removes a user document
func (r *MongoAuthRepository) DeleteUser(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.ErrUserNotFound
	}

	result, err := r.usersCollection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return model.ErrUserNotFound
	}

	return nil
}

// ListUsers pages through users, optionally filtering by an email or username
// substring. The total count reflects the filter.
func (r *MongoAuthRepository) ListUsers(ctx context.Context, query string, offset, limit int) ([]*model.User, int64, error) {
	filter := bson.M{}
	if query != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
		filter = bson.M{"$or": bson.A{
			bson.M{"email": pattern},
			bson.M{"username": pattern},
		}}
	}

	total, err := r.usersCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := r.usersCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	users := make([]*model.User, 0)
	for cursor.Next(ctx) {
		var user model.User
		if err := cursor.Decode(&user); err != nil {
			return nil, 0, err
		}
		user.ID = user.ObjectID.Hex()
		users = append(users, &user)
	}

	return users, total, cursor.Err()
}

// CountUsers returns the total number of users
func (r *MongoAuthRepository) CountUsers(ctx context.Context) (int64, error) {
	return r.usersCollection.CountDocuments(ctx, bson.M{})
}

var _ repository.AuthRepository = (*MongoAuthRepository)(nil)
