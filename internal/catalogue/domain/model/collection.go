package model

import (
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrCollectionNotFound  = errors.New("collection not found")
	ErrCollectionNameEmpty = errors.New("collection name is required")
	ErrNotOwner            = errors.New("caller does not own the resource")
	ErrNotPublic           = errors.New("resource is not public")
)

// Collection is a user-owned catalogue of items with a per-collection schema.
type Collection struct {
	ID          string             `json:"id" bson:"-"`
	ObjectID    primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	OwnerID     string             `json:"owner_id" bson:"owner_id"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	IsPublic    bool               `json:"is_public" bson:"is_public"`
	IsFeatured  bool               `json:"is_featured" bson:"is_featured"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// Validate checks the writable fields.
func (c *Collection) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrCollectionNameEmpty
	}
	return nil
}

// VisibleTo reports whether the collection can be read by the given user.
func (c *Collection) VisibleTo(userID string) bool {
	return c.IsPublic || c.OwnerID == userID
}
