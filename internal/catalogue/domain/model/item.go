package model

import (
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrItemNotFound  = errors.New("item not found")
	ErrItemNameEmpty = errors.New("item name is required")
	ErrItemNotDraft  = errors.New("item is not a draft")
)

// Item is a single catalogued entry in a collection. Metadata keys must match
// the collection's field definitions.
type Item struct {
	ID           string                 `json:"id" bson:"-"`
	ObjectID     primitive.ObjectID     `json:"-" bson:"_id,omitempty"`
	CollectionID string                 `json:"collection_id" bson:"collection_id"`
	Name         string                 `json:"name" bson:"name"`
	Metadata     map[string]interface{} `json:"metadata" bson:"metadata"`
	Notes        string                 `json:"notes,omitempty" bson:"notes,omitempty"`
	IsFeatured   bool                   `json:"is_featured" bson:"is_featured"`
	IsHighlight  bool                   `json:"is_highlight" bson:"is_highlight"`
	IsDraft      bool                   `json:"is_draft" bson:"is_draft"`
	CreatedAt    time.Time              `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at" bson:"updated_at"`
}

// Validate checks the writable fields.
func (i *Item) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrItemNameEmpty
	}
	return nil
}

// ItemQuery captures list filters for items within one collection.
type ItemQuery struct {
	Search  string
	Filters map[string]interface{}
	// Sort is "name", "created_at" or "metadata:<field>", descending when
	// Desc is set.
	Sort          string
	Desc          bool
	Offset        int
	Limit         int
	IncludeDrafts bool
}

// ItemPage is one page of a list result.
type ItemPage struct {
	Items  []*Item `json:"items"`
	Total  int64   `json:"total"`
	Offset int     `json:"offset"`
	Limit  int     `json:"limit"`
}
