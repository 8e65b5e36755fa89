package repository

import (
	"context"

	"curiovault/internal/catalogue/domain/model"
)

// CollectionRepository persists collections.
type CollectionRepository interface {
	Create(ctx context.Context, collection *model.Collection) error
	GetByID(ctx context.Context, id string) (*model.Collection, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*model.Collection, error)
	ListAll(ctx context.Context, offset, limit int) ([]*model.Collection, int64, error)
	Update(ctx context.Context, collection *model.Collection) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	// GetFeatured returns the single featured collection, or
	// model.ErrCollectionNotFound when none is set.
	GetFeatured(ctx context.Context) (*model.Collection, error)
	// ClearFeatured unsets the featured flag on every collection.
	ClearFeatured(ctx context.Context) error
	DeleteByOwner(ctx context.Context, ownerID string) ([]string, error)
}

// FieldRepository persists collection field definitions.
type FieldRepository interface {
	Create(ctx context.Context, field *model.FieldDefinition) error
	GetByID(ctx context.Context, id string) (*model.FieldDefinition, error)
	ListByCollection(ctx context.Context, collectionID string) ([]*model.FieldDefinition, error)
	Update(ctx context.Context, field *model.FieldDefinition) error
	Delete(ctx context.Context, id string) error
	// SetPositions renumbers fields in one collection; ids are ordered.
	SetPositions(ctx context.Context, collectionID string, orderedIDs []string) error
	DeleteByCollection(ctx context.Context, collectionID string) error
}

// ItemRepository persists items.
type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	GetByID(ctx context.Context, id string) (*model.Item, error)
	List(ctx context.Context, collectionID string, q model.ItemQuery) (*model.ItemPage, error)
	// SearchAcross matches a name/notes substring over all of a user's
	// collections.
	SearchAcross(ctx context.Context, collectionIDs []string, search string, offset, limit int) (*model.ItemPage, error)
	Update(ctx context.Context, item *model.Item) error
	Delete(ctx context.Context, id string) error
	DeleteByCollection(ctx context.Context, collectionID string) ([]string, error)
	Count(ctx context.Context) (int64, error)
	CountDrafts(ctx context.Context, collectionID string) (int64, error)
	DraftIDs(ctx context.Context, collectionID string) ([]string, error)
	// ClearFeatured unsets the featured flag on every item.
	ClearFeatured(ctx context.Context) error
	// SetFeatured marks exactly the given items featured within a collection.
	SetFeatured(ctx context.Context, collectionID string, itemIDs []string) error
	ListFeatured(ctx context.Context, collectionID string) ([]*model.Item, error)
	// NewestNonDrafts returns up to limit published items, newest first.
	NewestNonDrafts(ctx context.Context, collectionID string, limit int) ([]*model.Item, error)
}

// ImageRepository persists item image records. File bytes live in ImageStore.
type ImageRepository interface {
	Create(ctx context.Context, image *model.ItemImage) error
	GetByID(ctx context.Context, id string) (*model.ItemImage, error)
	ListByItem(ctx context.Context, itemID string) ([]*model.ItemImage, error)
	Delete(ctx context.Context, id string) error
	// SetPositions renumbers an item's images 0..n-1; ids are ordered.
	SetPositions(ctx context.Context, itemID string, orderedIDs []string) error
	DeleteByItem(ctx context.Context, itemID string) ([]*model.ItemImage, error)
	CountByItems(ctx context.Context, itemIDs []string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// StarRepository persists stars.
type StarRepository interface {
	// Add is idempotent; it reports whether a new star was written.
	Add(ctx context.Context, star *model.Star) (bool, error)
	// Remove is idempotent; it reports whether a star was deleted.
	Remove(ctx context.Context, userID string, targetType model.StarTargetType, targetID string) (bool, error)
	Exists(ctx context.Context, userID string, targetType model.StarTargetType, targetID string) (bool, error)
	Count(ctx context.Context, targetType model.StarTargetType, targetID string) (int64, error)
	// CountByOwner totals stars earned on an owner's content, excluding any
	// the owner placed themselves.
	CountByOwner(ctx context.Context, ownerID string) (int64, error)
	// RankByOwner returns the owner's 1-based position on the earned-star
	// leaderboard. Owners with no earned stars rank after every starred
	// owner.
	RankByOwner(ctx context.Context, ownerID string) (int64, error)
	DeleteByTarget(ctx context.Context, targetType model.StarTargetType, targetID string) error
	DeleteByUser(ctx context.Context, userID string) error
}

// TemplateRepository persists schema templates and their fields.
type TemplateRepository interface {
	Create(ctx context.Context, template *model.SchemaTemplate) error
	GetByID(ctx context.Context, id string) (*model.SchemaTemplate, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*model.SchemaTemplate, error)
	Update(ctx context.Context, template *model.SchemaTemplate) error
	Delete(ctx context.Context, id string) error

	CreateField(ctx context.Context, field *model.SchemaTemplateField) error
	GetFieldByID(ctx context.Context, id string) (*model.SchemaTemplateField, error)
	ListFields(ctx context.Context, templateID string) ([]*model.SchemaTemplateField, error)
	UpdateField(ctx context.Context, field *model.SchemaTemplateField) error
	DeleteField(ctx context.Context, id string) error
	// ReplaceFields swaps a template's field set wholesale.
	ReplaceFields(ctx context.Context, templateID string, fields []*model.SchemaTemplateField) error
	// SetFieldPositions renumbers fields 1..n; ids are ordered.
	SetFieldPositions(ctx context.Context, templateID string, orderedIDs []string) error
}

// ActivityStore persists per-user activity feeds, newest first, capped.
type ActivityStore interface {
	Append(ctx context.Context, userID string, entry *model.ActivityEntry) error
	List(ctx context.Context, userID string, limit int) ([]*model.ActivityEntry, error)
}
