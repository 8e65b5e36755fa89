package usecase

import (
	"context"
	"time"

	"curiovault/internal/catalogue/domain/model"
	"curiovault/internal/catalogue/domain/repository"
	"curiovault/internal/shared/eventbus"
	"curiovault/internal/shared/logger"
)

// CollectionSummary is a collection with its derived counts.
type CollectionSummary struct {
	*model.Collection
	ItemCount int64 `json:"item_count"`
	StarCount int64 `json:"star_count"`
}

// CollectionDetail is a collection with its schema attached.
type CollectionDetail struct {
	*model.Collection
	Fields    []*model.FieldDefinition `json:"fields"`
	ItemCount int64                    `json:"item_count"`
	StarCount int64                    `json:"star_count"`
}

// CollectionUsecaseInterface defines collection operations.
type CollectionUsecaseInterface interface {
	Create(ctx context.Context, ownerID, name, description string, isPublic bool) (*model.Collection, error)
	Get(ctx context.Context, callerID, id string) (*CollectionDetail, error)
	ListOwn(ctx context.Context, ownerID string) ([]*CollectionSummary, error)
	Update(ctx context.Context, callerID, id string, name, description *string, isPublic *bool) (*model.Collection, error)
	Delete(ctx context.Context, callerID, id string) error
}

// CollectionUsecase implements collection operations.
type CollectionUsecase struct {
	collections repository.CollectionRepository
	fields      repository.FieldRepository
	items       repository.ItemRepository
	images      repository.ImageRepository
	stars       repository.StarRepository
	files       ImageFileStore
	bus         eventbus.EventBusInterface
	logger      logger.Logger
}

// ImageFileStore is the slice of the disk store the usecases need.
type ImageFileStore interface {
	RemoveItem(ownerID, collectionID, itemID string) error
	RemoveCollection(ownerID, collectionID string) error
}

// NewCollectionUsecase creates a collection usecase.
func NewCollectionUsecase(
	collections repository.CollectionRepository,
	fields repository.FieldRepository,
	items repository.ItemRepository,
	images repository.ImageRepository,
	stars repository.StarRepository,
	files ImageFileStore,
	bus eventbus.EventBusInterface,
	log logger.Logger,
) *CollectionUsecase {
	return &CollectionUsecase{
		collections: collections,
		fields:      fields,
		items:       items,
		images:      images,
		stars:       stars,
		files:       files,
		bus:         bus,
		logger:      log.WithComponent("collection_usecase"),
	}
}

// Create makes a new collection owned by ownerID.
func (uc *CollectionUsecase) Create(ctx context.Context, ownerID, name, description string, isPublic bool) (*model.Collection, error) {
	collection := &model.Collection{
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		IsPublic:    isPublic,
	}
	if err := collection.Validate(); err != nil {
		return nil, err
	}

	if err := uc.collections.Create(ctx, collection); err != nil {
		return nil, err
	}

	uc.bus.PublishAndForget(ctx, eventbus.NewBasicEvent(eventbus.EventTypeCollectionCreated, map[string]interface{}{
		"actor_id":        ownerID,
		"collection_id":   collection.ID,
		"collection_name": collection.Name,
	}))

	return collection, nil
}

// Get returns a collection with schema and counts. Private collections are
// visible to their owner only.
func (uc *CollectionUsecase) Get(ctx context.Context, callerID, id string) (*CollectionDetail, error) {
	collection, err := uc.collections.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !collection.VisibleTo(callerID) {
		return nil, model.ErrCollectionNotFound
	}

	fields, err := uc.fields.ListByCollection(ctx, id)
	if err != nil {
		return nil, err
	}

	itemCount, starCount, err := uc.counts(ctx, collection)
	if err != nil {
		return nil, err
	}

	return &CollectionDetail{
		Collection: collection,
		Fields:     fields,
		ItemCount:  itemCount,
		StarCount:  starCount,
	}, nil
}

// ListOwn returns the caller's collections with counts, newest first.
func (uc *CollectionUsecase) ListOwn(ctx context.Context, ownerID string) ([]*CollectionSummary, error) {
	collections, err := uc.collections.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	summaries := make([]*CollectionSummary, 0, len(collections))
	for _, collection := range collections {
		itemCount, starCount, err := uc.counts(ctx, collection)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, &CollectionSummary{
			Collection: collection,
			ItemCount:  itemCount,
			StarCount:  starCount,
		})
	}
	return summaries, nil
}

func (uc *CollectionUsecase) counts(ctx context.Context, collection *model.Collection) (int64, int64, error) {
	page, err := uc.items.List(ctx, collection.ID, model.ItemQuery{Limit: 1, IncludeDrafts: true})
	if err != nil {
		return 0, 0, err
	}
	starCount, err := uc.stars.Count(ctx, model.StarTargetCollection, collection.ID)
	if err != nil {
		return 0, 0, err
	}
	return page.Total, starCount, nil
}

// Update patches the collection. Nil pointers leave a field unchanged.
func (uc *CollectionUsecase) Update(ctx context.Context, callerID, id string, name, description *string, isPublic *bool) (*model.Collection, error) {
	collection, err := uc.requireOwned(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		collection.Name = *name
	}
	if description != nil {
		collection.Description = *description
	}
	if isPublic != nil {
		collection.IsPublic = *isPublic
		// a collection withdrawn from public view cannot stay featured
		if !collection.IsPublic {
			collection.IsFeatured = false
		}
	}
	if err := collection.Validate(); err != nil {
		return nil, err
	}

	if err := uc.collections.Update(ctx, collection); err != nil {
		return nil, err
	}
	return collection, nil
}

// Delete removes the collection and cascades fields, items, images and stars.
func (uc *CollectionUsecase) Delete(ctx context.Context, callerID, id string) error {
	collection, err := uc.requireOwned(ctx, callerID, id)
	if err != nil {
		return err
	}

	itemIDs, err := uc.items.DeleteByCollection(ctx, id)
	if err != nil {
		return err
	}
	for _, itemID := range itemIDs {
		if _, err := uc.images.DeleteByItem(ctx, itemID); err != nil {
			return err
		}
		if err := uc.stars.DeleteByTarget(ctx, model.StarTargetItem, itemID); err != nil {
			return err
		}
	}
	if err := uc.fields.DeleteByCollection(ctx, id); err != nil {
		return err
	}
	if err := uc.stars.DeleteByTarget(ctx, model.StarTargetCollection, id); err != nil {
		return err
	}
	if err := uc.files.RemoveCollection(collection.OwnerID, id); err != nil {
		uc.logger.Warnf("Failed to remove collection uploads for %s: %v", id, err)
	}

	if err := uc.collections.Delete(ctx, id); err != nil {
		return err
	}

	uc.bus.PublishAndForget(ctx, eventbus.NewBasicEvent(eventbus.EventTypeCollectionDeleted, map[string]interface{}{
		"actor_id":        callerID,
		"collection_id":   id,
		"collection_name": collection.Name,
		"occurred_at":     time.Now(),
	}))

	return nil
}

// requireOwned loads a collection and enforces ownership. Non-owners get a
// not found so private collections are not revealed.
func (uc *CollectionUsecase) requireOwned(ctx context.Context, callerID, id string) (*model.Collection, error) {
	collection, err := uc.collections.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if collection.OwnerID != callerID {
		if !collection.IsPublic {
			return nil, model.ErrCollectionNotFound
		}
		return nil, model.ErrNotOwner
	}
	return collection, nil
}

var _ CollectionUsecaseInterface = (*CollectionUsecase)(nil)
