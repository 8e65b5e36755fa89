package usecase

import (
	"context"
	"strconv"
	"strings"

	"curiovault/internal/catalogue/domain/model"
	"curiovault/internal/catalogue/domain/repository"
	appErrors "curiovault/internal/shared/errors"
	"curiovault/internal/shared/eventbus"
	"curiovault/internal/shared/logger"
)

const (
	defaultItemLimit = 50
	maxItemLimit     = 100
	defaultSearchLim = 50
	maxSearchLimit   = 1000
)

// ItemInput carries the writable attributes of an item.
type ItemInput struct {
	Name     string                 `json:"name"`
	Metadata map[string]interface{} `json:"metadata"`
	Notes    string                 `json:"notes"`
	IsDraft  bool                   `json:"is_draft"`
}

// ItemPatch carries a partial update. Nil pointers leave a field unchanged;
// Metadata is merged key by key, nulls clearing keys.
type ItemPatch struct {
	Name     *string                `json:"name"`
	Metadata map[string]interface{} `json:"metadata"`
	Notes    *string                `json:"notes"`
	IsDraft  *bool                  `json:"is_draft"`
}

// ListParams are the raw list query knobs as the handler received them.
type ListParams struct {
	Search     string
	RawFilters []string
	Sort       string
	Offset     int
	Limit      int
}

// ItemSummary is an item with its derived list attributes.
type ItemSummary struct {
	*model.Item
	PrimaryImageID string `json:"primary_image_id,omitempty"`
	StarCount      int64  `json:"star_count"`
}

// ItemListPage is one page of item summaries.
type ItemListPage struct {
	Items  []*ItemSummary `json:"items"`
	Total  int64          `json:"total"`
	Offset int            `json:"offset"`
	Limit  int            `json:"limit"`
}

// SearchHit is a cross-collection search result.
type SearchHit struct {
	*model.Item
	CollectionName string `json:"collection_name"`
	PrimaryImageID string `json:"primary_image_id,omitempty"`
}

// SearchPage is one page of search results.
type SearchPage struct {
	Items  []*SearchHit `json:"items"`
	Total  int64        `json:"total"`
	Offset int          `json:"offset"`
	Limit  int          `json:"limit"`
}

// ItemUsecaseInterface defines item operations.
type ItemUsecaseInterface interface {
	Create(ctx context.Context, callerID, collectionID string, in ItemInput) (*model.Item, error)
	Get(ctx context.Context, callerID, itemID string) (*ItemSummary, error)
	List(ctx context.Context, callerID, collectionID string, params ListParams) (*ItemListPage, error)
	Update(ctx context.Context, callerID, itemID string, patch ItemPatch) (*model.Item, error)
	Delete(ctx context.Context, callerID, itemID string) error
	ToggleHighlight(ctx context.Context, callerID, itemID string) (*model.Item, error)
	Search(ctx context.Context, callerID, query string, offset, limit int) (*SearchPage, error)
}

// ItemUsecase implements item operations.
type ItemUsecase struct {
	collections repository.CollectionRepository
	fields      repository.FieldRepository
	items       repository.ItemRepository
	images      repository.ImageRepository
	stars       repository.StarRepository
	files       ImageFileStore
	bus         eventbus.EventBusInterface
	logger      logger.Logger
}

// NewItemUsecase creates an item usecase.
func NewItemUsecase(
	collections repository.CollectionRepository,
	fields repository.FieldRepository,
	items repository.ItemRepository,
	images repository.ImageRepository,
	stars repository.StarRepository,
	files ImageFileStore,
	bus eventbus.EventBusInterface,
	log logger.Logger,
) *ItemUsecase {
	return &ItemUsecase{
		collections: collections,
		fields:      fields,
		items:       items,
		images:      images,
		stars:       stars,
		files:       files,
		bus:         bus,
		logger:      log.WithComponent("item_usecase"),
	}
}

// Create adds an item to the caller's collection. Draft items may leave
// required fields unfilled; published items are validated in full.
func (uc *ItemUsecase) Create(ctx context.Context, callerID, collectionID string, in ItemInput) (*model.Item, error) {
	if _, err := uc.requireOwned(ctx, callerID, collectionID); err != nil {
		return nil, err
	}

	fields, err := uc.fields.ListByCollection(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	if err := ValidateMetadata(fields, in.Metadata, !in.IsDraft); err != nil {
		return nil, err
	}

	item := &model.Item{
		CollectionID: collectionID,
		Name:         strings.TrimSpace(in.Name),
		Metadata:     in.Metadata,
		Notes:        in.Notes,
		IsDraft:      in.IsDraft,
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}

	if err := uc.items.Create(ctx, item); err != nil {
		return nil, err
	}

	uc.bus.PublishAndForget(ctx, eventbus.NewBasicEvent(eventbus.EventTypeItemCreated, map[string]interface{}{
		"actor_id":      callerID,
		"item_id":       item.ID,
		"item_name":     item.Name,
		"collection_id": collectionID,
	}))

	return item, nil
}

// Get returns an item visible to the caller, with star count and primary
// image.
func (uc *ItemUsecase) Get(ctx context.Context, callerID, itemID string) (*ItemSummary, error) {
	item, _, err := uc.visibleItem(ctx, callerID, itemID)
	if err != nil {
		return nil, err
	}

	return uc.summarize(ctx, item)
}

func (uc *ItemUsecase) summarize(ctx context.Context, item *model.Item) (*ItemSummary, error) {
	starCount, err := uc.stars.Count(ctx, model.StarTargetItem, item.ID)
	if err != nil {
		return nil, err
	}
	images, err := uc.images.ListByItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}

	summary := &ItemSummary{Item: item, StarCount: starCount}
	if len(images) > 0 {
		summary.PrimaryImageID = images[0].ID
	}
	return summary, nil
}

// List pages a collection's items. Drafts are included for the owner only.
func (uc *ItemUsecase) List(ctx context.Context, callerID, collectionID string, params ListParams) (*ItemListPage, error) {
	collection, err := uc.collections.GetByID(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	if !collection.VisibleTo(callerID) {
		return nil, model.ErrCollectionNotFound
	}

	fields, err := uc.fields.ListByCollection(ctx, collectionID)
	if err != nil {
		return nil, err
	}

	query, err := buildItemQuery(params, fields)
	if err != nil {
		return nil, err
	}
	query.IncludeDrafts = collection.OwnerID == callerID

	page, err := uc.items.List(ctx, collectionID, *query)
	if err != nil {
		return nil, err
	}

	summaries := make([]*ItemSummary, 0, len(page.Items))
	for _, item := range page.Items {
		summary, err := uc.summarize(ctx, item)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	return &ItemListPage{
		Items:  summaries,
		Total:  page.Total,
		Offset: page.Offset,
		Limit:  page.Limit,
	}, nil
}

// buildItemQuery types the raw filters against the schema and normalizes sort
// and paging.
func buildItemQuery(params ListParams, fields []*model.FieldDefinition) (*model.ItemQuery, error) {
	byName := make(map[string]*model.FieldDefinition, len(fields))
	for _, f := range fields {
		byName[f.Name] = f
	}

	ve := appErrors.NewValidationErrors()
	filters := make(map[string]interface{})
	for _, raw := range params.RawFilters {
		name, value, ok := strings.Cut(raw, "=")
		if !ok {
			ve.Add("filter", "filters must look like Field=Value", raw)
			continue
		}
		field, known := byName[name]
		if !known {
			ve.Add("filter", "unknown filter field", name)
			continue
		}
		typed, err := typeFilterValue(field, value)
		if err != nil {
			ve.Add(name, err.Error(), value)
			continue
		}
		filters[name] = typed
	}

	sort := params.Sort
	desc := false
	if strings.HasPrefix(sort, "-") {
		desc = true
		sort = sort[1:]
	}
	switch {
	case sort == "" || sort == "name" || sort == "created_at":
	case strings.HasPrefix(sort, "metadata:"):
		if _, known := byName[strings.TrimPrefix(sort, "metadata:")]; !known {
			ve.Add("sort", "unknown metadata sort field", sort)
		}
	default:
		ve.Add("sort", "sort must be name, created_at or metadata:<field>", sort)
	}

	if ve.HasErrors() {
		return nil, ve
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultItemLimit
	}
	if limit > maxItemLimit {
		limit = maxItemLimit
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	return &model.ItemQuery{
		Search:  params.Search,
		Filters: filters,
		Sort:    sort,
		Desc:    desc,
		Offset:  offset,
		Limit:   limit,
	}, nil
}

func typeFilterValue(field *model.FieldDefinition, value string) (interface{}, error) {
	switch field.Type {
	case model.FieldTypeNumber:
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, strconv.ErrSyntax
		}
		return n, nil
	case model.FieldTypeCheckbox:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, strconv.ErrSyntax
		}
		return b, nil
	}
	return value, nil
}

// Update applies a partial update. Metadata is merged with existing values;
// publishing a draft validates the merged metadata in full.
func (uc *ItemUsecase) Update(ctx context.Context, callerID, itemID string, patch ItemPatch) (*model.Item, error) {
	item, collection, err := uc.ownedItem(ctx, callerID, itemID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		item.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Notes != nil {
		item.Notes = *patch.Notes
	}
	if patch.Metadata != nil {
		item.Metadata = MergeMetadata(item.Metadata, patch.Metadata)
	}
	publishing := false
	if patch.IsDraft != nil {
		publishing = item.IsDraft && !*patch.IsDraft
		item.IsDraft = *patch.IsDraft
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}

	fields, err := uc.fields.ListByCollection(ctx, collection.ID)
	if err != nil {
		return nil, err
	}
	if err := ValidateMetadata(fields, item.Metadata, !item.IsDraft || publishing); err != nil {
		return nil, err
	}

	if err := uc.items.Update(ctx, item); err != nil {
		return nil, err
	}

	uc.bus.PublishAndForget(ctx, eventbus.NewBasicEvent(eventbus.EventTypeItemUpdated, map[string]interface{}{
		"actor_id":      callerID,
		"item_id":       item.ID,
		"item_name":     item.Name,
		"collection_id": collection.ID,
	}))

	return item, nil
}

// Delete removes an item, its stars and its image files.
func (uc *ItemUsecase) Delete(ctx context.Context, callerID, itemID string) error {
	item, collection, err := uc.ownedItem(ctx, callerID, itemID)
	if err != nil {
		return err
	}

	if _, err := uc.images.DeleteByItem(ctx, itemID); err != nil {
		return err
	}
	if err := uc.stars.DeleteByTarget(ctx, model.StarTargetItem, itemID); err != nil {
		return err
	}
	if err := uc.files.RemoveItem(collection.OwnerID, collection.ID, itemID); err != nil {
		uc.logger.Warnf("Failed to remove item uploads for %s: %v", itemID, err)
	}

	if err := uc.items.Delete(ctx, itemID); err != nil {
		return err
	}

	uc.bus.PublishAndForget(ctx, eventbus.NewBasicEvent(eventbus.EventTypeItemDeleted, map[string]interface{}{
		"actor_id":      callerID,
		"item_id":       itemID,
		"item_name":     item.Name,
		"collection_id": collection.ID,
	}))

	return nil
}

// ToggleHighlight flips the owner's highlight marker on an item.
func (uc *ItemUsecase) ToggleHighlight(ctx context.Context, callerID, itemID string) (*model.Item, error) {
	item, _, err := uc.ownedItem(ctx, callerID, itemID)
	if err != nil {
		return nil, err
	}

	item.IsHighlight = !item.IsHighlight
	if err := uc.items.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Search matches a substring over name and notes across every collection the
// caller owns.
func (uc *ItemUsecase) Search(ctx context.Context, callerID, query string, offset, limit int) (*SearchPage, error) {
	if strings.TrimSpace(query) == "" {
		return nil, appErrors.NewValidationErrors().Add("q", "search query is required", query)
	}
	if limit <= 0 {
		limit = defaultSearchLim
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	if offset < 0 {
		offset = 0
	}

	collections, err := uc.collections.ListByOwner(ctx, callerID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(collections))
	ids := make([]string, 0, len(collections))
	for _, c := range collections {
		ids = append(ids, c.ID)
		names[c.ID] = c.Name
	}

	page, err := uc.items.SearchAcross(ctx, ids, query, offset, limit)
	if err != nil {
		return nil, err
	}

	hits := make([]*SearchHit, 0, len(page.Items))
	for _, item := range page.Items {
		hit := &SearchHit{Item: item, CollectionName: names[item.CollectionID]}
		images, err := uc.images.ListByItem(ctx, item.ID)
		if err != nil {
			return nil, err
		}
		if len(images) > 0 {
			hit.PrimaryImageID = images[0].ID
		}
		hits = append(hits, hit)
	}

	return &SearchPage{Items: hits, Total: page.Total, Offset: offset, Limit: limit}, nil
}

// visibleItem loads an item the caller may read.
func (uc *ItemUsecase) visibleItem(ctx context.Context, callerID, itemID string) (*model.Item, *model.Collection, error) {
	item, err := uc.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}
	collection, err := uc.collections.GetByID(ctx, item.CollectionID)
	if err != nil {
		return nil, nil, err
	}
	if !collection.VisibleTo(callerID) {
		return nil, nil, model.ErrItemNotFound
	}
	if item.IsDraft && collection.OwnerID != callerID {
		return nil, nil, model.ErrItemNotFound
	}
	return item, collection, nil
}

// ownedItem loads an item the caller owns.
func (uc *ItemUsecase) ownedItem(ctx context.Context, callerID, itemID string) (*model.Item, *model.Collection, error) {
	item, err := uc.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}
	collection, err := uc.collections.GetByID(ctx, item.CollectionID)
	if err != nil {
		return nil, nil, err
	}
	if collection.OwnerID != callerID {
		if !collection.IsPublic || item.IsDraft {
			return nil, nil, model.ErrItemNotFound
		}
		return nil, nil, model.ErrNotOwner
	}
	return item, collection, nil
}

func (uc *ItemUsecase) requireOwned(ctx context.Context, callerID, collectionID string) (*model.Collection, error) {
	collection, err := uc.collections.GetByID(ctx, collectionID)
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

var _ ItemUsecaseInterface = (*ItemUsecase)(nil)
