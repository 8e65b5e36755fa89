package usecase

import (
	"context"

	"curiovault/internal/catalogue/domain/model"
	"curiovault/internal/catalogue/domain/repository"
	"curiovault/internal/shared/logger"
)

// PublicItem is an item as shown to anonymous viewers: private-field
// metadata stripped.
type PublicItem struct {
	ID             string                 `json:"id"`
	CollectionID   string                 `json:"collection_id"`
	Name           string                 `json:"name"`
	Metadata       map[string]interface{} `json:"metadata"`
	Notes          string                 `json:"notes,omitempty"`
	IsFeatured     bool                   `json:"is_featured"`
	IsHighlight    bool                   `json:"is_highlight"`
	PrimaryImageID string                 `json:"primary_image_id,omitempty"`
	StarCount      int64                  `json:"star_count"`
}

// PublicCollection is a public collection with its visible schema.
type PublicCollection struct {
	*model.Collection
	Fields    []*model.FieldDefinition `json:"fields"`
	ItemCount int64                    `json:"item_count"`
	StarCount int64                    `json:"star_count"`
}

// FeaturedView is the public landing content.
type FeaturedView struct {
	Collection *model.Collection `json:"collection"`
	Items      []*PublicItem     `json:"items"`
}

// PublicUsecaseInterface defines the anonymous read surface.
type PublicUsecaseInterface interface {
	GetCollection(ctx context.Context, id string) (*PublicCollection, error)
	ListItems(ctx context.Context, collectionID string, params ListParams) (*PublicItemPage, error)
	GetItem(ctx context.Context, itemID string) (*PublicItem, error)
	Featured(ctx context.Context) (*FeaturedView, error)
}

// PublicItemPage is one page of public items.
type PublicItemPage struct {
	Items  []*PublicItem `json:"items"`
	Total  int64         `json:"total"`
	Offset int           `json:"offset"`
	Limit  int           `json:"limit"`
}

// PublicUsecase serves public collections with drafts excluded and private
// fields masked.
type PublicUsecase struct {
	collections repository.CollectionRepository
	fields      repository.FieldRepository
	items       repository.ItemRepository
	images      repository.ImageRepository
	stars       repository.StarRepository
	logger      logger.Logger
}

// NewPublicUsecase creates a public read usecase.
func NewPublicUsecase(
	collections repository.CollectionRepository,
	fields repository.FieldRepository,
	items repository.ItemRepository,
	images repository.ImageRepository,
	stars repository.StarRepository,
	log logger.Logger,
) *PublicUsecase {
	return &PublicUsecase{
		collections: collections,
		fields:      fields,
		items:       items,
		images:      images,
		stars:       stars,
		logger:      log.WithComponent("public_usecase"),
	}
}

// GetCollection returns a public collection with its non-private fields.
func (uc *PublicUsecase) GetCollection(ctx context.Context, id string) (*PublicCollection, error) {
	collection, err := uc.publicCollection(ctx, id)
	if err != nil {
		return nil, err
	}

	fields, err := uc.visibleFields(ctx, id)
	if err != nil {
		return nil, err
	}

	page, err := uc.items.List(ctx, id, model.ItemQuery{Limit: 1})
	if err != nil {
		return nil, err
	}
	starCount, err := uc.stars.Count(ctx, model.StarTargetCollection, id)
	if err != nil {
		return nil, err
	}

	return &PublicCollection{
		Collection: collection,
		Fields:     fields,
		ItemCount:  page.Total,
		StarCount:  starCount,
	}, nil
}

// ListItems pages a public collection's published items.
func (uc *PublicUsecase) ListItems(ctx context.Context, collectionID string, params ListParams) (*PublicItemPage, error) {
	if _, err := uc.publicCollection(ctx, collectionID); err != nil {
		return nil, err
	}

	fields, err := uc.fields.ListByCollection(ctx, collectionID)
	if err != nil {
		return nil, err
	}

	query, err := buildItemQuery(params, fields)
	if err != nil {
		return nil, err
	}

	page, err := uc.items.List(ctx, collectionID, *query)
	if err != nil {
		return nil, err
	}

	private := privateFieldNames(fields)
	out := make([]*PublicItem, 0, len(page.Items))
	for _, item := range page.Items {
		public, err := uc.publicView(ctx, item, private)
		if err != nil {
			return nil, err
		}
		out = append(out, public)
	}

	return &PublicItemPage{Items: out, Total: page.Total, Offset: page.Offset, Limit: page.Limit}, nil
}

// GetItem returns one published item of a public collection.
func (uc *PublicUsecase) GetItem(ctx context.Context, itemID string) (*PublicItem, error) {
	item, err := uc.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.IsDraft {
		return nil, model.ErrItemNotFound
	}
	if _, err := uc.publicCollection(ctx, item.CollectionID); err != nil {
		return nil, model.ErrItemNotFound
	}

	fields, err := uc.fields.ListByCollection(ctx, item.CollectionID)
	if err != nil {
		return nil, err
	}
	return uc.publicView(ctx, item, privateFieldNames(fields))
}

// Featured returns the featured collection and its featured items.
func (uc *PublicUsecase) Featured(ctx context.Context) (*FeaturedView, error) {
	collection, err := uc.collections.GetFeatured(ctx)
	if err != nil {
		if err == model.ErrCollectionNotFound {
			return &FeaturedView{Items: []*PublicItem{}}, nil
		}
		return nil, err
	}

	fields, err := uc.fields.ListByCollection(ctx, collection.ID)
	if err != nil {
		return nil, err
	}
	private := privateFieldNames(fields)

	items, err := uc.items.ListFeatured(ctx, collection.ID)
	if err != nil {
		return nil, err
	}

	out := make([]*PublicItem, 0, len(items))
	for _, item := range items {
		public, err := uc.publicView(ctx, item, private)
		if err != nil {
			return nil, err
		}
		out = append(out, public)
	}

	return &FeaturedView{Collection: collection, Items: out}, nil
}

func (uc *PublicUsecase) publicCollection(ctx context.Context, id string) (*model.Collection, error) {
	collection, err := uc.collections.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !collection.IsPublic {
		return nil, model.ErrCollectionNotFound
	}
	return collection, nil
}

func (uc *PublicUsecase) visibleFields(ctx context.Context, collectionID string) ([]*model.FieldDefinition, error) {
	fields, err := uc.fields.ListByCollection(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	visible := make([]*model.FieldDefinition, 0, len(fields))
	for _, field := range fields {
		if !field.IsPrivate {
			visible = append(visible, field)
		}
	}
	return visible, nil
}

func (uc *PublicUsecase) publicView(ctx context.Context, item *model.Item, privateFields map[string]bool) (*PublicItem, error) {
	metadata := make(map[string]interface{}, len(item.Metadata))
	for key, value := range item.Metadata {
		if !privateFields[key] {
			metadata[key] = value
		}
	}

	starCount, err := uc.stars.Count(ctx, model.StarTargetItem, item.ID)
	if err != nil {
		return nil, err
	}
	images, err := uc.images.ListByItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}

	public := &PublicItem{
		ID:           item.ID,
		CollectionID: item.CollectionID,
		Name:         item.Name,
		Metadata:     metadata,
		Notes:        item.Notes,
		IsFeatured:   item.IsFeatured,
		IsHighlight:  item.IsHighlight,
		StarCount:    starCount,
	}
	if len(images) > 0 {
		public.PrimaryImageID = images[0].ID
	}
	return public, nil
}

func privateFieldNames(fields []*model.FieldDefinition) map[string]bool {
	private := make(map[string]bool)
	for _, field := range fields {
		if field.IsPrivate {
			private[field.Name] = true
		}
	}
	return private
}

var _ PublicUsecaseInterface = (*PublicUsecase)(nil)
