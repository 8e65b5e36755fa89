package usecase

import (
	"context"
	"net/http"
	"os"

	"curiovault/internal/catalogue/domain/model"
	"curiovault/internal/catalogue/domain/repository"
	"curiovault/internal/shared/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ImageRenditionStore is the disk store as the image usecase sees it.
type ImageRenditionStore interface {
	Save(ownerID, collectionID, itemID, imageID string, data []byte) error
	Remove(ownerID, collectionID, itemID, imageID string)
	VariantPath(ownerID, collectionID, itemID, imageID string, variant model.ImageVariant) string
	Open(relPath string) (*os.File, error)
}

// ImageUsecaseInterface defines item image operations.
type ImageUsecaseInterface interface {
	Upload(ctx context.Context, callerID, itemID, filename string, data []byte) (*model.ItemImage, error)
	List(ctx context.Context, callerID, itemID string) ([]*model.ItemImage, error)
	Reposition(ctx context.Context, callerID, imageID string, position int) ([]*model.ItemImage, error)
	Delete(ctx context.Context, callerID, imageID string) error
	OpenVariant(ctx context.Context, callerID, imageID string, variant model.ImageVariant) (*os.File, error)
}

// ImageUsecase implements item image operations.
type ImageUsecase struct {
	collections repository.CollectionRepository
	items       repository.ItemRepository
	images      repository.ImageRepository
	store       ImageRenditionStore
	maxBytes    int64
	logger      logger.Logger
}

// NewImageUsecase creates an image usecase enforcing maxBytes per upload.
func NewImageUsecase(
	collections repository.CollectionRepository,
	items repository.ItemRepository,
	images repository.ImageRepository,
	store ImageRenditionStore,
	maxBytes int64,
	log logger.Logger,
) *ImageUsecase {
	return &ImageUsecase{
		collections: collections,
		items:       items,
		images:      images,
		store:       store,
		maxBytes:    maxBytes,
		logger:      log.WithComponent("image_usecase"),
	}
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// Upload stores a new image at the end of the item's strip.
func (uc *ImageUsecase) Upload(ctx context.Context, callerID, itemID, filename string, data []byte) (*model.ItemImage, error) {
	item, collection, err := uc.ownedItem(ctx, callerID, itemID)
	if err != nil {
		return nil, err
	}

	if int64(len(data)) > uc.maxBytes {
		return nil, model.ErrImageTooLarge
	}
	if !allowedImageTypes[http.DetectContentType(data)] {
		return nil, model.ErrImageTypeInvalid
	}

	existing, err := uc.images.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	image := &model.ItemImage{
		ObjectID: primitive.NewObjectID(),
		ItemID:   itemID,
		Filename: filename,
		Position: len(existing),
	}
	image.ID = image.ObjectID.Hex()

	if err := uc.store.Save(collection.OwnerID, collection.ID, item.ID, image.ID, data); err != nil {
		return nil, err
	}
	if err := uc.images.Create(ctx, image); err != nil {
		uc.store.Remove(collection.OwnerID, collection.ID, item.ID, image.ID)
		return nil, err
	}

	return image, nil
}

// List returns an item's images in position order.
func (uc *ImageUsecase) List(ctx context.Context, callerID, itemID string) ([]*model.ItemImage, error) {
	if _, _, err := uc.visibleItem(ctx, callerID, itemID); err != nil {
		return nil, err
	}
	return uc.images.ListByItem(ctx, itemID)
}

// Reposition moves one image to the requested index. The image is removed
// from the strip, inserted at position and the strip renumbered 0..n-1.
func (uc *ImageUsecase) Reposition(ctx context.Context, callerID, imageID string, position int) ([]*model.ItemImage, error) {
	image, err := uc.images.GetByID(ctx, imageID)
	if err != nil {
		return nil, err
	}
	if _, _, err := uc.ownedItem(ctx, callerID, image.ItemID); err != nil {
		return nil, err
	}

	images, err := uc.images.ListByItem(ctx, image.ItemID)
	if err != nil {
		return nil, err
	}
	if position < 0 || position > len(images)-1 {
		return nil, model.ErrImagePositionInvalid
	}

	ordered := make([]string, 0, len(images))
	for _, img := range images {
		if img.ID != imageID {
			ordered = append(ordered, img.ID)
		}
	}
	ordered = append(ordered[:position], append([]string{imageID}, ordered[position:]...)...)

	if err := uc.images.SetPositions(ctx, image.ItemID, ordered); err != nil {
		return nil, err
	}
	return uc.images.ListByItem(ctx, image.ItemID)
}

// Delete removes an image's files and record and closes the position gap.
func (uc *ImageUsecase) Delete(ctx context.Context, callerID, imageID string) error {
	image, err := uc.images.GetByID(ctx, imageID)
	if err != nil {
		return err
	}
	item, collection, err := uc.ownedItem(ctx, callerID, image.ItemID)
	if err != nil {
		return err
	}

	if err := uc.images.Delete(ctx, imageID); err != nil {
		return err
	}
	uc.store.Remove(collection.OwnerID, collection.ID, item.ID, imageID)

	remaining, err := uc.images.ListByItem(ctx, image.ItemID)
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(remaining))
	for _, img := range remaining {
		ids = append(ids, img.ID)
	}
	return uc.images.SetPositions(ctx, image.ItemID, ids)
}

// OpenVariant opens one rendition for reading, enforcing visibility. Images
// of drafts and private collections are owner only.
func (uc *ImageUsecase) OpenVariant(ctx context.Context, callerID, imageID string, variant model.ImageVariant) (*os.File, error) {
	if !model.ValidImageVariant(variant) {
		return nil, model.ErrImageNotFound
	}

	image, err := uc.images.GetByID(ctx, imageID)
	if err != nil {
		return nil, err
	}
	item, collection, err := uc.visibleItem(ctx, callerID, image.ItemID)
	if err != nil {
		return nil, err
	}

	return uc.store.Open(uc.store.VariantPath(collection.OwnerID, collection.ID, item.ID, imageID, variant))
}

func (uc *ImageUsecase) visibleItem(ctx context.Context, callerID, itemID string) (*model.Item, *model.Collection, error) {
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

func (uc *ImageUsecase) ownedItem(ctx context.Context, callerID, itemID string) (*model.Item, *model.Collection, error) {
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

var _ ImageUsecaseInterface = (*ImageUsecase)(nil)
