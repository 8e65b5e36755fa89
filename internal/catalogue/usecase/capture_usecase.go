package usecase

import (
	"context"
	"fmt"

	"curiovault/internal/catalogue/domain/model"
	"curiovault/internal/catalogue/domain/repository"
	"curiovault/internal/shared/eventbus"
	"curiovault/internal/shared/logger"
)

// CaptureResult is a freshly captured draft with its first image.
type CaptureResult struct {
	Item  *model.Item      `json:"item"`
	Image *model.ItemImage `json:"image"`
}

// CaptureSession summarizes a collection's in-progress capture run.
type CaptureSession struct {
	DraftCount  int64 `json:"draft_count"`
	TotalImages int64 `json:"total_images"`
}

// CaptureUsecaseInterface defines speed capture operations.
type CaptureUsecaseInterface interface {
	CaptureItem(ctx context.Context, callerID, collectionID, filename string, data []byte) (*CaptureResult, error)
	AddImage(ctx context.Context, callerID, itemID, filename string, data []byte) (*model.ItemImage, error)
	Session(ctx context.Context, callerID, collectionID string) (*CaptureSession, error)
}

// CaptureUsecase implements the photograph-first capture flow: one shot
// creates a draft item whose details are filled in later.
type CaptureUsecase struct {
	collections repository.CollectionRepository
	items       repository.ItemRepository
	imageCounts repository.ImageRepository
	uploads     ImageUsecaseInterface
	bus         eventbus.EventBusInterface
	logger      logger.Logger
}

// NewCaptureUsecase creates a capture usecase.
func NewCaptureUsecase(
	collections repository.CollectionRepository,
	items repository.ItemRepository,
	images repository.ImageRepository,
	uploads ImageUsecaseInterface,
	bus eventbus.EventBusInterface,
	log logger.Logger,
) *CaptureUsecase {
	return &CaptureUsecase{
		collections: collections,
		items:       items,
		imageCounts: images,
		uploads:     uploads,
		bus:         bus,
		logger:      log.WithComponent("capture_usecase"),
	}
}

// CaptureItem creates a draft named after the current draft count and
// attaches the shot as its first image.
func (uc *CaptureUsecase) CaptureItem(ctx context.Context, callerID, collectionID, filename string, data []byte) (*CaptureResult, error) {
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

	draftCount, err := uc.items.CountDrafts(ctx, collectionID)
	if err != nil {
		return nil, err
	}

	item := &model.Item{
		CollectionID: collectionID,
		Name:         fmt.Sprintf("Draft %d", draftCount+1),
		Metadata:     map[string]interface{}{},
		IsDraft:      true,
	}
	if err := uc.items.Create(ctx, item); err != nil {
		return nil, err
	}

	image, err := uc.uploads.Upload(ctx, callerID, item.ID, filename, data)
	if err != nil {
		// keep the flow atomic from the caller's point of view
		if delErr := uc.items.Delete(ctx, item.ID); delErr != nil {
			uc.logger.Warnf("Failed to roll back draft %s: %v", item.ID, delErr)
		}
		return nil, err
	}

	uc.bus.PublishAndForget(ctx, eventbus.NewBasicEvent(eventbus.EventTypeItemCaptured, map[string]interface{}{
		"actor_id":      callerID,
		"item_id":       item.ID,
		"item_name":     item.Name,
		"collection_id": collectionID,
	}))

	return &CaptureResult{Item: item, Image: image}, nil
}

// AddImage appends a shot to an existing draft.
func (uc *CaptureUsecase) AddImage(ctx context.Context, callerID, itemID, filename string, data []byte) (*model.ItemImage, error) {
	item, err := uc.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.IsDraft {
		return nil, model.ErrItemNotDraft
	}

	return uc.uploads.Upload(ctx, callerID, itemID, filename, data)
}

// Session reports the collection's draft count and the images attached to
// those drafts.
func (uc *CaptureUsecase) Session(ctx context.Context, callerID, collectionID string) (*CaptureSession, error) {
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

	draftIDs, err := uc.items.DraftIDs(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	totalImages, err := uc.imageCounts.CountByItems(ctx, draftIDs)
	if err != nil {
		return nil, err
	}

	return &CaptureSession{
		DraftCount:  int64(len(draftIDs)),
		TotalImages: totalImages,
	}, nil
}

var _ CaptureUsecaseInterface = (*CaptureUsecase)(nil)
