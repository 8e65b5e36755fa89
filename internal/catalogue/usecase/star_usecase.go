package usecase

import (
	"context"

	"curiovault/internal/catalogue/domain/model"
	"curiovault/internal/catalogue/domain/repository"
	"curiovault/internal/shared/eventbus"
	"curiovault/internal/shared/logger"
)

// StarUsecaseInterface defines star operations.
type StarUsecaseInterface interface {
	Star(ctx context.Context, callerID string, targetType model.StarTargetType, targetID string) (*model.StarState, error)
	Unstar(ctx context.Context, callerID string, targetType model.StarTargetType, targetID string) (*model.StarState, error)
}

// StarUsecase implements star operations.
type StarUsecase struct {
	collections repository.CollectionRepository
	items       repository.ItemRepository
	stars       repository.StarRepository
	bus         eventbus.EventBusInterface
	logger      logger.Logger
}

// NewStarUsecase creates a star usecase.
func NewStarUsecase(
	collections repository.CollectionRepository,
	items repository.ItemRepository,
	stars repository.StarRepository,
	bus eventbus.EventBusInterface,
	log logger.Logger,
) *StarUsecase {
	return &StarUsecase{
		collections: collections,
		items:       items,
		stars:       stars,
		bus:         bus,
		logger:      log.WithComponent("star_usecase"),
	}
}

// Star adds the caller's star to a visible target. Repeating the call is a
// no-op that reports the current state.
func (uc *StarUsecase) Star(ctx context.Context, callerID string, targetType model.StarTargetType, targetID string) (*model.StarState, error) {
	target, err := uc.resolveTarget(ctx, callerID, targetType, targetID)
	if err != nil {
		return nil, err
	}
	if target.ownerID == callerID {
		return nil, model.ErrCannotStarOwn
	}

	added, err := uc.stars.Add(ctx, &model.Star{
		UserID:     callerID,
		OwnerID:    target.ownerID,
		TargetType: targetType,
		TargetID:   targetID,
	})
	if err != nil {
		return nil, err
	}

	if added {
		uc.bus.PublishAndForget(ctx, eventbus.NewBasicEvent(eventbus.EventTypeStarAdded, map[string]interface{}{
			"actor_id":    callerID,
			"owner_id":    target.ownerID,
			"target_type": string(targetType),
			"target_id":   targetID,
			"target_name": target.name,
		}))
	}

	return uc.state(ctx, callerID, targetType, targetID)
}

// Unstar removes the caller's star if present.
func (uc *StarUsecase) Unstar(ctx context.Context, callerID string, targetType model.StarTargetType, targetID string) (*model.StarState, error) {
	target, err := uc.resolveTarget(ctx, callerID, targetType, targetID)
	if err != nil {
		return nil, err
	}

	removed, err := uc.stars.Remove(ctx, callerID, targetType, targetID)
	if err != nil {
		return nil, err
	}

	if removed {
		uc.bus.PublishAndForget(ctx, eventbus.NewBasicEvent(eventbus.EventTypeStarRemoved, map[string]interface{}{
			"actor_id":    callerID,
			"owner_id":    target.ownerID,
			"target_type": string(targetType),
			"target_id":   targetID,
			"target_name": target.name,
		}))
	}

	return uc.state(ctx, callerID, targetType, targetID)
}

func (uc *StarUsecase) state(ctx context.Context, callerID string, targetType model.StarTargetType, targetID string) (*model.StarState, error) {
	starred, err := uc.stars.Exists(ctx, callerID, targetType, targetID)
	if err != nil {
		return nil, err
	}
	count, err := uc.stars.Count(ctx, targetType, targetID)
	if err != nil {
		return nil, err
	}
	return &model.StarState{Starred: starred, StarCount: count}, nil
}

type starTarget struct {
	ownerID string
	name    string
}

// resolveTarget loads the target and enforces visibility to the caller.
func (uc *StarUsecase) resolveTarget(ctx context.Context, callerID string, targetType model.StarTargetType, targetID string) (*starTarget, error) {
	switch targetType {
	case model.StarTargetCollection:
		collection, err := uc.collections.GetByID(ctx, targetID)
		if err != nil {
			return nil, err
		}
		if !collection.VisibleTo(callerID) {
			return nil, model.ErrCollectionNotFound
		}
		return &starTarget{ownerID: collection.OwnerID, name: collection.Name}, nil
	case model.StarTargetItem:
		item, err := uc.items.GetByID(ctx, targetID)
		if err != nil {
			return nil, err
		}
		collection, err := uc.collections.GetByID(ctx, item.CollectionID)
		if err != nil {
			return nil, err
		}
		if !collection.VisibleTo(callerID) || (item.IsDraft && collection.OwnerID != callerID) {
			return nil, model.ErrItemNotFound
		}
		return &starTarget{ownerID: collection.OwnerID, name: item.Name}, nil
	}
	return nil, model.ErrItemNotFound
}

var _ StarUsecaseInterface = (*StarUsecase)(nil)
