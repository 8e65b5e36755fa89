package usecase

import (
	"context"
	"fmt"
	"time"

	"curiovault/internal/catalogue/domain/model"
	"curiovault/internal/catalogue/domain/repository"
	"curiovault/internal/shared/eventbus"
	"curiovault/internal/shared/logger"

	"github.com/google/uuid"
)

const (
	defaultActivityLimit = 5
	maxActivityLimit     = 100
)

// UsernameResolver looks up a user's display name for feed entries.
type UsernameResolver interface {
	Username(ctx context.Context, userID string) (string, error)
}

// ActivityUsecaseInterface defines activity feed operations.
type ActivityUsecaseInterface interface {
	List(ctx context.Context, userID string, limit int) ([]*model.ActivityEntry, error)
}

// ActivityUsecase records domain events into per-user feeds and serves them.
type ActivityUsecase struct {
	store     repository.ActivityStore
	usernames UsernameResolver
	logger    logger.Logger

	// listeners receive every recorded entry, keyed by a subscription ID.
	// Used by the websocket stream.
	listeners listenerRegistry
}

// NewActivityUsecase creates the usecase and subscribes it to the bus.
func NewActivityUsecase(store repository.ActivityStore, usernames UsernameResolver, bus eventbus.EventBusInterface, log logger.Logger) *ActivityUsecase {
	uc := &ActivityUsecase{
		store:     store,
		usernames: usernames,
		logger:    log.WithComponent("activity_usecase"),
	}

	bus.Subscribe(eventbus.EventTypeCollectionCreated, uc.onEvent(model.VerbCreatedCollection))
	bus.Subscribe(eventbus.EventTypeCollectionDeleted, uc.onEvent(model.VerbDeletedCollection))
	bus.Subscribe(eventbus.EventTypeItemCreated, uc.onEvent(model.VerbCreatedItem))
	bus.Subscribe(eventbus.EventTypeItemUpdated, uc.onEvent(model.VerbUpdatedItem))
	bus.Subscribe(eventbus.EventTypeItemDeleted, uc.onEvent(model.VerbDeletedItem))
	bus.Subscribe(eventbus.EventTypeItemCaptured, uc.onEvent(model.VerbCapturedItem))
	bus.Subscribe(eventbus.EventTypeStarAdded, uc.onStar)
	bus.Subscribe(eventbus.EventTypeTemplateCreated, uc.onEvent(model.VerbCreatedTemplate))
	bus.Subscribe(eventbus.EventTypeTemplateDeleted, uc.onEvent(model.VerbDeletedTemplate))

	return uc
}

// List returns the newest entries of a user's feed.
func (uc *ActivityUsecase) List(ctx context.Context, userID string, limit int) ([]*model.ActivityEntry, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}
	return uc.store.List(ctx, userID, limit)
}

// onEvent builds a handler recording one verb from the event payload.
func (uc *ActivityUsecase) onEvent(verb string) eventbus.Handler {
	return func(ctx context.Context, event eventbus.Event) error {
		payload, ok := event.Data().(map[string]interface{})
		if !ok {
			return nil
		}
		entry := uc.entryFromPayload(ctx, verb, payload)
		if entry == nil {
			return nil
		}
		return uc.record(ctx, entry.ActorID, entry)
	}
}

// onStar records the star for the actor and, when different, the target's
// owner.
func (uc *ActivityUsecase) onStar(ctx context.Context, event eventbus.Event) error {
	payload, ok := event.Data().(map[string]interface{})
	if !ok {
		return nil
	}

	verb := model.VerbStarredCollection
	if stringField(payload, "target_type") == string(model.StarTargetItem) {
		verb = model.VerbStarredItem
	}

	entry := uc.entryFromPayload(ctx, verb, payload)
	if entry == nil {
		return nil
	}
	if err := uc.record(ctx, entry.ActorID, entry); err != nil {
		return err
	}

	ownerID := stringField(payload, "owner_id")
	if ownerID != "" && ownerID != entry.ActorID {
		return uc.record(ctx, ownerID, entry)
	}
	return nil
}

func (uc *ActivityUsecase) entryFromPayload(ctx context.Context, verb string, payload map[string]interface{}) *model.ActivityEntry {
	actorID := stringField(payload, "actor_id")
	if actorID == "" {
		return nil
	}

	entry := &model.ActivityEntry{
		ID:         uuid.New().String(),
		ActorID:    actorID,
		Verb:       verb,
		OccurredAt: time.Now(),
	}

	if username, err := uc.usernames.Username(ctx, actorID); err == nil {
		entry.ActorUsername = username
	}

	switch {
	case stringField(payload, "item_id") != "":
		entry.TargetType = string(model.StarTargetItem)
		entry.TargetID = stringField(payload, "item_id")
		entry.TargetName = stringField(payload, "item_name")
		entry.TargetPath = fmt.Sprintf("/collections/%s/items/%s",
			stringField(payload, "collection_id"), entry.TargetID)
	case stringField(payload, "template_id") != "":
		entry.TargetType = "template"
		entry.TargetID = stringField(payload, "template_id")
		entry.TargetName = stringField(payload, "template_name")
		entry.TargetPath = fmt.Sprintf("/schema-templates/%s", entry.TargetID)
	case stringField(payload, "target_id") != "":
		entry.TargetType = stringField(payload, "target_type")
		entry.TargetID = stringField(payload, "target_id")
		entry.TargetName = stringField(payload, "target_name")
		if entry.TargetType == string(model.StarTargetCollection) {
			entry.TargetPath = fmt.Sprintf("/collections/%s", entry.TargetID)
		}
	case stringField(payload, "collection_id") != "":
		entry.TargetType = string(model.StarTargetCollection)
		entry.TargetID = stringField(payload, "collection_id")
		entry.TargetName = stringField(payload, "collection_name")
		entry.TargetPath = fmt.Sprintf("/collections/%s", entry.TargetID)
	default:
		return nil
	}

	return entry
}

func (uc *ActivityUsecase) record(ctx context.Context, userID string, entry *model.ActivityEntry) error {
	if err := uc.store.Append(ctx, userID, entry); err != nil {
		return err
	}
	uc.listeners.notify(userID, entry)
	return nil
}

// StreamListener receives a user's new feed entries as they are recorded.
func (uc *ActivityUsecase) StreamListener(userID string) (id string, ch <-chan *model.ActivityEntry) {
	return uc.listeners.add(userID)
}

// StopListener detaches a stream listener.
func (uc *ActivityUsecase) StopListener(id string) {
	uc.listeners.remove(id)
}

func stringField(payload map[string]interface{}, key string) string {
	s, _ := payload[key].(string)
	return s
}

var _ ActivityUsecaseInterface = (*ActivityUsecase)(nil)
