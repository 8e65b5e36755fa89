package eventbus

import (
	"context"
	"fmt"
	"sync"
	"time"

	"curiovault/internal/shared/logger"
)

// Event is a domain event flowing through the bus.
type Event interface {
	Type() string
	Data() interface{}
	Timestamp() time.Time
	Source() string
}

// Handler processes one event. A non-nil error triggers a retry.
type Handler func(ctx context.Context, event Event) error

// EventBusInterface is the publish/subscribe contract the usecases depend on.
type EventBusInterface interface {
	Subscribe(eventType string, handler Handler)
	Publish(ctx context.Context, event Event) error
	PublishAndForget(ctx context.Context, event Event)
}

// EventBus is an in-process bus. Publishing runs handlers synchronously in
// subscription order; PublishAndForget detaches the whole publish.
type EventBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   logger.Logger

	maxRetries int
	retryDelay time.Duration
}

// NewEventBus creates a bus. A nil logger silences it.
func NewEventBus(log logger.Logger) *EventBus {
	if log == nil {
		log = &noopLogger{}
	}
	return &EventBus{
		handlers:   make(map[string][]Handler),
		logger:     log,
		maxRetries: 3,
		retryDelay: 100 * time.Millisecond,
	}
}

// Subscribe adds a handler for an event type.
func (eb *EventBus) Subscribe(eventType string, handler Handler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.handlers[eventType] = append(eb.handlers[eventType], handler)
	eb.logger.Debugf("Subscribed handler for event type: %s", eventType)
}

// Publish delivers the event to every subscribed handler, retrying failed
// handlers before giving up.
func (eb *EventBus) Publish(ctx context.Context, event Event) error {
	eb.mu.RLock()
	handlers := eb.handlers[event.Type()]
	eb.mu.RUnlock()

	for i, handler := range handlers {
		if err := eb.deliver(ctx, event, handler); err != nil {
			return fmt.Errorf("handler %d for event %s: %w", i, event.Type(), err)
		}
	}
	return nil
}

// PublishAndForget delivers the event in the background. Failures are logged,
// never surfaced to the publisher. The delivery context is detached from the
// caller's cancellation so handlers outlive the request that published.
func (eb *EventBus) PublishAndForget(ctx context.Context, event Event) {
	detached := context.WithoutCancel(ctx)
	go func() {
		if err := eb.Publish(detached, event); err != nil {
			eb.logger.Errorf("Failed to publish event %s: %v", event.Type(), err)
		}
	}()
}

func (eb *EventBus) deliver(ctx context.Context, event Event, handler Handler) error {
	var lastErr error
	for attempt := 0; attempt <= eb.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(eb.retryDelay)
		}
		if lastErr = handler(ctx, event); lastErr == nil {
			return nil
		}
		eb.logger.Warnf("Handler failed for event %s (attempt %d/%d): %v",
			event.Type(), attempt+1, eb.maxRetries+1, lastErr)
	}
	return lastErr
}

// BasicEvent is the default Event implementation.
type BasicEvent struct {
	eventType string
	data      interface{}
	timestamp time.Time
	source    string
}

// NewBasicEvent creates an event with the given type and payload.
func NewBasicEvent(eventType string, data interface{}) Event {
	return NewBasicEventWithSource(eventType, data, "unknown")
}

// NewBasicEventWithSource creates an event tagged with its publishing module.
func NewBasicEventWithSource(eventType string, data interface{}, source string) Event {
	return &BasicEvent{
		eventType: eventType,
		data:      data,
		timestamp: time.Now(),
		source:    source,
	}
}

func (e *BasicEvent) Type() string         { return e.eventType }
func (e *BasicEvent) Data() interface{}    { return e.data }
func (e *BasicEvent) Timestamp() time.Time { return e.timestamp }
func (e *BasicEvent) Source() string       { return e.source }

// Domain event types published by the auth and catalogue usecases.
const (
	EventTypeUserRegistered    = "user.registered"
	EventTypeCollectionCreated = "collection.created"
	EventTypeCollectionDeleted = "collection.deleted"
	EventTypeItemCreated       = "item.created"
	EventTypeItemUpdated       = "item.updated"
	EventTypeItemDeleted       = "item.deleted"
	EventTypeItemCaptured      = "item.captured"
	EventTypeStarAdded         = "star.added"
	EventTypeStarRemoved       = "star.removed"
	EventTypeTemplateCreated   = "template.created"
	EventTypeTemplateDeleted   = "template.deleted"
)

// noopLogger backs a bus constructed without a logger.
type noopLogger struct{}

func (n *noopLogger) Debug(args ...interface{})                 {}
func (n *noopLogger) Info(args ...interface{})                  {}
func (n *noopLogger) Warn(args ...interface{})                  {}
func (n *noopLogger) Error(args ...interface{})                 {}
func (n *noopLogger) Fatal(args ...interface{})                 {}
func (n *noopLogger) Debugf(format string, args ...interface{}) {}
func (n *noopLogger) Infof(format string, args ...interface{})  {}
func (n *noopLogger) Warnf(format string, args ...interface{})  {}
func (n *noopLogger) Errorf(format string, args ...interface{}) {}
func (n *noopLogger) Fatalf(format string, args ...interface{}) {}

func (n *noopLogger) WithFields(fields map[string]interface{}) logger.Logger { return n }
func (n *noopLogger) WithContext(ctx context.Context) logger.Logger          { return n }
func (n *noopLogger) WithComponent(component string) logger.Logger           { return n }
