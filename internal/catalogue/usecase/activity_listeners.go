package usecase

import (
	"sync"

	"curiovault/internal/catalogue/domain/model"

	"github.com/google/uuid"
)

const listenerBuffer = 16

// listenerRegistry fans recorded entries out to live stream subscribers.
// Slow subscribers drop entries rather than block the recorder.
type listenerRegistry struct {
	mu        sync.RWMutex
	listeners map[string]*streamListener
}

type streamListener struct {
	userID string
	ch     chan *model.ActivityEntry
}

func (r *listenerRegistry) add(userID string) (string, <-chan *model.ActivityEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.listeners == nil {
		r.listeners = make(map[string]*streamListener)
	}

	id := uuid.New().String()
	listener := &streamListener{
		userID: userID,
		ch:     make(chan *model.ActivityEntry, listenerBuffer),
	}
	r.listeners[id] = listener
	return id, listener.ch
}

func (r *listenerRegistry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if listener, ok := r.listeners[id]; ok {
		close(listener.ch)
		delete(r.listeners, id)
	}
}

func (r *listenerRegistry) notify(userID string, entry *model.ActivityEntry) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, listener := range r.listeners {
		if listener.userID != userID {
			continue
		}
		select {
		case listener.ch <- entry:
		default:
		}
	}
}
