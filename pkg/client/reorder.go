package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrReorderInFlight is returned when a move is attempted while a previous
// one is still being persisted.
var ErrReorderInFlight = errors.New("a reorder is already in flight")

// PersistFunc pushes one move to the server, either as the full ordering or
// as the moved element's new index, and returns the server's canonical order.
type PersistFunc func(ctx context.Context, movedID string, to int, orderedIDs []string) ([]string, error)

// Reorderer keeps a locally held ordered list in sync with the server while
// giving immediate feedback on moves. A move is applied locally first, then
// persisted; if persisting fails the list snaps back to its pre-move state.
// Only one move may be in flight at a time.
type Reorderer struct {
	mu       sync.Mutex
	order    []string
	inFlight bool
	persist  PersistFunc
}

// NewReorderer creates a reorderer over the given initial order.
func NewReorderer(initial []string, persist PersistFunc) *Reorderer {
	return &Reorderer{order: snapshot(initial), persist: persist}
}

// Order returns the current local order.
func (r *Reorderer) Order() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return snapshot(r.order)
}

// Move shifts the element with the given ID to index to, persists the new
// ordering, and returns the resulting order. On a persist failure the
// pre-move order is restored and returned alongside the error.
func (r *Reorderer) Move(ctx context.Context, id string, to int) ([]string, error) {
	r.mu.Lock()
	if r.inFlight {
		r.mu.Unlock()
		return nil, ErrReorderInFlight
	}

	from := indexOf(r.order, id)
	if from < 0 {
		order := snapshot(r.order)
		r.mu.Unlock()
		return order, fmt.Errorf("unknown element %q", id)
	}
	if to < 0 || to >= len(r.order) {
		order := snapshot(r.order)
		r.mu.Unlock()
		return order, fmt.Errorf("position %d out of range", to)
	}

	prev := snapshot(r.order)
	r.order = moveElement(r.order, from, to)
	next := snapshot(r.order)
	r.inFlight = true
	r.mu.Unlock()

	canonical, err := r.persist(ctx, id, to, next)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.inFlight = false

	if err != nil {
		r.order = prev
		return snapshot(r.order), err
	}
	if canonical != nil {
		r.order = snapshot(canonical)
	}
	return snapshot(r.order), nil
}

func indexOf(order []string, id string) int {
	for i, v := range order {
		if v == id {
			return i
		}
	}
	return -1
}

func snapshot(order []string) []string {
	out := make([]string, len(order))
	copy(out, order)
	return out
}

func moveElement(order []string, from, to int) []string {
	id := order[from]
	rest := append(order[:from:from], order[from+1:]...)
	out := make([]string, 0, len(order))
	out = append(out, rest[:to]...)
	out = append(out, id)
	out = append(out, rest[to:]...)
	return out
}

// FieldReorderer builds a Reorderer that persists through the field order
// endpoint of the given collection, carrying the full ordering.
func (c *Client) FieldReorderer(collectionID string, initial []string) *Reorderer {
	return NewReorderer(initial, func(ctx context.Context, _ string, _ int, orderedIDs []string) ([]string, error) {
		fields, err := c.ReorderFields(ctx, collectionID, orderedIDs)
		if err != nil {
			return nil, err
		}
		ids := make([]string, len(fields))
		for i, f := range fields {
			ids[i] = f.ID
		}
		return ids, nil
	})
}

// ImageReorderer builds a Reorderer that persists through the image position
// endpoint of the given item, carrying the moved image's new index.
func (c *Client) ImageReorderer(itemID string, initial []string) *Reorderer {
	return NewReorderer(initial, func(ctx context.Context, movedID string, to int, _ []string) ([]string, error) {
		images, err := c.RepositionImage(ctx, itemID, movedID, to)
		if err != nil {
			return nil, err
		}
		ids := make([]string, len(images))
		for i, img := range images {
			ids[i] = img.ID
		}
		return ids, nil
	})
}
