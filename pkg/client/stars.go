package client

import (
	"context"
	"fmt"
	"net/http"
)

// StarCollection stars a collection. Starring twice is a no-op.
func (c *Client) StarCollection(ctx context.Context, id string) (*StarState, error) {
	return c.star(ctx, http.MethodPut, "collections", id)
}

// UnstarCollection removes the caller's star from a collection.
func (c *Client) UnstarCollection(ctx context.Context, id string) (*StarState, error) {
	return c.star(ctx, http.MethodDelete, "collections", id)
}

// StarItem stars an item. Starring twice is a no-op.
func (c *Client) StarItem(ctx context.Context, id string) (*StarState, error) {
	return c.star(ctx, http.MethodPut, "items", id)
}

// UnstarItem removes the caller's star from an item.
func (c *Client) UnstarItem(ctx context.Context, id string) (*StarState, error) {
	return c.star(ctx, http.MethodDelete, "items", id)
}

func (c *Client) star(ctx context.Context, method, resource, id string) (*StarState, error) {
	var state StarState
	path := fmt.Sprintf("/%s/%s/star", resource, id)
	if err := c.do(ctx, method, path, nil, nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}
