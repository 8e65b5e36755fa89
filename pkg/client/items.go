package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// CreateItem adds an item to a collection.
func (c *Client) CreateItem(ctx context.Context, collectionID string, in ItemInput) (*Item, error) {
	var item Item
	path := fmt.Sprintf("/collections/%s/items", collectionID)
	if err := c.do(ctx, http.MethodPost, path, nil, in, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// ListItems returns a page of a collection's items. Drafts are only included
// when the caller owns the collection.
func (c *Client) ListItems(ctx context.Context, collectionID string, opts ListOptions) (*ItemPage, error) {
	query := url.Values{}
	if opts.Search != "" {
		query.Set("q", opts.Search)
	}
	for _, filter := range opts.Filters {
		query.Add("filter", filter)
	}
	if opts.Sort != "" {
		query.Set("sort", opts.Sort)
	}
	if opts.Offset > 0 {
		query.Set("offset", strconv.Itoa(opts.Offset))
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}

	var page ItemPage
	path := fmt.Sprintf("/collections/%s/items", collectionID)
	if err := c.do(ctx, http.MethodGet, path, query, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetItem returns one item.
func (c *Client) GetItem(ctx context.Context, id string) (*Item, error) {
	var item Item
	if err := c.do(ctx, http.MethodGet, "/items/"+id, nil, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem applies a partial update. Setting IsDraft to false publishes the
// item, which triggers full metadata validation server-side.
func (c *Client) UpdateItem(ctx context.Context, id string, patch ItemPatch) (*Item, error) {
	var item Item
	if err := c.do(ctx, http.MethodPatch, "/items/"+id, nil, patch, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem removes an item together with its images and stars.
func (c *Client) DeleteItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/items/"+id, nil, nil, nil)
}

// ToggleHighlight flips the item's highlight flag.
func (c *Client) ToggleHighlight(ctx context.Context, id string) (*Item, error) {
	var item Item
	if err := c.do(ctx, http.MethodPost, "/items/"+id+"/highlight", nil, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// SearchItems searches across all of the caller's collections.
func (c *Client) SearchItems(ctx context.Context, q string, opts PageOptions) (*SearchPage, error) {
	query := url.Values{}
	query.Set("q", q)
	if opts.Offset > 0 {
		query.Set("offset", strconv.Itoa(opts.Offset))
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}

	var page SearchPage
	if err := c.do(ctx, http.MethodGet, "/search/items", query, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
