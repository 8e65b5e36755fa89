package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// PublicItem is an item as seen on the public surface, with private-field
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
	Collection
	Fields    []*FieldDefinition `json:"fields"`
	ItemCount int64              `json:"item_count"`
	StarCount int64              `json:"star_count"`
}

// PublicItemPage is one page of a public collection's items.
type PublicItemPage struct {
	Items  []*PublicItem `json:"items"`
	Total  int64         `json:"total"`
	Offset int           `json:"offset"`
	Limit  int           `json:"limit"`
}

// FeaturedView is the landing-page featured content.
type FeaturedView struct {
	Collection *Collection   `json:"collection"`
	Items      []*PublicItem `json:"items"`
}

// Featured returns the featured collection and its featured items, if any.
func (c *Client) Featured(ctx context.Context) (*FeaturedView, error) {
	var view FeaturedView
	if err := c.do(ctx, http.MethodGet, "/featured", nil, nil, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// PublicCollection returns a public collection without authentication.
func (c *Client) PublicCollection(ctx context.Context, id string) (*PublicCollection, error) {
	var collection PublicCollection
	if err := c.do(ctx, http.MethodGet, "/public/collections/"+id, nil, nil, &collection); err != nil {
		return nil, err
	}
	return &collection, nil
}

// PublicItems returns a page of a public collection's items.
func (c *Client) PublicItems(ctx context.Context, collectionID string, opts ListOptions) (*PublicItemPage, error) {
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

	var page PublicItemPage
	path := fmt.Sprintf("/public/collections/%s/items", collectionID)
	if err := c.do(ctx, http.MethodGet, path, query, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// PublicItem returns one item from a public collection.
func (c *Client) PublicItem(ctx context.Context, id string) (*PublicItem, error) {
	var item PublicItem
	if err := c.do(ctx, http.MethodGet, "/public/items/"+id, nil, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}
