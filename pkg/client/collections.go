package client

import (
	"context"
	"fmt"
	"net/http"
)

// CreateCollection creates a collection owned by the caller.
func (c *Client) CreateCollection(ctx context.Context, name, description string, isPublic bool) (*Collection, error) {
	body := map[string]interface{}{
		"name":        name,
		"description": description,
		"is_public":   isPublic,
	}

	var collection Collection
	if err := c.do(ctx, http.MethodPost, "/collections", nil, body, &collection); err != nil {
		return nil, err
	}
	return &collection, nil
}

// ListCollections returns the caller's collections with counters.
func (c *Client) ListCollections(ctx context.Context) ([]*CollectionSummary, error) {
	var resp struct {
		Collections []*CollectionSummary `json:"collections"`
	}
	if err := c.do(ctx, http.MethodGet, "/collections", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Collections, nil
}

// GetCollection returns one collection with its schema.
func (c *Client) GetCollection(ctx context.Context, id string) (*CollectionDetail, error) {
	var detail CollectionDetail
	if err := c.do(ctx, http.MethodGet, "/collections/"+id, nil, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// CollectionUpdate patches a collection. Nil fields are left untouched.
type CollectionUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsPublic    *bool   `json:"is_public,omitempty"`
}

// UpdateCollection applies a partial update.
func (c *Client) UpdateCollection(ctx context.Context, id string, update CollectionUpdate) (*Collection, error) {
	var collection Collection
	if err := c.do(ctx, http.MethodPatch, "/collections/"+id, nil, update, &collection); err != nil {
		return nil, err
	}
	return &collection, nil
}

// DeleteCollection removes a collection and everything in it.
func (c *Client) DeleteCollection(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/collections/"+id, nil, nil, nil)
}

// CreateField appends a field to a collection's schema.
func (c *Client) CreateField(ctx context.Context, collectionID string, in FieldInput) (*FieldDefinition, error) {
	var field FieldDefinition
	path := fmt.Sprintf("/collections/%s/fields", collectionID)
	if err := c.do(ctx, http.MethodPost, path, nil, in, &field); err != nil {
		return nil, err
	}
	return &field, nil
}

// UpdateField patches a field definition. The type cannot change.
func (c *Client) UpdateField(ctx context.Context, fieldID string, in FieldInput) (*FieldDefinition, error) {
	var field FieldDefinition
	if err := c.do(ctx, http.MethodPatch, "/fields/"+fieldID, nil, in, &field); err != nil {
		return nil, err
	}
	return &field, nil
}

// DeleteField removes a field; remaining fields close the gap.
func (c *Client) DeleteField(ctx context.Context, fieldID string) error {
	return c.do(ctx, http.MethodDelete, "/fields/"+fieldID, nil, nil, nil)
}

// ReorderFields persists a new field order. orderedIDs must be a permutation
// of the collection's current field IDs.
func (c *Client) ReorderFields(ctx context.Context, collectionID string, orderedIDs []string) ([]*FieldDefinition, error) {
	body := map[string][]string{"field_ids": orderedIDs}

	var resp struct {
		Fields []*FieldDefinition `json:"fields"`
	}
	path := fmt.Sprintf("/collections/%s/fields/order", collectionID)
	if err := c.do(ctx, http.MethodPut, path, nil, body, &resp); err != nil {
		return nil, err
	}
	return resp.Fields, nil
}

// ApplyTemplate copies a template's fields onto a collection with an empty
// schema.
func (c *Client) ApplyTemplate(ctx context.Context, collectionID, templateID string) ([]*FieldDefinition, error) {
	var resp struct {
		Fields []*FieldDefinition `json:"fields"`
	}
	path := fmt.Sprintf("/collections/%s/apply-template/%s", collectionID, templateID)
	if err := c.do(ctx, http.MethodPost, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Fields, nil
}
