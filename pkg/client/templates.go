package client

import (
	"context"
	"fmt"
	"net/http"
)

// TemplateInput creates a schema template.
type TemplateInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CreateTemplate creates an empty schema template.
func (c *Client) CreateTemplate(ctx context.Context, in TemplateInput) (*SchemaTemplate, error) {
	var template SchemaTemplate
	if err := c.do(ctx, http.MethodPost, "/schema-templates", nil, in, &template); err != nil {
		return nil, err
	}
	return &template, nil
}

// ListTemplates returns the caller's templates.
func (c *Client) ListTemplates(ctx context.Context) ([]*SchemaTemplate, error) {
	var resp struct {
		Templates []*SchemaTemplate `json:"templates"`
	}
	if err := c.do(ctx, http.MethodGet, "/schema-templates", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Templates, nil
}

// GetTemplate returns a template with its fields.
func (c *Client) GetTemplate(ctx context.Context, id string) (*TemplateDetail, error) {
	var detail TemplateDetail
	if err := c.do(ctx, http.MethodGet, "/schema-templates/"+id, nil, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// TemplateUpdate patches a template. Nil fields are left untouched.
type TemplateUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// UpdateTemplate applies a partial update.
func (c *Client) UpdateTemplate(ctx context.Context, id string, update TemplateUpdate) (*SchemaTemplate, error) {
	var template SchemaTemplate
	if err := c.do(ctx, http.MethodPatch, "/schema-templates/"+id, nil, update, &template); err != nil {
		return nil, err
	}
	return &template, nil
}

// DeleteTemplate removes a template and its fields.
func (c *Client) DeleteTemplate(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/schema-templates/"+id, nil, nil, nil)
}

// TemplateFromCollection snapshots a collection's schema into a new template.
func (c *Client) TemplateFromCollection(ctx context.Context, collectionID string) (*TemplateDetail, error) {
	var detail TemplateDetail
	path := "/schema-templates/from-collection/" + collectionID
	if err := c.do(ctx, http.MethodPost, path, nil, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// CreateTemplateField appends a field to a template.
func (c *Client) CreateTemplateField(ctx context.Context, templateID string, in FieldInput) (*SchemaTemplateField, error) {
	var field SchemaTemplateField
	path := fmt.Sprintf("/schema-templates/%s/fields", templateID)
	if err := c.do(ctx, http.MethodPost, path, nil, in, &field); err != nil {
		return nil, err
	}
	return &field, nil
}

// ReplaceTemplateFields swaps a template's field list wholesale.
func (c *Client) ReplaceTemplateFields(ctx context.Context, templateID string, fields []FieldInput) ([]*SchemaTemplateField, error) {
	body := map[string][]FieldInput{"fields": fields}

	var resp struct {
		Fields []*SchemaTemplateField `json:"fields"`
	}
	path := fmt.Sprintf("/schema-templates/%s/fields", templateID)
	if err := c.do(ctx, http.MethodPut, path, nil, body, &resp); err != nil {
		return nil, err
	}
	return resp.Fields, nil
}

// ReorderTemplateFields persists a new field order. orderedIDs must be a
// permutation of the template's current field IDs.
func (c *Client) ReorderTemplateFields(ctx context.Context, templateID string, orderedIDs []string) ([]*SchemaTemplateField, error) {
	body := map[string][]string{"field_ids": orderedIDs}

	var resp struct {
		Fields []*SchemaTemplateField `json:"fields"`
	}
	path := fmt.Sprintf("/schema-templates/%s/fields/order", templateID)
	if err := c.do(ctx, http.MethodPut, path, nil, body, &resp); err != nil {
		return nil, err
	}
	return resp.Fields, nil
}

// UpdateTemplateField patches a template field. The type cannot change.
func (c *Client) UpdateTemplateField(ctx context.Context, fieldID string, in FieldInput) (*SchemaTemplateField, error) {
	var field SchemaTemplateField
	path := "/schema-templates/template-fields/" + fieldID
	if err := c.do(ctx, http.MethodPatch, path, nil, in, &field); err != nil {
		return nil, err
	}
	return &field, nil
}

// DeleteTemplateField removes a template field.
func (c *Client) DeleteTemplateField(ctx context.Context, fieldID string) error {
	path := "/schema-templates/template-fields/" + fieldID
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
