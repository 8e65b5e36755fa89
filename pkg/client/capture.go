package client

import (
	"context"
	"fmt"
	"net/http"
)

// CaptureResult is a draft item created from a photo.
type CaptureResult struct {
	Item  *Item      `json:"item"`
	Image *ItemImage `json:"image"`
}

// CaptureSession summarizes the drafts of a capture run.
type CaptureSession struct {
	DraftCount  int64 `json:"draft_count"`
	TotalImages int64 `json:"total_images"`
}

// CaptureItem creates a draft item from a single photo in one call.
func (c *Client) CaptureItem(ctx context.Context, collectionID, filename string, data []byte) (*CaptureResult, error) {
	var result CaptureResult
	path := fmt.Sprintf("/capture/collections/%s/items", collectionID)
	if err := c.doMultipart(ctx, http.MethodPost, path, filename, data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CaptureImage adds another photo to a draft item.
func (c *Client) CaptureImage(ctx context.Context, itemID, filename string, data []byte) (*ItemImage, error) {
	var image ItemImage
	path := fmt.Sprintf("/capture/items/%s/images", itemID)
	if err := c.doMultipart(ctx, http.MethodPost, path, filename, data, &image); err != nil {
		return nil, err
	}
	return &image, nil
}

// GetCaptureSession returns the state of a collection's capture run.
func (c *Client) GetCaptureSession(ctx context.Context, collectionID string) (*CaptureSession, error) {
	var session CaptureSession
	path := fmt.Sprintf("/capture/collections/%s/session", collectionID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}
