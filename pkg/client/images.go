package client

import (
	"context"
	"fmt"
	"net/http"
)

// Image variants served by the API.
const (
	VariantOriginal = "original"
	VariantMedium   = "medium"
	VariantThumb    = "thumb"
)

// UploadImage attaches an image to an item. The server derives the medium
// and thumb renditions.
func (c *Client) UploadImage(ctx context.Context, itemID, filename string, data []byte) (*ItemImage, error) {
	var image ItemImage
	path := fmt.Sprintf("/items/%s/images", itemID)
	if err := c.doMultipart(ctx, http.MethodPost, path, filename, data, &image); err != nil {
		return nil, err
	}
	return &image, nil
}

// ListImages returns an item's images in display order.
func (c *Client) ListImages(ctx context.Context, itemID string) ([]*ItemImage, error) {
	var resp struct {
		Images []*ItemImage `json:"images"`
	}
	path := fmt.Sprintf("/items/%s/images", itemID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Images, nil
}

// RepositionImage moves an image to a new position within its item and
// returns the item's images in their new order.
func (c *Client) RepositionImage(ctx context.Context, itemID, imageID string, position int) ([]*ItemImage, error) {
	body := map[string]int{"position": position}

	var resp struct {
		Images []*ItemImage `json:"images"`
	}
	path := fmt.Sprintf("/items/%s/images/%s/position", itemID, imageID)
	if err := c.do(ctx, http.MethodPut, path, nil, body, &resp); err != nil {
		return nil, err
	}
	return resp.Images, nil
}

// DeleteImage removes an image; remaining images close the gap.
func (c *Client) DeleteImage(ctx context.Context, imageID string) error {
	return c.do(ctx, http.MethodDelete, "/images/"+imageID, nil, nil, nil)
}

// ImageURL returns the URL of an image variant for direct fetching.
func (c *Client) ImageURL(imageID, variant string) string {
	return fmt.Sprintf("%s/images/%s/%s.jpg", c.baseURL, imageID, variant)
}
