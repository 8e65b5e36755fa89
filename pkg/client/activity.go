package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ListActivity returns the caller's newest feed entries. A zero limit uses
// the server default.
func (c *Client) ListActivity(ctx context.Context, limit int) ([]*ActivityEntry, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var resp struct {
		Activity []*ActivityEntry `json:"activity"`
	}
	if err := c.do(ctx, http.MethodGet, "/activity", query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Activity, nil
}
