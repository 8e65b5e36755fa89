package client

import (
	"context"
	"net/http"
)

// GetProfile returns the caller's profile.
func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := c.do(ctx, http.MethodGet, "/profile", nil, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// SetUsername changes the caller's username.
func (c *Client) SetUsername(ctx context.Context, username string) (*Profile, error) {
	body := map[string]string{"username": username}

	var profile Profile
	if err := c.do(ctx, http.MethodPatch, "/profile", nil, body, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// SetAvatar uploads a new avatar image.
func (c *Client) SetAvatar(ctx context.Context, data []byte) (*Profile, error) {
	var profile Profile
	if err := c.doMultipart(ctx, http.MethodPut, "/profile/avatar", "avatar", data, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetPublicProfile returns another user's public profile by username.
func (c *Client) GetPublicProfile(ctx context.Context, username string) (*PublicProfile, error) {
	var profile PublicProfile
	if err := c.do(ctx, http.MethodGet, "/users/"+username, nil, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
