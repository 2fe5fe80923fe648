// Package webapi is the client for the remote storefront REST API. The remote
// service owns authentication, product data and the server-side wishlist;
// this client only consumes it.
package webapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"plantshop/models"
)

type Client struct {
	baseURL string
	client  *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  http.DefaultClient,
	}
}

// LogoutAdmin signs out the admin session server-side.
func (c *Client) LogoutAdmin(ctx context.Context) error {
	return c.post(ctx, "/api/auth/logoutAdmin")
}

// LogoutVendor signs out the vendor session server-side.
func (c *Client) LogoutVendor(ctx context.Context) error {
	return c.post(ctx, "/api/auth/logoutVendor")
}

// LogoutUser signs out the customer session server-side.
func (c *Client) LogoutUser(ctx context.Context) error {
	return c.post(ctx, "/api/auth/logoutUser")
}

// FetchWishlist returns the saved products for the user. Remote records are
// normalized into canonical models during decoding.
func (c *Client) FetchWishlist(ctx context.Context, userID models.ID) ([]models.WishlistItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/wishlist/"+url.PathEscape(string(userID)), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch wishlist: unexpected status %d", resp.StatusCode)
	}

	var items []models.WishlistItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddWishlistItem saves a product to the user's wishlist server-side.
func (c *Client) AddWishlistItem(ctx context.Context, productID, userID models.ID) error {
	return c.do(ctx, http.MethodPost, c.wishlistItemPath(productID, userID))
}

// RemoveWishlistItem deletes a product from the user's wishlist server-side.
func (c *Client) RemoveWishlistItem(ctx context.Context, productID, userID models.ID) error {
	return c.do(ctx, http.MethodDelete, c.wishlistItemPath(productID, userID))
}

func (c *Client) wishlistItemPath(productID, userID models.ID) string {
	return fmt.Sprintf("/api/wishlist/%s/%s",
		url.PathEscape(string(userID)), url.PathEscape(string(productID)))
}

func (c *Client) post(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodPost, path)
}

func (c *Client) do(ctx context.Context, method, path string) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}
	return nil
}
