package bookstore

import (
	"context"
	"net/http"

	"github.com/dtroode/bookswap-agent/internal/model"
)

type toggleWishlistRequest struct {
	ItemID string `json:"book_id"`
	UserID string `json:"userid"`
}

type toggleWishlistResponse struct {
	Added *bool `json:"added"`
}

type wishlistRequest struct {
	UserID string `json:"userid"`
}

// ToggleWishlist flips the membership of itemID and returns the membership
// reported by the service.
func (c *Client) ToggleWishlist(ctx context.Context, id model.Identity, itemID string) (bool, error) {
	var resp toggleWishlistResponse
	err := c.do(ctx, call{
		operation: "toggle_wishlist",
		method:    http.MethodPost,
		path:      "wishcrud/addtowishlist",
		bearer:    id.Bearer,
		payload:   toggleWishlistRequest{ItemID: itemID, UserID: id.UserID},
		mutation:  true,
	}, &resp)
	if err != nil {
		return false, err
	}
	if resp.Added == nil {
		return false, &model.RemoteError{
			Kind:      model.RemoteMutationFailed,
			Operation: "toggle_wishlist",
			Message:   "unexpected response from bookstore",
			Err:       errMissingField,
		}
	}
	return *resp.Added, nil
}

// Wishlist returns the membership rows of the identity's user.
func (c *Client) Wishlist(ctx context.Context, id model.Identity) ([]model.WishlistRow, error) {
	var rows []model.WishlistRow
	err := c.do(ctx, call{
		operation: "fetch_wishlist",
		method:    http.MethodPost,
		path:      "wishops/fetchwishlistuser",
		bearer:    id.Bearer,
		payload:   wishlistRequest{UserID: id.UserID},
	}, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
