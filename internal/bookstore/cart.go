package bookstore

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dtroode/bookswap-agent/internal/model"
)

type addToCartRequest struct {
	CartID   string  `json:"usercartid"`
	UserID   string  `json:"userid"`
	ItemID   string  `json:"book_id"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type incrementCartRequest struct {
	UserID   string  `json:"userid"`
	CartID   string  `json:"usercartid"`
	ItemID   string  `json:"book_id"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type decrementCartRequest struct {
	UserID   string `json:"userid"`
	CartID   string `json:"usercartid"`
	ItemID   string `json:"book_id"`
	Quantity int    `json:"quantity"`
}

type cartListRequest struct {
	CartID string `json:"usercartid"`
}

// AddToCart creates a cart line. A 409 from the service is returned as a
// RemoteConflict.
func (c *Client) AddToCart(ctx context.Context, id model.Identity, item model.Item, quantity int) error {
	return c.do(ctx, call{
		operation: "add_to_cart",
		method:    http.MethodPost,
		path:      "cartops/addtocart",
		bearer:    id.Bearer,
		payload: addToCartRequest{
			CartID:   id.CartID,
			UserID:   id.UserID,
			ItemID:   item.ID,
			Quantity: quantity,
			Price:    item.Price,
		},
		mutation: true,
		conflict: true,
	}, nil)
}

// IncrementCart raises the quantity of an existing cart line by delta.
func (c *Client) IncrementCart(ctx context.Context, id model.Identity, item model.Item, delta int) error {
	return c.do(ctx, call{
		operation: "increment_cart",
		method:    http.MethodPost,
		path:      "cartops/incrementcart",
		bearer:    id.Bearer,
		payload: incrementCartRequest{
			UserID:   id.UserID,
			CartID:   id.CartID,
			ItemID:   item.ID,
			Quantity: delta,
			Price:    item.Price,
		},
		mutation: true,
	}, nil)
}

// DecrementCart lowers the quantity of an existing cart line by delta.
func (c *Client) DecrementCart(ctx context.Context, id model.Identity, itemID string, delta int) error {
	return c.do(ctx, call{
		operation: "decrement_cart",
		method:    http.MethodPost,
		path:      "cartops/decrementcart",
		bearer:    id.Bearer,
		payload: decrementCartRequest{
			UserID:   id.UserID,
			CartID:   id.CartID,
			ItemID:   itemID,
			Quantity: delta,
		},
		mutation: true,
	}, nil)
}

// CartLines returns the lines of the identity's cart.
func (c *Client) CartLines(ctx context.Context, id model.Identity) ([]model.CartLine, error) {
	var lines []model.CartLine
	err := c.do(ctx, call{
		operation: "get_cart",
		method:    http.MethodGet,
		path:      "cartops/getcart/" + url.PathEscape(id.CartID),
		bearer:    id.Bearer,
	}, &lines)
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// CartEntries returns the identity's cart rows with their books.
func (c *Client) CartEntries(ctx context.Context, id model.Identity) ([]model.CartEntry, error) {
	var entries []model.CartEntry
	err := c.do(ctx, call{
		operation: "list_cart",
		method:    http.MethodPost,
		path:      "cartops/getallcartofuser",
		bearer:    id.Bearer,
		payload:   cartListRequest{CartID: id.CartID},
	}, &entries)
	if err != nil {
		return nil, err
	}
	return entries, nil
}
