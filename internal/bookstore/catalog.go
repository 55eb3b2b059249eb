package bookstore

import (
	"context"
	"net/http"

	"github.com/dtroode/bookswap-agent/internal/model"
)

// Books returns the whole catalog.
func (c *Client) Books(ctx context.Context) ([]model.Book, error) {
	var books []model.Book
	err := c.do(ctx, call{
		operation: "list_books",
		method:    http.MethodGet,
		path:      "booksops/getallbookdata",
	}, &books)
	if err != nil {
		return nil, err
	}
	return books, nil
}

// Categories returns the category tree.
func (c *Client) Categories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := c.do(ctx, call{
		operation: "list_categories",
		method:    http.MethodGet,
		path:      "booksops/loadcategories",
	}, &categories)
	if err != nil {
		return nil, err
	}
	return categories, nil
}
