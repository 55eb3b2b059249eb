package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/dtroode/bookswap-agent/internal/logger"
	"github.com/dtroode/bookswap-agent/internal/model"
)

// Catalog reads books and categories. Concurrent listings share one remote call.
type Catalog struct {
	api    model.CatalogAPI
	group  singleflight.Group
	logger *logger.Logger
}

func NewCatalog(api model.CatalogAPI, logger *logger.Logger) *Catalog {
	return &Catalog{
		api:    api,
		logger: logger,
	}
}

func (s *Catalog) ListBooks(ctx context.Context) ([]model.Book, error) {
	// the shared call must not die with whichever caller started it
	ch := s.group.DoChan("books", func() (any, error) {
		return s.api.Books(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			s.logger.Error("Catalog service: failed to list books",
				"error", res.Err.Error())
			return nil, fmt.Errorf("failed to list books: %w", res.Err)
		}
		books := res.Val.([]model.Book)
		return append([]model.Book(nil), books...), nil
	}
}

func (s *Catalog) GetBook(ctx context.Context, bookID string) (model.Book, error) {
	books, err := s.ListBooks(ctx)
	if err != nil {
		return model.Book{}, err
	}

	for _, b := range books {
		if b.ID.String() == bookID {
			return b, nil
		}
	}
	return model.Book{}, fmt.Errorf("book %s: %w", bookID, model.ErrNotFound)
}

// Search matches query against title, author and category, ignoring case.
// An empty query returns the whole catalog.
func (s *Catalog) Search(ctx context.Context, query string) ([]model.Book, error) {
	books, err := s.ListBooks(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return books, nil
	}

	var found []model.Book
	for _, b := range books {
		if strings.Contains(strings.ToLower(b.Title), query) ||
			strings.Contains(strings.ToLower(b.Author), query) ||
			strings.Contains(strings.ToLower(b.CategoryName), query) {
			found = append(found, b)
		}
	}
	return found, nil
}

func (s *Catalog) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.api.Categories(ctx)
	if err != nil {
		s.logger.Error("Catalog service: failed to load categories",
			"error", err.Error())
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	return categories, nil
}
