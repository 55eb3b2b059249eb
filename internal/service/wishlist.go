package service

import (
	"context"
	"fmt"

	"github.com/dtroode/bookswap-agent/internal/logger"
	"github.com/dtroode/bookswap-agent/internal/model"
	"github.com/dtroode/bookswap-agent/internal/session"
)

// Wishlist lists the user's wishlist with book details.
type Wishlist struct {
	resolver    IdentityResolver
	api         model.WishlistAPI
	catalog     *Catalog
	coordinator *Coordinator
	logger      *logger.Logger
}

func NewWishlist(
	resolver IdentityResolver,
	api model.WishlistAPI,
	catalog *Catalog,
	coordinator *Coordinator,
	logger *logger.Logger,
) *Wishlist {
	return &Wishlist{
		resolver:    resolver,
		api:         api,
		catalog:     catalog,
		coordinator: coordinator,
		logger:      logger,
	}
}

// List returns the books in the user's wishlist, in wishlist order. Rows whose
// book is no longer in the catalog are skipped.
func (s *Wishlist) List(ctx context.Context) ([]model.Book, error) {
	id, err := s.resolver.Resolve(ctx, session.RequireUser)
	if err != nil {
		return nil, err
	}

	rows, err := s.api.Wishlist(ctx, id)
	if err != nil {
		s.logger.Error("Wishlist service: failed to fetch wishlist",
			"user_id", id.UserID,
			"error", err.Error())
		return nil, fmt.Errorf("failed to fetch wishlist: %w", err)
	}

	books, err := s.catalog.ListBooks(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.Book, len(books))
	for _, b := range books {
		byID[b.ID.String()] = b
	}

	var (
		listed []model.Book
		ids    []string
		seen   = make(map[string]bool)
	)
	for _, row := range rows {
		itemID := row.ItemID.String()
		if !row.Listed() || seen[itemID] {
			continue
		}
		seen[itemID] = true
		ids = append(ids, itemID)

		book, ok := byID[itemID]
		if !ok {
			s.logger.Debug("Wishlist service: wishlisted book not in catalog",
				"book_id", itemID)
			continue
		}
		listed = append(listed, book)
	}

	s.coordinator.noteMembership(ids)
	return listed, nil
}

// Toggle flips the membership of itemID.
func (s *Wishlist) Toggle(ctx context.Context, itemID string) (model.WishlistMembership, error) {
	return s.coordinator.ToggleWishlist(ctx, itemID)
}
