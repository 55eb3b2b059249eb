package service

import (
	"context"
	"fmt"

	"github.com/dtroode/bookswap-agent/internal/logger"
	"github.com/dtroode/bookswap-agent/internal/model"
	"github.com/dtroode/bookswap-agent/internal/session"
)

// Cart lists the cart page.
type Cart struct {
	resolver IdentityResolver
	api      model.CartAPI
	logger   *logger.Logger
}

func NewCart(resolver IdentityResolver, api model.CartAPI, logger *logger.Logger) *Cart {
	return &Cart{
		resolver: resolver,
		api:      api,
		logger:   logger,
	}
}

func (s *Cart) List(ctx context.Context) (model.CartListing, error) {
	id, err := s.resolver.Resolve(ctx, session.RequireCart)
	if err != nil {
		return model.CartListing{}, err
	}

	entries, err := s.api.CartEntries(ctx, id)
	if err != nil {
		s.logger.Error("Cart service: failed to list cart",
			"cart_id", id.CartID,
			"error", err.Error())
		return model.CartListing{}, fmt.Errorf("failed to list cart: %w", err)
	}

	return model.CartListing{
		Entries: entries,
		Total:   model.CartTotal(entries),
	}, nil
}
