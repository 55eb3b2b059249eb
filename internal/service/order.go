package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/dtroode/bookswap-agent/internal/logger"
	"github.com/dtroode/bookswap-agent/internal/model"
	"github.com/dtroode/bookswap-agent/internal/session"
)

type Order struct {
	resolver    IdentityResolver
	api         model.OrderAPI
	coordinator *Coordinator
	logger      *logger.Logger
}

func NewOrder(resolver IdentityResolver, api model.OrderAPI, coordinator *Coordinator, logger *logger.Logger) *Order {
	return &Order{
		resolver:    resolver,
		api:         api,
		coordinator: coordinator,
		logger:      logger,
	}
}

// Create checks out the cart. The visible quantities are cleared once the
// order is placed, since the remote cart has been consumed.
func (s *Order) Create(ctx context.Context, address, paymentMethod string) (model.OrderResult, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return model.OrderResult{}, model.NewValidationError("delivery address is required")
	}
	paymentMethod = strings.TrimSpace(paymentMethod)
	if paymentMethod == "" {
		paymentMethod = model.DefaultPaymentMethod
	}

	id, err := s.resolver.Resolve(ctx, session.RequireUser)
	if err != nil {
		return model.OrderResult{}, err
	}

	result, err := s.api.CreateOrder(ctx, id, model.OrderRequest{
		UserID:          id.UserID,
		DeliveryAddress: address,
		PaymentMethod:   paymentMethod,
	})
	if err != nil {
		s.logger.Error("Order service: failed to create order",
			"user_id", id.UserID,
			"error", err.Error())
		return model.OrderResult{}, fmt.Errorf("failed to create order: %w", err)
	}

	s.coordinator.ResetQuantities()
	s.logger.Info("Order service: order created",
		"user_id", id.UserID,
		"order_id", result.OrderID.String())

	return result, nil
}
