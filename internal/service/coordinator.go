package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/dtroode/bookswap-agent/internal/flight"
	"github.com/dtroode/bookswap-agent/internal/logger"
	"github.com/dtroode/bookswap-agent/internal/model"
	"github.com/dtroode/bookswap-agent/internal/session"
)

// IdentityResolver turns the stored credential into an Identity.
type IdentityResolver interface {
	Resolve(ctx context.Context, req session.Requirement) (model.Identity, error)
}

// Coordinator performs cart and wishlist mutations and keeps the visible
// quantity of every item the user has opened. Mutations on one (user, item)
// pair run one at a time in issue order; state only changes after the remote
// service confirms.
type Coordinator struct {
	resolver IdentityResolver
	cart     model.CartAPI
	wishlist model.WishlistAPI
	flights  *flight.Serializer
	logger   *logger.Logger

	// refetchOnConflict adopts the remote quantity after a 409 instead of 1.
	refetchOnConflict bool

	mu         sync.RWMutex
	quantities map[string]int
	membership map[string]bool
	// views stamps each Open; epoch advances whenever quantities are dropped.
	// A response is applied only if the stamp taken before its call still holds.
	views map[string]uint64
	seq   uint64
	epoch uint64
}

type viewStamp struct {
	epoch uint64
	view  uint64
}

func NewCoordinator(
	resolver IdentityResolver,
	cart model.CartAPI,
	wishlist model.WishlistAPI,
	logger *logger.Logger,
	refetchOnConflict bool,
) *Coordinator {
	return &Coordinator{
		resolver:          resolver,
		cart:              cart,
		wishlist:          wishlist,
		flights:           flight.NewSerializer(),
		logger:            logger,
		refetchOnConflict: refetchOnConflict,
		quantities:        make(map[string]int),
		membership:        make(map[string]bool),
		views:             make(map[string]uint64),
	}
}

// Open starts a detail view of itemID with a visible quantity of 0.
// A response still in flight for an earlier view of itemID is discarded.
func (c *Coordinator) Open(itemID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.views[itemID] = c.seq
	c.quantities[itemID] = 0
}

// Quantity returns the visible quantity of itemID.
func (c *Coordinator) Quantity(itemID string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.quantities[itemID]
}

// InWishlist returns the last membership the wishlist service reported for itemID.
func (c *Coordinator) InWishlist(itemID string) (inWishlist, known bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	inWishlist, known = c.membership[itemID]
	return inWishlist, known
}

// ResetQuantities forgets every visible quantity.
func (c *Coordinator) ResetQuantities() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quantities = make(map[string]int)
	c.epoch++
}

// Reset forgets all client-side beliefs. Used when the session changes.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quantities = make(map[string]int)
	c.membership = make(map[string]bool)
	c.epoch++
}

// Add puts quantity units of item into the cart. When the item is already in
// the remote cart the outcome is flagged Conflict and no error is returned.
func (c *Coordinator) Add(ctx context.Context, item model.Item, quantity int) (model.MutationOutcome, error) {
	if quantity < 1 {
		return model.MutationOutcome{}, model.NewValidationError("quantity must be at least 1")
	}
	if item.ID == "" {
		return model.MutationOutcome{}, model.NewValidationError("item id is required")
	}

	id, err := c.resolver.Resolve(ctx, session.RequireCart)
	if err != nil {
		return model.MutationOutcome{}, err
	}

	outcome := model.MutationOutcome{ItemID: item.ID}
	err = c.flights.Do(ctx, flightKey(id, item.ID), func() error {
		stamp := c.stamp(item.ID)
		err := c.cart.AddToCart(ctx, id, item, quantity)
		switch {
		case err == nil:
			outcome.Quantity = quantity
		case model.IsConflict(err):
			outcome.Quantity = c.conflictQuantity(ctx, id, item.ID)
			outcome.Conflict = true
			c.logger.Info("Coordinator: item already in cart",
				"item_id", item.ID,
				"quantity", outcome.Quantity)
		default:
			c.logger.Error("Coordinator: failed to add to cart",
				"item_id", item.ID,
				"error", err.Error())
			return err
		}
		c.apply(item.ID, stamp, &outcome, func(int) int { return outcome.Quantity })
		return nil
	})
	if err != nil {
		return model.MutationOutcome{}, err
	}

	return outcome, nil
}

// Increment raises the quantity of item by delta.
func (c *Coordinator) Increment(ctx context.Context, item model.Item, delta int) (model.MutationOutcome, error) {
	if delta < 1 {
		return model.MutationOutcome{}, model.NewValidationError("delta must be at least 1")
	}

	id, err := c.resolver.Resolve(ctx, session.RequireCart)
	if err != nil {
		return model.MutationOutcome{}, err
	}

	outcome := model.MutationOutcome{ItemID: item.ID}
	err = c.flights.Do(ctx, flightKey(id, item.ID), func() error {
		stamp := c.stamp(item.ID)
		if err := c.cart.IncrementCart(ctx, id, item, delta); err != nil {
			c.logger.Error("Coordinator: failed to increment cart",
				"item_id", item.ID,
				"error", err.Error())
			return err
		}
		c.apply(item.ID, stamp, &outcome, func(q int) int { return q + delta })
		return nil
	})
	if err != nil {
		return model.MutationOutcome{}, err
	}

	return outcome, nil
}

// Decrement lowers the quantity of itemID by delta, never below zero. Nothing
// is sent when the visible quantity is already zero.
func (c *Coordinator) Decrement(ctx context.Context, itemID string, delta int) (model.MutationOutcome, error) {
	if delta < 1 {
		return model.MutationOutcome{}, model.NewValidationError("delta must be at least 1")
	}

	id, err := c.resolver.Resolve(ctx, session.RequireCart)
	if err != nil {
		return model.MutationOutcome{}, err
	}

	outcome := model.MutationOutcome{ItemID: itemID}
	err = c.flights.Do(ctx, flightKey(id, itemID), func() error {
		if c.Quantity(itemID) <= 0 {
			outcome.Noop = true
			return nil
		}
		stamp := c.stamp(itemID)
		if err := c.cart.DecrementCart(ctx, id, itemID, delta); err != nil {
			c.logger.Error("Coordinator: failed to decrement cart",
				"item_id", itemID,
				"error", err.Error())
			return err
		}
		c.apply(itemID, stamp, &outcome, func(q int) int { return q - delta })
		return nil
	})
	if err != nil {
		return model.MutationOutcome{}, err
	}

	return outcome, nil
}

// ToggleWishlist flips the membership of itemID and adopts whatever the
// service reports.
func (c *Coordinator) ToggleWishlist(ctx context.Context, itemID string) (model.WishlistMembership, error) {
	if itemID == "" {
		return model.WishlistMembership{}, model.NewValidationError("item id is required")
	}

	id, err := c.resolver.Resolve(ctx, session.RequireUser)
	if err != nil {
		return model.WishlistMembership{}, err
	}

	membership := model.WishlistMembership{ItemID: itemID}
	err = c.flights.Do(ctx, "wishlist/"+flightKey(id, itemID), func() error {
		added, err := c.wishlist.ToggleWishlist(ctx, id, itemID)
		if err != nil {
			c.logger.Error("Coordinator: failed to toggle wishlist",
				"item_id", itemID,
				"error", err.Error())
			return err
		}
		membership.InWishlist = added

		c.mu.Lock()
		c.membership[itemID] = added
		c.mu.Unlock()
		return nil
	})
	if err != nil {
		return model.WishlistMembership{}, err
	}

	return membership, nil
}

// SyncQuantities replaces the visible quantities with the remote cart lines.
func (c *Coordinator) SyncQuantities(ctx context.Context) ([]model.CartLine, error) {
	id, err := c.resolver.Resolve(ctx, session.RequireCart)
	if err != nil {
		return nil, err
	}

	lines, err := c.cart.CartLines(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart lines: %w", err)
	}

	quantities := make(map[string]int, len(lines))
	for _, line := range lines {
		quantities[line.ItemID.String()] = max(int(line.Quantity), 0)
	}

	c.mu.Lock()
	c.quantities = quantities
	c.mu.Unlock()

	return lines, nil
}

// noteMembership replaces the known memberships with a wishlist listing.
// Items known before but missing from the listing are recorded as removed.
func (c *Coordinator) noteMembership(itemIDs []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	membership := make(map[string]bool, len(itemIDs)+len(c.membership))
	for itemID := range c.membership {
		membership[itemID] = false
	}
	for _, itemID := range itemIDs {
		membership[itemID] = true
	}
	c.membership = membership
}

func (c *Coordinator) conflictQuantity(ctx context.Context, id model.Identity, itemID string) int {
	if !c.refetchOnConflict {
		return 1
	}

	lines, err := c.cart.CartLines(ctx, id)
	if err != nil {
		c.logger.Warn("Coordinator: failed to refetch cart after conflict",
			"item_id", itemID,
			"error", err.Error())
		return 1
	}
	for _, line := range lines {
		if line.ItemID.String() == itemID && line.Quantity > 0 {
			return int(line.Quantity)
		}
	}
	return 1
}

func (c *Coordinator) stamp(itemID string) viewStamp {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return viewStamp{epoch: c.epoch, view: c.views[itemID]}
}

// apply sets the visible quantity of itemID to next(current), floored at 0,
// unless the view was reopened or reset since stamp was taken. In that case
// the outcome reports the untouched visible quantity and is flagged Stale.
func (c *Coordinator) apply(itemID string, stamp viewStamp, outcome *model.MutationOutcome, next func(int) int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if stamp != (viewStamp{epoch: c.epoch, view: c.views[itemID]}) {
		outcome.Quantity = c.quantities[itemID]
		outcome.Stale = true
		c.logger.Debug("Coordinator: discarded response for a closed view",
			"item_id", itemID)
		return
	}

	q := max(next(c.quantities[itemID]), 0)
	c.quantities[itemID] = q
	outcome.Quantity = q
}

func flightKey(id model.Identity, itemID string) string {
	return id.UserID + "/" + itemID
}
