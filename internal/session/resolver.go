package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dtroode/bookswap-agent/internal/logger"
	"github.com/dtroode/bookswap-agent/internal/model"
)

// Requirement declares which identity fields an operation needs.
type Requirement int

const (
	// RequireUser needs only the user id (wishlist, profile, orders, donations).
	RequireUser Requirement = iota
	// RequireCart needs both the user id and the cart id.
	RequireCart
)

func (r Requirement) String() string {
	if r == RequireCart {
		return "user+cart"
	}
	return "user"
}

// Recorder observes resolution results.
type Recorder interface {
	ObserveResolution(result string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveResolution(string) {}

// Resolver is the single entry point to the stored credential. It turns the
// credential into an Identity and owns its lifecycle: Login writes it, Logout
// and decode failures delete it.
type Resolver struct {
	store   model.CredentialStore
	decoder model.TokenDecoder
	metrics Recorder
	logger  *logger.Logger
}

// NewResolver creates a Resolver over store using decoder for the payload.
func NewResolver(store model.CredentialStore, decoder model.TokenDecoder, logger *logger.Logger) *Resolver {
	return &Resolver{
		store:   store,
		decoder: decoder,
		metrics: nopRecorder{},
		logger:  logger,
	}
}

// WithRecorder sets the recorder for resolution results.
func (r *Resolver) WithRecorder(rec Recorder) *Resolver {
	r.metrics = rec
	return r
}

// Resolve derives the identity required by the caller from the stored credential.
//
// It fails with ErrNoSession when nothing is stored, with ErrMalformedCredential
// (after deleting the stored value) when the credential cannot be decoded, and
// with ErrIncompleteIdentity when a required field is missing under every alias.
func (r *Resolver) Resolve(ctx context.Context, req Requirement) (model.Identity, error) {
	credential, err := r.store.Load(ctx)
	switch {
	case errors.Is(err, model.ErrNotFound):
		r.metrics.ObserveResolution("no_session")
		return model.Identity{}, model.ErrNoSession
	case errors.Is(err, model.ErrMalformedCredential):
		r.clear(ctx)
		r.metrics.ObserveResolution("malformed")
		return model.Identity{}, err
	case err != nil:
		r.metrics.ObserveResolution("error")
		return model.Identity{}, fmt.Errorf("failed to load credential: %w", err)
	}

	if strings.TrimSpace(credential) == "" {
		r.metrics.ObserveResolution("no_session")
		return model.Identity{}, model.ErrNoSession
	}

	claims, err := r.decoder.Decode(credential)
	if err != nil {
		r.logger.Warn("Session: stored credential cannot be decoded, clearing it",
			"error", err.Error())
		r.clear(ctx)
		r.metrics.ObserveResolution("malformed")
		return model.Identity{}, fmt.Errorf("%w: %v", model.ErrMalformedCredential, err)
	}

	identity := identityFromClaims(claims, credential)

	if identity.UserID == "" {
		r.logger.Error("Session: credential carries no user id",
			"requirement", req.String())
		r.metrics.ObserveResolution("incomplete")
		return model.Identity{}, fmt.Errorf("%w: user id is missing", model.ErrIncompleteIdentity)
	}
	if req == RequireCart && identity.CartID == "" {
		r.logger.Error("Session: credential carries no cart id",
			"user_id", identity.UserID)
		r.metrics.ObserveResolution("incomplete")
		return model.Identity{}, fmt.Errorf("%w: cart id is missing", model.ErrIncompleteIdentity)
	}

	r.metrics.ObserveResolution("ok")
	return identity, nil
}

// Login stores credential after checking that it decodes. An undecodable
// credential is rejected with ErrMalformedCredential and nothing is stored.
func (r *Resolver) Login(ctx context.Context, credential string) (model.Identity, error) {
	credential = strings.TrimSpace(credential)

	claims, err := r.decoder.Decode(credential)
	if err != nil {
		return model.Identity{}, fmt.Errorf("%w: %v", model.ErrMalformedCredential, err)
	}

	if err := r.store.Save(ctx, credential); err != nil {
		return model.Identity{}, fmt.Errorf("failed to store credential: %w", err)
	}

	identity := identityFromClaims(claims, credential)
	r.logger.Info("Session: credential stored",
		"user_id", identity.UserID,
		"has_cart", identity.CartID != "")

	return identity, nil
}

// Logout deletes the stored credential.
func (r *Resolver) Logout(ctx context.Context) error {
	if err := r.store.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}
	r.logger.Info("Session: credential removed")
	return nil
}

func (r *Resolver) clear(ctx context.Context) {
	if err := r.store.Delete(ctx); err != nil {
		r.logger.Error("Session: failed to clear malformed credential",
			"error", err.Error())
	}
}

func identityFromClaims(claims map[string]any, credential string) model.Identity {
	return model.Identity{
		UserID: lookup(claims, userIDKeys),
		CartID: lookup(claims, cartIDKeys),
		Bearer: credential,
	}
}
