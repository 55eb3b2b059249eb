package service

import (
	"context"

	"github.com/dtroode/bookswap-agent/internal/model"
	"github.com/dtroode/bookswap-agent/internal/session"
)

// SessionResolver is the part of session.Resolver that manages the credential.
type SessionResolver interface {
	IdentityResolver
	Login(ctx context.Context, credential string) (model.Identity, error)
	Logout(ctx context.Context) error
}

// Session logs the user in and out. Client-side beliefs are dropped whenever
// the credential changes.
type Session struct {
	resolver    SessionResolver
	coordinator *Coordinator
}

func NewSession(resolver SessionResolver, coordinator *Coordinator) *Session {
	return &Session{
		resolver:    resolver,
		coordinator: coordinator,
	}
}

func (s *Session) Login(ctx context.Context, credential string) (model.Identity, error) {
	id, err := s.resolver.Login(ctx, credential)
	if err != nil {
		return model.Identity{}, err
	}
	s.coordinator.Reset()
	return id, nil
}

func (s *Session) Logout(ctx context.Context) error {
	if err := s.resolver.Logout(ctx); err != nil {
		return err
	}
	s.coordinator.Reset()
	return nil
}

// Whoami resolves the user identity. The cart id is included when present.
func (s *Session) Whoami(ctx context.Context) (model.Identity, error) {
	return s.resolver.Resolve(ctx, session.RequireUser)
}
