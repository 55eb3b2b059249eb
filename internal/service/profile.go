package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/dtroode/bookswap-agent/internal/logger"
	"github.com/dtroode/bookswap-agent/internal/model"
	"github.com/dtroode/bookswap-agent/internal/session"
)

type Profile struct {
	resolver IdentityResolver
	api      model.ProfileAPI
	logger   *logger.Logger
}

func NewProfile(resolver IdentityResolver, api model.ProfileAPI, logger *logger.Logger) *Profile {
	return &Profile{
		resolver: resolver,
		api:      api,
		logger:   logger,
	}
}

func (s *Profile) Get(ctx context.Context) (model.UserProfile, error) {
	id, err := s.resolver.Resolve(ctx, session.RequireUser)
	if err != nil {
		return model.UserProfile{}, err
	}

	profile, err := s.api.Profile(ctx, id)
	if err != nil {
		s.logger.Error("Profile service: failed to fetch profile",
			"user_id", id.UserID,
			"error", err.Error())
		return model.UserProfile{}, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return profile, nil
}

// Update sends the changed fields. Changing the password requires the old one.
func (s *Profile) Update(ctx context.Context, upd model.ProfileUpdate) (model.UserProfile, error) {
	upd.Name = strings.TrimSpace(upd.Name)
	upd.Email = strings.TrimSpace(upd.Email)
	upd.PhoneNo = strings.TrimSpace(upd.PhoneNo)
	if upd.Password != "" && upd.OldPassword == "" {
		return model.UserProfile{}, model.NewValidationError("old password is required to change password")
	}

	id, err := s.resolver.Resolve(ctx, session.RequireUser)
	if err != nil {
		return model.UserProfile{}, err
	}
	upd.ID = id.UserID

	profile, err := s.api.UpdateProfile(ctx, id, upd)
	if err != nil {
		s.logger.Error("Profile service: failed to update profile",
			"user_id", id.UserID,
			"error", err.Error())
		return model.UserProfile{}, fmt.Errorf("failed to update profile: %w", err)
	}

	s.logger.Info("Profile service: profile updated",
		"user_id", id.UserID,
		"password_changed", upd.Password != "")
	return profile, nil
}
