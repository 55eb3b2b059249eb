package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/dtroode/bookswap-agent/internal/logger"
	"github.com/dtroode/bookswap-agent/internal/model"
	"github.com/dtroode/bookswap-agent/internal/session"
)

const donationPrefix = "donations"

// Donation submits donated books. The form and files are staged in object
// storage first; they are removed once the bookstore accepts the donation and
// kept otherwise so the user can resubmit.
type Donation struct {
	resolver IdentityResolver
	api      model.DonationAPI
	storage  model.Storage
	logger   *logger.Logger
}

func NewDonation(resolver IdentityResolver, api model.DonationAPI, storage model.Storage, logger *logger.Logger) *Donation {
	return &Donation{
		resolver: resolver,
		api:      api,
		storage:  storage,
		logger:   logger,
	}
}

// Donate stages and submits a donation. picture may be nil. On a failed
// submission the returned result still carries the donation id to resubmit.
func (s *Donation) Donate(ctx context.Context, form model.DonationForm, book model.Asset, picture *model.Asset) (model.DonationResult, error) {
	if book.Content == nil || strings.TrimSpace(book.Name) == "" {
		return model.DonationResult{}, model.NewValidationError("book file is required")
	}
	if strings.TrimSpace(form.Title) == "" {
		return model.DonationResult{}, model.NewValidationError("title is required")
	}
	if form.Quantity < 0 || form.Price < 0 {
		return model.DonationResult{}, model.NewValidationError("price and quantity must not be negative")
	}

	id, err := s.resolver.Resolve(ctx, session.RequireUser)
	if err != nil {
		return model.DonationResult{}, err
	}

	staged := model.StagedDonation{
		ID:           uuid.New(),
		UserID:       id.UserID,
		Form:         form,
		BookFileName: path.Base(book.Name),
	}
	if picture != nil && picture.Content != nil {
		staged.PictureFileName = "picture"
		if name := strings.TrimSpace(picture.Name); name != "" {
			staged.PictureFileName = path.Base(name)
		}
	}

	if err := s.stage(ctx, staged, book, picture); err != nil {
		s.logger.Error("Donation service: failed to stage donation",
			"donation_id", staged.ID.String(),
			"error", err.Error())
		s.discard(ctx, staged)
		return model.DonationResult{}, fmt.Errorf("failed to stage donation: %w", err)
	}

	return s.submit(ctx, id, staged)
}

// Resubmit retries a donation whose submission failed earlier.
func (s *Donation) Resubmit(ctx context.Context, donationID uuid.UUID) (model.DonationResult, error) {
	id, err := s.resolver.Resolve(ctx, session.RequireUser)
	if err != nil {
		return model.DonationResult{}, err
	}

	manifestKey := stagedKey(donationID, "manifest.json")
	ok, err := s.storage.Exists(ctx, manifestKey)
	if err != nil {
		return model.DonationResult{}, fmt.Errorf("failed to check staged donation: %w", err)
	}
	if !ok {
		return model.DonationResult{}, fmt.Errorf("donation %s: %w", donationID, model.ErrNotFound)
	}

	rc, err := s.storage.Download(ctx, manifestKey)
	if err != nil {
		return model.DonationResult{}, fmt.Errorf("failed to read staged donation: %w", err)
	}
	defer rc.Close()

	var staged model.StagedDonation
	if err := json.NewDecoder(rc).Decode(&staged); err != nil {
		return model.DonationResult{}, fmt.Errorf("failed to decode staged donation: %w", err)
	}
	if staged.UserID != id.UserID {
		return model.DonationResult{}, fmt.Errorf("donation %s: %w", donationID, model.ErrNotFound)
	}

	return s.submit(ctx, id, staged)
}

func (s *Donation) submit(ctx context.Context, id model.Identity, staged model.StagedDonation) (model.DonationResult, error) {
	result := model.DonationResult{DonationID: staged.ID}

	book, err := s.open(ctx, staged.ID, "book", staged.BookFileName)
	if err != nil {
		return result, err
	}
	defer book.Close()

	var picture *model.Asset
	if staged.PictureFileName != "" {
		rc, err := s.open(ctx, staged.ID, "picture", staged.PictureFileName)
		if err != nil {
			return result, err
		}
		defer rc.Close()
		picture = &model.Asset{Name: staged.PictureFileName, Content: rc}
	}

	message, err := s.api.UploadBook(ctx, id, staged.Form,
		model.Asset{Name: staged.BookFileName, Content: book}, picture)
	if err != nil {
		s.logger.Warn("Donation service: submission failed, donation kept for resubmission",
			"donation_id", staged.ID.String(),
			"error", err.Error())
		return result, fmt.Errorf("failed to submit donation %s: %w", staged.ID, err)
	}

	result.Message = message
	s.discard(ctx, staged)
	s.logger.Info("Donation service: donation accepted",
		"donation_id", staged.ID.String(),
		"user_id", id.UserID)

	return result, nil
}

func (s *Donation) stage(ctx context.Context, staged model.StagedDonation, book model.Asset, picture *model.Asset) error {
	if err := s.storage.Upload(ctx, stagedKey(staged.ID, "book", staged.BookFileName), book.Content); err != nil {
		return err
	}
	if staged.PictureFileName != "" {
		if err := s.storage.Upload(ctx, stagedKey(staged.ID, "picture", staged.PictureFileName), picture.Content); err != nil {
			return err
		}
	}

	manifest, err := json.Marshal(staged)
	if err != nil {
		return err
	}
	return s.storage.Upload(ctx, stagedKey(staged.ID, "manifest.json"), bytes.NewReader(manifest))
}

func (s *Donation) open(ctx context.Context, donationID uuid.UUID, kind, name string) (io.ReadCloser, error) {
	rc, err := s.storage.Download(ctx, stagedKey(donationID, kind, name))
	if errors.Is(err, model.ErrNotFound) {
		return nil, fmt.Errorf("staged %s of donation %s: %w", kind, donationID, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read staged %s: %w", kind, err)
	}
	return rc, nil
}

// discard removes every staged object of a donation. Failures are only logged.
func (s *Donation) discard(ctx context.Context, staged model.StagedDonation) {
	keys := []string{
		stagedKey(staged.ID, "book", staged.BookFileName),
		stagedKey(staged.ID, "manifest.json"),
	}
	if staged.PictureFileName != "" {
		keys = append(keys, stagedKey(staged.ID, "picture", staged.PictureFileName))
	}

	for _, key := range keys {
		if err := s.storage.Delete(ctx, key); err != nil {
			s.logger.Error("Donation service: failed to delete staged object",
				"key", key,
				"error", err.Error())
		}
	}
}

func stagedKey(donationID uuid.UUID, parts ...string) string {
	return path.Join(append([]string{donationPrefix, donationID.String()}, parts...)...)
}
