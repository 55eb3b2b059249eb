package model

import (
	"io"

	"github.com/google/uuid"
)

// DonationForm holds the fields of a book donation.
type DonationForm struct {
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	Quantity      int     `json:"quantity"`
	CategoryID    string  `json:"category_id"`
	SubcategoryID string  `json:"subcategory_id"`
}

// Asset is a named file attached to a donation.
type Asset struct {
	Name    string
	Content io.Reader
}

// StagedDonation is the manifest kept in object storage until a donation is accepted.
type StagedDonation struct {
	ID              uuid.UUID    `json:"id"`
	UserID          string       `json:"user_id"`
	Form            DonationForm `json:"form"`
	BookFileName    string       `json:"book_file_name"`
	PictureFileName string       `json:"picture_file_name,omitempty"`
}

type DonationResult struct {
	DonationID uuid.UUID `json:"donation_id"`
	Message    string    `json:"message,omitempty"`
}
