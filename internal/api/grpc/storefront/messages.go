package storefront

import (
	"github.com/google/uuid"

	"github.com/dtroode/bookswap-agent/internal/model"
)

type Empty struct{}

type LoginRequest struct {
	Credential string `json:"credential"`
}

type IdentityResponse struct {
	UserID string `json:"user_id"`
	CartID string `json:"cart_id,omitempty"`
}

type ItemRequest struct {
	ItemID string `json:"item_id"`
}

type QuantityResponse struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// CartMutationRequest serves add, increment and decrement. Quantity is the
// amount to add or the delta. Price is ignored by decrement; when zero, add
// and increment use the catalog price.
type CartMutationRequest struct {
	ItemID   string  `json:"item_id"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type SyncCartResponse struct {
	Lines []model.CartLine `json:"lines"`
}

type BooksResponse struct {
	Books []model.Book `json:"books"`
}

type SearchBooksRequest struct {
	Query string `json:"query"`
}

type CategoriesResponse struct {
	Categories []model.Category `json:"categories"`
}

type CreateOrderRequest struct {
	DeliveryAddress string `json:"delivery_address"`
	PaymentMethod   string `json:"payment_method,omitempty"`
}

type UpdateProfileRequest struct {
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneNo     string `json:"phoneno,omitempty"`
	Password    string `json:"password,omitempty"`
	OldPassword string `json:"old_password,omitempty"`
}

// DonateRequest carries the files inline; byte slices travel as base64.
type DonateRequest struct {
	Form            model.DonationForm `json:"form"`
	BookFileName    string             `json:"book_file_name"`
	BookFile        []byte             `json:"book_file"`
	PictureFileName string             `json:"picture_file_name,omitempty"`
	Picture         []byte             `json:"picture,omitempty"`
}

type ResubmitDonationRequest struct {
	DonationID uuid.UUID `json:"donation_id"`
}
