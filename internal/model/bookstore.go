package model

import "context"

// CartAPI is the remote cart service.
type CartAPI interface {
	AddToCart(ctx context.Context, id Identity, item Item, quantity int) error
	IncrementCart(ctx context.Context, id Identity, item Item, delta int) error
	DecrementCart(ctx context.Context, id Identity, itemID string, delta int) error
	CartLines(ctx context.Context, id Identity) ([]CartLine, error)
	CartEntries(ctx context.Context, id Identity) ([]CartEntry, error)
}

// WishlistAPI is the remote wishlist service.
type WishlistAPI interface {
	ToggleWishlist(ctx context.Context, id Identity, itemID string) (bool, error)
	Wishlist(ctx context.Context, id Identity) ([]WishlistRow, error)
}

// CatalogAPI is the remote book catalog.
type CatalogAPI interface {
	Books(ctx context.Context) ([]Book, error)
	Categories(ctx context.Context) ([]Category, error)
}

type OrderAPI interface {
	CreateOrder(ctx context.Context, id Identity, req OrderRequest) (OrderResult, error)
}

type ProfileAPI interface {
	Profile(ctx context.Context, id Identity) (UserProfile, error)
	UpdateProfile(ctx context.Context, id Identity, upd ProfileUpdate) (UserProfile, error)
}

// DonationAPI accepts donated books. picture may be nil.
type DonationAPI interface {
	UploadBook(ctx context.Context, id Identity, form DonationForm, book Asset, picture *Asset) (string, error)
}
