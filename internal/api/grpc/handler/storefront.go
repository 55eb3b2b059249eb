package handler

import (
	"bytes"
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/bookswap-agent/internal/api/grpc/storefront"
	"github.com/dtroode/bookswap-agent/internal/logger"
	"github.com/dtroode/bookswap-agent/internal/model"
)

// SessionService logs the user in and out.
type SessionService interface {
	Login(ctx context.Context, credential string) (model.Identity, error)
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) (model.Identity, error)
}

// CartCoordinator owns visible quantities and serializes cart mutations.
type CartCoordinator interface {
	Open(itemID string)
	Quantity(itemID string) int
	Add(ctx context.Context, item model.Item, quantity int) (model.MutationOutcome, error)
	Increment(ctx context.Context, item model.Item, delta int) (model.MutationOutcome, error)
	Decrement(ctx context.Context, itemID string, delta int) (model.MutationOutcome, error)
	SyncQuantities(ctx context.Context) ([]model.CartLine, error)
}

type CartService interface {
	List(ctx context.Context) (model.CartListing, error)
}

type WishlistService interface {
	List(ctx context.Context) ([]model.Book, error)
	Toggle(ctx context.Context, itemID string) (model.WishlistMembership, error)
}

type CatalogService interface {
	ListBooks(ctx context.Context) ([]model.Book, error)
	GetBook(ctx context.Context, bookID string) (model.Book, error)
	Search(ctx context.Context, query string) ([]model.Book, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
}

type OrderService interface {
	Create(ctx context.Context, address, paymentMethod string) (model.OrderResult, error)
}

type ProfileService interface {
	Get(ctx context.Context) (model.UserProfile, error)
	Update(ctx context.Context, upd model.ProfileUpdate) (model.UserProfile, error)
}

type DonationService interface {
	Donate(ctx context.Context, form model.DonationForm, book model.Asset, picture *model.Asset) (model.DonationResult, error)
	Resubmit(ctx context.Context, donationID uuid.UUID) (model.DonationResult, error)
}

// Services groups the application services behind the storefront API.
type Services struct {
	Session     SessionService
	Coordinator CartCoordinator
	Cart        CartService
	Wishlist    WishlistService
	Catalog     CatalogService
	Order       OrderService
	Profile     ProfileService
	Donation    DonationService
}

// Storefront handles the bookswap.Storefront gRPC endpoints.
type Storefront struct {
	services Services
	logger   *logger.Logger
}

var _ storefront.StorefrontServer = (*Storefront)(nil)

// NewStorefront creates a new Storefront handler.
func NewStorefront(services Services, logger *logger.Logger) *Storefront {
	return &Storefront{
		services: services,
		logger:   logger,
	}
}

func (h *Storefront) Login(ctx context.Context, req *storefront.LoginRequest) (*storefront.IdentityResponse, error) {
	id, err := h.services.Session.Login(ctx, req.Credential)
	if err != nil {
		h.logger.Warn("Storefront handler: login failed", "error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Storefront handler: logged in", "user_id", id.UserID)

	return identityResponse(id), nil
}

func (h *Storefront) Logout(ctx context.Context, _ *storefront.Empty) (*storefront.Empty, error) {
	if err := h.services.Session.Logout(ctx); err != nil {
		h.logger.Error("Storefront handler: logout failed", "error", err.Error())
		return nil, handleError(err)
	}
	return &storefront.Empty{}, nil
}

func (h *Storefront) Whoami(ctx context.Context, _ *storefront.Empty) (*storefront.IdentityResponse, error) {
	id, err := h.services.Session.Whoami(ctx)
	if err != nil {
		return nil, handleError(err)
	}
	return identityResponse(id), nil
}

// OpenItem starts a detail view; the visible quantity restarts at 0.
func (h *Storefront) OpenItem(_ context.Context, req *storefront.ItemRequest) (*storefront.QuantityResponse, error) {
	if req.ItemID == "" {
		return nil, status.Error(codes.InvalidArgument, "item id is required")
	}
	h.services.Coordinator.Open(req.ItemID)
	return &storefront.QuantityResponse{
		ItemID:   req.ItemID,
		Quantity: h.services.Coordinator.Quantity(req.ItemID),
	}, nil
}

func (h *Storefront) AddToCart(ctx context.Context, req *storefront.CartMutationRequest) (*model.MutationOutcome, error) {
	item, err := h.item(ctx, req)
	if err != nil {
		return nil, handleError(err)
	}

	outcome, err := h.services.Coordinator.Add(ctx, item, req.Quantity)
	if err != nil {
		h.logger.Error("Storefront handler: add to cart failed",
			"item_id", req.ItemID,
			"error", err.Error())
		return nil, handleError(err)
	}
	return &outcome, nil
}

func (h *Storefront) IncrementCart(ctx context.Context, req *storefront.CartMutationRequest) (*model.MutationOutcome, error) {
	item, err := h.item(ctx, req)
	if err != nil {
		return nil, handleError(err)
	}

	outcome, err := h.services.Coordinator.Increment(ctx, item, req.Quantity)
	if err != nil {
		h.logger.Error("Storefront handler: increment failed",
			"item_id", req.ItemID,
			"error", err.Error())
		return nil, handleError(err)
	}
	return &outcome, nil
}

func (h *Storefront) DecrementCart(ctx context.Context, req *storefront.CartMutationRequest) (*model.MutationOutcome, error) {
	outcome, err := h.services.Coordinator.Decrement(ctx, req.ItemID, req.Quantity)
	if err != nil {
		h.logger.Error("Storefront handler: decrement failed",
			"item_id", req.ItemID,
			"error", err.Error())
		return nil, handleError(err)
	}
	return &outcome, nil
}

func (h *Storefront) SyncCart(ctx context.Context, _ *storefront.Empty) (*storefront.SyncCartResponse, error) {
	lines, err := h.services.Coordinator.SyncQuantities(ctx)
	if err != nil {
		return nil, handleError(err)
	}
	return &storefront.SyncCartResponse{Lines: lines}, nil
}

func (h *Storefront) ListCart(ctx context.Context, _ *storefront.Empty) (*model.CartListing, error) {
	listing, err := h.services.Cart.List(ctx)
	if err != nil {
		return nil, handleError(err)
	}
	return &listing, nil
}

func (h *Storefront) ToggleWishlist(ctx context.Context, req *storefront.ItemRequest) (*model.WishlistMembership, error) {
	membership, err := h.services.Wishlist.Toggle(ctx, req.ItemID)
	if err != nil {
		h.logger.Error("Storefront handler: wishlist toggle failed",
			"item_id", req.ItemID,
			"error", err.Error())
		return nil, handleError(err)
	}
	return &membership, nil
}

func (h *Storefront) ListWishlist(ctx context.Context, _ *storefront.Empty) (*storefront.BooksResponse, error) {
	books, err := h.services.Wishlist.List(ctx)
	if err != nil {
		return nil, handleError(err)
	}
	return &storefront.BooksResponse{Books: books}, nil
}

func (h *Storefront) ListBooks(ctx context.Context, _ *storefront.Empty) (*storefront.BooksResponse, error) {
	books, err := h.services.Catalog.ListBooks(ctx)
	if err != nil {
		return nil, handleError(err)
	}
	return &storefront.BooksResponse{Books: books}, nil
}

func (h *Storefront) GetBook(ctx context.Context, req *storefront.ItemRequest) (*model.Book, error) {
	book, err := h.services.Catalog.GetBook(ctx, req.ItemID)
	if err != nil {
		return nil, handleError(err)
	}
	return &book, nil
}

func (h *Storefront) SearchBooks(ctx context.Context, req *storefront.SearchBooksRequest) (*storefront.BooksResponse, error) {
	books, err := h.services.Catalog.Search(ctx, req.Query)
	if err != nil {
		return nil, handleError(err)
	}
	return &storefront.BooksResponse{Books: books}, nil
}

func (h *Storefront) ListCategories(ctx context.Context, _ *storefront.Empty) (*storefront.CategoriesResponse, error) {
	categories, err := h.services.Catalog.ListCategories(ctx)
	if err != nil {
		return nil, handleError(err)
	}
	return &storefront.CategoriesResponse{Categories: categories}, nil
}

func (h *Storefront) CreateOrder(ctx context.Context, req *storefront.CreateOrderRequest) (*model.OrderResult, error) {
	result, err := h.services.Order.Create(ctx, req.DeliveryAddress, req.PaymentMethod)
	if err != nil {
		h.logger.Error("Storefront handler: order failed", "error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Storefront handler: order created", "order_id", string(result.OrderID))

	return &result, nil
}

func (h *Storefront) GetProfile(ctx context.Context, _ *storefront.Empty) (*model.UserProfile, error) {
	profile, err := h.services.Profile.Get(ctx)
	if err != nil {
		return nil, handleError(err)
	}
	return &profile, nil
}

func (h *Storefront) UpdateProfile(ctx context.Context, req *storefront.UpdateProfileRequest) (*model.UserProfile, error) {
	profile, err := h.services.Profile.Update(ctx, model.ProfileUpdate{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNo:     req.PhoneNo,
		Password:    req.Password,
		OldPassword: req.OldPassword,
	})
	if err != nil {
		return nil, handleError(err)
	}
	return &profile, nil
}

// Donate forwards the inline files. A failed submission keeps the staged
// donation and the status message names the id to resubmit.
func (h *Storefront) Donate(ctx context.Context, req *storefront.DonateRequest) (*model.DonationResult, error) {
	book := model.Asset{Name: req.BookFileName}
	if len(req.BookFile) > 0 {
		book.Content = bytes.NewReader(req.BookFile)
	}

	var picture *model.Asset
	if len(req.Picture) > 0 {
		picture = &model.Asset{Name: req.PictureFileName, Content: bytes.NewReader(req.Picture)}
	}

	result, err := h.services.Donation.Donate(ctx, req.Form, book, picture)
	if err != nil {
		h.logger.Error("Storefront handler: donation failed",
			"title", req.Form.Title,
			"error", err.Error())
		return nil, donationError(err, result.DonationID)
	}

	h.logger.Info("Storefront handler: donation accepted", "donation_id", result.DonationID.String())

	return &result, nil
}

func (h *Storefront) ResubmitDonation(ctx context.Context, req *storefront.ResubmitDonationRequest) (*model.DonationResult, error) {
	result, err := h.services.Donation.Resubmit(ctx, req.DonationID)
	if err != nil {
		h.logger.Error("Storefront handler: donation resubmit failed",
			"donation_id", req.DonationID.String(),
			"error", err.Error())
		return nil, donationError(err, req.DonationID)
	}
	return &result, nil
}

// item builds the cart reference of a mutation. Without a price the book
// is looked up in the catalog.
func (h *Storefront) item(ctx context.Context, req *storefront.CartMutationRequest) (model.Item, error) {
	if req.ItemID == "" {
		return model.Item{}, model.NewValidationError("item id is required")
	}
	if req.Price > 0 {
		return model.Item{ID: req.ItemID, Price: req.Price}, nil
	}

	book, err := h.services.Catalog.GetBook(ctx, req.ItemID)
	if err != nil {
		return model.Item{}, err
	}
	return book.Item(), nil
}

func donationError(err error, donationID uuid.UUID) error {
	mapped := handleError(err)
	st := status.Convert(mapped)
	if donationID == uuid.Nil || st.Code() != codes.Unavailable {
		return mapped
	}
	return status.Errorf(codes.Unavailable, "%s (donation %s can be resubmitted)", st.Message(), donationID)
}

func identityResponse(id model.Identity) *storefront.IdentityResponse {
	return &storefront.IdentityResponse{
		UserID: id.UserID,
		CartID: id.CartID,
	}
}
