package storefront

import (
	"context"

	"google.golang.org/grpc"

	"github.com/dtroode/bookswap-agent/internal/model"
)

// Client calls bookswap.Storefront over a client connection.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*IdentityResponse, error) {
	return invoke[IdentityResponse](ctx, c.cc, "Login", in, opts)
}

func (c *Client) Logout(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "Logout", in, opts)
}

func (c *Client) Whoami(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*IdentityResponse, error) {
	return invoke[IdentityResponse](ctx, c.cc, "Whoami", in, opts)
}

func (c *Client) OpenItem(ctx context.Context, in *ItemRequest, opts ...grpc.CallOption) (*QuantityResponse, error) {
	return invoke[QuantityResponse](ctx, c.cc, "OpenItem", in, opts)
}

func (c *Client) AddToCart(ctx context.Context, in *CartMutationRequest, opts ...grpc.CallOption) (*model.MutationOutcome, error) {
	return invoke[model.MutationOutcome](ctx, c.cc, "AddToCart", in, opts)
}

func (c *Client) IncrementCart(ctx context.Context, in *CartMutationRequest, opts ...grpc.CallOption) (*model.MutationOutcome, error) {
	return invoke[model.MutationOutcome](ctx, c.cc, "IncrementCart", in, opts)
}

func (c *Client) DecrementCart(ctx context.Context, in *CartMutationRequest, opts ...grpc.CallOption) (*model.MutationOutcome, error) {
	return invoke[model.MutationOutcome](ctx, c.cc, "DecrementCart", in, opts)
}

func (c *Client) SyncCart(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*SyncCartResponse, error) {
	return invoke[SyncCartResponse](ctx, c.cc, "SyncCart", in, opts)
}

func (c *Client) ListCart(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*model.CartListing, error) {
	return invoke[model.CartListing](ctx, c.cc, "ListCart", in, opts)
}

func (c *Client) ToggleWishlist(ctx context.Context, in *ItemRequest, opts ...grpc.CallOption) (*model.WishlistMembership, error) {
	return invoke[model.WishlistMembership](ctx, c.cc, "ToggleWishlist", in, opts)
}

func (c *Client) ListWishlist(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*BooksResponse, error) {
	return invoke[BooksResponse](ctx, c.cc, "ListWishlist", in, opts)
}

func (c *Client) ListBooks(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*BooksResponse, error) {
	return invoke[BooksResponse](ctx, c.cc, "ListBooks", in, opts)
}

func (c *Client) GetBook(ctx context.Context, in *ItemRequest, opts ...grpc.CallOption) (*model.Book, error) {
	return invoke[model.Book](ctx, c.cc, "GetBook", in, opts)
}

func (c *Client) SearchBooks(ctx context.Context, in *SearchBooksRequest, opts ...grpc.CallOption) (*BooksResponse, error) {
	return invoke[BooksResponse](ctx, c.cc, "SearchBooks", in, opts)
}

func (c *Client) ListCategories(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*CategoriesResponse, error) {
	return invoke[CategoriesResponse](ctx, c.cc, "ListCategories", in, opts)
}

func (c *Client) CreateOrder(ctx context.Context, in *CreateOrderRequest, opts ...grpc.CallOption) (*model.OrderResult, error) {
	return invoke[model.OrderResult](ctx, c.cc, "CreateOrder", in, opts)
}

func (c *Client) GetProfile(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*model.UserProfile, error) {
	return invoke[model.UserProfile](ctx, c.cc, "GetProfile", in, opts)
}

func (c *Client) UpdateProfile(ctx context.Context, in *UpdateProfileRequest, opts ...grpc.CallOption) (*model.UserProfile, error) {
	return invoke[model.UserProfile](ctx, c.cc, "UpdateProfile", in, opts)
}

func (c *Client) Donate(ctx context.Context, in *DonateRequest, opts ...grpc.CallOption) (*model.DonationResult, error) {
	return invoke[model.DonationResult](ctx, c.cc, "Donate", in, opts)
}

func (c *Client) ResubmitDonation(ctx context.Context, in *ResubmitDonationRequest, opts ...grpc.CallOption) (*model.DonationResult, error) {
	return invoke[model.DonationResult](ctx, c.cc, "ResubmitDonation", in, opts)
}
