// Package storefront defines the agent's gRPC service, its messages and a client.
package storefront

import (
	"context"

	"google.golang.org/grpc"

	"github.com/dtroode/bookswap-agent/internal/model"
)

const ServiceName = "bookswap.Storefront"

// StorefrontServer is implemented by the agent.
type StorefrontServer interface {
	Login(context.Context, *LoginRequest) (*IdentityResponse, error)
	Logout(context.Context, *Empty) (*Empty, error)
	Whoami(context.Context, *Empty) (*IdentityResponse, error)

	OpenItem(context.Context, *ItemRequest) (*QuantityResponse, error)
	AddToCart(context.Context, *CartMutationRequest) (*model.MutationOutcome, error)
	IncrementCart(context.Context, *CartMutationRequest) (*model.MutationOutcome, error)
	DecrementCart(context.Context, *CartMutationRequest) (*model.MutationOutcome, error)
	SyncCart(context.Context, *Empty) (*SyncCartResponse, error)
	ListCart(context.Context, *Empty) (*model.CartListing, error)

	ToggleWishlist(context.Context, *ItemRequest) (*model.WishlistMembership, error)
	ListWishlist(context.Context, *Empty) (*BooksResponse, error)

	ListBooks(context.Context, *Empty) (*BooksResponse, error)
	GetBook(context.Context, *ItemRequest) (*model.Book, error)
	SearchBooks(context.Context, *SearchBooksRequest) (*BooksResponse, error)
	ListCategories(context.Context, *Empty) (*CategoriesResponse, error)

	CreateOrder(context.Context, *CreateOrderRequest) (*model.OrderResult, error)
	GetProfile(context.Context, *Empty) (*model.UserProfile, error)
	UpdateProfile(context.Context, *UpdateProfileRequest) (*model.UserProfile, error)

	Donate(context.Context, *DonateRequest) (*model.DonationResult, error)
	ResubmitDonation(context.Context, *ResubmitDonationRequest) (*model.DonationResult, error)
}

// unary builds the descriptor of one method from its StorefrontServer method expression.
func unary[Req, Resp any](name string, call func(StorefrontServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(StorefrontServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + name,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(StorefrontServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes bookswap.Storefront for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*StorefrontServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Login", StorefrontServer.Login),
		unary("Logout", StorefrontServer.Logout),
		unary("Whoami", StorefrontServer.Whoami),
		unary("OpenItem", StorefrontServer.OpenItem),
		unary("AddToCart", StorefrontServer.AddToCart),
		unary("IncrementCart", StorefrontServer.IncrementCart),
		unary("DecrementCart", StorefrontServer.DecrementCart),
		unary("SyncCart", StorefrontServer.SyncCart),
		unary("ListCart", StorefrontServer.ListCart),
		unary("ToggleWishlist", StorefrontServer.ToggleWishlist),
		unary("ListWishlist", StorefrontServer.ListWishlist),
		unary("ListBooks", StorefrontServer.ListBooks),
		unary("GetBook", StorefrontServer.GetBook),
		unary("SearchBooks", StorefrontServer.SearchBooks),
		unary("ListCategories", StorefrontServer.ListCategories),
		unary("CreateOrder", StorefrontServer.CreateOrder),
		unary("GetProfile", StorefrontServer.GetProfile),
		unary("UpdateProfile", StorefrontServer.UpdateProfile),
		unary("Donate", StorefrontServer.Donate),
		unary("ResubmitDonation", StorefrontServer.ResubmitDonation),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "bookswap/storefront",
}

// RegisterStorefrontServer registers srv on s.
func RegisterStorefrontServer(s grpc.ServiceRegistrar, srv StorefrontServer) {
	s.RegisterService(&ServiceDesc, srv)
}
