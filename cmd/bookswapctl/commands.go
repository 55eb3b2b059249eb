package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dtroode/bookswap-agent/internal/api/grpc/storefront"
	"github.com/dtroode/bookswap-agent/internal/model"
)

func (a *app) loginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login <token>",
		Short: "Store the credential issued by the bookstore; '-' reads it from stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			credential := args[0]
			if credential == "-" {
				raw, err := readAll(cmd)
				if err != nil {
					return err
				}
				credential = raw
			}
			return call(a, cmd, func(ctx context.Context, c *storefront.Client) (*storefront.IdentityResponse, error) {
				return c.Login(ctx, &storefront.LoginRequest{Credential: credential})
			})
		},
	}
}

func (a *app) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return call(a, cmd, func(ctx context.Context, c *storefront.Client) (*storefront.Empty, error) {
				return c.Logout(ctx, &storefront.Empty{})
			})
		},
	}
}

func (a *app) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the identity of the stored credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return call(a, cmd, func(ctx context.Context, c *storefront.Client) (*storefront.IdentityResponse, error) {
				return c.Whoami(ctx, &storefront.Empty{})
			})
		},
	}
}

func (a *app) booksCommand() *cobra.Command {
	books := &cobra.Command{
		Use:   "books",
		Short: "Browse the catalog",
	}

	books.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List every book",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return call(a, cmd, func(ctx context.Context, c *storefront.Client) (*storefront.BooksResponse, error) {
					return c.ListBooks(ctx, &storefront.Empty{})
				})
			},
		},
		&cobra.Command{
			Use:   "get <item-id>",
			Short: "Show one book",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return call(a, cmd, func(ctx context.Context, c *storefront.Client) (*model.Book, error) {
					return c.GetBook(ctx, &storefront.ItemRequest{ItemID: args[0]})
				})
			},
		},
		&cobra.Command{
			Use:   "search <query>",
			Short: "Search books by title or author",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				query := strings.Join(args, " ")
				return call(a, cmd, func(ctx context.Context, c *storefront.Client) (*storefront.BooksResponse, error) {
					return c.SearchBooks(ctx, &storefront.SearchBooksRequest{Query: query})
				})
			},
		},
	)

	return books
}

func (a *app) categoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories and their subcategories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return call(a, cmd, func(ctx context.Context, c *storefront.Client) (*storefront.CategoriesResponse, error) {
				return c.ListCategories(ctx, &storefront.Empty{})
			})
		},
	}
}

func (a *app) cartCommand() *cobra.Command {
	cart := &cobra.Command{
		Use:   "cart",
		Short: "Change and inspect the cart",
	}

	var (
		price    float64
		quantity int
	)
	mutation := func(use, short string, fn func(ctx context.Context, c *storefront.Client, req *storefront.CartMutationRequest) (*model.MutationOutcome, error)) *cobra.Command {
		cmd := &cobra.Command{
			Use:   use + " <item-id>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				req := &storefront.CartMutationRequest{ItemID: args[0], Price: price, Quantity: quantity}
				return call(a, cmd, func(ctx context.Context, c *storefront.Client) (*model.MutationOutcome, error) {
					return fn(ctx, c, req)
				})
			},
		}
		cmd.Flags().IntVarP(&quantity, "quantity", "n", 1, "units to add or remove")
		return cmd
	}

	add := mutation("add", "Add an item to the cart", func(ctx context.Context, c *storefront.Client, req *storefront.CartMutationRequest) (*model.MutationOutcome, error) {
		return c.AddToCart(ctx, req)
	})
	add.Flags().Float64Var(&price, "price", 0, "unit price; 0 uses the catalog price")

	inc := mutation("inc", "Increase the quantity of an item", func(ctx context.Context, c *storefront.Client, req *storefront.CartMutationRequest) (*model.MutationOutcome, error) {
		return c.IncrementCart(ctx, req)
	})
	inc.Flags().Float64Var(&price, "price", 0, "unit price; 0 uses the catalog price")

	dec := mutation("dec", "Decrease the quantity of an item", func(ctx context.Context, c *storefront.Client, req *storefront.CartMutationRequest) (*model.MutationOutcome, error) {
		return c.DecrementCart(ctx, req)
	})

	cart.AddCommand(
		&cobra.Command{
			Use:   "open <item-id>",
			Short: "Open an item; its visible quantity restarts at 0",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return call(a, cmd, func(ctx context.Context, c *storefront.Client) (*storefront.QuantityResponse, error) {
					return c.OpenItem(ctx, &storefront.ItemRequest{ItemID: args[0]})
				})
			},
		},
		add,
		inc,
		dec,
		&cobra.Command{
			Use:   "sync",
			Short: "Refresh visible quantities from the remote cart",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return call(a, cmd, func(ctx context.Context, c *storefront.Client) (*storefront.SyncCartResponse, error) {
					return c.SyncCart(ctx, &storefront.Empty{})
				})
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List cart rows and the total",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return call(a, cmd, func(ctx context.Context, c *storefront.Client) (*model.CartListing, error) {
					return c.ListCart(ctx, &storefront.Empty{})
				})
			},
		},
	)

	return cart
}

func (a *app) wishlistCommand() *cobra.Command {
	wishlist := &cobra.Command{
		Use:   "wishlist",
		Short: "Change and inspect the wishlist",
	}

	wishlist.AddCommand(
		&cobra.Command{
			Use:   "toggle <item-id>",
			Short: "Add an item to the wishlist or remove it",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return call(a, cmd, func(ctx context.Context, c *storefront.Client) (*model.WishlistMembership, error) {
					return c.ToggleWishlist(ctx, &storefront.ItemRequest{ItemID: args[0]})
				})
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List wishlisted books",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return call(a, cmd, func(ctx context.Context, c *storefront.Client) (*storefront.BooksResponse, error) {
					return c.ListWishlist(ctx, &storefront.Empty{})
				})
			},
		},
	)

	return wishlist
}

func (a *app) orderCommand() *cobra.Command {
	var req storefront.CreateOrderRequest

	cmd := &cobra.Command{
		Use:   "order",
		Short: "Check out the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return call(a, cmd, func(ctx context.Context, c *storefront.Client) (*model.OrderResult, error) {
				return c.CreateOrder(ctx, &req)
			})
		},
	}
	cmd.Flags().StringVar(&req.DeliveryAddress, "address", "", "delivery address")
	cmd.Flags().StringVar(&req.PaymentMethod, "payment", model.DefaultPaymentMethod, "payment method")
	_ = cmd.MarkFlagRequired("address")

	return cmd
}

func (a *app) profileCommand() *cobra.Command {
	profile := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit the user profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return call(a, cmd, func(ctx context.Context, c *storefront.Client) (*model.UserProfile, error) {
				return c.GetProfile(ctx, &storefront.Empty{})
			})
		},
	}

	var req storefront.UpdateProfileRequest
	update := &cobra.Command{
		Use:   "update",
		Short: "Change profile fields; a new password needs the old one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return call(a, cmd, func(ctx context.Context, c *storefront.Client) (*model.UserProfile, error) {
				return c.UpdateProfile(ctx, &req)
			})
		},
	}
	update.Flags().StringVar(&req.Name, "name", "", "display name")
	update.Flags().StringVar(&req.Email, "email", "", "email address")
	update.Flags().StringVar(&req.PhoneNo, "phone", "", "phone number")
	update.Flags().StringVar(&req.Password, "password", "", "new password")
	update.Flags().StringVar(&req.OldPassword, "old-password", "", "current password")

	profile.AddCommand(update)
	return profile
}

func (a *app) donateCommand() *cobra.Command {
	var (
		form        model.DonationForm
		bookPath    string
		picturePath string
	)

	donate := &cobra.Command{
		Use:   "donate",
		Short: "Donate a book file, optionally with a cover picture",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := &storefront.DonateRequest{Form: form, BookFileName: filepath.Base(bookPath)}

			book, err := os.ReadFile(bookPath)
			if err != nil {
				return fmt.Errorf("failed to read book file: %w", err)
			}
			req.BookFile = book

			if picturePath != "" {
				picture, err := os.ReadFile(picturePath)
				if err != nil {
					return fmt.Errorf("failed to read picture: %w", err)
				}
				req.PictureFileName = filepath.Base(picturePath)
				req.Picture = picture
			}

			return call(a, cmd, func(ctx context.Context, c *storefront.Client) (*model.DonationResult, error) {
				return c.Donate(ctx, req)
			})
		},
	}
	donate.Flags().StringVar(&form.Title, "title", "", "book title")
	donate.Flags().StringVar(&form.Author, "author", "", "author")
	donate.Flags().StringVar(&form.Description, "description", "", "description")
	donate.Flags().Float64Var(&form.Price, "price", 0, "price")
	donate.Flags().IntVar(&form.Quantity, "quantity", 1, "copies")
	donate.Flags().StringVar(&form.CategoryID, "category", "", "category id")
	donate.Flags().StringVar(&form.SubcategoryID, "subcategory", "", "subcategory id")
	donate.Flags().StringVar(&bookPath, "book", "", "path of the book file")
	donate.Flags().StringVar(&picturePath, "picture", "", "path of the cover picture")
	_ = donate.MarkFlagRequired("title")
	_ = donate.MarkFlagRequired("book")

	donate.AddCommand(&cobra.Command{
		Use:   "resubmit <donation-id>",
		Short: "Retry a donation whose submission failed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid donation id: %w", err)
			}
			return call(a, cmd, func(ctx context.Context, c *storefront.Client) (*model.DonationResult, error) {
				return c.ResubmitDonation(ctx, &storefront.ResubmitDonationRequest{DonationID: id})
			})
		},
	})

	return donate
}

func readAll(cmd *cobra.Command) (string, error) {
	raw, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read credential: %w", err)
	}
	credential := strings.TrimSpace(string(raw))
	if credential == "" {
		return "", fmt.Errorf("no credential on stdin")
	}
	return credential, nil
}
