package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/dtroode/bookswap-agent/internal/api/grpc/storefront"
	"github.com/dtroode/bookswap-agent/internal/config"
)

// errLoggedOut is returned for every Unauthenticated response.
var errLoggedOut = errors.New("please log in: run 'bookswapctl login <token>'")

// app carries the connection shared by all subcommands of one invocation.
type app struct {
	addr     string
	timeout  time.Duration
	dialOpts []grpc.DialOption
	out      io.Writer

	conn   *grpc.ClientConn
	client *storefront.Client
}

func newRootCommand(cfg *config.CLI, out io.Writer, dialOpts ...grpc.DialOption) *cobra.Command {
	a := &app{
		addr:     cfg.AgentAddr,
		timeout:  cfg.Timeout,
		dialOpts: dialOpts,
		out:      out,
	}

	root := &cobra.Command{
		Use:           "bookswapctl",
		Short:         "Browse the bookstore, manage the cart and donate books through the bookswap agent",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.connect()
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.close()
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&a.addr, "addr", a.addr, "agent gRPC address")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", a.timeout, "per-call timeout")

	root.AddCommand(
		a.loginCommand(),
		a.logoutCommand(),
		a.whoamiCommand(),
		a.booksCommand(),
		a.categoriesCommand(),
		a.cartCommand(),
		a.wishlistCommand(),
		a.orderCommand(),
		a.profileCommand(),
		a.donateCommand(),
	)

	return root
}

func (a *app) connect() error {
	opts := append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, a.dialOpts...)
	conn, err := grpc.NewClient(a.addr, opts...)
	if err != nil {
		return fmt.Errorf("failed to connect to agent at %s: %w", a.addr, err)
	}
	a.conn = conn
	a.client = storefront.NewClient(conn)
	return nil
}

func (a *app) close() error {
	if a.conn == nil {
		return nil
	}
	err := a.conn.Close()
	a.conn = nil
	return err
}

// call runs fn with a per-call deadline and prints its result as JSON.
func call[Resp any](a *app, cmd *cobra.Command, fn func(ctx context.Context, c *storefront.Client) (*Resp, error)) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), a.timeout)
	defer cancel()

	resp, err := fn(ctx, a.client)
	if err != nil {
		return describe(err)
	}
	return a.print(resp)
}

func (a *app) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// describe turns a gRPC status into a message for the terminal.
func describe(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.Unauthenticated:
		return errLoggedOut
	case codes.Unavailable:
		return fmt.Errorf("bookstore: %s", st.Message())
	default:
		return errors.New(st.Message())
	}
}
