package handler

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/bookswap-agent/internal/model"
)

func TestHandleError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       error
		wantCode codes.Code
		wantMsg  string
	}{
		{
			name:     "no session -> Unauthenticated",
			in:       model.ErrNoSession,
			wantCode: codes.Unauthenticated,
			wantMsg:  LoginHint,
		},
		{
			name:     "malformed credential -> Unauthenticated",
			in:       fmt.Errorf("resolve: %w", model.ErrMalformedCredential),
			wantCode: codes.Unauthenticated,
			wantMsg:  LoginHint,
		},
		{
			name:     "incomplete identity -> FailedPrecondition",
			in:       fmt.Errorf("%w: cart id missing", model.ErrIncompleteIdentity),
			wantCode: codes.FailedPrecondition,
			wantMsg:  "incomplete identity: cart id missing",
		},
		{
			name:     "validation -> InvalidArgument",
			in:       model.NewValidationError("quantity must be at least 1"),
			wantCode: codes.InvalidArgument,
			wantMsg:  "validation failed: quantity must be at least 1",
		},
		{
			name:     "not found -> NotFound",
			in:       model.ErrNotFound,
			wantCode: codes.NotFound,
			wantMsg:  "not found",
		},
		{
			name: "remote failure -> Unavailable with remote message",
			in: fmt.Errorf("add to cart: %w", &model.RemoteError{
				Kind:       model.RemoteMutationFailed,
				Operation:  "addtocart",
				StatusCode: 500,
				Message:    "cart service down",
			}),
			wantCode: codes.Unavailable,
			wantMsg:  "cart service down",
		},
		{
			name:     "deadline -> DeadlineExceeded",
			in:       context.DeadlineExceeded,
			wantCode: codes.DeadlineExceeded,
			wantMsg:  "deadline exceeded",
		},
		{
			name: "cancelled remote call -> Canceled",
			in: fmt.Errorf("increment: %w", &model.RemoteError{
				Kind:      model.RemoteMutationFailed,
				Operation: "addtocart",
				Message:   "context canceled",
				Err:       context.Canceled,
			}),
			wantCode: codes.Canceled,
			wantMsg:  "request cancelled",
		},
		{
			name: "timed out remote call -> DeadlineExceeded",
			in: &model.RemoteError{
				Kind:      model.RemoteMutationFailed,
				Operation: "getcart",
				Message:   "context deadline exceeded",
				Err:       fmt.Errorf("do request: %w", context.DeadlineExceeded),
			},
			wantCode: codes.DeadlineExceeded,
			wantMsg:  "deadline exceeded",
		},
		{
			name:     "other -> Internal",
			in:       errors.New("boom"),
			wantCode: codes.Internal,
			wantMsg:  "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := handleError(tt.in)
			st, ok := status.FromError(err)
			assert.True(t, ok)
			assert.Equal(t, tt.wantCode, st.Code())
			assert.Equal(t, tt.wantMsg, st.Message())
		})
	}
}
