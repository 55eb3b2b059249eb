package handler

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/bookswap-agent/internal/model"
)

// LoginHint is the message of every Unauthenticated status.
const LoginHint = "please log in"

func handleError(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request cancelled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	}

	if msg, ok := model.RemoteMessage(err); ok {
		return status.Error(codes.Unavailable, msg)
	}

	switch {
	case model.NeedsReauthentication(err):
		return status.Error(codes.Unauthenticated, LoginHint)
	case errors.Is(err, model.ErrIncompleteIdentity):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, model.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, model.ErrNotFound):
		return status.Error(codes.NotFound, "not found")
	default:
		return status.Error(codes.Internal, "internal server error")
	}
}
