package model

import "context"

// CredentialStore keeps the single bearer credential of this client.
type CredentialStore interface {
	// Load returns the stored credential or ErrNotFound when nothing is stored.
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, credential string) error
	// Delete removes the stored credential. Deleting an absent credential is not an error.
	Delete(ctx context.Context) error
}

// TokenDecoder extracts the payload of a credential without verifying its signature.
type TokenDecoder interface {
	Decode(credential string) (map[string]any, error)
}
