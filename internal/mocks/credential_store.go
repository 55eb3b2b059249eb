package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
)

// CredentialStore is a testify mock of model.CredentialStore.
type CredentialStore struct {
	mock.Mock
}

func NewCredentialStore(t *testing.T) *CredentialStore {
	m := &CredentialStore{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *CredentialStore) Load(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *CredentialStore) Save(ctx context.Context, credential string) error {
	args := m.Called(ctx, credential)
	return args.Error(0)
}

func (m *CredentialStore) Delete(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
