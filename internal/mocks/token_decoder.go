package mocks

import (
	"testing"

	"github.com/stretchr/testify/mock"
)

// TokenDecoder is a testify mock of model.TokenDecoder.
type TokenDecoder struct {
	mock.Mock
}

func NewTokenDecoder(t *testing.T) *TokenDecoder {
	m := &TokenDecoder{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *TokenDecoder) Decode(credential string) (map[string]any, error) {
	args := m.Called(credential)
	claims, _ := args.Get(0).(map[string]any)
	return claims, args.Error(1)
}
