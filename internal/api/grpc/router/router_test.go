package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/bookswap-agent/internal/api/grpc/handler"
	"github.com/dtroode/bookswap-agent/internal/api/grpc/storefront"
	"github.com/dtroode/bookswap-agent/internal/testutil"
)

func TestRouter_Register(t *testing.T) {
	t.Parallel()

	r := New(handler.Services{}, testutil.MakeNoopLogger())
	s := r.Register()
	require.NotNil(t, s)

	info := s.GetServiceInfo()
	require.Contains(t, info, storefront.ServiceName)

	var methods []string
	for _, m := range info[storefront.ServiceName].Methods {
		methods = append(methods, m.Name)
	}
	assert.Len(t, methods, 20)
	assert.Contains(t, methods, "AddToCart")
	assert.Contains(t, methods, "GetBook")
	assert.Contains(t, methods, "ResubmitDonation")
}
