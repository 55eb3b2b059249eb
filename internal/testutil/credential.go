package testutil

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// MakeCredential signs claims into a bearer credential. The signature is never
// checked by the agent, so a fixed secret is enough.
func MakeCredential(t *testing.T, claims map[string]any) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims(claims))
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	return signed
}
