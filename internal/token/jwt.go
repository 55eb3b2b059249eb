package token

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dtroode/bookswap-agent/internal/model"
)

var _ model.TokenDecoder = (*JWT)(nil)

// JWT decodes bearer credentials issued by the bookstore's auth service.
// The agent never holds the signing key, so signatures are not checked:
// the payload is only read to recover identity fields.
type JWT struct {
	parser *jwt.Parser
}

// NewJWT creates a decoder for JWT credentials.
func NewJWT() *JWT {
	return &JWT{parser: jwt.NewParser()}
}

// Decode returns the claims of credential without verifying its signature.
func (j *JWT) Decode(credential string) (map[string]any, error) {
	credential = strings.TrimSpace(strings.TrimPrefix(credential, "Bearer "))
	if credential == "" {
		return nil, fmt.Errorf("credential is empty")
	}

	// ParseUnverified fills claims before it looks up the signing method, so a
	// missing or unknown alg still leaves a usable payload.
	claims := jwt.MapClaims{}
	_, _, err := j.parser.ParseUnverified(credential, claims)
	if err != nil && !errors.Is(err, jwt.ErrTokenUnverifiable) {
		return nil, fmt.Errorf("failed to decode credential: %w", err)
	}

	return claims, nil
}
