package model

// Identity is the (user, cart) pair derived from a stored credential.
type Identity struct {
	UserID string `json:"user_id"`
	CartID string `json:"cart_id,omitempty"`
	// Bearer is the credential the identity was resolved from.
	Bearer string `json:"-"`
}
